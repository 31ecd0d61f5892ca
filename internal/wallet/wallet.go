// Package wallet is the client's wallet capability: a presence check, a
// connect handshake that can be silent (only if previously trusted) or
// interactive, and message signing for transactions.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/gagliardetto/solana-go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"gifportal/internal/keypair"
)

var (
	// ErrNotInstalled means no wallet is available on this machine.
	ErrNotInstalled = errors.New("no compatible wallet found")
	// ErrNotTrusted is returned by a silent connect when the user has never
	// approved this application.
	ErrNotTrusted = errors.New("wallet has not trusted this application")
	// ErrNotConnected is returned when signing before a successful connect.
	ErrNotConnected = errors.New("wallet is not connected")
)

// ConnectOptions controls the connect handshake.
type ConnectOptions struct {
	// OnlyIfTrusted makes the handshake silent: it succeeds only when the
	// user approved this application before, and never prompts.
	OnlyIfTrusted bool
}

// ConnectResult is the outcome of a successful handshake.
type ConnectResult struct {
	PublicKey solana.PublicKey
}

// Wallet is the capability the UI controller depends on.
type Wallet interface {
	// Installed is the presence flag.
	Installed() bool
	Connect(ctx context.Context, opts ConnectOptions) (ConnectResult, error)
	// PublicKey returns the connected address, or the zero key before connect.
	PublicKey() solana.PublicKey
	SignMessage(ctx context.Context, message []byte) (solana.Signature, error)
}

// KeypairWallet is a Wallet backed by a keypair file on disk. Trust is
// recorded per origin in a TrustStore so later sessions can reconnect
// silently.
type KeypairWallet struct {
	path   string
	origin string
	trust  *TrustStore
	logger *zap.Logger
	tracer trace.Tracer

	mu        sync.Mutex
	key       solana.PrivateKey
	connected bool
}

// Ensure KeypairWallet implements Wallet.
var _ Wallet = (*KeypairWallet)(nil)

// Option configures a KeypairWallet.
type Option func(*KeypairWallet)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(w *KeypairWallet) { w.logger = l }
}

// WithTracer sets the tracer used for connect spans.
func WithTracer(t trace.Tracer) Option {
	return func(w *KeypairWallet) { w.tracer = t }
}

// NewKeypairWallet creates a wallet reading its key from path and recording
// approvals for origin in trust.
func NewKeypairWallet(path, origin string, trust *TrustStore, opts ...Option) *KeypairWallet {
	w := &KeypairWallet{
		path:   path,
		origin: origin,
		trust:  trust,
		logger: zap.NewNop(),
		tracer: noop.NewTracerProvider().Tracer(""),
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

// Installed reports whether the keypair file exists.
func (w *KeypairWallet) Installed() bool {
	_, err := os.Stat(w.path)
	return err == nil
}

// Connect loads the key and performs the handshake. A silent connect fails
// with ErrNotTrusted unless the address has approved this origin before;
// an interactive connect records the approval.
func (w *KeypairWallet) Connect(ctx context.Context, opts ConnectOptions) (ConnectResult, error) {
	_, span := w.tracer.Start(ctx, "wallet.connect",
		trace.WithAttributes(attribute.Bool("gifportal.wallet.only_if_trusted", opts.OnlyIfTrusted)))
	defer span.End()

	res, err := w.connect(opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return ConnectResult{}, err
	}
	span.SetAttributes(attribute.String("gifportal.wallet.address", res.PublicKey.String()))
	return res, nil
}

func (w *KeypairWallet) connect(opts ConnectOptions) (ConnectResult, error) {
	key, err := keypair.Load(w.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ConnectResult{}, ErrNotInstalled
		}
		return ConnectResult{}, err
	}
	address := key.PublicKey()

	if opts.OnlyIfTrusted {
		if !w.trust.IsTrusted(w.origin, address.String()) {
			return ConnectResult{}, ErrNotTrusted
		}
	} else if err := w.trust.Trust(w.origin, address.String()); err != nil {
		return ConnectResult{}, fmt.Errorf("record trust: %w", err)
	}

	w.mu.Lock()
	w.key = key
	w.connected = true
	w.mu.Unlock()

	w.logger.Info("wallet connected",
		zap.String("address", address.String()),
		zap.Bool("silent", opts.OnlyIfTrusted))
	return ConnectResult{PublicKey: address}, nil
}

// PublicKey returns the connected address.
func (w *KeypairWallet) PublicKey() solana.PublicKey {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.connected {
		return solana.PublicKey{}
	}
	return w.key.PublicKey()
}

// SignMessage signs a serialized transaction message with the wallet key.
func (w *KeypairWallet) SignMessage(ctx context.Context, message []byte) (solana.Signature, error) {
	w.mu.Lock()
	key, connected := w.key, w.connected
	w.mu.Unlock()
	if !connected {
		return solana.Signature{}, ErrNotConnected
	}
	return key.Sign(message)
}
