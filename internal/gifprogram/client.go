// Package gifprogram is the client for the deployed gif-list Anchor program:
// it reads the shared backing account and submits the two remote procedures
// the UI uses, startStuffOff and addGif.
package gifprogram

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"gifportal/internal/idl"
)

// IDL names the client depends on.
const (
	InstructionStartStuffOff = "startStuffOff"
	InstructionAddGif        = "addGif"

	accountBase   = "baseAccount"
	accountUser   = "user"
	accountSystem = "systemProgram"
)

var (
	// ErrAccountNotFound means the backing account does not exist yet.
	ErrAccountNotFound = errors.New("base account not found")
	// ErrWrongOwner means the account exists but belongs to another program.
	ErrWrongOwner = errors.New("base account is not owned by the program")
	// ErrTransactionFailed means the transaction landed but the program
	// returned an error.
	ErrTransactionFailed = errors.New("transaction failed")
	// ErrBlockhashExpired means the transaction never landed before its
	// blockhash stopped being valid.
	ErrBlockhashExpired = errors.New("blockhash expired")
)

// RPC is the subset of *rpc.Client the program client uses.
type RPC interface {
	GetAccountInfoWithOpts(ctx context.Context, account solana.PublicKey, opts *rpc.GetAccountInfoOpts) (*rpc.GetAccountInfoResult, error)
	GetLatestBlockhash(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error)
	SendTransactionWithOpts(ctx context.Context, tx *solana.Transaction, opts rpc.TransactionOpts) (solana.Signature, error)
	GetSignatureStatuses(ctx context.Context, searchTransactionHistory bool, sigs ...solana.Signature) (*rpc.GetSignatureStatusesResult, error)
	GetBlockHeight(ctx context.Context, commitment rpc.CommitmentType) (uint64, error)
}

// Ensure *rpc.Client satisfies RPC.
var _ RPC = (*rpc.Client)(nil)

// Signer signs serialized transaction messages on behalf of one address.
type Signer interface {
	PublicKey() solana.PublicKey
	SignMessage(ctx context.Context, message []byte) (solana.Signature, error)
}

// KeypairSigner is a Signer over an in-memory private key.
type KeypairSigner struct {
	Key solana.PrivateKey
}

// PublicKey implements Signer.
func (s KeypairSigner) PublicKey() solana.PublicKey { return s.Key.PublicKey() }

// SignMessage implements Signer.
func (s KeypairSigner) SignMessage(_ context.Context, message []byte) (solana.Signature, error) {
	return s.Key.Sign(message)
}

// Client talks to one deployed program over RPC.
type Client struct {
	rpc          RPC
	doc          *idl.Document
	programID    solana.PublicKey
	commitment   rpc.CommitmentType
	pollInterval time.Duration
	logger       *zap.Logger
	tracer       trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithCommitment sets the commitment used for preflight, reads and confirmation.
func WithCommitment(c rpc.CommitmentType) Option {
	return func(cl *Client) { cl.commitment = c }
}

// WithPollInterval sets how often confirmation polls signature status.
func WithPollInterval(d time.Duration) Option {
	return func(cl *Client) { cl.pollInterval = d }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(cl *Client) { cl.logger = l }
}

// WithTracer sets the tracer.
func WithTracer(t trace.Tracer) Option {
	return func(cl *Client) { cl.tracer = t }
}

// NewClient validates that doc declares everything the client needs and
// returns a client for the program at doc's metadata.address.
func NewClient(r RPC, doc *idl.Document, opts ...Option) (*Client, error) {
	if err := doc.Require(
		[]string{InstructionStartStuffOff, InstructionAddGif},
		[]string{BaseAccountName},
	); err != nil {
		return nil, err
	}
	if err := checkLayout(doc); err != nil {
		return nil, err
	}
	programID, err := doc.ProgramID()
	if err != nil {
		return nil, err
	}
	c := &Client{
		rpc:          r,
		doc:          doc,
		programID:    programID,
		commitment:   rpc.CommitmentProcessed,
		pollInterval: 500 * time.Millisecond,
		logger:       zap.NewNop(),
		tracer:       noop.NewTracerProvider().Tracer(""),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// ProgramID returns the program address.
func (c *Client) ProgramID() solana.PublicKey {
	return c.programID
}

// FetchBaseAccount reads and decodes the backing account at addr.
// A missing account yields ErrAccountNotFound.
func (c *Client) FetchBaseAccount(ctx context.Context, addr solana.PublicKey) (acct *BaseAccount, err error) {
	ctx, span := c.tracer.Start(ctx, "gifprogram.fetch",
		trace.WithAttributes(attribute.String("gifportal.base_account", addr.String())))
	defer func() { endSpan(span, err) }()

	out, err := c.rpc.GetAccountInfoWithOpts(ctx, addr, &rpc.GetAccountInfoOpts{
		Encoding:   solana.EncodingBase64,
		Commitment: c.commitment,
	})
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("get account %s: %w", addr, err)
	}
	if out == nil || out.Value == nil || out.Value.Data == nil {
		return nil, ErrAccountNotFound
	}
	if !out.Value.Owner.Equals(c.programID) {
		return nil, fmt.Errorf("%w: owner %s", ErrWrongOwner, out.Value.Owner)
	}
	acct, err = DecodeBaseAccount(out.Value.Data.GetBinary())
	if err != nil {
		return nil, fmt.Errorf("decode account %s: %w", addr, err)
	}
	span.SetAttributes(attribute.Int("gifportal.gif_count", len(acct.GifList)))
	return acct, nil
}

// StartStuffOff creates the backing account. base is the account's own
// keypair and must sign; user pays for the account.
func (c *Client) StartStuffOff(ctx context.Context, user, base Signer) (sig solana.Signature, err error) {
	ctx, span := c.tracer.Start(ctx, "gifprogram.start_stuff_off",
		trace.WithAttributes(attribute.String("gifportal.base_account", base.PublicKey().String())))
	defer func() { endSpan(span, err) }()

	ix, err := c.instruction(InstructionStartStuffOff, map[string]solana.PublicKey{
		accountBase:   base.PublicKey(),
		accountUser:   user.PublicKey(),
		accountSystem: solana.SystemProgramID,
	}, nil)
	if err != nil {
		return solana.Signature{}, err
	}
	return c.send(ctx, ix, user, base)
}

// AddGif appends link to the backing account at base, signed and paid by user.
func (c *Client) AddGif(ctx context.Context, user Signer, base solana.PublicKey, link string) (sig solana.Signature, err error) {
	ctx, span := c.tracer.Start(ctx, "gifprogram.add_gif",
		trace.WithAttributes(attribute.String("gifportal.base_account", base.String())))
	defer func() { endSpan(span, err) }()

	var args bytes.Buffer
	if err := encodeString(bin.NewBorshEncoder(&args), link); err != nil {
		return solana.Signature{}, fmt.Errorf("encode gif_link: %w", err)
	}
	ix, err := c.instruction(InstructionAddGif, map[string]solana.PublicKey{
		accountBase: base,
		accountUser: user.PublicKey(),
	}, args.Bytes())
	if err != nil {
		return solana.Signature{}, err
	}
	return c.send(ctx, ix, user)
}

// instruction builds an instruction whose account list, writability and
// signer flags follow the IDL.
func (c *Client) instruction(name string, keys map[string]solana.PublicKey, args []byte) (solana.Instruction, error) {
	def, ok := c.doc.Instruction(name)
	if !ok {
		return nil, fmt.Errorf("idl has no instruction %s", name)
	}
	metas := make(solana.AccountMetaSlice, 0, len(def.Accounts))
	for _, a := range def.Accounts {
		key, ok := keys[a.Name]
		if !ok {
			return nil, fmt.Errorf("instruction %s: no address for account %s", name, a.Name)
		}
		metas = append(metas, solana.NewAccountMeta(key, a.IsMut, a.IsSigner))
	}
	disc := InstructionDiscriminator(name)
	data := append(disc[:], args...)
	return solana.NewInstruction(c.programID, metas, data), nil
}

// send builds a transaction paid by payer, collects a signature from every
// required signer, submits it and waits for the configured commitment.
func (c *Client) send(ctx context.Context, ix solana.Instruction, payer Signer, extra ...Signer) (solana.Signature, error) {
	recent, err := c.rpc.GetLatestBlockhash(ctx, c.commitment)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("get latest blockhash: %w", err)
	}
	if recent == nil || recent.Value == nil {
		return solana.Signature{}, errors.New("get latest blockhash: empty result")
	}

	tx, err := solana.NewTransaction(
		[]solana.Instruction{ix},
		recent.Value.Blockhash,
		solana.TransactionPayer(payer.PublicKey()),
	)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("build transaction: %w", err)
	}
	if err := signTransaction(ctx, tx, append([]Signer{payer}, extra...)); err != nil {
		return solana.Signature{}, err
	}

	sig, err := c.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		PreflightCommitment: c.commitment,
	})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("send transaction: %w", err)
	}
	c.logger.Debug("transaction sent", zap.Stringer("signature", sig))

	if err := c.confirm(ctx, sig, recent.Value.LastValidBlockHeight); err != nil {
		return sig, err
	}
	return sig, nil
}

func signTransaction(ctx context.Context, tx *solana.Transaction, signers []Signer) error {
	msg, err := tx.Message.MarshalBinary()
	if err != nil {
		return fmt.Errorf("serialize message: %w", err)
	}
	n := int(tx.Message.Header.NumRequiredSignatures)
	tx.Signatures = make([]solana.Signature, n)
	for i := 0; i < n; i++ {
		key := tx.Message.AccountKeys[i]
		var signer Signer
		for _, s := range signers {
			if s.PublicKey().Equals(key) {
				signer = s
				break
			}
		}
		if signer == nil {
			return fmt.Errorf("no signer for required key %s", key)
		}
		sig, err := signer.SignMessage(ctx, msg)
		if err != nil {
			return fmt.Errorf("sign with %s: %w", key, err)
		}
		tx.Signatures[i] = sig
	}
	return nil
}

// confirm polls the signature status until it reaches the client's
// commitment, the transaction reports an error, the block height passes
// lastValid without any status, or ctx is done.
func (c *Client) confirm(ctx context.Context, sig solana.Signature, lastValid uint64) error {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()
	for {
		out, err := c.rpc.GetSignatureStatuses(ctx, false, sig)
		if err != nil {
			return fmt.Errorf("signature status %s: %w", sig, err)
		}
		if out != nil && len(out.Value) > 0 && out.Value[0] != nil {
			st := out.Value[0]
			if st.Err != nil {
				return fmt.Errorf("%w: %s: %v", ErrTransactionFailed, sig, st.Err)
			}
			if reached(st.ConfirmationStatus, c.commitment) {
				return nil
			}
		} else {
			height, err := c.rpc.GetBlockHeight(ctx, c.commitment)
			if err != nil {
				return fmt.Errorf("block height: %w", err)
			}
			if height > lastValid {
				return fmt.Errorf("%w: %s not found by block %d", ErrBlockhashExpired, sig, lastValid)
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func reached(status rpc.ConfirmationStatusType, want rpc.CommitmentType) bool {
	rank := map[rpc.ConfirmationStatusType]int{
		rpc.ConfirmationStatusProcessed: 1,
		rpc.ConfirmationStatusConfirmed: 2,
		rpc.ConfirmationStatusFinalized: 3,
	}
	need := 1
	switch want {
	case rpc.CommitmentConfirmed:
		need = 2
	case rpc.CommitmentFinalized:
		need = 3
	}
	return rank[status] >= need
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
