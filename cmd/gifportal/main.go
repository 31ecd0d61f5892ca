package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gifportal/internal/config"
	"gifportal/internal/gifprogram"
	"gifportal/internal/idl"
	"gifportal/internal/keypair"
	"gifportal/internal/logging"
	"gifportal/internal/telemetry"
	"gifportal/internal/ui"
	"gifportal/internal/wallet"
)

// flags holds command-line overrides. Empty means "keep the configured value".
type flags struct {
	configPath  string
	cluster     string
	commitment  string
	idlPath     string
	baseAccount string
	walletPath  string
	logFile     string
	logLevel    string
}

func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "gifportal",
		Short: "Browse and share gif links stored on a Solana program account",
		Long: "gifportal connects a keypair wallet, reads the shared gif list from the\n" +
			"program's backing account and submits new links to it.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), f)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.configPath, "config", "", "config file (default ~/.config/gifportal/config.yaml)")
	fl.StringVar(&f.cluster, "cluster", "", "devnet, testnet, mainnet-beta, localnet or an RPC URL")
	fl.StringVar(&f.commitment, "commitment", "", "processed, confirmed or finalized")
	fl.StringVar(&f.idlPath, "idl", "", "program interface document (idl.json)")
	fl.StringVar(&f.baseAccount, "base-account", "", "keypair file of the shared backing account")
	fl.StringVar(&f.walletPath, "wallet", "", "wallet keypair file")
	fl.StringVar(&f.logFile, "log-file", "", "log file path")
	fl.StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error")
	return cmd
}

// apply copies non-empty flag values over cfg.
func (f flags) apply(cfg *config.Config) {
	for _, o := range []struct {
		val string
		dst *string
	}{
		{f.cluster, &cfg.Cluster},
		{f.commitment, &cfg.Commitment},
		{f.idlPath, &cfg.IDLPath},
		{f.baseAccount, &cfg.BaseAccountPath},
		{f.walletPath, &cfg.Wallet.KeypairPath},
		{f.logFile, &cfg.Log.File},
		{f.logLevel, &cfg.Log.Level},
	} {
		if o.val != "" {
			*o.dst = o.val
		}
	}
}

func run(ctx context.Context, f flags) error {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	f.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(logging.FileOptions{
		Filename:   cfg.Log.File,
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		Level:      cfg.Log.Level,
	})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	tp, err := telemetry.NewProvider(ctx)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			logger.Warn("telemetry shutdown", zap.Error(err))
		}
	}()

	endpoint, err := cfg.RPCEndpoint()
	if err != nil {
		return err
	}
	doc, err := idl.Load(cfg.IDLPath)
	if err != nil {
		return err
	}
	baseKey, err := keypair.Load(cfg.BaseAccountPath)
	if err != nil {
		return fmt.Errorf("base account: %w", err)
	}

	program, err := gifprogram.NewClient(rpc.New(endpoint), doc,
		gifprogram.WithCommitment(rpc.CommitmentType(cfg.Commitment)),
		gifprogram.WithLogger(logger.Named("gifprogram")),
		gifprogram.WithTracer(tp.Tracer()),
	)
	if err != nil {
		return err
	}

	trust, err := wallet.NewTrustStore(cfg.Wallet.TrustFile)
	if err != nil {
		return fmt.Errorf("trust store: %w", err)
	}
	w := wallet.NewKeypairWallet(cfg.Wallet.KeypairPath, cfg.Wallet.Origin, trust,
		wallet.WithLogger(logger.Named("wallet")),
		wallet.WithTracer(tp.Tracer()),
	)

	logger.Info("starting",
		zap.String("rpc", endpoint),
		zap.String("commitment", cfg.Commitment),
		zap.String("program", program.ProgramID().String()),
		zap.String("base_account", baseKey.PublicKey().String()),
		zap.Bool("tracing", tp.Enabled()),
	)

	model := ui.NewAppModel(ui.Config{
		Wallet:      w,
		Program:     program,
		BaseAccount: gifprogram.KeypairSigner{Key: baseKey},
		WalletPath:  cfg.Wallet.KeypairPath,
		Logger:      logger.Named("ui"),
		Title:       cfg.UI.Title,
		Subtitle:    cfg.UI.Subtitle,
		Handle:      cfg.UI.Handle,
	})
	defer model.Teardown()

	p := tea.NewProgram(model.AsTeaModel(), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	return nil
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "gifportal: %v\n", err)
		os.Exit(1)
	}
}
