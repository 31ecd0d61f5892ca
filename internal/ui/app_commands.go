package ui

import (
	"context"
	"errors"

	"github.com/gagliardetto/solana-go"

	"gifportal/internal/gifprogram"
	"gifportal/internal/wallet"

	tea "github.com/charmbracelet/bubbletea"
)

// connectCmd returns a command that runs the wallet handshake.
// silent selects the only-if-trusted variant.
func connectCmd(ctx context.Context, w wallet.Wallet, silent bool) tea.Cmd {
	return func() tea.Msg {
		if w == nil || !w.Installed() {
			return WalletMissingMsg{}
		}
		res, err := w.Connect(ctx, wallet.ConnectOptions{OnlyIfTrusted: silent})
		if err != nil {
			if errors.Is(err, wallet.ErrNotInstalled) {
				return WalletMissingMsg{}
			}
			return WalletConnectFailedMsg{Err: err, Silent: silent}
		}
		return WalletConnectedMsg{Address: res.PublicKey, Silent: silent}
	}
}

// fetchLinksCmd returns a command that reads the backing account. Every
// failure collapses into the Uninitialized collection.
func fetchLinksCmd(ctx context.Context, p Program, base solana.PublicKey) tea.Cmd {
	return func() tea.Msg {
		acct, err := p.FetchBaseAccount(ctx, base)
		if err != nil {
			return LinksFetchedMsg{Links: UninitializedLinks(), Err: err}
		}
		return LinksFetchedMsg{Links: LinksFromAccount(acct)}
	}
}

// initializeAccountCmd returns a command that creates the backing account,
// paid by user and signed by the bundled base account key.
func initializeAccountCmd(ctx context.Context, p Program, user, base gifprogram.Signer) tea.Cmd {
	return func() tea.Msg {
		sig, err := p.StartStuffOff(ctx, user, base)
		if err != nil {
			return AccountInitFailedMsg{Err: err}
		}
		return AccountInitializedMsg{BaseAccount: base.PublicKey(), Signature: sig}
	}
}

// submitLinkCmd returns a command that appends link to the backing account.
func submitLinkCmd(ctx context.Context, p Program, user gifprogram.Signer, base solana.PublicKey, link string) tea.Cmd {
	return func() tea.Msg {
		sig, err := p.AddGif(ctx, user, base, link)
		if err != nil {
			return LinkSubmitFailedMsg{Link: link, Err: err}
		}
		return LinkSubmittedMsg{Link: link, Signature: sig}
	}
}
