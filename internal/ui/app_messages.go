package ui

import "github.com/gagliardetto/solana-go"

// ConnectWalletMsg is sent when the user asks to connect (connect screen, Enter or c).
type ConnectWalletMsg struct{}

// InitializeAccountMsg is sent when the user asks for the one-time account
// initialization (initialize screen, Enter or i).
type InitializeAccountMsg struct{}

// RefreshMsg triggers a manual re-read of the backing account (ctrl+r).
type RefreshMsg struct{}

// WalletConnectedMsg is sent when a connect handshake succeeds.
type WalletConnectedMsg struct {
	Address solana.PublicKey
	Silent  bool
}

// WalletConnectFailedMsg is sent when a handshake fails for any reason other
// than a missing wallet.
type WalletConnectFailedMsg struct {
	Err    error
	Silent bool
}

// WalletMissingMsg is sent when no compatible wallet is installed.
type WalletMissingMsg struct{}

// LinksFetchedMsg carries the result of a backing account read.
// Err non-nil means the read failed or found no account.
type LinksFetchedMsg struct {
	Links LinkCollection
	Err   error
}

// AccountInitializedMsg is sent when startStuffOff is confirmed.
type AccountInitializedMsg struct {
	BaseAccount solana.PublicKey
	Signature   solana.Signature
}

// AccountInitFailedMsg is sent when startStuffOff fails.
type AccountInitFailedMsg struct {
	Err error
}

// LinkSubmittedMsg is sent when addGif is confirmed.
type LinkSubmittedMsg struct {
	Link      string
	Signature solana.Signature
}

// LinkSubmitFailedMsg is sent when addGif fails.
type LinkSubmitFailedMsg struct {
	Link string
	Err  error
}

// DismissAlertMsg is sent when the user dismisses the alert overlay.
type DismissAlertMsg struct{}
