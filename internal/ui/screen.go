package ui

import "github.com/gagliardetto/solana-go"

// Screen is the UI variant rendered for the current state.
type Screen int

const (
	// ScreenConnect shows only the connect-wallet affordance.
	ScreenConnect Screen = iota
	// ScreenInitialize shows only the one-time account initialization affordance.
	ScreenInitialize
	// ScreenGallery shows the submit form and the link list.
	ScreenGallery
)

func (s Screen) String() string {
	switch s {
	case ScreenConnect:
		return "Connect"
	case ScreenInitialize:
		return "Initialize"
	case ScreenGallery:
		return "Gallery"
	default:
		return "Unknown"
	}
}

// SelectScreen picks the screen for a session and link collection.
func SelectScreen(session *solana.PublicKey, links LinkCollection) Screen {
	if session == nil {
		return ScreenConnect
	}
	switch links.State() {
	case CollectionUninitialized:
		return ScreenInitialize
	case CollectionEmpty, CollectionPopulated:
		return ScreenGallery
	}
	return ScreenInitialize
}
