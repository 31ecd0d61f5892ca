// Package ui is the gifportal view-model controller: a Bubble Tea model that
// holds the wallet session, the draft link and the shared link collection,
// turns user intents into wallet and program calls, and renders one of three
// screens (connect, initialize, gallery) from that state.
//
// Remote calls run in tea.Cmds and report back as messages; the model is the
// only writer of its state.
package ui
