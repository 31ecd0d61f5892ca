package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// AlertModal is a blocking notice. It swallows every key until the user
// dismisses it with Enter or Esc.
type AlertModal struct {
	Title string
	Body  string
}

// Ensure AlertModal implements View.
var _ View = (*AlertModal)(nil)

// NewAlertModal creates an alert.
func NewAlertModal(title, body string) *AlertModal {
	return &AlertModal{Title: title, Body: body}
}

// NewWalletMissingAlert is shown when no compatible wallet is installed.
func NewWalletMissingAlert(keypairPath string) *AlertModal {
	body := "No compatible wallet found. Get a wallet keypair"
	if keypairPath != "" {
		body += " at " + keypairPath
	}
	body += " (solana-keygen new) and connect again."
	return NewAlertModal("Wallet not found", body)
}

// Init implements View.
func (m *AlertModal) Init() tea.Cmd { return nil }

// Update implements View.
func (m *AlertModal) Update(msg tea.Msg) (View, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter", "esc":
			return m, func() tea.Msg { return DismissAlertMsg{} }
		}
	}
	return m, nil
}

// View implements View.
func (m *AlertModal) View() string {
	content := Styles.AlertTitle.Render(m.Title) + "\n\n"
	content += m.Body + "\n\n"
	content += Styles.Hint.Render("Enter/Esc: OK")
	return Styles.Alert.Render(content)
}

// AlertStack holds pending alerts; the topmost receives input first.
type AlertStack struct {
	stack []View
}

// Push adds an alert on top.
func (s *AlertStack) Push(v View) {
	s.stack = append(s.stack, v)
}

// Pop removes the top alert, reporting whether there was one.
func (s *AlertStack) Pop() bool {
	if len(s.stack) == 0 {
		return false
	}
	s.stack = s.stack[:len(s.stack)-1]
	return true
}

// Top returns the top alert, or nil.
func (s *AlertStack) Top() View {
	if len(s.stack) == 0 {
		return nil
	}
	return s.stack[len(s.stack)-1]
}

// Len returns the number of pending alerts.
func (s *AlertStack) Len() int {
	return len(s.stack)
}

// UpdateTop passes msg to the top alert and stores the result.
func (s *AlertStack) UpdateTop(msg tea.Msg) tea.Cmd {
	if len(s.stack) == 0 {
		return nil
	}
	v, cmd := s.stack[len(s.stack)-1].Update(msg)
	s.stack[len(s.stack)-1] = v
	return cmd
}
