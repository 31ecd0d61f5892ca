package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"gifportal/internal/gifprogram"
	"gifportal/internal/ui/textutil"
	"gifportal/internal/wallet"
)

// Program is the remote program surface the controller depends on.
// *gifprogram.Client implements it.
type Program interface {
	FetchBaseAccount(ctx context.Context, addr solana.PublicKey) (*gifprogram.BaseAccount, error)
	StartStuffOff(ctx context.Context, user, base gifprogram.Signer) (solana.Signature, error)
	AddGif(ctx context.Context, user gifprogram.Signer, base solana.PublicKey, link string) (solana.Signature, error)
}

// Ensure *gifprogram.Client implements Program.
var _ Program = (*gifprogram.Client)(nil)

// Config is everything the controller needs from the outside. Nothing is
// read from package-level globals so tests can substitute doubles.
type Config struct {
	Wallet  wallet.Wallet
	Program Program
	// BaseAccount is the bundled keypair of the shared backing account.
	BaseAccount gifprogram.Signer
	// WalletPath is shown in the wallet-missing alert.
	WalletPath string
	Logger     *zap.Logger

	Title    string
	Subtitle string
	Handle   string
}

// AppModel is the view-model controller.
type AppModel struct {
	Session *solana.PublicKey
	Draft   textinput.Model
	Links   LinkCollection
	Alerts  AlertStack
	Keys    KeyMap
	Help    help.Model
	Gallery viewport.Model
	Width   int
	Height  int
	Closed  bool
	cfg     Config
	logger  *zap.Logger
	ctx     context.Context
	cancel  context.CancelFunc
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// NewAppModel creates the controller with empty state: no session, an empty
// draft and an empty link collection.
func NewAppModel(cfg Config) *AppModel {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ti := textinput.New()
	ti.Placeholder = "Enter gif link!"
	ti.Width = 60
	ti.Focus()

	links := NewLinkCollection(nil)
	vp := viewport.New(80, 12)
	vp.SetContent(renderLinks(links, vp.Width))

	ctx, cancel := context.WithCancel(context.Background())
	return &AppModel{
		Draft:   ti,
		Links:   links,
		Keys:    DefaultKeyMap(),
		Help:    help.New(),
		Gallery: vp,
		cfg:     cfg,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}

// Screen returns the screen selected by the current state.
func (m *AppModel) Screen() Screen {
	return SelectScreen(m.Session, m.Links)
}

// AttemptSilentReconnect connects only if the wallet already trusts this
// application. Issued once from Init.
func (m *AppModel) AttemptSilentReconnect() tea.Cmd {
	return connectCmd(m.ctx, m.cfg.Wallet, true)
}

// ConnectWallet runs the interactive handshake.
func (m *AppModel) ConnectWallet() tea.Cmd {
	return connectCmd(m.ctx, m.cfg.Wallet, false)
}

// RefreshLinkCollection re-reads the backing account. No read happens
// without a session.
func (m *AppModel) RefreshLinkCollection() tea.Cmd {
	if m.Session == nil || m.cfg.Program == nil || m.cfg.BaseAccount == nil {
		return nil
	}
	m.logger.Info("fetching gif list")
	return fetchLinksCmd(m.ctx, m.cfg.Program, m.cfg.BaseAccount.PublicKey())
}

// InitializeRemoteAccount creates the shared backing account. It is only
// reachable from the initialize screen.
func (m *AppModel) InitializeRemoteAccount() tea.Cmd {
	if m.Screen() != ScreenInitialize || m.cfg.Program == nil || m.cfg.BaseAccount == nil {
		return nil
	}
	return initializeAccountCmd(m.ctx, m.cfg.Program, m.cfg.Wallet, m.cfg.BaseAccount)
}

// SubmitLink sends candidate to the program exactly as typed. A blank
// candidate is a logged no-op. Otherwise the draft is cleared before the
// call, whatever its outcome.
func (m *AppModel) SubmitLink(candidate string) tea.Cmd {
	if strings.TrimSpace(candidate) == "" {
		m.logger.Info("no gif link given")
		return nil
	}
	if m.Session == nil || m.cfg.Program == nil || m.cfg.BaseAccount == nil {
		m.logger.Warn("gif link submitted without a connected wallet")
		return nil
	}
	m.Draft.SetValue("")
	m.logger.Info("gif link", zap.String("link", candidate))
	return submitLinkCmd(m.ctx, m.cfg.Program, m.cfg.Wallet, m.cfg.BaseAccount.PublicKey(), candidate)
}

// UpdateDraft replaces the draft text.
func (m *AppModel) UpdateDraft(text string) {
	m.Draft.SetValue(text)
}

// Teardown cancels in-flight calls' context and stops all further state
// updates from their results.
func (m *AppModel) Teardown() {
	if m.Closed {
		return
	}
	m.Closed = true
	m.cancel()
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	return a.AttemptSilentReconnect()
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.Closed {
		return a, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.Width, a.Height = msg.Width, msg.Height
		a.Gallery.Width = msg.Width
		a.Gallery.Height = max(msg.Height-14, 3) // header, form, footer, help
		a.Draft.Width = max(msg.Width-8, 10)
		a.Gallery.SetContent(renderLinks(a.Links, a.Gallery.Width))
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.Teardown()
			return a, tea.Quit
		}
		// Alerts block all other input until dismissed.
		if a.Alerts.Len() > 0 {
			return a, a.Alerts.UpdateTop(msg)
		}
		return a, a.handleKey(msg)

	case DismissAlertMsg:
		a.Alerts.Pop()
		return a, nil

	case ConnectWalletMsg:
		return a, a.ConnectWallet()
	case InitializeAccountMsg:
		return a, a.InitializeRemoteAccount()
	case RefreshMsg:
		return a, a.RefreshLinkCollection()

	case WalletMissingMsg:
		a.logger.Warn("no compatible wallet found", zap.String("path", a.cfg.WalletPath))
		a.Alerts.Push(NewWalletMissingAlert(a.cfg.WalletPath))
		return a, nil

	case WalletConnectedMsg:
		a.logger.Info("connected with public key", zap.String("address", msg.Address.String()))
		if a.Session != nil && a.Session.Equals(msg.Address) {
			return a, nil
		}
		addr := msg.Address
		a.Session = &addr
		return a, a.RefreshLinkCollection()

	case WalletConnectFailedMsg:
		if msg.Silent {
			a.logger.Debug("silent reconnect declined", zap.Error(msg.Err))
		} else {
			a.logger.Error("wallet connect failed", zap.Error(msg.Err))
		}
		return a, nil

	case LinksFetchedMsg:
		if msg.Err != nil {
			a.logger.Info("gif list read failed", zap.Error(msg.Err))
		} else {
			a.logger.Info("got the account", zap.Int("gifs", msg.Links.Len()))
		}
		a.Links = msg.Links
		a.Gallery.SetContent(renderLinks(a.Links, a.Gallery.Width))
		return a, nil

	case AccountInitializedMsg:
		a.logger.Info("created a new BaseAccount",
			zap.String("address", msg.BaseAccount.String()),
			zap.String("signature", msg.Signature.String()))
		return a, a.RefreshLinkCollection()

	case AccountInitFailedMsg:
		a.logger.Error("base account initialization failed", zap.Error(msg.Err))
		return a, nil

	case LinkSubmittedMsg:
		a.logger.Info("GIF successfully sent to program",
			zap.String("link", msg.Link),
			zap.String("signature", msg.Signature.String()))
		return a, a.RefreshLinkCollection()

	case LinkSubmitFailedMsg:
		a.logger.Error("gif submission failed", zap.String("link", msg.Link), zap.Error(msg.Err))
		return a, nil
	}

	if a.Screen() == ScreenGallery {
		var cmd tea.Cmd
		a.Draft, cmd = a.Draft.Update(msg)
		return a, cmd
	}
	return a, nil
}

// handleKey dispatches a key press according to the current screen.
func (a *appModelAdapter) handleKey(msg tea.KeyMsg) tea.Cmd {
	k := a.Keys
	switch a.Screen() {
	case ScreenConnect:
		switch {
		case key.Matches(msg, k.Connect):
			return a.ConnectWallet()
		case key.Matches(msg, k.Quit), key.Matches(msg, k.QuitLetter):
			a.Teardown()
			return tea.Quit
		}
		return nil

	case ScreenInitialize:
		switch {
		case key.Matches(msg, k.Initialize):
			return a.InitializeRemoteAccount()
		case key.Matches(msg, k.Refresh):
			return a.RefreshLinkCollection()
		case key.Matches(msg, k.Quit), key.Matches(msg, k.QuitLetter):
			a.Teardown()
			return tea.Quit
		}
		return nil
	}

	switch {
	case key.Matches(msg, k.Submit):
		return a.SubmitLink(a.Draft.Value())
	case key.Matches(msg, k.Refresh):
		return a.RefreshLinkCollection()
	case key.Matches(msg, k.Quit):
		a.Teardown()
		return tea.Quit
	case key.Matches(msg, k.PageUp), key.Matches(msg, k.PageDown):
		var cmd tea.Cmd
		a.Gallery, cmd = a.Gallery.Update(msg)
		return cmd
	}
	var cmd tea.Cmd
	a.Draft, cmd = a.Draft.Update(msg)
	return cmd
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	if top := a.Alerts.Top(); top != nil {
		if a.Width > 0 && a.Height > 0 {
			return lipgloss.Place(a.Width, a.Height, lipgloss.Center, lipgloss.Center, top.View())
		}
		return top.View()
	}

	var b strings.Builder
	b.WriteString(Styles.Title.Render("🖼 "+a.cfg.Title) + "\n")
	if a.cfg.Subtitle != "" {
		b.WriteString(Styles.Subtitle.Render(a.cfg.Subtitle) + "\n")
	}
	b.WriteString("\n")

	screen := a.Screen()
	switch screen {
	case ScreenConnect:
		b.WriteString(Styles.Button.Render("Connect to Wallet") + "\n")
	case ScreenInitialize:
		b.WriteString(Styles.Status.Render("Connected: "+shortAddress(a.Session.String())) + "\n\n")
		b.WriteString(Styles.Button.Render("Do One-Time Initialization For GIF Program Account") + "\n")
	case ScreenGallery:
		b.WriteString(Styles.Status.Render("Connected: "+shortAddress(a.Session.String())) + "\n\n")
		b.WriteString(Styles.Input.Render(a.Draft.View()) + "\n\n")
		b.WriteString(a.Gallery.View() + "\n")
	}

	if a.cfg.Handle != "" {
		b.WriteString("\n" + Styles.Muted.Render(fmt.Sprintf("built by @%s", a.cfg.Handle)) + "\n")
	}
	b.WriteString("\n" + a.Help.ShortHelpView(a.Keys.ForScreen(screen)))
	return b.String()
}

// renderLinks renders every link as an image reference line, in storage order,
// clipped to width columns. Links are not validated.
func renderLinks(c LinkCollection, width int) string {
	if c.Len() == 0 {
		return Styles.Empty.Render("No gifs yet. Submit the first one!")
	}
	const icon = "🖼  "
	var b strings.Builder
	for i, r := range c.Records() {
		if i > 0 {
			b.WriteString("\n")
		}
		var by string
		if r.Submitter != "" {
			by = "by " + shortAddress(r.Submitter)
		}
		url := r.URL
		if width > 0 {
			room := width - textutil.Width(icon) - textutil.Width(by) - 2
			url = textutil.Truncate(url, max(room, 12))
		}
		line := icon + Styles.Link.Render(url)
		if by != "" {
			line += "  " + Styles.Muted.Render(by)
		}
		b.WriteString(line)
	}
	return b.String()
}

// shortAddress abbreviates a base58 address to its first and last four characters.
func shortAddress(addr string) string {
	return textutil.Middle(addr, 4)
}
