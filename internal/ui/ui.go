package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/lessonctl/internal/content"
	"github.com/desertthunder/lessonctl/internal/services"
	"github.com/desertthunder/lessonctl/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	GateView ViewState = iota
	LoginView
	LinkSentView
	LessonFormView
	VideoFormView
	CategoryPickView
	ConfirmDeleteView
	SubmitView
	ResultView
)

// loginFocus enumerates the focusable elements on the login screen.
type loginFocus int

const (
	loginEmailFocus loginFocus = iota
	loginProviderFocus
)

var loginProviders = []string{"github", "google"}

// Model represents the TUI application state.
//
// The session gate runs exactly once, on [Model.Init]: until the auth
// service answers, the model stays in [GateView] and renders a checking
// notice. A nil session routes to the login screen, an active one to the
// lesson form.
type Model struct {
	ctx    context.Context
	view   ViewState
	auth   services.Auth
	engine tasks.SubmitEngine

	width  int
	height int

	session *services.Session

	// login screen
	emailInput    textinput.Model
	codeInput     textinput.Model
	loginFocus    loginFocus
	providerIndex int
	loginErr      error

	// lesson form
	lesson       *lessonForm
	intakeDir    string
	intakeNotice string

	// video form
	video *videoForm

	// category picker (shared by both forms)
	categoryList list.Model
	pickerReturn ViewState

	// delete confirmation
	deleteIndex  int
	deleteReturn ViewState

	// submission
	submitKind   string // "lesson" or "video"
	progressChan chan tasks.ProgressUpdate
	progress     tasks.ProgressUpdate
	lessonResult *tasks.LessonSubmitResult
	videoResult  *tasks.VideoSubmitResult
	submitErr    error

	err  error
	help help.Model
	keys keyMap
}

// ModelOpts carries the injected dependencies and optional settings for [NewModel].
type ModelOpts struct {
	Auth      services.Auth
	Engine    tasks.SubmitEngine
	IntakeDir string // Directory scanned by the load-images action
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, opts ModelOpts) *Model {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 128
	email.Focus()

	code := textinput.New()
	code.Placeholder = "one-time code"
	code.CharLimit = 16

	return &Model{
		ctx:        ctx,
		view:       GateView,
		auth:       opts.Auth,
		engine:     opts.Engine,
		emailInput: email,
		codeInput:  code,
		lesson:     newLessonForm(),
		video:      newVideoForm(),
		intakeDir:  opts.IntakeDir,
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// Init starts the one-time session check.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.checkSession(), textinput.Blink)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.categoryList.Width() != 0 {
			m.categoryList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.quit) {
			return m, tea.Quit
		}
		switch m.view {
		case LoginView:
			return m.handleLoginKeys(msg)
		case LinkSentView:
			return m.handleLinkSentKeys(msg)
		case LessonFormView:
			return m.handleLessonKeys(msg)
		case VideoFormView:
			return m.handleVideoKeys(msg)
		case CategoryPickView:
			return m.handleCategoryPickKeys(msg)
		case ConfirmDeleteView:
			return m.handleConfirmDeleteKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}
		return m, nil

	case sessionCheckedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.session = msg.session
		if m.session == nil {
			m.view = LoginView
		} else {
			m.view = LessonFormView
		}
		return m, nil

	case linkSentMsg:
		if msg.err != nil {
			m.loginErr = msg.err
			return m, nil
		}
		m.loginErr = nil
		m.codeInput.SetValue("")
		m.codeInput.Focus()
		m.view = LinkSentView
		return m, nil

	case verifiedMsg:
		if msg.err != nil {
			m.loginErr = msg.err
			return m, nil
		}
		m.session = msg.session
		m.loginErr = nil
		m.view = LessonFormView
		return m, nil

	case signedOutMsg:
		m.session = nil
		m.emailInput.SetValue("")
		m.emailInput.Focus()
		m.loginFocus = loginEmailFocus
		m.view = LoginView
		return m, nil

	case intakeLoadedMsg:
		if msg.err != nil {
			m.intakeNotice = fmt.Sprintf("intake failed: %v", msg.err)
		} else {
			m.intakeNotice = fmt.Sprintf("loaded %d image(s)", msg.added)
			m.lesson.sync()
		}
		return m, nil

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case lessonSubmittedMsg:
		m.lessonResult = msg.result
		m.submitErr = msg.err
		m.view = ResultView
		m.progressChan = nil
		if msg.err == nil {
			m.lesson.rebuild()
		}
		return m, nil

	case videoSubmittedMsg:
		m.videoResult = msg.result
		m.submitErr = msg.err
		m.view = ResultView
		m.progressChan = nil
		if msg.err == nil {
			m.video.rebuild()
		}
		return m, nil
	}

	return m.updateInputs(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress ctrl+c to quit", m.err))
	}

	switch m.view {
	case GateView:
		return styles.help.Render("Checking session…")
	case LoginView:
		return m.renderLogin()
	case LinkSentView:
		return m.renderLinkSent()
	case LessonFormView:
		return m.renderLessonForm()
	case VideoFormView:
		return m.renderVideoForm()
	case CategoryPickView:
		return m.categoryList.View()
	case ConfirmDeleteView:
		return m.renderConfirmDelete()
	case SubmitView:
		return m.renderSubmit()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.next), key.Matches(msg, m.keys.prev):
		if m.loginFocus == loginEmailFocus {
			m.loginFocus = loginProviderFocus
			m.emailInput.Blur()
		} else {
			m.loginFocus = loginEmailFocus
			m.emailInput.Focus()
		}
		return m, nil

	case key.Matches(msg, m.keys.up), key.Matches(msg, m.keys.down):
		if m.loginFocus == loginProviderFocus {
			m.providerIndex = (m.providerIndex + 1) % len(loginProviders)
			return m, nil
		}

	case key.Matches(msg, m.keys.enter):
		if m.loginFocus == loginProviderFocus {
			return m, m.signInWithProvider(loginProviders[m.providerIndex])
		}
		email := strings.TrimSpace(m.emailInput.Value())
		if email == "" {
			return m, nil
		}
		return m, m.sendLink(email)
	}

	var cmd tea.Cmd
	m.emailInput, cmd = m.emailInput.Update(msg)
	return m, cmd
}

func (m *Model) handleLinkSentKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		m.view = LoginView
		m.emailInput.Focus()
		return m, nil
	case key.Matches(msg, m.keys.enter):
		code := strings.TrimSpace(m.codeInput.Value())
		if code == "" {
			return m, nil
		}
		return m, m.verifyCode(strings.TrimSpace(m.emailInput.Value()), code)
	}

	var cmd tea.Cmd
	m.codeInput, cmd = m.codeInput.Update(msg)
	return m, cmd
}

func (m *Model) handleCategoryPickKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		m.view = m.pickerReturn
		return m, nil
	case key.Matches(msg, m.keys.enter):
		selected := m.categoryList.SelectedItem()
		switch item := selected.(type) {
		case lessonCategoryItem:
			m.lesson.draft.Category = item.name
		case videoCategoryItem:
			m.video.draft.CategoryKey = item.category.Key
		}
		m.view = m.pickerReturn
		return m, nil
	}

	var cmd tea.Cmd
	m.categoryList, cmd = m.categoryList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmDeleteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.yes):
		m.lesson.removeStep(m.deleteIndex)
		m.view = m.deleteReturn
		return m, nil
	case key.Matches(msg, m.keys.no), key.Matches(msg, m.keys.back):
		m.view = m.deleteReturn
		return m, nil
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.restart), key.Matches(msg, m.keys.back):
		m.submitErr = nil
		m.lessonResult = nil
		m.videoResult = nil
		if m.submitKind == "video" {
			m.view = VideoFormView
		} else {
			m.view = LessonFormView
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case LoginView:
		m.emailInput, cmd = m.emailInput.Update(msg)
	case LinkSentView:
		m.codeInput, cmd = m.codeInput.Update(msg)
	case CategoryPickView:
		m.categoryList, cmd = m.categoryList.Update(msg)
	}
	return m, cmd
}

func (m *Model) openCategoryPicker(from ViewState) {
	width, height := m.width-4, m.height-8
	if width <= 0 {
		width, height = 60, 20
	}
	if from == VideoFormView {
		m.categoryList = newVideoCategoryList(width, height)
	} else {
		m.categoryList = newLessonCategoryList(width, height)
	}
	m.pickerReturn = from
	m.view = CategoryPickView
}

func (m *Model) checkSession() tea.Cmd {
	return func() tea.Msg {
		session, err := m.auth.GetSession(m.ctx)
		return sessionCheckedMsg{session: session, err: err}
	}
}

func (m *Model) sendLink(email string) tea.Cmd {
	return func() tea.Msg {
		err := m.auth.SignInWithLink(m.ctx, email)
		return linkSentMsg{email: email, err: err}
	}
}

func (m *Model) verifyCode(email, code string) tea.Cmd {
	return func() tea.Msg {
		session, err := m.auth.VerifyLinkCode(m.ctx, email, code)
		return verifiedMsg{session: session, err: err}
	}
}

func (m *Model) signInWithProvider(provider string) tea.Cmd {
	return func() tea.Msg {
		session, err := m.auth.SignInWithProvider(m.ctx, provider)
		return verifiedMsg{session: session, err: err}
	}
}

func (m *Model) signOut() tea.Cmd {
	return func() tea.Msg {
		return signedOutMsg{err: m.auth.SignOut(m.ctx)}
	}
}

func (m *Model) loadIntake() tea.Cmd {
	dir := m.intakeDir
	draft := m.lesson.draft
	return func() tea.Msg {
		if dir == "" {
			return intakeLoadedMsg{err: fmt.Errorf("no intake directory configured")}
		}
		files, err := content.ReadIntakeDir(dir)
		if err != nil {
			return intakeLoadedMsg{err: err}
		}
		return intakeLoadedMsg{added: draft.Intake(files)}
	}
}

func (m *Model) startLessonSubmit() tea.Cmd {
	m.submitKind = "lesson"
	m.progress = tasks.ProgressUpdate{}
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	ch := m.progressChan
	draft := m.lesson.draft

	go func() {
		result, err := m.engine.SubmitLesson(m.ctx, ch, draft)
		m.lessonResult = result
		m.submitErr = err
		close(ch)
	}()

	m.view = SubmitView
	return m.waitForProgress()
}

func (m *Model) startVideoSubmit() tea.Cmd {
	m.submitKind = "video"
	m.progress = tasks.ProgressUpdate{}
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	ch := m.progressChan
	draft := m.video.draft

	go func() {
		result, err := m.engine.SubmitVideo(m.ctx, ch, draft)
		m.videoResult = result
		m.submitErr = err
		close(ch)
	}()

	m.view = SubmitView
	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	kind := m.submitKind
	ch := m.progressChan
	return func() tea.Msg {
		if ch == nil {
			return m.completionMsg(kind)
		}
		update, ok := <-ch
		if !ok {
			return m.completionMsg(kind)
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) completionMsg(kind string) tea.Msg {
	if kind == "video" {
		return videoSubmittedMsg{result: m.videoResult, err: m.submitErr}
	}
	return lessonSubmittedMsg{result: m.lessonResult, err: m.submitErr}
}

func (m *Model) renderLogin() string {
	title := styles.title.Render("Sign In")

	emailLabel := "  Email"
	providerLabel := "  Provider"
	if m.loginFocus == loginEmailFocus {
		emailLabel = styles.ok.Render("> Email")
	} else {
		providerLabel = styles.ok.Render("> Provider")
	}

	body := fmt.Sprintf("%s  %s\n%s  %s",
		emailLabel, m.emailInput.View(),
		providerLabel, loginProviders[m.providerIndex],
	)

	var errLine string
	if m.loginErr != nil {
		errLine = "\n" + styles.err.Render(fmt.Sprintf("sign-in failed: %v", m.loginErr))
	}

	helpKeys := []key.Binding{m.keys.next, m.keys.enter, m.keys.quit}
	return fmt.Sprintf("%s\n%s%s\n\n%s", title, body, errLine, m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderLinkSent() string {
	title := styles.title.Render("Check Your Email")
	body := fmt.Sprintf("A sign-in link was sent to %s.\nEnter the one-time code from the email:\n\n%s",
		m.emailInput.Value(), m.codeInput.View())

	var errLine string
	if m.loginErr != nil {
		errLine = "\n" + styles.err.Render(fmt.Sprintf("verification failed: %v", m.loginErr))
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.back, m.keys.quit}
	return fmt.Sprintf("%s\n%s%s\n\n%s", title, body, errLine, m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderConfirmDelete() string {
	title := styles.title.Render(fmt.Sprintf("Delete step %d?", m.deleteIndex+1))
	helpKeys := []key.Binding{m.keys.yes, m.keys.no}
	return fmt.Sprintf("%s\n%s", title, m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderSubmit() string {
	title := styles.title.Render("Submitting")

	var phase string
	switch m.progress.Phase {
	case tasks.ValidateDraft:
		phase = "Validating draft..."
	case tasks.UploadPreview:
		phase = "Uploading preview..."
	case tasks.UploadSteps:
		phase = fmt.Sprintf("Uploading steps (%d/%d)", m.progress.Step, m.progress.Total)
	case tasks.InsertRecord:
		phase = "Inserting record..."
	case tasks.Done:
		phase = "Finishing..."
	default:
		phase = "Working..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}

func (m *Model) renderResult() string {
	if m.submitErr != nil {
		return styles.err.Render(fmt.Sprintf("Submission failed: %v", m.submitErr)) +
			"\n\n" + m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit})
	}

	var info string
	switch {
	case m.lessonResult != nil:
		info = fmt.Sprintf("\nFolder: %s\nSteps uploaded: %d\nTitle: %s",
			m.lessonResult.Folder, m.lessonResult.Steps, m.lessonResult.Record.Title)
	case m.videoResult != nil:
		info = fmt.Sprintf("\nRecord: %s\nStatus: %s",
			m.videoResult.Record.ID, m.videoResult.Record.Status)
	}

	title := styles.ok.Render("✓ Saved")
	helpKeys := []key.Binding{m.keys.restart, m.keys.quit}
	return fmt.Sprintf("%s%s\n\n%s", title, info, m.help.ShortHelpView(helpKeys))
}
