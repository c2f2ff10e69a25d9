package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/fydblock/fydadmin/internal/api"
	"github.com/fydblock/fydadmin/internal/collection"
	"github.com/fydblock/fydadmin/internal/domain"
	"github.com/fydblock/fydadmin/pkg/logger"
)

var uiLog *logrus.Entry

type screen int

const (
	screenLogin screen = iota
	screenOverview
	screenBots
	screenUsers
	screenLogs
)

var tabs = []struct {
	screen screen
	label  string
}{
	{screenOverview, "Overview"},
	{screenBots, "Bots"},
	{screenUsers, "Users"},
	{screenLogs, "Logs"},
}

// App is the root bubbletea model for the admin console.
type App struct {
	client *api.Client
	screen screen
	width  int
	height int
	status string

	login loginForm

	overview      domain.Overview
	overviewPhase collection.Phase
	overviewErr   error

	bots  collection.Model[domain.Bot]
	users collection.Model[domain.User]
	logs  collection.Model[domain.LogEntry]

	botCursor  int
	userCursor int
	logCursor  int

	// Bumped on every fetch start; responses carrying an older value
	// are dropped.
	botGen      int
	userGen     int
	logGen      int
	overviewGen int

	searching   bool
	searchInput textField

	botForm  *botForm
	userForm *userForm
	confirm  *confirmDialog
}

func NewApp(client *api.Client) *App {
	uiLog = logger.WithField("module", "tui")
	return &App{
		client: client,
		login:  newLoginForm(),
		bots:   collection.New[domain.Bot](),
		users:  collection.New[domain.User](),
		logs:   collection.New[domain.LogEntry](),
	}
}

// Run blocks until the user quits or the program fails.
func Run(client *api.Client) error {
	app := NewApp(client)
	if _, ok, _ := client.HasSession(); ok {
		app.screen = screenOverview
	}
	_, err := tea.NewProgram(app, tea.WithAltScreen()).Run()
	return err
}

func (a *App) Init() tea.Cmd {
	if a.screen == screenLogin {
		return nil
	}
	return tea.Batch(a.refreshAll(), logsTick())
}

func (a *App) refreshAll() tea.Cmd {
	a.overviewGen++
	a.overviewPhase = collection.Loading
	a.botGen++
	a.bots.StartFetch()
	a.userGen++
	a.users.StartFetch()
	a.logGen++
	a.logs.StartFetch()
	return tea.Batch(
		fetchOverview(a.client, a.overviewGen),
		fetchBots(a.client, a.botGen),
		fetchUsers(a.client, a.userGen),
		fetchLogs(a.client, a.logGen),
	)
}

func (a *App) refreshActive() tea.Cmd {
	switch a.screen {
	case screenOverview:
		a.client.InvalidateOverview()
		a.overviewGen++
		a.overviewPhase = collection.Loading
		return fetchOverview(a.client, a.overviewGen)
	case screenBots:
		a.botGen++
		a.bots.StartFetch()
		return fetchBots(a.client, a.botGen)
	case screenUsers:
		a.userGen++
		a.users.StartFetch()
		return fetchUsers(a.client, a.userGen)
	case screenLogs:
		a.logGen++
		a.logs.StartFetch()
		return fetchLogs(a.client, a.logGen)
	}
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil
	case tea.KeyMsg:
		return a.handleKey(msg)
	case loginDoneMsg:
		return a.handleLoginDone(msg)
	case overviewFetchedMsg:
		if msg.gen != a.overviewGen {
			return a, nil
		}
		if cmd, expired := a.checkSession(msg.err); expired {
			return a, cmd
		}
		if msg.err != nil {
			a.overviewPhase = collection.Failed
			a.overviewErr = msg.err
		} else {
			a.overviewPhase = collection.Loaded
			a.overviewErr = nil
			a.overview = msg.data
		}
		return a, nil
	case botsFetchedMsg:
		if msg.gen != a.botGen {
			return a, nil
		}
		if cmd, expired := a.checkSession(msg.err); expired {
			return a, cmd
		}
		if msg.err != nil {
			a.bots.FetchFailed(msg.err)
		} else {
			a.bots.FetchSucceeded(msg.items)
		}
		a.clampCursors()
		return a, nil
	case usersFetchedMsg:
		if msg.gen != a.userGen {
			return a, nil
		}
		if cmd, expired := a.checkSession(msg.err); expired {
			return a, cmd
		}
		if msg.err != nil {
			a.users.FetchFailed(msg.err)
		} else {
			a.users.FetchSucceeded(msg.items)
		}
		a.clampCursors()
		return a, nil
	case logsFetchedMsg:
		if msg.gen != a.logGen {
			return a, nil
		}
		if cmd, expired := a.checkSession(msg.err); expired {
			return a, cmd
		}
		if msg.err != nil {
			a.logs.FetchFailed(msg.err)
		} else {
			a.logs.FetchSucceeded(msg.items)
		}
		a.clampCursors()
		return a, nil
	case logsTickMsg:
		if a.screen == screenLogs && !a.logs.Loading() {
			a.logGen++
			a.logs.StartFetch()
			return a, tea.Batch(fetchLogs(a.client, a.logGen), logsTick())
		}
		return a, logsTick()
	case botSavedMsg:
		return a.handleBotSaved(msg)
	case userSavedMsg:
		return a.handleUserSaved(msg)
	case botDeletedMsg:
		return a.handleBotDeleted(msg)
	case userDeletedMsg:
		return a.handleUserDeleted(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	if a.screen == screenLogin {
		if a.login.handleKey(msg) {
			return a, doLogin(a.client, a.login.email.value, a.login.password.value)
		}
		return a, nil
	}

	// Modals swallow all keys while open.
	if a.confirm != nil {
		confirmed, dismissed := a.confirm.handleKey(msg)
		if dismissed {
			a.confirm = nil
			return a, nil
		}
		if confirmed {
			if a.confirm.kind == confirmDeleteBot {
				return a, deleteBot(a.client, a.confirm.id)
			}
			return a, deleteUser(a.client, a.confirm.id)
		}
		return a, nil
	}
	if a.botForm != nil {
		done, submit := a.botForm.handleKey(msg)
		if submit {
			return a, saveBot(a.client, a.botForm.draft)
		}
		if done {
			a.botForm = nil
		}
		return a, nil
	}
	if a.userForm != nil {
		done, submit := a.userForm.handleKey(msg)
		if submit {
			return a, saveUser(a.client, a.userForm.userID, a.userForm.draft)
		}
		if done {
			a.userForm = nil
		}
		return a, nil
	}

	if a.searching {
		switch msg.String() {
		case "enter":
			a.searching = false
		case "esc":
			a.searching = false
			a.searchInput.value = ""
			a.setSearchTerm("")
		default:
			a.searchInput.handleKey(msg)
			a.setSearchTerm(a.searchInput.value)
		}
		a.clampCursors()
		return a, nil
	}

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "tab":
		a.switchTab(1)
		return a, nil
	case "shift+tab":
		a.switchTab(-1)
		return a, nil
	case "1", "2", "3", "4":
		a.screen = tabs[int(msg.String()[0]-'1')].screen
		a.syncSearchInput()
		return a, nil
	case "/":
		if a.screen != screenOverview {
			a.searching = true
		}
		return a, nil
	case "f":
		a.cycleStatusFilter()
		a.clampCursors()
		return a, nil
	case "r":
		a.status = ""
		return a, a.refreshActive()
	case "up", "k":
		a.moveCursor(-1)
		return a, nil
	case "down", "j":
		a.moveCursor(1)
		return a, nil
	case "n":
		if a.screen == screenBots {
			a.botForm = newBotForm(domain.NewBotDraft())
		}
		return a, nil
	case "e", "enter":
		a.openEditor()
		return a, nil
	case "d":
		a.openDeleteConfirm()
		return a, nil
	case "L":
		if a.screen == screenBots {
			return a, a.followLogsHint()
		}
		return a, nil
	}
	return a, nil
}

func (a *App) handleLoginDone(msg loginDoneMsg) (tea.Model, tea.Cmd) {
	a.login.busy = false
	if msg.err != nil {
		var apiErr *api.APIError
		if errors.As(msg.err, &apiErr) {
			a.login.errText = apiErr.Message
		} else {
			a.login.errText = msg.err.Error()
		}
		return a, nil
	}
	uiLog.Info("login succeeded")
	a.login = newLoginForm()
	a.screen = screenOverview
	return a, tea.Batch(a.refreshAll(), logsTick())
}

// checkSession drops the user back to the login screen when the server
// rejected the token. The client has already cleared the stored session.
func (a *App) checkSession(err error) (tea.Cmd, bool) {
	if err == nil || !errors.Is(err, api.ErrSessionExpired) && !errors.Is(err, api.ErrNoSession) {
		return nil, false
	}
	uiLog.Warn("session expired, returning to login")
	a.screen = screenLogin
	a.login = newLoginForm()
	a.login.errText = "session expired, sign in again"
	a.botForm = nil
	a.userForm = nil
	a.confirm = nil
	return nil, true
}

func (a *App) handleBotSaved(msg botSavedMsg) (tea.Model, tea.Cmd) {
	if a.botForm != nil {
		a.botForm.busy = false
	}
	if cmd, expired := a.checkSession(msg.err); expired {
		return a, cmd
	}
	if msg.err != nil {
		if a.botForm != nil {
			a.botForm.errText = msg.err.Error()
		}
		return a, nil
	}
	a.botForm = nil
	a.client.InvalidateOverview()
	if msg.created {
		// The server assigns the ID, so a refetch is the only way to
		// pick the new bot up.
		a.status = "bot created"
		a.botGen++
		a.bots.StartFetch()
		return a, fetchBots(a.client, a.botGen)
	}
	a.status = "bot updated"
	a.bots.Patch(msg.id, msg.draft.Apply)
	return a, nil
}

func (a *App) handleUserSaved(msg userSavedMsg) (tea.Model, tea.Cmd) {
	if a.userForm != nil {
		a.userForm.busy = false
	}
	if cmd, expired := a.checkSession(msg.err); expired {
		return a, cmd
	}
	if msg.err != nil {
		if a.userForm != nil {
			a.userForm.errText = msg.err.Error()
		}
		return a, nil
	}
	a.userForm = nil
	a.status = "user updated"
	a.users.Patch(msg.id, msg.draft.Apply)
	return a, nil
}

func (a *App) handleBotDeleted(msg botDeletedMsg) (tea.Model, tea.Cmd) {
	a.confirm = nil
	if cmd, expired := a.checkSession(msg.err); expired {
		return a, cmd
	}
	if msg.err != nil {
		a.status = "delete failed: " + msg.err.Error()
		return a, nil
	}
	a.bots.Remove(msg.id)
	a.client.InvalidateOverview()
	a.status = "bot deleted"
	a.clampCursors()
	return a, nil
}

func (a *App) handleUserDeleted(msg userDeletedMsg) (tea.Model, tea.Cmd) {
	a.confirm = nil
	if cmd, expired := a.checkSession(msg.err); expired {
		return a, cmd
	}
	if msg.err != nil {
		a.status = "delete failed: " + msg.err.Error()
		return a, nil
	}
	a.users.Remove(msg.id)
	a.client.InvalidateOverview()
	a.status = "user deleted"
	a.clampCursors()
	return a, nil
}

func (a *App) switchTab(dir int) {
	for i, t := range tabs {
		if t.screen == a.screen {
			a.screen = tabs[(i+dir+len(tabs))%len(tabs)].screen
			a.syncSearchInput()
			return
		}
	}
	a.screen = screenOverview
}

// syncSearchInput mirrors the active screen's committed term back into
// the shared input so "/" resumes editing it.
func (a *App) syncSearchInput() {
	switch a.screen {
	case screenBots:
		a.searchInput.value = a.bots.SearchTerm
	case screenUsers:
		a.searchInput.value = a.users.SearchTerm
	case screenLogs:
		a.searchInput.value = a.logs.SearchTerm
	default:
		a.searchInput.value = ""
	}
}

func (a *App) setSearchTerm(term string) {
	switch a.screen {
	case screenBots:
		a.bots.SearchTerm = term
	case screenUsers:
		a.users.SearchTerm = term
	case screenLogs:
		a.logs.SearchTerm = term
	}
}

var (
	botFilterCycle  = []string{domain.FilterStatusAll, string(domain.BotStatusActive), string(domain.BotStatusPaused), string(domain.BotStatusCrashed)}
	userFilterCycle = []string{domain.FilterStatusAll, domain.UserStatusActive, domain.UserStatusSuspended}
	logFilterCycle  = []string{domain.FilterStatusAll, domain.LogLevelError, domain.LogLevelWarning, domain.LogLevelInfo}
)

func (a *App) cycleStatusFilter() {
	next := func(cycle []string, current string) string {
		for i, v := range cycle {
			if v == current {
				return cycle[(i+1)%len(cycle)]
			}
		}
		return cycle[0]
	}
	switch a.screen {
	case screenBots:
		a.bots.StatusFilter = next(botFilterCycle, a.bots.StatusFilter)
	case screenUsers:
		a.users.StatusFilter = next(userFilterCycle, a.users.StatusFilter)
	case screenLogs:
		a.logs.StatusFilter = next(logFilterCycle, a.logs.StatusFilter)
	}
}

func (a *App) moveCursor(dir int) {
	clamp := func(cur, n int) int {
		cur += dir
		if cur < 0 {
			cur = 0
		}
		if cur > n-1 {
			cur = n - 1
		}
		if n == 0 {
			cur = 0
		}
		return cur
	}
	switch a.screen {
	case screenBots:
		a.botCursor = clamp(a.botCursor, len(a.bots.Visible()))
	case screenUsers:
		a.userCursor = clamp(a.userCursor, len(a.users.Visible()))
	case screenLogs:
		a.logCursor = clamp(a.logCursor, len(a.logs.Visible()))
	}
}

func (a *App) clampCursors() {
	clamp := func(cur, n int) int {
		if n == 0 {
			return 0
		}
		if cur > n-1 {
			return n - 1
		}
		return cur
	}
	a.botCursor = clamp(a.botCursor, len(a.bots.Visible()))
	a.userCursor = clamp(a.userCursor, len(a.users.Visible()))
	a.logCursor = clamp(a.logCursor, len(a.logs.Visible()))
}

func (a *App) selectedBot() (domain.Bot, bool) {
	visible := a.bots.Visible()
	if a.botCursor >= len(visible) {
		return domain.Bot{}, false
	}
	return visible[a.botCursor], true
}

func (a *App) selectedUser() (domain.User, bool) {
	visible := a.users.Visible()
	if a.userCursor >= len(visible) {
		return domain.User{}, false
	}
	return visible[a.userCursor], true
}

func (a *App) openEditor() {
	switch a.screen {
	case screenBots:
		if b, ok := a.selectedBot(); ok {
			a.botForm = newBotForm(domain.DraftFromBot(b))
		}
	case screenUsers:
		if u, ok := a.selectedUser(); ok {
			a.userForm = newUserForm(u)
		}
	}
}

func (a *App) openDeleteConfirm() {
	switch a.screen {
	case screenBots:
		if b, ok := a.selectedBot(); ok {
			a.confirm = &confirmDialog{kind: confirmDeleteBot, id: b.ID, label: b.Name}
		}
	case screenUsers:
		if u, ok := a.selectedUser(); ok {
			a.confirm = &confirmDialog{kind: confirmDeleteUser, id: u.ID, label: u.Email}
		}
	}
}

// followLogsHint shows the command that streams the selected bot's logs.
// The TUI stays up; live streaming is a plain stdout flow and fights the
// alternate screen.
func (a *App) followLogsHint() tea.Cmd {
	if b, ok := a.selectedBot(); ok {
		a.status = fmt.Sprintf("run `fydadmin logs --follow %s` to stream", b.ID)
	}
	return nil
}
