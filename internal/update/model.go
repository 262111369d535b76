package update

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sandeepkv93/studyboard/internal/config"
	"github.com/sandeepkv93/studyboard/internal/logger"
	"github.com/sandeepkv93/studyboard/internal/model"
	studyprogress "github.com/sandeepkv93/studyboard/internal/progress"
	"github.com/sandeepkv93/studyboard/internal/scheduler"
	"github.com/sandeepkv93/studyboard/internal/theme"
	"github.com/sandeepkv93/studyboard/internal/timer"
	"github.com/sandeepkv93/studyboard/internal/tracker"
	"github.com/sandeepkv93/studyboard/internal/views"
)

type View string

const (
	ViewDashboard View = "Dashboard"
	ViewPlanner   View = "Planer"
	ViewExams     View = "Prüfungen"
	ViewStudy     View = "Lernen"
)

var viewOrder = []View{ViewDashboard, ViewPlanner, ViewExams, ViewStudy}

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Dashboard string
	Planner   string
	Exams     string
	Study     string
	Theme     string
	Help      string
	Quit      string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	CurrentView    View
	PlannerFilter  studyprogress.Filter
	PlannerCursor  int
	DashCursor     int
	ExamCursor     int
	Focus          timer.Focus
	Scheduler      *scheduler.Engine
	AlertLog       []scheduler.Alert
	Palette        CommandPaletteState
	HelpVisible    bool
	Notifications  []Notification
	DesktopEnabled bool
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error
	Now            time.Time

	svc         *tracker.Service
	log         *logger.Logger
	state       model.AppState
	notifier    DesktopNotifier
	prefersDark bool
	backupDir   string
	alertTimes  scheduler.AlertTimes
	styles      views.Styles

	commandInput  textinput.Model
	levelBar      progress.Model
	goalBar       progress.Model
	examTable     table.Model
	focusSpinner  spinner.Model
	helpModel     help.Model
	notesViewport viewport.Model
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// TickMsg drives countdowns and the focus clock once per second.
type TickMsg struct {
	At time.Time
}

type AlertDueMsg struct {
	Alert scheduler.Alert
}

type Option func(*Model)

func WithScheduler(engine *scheduler.Engine) Option {
	return func(m *Model) { m.Scheduler = engine }
}

func WithNotifier(n DesktopNotifier) Option {
	return func(m *Model) {
		if n != nil {
			m.notifier = n
		}
	}
}

func WithLogger(l *logger.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.log = l
		}
	}
}

// WithPrefersDark overrides the terminal background probe.
func WithPrefersDark(dark bool) Option {
	return func(m *Model) { m.prefersDark = dark }
}

func WithConfig(cfg config.RuntimeConfig) Option {
	return func(m *Model) {
		m.DesktopEnabled = cfg.DesktopNotifications
		if cfg.BackupDir != "" {
			m.backupDir = cfg.BackupDir
		}
	}
}

func NewModel(svc *tracker.Service, opts ...Option) Model {
	m := Model{
		CurrentView:   ViewDashboard,
		PlannerFilter: studyprogress.DefaultFilter(),
		Keys: GlobalKeyMap{
			Dashboard: "1",
			Planner:   "2",
			Exams:     "3",
			Study:     "4",
			Theme:     "T",
			Help:      "?",
			Quit:      "q",
		},
		svc:        svc,
		log:        logger.Nop(),
		notifier:   NoopDesktopNotifier{},
		backupDir:  ".",
		alertTimes: scheduler.DefaultAlertTimes,
	}
	m.prefersDark = true
	for _, opt := range opts {
		opt(&m)
	}
	m.log = m.log.WithComponent("tui")
	m.Now = svc.Now()
	m.initBubbleComponents()
	m.refresh()
	m.rearmAlerts()
	return m
}

func (m *Model) initBubbleComponents() {
	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48
	m.commandInput.Placeholder = "add Mathe: Blatt 3 due:morgen prio:hoch"

	cols := []table.Column{
		{Title: "Datum", Width: 11},
		{Title: "Fach", Width: 12},
		{Title: "Thema", Width: 18},
		{Title: "Tage", Width: 5},
	}
	m.examTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(8))

	m.focusSpinner = spinner.New()
	m.focusSpinner.Spinner = spinner.Dot

	m.helpModel = help.New()
	m.notesViewport = viewport.New(46, 8)
}

// refresh reloads the snapshot and everything derived from it.
func (m *Model) refresh() {
	m.state = m.svc.State()
	m.applyTheme()
	m.clampCursors()
	m.syncBubbleData()
}

func (m *Model) applyTheme() {
	mode := theme.Resolve(m.state.Theme, m.prefersDark)
	p := theme.For(mode)
	m.styles = views.NewStyles(p)
	m.levelBar = progress.New(progress.WithSolidFill(p.BarFilled), progress.WithWidth(40))
	m.levelBar.EmptyColor = p.BarEmpty
	m.goalBar = progress.New(progress.WithSolidFill(p.BarFilled), progress.WithWidth(40))
	m.goalBar.EmptyColor = p.BarEmpty
}

func (m *Model) clampCursors() {
	m.PlannerCursor = clamp(m.PlannerCursor, len(m.plannerRows()))
	m.DashCursor = clamp(m.DashCursor, len(studyprogress.DueToday(m.state.Tasks, m.Now)))
	m.ExamCursor = clamp(m.ExamCursor, len(m.state.Exams))
}

func clamp(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}

func (m *Model) syncBubbleData() {
	exams := m.sortedExams()
	rows := make([]table.Row, 0, len(exams))
	for _, e := range exams {
		days := m.daysUntil(e.Date)
		rows = append(rows, table.Row{e.Date, e.Subject, e.Title(), fmt.Sprintf("%d", days)})
	}
	m.examTable.SetRows(rows)
	if len(rows) > 0 {
		m.examTable.SetCursor(m.ExamCursor)
	}

	if task, ok := m.selectedPlannerTask(); ok {
		md := task.Notes
		if md == "" {
			md = "_Keine Notizen_"
		}
		m.notesViewport.SetContent(views.RenderMarkdown(md, m.styles.Palette.Mode))
	} else {
		m.notesViewport.SetContent("")
	}
	if m.Palette.Active {
		m.commandInput.Focus()
	}
}

func (m Model) ctx() context.Context {
	return context.Background()
}
