// Package app composes the calendar TUI: the month grid at the bottom and
// the modal overlay stack above it, driven by the modal orchestrator and
// the month load coordinator.
package app

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/nestcal/nestcal/pkg/bus"
	"github.com/nestcal/nestcal/pkg/dateutil"
	"github.com/nestcal/nestcal/pkg/diary"
	"github.com/nestcal/nestcal/pkg/event"
	"github.com/nestcal/nestcal/pkg/log"
	"github.com/nestcal/nestcal/pkg/modal"
	"github.com/nestcal/nestcal/pkg/monthload"
	"github.com/nestcal/nestcal/pkg/repository"
	"github.com/nestcal/nestcal/pkg/tui/components/addevent"
	"github.com/nestcal/nestcal/pkg/tui/components/daypanel"
	"github.com/nestcal/nestcal/pkg/tui/components/detailpane"
	"github.com/nestcal/nestcal/pkg/tui/components/diaryform"
	"github.com/nestcal/nestcal/pkg/tui/components/monthgrid"
	"github.com/nestcal/nestcal/pkg/tui/events"
	"github.com/nestcal/nestcal/pkg/tui/surface"
	"github.com/nestcal/nestcal/pkg/tui/theme"
	"github.com/nestcal/nestcal/pkg/tui/ui/overlay"
)

// runDeferredMsg carries scheduled continuations back into Update so they
// run on the single goroutine that owns the orchestrator.
type runDeferredMsg struct {
	fns []func()
}

type monthLoadedMsg struct{}

type eventSavedMsg struct {
	title string
	err   error
}

type eventDeletedMsg struct {
	err error
}

type diarySavedMsg struct {
	err error
}

type busNoteMsg struct {
	note bus.Msg
}

// Config wires the root model.
type Config struct {
	Surface      *surface.Surface
	Coordinator  *monthload.Coordinator
	Orchestrator *modal.Orchestrator
	Scheduler    *QueueScheduler
	Bus          *bus.Bus
	Diaries      repository.Diaries
	DueDate      dateutil.Day
}

// Model is the root Bubble Tea model.
type Model struct {
	theme theme.Theme

	surface *surface.Surface
	coord   *monthload.Coordinator
	orch    *modal.Orchestrator
	sched   *QueueScheduler
	bus     *bus.Bus
	diaries repository.Diaries
	due     dateutil.Day

	grid   *monthgrid.Model
	day    *daypanel.Model
	detail *detailpane.Model
	add    *addevent.Model
	picker *diaryform.Picker
	form   *diaryform.Form

	busCh <-chan tea.Msg

	status string
	width  int
	height int
}

// New constructs the root model.
func New(cfg Config) *Model {
	t := theme.Default()
	m := &Model{
		theme:   t,
		surface: cfg.Surface,
		coord:   cfg.Coordinator,
		orch:    cfg.Orchestrator,
		sched:   cfg.Scheduler,
		bus:     cfg.Bus,
		diaries: cfg.Diaries,
		due:     cfg.DueDate,
		grid:    monthgrid.NewModel("grid", t.Grid),
		day:     daypanel.NewModel("day-panel", t.Panel),
		detail:  detailpane.NewModel("detail", t.Modal),
		status:  "Ready",
	}
	if cfg.Bus != nil {
		m.busCh = busMessages(cfg.Bus)
	}
	return m
}

// Run launches the Bubble Tea program.
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init starts the initial month load and the channel subscriptions.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadCurrentMonth(), m.listenSurface()}
	if m.busCh != nil {
		cmds = append(cmds, m.listenBus())
	}
	return tea.Batch(cmds...)
}

// Update routes messages to the grid or the topmost overlay.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.noteEvent(msg)

	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		m.grid.SetSize(v.Width, v.Height-2)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(v)

	case events.MonthChangeMsg:
		year, month := v.Year, v.Month
		return m, m.navigate(func(ctx context.Context) { m.coord.GoToMonth(ctx, year, month) })

	case events.SurfaceUpdatedMsg:
		snap := m.surface.View()
		m.grid.SetMonth(snap.Year, snap.Month)
		m.grid.SetData(snap.Events, m.coord.Summaries())
		return m, m.listenSurface()

	case busNoteMsg:
		m.status = v.note.Describe()
		m.syncDayPanel()
		return m, m.listenBus()

	case events.DaySelectMsg:
		m.orch.OpenDayEvents(context.Background(), v.Date)
		if m.orch.State().Has(modal.LayerDayEvents) {
			m.day.SetLoading(v.Date)
		}
		return m, m.drain()

	case events.EventSelectMsg:
		m.orch.OpenEventDetail(context.Background(), v.Event)
		m.detail.ShowEvent(v.Event)
		return m, m.drain()

	case events.SummarySelectMsg:
		m.orch.OpenSummaryDetail(context.Background(), v.Summary)
		m.detail.ShowSummary(v.Summary)
		return m, m.drain()

	case events.SummaryDeleteRequestMsg:
		m.orch.DeleteSummary(context.Background(), v.Date)
		return m, m.drain()

	case events.OverlayDismissMsg:
		m.orch.Close()
		m.syncDayPanel()
		return m, m.drain()

	case events.AddEventCancelMsg:
		m.orch.Close()
		m.add = nil
		return m, nil

	case events.AddEventSubmitMsg:
		m.orch.Close()
		m.add = nil
		return m, m.createEvent(v.Draft)

	case events.DiaryKindChosenMsg:
		return m, m.openDiaryForm(v.Kind)

	case events.DiarySubmitMsg:
		m.orch.Close()
		m.form = nil
		return m, m.saveDiary(v.Entry)

	case runDeferredMsg:
		for _, fn := range v.fns {
			fn()
		}
		m.syncDayPanel()
		// Continuations may defer further work.
		return m, m.drain()

	case monthLoadedMsg:
		return m, nil

	case eventSavedMsg:
		if v.err != nil {
			m.status = fmt.Sprintf("Create failed: %v", v.err)
		} else {
			m.status = fmt.Sprintf("Created %q", v.title)
		}
		return m, nil

	case eventDeletedMsg:
		if v.err != nil {
			m.status = fmt.Sprintf("Delete failed: %v", v.err)
		} else {
			m.status = "Event deleted"
		}
		return m, nil

	case diarySavedMsg:
		if v.err != nil {
			m.status = fmt.Sprintf("Diary save failed: %v", v.err)
		} else {
			m.status = "Diary saved"
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.String() == "ctrl+c" {
		return m, tea.Quit
	}

	state := m.orch.State()

	// Standalone overlays own the keyboard completely.
	switch {
	case state.Has(modal.LayerAddEvent) && m.add != nil:
		var cmd tea.Cmd
		m.add, cmd = m.add.Update(key)
		return m, cmd
	case state.Has(modal.LayerDailyDiary) && m.form != nil,
		state.Has(modal.LayerBabyDiary) && m.form != nil:
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(key)
		return m, cmd
	case state.Has(modal.LayerDiaryTypeSelect) && m.picker != nil:
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(key)
		return m, cmd
	case state.Has(modal.LayerEventDetail), state.Has(modal.LayerLLMDetail):
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(key)
		return m, cmd
	case state.Has(modal.LayerDayEvents):
		switch key.String() {
		case "a":
			return m, m.openAddEvent(m.orch.Selection().Date)
		case "d":
			if ev, ok := m.day.CursorEvent(); ok {
				return m, m.deleteEvent(ev)
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.day, cmd = m.day.Update(key)
		return m, cmd
	}

	// Grid has focus.
	switch key.String() {
	case "q":
		return m, tea.Quit
	case "n":
		return m, m.navigate(func(ctx context.Context) { m.coord.Next(ctx) })
	case "p":
		return m, m.navigate(func(ctx context.Context) { m.coord.Prev(ctx) })
	case "t":
		return m, m.navigate(func(ctx context.Context) { m.coord.Today(ctx) })
	case "r":
		return m, m.navigate(func(ctx context.Context) { m.coord.Reload(ctx) })
	case "a":
		return m, m.openAddEvent(m.grid.Cursor())
	case "i":
		m.orch.OpenDiaryTypeSelect(m.grid.Cursor())
		m.picker = diaryform.NewPicker("diary-picker", m.theme.Modal)
		return m, nil
	}

	var cmd tea.Cmd
	m.grid, cmd = m.grid.Update(key)
	return m, cmd
}

// drain hands the scheduled continuations back through the message queue.
// The command only wraps them; they execute in Update, after the current
// frame renders, so the orchestrator stays single-threaded.
func (m *Model) drain() tea.Cmd {
	fns := m.sched.Drain()
	if len(fns) == 0 {
		return nil
	}
	return func() tea.Msg {
		return runDeferredMsg{fns: fns}
	}
}

func (m *Model) loadCurrentMonth() tea.Cmd {
	return m.navigate(func(ctx context.Context) { m.coord.Reload(ctx) })
}

func (m *Model) navigate(move func(context.Context)) tea.Cmd {
	return func() tea.Msg {
		move(context.Background())
		return monthLoadedMsg{}
	}
}

func (m *Model) openAddEvent(date dateutil.Day) tea.Cmd {
	if !date.Valid() {
		date = m.grid.Cursor()
	}
	m.orch.OpenAddEvent(date)
	m.add = addevent.NewModel("add-event", m.theme.Modal, date)
	return m.add.Init()
}

func (m *Model) openDiaryForm(kind diary.Kind) tea.Cmd {
	date := m.orch.Selection().Date
	if !date.Valid() {
		date = m.grid.Cursor()
	}
	if kind == diary.KindBaby {
		m.orch.OpenBabyDiary(date)
	} else {
		m.orch.OpenDailyDiary(date)
	}
	m.picker = nil
	week := 0
	if m.due.Valid() {
		week = diary.WeekOf(m.due, date)
	}
	m.form = diaryform.NewForm("diary-form", m.theme.Modal, date, kind, week)
	return m.form.Init()
}

func (m *Model) createEvent(draft event.RawEvent) tea.Cmd {
	return func() tea.Msg {
		_, err := m.coord.CreateEvent(context.Background(), draft)
		return eventSavedMsg{title: draft.Title, err: err}
	}
}

func (m *Model) deleteEvent(ev event.Event) tea.Cmd {
	return func() tea.Msg {
		return eventDeletedMsg{err: m.coord.DeleteEvent(context.Background(), ev.ID)}
	}
}

func (m *Model) saveDiary(entry diary.Entry) tea.Cmd {
	return func() tea.Msg {
		_, err := m.diaries.PutDiary(context.Background(), entry)
		return diarySavedMsg{err: err}
	}
}

// syncDayPanel pushes the orchestrator's day state into the panel when the
// day layer is open.
func (m *Model) syncDayPanel() {
	if !m.orch.State().Has(modal.LayerDayEvents) {
		return
	}
	sel := m.orch.Selection()
	m.day.SetContent(sel.Date, m.orch.DayEvents(), m.orch.Summaries(), m.orch.DayDiary())
}

func (m *Model) listenSurface() tea.Cmd {
	return func() tea.Msg {
		return <-m.surface.Repaint()
	}
}

func (m *Model) listenBus() tea.Cmd {
	return func() tea.Msg {
		return <-m.busCh
	}
}

// busMessages adapts the notification bus channel for Bubble Tea.
func busMessages(b *bus.Bus) <-chan tea.Msg {
	ch := make(chan tea.Msg, 16)
	sub := b.Subscribe()
	go func() {
		for msg := range sub {
			ch <- busNoteMsg{note: msg}
		}
		close(ch)
	}()
	return ch
}

func (m *Model) noteEvent(msg tea.Msg) {
	if d, ok := msg.(interface{ Describe() string }); ok {
		log.Debug("ui event", "type", fmt.Sprintf("%T", msg), "detail", d.Describe())
	}
}

// View composes the grid and whatever overlay layers are open.
func (m *Model) View() string {
	width, height := m.width, m.height
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}

	footer := m.theme.Footer.Status.Render(m.status) + "  " +
		m.theme.Footer.Help.Render("n/p: month  t: today  enter: day  a: add  i: diary  q: quit")
	body := lipgloss.JoinVertical(lipgloss.Left, m.grid.View(), "", footer)

	state := m.orch.State()
	out := body
	if state.Has(modal.LayerDayEvents) {
		out = overlay.Compose(out, width, height, m.day.View(), overlay.Centered)
	}
	if state.Has(modal.LayerEventDetail) || state.Has(modal.LayerLLMDetail) {
		out = overlay.Compose(out, width, height, m.detail.View(), overlay.Centered)
	}
	if state.Has(modal.LayerAddEvent) && m.add != nil {
		out = overlay.Compose(out, width, height, m.add.View(), overlay.Centered)
	}
	if state.Has(modal.LayerDiaryTypeSelect) && m.picker != nil {
		out = overlay.Compose(out, width, height, m.picker.View(), overlay.Centered)
	}
	if (state.Has(modal.LayerDailyDiary) || state.Has(modal.LayerBabyDiary)) && m.form != nil {
		out = overlay.Compose(out, width, height, m.form.View(), overlay.Centered)
	}
	return out
}
