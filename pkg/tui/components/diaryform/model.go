// Package diaryform renders the diary overlays: a kind picker followed by
// the entry form for the chosen kind.
package diaryform

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/nestcal/nestcal/pkg/dateutil"
	"github.com/nestcal/nestcal/pkg/diary"
	"github.com/nestcal/nestcal/pkg/tui/events"
	"github.com/nestcal/nestcal/pkg/tui/theme"
)

// Picker lets the user choose between a daily entry and a baby entry.
type Picker struct {
	id    events.ComponentID
	theme theme.ModalTheme

	kinds  []diary.Kind
	cursor int
}

// NewPicker constructs the kind selector.
func NewPicker(id events.ComponentID, t theme.ModalTheme) *Picker {
	return &Picker{
		id:    id,
		theme: t,
		kinds: []diary.Kind{diary.KindDaily, diary.KindBaby},
	}
}

// ID returns the component identifier.
func (p *Picker) ID() events.ComponentID { return p.id }

// Init implements tea.Model.
func (p *Picker) Init() tea.Cmd { return nil }

// Update handles selection.
func (p *Picker) Update(msg tea.Msg) (*Picker, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch key.String() {
	case "up", "k", "down", "j", "tab":
		p.cursor = (p.cursor + 1) % len(p.kinds)
	case "enter":
		kind := p.kinds[p.cursor]
		return p, func() tea.Msg {
			return events.DiaryKindChosenMsg{Component: p.id, Kind: kind}
		}
	case "esc":
		return p, func() tea.Msg {
			return events.OverlayDismissMsg{Component: p.id}
		}
	}
	return p, nil
}

// View renders the picker.
func (p *Picker) View() string {
	var b strings.Builder
	b.WriteString(p.theme.Title.Render("New diary entry"))
	b.WriteString("\n\n")
	for i, k := range p.kinds {
		marker := "  "
		if i == p.cursor {
			marker = "> "
		}
		label := "Daily diary"
		if k == diary.KindBaby {
			label = "Baby diary"
		}
		b.WriteString(fmt.Sprintf("%s%s\n", marker, label))
	}
	b.WriteString("\n")
	b.WriteString(p.theme.Body.Render("enter: choose  esc: cancel"))
	return p.theme.Frame.Render(b.String())
}

// Form collects one diary entry for a fixed date and kind.
type Form struct {
	id    events.ComponentID
	theme theme.ModalTheme

	date dateutil.Day
	kind diary.Kind
	week int

	moodInput textinput.Model
	bodyInput textinput.Model
	focusBody bool

	errorMsg string
}

// NewForm constructs the entry form. week is the pregnancy week for the
// date, zero when the due date is unknown.
func NewForm(id events.ComponentID, t theme.ModalTheme, date dateutil.Day, kind diary.Kind, week int) *Form {
	mood := textinput.New()
	mood.Placeholder = "How are you feeling?"
	mood.Prompt = ""
	mood.Focus()

	body := textinput.New()
	body.Placeholder = "Write your entry"
	body.Prompt = ""

	return &Form{
		id:        id,
		theme:     t,
		date:      date,
		kind:      kind,
		week:      week,
		moodInput: mood,
		bodyInput: body,
	}
}

// ID returns the component identifier.
func (f *Form) ID() events.ComponentID { return f.id }

// Init implements tea.Model.
func (f *Form) Init() tea.Cmd { return f.moodInput.Focus() }

// Update routes keys to the focused field.
func (f *Form) Update(msg tea.Msg) (*Form, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return f, func() tea.Msg {
				return events.OverlayDismissMsg{Component: f.id}
			}
		case "tab", "shift+tab":
			f.focusBody = !f.focusBody
			if f.focusBody {
				f.moodInput.Blur()
				f.bodyInput.Focus()
			} else {
				f.bodyInput.Blur()
				f.moodInput.Focus()
			}
			return f, nil
		case "enter":
			return f, f.submit()
		}
	}

	var cmd tea.Cmd
	if f.focusBody {
		f.bodyInput, cmd = f.bodyInput.Update(msg)
	} else {
		f.moodInput, cmd = f.moodInput.Update(msg)
	}
	return f, cmd
}

func (f *Form) submit() tea.Cmd {
	body := strings.TrimSpace(f.bodyInput.Value())
	if body == "" {
		f.errorMsg = "entry text is required"
		return nil
	}
	f.errorMsg = ""

	entry := diary.Entry{
		Date:            f.date,
		Kind:            f.kind,
		Mood:            strings.TrimSpace(f.moodInput.Value()),
		Body:            body,
		WeekOfPregnancy: f.week,
	}
	return func() tea.Msg {
		return events.DiarySubmitMsg{Component: f.id, Entry: entry}
	}
}

// View renders the framed form.
func (f *Form) View() string {
	var b strings.Builder
	title := fmt.Sprintf("%s diary - %s", kindLabel(f.kind), f.date)
	if f.week > 0 {
		title += fmt.Sprintf(" (week %d)", f.week)
	}
	b.WriteString(f.theme.Title.Render(title))
	b.WriteString("\n\n")

	moodMarker := "> "
	bodyMarker := "  "
	if f.focusBody {
		moodMarker, bodyMarker = "  ", "> "
	}
	b.WriteString(fmt.Sprintf("%sMood:  %s\n", moodMarker, f.moodInput.View()))
	b.WriteString(fmt.Sprintf("%sEntry: %s\n", bodyMarker, f.bodyInput.View()))

	if f.errorMsg != "" {
		b.WriteString("\n")
		b.WriteString(f.theme.Error.Render(f.errorMsg))
	}
	b.WriteString("\n")
	b.WriteString(f.theme.Body.Render("tab: switch field  enter: save  esc: cancel"))
	return f.theme.Frame.Render(b.String())
}

func kindLabel(k diary.Kind) string {
	if k == diary.KindBaby {
		return "Baby"
	}
	return "Daily"
}
