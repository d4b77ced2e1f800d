package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"statup/internal/core/domain"
	"statup/internal/core/services"
	"statup/pkg/config"
	"statup/pkg/ui"
)

func runForm(cmd *cobra.Command, args []string) error {
	if err := appConfig.Validate(); err != nil {
		return err
	}

	m := newFormModel(appConfig)
	p := tea.NewProgram(m, tea.WithAltScreen())

	// Edits to the config file show up in the form without a restart.
	stop, err := config.Watch(appPaths.ConfigFile, func(cfg *config.Config) {
		p.Send(configReloadedMsg{cfg: cfg})
	})
	if err == nil {
		defer stop()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running form: %w", err)
	}
	return nil
}

// Form states
type formState int

const (
	stateInput formState = iota
	stateSubmitting
	stateConfirmation
)

// Form fields, in tab order
type formField int

const (
	fieldType formField = iota
	fieldProfile
	fieldDate    // daily date, or weekly start
	fieldEndDate // weekly end
	fieldContent
)

type submitResultMsg struct {
	resp *services.SubmitResponse
	err  error
}

type configReloadedMsg struct {
	cfg *config.Config
}

type formKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Toggle key.Binding
	Submit key.Binding
	Copy   key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func defaultFormKeyMap() formKeyMap {
	return formKeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("left", "right"),
			key.WithHelp("←/→", "change value"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "submit"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy link"),
		),
		Back: key.NewBinding(
			key.WithKeys("enter", "b"),
			key.WithHelp("enter", "new status"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

type formModel struct {
	cfg *config.Config

	state formState
	focus formField

	statusType domain.StatusType
	profileIdx int

	dateInput textinput.Model
	endInput  textinput.Model
	content   textarea.Model

	errMsg string
	result *services.SubmitResponse
	copied bool

	keys  formKeyMap
	help  help.Model
	width int
}

func newFormModel(cfg *config.Config) formModel {
	today := time.Now().Format(domain.DateFormat)

	dateInput := textinput.New()
	dateInput.Placeholder = today
	dateInput.SetValue(today)
	dateInput.CharLimit = 10
	dateInput.Width = 12

	endInput := textinput.New()
	endInput.Placeholder = today
	endInput.SetValue(today)
	endInput.CharLimit = 10
	endInput.Width = 12

	content := textarea.New()
	content.Placeholder = "Write your status here"
	content.SetWidth(64)
	content.SetHeight(6)
	content.CharLimit = 0

	return formModel{
		cfg:        cfg,
		statusType: domain.StatusDaily,
		dateInput:  dateInput,
		endInput:   endInput,
		content:    content,
		keys:       defaultFormKeyMap(),
		help:       help.New(),
	}
}

func (m formModel) Init() tea.Cmd {
	return nil
}

func (m formModel) currentProfile() string {
	if len(m.cfg.Profiles) == 0 {
		return ""
	}
	return m.cfg.Profiles[m.profileIdx]
}

// period parses the date fields into the report period. Future dates
// are rejected the way the original form caps its pickers at today.
func (m formModel) period() (domain.Period, error) {
	today := time.Now()

	if m.statusType == domain.StatusWeekly {
		start, err := time.Parse(domain.DateFormat, m.dateInput.Value())
		if err != nil {
			return domain.Period{}, fmt.Errorf("invalid start date %q, use YYYY-MM-DD", m.dateInput.Value())
		}
		end, err := time.Parse(domain.DateFormat, m.endInput.Value())
		if err != nil {
			return domain.Period{}, fmt.Errorf("invalid end date %q, use YYYY-MM-DD", m.endInput.Value())
		}
		if end.After(today) {
			return domain.Period{}, fmt.Errorf("end date cannot be in the future")
		}
		return domain.NewWeeklyPeriod(start, end)
	}

	date, err := time.Parse(domain.DateFormat, m.dateInput.Value())
	if err != nil {
		return domain.Period{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD", m.dateInput.Value())
	}
	if date.After(today) {
		return domain.Period{}, fmt.Errorf("date cannot be in the future")
	}
	return domain.NewDailyPeriod(date)
}

func (m *formModel) setFocus(f formField) {
	// Weekly's end date is skipped entirely in daily mode.
	if f == fieldEndDate && m.statusType != domain.StatusWeekly {
		if f > m.focus {
			f = fieldContent
		} else {
			f = fieldDate
		}
	}
	m.focus = f

	m.dateInput.Blur()
	m.endInput.Blur()
	m.content.Blur()

	switch f {
	case fieldDate:
		m.dateInput.Focus()
	case fieldEndDate:
		m.endInput.Focus()
	case fieldContent:
		m.content.Focus()
	}
}

func (m *formModel) nextField() {
	f := m.focus + 1
	if f > fieldContent {
		f = fieldType
	}
	m.setFocus(f)
}

func (m *formModel) prevField() {
	if m.focus == fieldType {
		m.setFocus(fieldContent)
		return
	}
	m.setFocus(m.focus - 1)
}

// resetForm clears the content and dates for the next entry, keeping
// the selected type and profile.
func (m *formModel) resetForm() {
	today := time.Now().Format(domain.DateFormat)
	m.dateInput.SetValue(today)
	m.endInput.SetValue(today)
	m.content.Reset()
	m.errMsg = ""
	m.result = nil
	m.copied = false
	m.setFocus(fieldType)
}

func (m formModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		w := msg.Width - 4
		if w > 72 {
			w = 72
		}
		if w > 0 {
			m.content.SetWidth(w)
		}
		return m, nil

	case configReloadedMsg:
		m.cfg = msg.cfg
		if m.profileIdx >= len(m.cfg.Profiles) {
			m.profileIdx = 0
		}
		return m, nil

	case submitResultMsg:
		if msg.err != nil {
			// Back to input with resubmission enabled; the partial
			// remote state, if any, is found on the next attempt.
			m.state = stateInput
			m.errMsg = "An error occurred: " + msg.err.Error()
			return m, nil
		}
		m.state = stateConfirmation
		m.result = msg.resp
		m.copied = false
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.state {
		case stateSubmitting:
			// Resubmission is disabled while the chain runs.
			return m, nil
		case stateConfirmation:
			return m.updateConfirmation(msg)
		default:
			return m.updateInput(msg)
		}
	}

	return m, nil
}

func (m formModel) updateConfirmation(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Copy):
		if m.result != nil {
			if err := clipboard.WriteAll(m.result.DocumentURL); err == nil {
				m.copied = true
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Back):
		m.resetForm()
		m.state = stateInput
		return m, nil

	case key.Matches(msg, m.keys.Quit), msg.String() == "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m formModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		// Esc leaves the textarea before it quits the form.
		if m.focus == fieldContent && m.content.Focused() {
			m.content.Blur()
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		return m.startSubmit()

	case key.Matches(msg, m.keys.Next):
		m.nextField()
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		m.prevField()
		return m, nil
	}

	switch m.focus {
	case fieldType:
		switch msg.String() {
		case "left", "right", "h", "l", " ":
			if m.statusType == domain.StatusDaily {
				m.statusType = domain.StatusWeekly
			} else {
				m.statusType = domain.StatusDaily
			}
		case "enter":
			m.nextField()
		}
		return m, nil

	case fieldProfile:
		switch msg.String() {
		case "left", "h":
			if m.profileIdx > 0 {
				m.profileIdx--
			}
		case "right", "l":
			if m.profileIdx < len(m.cfg.Profiles)-1 {
				m.profileIdx++
			}
		case "enter":
			m.nextField()
		}
		return m, nil

	case fieldDate:
		if msg.String() == "enter" {
			m.nextField()
			return m, nil
		}
		var cmd tea.Cmd
		m.dateInput, cmd = m.dateInput.Update(msg)
		return m, cmd

	case fieldEndDate:
		if msg.String() == "enter" {
			m.nextField()
			return m, nil
		}
		var cmd tea.Cmd
		m.endInput, cmd = m.endInput.Update(msg)
		return m, cmd

	default:
		var cmd tea.Cmd
		m.content, cmd = m.content.Update(msg)
		return m, cmd
	}
}

// startSubmit validates locally and kicks off the remote chain. No
// remote call happens when validation fails.
func (m formModel) startSubmit() (tea.Model, tea.Cmd) {
	if strings.TrimSpace(m.content.Value()) == "" {
		m.errMsg = "Status cannot be empty!"
		return m, nil
	}

	period, err := m.period()
	if err != nil {
		m.errMsg = err.Error()
		return m, nil
	}

	profile := m.currentProfile()
	if profile == "" {
		m.errMsg = "No profile configured"
		return m, nil
	}

	m.state = stateSubmitting
	m.errMsg = ""
	return m, submitStatusCmd(profile, period, m.content.Value())
}

// submitStatusCmd runs the sequential submission chain: authenticate,
// resolve the root and profile folders, then append or create the
// report document. The UI blocks in stateSubmitting until it finishes.
func submitStatusCmd(profile string, period domain.Period, content string) tea.Cmd {
	return func() tea.Msg {
		ctx := getContext()

		client, err := connect(ctx)
		if err != nil {
			return submitResultMsg{err: err}
		}

		resp, err := newSubmitService(client).Execute(ctx, services.SubmitRequest{
			Profile: profile,
			Period:  period,
			Content: content,
		})
		return submitResultMsg{resp: resp, err: err}
	}
}

func (m formModel) helpBindings() []key.Binding {
	switch m.state {
	case stateConfirmation:
		return []key.Binding{m.keys.Copy, m.keys.Back, m.keys.Quit}
	default:
		return []key.Binding{m.keys.Next, m.keys.Toggle, m.keys.Submit, m.keys.Quit}
	}
}

func (m formModel) View() string {
	var s strings.Builder

	s.WriteString("\n")
	s.WriteString(ui.StyleTitle.Render(" " + ui.IconStatus + " Status Manager"))
	s.WriteString("\n")
	if m.cfg.ProfileSheetURL != "" {
		s.WriteString(ui.StyleMuted.Render(" Profiles and projects: " + m.cfg.ProfileSheetURL))
		s.WriteString("\n")
	}
	s.WriteString("\n")

	switch m.state {
	case stateConfirmation:
		m.viewConfirmation(&s)
	case stateSubmitting:
		m.viewInput(&s)
		s.WriteString("\n")
		s.WriteString(ui.StyleInfo.Render(" " + ui.IconSend + " Submitting..."))
		s.WriteString("\n")
	default:
		m.viewInput(&s)
		if m.errMsg != "" {
			s.WriteString("\n ")
			s.WriteString(ui.FormatError(m.errMsg))
			s.WriteString("\n")
		}
	}

	s.WriteString("\n")
	s.WriteString(m.help.ShortHelpView(m.helpBindings()))
	s.WriteString("\n")

	return s.String()
}

func (m formModel) fieldLabel(f formField, label string) string {
	if m.state == stateInput && m.focus == f {
		return ui.StyleFieldFocus.Render("▸ " + label)
	}
	return ui.StyleFieldLabel.Render("  " + label)
}

func (m formModel) viewInput(s *strings.Builder) {
	s.WriteString(m.fieldLabel(fieldType, "Status Type"))
	s.WriteString("  ")
	for _, t := range []domain.StatusType{domain.StatusDaily, domain.StatusWeekly} {
		if t == m.statusType {
			s.WriteString(ui.StylePrimary.Render("[" + string(t) + "]"))
		} else {
			s.WriteString(ui.StyleMuted.Render(" " + string(t) + " "))
		}
		s.WriteString(" ")
	}
	s.WriteString("\n\n")

	s.WriteString(m.fieldLabel(fieldProfile, "Profile"))
	s.WriteString("  ")
	if len(m.cfg.Profiles) == 0 {
		s.WriteString(ui.StyleWarning.Render("none configured"))
	} else {
		s.WriteString(ui.StylePrimary.Render(m.currentProfile()))
		s.WriteString(ui.StyleMuted.Render(fmt.Sprintf("  (%d/%d)", m.profileIdx+1, len(m.cfg.Profiles))))
	}
	s.WriteString("\n\n")

	if m.statusType == domain.StatusWeekly {
		s.WriteString(m.fieldLabel(fieldDate, "Start Date"))
		s.WriteString("  ")
		s.WriteString(m.dateInput.View())
		s.WriteString("\n\n")
		s.WriteString(m.fieldLabel(fieldEndDate, "End Date"))
		s.WriteString("    ")
		s.WriteString(m.endInput.View())
		s.WriteString("\n\n")
	} else {
		s.WriteString(m.fieldLabel(fieldDate, "Date"))
		s.WriteString("  ")
		s.WriteString(m.dateInput.View())
		s.WriteString("\n\n")
	}

	s.WriteString(m.fieldLabel(fieldContent, "Status"))
	s.WriteString("\n")
	s.WriteString(m.content.View())
	s.WriteString("\n")
}

func (m formModel) viewConfirmation(s *strings.Builder) {
	s.WriteString(" ")
	s.WriteString(ui.FormatSuccess("Status saved successfully!"))
	s.WriteString("\n\n")

	if m.result != nil {
		s.WriteString(" ")
		s.WriteString(ui.RenderKeyValue("Document", m.result.FileName))
		s.WriteString("\n ")
		s.WriteString(ui.RenderKeyValue("Link", m.result.DocumentURL))
		s.WriteString("\n")
		if m.result.CreatedDocument {
			s.WriteString(" ")
			s.WriteString(ui.StyleMuted.Render("(new document)"))
			s.WriteString("\n")
		}
		if m.copied {
			s.WriteString("\n ")
			s.WriteString(ui.FormatInfo("Link copied to clipboard"))
			s.WriteString("\n")
		}
	}
}
