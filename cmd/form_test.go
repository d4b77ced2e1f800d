package cmd

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"statup/internal/core/domain"
	"statup/internal/core/services"
	"statup/pkg/config"
)

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Profiles = []string{"acme", "globex"}
	return cfg
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestFormModelInitialization(t *testing.T) {
	m := newFormModel(testConfig())

	if m.state != stateInput {
		t.Errorf("Expected initial state stateInput, got %v", m.state)
	}
	if m.focus != fieldType {
		t.Errorf("Expected initial focus on status type, got %v", m.focus)
	}
	if m.statusType != domain.StatusDaily {
		t.Errorf("Expected Daily by default, got %v", m.statusType)
	}
	if m.currentProfile() != "acme" {
		t.Errorf("Expected first profile selected, got %q", m.currentProfile())
	}

	today := time.Now().Format(domain.DateFormat)
	if m.dateInput.Value() != today {
		t.Errorf("Expected date to default to today %s, got %q", today, m.dateInput.Value())
	}
}

func TestFormToggleStatusType(t *testing.T) {
	m := newFormModel(testConfig())

	updated, _ := m.Update(keyMsg("right"))
	m = updated.(formModel)
	if m.statusType != domain.StatusWeekly {
		t.Errorf("Expected Weekly after toggle, got %v", m.statusType)
	}

	updated, _ = m.Update(keyMsg("right"))
	m = updated.(formModel)
	if m.statusType != domain.StatusDaily {
		t.Errorf("Expected Daily after second toggle, got %v", m.statusType)
	}
}

func TestFormTabOrderDaily(t *testing.T) {
	m := newFormModel(testConfig())

	expected := []formField{fieldProfile, fieldDate, fieldContent, fieldType}
	for _, want := range expected {
		updated, _ := m.Update(keyMsg("tab"))
		m = updated.(formModel)
		if m.focus != want {
			t.Fatalf("Expected focus %v, got %v", want, m.focus)
		}
	}
}

func TestFormTabOrderWeeklyIncludesEndDate(t *testing.T) {
	m := newFormModel(testConfig())
	m.statusType = domain.StatusWeekly

	expected := []formField{fieldProfile, fieldDate, fieldEndDate, fieldContent}
	for _, want := range expected {
		updated, _ := m.Update(keyMsg("tab"))
		m = updated.(formModel)
		if m.focus != want {
			t.Fatalf("Expected focus %v, got %v", want, m.focus)
		}
	}
}

func TestFormProfileSelection(t *testing.T) {
	m := newFormModel(testConfig())
	m.setFocus(fieldProfile)

	updated, _ := m.Update(keyMsg("right"))
	m = updated.(formModel)
	if m.currentProfile() != "globex" {
		t.Errorf("Expected globex, got %q", m.currentProfile())
	}

	// Does not run past the end of the list.
	updated, _ = m.Update(keyMsg("right"))
	m = updated.(formModel)
	if m.currentProfile() != "globex" {
		t.Errorf("Expected selection clamped at globex, got %q", m.currentProfile())
	}

	updated, _ = m.Update(keyMsg("left"))
	m = updated.(formModel)
	if m.currentProfile() != "acme" {
		t.Errorf("Expected acme, got %q", m.currentProfile())
	}
}

func TestFormSubmitEmptyContent(t *testing.T) {
	m := newFormModel(testConfig())

	updated, cmd := m.Update(keyMsg("ctrl+s"))
	m = updated.(formModel)

	if cmd != nil {
		t.Error("Expected no command for empty content")
	}
	if m.state != stateInput {
		t.Errorf("Expected to stay in stateInput, got %v", m.state)
	}
	if m.errMsg == "" {
		t.Error("Expected a visible error message")
	}
}

func TestFormSubmitWhitespaceContent(t *testing.T) {
	m := newFormModel(testConfig())
	m.content.SetValue("   \n\t ")

	updated, cmd := m.Update(keyMsg("ctrl+s"))
	m = updated.(formModel)

	if cmd != nil {
		t.Error("Expected no command for whitespace-only content")
	}
	if m.state != stateInput {
		t.Errorf("Expected to stay in stateInput, got %v", m.state)
	}
}

func TestFormSubmitTransitionsToSubmitting(t *testing.T) {
	m := newFormModel(testConfig())
	m.content.SetValue("shipped the widget")

	updated, cmd := m.Update(keyMsg("ctrl+s"))
	m = updated.(formModel)

	if m.state != stateSubmitting {
		t.Errorf("Expected stateSubmitting, got %v", m.state)
	}
	if cmd == nil {
		t.Error("Expected a submission command")
	}
	if m.errMsg != "" {
		t.Errorf("Expected error cleared, got %q", m.errMsg)
	}

	// Further submit presses are ignored while submitting.
	updated, cmd = m.Update(keyMsg("ctrl+s"))
	m = updated.(formModel)
	if cmd != nil {
		t.Error("Expected resubmission to be disabled while submitting")
	}
}

func TestFormSubmitInvalidDate(t *testing.T) {
	m := newFormModel(testConfig())
	m.content.SetValue("update")
	m.dateInput.SetValue("not-a-date")

	updated, cmd := m.Update(keyMsg("ctrl+s"))
	m = updated.(formModel)

	if cmd != nil {
		t.Error("Expected no command for invalid date")
	}
	if m.state != stateInput || m.errMsg == "" {
		t.Errorf("Expected input state with error, got state %v errMsg %q", m.state, m.errMsg)
	}
}

func TestFormSubmitFutureDate(t *testing.T) {
	m := newFormModel(testConfig())
	m.content.SetValue("update")
	m.dateInput.SetValue(time.Now().AddDate(0, 0, 7).Format(domain.DateFormat))

	updated, cmd := m.Update(keyMsg("ctrl+s"))
	m = updated.(formModel)

	if cmd != nil {
		t.Error("Expected no command for a future date")
	}
	if m.errMsg == "" {
		t.Error("Expected a visible error message")
	}
}

func TestFormSubmitErrorReturnsToInput(t *testing.T) {
	m := newFormModel(testConfig())
	m.state = stateSubmitting

	updated, _ := m.Update(submitResultMsg{err: &domain.DocumentWriteError{Name: "2024-05-01", Err: errFake}})
	m = updated.(formModel)

	if m.state != stateInput {
		t.Errorf("Expected stateInput after failure, got %v", m.state)
	}
	if !strings.HasPrefix(m.errMsg, "An error occurred") {
		t.Errorf("Expected 'An error occurred' prefix, got %q", m.errMsg)
	}

	// Resubmission is possible again.
	m.content.SetValue("retry")
	updated, cmd := m.Update(keyMsg("ctrl+s"))
	m = updated.(formModel)
	if m.state != stateSubmitting || cmd == nil {
		t.Error("Expected resubmission to work after a failure")
	}
}

func TestFormSubmitSuccessShowsConfirmation(t *testing.T) {
	m := newFormModel(testConfig())
	m.state = stateSubmitting
	m.content.SetValue("done")

	resp := &services.SubmitResponse{
		FileName:    "2024-05-01",
		DocumentID:  "doc-1",
		DocumentURL: services.DocumentURL("doc-1"),
	}
	updated, _ := m.Update(submitResultMsg{resp: resp})
	m = updated.(formModel)

	if m.state != stateConfirmation {
		t.Errorf("Expected stateConfirmation, got %v", m.state)
	}
	if m.result != resp {
		t.Error("Expected result stored on the model")
	}

	view := m.View()
	if !strings.Contains(view, "Status saved successfully!") {
		t.Error("Expected confirmation message in view")
	}

	// Returning resets the form for the next entry.
	updated, _ = m.Update(keyMsg("enter"))
	m = updated.(formModel)
	if m.state != stateInput {
		t.Errorf("Expected stateInput after returning, got %v", m.state)
	}
	if m.content.Value() != "" {
		t.Errorf("Expected content cleared, got %q", m.content.Value())
	}
	if m.result != nil {
		t.Error("Expected result cleared")
	}
}

func TestFormConfigReload(t *testing.T) {
	m := newFormModel(testConfig())
	m.profileIdx = 1

	cfg := config.DefaultConfig()
	cfg.Profiles = []string{"solo"}

	updated, _ := m.Update(configReloadedMsg{cfg: cfg})
	m = updated.(formModel)

	if m.currentProfile() != "solo" {
		t.Errorf("Expected profile index clamped to new list, got %q", m.currentProfile())
	}
}

// errFake backs the failure-path tests.
var errFake = &fakeError{}

type fakeError struct{}

func (*fakeError) Error() string { return "backend unavailable" }
