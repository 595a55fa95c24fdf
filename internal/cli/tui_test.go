package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m CycleListModel, msgs ...tea.Msg) CycleListModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(CycleListModel)
	}
	return m
}

func TestCycleListNavigation(t *testing.T) {
	g, cycles := markedDemo(t)
	m := newCycleListModel(cycles, g)

	m = update(t, m, key("down"), key("down"), key("down"))
	if m.Cursor != 2 {
		t.Errorf("Cursor = %d, want 2 (clamped to last cycle)", m.Cursor)
	}
	m = update(t, m, key("k"))
	if m.Cursor != 1 {
		t.Errorf("Cursor = %d, want 1", m.Cursor)
	}
	m = update(t, m, key("up"), key("up"))
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0", m.Cursor)
	}
}

func TestCycleListScroll(t *testing.T) {
	g, cycles := markedDemo(t)
	m := newCycleListModel(cycles, g)
	m.Height = 1

	m = update(t, m, key("j"), key("j"))
	if m.Offset != 2 {
		t.Errorf("Offset = %d, want 2", m.Offset)
	}
	m = update(t, m, key("up"))
	if m.Offset != 1 {
		t.Errorf("Offset = %d, want 1", m.Offset)
	}
}

func TestCycleListDetails(t *testing.T) {
	g, cycles := markedDemo(t)
	m := newCycleListModel(cycles, g)

	if strings.Contains(m.View(), "1 import") {
		t.Error("details should be hidden until enter")
	}
	m = update(t, m, key("enter"))
	if !m.Expanded {
		t.Fatal("enter should expand the selected cycle")
	}
	view := m.View()
	for _, want := range []string{"Import Cycles", "Portugal", "1 import", "[1/3]"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestCycleListQuit(t *testing.T) {
	g, cycles := markedDemo(t)
	_, cmd := newCycleListModel(cycles, g).Update(key("q"))
	if cmd == nil {
		t.Error("q should return a quit command")
	}
}

func TestCycleListWindowSize(t *testing.T) {
	g, cycles := markedDemo(t)
	m := update(t, newCycleListModel(cycles, g), tea.WindowSizeMsg{Width: 80, Height: 4})
	if m.Height != 3 {
		t.Errorf("Height = %d, want minimum 3", m.Height)
	}
}
