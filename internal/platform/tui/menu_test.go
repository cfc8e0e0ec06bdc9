package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/neuroflap/internal/core"
)

func TestMenuItems(t *testing.T) {
	items := MenuItems()
	if items[0].Kind != MenuPlay || items[1].Kind != MenuWatchChampion {
		t.Fatalf("first items = %+v", items[:2])
	}
	if items[len(items)-1].Kind != MenuHistory {
		t.Errorf("last item = %+v, want history", items[len(items)-1])
	}

	policies := map[string]bool{}
	for _, it := range items {
		if it.Kind == MenuWatchPolicy {
			policies[it.Policy] = true
		}
	}
	for _, id := range []string{"never", "always", "cadence", "gap"} {
		if !policies[id] {
			t.Errorf("menu missing policy %q", id)
		}
	}
}

func TestMenuNavigateAndSelect(t *testing.T) {
	var model tea.Model = NewMenuModel(core.DefaultConfig())

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyUp})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	m := model.(MenuModel)
	if cmd == nil || m.Selected() == nil {
		t.Fatal("enter did not select")
	}
	if m.Selected().Kind != MenuWatchChampion {
		t.Errorf("selected %+v, want the champion entry", m.Selected())
	}
}

func TestMenuQuitAndView(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig())
	if !strings.Contains(m.View(), "> Play") {
		t.Error("cursor not on Play")
	}

	model, _ := m.Update(runeKey('q'))
	if !model.(MenuModel).IsQuitting() {
		t.Error("q did not quit")
	}
	if model.View() != "" {
		t.Error("View() after quit should be empty")
	}
}
