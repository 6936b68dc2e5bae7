package tui

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-drift/vlist/internal/config"
	"github.com/go-drift/vlist/pkg/errors"
	"github.com/go-drift/vlist/pkg/pages"
	"github.com/go-drift/vlist/pkg/virtual"
)

func newTestModel(t *testing.T, total int) *Model {
	t.Helper()
	r, err := config.ResolveConfig(&config.Config{
		Name:  "demo",
		Pages: config.PagesConfig{Size: 10},
	}, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	m, err := New(context.Background(), r, SyntheticLoader(total, 0))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(m.Close)
	return m
}

func keyPress(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func runePress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// loadFirstPage runs Init, sizes the window to five item rows and delivers
// page 0.
func loadFirstPage(t *testing.T, m *Model) {
	t.Helper()
	m.Init()
	if !m.book.Loading(0) {
		t.Fatal("Init should request page 0")
	}
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 5 + chromeRows})
	m.Update(m.loadPage(0)())
}

func TestNewRequestsFirstPage(t *testing.T) {
	m := newTestModel(t, 25)
	if len(m.pending) != 1 || m.pending[0] != 0 {
		t.Errorf("pending = %v, want [0]", m.pending)
	}
	if !m.book.Loading(0) {
		t.Error("page 0 should be marked loading")
	}
}

func TestModelFirstPage(t *testing.T) {
	m := newTestModel(t, 25)
	loadFirstPage(t, m)

	if got := m.v.Count(); got != 25 {
		t.Errorf("Count = %d, want 25", got)
	}
	st := m.State()
	if st.ViewportSize != 5 {
		t.Errorf("ViewportSize = %v, want 5", st.ViewportSize)
	}
	if st.VisibleRange != (virtual.Range{StartIndex: 0, EndIndex: 5}) {
		t.Errorf("VisibleRange = %+v", st.VisibleRange)
	}
	// render range 0-9 is page 0; one page of prefetch adds page 1.
	if !m.book.Loading(1) {
		t.Error("page 1 should be prefetched")
	}

	view := m.View()
	for _, want := range []string{"demo", "item 0", "item 4", "visible 0-5"} {
		if !strings.Contains(view, want) {
			t.Errorf("View missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "item 5") {
		t.Errorf("View renders past the viewport:\n%s", view)
	}
}

func TestModelScrollKeys(t *testing.T) {
	m := newTestModel(t, 25)
	loadFirstPage(t, m)

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want float64
	}{
		{"down", keyPress(tea.KeyDown), 1},
		{"j", runePress("j"), 2},
		{"page down", keyPress(tea.KeyPgDown), 7},
		{"up", keyPress(tea.KeyUp), 6},
		{"page up", keyPress(tea.KeyPgUp), 1},
		{"end", keyPress(tea.KeyEnd), 20},
		{"down at end", keyPress(tea.KeyDown), 20},
		{"home", keyPress(tea.KeyHome), 0},
		{"up at top", runePress("k"), 0},
	}
	for _, tt := range tests {
		m.Update(tt.msg)
		if got := m.source.ScrollOffset(); got != tt.want {
			t.Errorf("%s: offset = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestModelEndRequestsTailPages(t *testing.T) {
	m := newTestModel(t, 25)
	loadFirstPage(t, m)

	m.Update(keyPress(tea.KeyEnd))
	st := m.State()
	if st.VisibleRange != (virtual.Range{StartIndex: 20, EndIndex: 24}) {
		t.Errorf("VisibleRange = %+v, want {20 24}", st.VisibleRange)
	}
	if !m.book.Loading(2) {
		t.Error("page 2 should be requested")
	}
	if m.book.Loading(3) {
		t.Error("page 3 lies past the total and must not be requested")
	}
	if !strings.Contains(m.View(), "loading...") {
		t.Error("unloaded rows should render a placeholder")
	}

	m.Update(m.loadPage(2)())
	if view := m.View(); !strings.Contains(view, "item 24") {
		t.Errorf("View missing item 24 after load:\n%s", view)
	}
}

func TestModelLoadError(t *testing.T) {
	m := newTestModel(t, 25)
	loadFirstPage(t, m)

	m.Update(pageLoadedMsg{page: 1, err: errors.New("backend unavailable")})
	if m.book.Loading(1) {
		t.Error("failed page should no longer be in flight")
	}
	if !strings.Contains(m.View(), "backend unavailable") {
		t.Error("status line should show the load error")
	}
}

func TestModelLoaderPanic(t *testing.T) {
	errors.SetHandler(&errors.LogHandler{Out: io.Discard})
	defer errors.SetHandler(nil)

	m := newTestModel(t, 25)
	m.load = func(context.Context, int, int) (pages.Response[string], error) {
		panic("exploded")
	}
	msg, ok := m.loadPage(3)().(pageLoadedMsg)
	if !ok {
		t.Fatal("loadPage should still produce a pageLoadedMsg")
	}
	if msg.err == nil || !strings.Contains(msg.err.Error(), "exploded") {
		t.Errorf("err = %v, want panic value", msg.err)
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, 25)
	loadFirstPage(t, m)

	_, cmd := m.Update(runePress("q"))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should produce tea.QuitMsg")
	}
	if !m.v.Destroyed() {
		t.Error("virtualizer should be destroyed on quit")
	}
	if m.ctx.Err() == nil {
		t.Error("context should be cancelled on quit")
	}
	if m.View() != "" {
		t.Error("View should be empty after quit")
	}
}

func TestSyntheticLoader(t *testing.T) {
	load := SyntheticLoader(25, 0)
	resp, err := load(context.Background(), 2, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Items) != 5 || resp.Items[0] != "item 20" || resp.Total != 25 || resp.HasMore {
		t.Errorf("last page = %+v", resp)
	}
	resp, _ = load(context.Background(), 0, 10)
	if !resp.HasMore {
		t.Error("first page should report more data")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := SyntheticLoader(25, time.Hour)(ctx, 0, 10); err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello world", 6, "hel..."},
		{"日本語テキスト", 5, "日..."},
		{"abcdef", 3, "abc"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
