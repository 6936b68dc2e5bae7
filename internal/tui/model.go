// Package tui is an interactive terminal host for a virtualizer. Each item
// occupies one terminal row and labels are fetched page by page.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/norm"

	"github.com/go-drift/vlist/internal/config"
	"github.com/go-drift/vlist/pkg/errors"
	"github.com/go-drift/vlist/pkg/pages"
	"github.com/go-drift/vlist/pkg/virtual"
)

// chromeRows is the header plus the status line.
const chromeRows = 2

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	indexStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	rowStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	pendingStyle = lipgloss.NewStyle().Faint(true)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

type pageLoadedMsg struct {
	page int
	resp pages.Response[string]
	err  error
}

// Model is the bubbletea model driving a Virtualizer.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	name    string
	v       *virtual.Virtualizer
	source  *virtual.VirtualScrollSource
	book    *pages.Book[string]
	load    Loader
	pending []int

	keys    keyMap
	spinner spinner.Model
	width   int
	height  int
	err     error
	done    bool
}

// New builds a model from resolved settings. The item size is forced to one
// row and the count starts at zero until the first page reports a total.
func New(ctx context.Context, r *config.Resolved, load Loader) (*Model, error) {
	ctx, cancel := context.WithCancel(ctx)
	m := &Model{
		ctx:    ctx,
		cancel: cancel,
		name:   r.Name,
		book:   pages.NewBook[string](r.PageSize),
		load:   load,
		keys:   defaultKeyMap(),
		width:  80,
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	m.spinner = sp

	rows := *r
	rows.ItemSize = 1
	rows.Count = 0
	rows.ScrollOffset = 0
	prefetch := pages.PrefetchPlugin(m.book, r.Prefetch, func(page int) {
		m.pending = append(m.pending, page)
	})
	v, source, err := rows.Build(nil, prefetch)
	if err != nil {
		cancel()
		return nil, err
	}
	m.v = v
	m.source = source
	return m, nil
}

// Run starts an interactive program and blocks until the user quits.
func Run(ctx context.Context, r *config.Resolved, load Loader, opts ...tea.ProgramOption) error {
	m, err := New(ctx, r, load)
	if err != nil {
		return err
	}
	defer m.Close()
	defer errors.Recover("tui.Run")

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	_, err = tea.NewProgram(m, opts...).Run()
	return err
}

// Close destroys the virtualizer and cancels outstanding page loads.
func (m *Model) Close() {
	m.v.Destroy()
	m.cancel()
}

// State returns the virtualizer state.
func (m *Model) State() virtual.State {
	return m.v.State()
}

// Init issues the page requests made while the virtualizer was built.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(append(m.drain(), m.spinner.Tick)...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.source.SetViewportSize(float64(m.viewportRows()))
		m.scrollTo(m.source.ScrollOffset())
		return m, tea.Batch(m.drain()...)
	case pageLoadedMsg:
		if msg.err != nil {
			m.book.Fail(msg.page)
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.book.Put(msg.page, msg.resp)
		if err := m.v.SetCount(m.book.Total()); err != nil {
			m.err = err
		}
		return m, tea.Batch(m.drain()...)
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	offset := m.source.ScrollOffset()
	page := float64(max(1, m.viewportRows()))
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.done = true
		m.Close()
		return tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.scrollTo(offset - 1)
	case key.Matches(msg, m.keys.Down):
		m.scrollTo(offset + 1)
	case key.Matches(msg, m.keys.PageUp):
		m.scrollTo(offset - page)
	case key.Matches(msg, m.keys.PageDown):
		m.scrollTo(offset + page)
	case key.Matches(msg, m.keys.Home):
		m.scrollTo(0)
	case key.Matches(msg, m.keys.End):
		m.scrollTo(m.maxOffset())
	default:
		return nil
	}
	return tea.Batch(m.drain()...)
}

func (m *Model) viewportRows() int {
	return max(0, m.height-chromeRows)
}

func (m *Model) maxOffset() float64 {
	return float64(max(0, m.v.Count()-m.viewportRows()))
}

func (m *Model) scrollTo(offset float64) {
	m.source.SetScrollOffset(virtual.Clamp(0, offset, m.maxOffset()))
}

// drain turns the pages requested by the prefetch plugin into load commands.
func (m *Model) drain() []tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.pending))
	for _, page := range m.pending {
		cmds = append(cmds, m.loadPage(page))
	}
	m.pending = m.pending[:0]
	return cmds
}

func (m *Model) loadPage(page int) tea.Cmd {
	ctx, load, size := m.ctx, m.load, m.book.PageSize()
	return func() (msg tea.Msg) {
		defer errors.RecoverWithCallback("tui.loadPage", func(r any) {
			msg = pageLoadedMsg{page: page, err: fmt.Errorf("page %d: %v", page, r)}
		})
		resp, err := load(ctx, page, size)
		return pageLoadedMsg{page: page, resp: resp, err: err}
	}
}

func (m *Model) View() string {
	if m.done {
		return ""
	}
	state := m.v.State()

	header := m.name
	if m.book.LoadingCount() > 0 {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(truncate(header, m.width)))
	b.WriteString("\n")

	digits := len(fmt.Sprint(max(0, m.v.Count()-1)))
	labelWidth := m.width - digits - 2
	rows := 0
	for _, item := range state.VirtualItems {
		if !state.VisibleRange.Contains(item.Index) || rows >= m.viewportRows() {
			continue
		}
		label, ok := m.book.Item(item.Index)
		style := rowStyle
		if !ok {
			label, style = "loading...", pendingStyle
		}
		label = truncate(norm.NFC.String(label), labelWidth)
		b.WriteString(indexStyle.Render(fmt.Sprintf("%*d", digits, item.Index)))
		b.WriteString("  ")
		b.WriteString(style.Render(label))
		b.WriteString("\n")
		rows++
	}
	for ; rows < m.viewportRows(); rows++ {
		b.WriteString("\n")
	}

	b.WriteString(m.statusLine(state))
	return b.String()
}

func (m *Model) statusLine(state virtual.State) string {
	status := fmt.Sprintf("visible %s  render %s  count %d  loading %d",
		rangeText(state.VisibleRange), rangeText(state.RenderRange), m.v.Count(), m.book.LoadingCount())
	if m.err != nil {
		return errorStyle.Render(truncate(m.err.Error()+"  "+status, m.width))
	}
	return statusStyle.Render(truncate(status, m.width))
}

func rangeText(r virtual.Range) string {
	if r.Empty() {
		return "none"
	}
	return fmt.Sprintf("%d-%d", r.StartIndex, r.EndIndex)
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
