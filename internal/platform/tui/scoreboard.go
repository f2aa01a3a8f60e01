package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/buildtree/internal/registry"
	"github.com/vovakirdan/buildtree/internal/storage"
)

const (
	maxRuns = 100

	// boardChromeRows is everything on the board except table body rows:
	// title, mode header, frame, table header, stats and help.
	boardChromeRows = 11
)

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	boardModeStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	boardFrameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardEmptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 2)
)

// boardKeys reuses the game bindings for switching modes and leaves
// scrolling to the table's own bindings.
type boardKeys struct {
	modes KeyMap
	rows  table.KeyMap
}

func newBoardKeys() boardKeys {
	k := boardKeys{modes: DefaultKeyMap(), rows: table.DefaultKeyMap()}
	k.modes.Left.SetKeys("left", "a", "h", "shift+tab")
	k.modes.Left.SetHelp("←", "prev mode")
	k.modes.Right.SetKeys("right", "d", "l", "tab")
	k.modes.Right.SetHelp("→/tab", "next mode")
	return k
}

// ShortHelp returns the bindings shown on the board's help line.
func (k boardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.rows.LineUp, k.rows.LineDown, k.modes.Left, k.modes.Right, k.modes.Back, k.modes.Quit}
}

// FullHelp returns the same bindings as a single column group.
func (k boardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// ScoreboardModel is the Bubble Tea model for browsing recorded runs one
// mode at a time.
type ScoreboardModel struct {
	games      []registry.GameInfo
	gameCursor int
	store      *storage.Store
	runs       []storage.Run
	stats      *storage.GameStats // nil when the mode has no runs
	table      table.Model
	help       help.Model
	keys       boardKeys
	width      int
	height     int
	quitting   bool
	goingBack  bool
}

// NewScoreboardModel creates a scoreboard starting on the given mode, or
// the first registered one if gameID is unknown. A nil store shows an
// empty board.
func NewScoreboardModel(store *storage.Store, gameID string, width, height int) ScoreboardModel {
	games := registry.List()

	cursor := 0
	for i, g := range games {
		if g.ID == gameID {
			cursor = i
		}
	}

	m := ScoreboardModel{
		games:  games,
		store:  store,
		table:  newRunTable(height),
		help:   help.New(),
		keys:   newBoardKeys(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.selectMode(cursor)
	return m
}

func newRunTable(height int) table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Nodes", Width: 6},
			{Title: "Depth", Width: 6},
			{Title: "Time", Width: 9},
			{Title: "Ended", Width: 11},
			{Title: "Date", Width: 12},
		}),
		table.WithFocused(true),
		table.WithHeight(max(height-boardChromeRows, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// selectMode switches to the mode at index i, wrapping around, and loads
// its runs and stats.
func (m *ScoreboardModel) selectMode(i int) {
	if len(m.games) == 0 {
		return
	}
	n := len(m.games)
	m.gameCursor = (i%n + n) % n

	m.runs, m.stats = nil, nil
	if m.store != nil {
		id := m.games[m.gameCursor].ID
		if runs, err := m.store.TopRuns(id, maxRuns); err == nil {
			m.runs = runs
		}
		if stats, err := m.store.GetGameStats(id); err == nil && stats.GamesCount > 0 {
			m.stats = stats
		}
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = RunRow(i+1, r)
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// RunRow formats a run as a scoreboard row.
func RunRow(rank int, r storage.Run) table.Row {
	return table.Row{
		fmt.Sprintf("#%d", rank),
		fmt.Sprintf("%d", r.Score),
		fmt.Sprintf("%d", r.Depth),
		fmt.Sprintf("%.3fs", r.Elapsed.Seconds()),
		strings.ReplaceAll(r.Reason, "_", " "),
		r.CreatedAt.Format("Jan 02 15:04"),
	}
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.modes.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.modes.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.modes.Right):
			m.selectMode(m.gameCursor + 1)
			return m, nil
		case key.Matches(msg, m.keys.modes.Left):
			m.selectMode(m.gameCursor - 1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table.SetHeight(max(msg.Height-boardChromeRows, 3))
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	body := boardEmptyStyle.Render("No runs recorded yet.\nPlace a few nodes to get on the board!")
	if len(m.runs) > 0 {
		body = m.table.View()
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(boardTitleStyle.Render("B E S T   R U N S"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.modeHeader(), m.width))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boardFrameStyle.Render(body)))
	b.WriteString("\n")
	b.WriteString(centerText(menuDimStyle.Render(m.statsLine()), m.width))
	b.WriteString("\n")
	b.WriteString(footerHelpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// modeHeader names the current mode between the switch arrows.
func (m ScoreboardModel) modeHeader() string {
	if len(m.games) == 0 {
		return "No modes registered"
	}
	title := m.games[m.gameCursor].Title
	return "◀ " + boardModeStyle.Render(title) + " ▶" +
		menuDimStyle.Render(fmt.Sprintf("  %d/%d", m.gameCursor+1, len(m.games)))
}

// statsLine summarizes every recorded run of the current mode.
func (m ScoreboardModel) statsLine() string {
	if m.store == nil {
		return "Run recording is off."
	}
	if m.stats == nil {
		return ""
	}
	s := m.stats
	return fmt.Sprintf("%d runs · best %d nodes in %.3fs · average %.1f · deepest %d",
		s.GamesCount, s.HighScore, s.BestTime.Seconds(), s.AvgScore, s.MaxDepth)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, gameID string, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewScoreboardModel(store, gameID, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
