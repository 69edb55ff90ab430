package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/valter-silva-au/workgraph/internal/core"
	"github.com/valter-silva-au/workgraph/pkg/models"
)

// Style definitions for the board view.
var (
	boardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	boardHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("62"))

	boardUrgentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	boardReadyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	boardBlockedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	boardHelpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type boardModel struct {
	counts  map[models.ItemStatus]int
	rec     core.Recommendation
	loading bool
	err     error
}

// boardLoadedMsg carries loaded data back to the model.
type boardLoadedMsg struct {
	counts map[models.ItemStatus]int
	rec    core.Recommendation
	err    error
}

func loadBoard() tea.Msg {
	snap, err := Items.Snapshot()
	if err != nil {
		return boardLoadedMsg{err: err}
	}
	counts := make(map[models.ItemStatus]int)
	for _, item := range snap.Items {
		counts[item.Status]++
	}
	return boardLoadedMsg{counts: counts, rec: Sched.Next(snap, 5)}
}

func (m boardModel) Init() tea.Cmd {
	return loadBoard
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.loading = true
			return m, loadBoard
		}
	case boardLoadedMsg:
		m.loading = false
		m.counts = msg.counts
		m.rec = msg.rec
		m.err = msg.err
	}
	return m, nil
}

func (m boardModel) View() string {
	var b strings.Builder
	b.WriteString(boardTitleStyle.Render("workgraph board"))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString("Loading...\n")
		return b.String()
	}
	if m.err != nil {
		b.WriteString(fmt.Sprintf("Error: %v\n", m.err))
		return b.String()
	}

	b.WriteString(boardHeaderStyle.Render("Items"))
	b.WriteByte('\n')
	for _, status := range models.ValidItemStatuses {
		b.WriteString(fmt.Sprintf("  %-12s %d\n", status, m.counts[status]))
	}
	b.WriteByte('\n')

	b.WriteString(boardHeaderStyle.Render("Up next"))
	b.WriteByte('\n')
	if len(m.rec.Items) == 0 {
		b.WriteString("  nothing ready\n")
	}
	for _, item := range m.rec.Items {
		line := fmt.Sprintf("  %s (%s) %s", item.ID, item.Priority, item.Title)
		if m.rec.UrgentOverride {
			b.WriteString(boardUrgentStyle.Render(line + "  URGENT"))
		} else {
			b.WriteString(boardReadyStyle.Render(line))
		}
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	if len(m.rec.BlockedPreview) > 0 {
		b.WriteString(boardHeaderStyle.Render("Blocked"))
		b.WriteByte('\n')
		for _, blocked := range m.rec.BlockedPreview {
			b.WriteString(boardBlockedStyle.Render(fmt.Sprintf("  %s waiting on %s",
				blocked.Item.ID, strings.Join(blocked.BlockingDeps, ", "))))
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}

	b.WriteString(boardHelpStyle.Render("r: refresh  q: quit"))
	b.WriteByte('\n')
	return b.String()
}

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Interactive overview of the work item graph",
	Long: `Open a read-only terminal board showing per-status counts, the current
recommendations, and the blocked-work preview. Press r to refresh and q to
quit.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Items == nil || Sched == nil {
			return fmt.Errorf("item manager not initialized")
		}
		p := tea.NewProgram(boardModel{loading: true})
		_, err := p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(boardCmd)
}
