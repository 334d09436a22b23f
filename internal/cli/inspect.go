package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mkoenig/pixelgraph/pkg/graph"
	"github.com/mkoenig/pixelgraph/pkg/layer"
	"github.com/mkoenig/pixelgraph/pkg/pipeline"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// inspectCommand creates the inspect command that steps through a recipe's
// layers interactively.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [recipe.toml]",
		Short: "Step through a recipe's layers interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read recipe: %w", err)
			}
			g, err := pipeline.ParseRecipe(data)
			if err != nil {
				return err
			}

			model := newInspectModel(g, args[0])
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}
}

// inspectModel is the bubbletea model for interactive graph inspection.
// The cursor doubles as the graph's selected layer so other surfaces see
// the same selection.
type inspectModel struct {
	graph   *graph.Graph
	recipe  string
	lastErr error
}

func newInspectModel(g *graph.Graph, recipe string) inspectModel {
	return inspectModel{graph: g, recipe: recipe}
}

func (m inspectModel) Init() tea.Cmd {
	return nil
}

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if cur := m.graph.SelectedLayer(); cur > 0 {
				_ = m.graph.SelectLayer(cur - 1)
			}
		case "down", "j":
			if cur := m.graph.SelectedLayer(); cur < m.graph.Len()-1 {
				_ = m.graph.SelectLayer(cur + 1)
			}
		case "enter", " ":
			m.lastErr = m.graph.ComputeLayer(m.graph.SelectedLayer())
		case "a":
			m.lastErr = nil
			for idx := 0; idx <= m.graph.SelectedLayer(); idx++ {
				if err := m.graph.ComputeLayer(idx); err != nil {
					m.lastErr = err
					break
				}
			}
		}
	}
	return m, nil
}

func (m inspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Inspect " + m.recipe))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ compute  a compute up to here  q quit"))
	b.WriteString("\n\n")

	selected := m.graph.SelectedLayer()
	for idx := 0; idx < m.graph.Len(); idx++ {
		cursor := "  "
		if idx == selected {
			cursor = "▸ "
		}

		line := fmt.Sprintf("%s%d  %-22s %-10s %s",
			cursor, idx, describeLayer(m.graph, idx),
			fmt.Sprintf("v%d", m.graph.Version(idx)),
			describeOutput(m.graph, idx))

		if idx == selected {
			b.WriteString(listSelectedStyle.Render(line))
		} else if m.graph.Version(idx) > 0 {
			b.WriteString(listNormalStyle.Render(line))
		} else {
			b.WriteString(listDimStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  generation %d", m.graph.Generation())))
	if m.lastErr != nil {
		b.WriteString("\n")
		b.WriteString(StyleWarning.Render("  " + m.lastErr.Error()))
	}

	return b.String()
}

// describeLayer formats a layer's kind and name for display.
func describeLayer(g *graph.Graph, idx int) string {
	l, ok := g.Layer(idx)
	if !ok {
		return "?"
	}
	kind := ""
	if k, ok := l.(layer.Kinder); ok {
		kind = k.Kind()
	}
	if n, ok := l.(layer.Namer); ok {
		if kind != "" {
			return kind + " " + n.Name()
		}
		return n.Name()
	}
	return kind
}

// describeOutput summarizes a layer's cached output, or "unset" when the
// layer has not been computed yet.
func describeOutput(g *graph.Graph, idx int) string {
	out, err := g.Output(idx)
	if err != nil || out == nil {
		return "unset"
	}
	name := fmt.Sprintf("%T", out)
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	if sized, ok := out.(interface {
		Width() int
		Height() int
	}); ok {
		return fmt.Sprintf("%s %dx%d", name, sized.Width(), sized.Height())
	}
	return name
}
