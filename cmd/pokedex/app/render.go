package app

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kailas-cloud/pokedex"
	"github.com/kailas-cloud/pokedex/internal/domain/stats"
)

const barWidth = 24

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#facc15"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
	labelStyle  = lipgloss.NewStyle().Width(18)
	trackStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#374151"))
)

// Badge renders a type tag on its palette colour.
func Badge(tag string) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(pokedex.TypeColor(tag))).
		Foreground(lipgloss.Color("#111827")).
		Padding(0, 1).
		Render(tag)
}

func badges(tags []string) string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = Badge(t)
	}
	return strings.Join(out, " ")
}

// Bar renders a horizontal bar filled to percent (clamped to [0, 100]).
func Bar(percent float64, color string) string {
	filled := int(math.Round(percent / 100 * barWidth))
	filled = max(0, min(barWidth, filled))
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(strings.Repeat("█", filled)) +
		trackStyle.Render(strings.Repeat("░", barWidth-filled))
}

// RenderList renders one page as a table followed by the page footer.
func RenderList(p pokedex.Page) string {
	var sb strings.Builder

	if len(p.Items) == 0 {
		sb.WriteString(mutedStyle.Render("No Pokémon match these filters."))
		sb.WriteString("\n")
	} else {
		t := table{headers: []string{"#", "Name", "Types", "Height (m)", "Weight (kg)"}}
		for i := range p.Items {
			c := &p.Items[i]
			t.rows = append(t.rows, []string{
				fmt.Sprintf("%03d", c.Ordinal),
				c.Name,
				badges(c.Types),
				formatInterval(c.Height),
				formatInterval(c.Weight),
			})
		}
		sb.WriteString(t.render())
	}

	fmt.Fprintf(&sb, "Page %d of %d (%d total)\n", p.Page, p.TotalPages, p.Total)
	return sb.String()
}

// RenderDetail renders one Pokémon and its gauges.
func RenderDetail(d pokedex.Detail) string {
	c := d.Pokemon
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(fmt.Sprintf("#%03d %s", c.Ordinal, c.Name)))
	if c.Classification != "" {
		sb.WriteString(" " + mutedStyle.Render(c.Classification))
	}
	sb.WriteString("\n\n")

	fmt.Fprintf(&sb, "%s%s\n", labelStyle.Render("Types"), badges(c.Types))
	fmt.Fprintf(&sb, "%s%s\n", labelStyle.Render("Weaknesses"), badges(c.Weaknesses))
	fmt.Fprintf(&sb, "%s%s m\n", labelStyle.Render("Height"), formatInterval(c.Height))
	fmt.Fprintf(&sb, "%s%s kg\n", labelStyle.Render("Weight"), formatInterval(c.Weight))
	sb.WriteString("\n")

	for _, g := range d.Gauges {
		fmt.Fprintf(&sb, "%s%s %g / %g\n", labelStyle.Render(g.Label), Bar(g.Percent, g.Color), g.Value, g.Max)
	}

	if len(c.FastAttacks)+len(c.SpecialAttacks) > 0 {
		sb.WriteString("\n")
		for _, a := range c.FastAttacks {
			fmt.Fprintf(&sb, "%s%s %s %d\n", labelStyle.Render("Fast"), a.Name, Badge(a.Type), a.Damage)
		}
		for _, a := range c.SpecialAttacks {
			fmt.Fprintf(&sb, "%s%s %s %d\n", labelStyle.Render("Special"), a.Name, Badge(a.Type), a.Damage)
		}
	}

	if len(c.Evolutions) > 0 {
		names := make([]string, len(c.Evolutions))
		for i, e := range c.Evolutions {
			names[i] = fmt.Sprintf("#%03d %s", e.Ordinal, e.Name)
		}
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "%s%s\n", labelStyle.Render("Evolves into"), strings.Join(names, " → "))
		if r := c.EvolutionRequirements; r != nil {
			fmt.Fprintf(&sb, "%s%d %s\n", labelStyle.Render("Requires"), r.Amount, r.Name)
		}
	}
	return sb.String()
}

// RenderDashboard renders the radar axes as bars plus the summary.
func RenderDashboard(d pokedex.Dashboard) string {
	c := d.Pokemon
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(fmt.Sprintf("#%03d %s", c.Ordinal, c.Name)))
	sb.WriteString(" " + badges(c.Types))
	sb.WriteString("\n")
	sb.WriteString(mutedStyle.Render(fmt.Sprintf("%d of %d  ← %d  → %d", d.Index+1, d.Total, d.Prev, d.Next)))
	sb.WriteString("\n\n")

	for _, a := range d.Axes {
		color := pokedex.TypeColor("")
		if a.Subject == d.Summary.Strongest.Subject {
			color = stats.ColorHigh
		} else if a.Subject == d.Summary.Weakest.Subject {
			color = stats.ColorLow
		}
		fmt.Fprintf(&sb, "%s%s %.1f\n", labelStyle.Render(a.Subject), Bar(a.Normalized, color), a.Value)
	}

	sb.WriteString("\n")
	sb.WriteString(d.Summary.String())
	sb.WriteString("\n")
	return sb.String()
}

// RenderFacets renders the filter values.
func RenderFacets(f pokedex.Facets) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s%s\n", labelStyle.Render("Types"), badges(f.Types))
	fmt.Fprintf(&sb, "%s%s\n", labelStyle.Render("Weaknesses"), badges(f.Weaknesses))
	fmt.Fprintf(&sb, "%s%s\n", labelStyle.Render("Height"), bucketNames(f.Heights))
	fmt.Fprintf(&sb, "%s%s\n", labelStyle.Render("Weight"), bucketNames(f.Weights))
	return sb.String()
}

func bucketNames(bs []pokedex.Bucket) string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = fmt.Sprintf("%s %s", b.Name, mutedStyle.Render(fmt.Sprintf("(%g-%g)", b.Range.Min, b.Range.Max)))
	}
	return strings.Join(out, ", ")
}

func formatInterval(iv pokedex.Interval) string {
	return fmt.Sprintf("%.2f-%.2f", iv.Min, iv.Max)
}

// table is a borderless table sized to its widest cells.
type table struct {
	headers []string
	rows    [][]string
}

func (t *table) render() string {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	// lipgloss Width includes padding
	for i := range widths {
		widths[i] += 2
	}

	var sb strings.Builder
	for i, h := range t.headers {
		sb.WriteString(headerStyle.Width(widths[i]).Render(h))
	}
	sb.WriteString("\n")

	total := 0
	for _, w := range widths {
		total += w
	}
	sb.WriteString(mutedStyle.Render(strings.Repeat("─", total)))
	sb.WriteString("\n")

	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) {
				sb.WriteString(cellStyle.Width(widths[i]).Render(cell))
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
