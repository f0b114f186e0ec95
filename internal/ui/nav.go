package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/olivier-w/folio/internal/geom"
)

// pillRect is the screen column range of a nav pill on the first nav row.
type pillRect struct {
	id     string
	x0, x1 int
}

// renderNav draws the fixed header. Wide terminals get a pill row, a
// spring-animated underline and a rule; narrow ones a single compact line.
func (m Model) renderNav() (string, []pillRect) {
	brand := m.th.accentStyle().Render(m.page.Owner.Name)
	active := m.sections.Active()

	if m.narrow() {
		label := active
		idx := 0
		for i, n := range m.page.Nav {
			if n.ID == active {
				label, idx = n.Label, i
			}
		}
		line := fmt.Sprintf(" %s %s %s %s",
			brand,
			helpStyle.Render("·"),
			titleStyle.Render(label),
			helpStyle.Render(fmt.Sprintf("(%d/%d)  ☰ /", idx+1, len(m.page.Nav))),
		)
		return line, nil
	}

	var row strings.Builder
	row.WriteString(" " + brand + "  ")
	x := lipgloss.Width(row.String())
	pills := make([]pillRect, 0, len(m.page.Nav))
	for _, n := range m.page.Nav {
		p := m.th.pill(n.ID == active).Render(n.Label)
		w := lipgloss.Width(p)
		pills = append(pills, pillRect{id: n.ID, x0: x, x1: x + w})
		row.WriteString(p + " ")
		x += w + 1
	}

	ux := max(int(math.Round(m.navX.Pos)), 0)
	uw := max(int(math.Round(m.navW.Pos)), 0)
	underline := strings.Repeat(" ", ux) + m.th.accentStyle().Render(strings.Repeat("━", uw))
	rule := m.th.mutedStyle().Render(strings.Repeat("─", max(m.width, 0)))

	return row.String() + "\n" + underline + "\n" + rule, pills
}

// pillAt returns the nav pill under p.
func (m Model) pillAt(p geom.Point) (string, bool) {
	if p.Y >= 1 {
		return "", false
	}
	x := int(p.X)
	for _, pr := range m.pills {
		if x >= pr.x0 && x < pr.x1 {
			return pr.id, true
		}
	}
	return "", false
}

func (m Model) statusLine() string {
	left := helpStyle.Render(helpText(m.narrow(), m.form.focused))
	var right []string
	if m.notice != "" {
		right = append(right, statusStyle.Render(m.notice))
	}
	if icon := m.motion.Icon(); icon != "" {
		right = append(right, statusStyle.Render(icon))
	}
	if m.showFPS {
		right = append(right, statusStyle.Render(fmt.Sprintf("%.0f fps", m.meter.FPS())))
	}
	if len(right) == 0 {
		return ansi.Truncate(" "+left, m.width, "…")
	}
	r := strings.Join(right, "  ") + " "
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(r) - 1
	if gap < 2 {
		// Notices win over help when space is short.
		return ansi.Truncate(" "+r, m.width, "…")
	}
	return " " + left + strings.Repeat(" ", gap) + r
}
