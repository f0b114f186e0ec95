package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/folio/internal/content"
	"github.com/olivier-w/folio/internal/fx"
	"github.com/olivier-w/folio/internal/geom"
)

// Element ids placed in the layout besides sections and experience cards.
const (
	ctaWork       = "cta-work"
	ctaContact    = "cta-contact"
	chipPrefix    = "chip-"
	channelPrefix = "channel-"
	formID        = "contact-form"
	cubeID        = "hero-cube"

	heroMinHeight = 18
)

// docBuilder appends rendered blocks to the document and records element
// rects in document coordinates.
type docBuilder struct {
	lines  []string
	layout *geom.Layout
}

func (b *docBuilder) row() int { return len(b.lines) }

func (b *docBuilder) blank(n int) {
	for range n {
		b.lines = append(b.lines, "")
	}
}

// add appends block indented by left columns and returns its top row and
// height.
func (b *docBuilder) add(block string, left int) (int, int) {
	top := len(b.lines)
	pad := strings.Repeat(" ", max(left, 0))
	for _, l := range strings.Split(block, "\n") {
		b.lines = append(b.lines, pad+l)
	}
	return top, len(b.lines) - top
}

func (b *docBuilder) place(id string, left, top, w, h int) {
	b.layout.Place(id, geom.Rect{Left: float64(left), Top: float64(top), Width: float64(w), Height: float64(h)})
}

// refresh re-renders the header and document and re-places every element.
// Effect state only changes colors and offsets, so geometry is stable
// across frames.
func (m *Model) refresh() {
	if m.width == 0 {
		return
	}
	m.navView, m.pills = m.renderNav()
	m.layout.SetViewport(geom.Rect{
		Top:    float64(m.navRows()),
		Width:  float64(m.width),
		Height: float64(m.viewportHeight()),
	})

	y := m.layout.ScrollY()
	m.layout.Reset()
	b := &docBuilder{layout: m.layout}
	m.renderHome(b)
	m.renderAbout(b)
	m.renderExperience(b)
	m.renderSkills(b)
	m.renderContact(b)
	m.layout.SetDocHeight(float64(b.row()))
	m.layout.SetScroll(y)
	m.docLines = b.lines
}

func (m Model) tiltIDs() []string {
	ids := m.page.ExperienceIDs()
	for _, c := range m.page.Contact.Channels {
		ids = append(ids, channelPrefix+content.Slug(c.Label))
	}
	return ids
}

// clickables are hit-tested on left click, topmost last.
func (m Model) clickables() []string {
	ids := []string{formID, ctaWork, ctaContact}
	for _, id := range m.page.ExperienceIDs() {
		ids = append(ids, chipPrefix+id)
	}
	return ids
}

func (m Model) margin() int {
	return max((m.width-m.contentWidth())/2, 0)
}

// section wraps a section body: a heading, then whatever fn appends. The
// section rect spans from the padding above the heading to the end of fn's
// output.
func (m Model) section(b *docBuilder, id, heading string, fn func()) {
	top := b.row()
	b.blank(1)
	h := m.th.accentStyle().Render(heading)
	rule := fx.Gradient(strings.Repeat("─", min(lipgloss.Width(heading)+4, m.contentWidth())), m.th.accent, m.th.accentAlt)
	b.add(h+"\n"+rule, m.margin())
	b.blank(1)
	fn()
	b.blank(1)
	b.place(id, 0, top, m.width, b.row()-top)
}

func (m *Model) renderHome(b *docBuilder) {
	o := m.page.Owner
	heroH := max(m.viewportHeight(), heroMinHeight)
	if w, h := m.particleSize(); w != m.width || h != heroH {
		m.particles.Update(0, m.width, heroH)
	}
	bg := padLines(strings.Split(m.particles.View(), "\n"), heroH)

	name := lipgloss.NewStyle().Bold(true).Render(fx.Gradient(o.Name, m.th.accent, m.th.accentAlt))
	text := []string{
		subtitleStyle.Render(o.Greeting),
		name,
		"",
		titleStyle.Render(o.Title),
		subtitleStyle.Render(o.Subtitle),
		"",
	}

	reach := int(math.Ceil(max(m.cfg.Magnetic.MaxTranslate, 0)))
	work, contact := m.magnetState(ctaWork), m.magnetState(ctaContact)
	workBtn := button("View My Work", true, work.Pulsing, m.th)
	contactBtn := button("Get In Touch", false, contact.Pulsing, m.th)
	ctas := lipgloss.JoinHorizontal(lipgloss.Top,
		offsetBlock(workBtn, roundCell(work.X), roundCell(work.Y), reach),
		"  ",
		offsetBlock(contactBtn, roundCell(contact.X), roundCell(contact.Y), reach),
	)
	ctaRow := len(text)
	text = append(text, strings.Split(ctas, "\n")...)
	text = append(text, "", m.th.mutedStyle().Render("✦ "+o.Tagline))

	y0 := max((heroH-len(text))/2, 0)
	ctaW := lipgloss.Width(ctas)
	ctaX := max((m.width-ctaW)/2, 0)
	textW := 0
	for _, line := range text {
		textW = max(textW, lipgloss.Width(line))
	}
	top := b.row()
	m.drawCube(b, bg, top, (m.width+textW)/2)
	for i, line := range text {
		r := y0 + i
		if r >= heroH {
			break
		}
		if line == "" {
			continue
		}
		x := max((m.width-lipgloss.Width(line))/2, 0)
		if i >= ctaRow && i < ctaRow+lipgloss.Height(ctas) {
			x = ctaX
		}
		bg[r] = overlay(bg[r], line, x)
	}

	b.add(strings.Join(bg, "\n"), 0)
	b.place("home", 0, top, m.width, heroH)

	// Buttons are hit-tested at their rest position.
	btnTop := top + y0 + ctaRow + reach
	b.place(ctaWork, ctaX+reach, btnTop, lipgloss.Width(workBtn), lipgloss.Height(workBtn))
	b.place(ctaContact, ctaX+lipgloss.Width(workBtn)+3*reach+2, btnTop, lipgloss.Width(contactBtn), lipgloss.Height(contactBtn))
}

// drawCube paints the puzzle cube into the hero rows right of textRight,
// centered in the free space. It is skipped when the space is too narrow.
func (m *Model) drawCube(b *docBuilder, bg []string, top, textRight int) {
	if m.cube == nil {
		return
	}
	cw, ch := m.cfg.Cube.Width, min(m.cfg.Cube.Height, len(bg))
	free := m.width - textRight
	if free < cw+4 {
		return
	}
	if w, h := m.cube.Size(); w != cw || h != ch {
		m.cube.Update(0, cw, ch)
	}
	x := textRight + (free-cw)/2
	y := (len(bg) - ch) / 2
	for i, line := range strings.Split(m.cube.View(), "\n") {
		if r := y + i; r < len(bg) {
			bg[r] = overlay(bg[r], line, x)
		}
	}
	b.place(cubeID, x, top+y, cw, ch)
}

func (m Model) particleSize() (int, int) {
	v := m.particles.View()
	if v == "" {
		return 0, 0
	}
	return lipgloss.Width(v), lipgloss.Height(v)
}

func roundCell(v float64) int {
	return int(math.Round(v))
}

func (m *Model) renderAbout(b *docBuilder) {
	a := m.page.About
	m.section(b, "about", a.Heading, func() {
		var body strings.Builder
		body.WriteString(titleStyle.Render(a.Intro) + "\n")
		body.WriteString(subtitleStyle.Render(a.Subtitle) + "\n\n")
		for _, p := range a.Points {
			body.WriteString(m.th.accentStyle().Render("✦ ") + p + "\n")
		}
		if a.Closing != "" {
			body.WriteString("\n" + lipgloss.NewStyle().Italic(true).Render(a.Closing))
		}
		w := min(m.contentWidth(), 76)
		card := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color(m.th.muted)).
			Padding(1, 2).
			Width(w - 2).
			Render(strings.TrimRight(body.String(), "\n"))
		b.add(card, m.margin()+(m.contentWidth()-w)/2)
	})
}

func (m *Model) renderExperience(b *docBuilder) {
	m.section(b, "experience", "Experience", func() {
		m.renderChips(b)
		b.blank(1)

		cw := m.contentWidth()
		left := m.margin()
		cardW := cw - 3
		var cards []string
		offsets := make([]int, len(m.page.Experience))
		heights := make([]int, len(m.page.Experience))
		row := 0
		for i, e := range m.page.Experience {
			card := m.experienceCard(e, cardW)
			offsets[i], heights[i] = row, lipgloss.Height(card)
			cards = append(cards, card)
			row += heights[i] + 1
		}
		column := strings.Split(strings.Join(cards, "\n\n"), "\n")
		rail := renderRail(m.rail.Pos, len(column), m.th.accent, m.th.muted)

		top := b.row()
		for i, line := range column {
			b.lines = append(b.lines, strings.Repeat(" ", left)+rail[i]+"  "+line)
		}
		for i, e := range m.page.Experience {
			b.place(e.ID(), left+3, top+offsets[i], cardW, heights[i])
		}
		m.timeline = span{top: top, height: len(column)}
	})
}

func (m *Model) renderChips(b *docBuilder) {
	cw := m.contentWidth()
	left := m.margin()
	active := m.cards.Active()

	var rows [][]string
	var cur []string
	x := 0
	type chipPos struct {
		id        string
		row, x, w int
	}
	var pos []chipPos
	for _, e := range m.page.Experience {
		a, _ := e.AccentPair()
		accent := hexOr(a, m.th.accent.Hex())
		style := lipgloss.NewStyle().Padding(0, 1).Foreground(color(accent))
		if e.ID() == active {
			style = style.Bold(true).Foreground(lipgloss.Color("#000000")).Background(color(accent))
		}
		chip := style.Render("● " + e.Company)
		w := lipgloss.Width(chip)
		if x > 0 && x+w > cw {
			rows = append(rows, cur)
			cur, x = nil, 0
		}
		pos = append(pos, chipPos{id: chipPrefix + e.ID(), row: len(rows), x: x, w: w})
		cur = append(cur, chip)
		x += w + 1
	}
	if len(cur) > 0 {
		rows = append(rows, cur)
	}

	top := b.row()
	for _, r := range rows {
		b.add(strings.Join(r, " "), left)
	}
	for _, p := range pos {
		b.place(p.id, left+p.x, top+p.row, p.w, 1)
	}
}

func (m Model) experienceCard(e content.Experience, width int) string {
	st := m.tiltState(e.ID())
	a, c := e.AccentPair()
	accentA := hexOr(a, m.th.accent.Hex())
	accentB := hexOr(c, m.th.accentAlt.Hex())

	var body strings.Builder
	body.WriteString(glowTitle(e.Company, st, accentA, accentB) + "  " + m.th.mutedStyle().Render(e.Period) + "\n")
	body.WriteString(titleStyle.Render(e.Role) + "\n")
	for _, bl := range e.Bullets {
		body.WriteString("• " + bl + "\n")
	}
	if len(e.Tech) > 0 {
		tags := make([]string, len(e.Tech))
		for i, t := range e.Tech {
			tags[i] = lipgloss.NewStyle().Foreground(color(accentB)).Render("[" + t + "]")
		}
		body.WriteString(strings.Join(tags, " ") + "\n")
	}
	if e.Link != "" {
		body.WriteString(hyperlink(m.th.mutedStyle().Render("↗ "+linkLabel(e.Link)), e.Link))
	}
	return tiltCard(strings.TrimRight(body.String(), "\n"), width, st, m.cfg.Tilt.MaxTiltDeg, accentA, accentB, m.th.muted, m.th.shadow)
}

func (m *Model) renderSkills(b *docBuilder) {
	m.section(b, "skills", "Technical Skills", func() {
		cw := m.contentWidth()
		labelW := 13
		for _, g := range m.page.SkillGroups() {
			label := m.th.accentStyle().Width(labelW).Render(g.Category)
			list := lipgloss.NewStyle().Width(max(cw-labelW, 10)).Render(strings.Join(g.Skills, " • "))
			b.add(lipgloss.JoinHorizontal(lipgloss.Top, label, list), m.margin())
		}
	})
}

func (m *Model) renderContact(b *docBuilder) {
	c := m.page.Contact
	m.section(b, "contact", c.Heading, func() {
		cw := m.contentWidth()
		left := m.margin()
		if c.Blurb != "" {
			b.add(subtitleStyle.Width(cw).Render(c.Blurb), left)
			b.blank(1)
		}

		cols := 1
		if cw >= 70 {
			cols = 2
		}
		cardW := (cw - (cols-1)*2) / cols
		for i := 0; i < len(c.Channels); i += cols {
			end := min(i+cols, len(c.Channels))
			var cards []string
			for _, ch := range c.Channels[i:end] {
				id := channelPrefix + content.Slug(ch.Label)
				st := m.tiltState(id)
				value := ch.Value
				if value == "" {
					value = linkLabel(ch.Href)
				}
				body := glowTitle(ch.Label, st, m.th.accent, m.th.accentAlt) + "\n" + hyperlink(m.th.mutedStyle().Render(value), ch.Href)
				cards = append(cards, tiltCard(body, cardW, st, m.cfg.Tilt.MaxTiltDeg, m.th.accent, m.th.accentAlt, m.th.muted, m.th.shadow))
			}
			parts := make([]string, 0, 2*len(cards))
			for j, card := range cards {
				if j > 0 {
					parts = append(parts, "  ")
				}
				parts = append(parts, card)
			}
			top, _ := b.add(lipgloss.JoinHorizontal(lipgloss.Top, parts...), left)
			for j, ch := range c.Channels[i:end] {
				b.place(channelPrefix+content.Slug(ch.Label), left+j*(cardW+2), top, cardW, lipgloss.Height(cards[j]))
			}
		}

		b.blank(1)
		border := m.th.muted
		if m.form.focused {
			border = m.th.accent
		}
		var body strings.Builder
		body.WriteString(titleStyle.Render("Send a message") + "\n\n")
		body.WriteString(m.form.View(m.th))
		if m.notice != "" {
			body.WriteString("\n\n" + statusStyle.Render(m.notice))
		} else if !m.form.focused {
			body.WriteString("\n\n" + helpStyle.Render("press c or click here to write"))
		}
		box := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color(border)).
			Padding(0, 1).
			Width(cw - 2).
			Render(body.String())
		top, h := b.add(box, left)
		b.place(formID, left, top, cw, h)

		b.blank(1)
		b.add(helpStyle.Render("© "+m.page.Owner.Name+" · rendered in the terminal"), left)
	})
}
