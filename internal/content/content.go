// Package content holds the portfolio copy: owner details, experience
// entries, skills and contact channels.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed portfolio.yaml
var portfolioYAML []byte

//go:embed skills.csv
var skillsCSV []byte

var (
	// ErrNoSections is returned when the nav lists no sections.
	ErrNoSections = errors.New("content: no sections")
	// ErrUnknownSection is returned for a nav id the page cannot render.
	ErrUnknownSection = errors.New("content: unknown section")
)

// Sections are the section ids the page renders, in page order.
var Sections = []string{"home", "about", "experience", "skills", "contact"}

type Owner struct {
	Name     string `yaml:"name" validate:"required"`
	Greeting string `yaml:"greeting"`
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	Tagline  string `yaml:"tagline"`
}

type About struct {
	Heading  string   `yaml:"heading"`
	Intro    string   `yaml:"intro"`
	Subtitle string   `yaml:"subtitle"`
	Points   []string `yaml:"points"`
	Closing  string   `yaml:"closing"`
}

// Experience is one role on the timeline.
type Experience struct {
	Company string   `yaml:"company" validate:"required"`
	Role    string   `yaml:"role" validate:"required"`
	Period  string   `yaml:"period"`
	Accent  []string `yaml:"accent" validate:"max=2,dive,hexcolor"`
	Bullets []string `yaml:"bullets"`
	Tech    []string `yaml:"tech"`
	Link    string   `yaml:"link" validate:"omitempty,url"`
}

// ID is the card id used for layout and chip navigation.
func (e Experience) ID() string {
	return "exp-" + Slug(e.Company)
}

// AccentPair returns the two gradient stops, repeating the first when only
// one is configured.
func (e Experience) AccentPair() (string, string) {
	switch len(e.Accent) {
	case 0:
		return "", ""
	case 1:
		return e.Accent[0], e.Accent[0]
	default:
		return e.Accent[0], e.Accent[1]
	}
}

type Channel struct {
	Label string `yaml:"label" validate:"required"`
	Value string `yaml:"value"`
	Href  string `yaml:"href"`
}

type Contact struct {
	Heading  string    `yaml:"heading"`
	Blurb    string    `yaml:"blurb"`
	Channels []Channel `yaml:"channels" validate:"dive"`
}

// NavItem is a page section reachable from the nav bar.
type NavItem struct {
	ID    string `yaml:"id" validate:"required"`
	Label string `yaml:"label" validate:"required"`
}

// Skill is one row of skills.csv.
type Skill struct {
	Name     string `csv:"name"`
	Category string `csv:"category"`
}

// SkillGroup is the skills of one category in file order.
type SkillGroup struct {
	Category string
	Skills   []string
}

// Portfolio is the full page content.
type Portfolio struct {
	Owner      Owner        `yaml:"owner"`
	About      About        `yaml:"about"`
	Experience []Experience `yaml:"experience" validate:"dive"`
	Contact    Contact      `yaml:"contact"`
	Nav        []NavItem    `yaml:"nav" validate:"dive"`

	Skills []Skill `yaml:"-"`
}

// Load parses the embedded portfolio.
func Load() (*Portfolio, error) {
	return Parse(portfolioYAML, skillsCSV)
}

// Parse builds a Portfolio from YAML page copy and a skills CSV.
func Parse(pageYAML, skills []byte) (*Portfolio, error) {
	p := &Portfolio{}
	if err := yaml.Unmarshal(pageYAML, p); err != nil {
		return nil, fmt.Errorf("parsing portfolio: %w", err)
	}
	if len(skills) > 0 {
		if err := gocsv.UnmarshalBytes(skills, &p.Skills); err != nil {
			return nil, fmt.Errorf("parsing skills: %w", err)
		}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks required fields, that every nav id names a rendered
// section, and that section and card ids are unique.
func (p *Portfolio) Validate() error {
	if len(p.Nav) == 0 {
		return ErrNoSections
	}
	if err := validator.New().Struct(p); err != nil {
		return fmt.Errorf("validating portfolio: %w", err)
	}
	seen := make(map[string]bool, len(p.Nav)+len(p.Experience))
	for _, n := range p.Nav {
		if !slices.Contains(Sections, n.ID) {
			return fmt.Errorf("validating portfolio: %w %q", ErrUnknownSection, n.ID)
		}
		if seen[n.ID] {
			return fmt.Errorf("validating portfolio: duplicate section %q", n.ID)
		}
		seen[n.ID] = true
	}
	for _, e := range p.Experience {
		id := e.ID()
		if seen[id] {
			return fmt.Errorf("validating portfolio: duplicate experience %q", e.Company)
		}
		seen[id] = true
	}
	for i, s := range p.Skills {
		p.Skills[i].Name = strings.TrimSpace(s.Name)
		p.Skills[i].Category = strings.TrimSpace(s.Category)
	}
	return nil
}

// SectionIDs returns nav ids in page order.
func (p *Portfolio) SectionIDs() []string {
	ids := make([]string, len(p.Nav))
	for i, n := range p.Nav {
		ids[i] = n.ID
	}
	return ids
}

// ExperienceIDs returns experience card ids in timeline order.
func (p *Portfolio) ExperienceIDs() []string {
	ids := make([]string, len(p.Experience))
	for i, e := range p.Experience {
		ids[i] = e.ID()
	}
	return ids
}

// Section returns the nav item for id.
func (p *Portfolio) Section(id string) (NavItem, bool) {
	for _, n := range p.Nav {
		if n.ID == id {
			return n, true
		}
	}
	return NavItem{}, false
}

// SkillGroups groups skills by category in first-seen order. Rows with an
// empty name are skipped; an empty category becomes "Other".
func (p *Portfolio) SkillGroups() []SkillGroup {
	var groups []SkillGroup
	index := make(map[string]int)
	for _, s := range p.Skills {
		if s.Name == "" {
			continue
		}
		cat := s.Category
		if cat == "" {
			cat = "Other"
		}
		i, ok := index[cat]
		if !ok {
			i = len(groups)
			index[cat] = i
			groups = append(groups, SkillGroup{Category: cat})
		}
		groups[i].Skills = append(groups[i].Skills, s.Name)
	}
	return groups
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lowercases s and collapses runs of other characters into single
// hyphens, trimming them from both ends.
func Slug(s string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
}
