package content

import (
	"errors"
	"reflect"
	"testing"
)

func TestLoadEmbedded(t *testing.T) {
	p, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := []string{"home", "about", "experience", "skills", "contact"}
	if got := p.SectionIDs(); !reflect.DeepEqual(got, want) {
		t.Fatalf("SectionIDs() = %v, want %v", got, want)
	}
	if len(p.Experience) != 5 {
		t.Fatalf("expected 5 experience entries, got %d", len(p.Experience))
	}
	if got := p.ExperienceIDs()[4]; got != "exp-integrated-photonics-lab" {
		t.Fatalf("unexpected last experience id %q", got)
	}
	if len(p.Skills) == 0 {
		t.Fatal("expected skills from csv")
	}
}

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"Purdue Stack":           "purdue-stack",
		"  Creative  Capital!! ": "creative-capital",
		"C++":                    "c",
		"Lumerical/FDTD":         "lumerical-fdtd",
		"---":                    "",
	}
	for in, want := range tests {
		if got := Slug(in); got != want {
			t.Fatalf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSkillGroupsFirstSeenOrder(t *testing.T) {
	csv := []byte("name,category\nGo,Languages\nDocker,Tools\nRust,Languages\n,Tools\nVim,\n")
	p, err := Parse([]byte("nav:\n  - id: home\n    label: Home\nowner:\n  name: X\n"), csv)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := []SkillGroup{
		{Category: "Languages", Skills: []string{"Go", "Rust"}},
		{Category: "Tools", Skills: []string{"Docker"}},
		{Category: "Other", Skills: []string{"Vim"}},
	}
	if got := p.SkillGroups(); !reflect.DeepEqual(got, want) {
		t.Fatalf("SkillGroups() = %+v, want %+v", got, want)
	}
}

func TestParseNoSections(t *testing.T) {
	_, err := Parse([]byte("owner:\n  name: X\n"), nil)
	if !errors.Is(err, ErrNoSections) {
		t.Fatalf("expected ErrNoSections, got %v", err)
	}
}

func TestParseRejectsDuplicateSections(t *testing.T) {
	doc := "owner:\n  name: X\nnav:\n  - id: home\n    label: Home\n  - id: home\n    label: Again\n"
	if _, err := Parse([]byte(doc), nil); err == nil {
		t.Fatal("expected duplicate section error")
	}
}

func TestParseRejectsUnknownSection(t *testing.T) {
	doc := "owner:\n  name: X\nnav:\n  - id: home\n    label: Home\n  - id: blog\n    label: Blog\n"
	_, err := Parse([]byte(doc), nil)
	if !errors.Is(err, ErrUnknownSection) {
		t.Fatalf("expected ErrUnknownSection, got %v", err)
	}
}

func TestEmbeddedNavMatchesRenderedSections(t *testing.T) {
	p, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := p.SectionIDs(); !reflect.DeepEqual(got, Sections) {
		t.Fatalf("SectionIDs() = %v, want %v", got, Sections)
	}
}

func TestParseRejectsBadAccent(t *testing.T) {
	doc := "owner:\n  name: X\nnav:\n  - id: home\n    label: Home\nexperience:\n  - company: A\n    role: B\n    accent: [\"orange\"]\n"
	if _, err := Parse([]byte(doc), nil); err == nil {
		t.Fatal("expected accent validation error")
	}
}

func TestAccentPair(t *testing.T) {
	e := Experience{Accent: []string{"#111111"}}
	if a, b := e.AccentPair(); a != "#111111" || b != "#111111" {
		t.Fatalf("AccentPair() = %q, %q", a, b)
	}
}
