package ui

import tea "github.com/charmbracelet/bubbletea"

func isQuit(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q", "ctrl+c":
		return true
	}
	return false
}

// sectionDigit maps "1".."9" to a zero-based section index.
func sectionDigit(msg tea.KeyMsg) (int, bool) {
	s := msg.String()
	if len(s) != 1 || s[0] < '1' || s[0] > '9' {
		return 0, false
	}
	return int(s[0] - '1'), true
}

func helpText(narrow, formFocused bool) string {
	if formFocused {
		return "tab next field  ←/→ inquiry type  ctrl+s send  esc leave form"
	}
	if narrow {
		return "j/k scroll  tab section  / menu  q quit"
	}
	return "j/k scroll  pgup/pgdn page  g/G top/end  tab/1-5 sections  enter view work  / menu  c contact  m motion  q quit"
}
