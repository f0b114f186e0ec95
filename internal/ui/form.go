package ui

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-playground/validator/v10"
)

// Inquiry is a contact form submission. It is validated and logged, never
// delivered.
type Inquiry struct {
	Name    string `validate:"required,max=80"`
	Email   string `validate:"required,email"`
	Subject string `validate:"max=120"`
	Type    string `validate:"oneof=general collaboration job project"`
	Message string `validate:"required,max=2000"`
}

type inquiryKind struct {
	value, label string
}

var inquiryKinds = []inquiryKind{
	{"general", "General Inquiry"},
	{"collaboration", "Collaboration"},
	{"job", "Job Opportunity"},
	{"project", "Project Discussion"},
}

const (
	fieldName = iota
	fieldEmail
	fieldSubject
	fieldType
	fieldMessage
	fieldSubmit
	fieldCount
)

var fieldLabels = [fieldCount]string{"Name", "Email", "Subject", "Type", "Message", ""}

// contactForm is the inline contact form. It is a plain value owned by
// Model and updated like a bubbles component.
type contactForm struct {
	inputs  [3]textinput.Model
	message textarea.Model
	kind    int
	focus   int
	focused bool
	errs    map[int]string
	width   int

	validate *validator.Validate
}

func newContactForm() contactForm {
	var f contactForm
	placeholders := [3]string{"Your name", "you@example.com", "What's this about?"}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 120
		ti.Prompt = ""
		f.inputs[i] = ti
	}
	f.inputs[fieldName].CharLimit = 80

	ta := textarea.New()
	ta.Placeholder = "Tell me about your project..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 2000
	ta.SetHeight(4)
	f.message = ta

	f.validate = validator.New()
	f.setWidth(60)
	return f
}

func (f *contactForm) setWidth(w int) {
	f.width = max(w, 20)
	inner := f.width - 14
	for i := range f.inputs {
		f.inputs[i].Width = max(inner, 8)
	}
	f.message.SetWidth(max(f.width-4, 10))
}

// Focus activates the form on its first field.
func (f *contactForm) Focus() tea.Cmd {
	f.focused = true
	return f.focusField(fieldName)
}

// Blur leaves the form, keeping its contents.
func (f *contactForm) Blur() {
	f.focused = false
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	f.message.Blur()
}

func (f *contactForm) focusField(i int) tea.Cmd {
	f.focus = (i + fieldCount) % fieldCount
	for j := range f.inputs {
		f.inputs[j].Blur()
	}
	f.message.Blur()
	switch {
	case f.focus < len(f.inputs):
		return f.inputs[f.focus].Focus()
	case f.focus == fieldMessage:
		return f.message.Focus()
	}
	return nil
}

// Inquiry returns the current field values.
func (f *contactForm) Inquiry() Inquiry {
	return Inquiry{
		Name:    strings.TrimSpace(f.inputs[fieldName].Value()),
		Email:   strings.TrimSpace(f.inputs[fieldEmail].Value()),
		Subject: strings.TrimSpace(f.inputs[fieldSubject].Value()),
		Type:    inquiryKinds[f.kind].value,
		Message: strings.TrimSpace(f.message.Value()),
	}
}

// Submit validates the form. On success the form is reset and the
// inquiry returned; on failure field errors are kept for display.
func (f *contactForm) Submit() (Inquiry, error) {
	in := f.Inquiry()
	f.errs = nil
	if err := f.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return in, fmt.Errorf("validating inquiry: %w", err)
		}
		f.errs = make(map[int]string, len(verrs))
		for _, fe := range verrs {
			field, msg := describeFieldError(fe)
			if _, seen := f.errs[field]; !seen {
				f.errs[field] = msg
			}
		}
		return in, fmt.Errorf("validating inquiry: %w", err)
	}
	log.Printf("contact form: %s inquiry from %s <%s> (not sent)", in.Type, in.Name, in.Email)
	f.reset()
	return in, nil
}

func describeFieldError(fe validator.FieldError) (int, string) {
	field := fieldName
	switch fe.Field() {
	case "Email":
		field = fieldEmail
	case "Subject":
		field = fieldSubject
	case "Type":
		field = fieldType
	case "Message":
		field = fieldMessage
	}
	switch fe.Tag() {
	case "required":
		return field, "required"
	case "email":
		return field, "not a valid email"
	case "max":
		return field, "too long"
	}
	return field, "invalid"
}

func (f *contactForm) reset() {
	for i := range f.inputs {
		f.inputs[i].Reset()
	}
	f.message.Reset()
	f.kind = 0
	f.errs = nil
}

// Update handles keys while the form is focused. It reports whether the
// user asked to submit.
func (f contactForm) Update(msg tea.Msg) (contactForm, tea.Cmd, bool) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "tab":
			return f, f.focusField(f.focus + 1), false
		case "shift+tab":
			return f, f.focusField(f.focus - 1), false
		case "ctrl+s":
			return f, nil, true
		case "enter":
			switch {
			case f.focus == fieldSubmit:
				return f, nil, true
			case f.focus != fieldMessage:
				return f, f.focusField(f.focus + 1), false
			}
		case "left", "right", " ":
			if f.focus == fieldType {
				step := 1
				if km.String() == "left" {
					step = len(inquiryKinds) - 1
				}
				f.kind = (f.kind + step) % len(inquiryKinds)
				return f, nil, false
			}
		}
	}

	var cmd tea.Cmd
	switch {
	case f.focus < len(f.inputs):
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	case f.focus == fieldMessage:
		f.message, cmd = f.message.Update(msg)
	}
	return f, cmd, false
}

// View renders the form body.
func (f contactForm) View(th theme) string {
	label := func(i int) string {
		s := fmt.Sprintf("%-8s", fieldLabels[i])
		if f.focused && f.focus == i {
			return th.accentStyle().Render("› " + s)
		}
		return subtitleStyle.Render("  " + s)
	}
	errLine := func(i int) string {
		if msg, ok := f.errs[i]; ok {
			return "\n" + strings.Repeat(" ", 10) + errorStyle.Render(msg)
		}
		return ""
	}

	var b strings.Builder
	for i := range f.inputs {
		b.WriteString(label(i) + " " + f.inputs[i].View() + errLine(i) + "\n")
	}

	kinds := make([]string, len(inquiryKinds))
	for i, k := range inquiryKinds {
		if i == f.kind {
			kinds[i] = th.accentStyle().Render("[" + k.label + "]")
		} else {
			kinds[i] = th.mutedStyle().Render(k.label)
		}
	}
	b.WriteString(label(fieldType) + " " + lipgloss.NewStyle().Width(max(f.width-14, 8)).Render(strings.Join(kinds, " ")) + "\n")
	b.WriteString(label(fieldMessage) + errLine(fieldMessage) + "\n")
	b.WriteString(f.message.View() + "\n")

	submit := "[ Send Message ]"
	if f.focused && f.focus == fieldSubmit {
		submit = th.pill(true).Render("Send Message")
	}
	b.WriteString("  " + submit)
	return b.String()
}
