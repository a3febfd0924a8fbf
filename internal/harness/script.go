package harness

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/shelf/internal/book"
)

// Script is a named sequence of user actions.
type Script struct {
	// Name identifies the script in transcripts and golden file names.
	Name string `yaml:"name"`

	// Description explains what the script exercises.
	Description string `yaml:"description,omitempty"`

	// ConfirmDelete runs the controller with delete confirmation on.
	ConfirmDelete bool `yaml:"confirm_delete,omitempty"`

	Steps []Step `yaml:"steps"`
}

// Step is one user action. Exactly one field is set.
type Step struct {
	Save    *SaveStep   `yaml:"save,omitempty"`
	Select  *int        `yaml:"select,omitempty"`
	Edit    *EditStep   `yaml:"edit,omitempty"`
	Delete  bool        `yaml:"delete,omitempty"`
	Decline bool        `yaml:"decline,omitempty"`
	Search  *string     `yaml:"search,omitempty"`
	Export  *string     `yaml:"export,omitempty"`
	Reload  bool        `yaml:"reload,omitempty"`
	Show    bool        `yaml:"show,omitempty"`
	Expect  *ExpectStep `yaml:"expect,omitempty"`
}

// SaveStep fills the entry form and presses save.
type SaveStep struct {
	Title  string `yaml:"title"`
	Author string `yaml:"author"`
	Year   string `yaml:"year"`
}

// EditStep types value into the cell at row and field.
type EditStep struct {
	Row   int    `yaml:"row"`
	Field string `yaml:"field"`
	Value string `yaml:"value"`
}

// ExpectStep checks the session state. Unset fields are not checked.
type ExpectStep struct {
	Rows     [][]string `yaml:"rows,omitempty"`
	Count    *int       `yaml:"count,omitempty"`
	Selected *int       `yaml:"selected,omitempty"`
	Search   *string    `yaml:"search,omitempty"`
	Message  string     `yaml:"message,omitempty"`
}

// LoadScript reads and parses a script file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script file: %w", err)
	}
	return ParseScript(data)
}

// ParseScript parses a YAML script. Unknown keys are rejected.
func ParseScript(data []byte) (*Script, error) {
	var script Script
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&script); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScript(&script); err != nil {
		return nil, fmt.Errorf("invalid script: %w", err)
	}
	return &script, nil
}

func validateScript(s *Script) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		actions := step.actions()
		switch len(actions) {
		case 0:
			return fmt.Errorf("step %d: no action", i+1)
		case 1:
		default:
			return fmt.Errorf("step %d: multiple actions %s", i+1, strings.Join(actions, ", "))
		}
		if step.Edit != nil {
			if _, err := book.ParseField(step.Edit.Field); err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
		}
	}
	return nil
}

// actions lists the action names set on the step.
func (s Step) actions() []string {
	var names []string
	add := func(set bool, name string) {
		if set {
			names = append(names, name)
		}
	}
	add(s.Save != nil, "save")
	add(s.Select != nil, "select")
	add(s.Edit != nil, "edit")
	add(s.Delete, "delete")
	add(s.Decline, "decline")
	add(s.Search != nil, "search")
	add(s.Export != nil, "export")
	add(s.Reload, "reload")
	add(s.Show, "show")
	add(s.Expect != nil, "expect")
	return names
}

// String renders the step as a transcript line.
func (s Step) String() string {
	switch {
	case s.Save != nil:
		return fmt.Sprintf("save %q %q %q", s.Save.Title, s.Save.Author, s.Save.Year)
	case s.Select != nil:
		return fmt.Sprintf("select %d", *s.Select)
	case s.Edit != nil:
		return fmt.Sprintf("edit %d %s %q", s.Edit.Row, s.Edit.Field, s.Edit.Value)
	case s.Delete:
		return "delete"
	case s.Decline:
		return "delete (declined)"
	case s.Search != nil:
		return fmt.Sprintf("search %q", *s.Search)
	case s.Export != nil:
		return fmt.Sprintf("export %q", *s.Export)
	case s.Reload:
		return "reload"
	case s.Show:
		return "show"
	case s.Expect != nil:
		return s.Expect.String()
	}
	return "?"
}

func (e ExpectStep) String() string {
	var b strings.Builder
	b.WriteString("expect")
	if e.Rows != nil {
		fmt.Fprintf(&b, " rows=%d", len(e.Rows))
	}
	if e.Count != nil {
		fmt.Fprintf(&b, " count=%d", *e.Count)
	}
	if e.Selected != nil {
		fmt.Fprintf(&b, " selected=%d", *e.Selected)
	}
	if e.Search != nil {
		fmt.Fprintf(&b, " search=%q", *e.Search)
	}
	if e.Message != "" {
		b.WriteString(" message")
	}
	return b.String()
}
