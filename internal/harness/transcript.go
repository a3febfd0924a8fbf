package harness

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Transcript records a script run. It is also the controller's Notifier
// during the run, so every message lands under the step that caused it.
type Transcript struct {
	Name     string
	Entries  []Entry
	Failures []string

	dir     string
	confirm bool
	prompt  string
	last    string
}

// Entry is one executed step and what it produced.
type Entry struct {
	Step  string
	Lines []string
}

// Failed reports whether any expectation did not hold.
func (t *Transcript) Failed() bool {
	return len(t.Failures) > 0
}

// Render writes the transcript as text.
func (t *Transcript) Render(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", t.Name)
	for _, e := range t.Entries {
		b.WriteString(e.Step)
		b.WriteByte('\n')
		for _, line := range e.Lines {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	if t.Failed() {
		fmt.Fprintf(&b, "%d failed\n", len(t.Failures))
	} else {
		b.WriteString("pass\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// String returns the rendered transcript.
func (t *Transcript) String() string {
	var b strings.Builder
	_ = t.Render(&b)
	return b.String()
}

func (t *Transcript) begin(step string) {
	t.Entries = append(t.Entries, Entry{Step: step})
}

func (t *Transcript) add(line string) {
	if len(t.Entries) == 0 {
		t.begin("")
	}
	e := &t.Entries[len(t.Entries)-1]
	e.Lines = append(e.Lines, line)
}

func (t *Transcript) fail(msg string) {
	t.Failures = append(t.Failures, msg)
	t.add("FAIL " + msg)
}

// message records a notification with the run directory stripped from
// paths so transcripts do not depend on where the run happened.
func (t *Transcript) message(kind, title, text string) {
	if t.dir != "" && t.dir != "." {
		text = strings.ReplaceAll(text, t.dir+string(filepath.Separator), "")
	}
	line := fmt.Sprintf("[%s] %s: %s", kind, title, text)
	t.last = line
	t.add(line)
}

func (t *Transcript) Info(title, message string) { t.message("info", title, message) }
func (t *Transcript) Warn(title, message string) { t.message("warn", title, message) }
func (t *Transcript) Error(title, message string) { t.message("error", title, message) }

func (t *Transcript) Confirm(title, question string) bool {
	t.message("confirm", title, question)
	return t.confirm
}

func (t *Transcript) PromptPath(title, suggested string) (string, bool) {
	t.message("prompt", title, suggested)
	return t.prompt, t.prompt != ""
}
