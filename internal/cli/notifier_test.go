package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTerminalNotifier_EchoesMessages(t *testing.T) {
	buf := &bytes.Buffer{}
	n := &terminalNotifier{out: buf}

	n.Info("Export Complete", "Exported 2 books to a.csv.")
	n.Warn("Input Error", "All fields must be filled.")
	n.Error("Update Error", "year: year must be a number")

	assert.Equal(t, "[info] Export Complete: Exported 2 books to a.csv.\n"+
		"[warning] Input Error: All fields must be filled.\n"+
		"[error] Update Error: year: year must be a number\n", buf.String())
	assert.Len(t, n.messages, 3)

	n.reset()
	assert.Empty(t, n.messages)
}

func TestTerminalNotifier_Silent(t *testing.T) {
	n := &terminalNotifier{}
	n.Info("t", "m")
	assert.Equal(t, []Message{{Kind: "info", Title: "t", Text: "m"}}, n.messages)
}

func TestTerminalNotifier_Confirm(t *testing.T) {
	tests := []struct {
		name string
		in   string
		yes  bool
		noIn bool
		want bool
	}{
		{"yes", "y\n", false, false, true},
		{"YES", "YES\n", false, false, true},
		{"no", "n\n", false, false, false},
		{"blank", "\n", false, false, false},
		{"eof", "", false, false, false},
		{"assume yes", "", true, false, true},
		{"no input", "", false, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &terminalNotifier{out: &bytes.Buffer{}, assumeYes: tt.yes}
			if !tt.noIn {
				n.in = bufio.NewReader(strings.NewReader(tt.in))
			}
			assert.Equal(t, tt.want, n.Confirm("Delete", `Delete "Dune"?`))
			assert.Equal(t, !tt.want, n.declined)
		})
	}
}

func TestTerminalNotifier_PromptPath(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantPath string
		wantOK   bool
	}{
		{"default", "\n", "katalog.csv", true},
		{"typed", "  books.csv \n", "books.csv", true},
		{"cancel", "-\n", "", false},
		{"eof", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			n := &terminalNotifier{out: out, in: bufio.NewReader(strings.NewReader(tt.in))}

			path, ok := n.PromptPath("Save CSV", "katalog.csv")
			assert.Equal(t, tt.wantPath, path)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, "Save CSV [katalog.csv]: ", out.String())
		})
	}
}

func TestTerminalNotifier_PromptWithoutInputAcceptsSuggestion(t *testing.T) {
	n := &terminalNotifier{}
	path, ok := n.PromptPath("Save CSV", "out/katalog.csv")
	assert.True(t, ok)
	assert.Equal(t, "out/katalog.csv", path)
}

func TestTerminalNotifier_PromptWriter(t *testing.T) {
	out, prompt := &bytes.Buffer{}, &bytes.Buffer{}
	n := &terminalNotifier{out: out, prompt: prompt, in: bufio.NewReader(strings.NewReader("y\n"))}

	assert.True(t, n.Confirm("Delete", "Delete it?"))
	assert.Equal(t, "Delete it? [y/N] ", prompt.String())
	assert.Empty(t, out.String())
}
