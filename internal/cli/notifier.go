package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Message is one notification raised by the controller.
type Message struct {
	Kind  string `json:"kind"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

func (m Message) String() string {
	return fmt.Sprintf("[%s] %s: %s", m.Kind, m.Title, m.Text)
}

// terminalNotifier is the controller's Notifier on a terminal. Messages
// are kept for JSON output (see OutputFormatter.attach) and, when out is
// set, printed as they arrive.
// Questions are written to prompt (or out) and read from in; without in
// they get the preset answers.
type terminalNotifier struct {
	out    io.Writer
	prompt io.Writer
	in     *bufio.Reader

	// assumeYes answers confirmations without asking.
	assumeYes bool

	messages []Message
	declined bool
}

func (n *terminalNotifier) record(kind, title, text string) {
	m := Message{Kind: kind, Title: title, Text: text}
	n.messages = append(n.messages, m)
	if n.out != nil {
		fmt.Fprintln(n.out, m)
	}
}

func (n *terminalNotifier) Info(title, message string) { n.record("info", title, message) }

func (n *terminalNotifier) Warn(title, message string) { n.record("warning", title, message) }

func (n *terminalNotifier) Error(title, message string) { n.record("error", title, message) }

func (n *terminalNotifier) Confirm(title, question string) bool {
	n.messages = append(n.messages, Message{Kind: "confirm", Title: title, Text: question})

	ok := n.assumeYes
	if !ok && n.in != nil {
		answer, _ := n.ask(fmt.Sprintf("%s [y/N] ", question))
		answer = strings.ToLower(answer)
		ok = answer == "y" || answer == "yes"
	}
	if !ok {
		n.declined = true
	}
	return ok
}

// PromptPath offers suggested as the default. A blank answer accepts it,
// "-" or end of input cancels.
func (n *terminalNotifier) PromptPath(title, suggested string) (string, bool) {
	if n.in == nil {
		return suggested, true
	}
	answer, ok := n.ask(fmt.Sprintf("%s [%s]: ", title, suggested))
	switch {
	case !ok, answer == "-":
		return "", false
	case answer == "":
		return suggested, true
	}
	return answer, true
}

// ask prints prompt and reads one line. ok is false at end of input.
func (n *terminalNotifier) ask(prompt string) (string, bool) {
	w := n.prompt
	if w == nil {
		w = n.out
	}
	if w != nil {
		fmt.Fprint(w, prompt)
	}
	line, err := n.in.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimSpace(line), true
}

// reset drops the messages of the previous action.
func (n *terminalNotifier) reset() {
	n.messages = nil
	n.declined = false
}
