package testutil

import "fmt"

// Message is one notification captured by a Recorder.
type Message struct {
	Kind  string // "info", "warn", "error", "confirm", "prompt"
	Title string
	Text  string
}

func (m Message) String() string {
	return fmt.Sprintf("[%s] %s: %s", m.Kind, m.Title, m.Text)
}

// Recorder is a notifier that records every message and answers prompts
// from preset fields.
type Recorder struct {
	Messages []Message

	// ConfirmAnswer is returned from Confirm.
	ConfirmAnswer bool

	// PromptAnswer and PromptOK are returned from PromptPath.
	PromptAnswer string
	PromptOK     bool
}

func (r *Recorder) Info(title, message string) {
	r.Messages = append(r.Messages, Message{"info", title, message})
}

func (r *Recorder) Warn(title, message string) {
	r.Messages = append(r.Messages, Message{"warn", title, message})
}

func (r *Recorder) Error(title, message string) {
	r.Messages = append(r.Messages, Message{"error", title, message})
}

func (r *Recorder) Confirm(title, question string) bool {
	r.Messages = append(r.Messages, Message{"confirm", title, question})
	return r.ConfirmAnswer
}

func (r *Recorder) PromptPath(title, suggested string) (string, bool) {
	r.Messages = append(r.Messages, Message{"prompt", title, suggested})
	return r.PromptAnswer, r.PromptOK
}

// Last returns the most recent message, or the zero Message.
func (r *Recorder) Last() Message {
	if len(r.Messages) == 0 {
		return Message{}
	}
	return r.Messages[len(r.Messages)-1]
}

// Kinds lists the kind of every recorded message in order.
func (r *Recorder) Kinds() []string {
	kinds := make([]string, len(r.Messages))
	for i, m := range r.Messages {
		kinds[i] = m.Kind
	}
	return kinds
}

// Reset drops recorded messages; preset answers are kept.
func (r *Recorder) Reset() {
	r.Messages = nil
}
