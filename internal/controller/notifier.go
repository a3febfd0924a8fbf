package controller

// Notifier presents modal messages and prompts to the user.
type Notifier interface {
	// Info reports a neutral outcome, such as a finished export.
	Info(title, message string)

	// Warn reports rejected input.
	Warn(title, message string)

	// Error reports a failed operation.
	Error(title, message string)

	// Confirm asks a yes/no question. Returns false if the user declines.
	Confirm(title, question string) bool

	// PromptPath asks for a destination file. ok is false if the user cancels.
	PromptPath(title, suggested string) (path string, ok bool)
}

// nopNotifier discards messages, confirms everything and cancels prompts.
type nopNotifier struct{}

func (nopNotifier) Info(string, string) {}
func (nopNotifier) Warn(string, string) {}
func (nopNotifier) Error(string, string) {}
func (nopNotifier) Confirm(string, string) bool { return true }
func (nopNotifier) PromptPath(string, string) (string, bool) { return "", false }
