package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/shelf/internal/book"
	"github.com/roach88/shelf/internal/export"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Rejected input, missing record or failed script expectation
	ExitCommandError = 2 // Command error (storage failure, unwritable export, bad config, etc.)
)

// Error codes reported in CLIError.Code.
const (
	CodeValidation = "VALIDATION"
	CodeNotFound   = "NOT_FOUND"
	CodeStorage    = "STORAGE"
	CodeWrite      = "WRITE"
	CodeCommand    = "COMMAND"
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)

	// Reported is set when the error was already written to the command
	// output, so main does not print it a second time.
	Reported bool
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// IsReported reports whether err was already written to the output.
func IsReported(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr) && exitErr.Reported
}

// Classify maps a catalog error to its CLIError code and exit code.
func Classify(err error) (string, int) {
	var writeErr *export.WriteError
	switch {
	case book.IsValidation(err):
		return CodeValidation, ExitFailure
	case book.IsNotFound(err):
		return CodeNotFound, ExitFailure
	case errors.As(err, &writeErr):
		return CodeWrite, ExitCommandError
	case book.IsStorage(err):
		return CodeStorage, ExitCommandError
	}
	return CodeCommand, ExitCommandError
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format  string
	Writer  io.Writer
	Verbose bool

	// notify supplies the notifications included in JSON responses.
	notify *terminalNotifier
}

// attach includes the messages n collects in every later JSON response.
func (f *OutputFormatter) attach(n *terminalNotifier) {
	f.notify = n
}

func (f *OutputFormatter) messages() []Message {
	if f.notify == nil {
		return nil
	}
	return f.notify.messages
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status   string      `json:"status"`             // "ok" or "error"
	Data     interface{} `json:"data,omitempty"`     // success payload
	Error    *CLIError   `json:"error,omitempty"`    // error details
	Messages []Message   `json:"messages,omitempty"` // notifications raised by the action
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string      `json:"code"`              // "VALIDATION", "NOT_FOUND", etc.
	Message string      `json:"message"`           // human-readable message
	Details interface{} `json:"details,omitempty"` // additional context
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status:   "ok",
			Data:     data,
			Messages: f.messages(),
		})
	}

	// Human-readable text output
	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
			Messages: f.messages(),
		})
	}

	// Human-readable error
	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// Fail writes err in the configured format and returns the ExitError the
// command should return.
func (f *OutputFormatter) Fail(message string, err error) error {
	code, exit := Classify(err)

	var details interface{}
	var ve *book.ValidationError
	if errors.As(err, &ve) && len(ve.Details) > 0 {
		details = ve.Details
	}

	if outErr := f.Error(code, fmt.Sprintf("%s: %v", message, err), details); outErr != nil {
		return WrapExitError(ExitCommandError, "failed to write output", outErr)
	}
	exitErr := WrapExitError(exit, message, err)
	exitErr.Reported = true
	return exitErr
}
