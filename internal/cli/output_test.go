package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/shelf/internal/book"
	"github.com/roach88/shelf/internal/export"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	data := map[string]string{"result": "success"}
	err := formatter.Success(data)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Error(CodeNotFound, "book not found: id 7", nil)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeNotFound, resp.Error.Code)
	assert.Equal(t, "book not found: id 7", resp.Error.Message)
}

func TestOutputFormatter_AttachedMessages(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}
	n := &terminalNotifier{}
	formatter.attach(n)
	n.Info("Update", "Book 4 no longer exists.")

	err := formatter.Fail("failed to edit book", book.NotFound(4))
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, []Message{{Kind: "info", Title: "Update", Text: "Book 4 no longer exists."}}, resp.Messages)
}

func TestOutputFormatter_TextSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Writer: buf,
	}

	err := formatter.Success("Deleted book 3.")
	require.NoError(t, err)
	assert.Equal(t, "Deleted book 3.\n", buf.String())
}

func TestOutputFormatter_TextErrorVerbose(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:  "text",
		Writer:  buf,
		Verbose: true,
	}

	details := map[string]string{"title": "is required"}
	err := formatter.Error(CodeValidation, "all fields must be filled", details)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Error [VALIDATION]")
	assert.Contains(t, buf.String(), "Details:")
}

func TestOutputFormatter_Fail(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	err := formatter.Fail("failed to edit book", book.NotFound(7))

	assert.Equal(t, "Error [NOT_FOUND]: failed to edit book: book not found: id 7\n", buf.String())
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.True(t, IsReported(err))
	assert.True(t, book.IsNotFound(err))
}

func TestOutputFormatter_FailJSONDetails(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	_, verr := book.Draft{Year: "1965"}.Parse()
	require.Error(t, verr)
	_ = formatter.Fail("failed to add book", verr)

	var resp struct {
		Error struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, CodeValidation, resp.Error.Code)
	assert.Equal(t, map[string]string{"title": "is required", "author": "is required"}, resp.Error.Details)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
		wantExit int
	}{
		{"validation", &book.ValidationError{Code: book.CodeInvalidYear}, CodeValidation, ExitFailure},
		{"not found", book.NotFound(1), CodeNotFound, ExitFailure},
		{"storage", &book.StorageError{Op: "list books", Err: errors.New("disk")}, CodeStorage, ExitCommandError},
		{"write", &export.WriteError{Path: "x.csv", Err: errors.New("denied")}, CodeWrite, ExitCommandError},
		{"wrapped", fmt.Errorf("ctx: %w", book.NotFound(2)), CodeNotFound, ExitFailure},
		{"other", errors.New("boom"), CodeCommand, ExitCommandError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, exit := Classify(tt.err)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantExit, exit)
		})
	}
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "x")))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitFailure, GetExitCode(fmt.Errorf("wrapped: %w", NewExitError(ExitFailure, "y"))))
}

func TestExitError_Message(t *testing.T) {
	err := WrapExitError(ExitCommandError, "failed to open catalog", errors.New("permission denied"))
	assert.Equal(t, "failed to open catalog: permission denied", err.Error())
	assert.False(t, IsReported(err))
}
