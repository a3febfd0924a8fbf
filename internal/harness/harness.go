package harness

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/roach88/shelf/internal/book"
	"github.com/roach88/shelf/internal/controller"
)

// Options configures Run.
type Options struct {
	// Dir is the base for relative export paths and the suggested export
	// directory. Empty means the working directory.
	Dir string

	// Logger receives controller logs. Defaults to slog.Default().
	Logger *slog.Logger
}

// Run replays script against s and returns the transcript. Failed
// expectations are collected in the transcript; the error is only
// non-nil if ctx ends before the script does.
func Run(ctx context.Context, s controller.Storage, script *Script, opts Options) (*Transcript, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tr := &Transcript{Name: script.Name, dir: opts.Dir}
	ctrl := controller.New(s,
		controller.WithNotifier(tr),
		controller.WithLogger(logger.With("script", script.Name)),
		controller.WithConfirmDelete(script.ConfirmDelete),
		controller.WithExportDir(opts.Dir),
	)

	// Start from what is already stored, as a freshly opened window would.
	tr.begin("load")
	_ = ctrl.Reload(ctx)

	for i, step := range script.Steps {
		if err := ctx.Err(); err != nil {
			return tr, fmt.Errorf("step %d: %w", i+1, err)
		}
		tr.begin(step.String())
		runStep(ctx, ctrl, tr, step, opts.Dir)
	}
	return tr, nil
}

// runStep executes one step. Controller errors are not collected here:
// the controller has already notified them into the transcript.
func runStep(ctx context.Context, ctrl *controller.Controller, tr *Transcript, step Step, dir string) {
	switch {
	case step.Save != nil:
		form := &controller.Form{Title: step.Save.Title, Author: step.Save.Author, Year: step.Save.Year}
		if id, err := ctrl.Save(ctx, form); err == nil {
			tr.add(fmt.Sprintf("= id %d", id))
		}

	case step.Select != nil:
		if ctrl.Select(*step.Select) {
			tr.add(fmt.Sprintf("= row %d selected", *step.Select))
		} else {
			tr.add("= selection cleared")
		}

	case step.Edit != nil:
		field, _ := book.ParseField(step.Edit.Field)
		col := slices.Index(book.Columns, field)
		_ = ctrl.CellEdit(ctx, step.Edit.Row, col, step.Edit.Value)

	case step.Delete, step.Decline:
		tr.confirm = step.Delete
		_ = ctrl.Delete(ctx)

	case step.Search != nil:
		_ = ctrl.Search(ctx, *step.Search)

	case step.Export != nil:
		tr.prompt = *step.Export
		if tr.prompt != "" && !filepath.IsAbs(tr.prompt) && dir != "" {
			tr.prompt = filepath.Join(dir, tr.prompt)
		}
		_, _ = ctrl.Export(ctx)
		tr.prompt = ""

	case step.Reload:
		_ = ctrl.Reload(ctx)

	case step.Show:
		var b strings.Builder
		_ = ctrl.View().Render(&b)
		for _, line := range strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n") {
			tr.add(line)
		}

	case step.Expect != nil:
		check(ctrl, tr, *step.Expect)
	}
}

// check compares the session state against e and records the outcome.
func check(ctrl *controller.Controller, tr *Transcript, e ExpectStep) {
	v := ctrl.View()
	failed := len(tr.Failures)

	if e.Rows != nil {
		got := v.Rows()
		if len(got) != len(e.Rows) {
			tr.fail(fmt.Sprintf("rows: want %d, got %d", len(e.Rows), len(got)))
		} else {
			for i := range got {
				if !slices.Equal([]string(got[i]), e.Rows[i]) {
					tr.fail(fmt.Sprintf("row %d: want %q, got %q", i, e.Rows[i], []string(got[i])))
				}
			}
		}
	}
	if e.Count != nil && v.Len() != *e.Count {
		tr.fail(fmt.Sprintf("count: want %d, got %d", *e.Count, v.Len()))
	}
	if e.Selected != nil {
		got := -1
		if i, ok := v.Selected(); ok {
			got = i
		}
		if got != *e.Selected {
			tr.fail(fmt.Sprintf("selected: want %d, got %d", *e.Selected, got))
		}
	}
	if e.Search != nil && v.Search() != *e.Search {
		tr.fail(fmt.Sprintf("search: want %q, got %q", *e.Search, v.Search()))
	}
	if e.Message != "" && tr.last != e.Message {
		tr.fail(fmt.Sprintf("message: want %q, got %q", e.Message, tr.last))
	}

	if len(tr.Failures) == failed {
		tr.add("ok")
	}
}
