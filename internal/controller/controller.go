package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/roach88/shelf/internal/book"
	"github.com/roach88/shelf/internal/export"
	"github.com/roach88/shelf/internal/view"
)

// ErrNoSelection is returned by Delete when no row is selected.
var ErrNoSelection = errors.New("no row selected")

// DefaultExportName is the file name suggested by Export.
const DefaultExportName = "katalog.csv"

// Storage is the record store the controller drives.
// *store.Store satisfies it.
type Storage interface {
	Create(ctx context.Context, d book.Draft) (int64, error)
	ListAll(ctx context.Context) ([]book.Book, error)
	ListFiltered(ctx context.Context, substring string) ([]book.Book, error)
	UpdateField(ctx context.Context, id int64, field book.Field, raw string) error
	Delete(ctx context.Context, id int64) error
}

// Controller dispatches user actions. It is not safe for concurrent use;
// the catalog is driven from a single session.
type Controller struct {
	store  Storage
	view   *view.Model
	notify Notifier
	logger *slog.Logger

	confirmDelete bool
	exportDir     string
}

// Option configures a Controller.
type Option func(*Controller)

// WithNotifier sets where modal messages go. The default discards them.
func WithNotifier(n Notifier) Option {
	return func(c *Controller) { c.notify = n }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithConfirmDelete makes Delete ask before removing a record.
func WithConfirmDelete(on bool) Option {
	return func(c *Controller) { c.confirmDelete = on }
}

// WithExportDir sets the directory of the path Export suggests.
func WithExportDir(dir string) Option {
	return func(c *Controller) { c.exportDir = dir }
}

// New creates a controller over an open store. The store stays owned by
// the caller.
func New(s Storage, opts ...Option) *Controller {
	c := &Controller{
		store:  s,
		view:   view.New(),
		notify: nopNotifier{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// View returns the displayed rows.
func (c *Controller) View() *view.Model {
	return c.view
}

// Save validates the form and stores it as a new record. On success the
// form is cleared, the view reloaded and the new id returned.
func (c *Controller) Save(ctx context.Context, f *Form) (int64, error) {
	d := f.Draft()
	if _, err := d.Parse(); err != nil {
		c.reportInput(err)
		return 0, err
	}

	id, err := c.store.Create(ctx, d)
	if err != nil {
		c.reportFailure("Save Error", err)
		return 0, err
	}
	c.logger.Debug("book saved", "id", id)

	f.Clear()
	return id, c.Reload(ctx)
}

// Apply performs one cell edit. The view is reloaded whatever the outcome,
// so a rejected edit disappears from the display.
func (c *Controller) Apply(ctx context.Context, e Edit) error {
	if e.New == e.Old {
		return nil
	}
	c.logger.Debug("applying edit", "edit", e.String())

	err := c.store.UpdateField(ctx, e.RowID, e.Field, e.New)
	switch {
	case err == nil:
	case book.IsValidation(err):
		c.logger.Warn("edit rejected", "edit", e.String(), "error", err)
		c.notify.Error("Update Error", err.Error())
	case book.IsNotFound(err):
		c.logger.Warn("edit target vanished", "id", e.RowID)
		c.notify.Info("Update", fmt.Sprintf("Book %d no longer exists.", e.RowID))
	default:
		c.reportFailure("Update Error", err)
	}

	if reloadErr := c.Reload(ctx); err == nil {
		err = reloadErr
	}
	return err
}

// CellEdit builds an Edit from the displayed cell at (row, col) and applies
// it. The record id is read from the row's first column.
func (c *Controller) CellEdit(ctx context.Context, row, col int, text string) error {
	id, err := c.view.RowID(row)
	if err != nil {
		c.notify.Error("Update Error", err.Error())
		return err
	}
	field, err := book.FieldAt(col)
	if err != nil {
		c.notify.Error("Update Error", err.Error())
		return err
	}
	r, _ := c.view.Row(row)

	return c.Apply(ctx, Edit{RowID: id, Field: field, Old: r[col], New: text})
}

// Select marks a displayed row. Returns false if the index is out of range.
func (c *Controller) Select(row int) bool {
	return c.view.Select(row)
}

// SelectID selects the displayed row holding the record id.
func (c *Controller) SelectID(id int64) bool {
	for i := 0; i < c.view.Len(); i++ {
		if rid, err := c.view.RowID(i); err == nil && rid == id {
			return c.view.Select(i)
		}
	}
	c.view.ClearSelection()
	return false
}

// Delete removes the record in the selected row and reloads.
// With no selection the user is told to pick a row and ErrNoSelection is
// returned. When confirmation is enabled and the user declines, nothing
// happens.
func (c *Controller) Delete(ctx context.Context) error {
	i, ok := c.view.Selected()
	if !ok {
		c.notify.Info("Delete", "Select the row you want to delete.")
		return ErrNoSelection
	}
	id, err := c.view.RowID(i)
	if err != nil {
		c.notify.Error("Delete Error", err.Error())
		return err
	}

	if c.confirmDelete {
		r, _ := c.view.Row(i)
		if !c.notify.Confirm("Delete", fmt.Sprintf("Delete %q?", r[1])) {
			c.logger.Debug("delete declined", "id", id)
			return nil
		}
	}

	err = c.store.Delete(ctx, id)
	switch {
	case err == nil:
		c.logger.Debug("book deleted", "id", id)
	case book.IsNotFound(err):
		c.logger.Warn("delete target vanished", "id", id)
		c.notify.Info("Delete", fmt.Sprintf("Book %d no longer exists.", id))
	default:
		c.reportFailure("Delete Error", err)
		return err
	}

	if reloadErr := c.Reload(ctx); err == nil {
		err = reloadErr
	}
	return err
}

// Search makes text the active filter and reloads. Empty text shows every
// record. If the store fails, both the rows and the previous filter stay.
func (c *Controller) Search(ctx context.Context, text string) error {
	books, err := c.store.ListFiltered(ctx, text)
	if err != nil {
		c.reportFailure("Storage Error", err)
		return err
	}
	c.view.SetSearch(text)
	c.view.Load(books)
	return nil
}

// Reload rebuilds the view from storage under the active filter.
func (c *Controller) Reload(ctx context.Context) error {
	books, err := c.store.ListFiltered(ctx, c.view.Search())
	if err != nil {
		c.reportFailure("Storage Error", err)
		return err
	}
	c.view.Load(books)
	return nil
}

// Export asks for a destination and writes the whole catalog there as CSV.
// Returns the path written, or "" if the user cancelled.
func (c *Controller) Export(ctx context.Context) (string, error) {
	path, ok := c.notify.PromptPath("Save CSV", filepath.Join(c.exportDir, DefaultExportName))
	if !ok || path == "" {
		c.logger.Debug("export cancelled")
		return "", nil
	}
	if err := c.ExportTo(ctx, path); err != nil {
		return "", err
	}
	return path, nil
}

// ExportTo writes the whole catalog to path as CSV, regardless of the
// active filter.
func (c *Controller) ExportTo(ctx context.Context, path string) error {
	n, err := export.WriteFile(ctx, c.store, path)
	if err != nil {
		c.reportFailure("Export Error", err)
		return err
	}
	c.logger.Info("catalog exported", "path", path, "books", n)
	c.notify.Info("Export Complete", fmt.Sprintf("Exported %d books to %s.", n, path))
	return nil
}

// reportInput turns a validation failure into the message shown for the
// entry form.
func (c *Controller) reportInput(err error) {
	var ve *book.ValidationError
	if !errors.As(err, &ve) {
		c.reportFailure("Input Error", err)
		return
	}

	msg := ve.Message
	switch ve.Code {
	case book.CodeEmptyField:
		msg = "All fields must be filled."
	case book.CodeInvalidYear:
		msg = "Year must be a number."
	}
	c.logger.Debug("input rejected", "code", ve.Code, "error", err)
	c.notify.Warn("Input Error", msg)
}

// reportFailure shows the raw failure text.
func (c *Controller) reportFailure(title string, err error) {
	c.logger.Error("action failed", "action", title, "error", err)
	c.notify.Error(title, err.Error())
}
