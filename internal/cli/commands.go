package cli

import (
	"bufio"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/shelf/internal/book"
	"github.com/roach88/shelf/internal/controller"
)

// DeleteResult is the JSON payload of the delete command.
type DeleteResult struct {
	ID      int64 `json:"id"`
	Deleted bool  `json:"deleted"`
}

// ExportResult is the JSON payload of the export command.
type ExportResult struct {
	Path  string `json:"path"`
	Books int    `json:"books"`
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <title> <author> <year>",
		Short: "Add a book to the catalog",
		Long: `Add a book to the catalog.

All three fields are required and the year must be a whole number.

Example:
  shelf add "Dune" "Frank Herbert" 1965`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(rootOpts, args, cmd)
		},
	}
}

func runAdd(opts *RootOptions, args []string, cmd *cobra.Command) error {
	out := opts.formatter(cmd)
	cat, err := openCatalog(opts, cmd, out, &terminalNotifier{})
	if err != nil {
		return err
	}
	defer cat.Close()

	ctx := cmd.Context()
	id, err := cat.ctrl.Save(ctx, &controller.Form{Title: args[0], Author: args[1], Year: args[2]})
	if err != nil {
		return out.Fail("failed to add book", err)
	}
	b, err := cat.store.Get(ctx, id)
	if err != nil {
		return out.Fail("failed to read book", err)
	}

	if out.Format == "json" {
		return out.Success(b)
	}
	return out.Success(fmt.Sprintf("Added book %d: %s", b.ID, describe(b)))
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List every book",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, "", cmd)
		},
	}
}

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <text>",
		Short: "List books whose title contains text",
		Long: `List books whose title contains text.

Matching is case-sensitive and literal: % and _ have no special meaning.

Example:
  shelf search Dune`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, args[0], cmd)
		},
	}
}

func runList(opts *RootOptions, query string, cmd *cobra.Command) error {
	out := opts.formatter(cmd)
	cat, err := openCatalog(opts, cmd, out, &terminalNotifier{})
	if err != nil {
		return err
	}
	defer cat.Close()

	ctx := cmd.Context()
	if out.Format == "json" {
		books, err := cat.store.ListFiltered(ctx, query)
		if err != nil {
			return out.Fail("failed to list books", err)
		}
		return out.Success(books)
	}

	if err := cat.ctrl.Search(ctx, query); err != nil {
		return out.Fail("failed to list books", err)
	}
	return cat.ctrl.View().Render(out.Writer)
}

// NewEditCommand creates the edit command.
func NewEditCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <field> <value>",
		Short: "Change one field of a book",
		Long: `Change one field of a book.

field is one of title, author or year. The id cannot be changed.

Example:
  shelf edit 3 year 1966`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(rootOpts, args, cmd)
		},
	}
}

func runEdit(opts *RootOptions, args []string, cmd *cobra.Command) error {
	out := opts.formatter(cmd)
	id, err := parseID(args[0])
	if err != nil {
		return out.Fail("invalid id", err)
	}
	field, err := book.ParseField(args[1])
	if err != nil {
		return out.Fail("invalid field", err)
	}

	cat, err := openCatalog(opts, cmd, out, &terminalNotifier{})
	if err != nil {
		return err
	}
	defer cat.Close()

	ctx := cmd.Context()
	b, err := cat.store.Get(ctx, id)
	if err != nil {
		return out.Fail("failed to edit book", err)
	}
	edit := controller.Edit{RowID: id, Field: field, Old: b.Value(field), New: args[2]}
	if err := cat.ctrl.Apply(ctx, edit); err != nil {
		return out.Fail("failed to edit book", err)
	}

	b, err = cat.store.Get(ctx, id)
	if err != nil {
		return out.Fail("failed to read book", err)
	}
	if out.Format == "json" {
		return out.Success(b)
	}
	return out.Success(fmt.Sprintf("Updated book %d: %s", b.ID, describe(b)))
}

// DeleteOptions holds flags for the delete command.
type DeleteOptions struct {
	*RootOptions
	Yes bool
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DeleteOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a book from the catalog",
		Long: `Remove a book from the catalog.

When confirm_delete is set in the config, the question is read from
standard input unless --yes is given.

Example:
  shelf delete 3 --yes`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "delete without asking")

	return cmd
}

func runDelete(opts *DeleteOptions, arg string, cmd *cobra.Command) error {
	out := opts.formatter(cmd)
	id, err := parseID(arg)
	if err != nil {
		return out.Fail("invalid id", err)
	}

	notify := &terminalNotifier{
		prompt:    cmd.ErrOrStderr(),
		in:        bufio.NewReader(cmd.InOrStdin()),
		assumeYes: opts.Yes,
	}
	cat, err := openCatalog(opts.RootOptions, cmd, out, notify)
	if err != nil {
		return err
	}
	defer cat.Close()

	if !cat.ctrl.SelectID(id) {
		return out.Fail("failed to delete book", book.NotFound(id))
	}
	if err := cat.ctrl.Delete(cmd.Context()); err != nil {
		return out.Fail("failed to delete book", err)
	}

	result := DeleteResult{ID: id, Deleted: !cat.notify.declined}
	if out.Format == "json" {
		return out.Success(result)
	}
	if !result.Deleted {
		return out.Success(fmt.Sprintf("Kept book %d.", id))
	}
	return out.Success(fmt.Sprintf("Deleted book %d.", id))
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export [path]",
		Short: "Write the whole catalog to a CSV file",
		Long: `Write the whole catalog to a CSV file.

The file has the header ID,Title,Author,Year and one row per book. Without
a path, ` + controller.DefaultExportName + ` is written to the configured export_dir.

Example:
  shelf export books.csv`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(rootOpts, args, cmd)
		},
	}
}

func runExport(opts *RootOptions, args []string, cmd *cobra.Command) error {
	out := opts.formatter(cmd)
	cat, err := openCatalog(opts, cmd, out, &terminalNotifier{})
	if err != nil {
		return err
	}
	defer cat.Close()

	path := filepath.Join(cat.cfg.ExportDir, controller.DefaultExportName)
	if len(args) == 1 {
		path = args[0]
	}

	ctx := cmd.Context()
	if err := cat.ctrl.ExportTo(ctx, path); err != nil {
		return out.Fail("export failed", err)
	}
	n, err := cat.store.Count(ctx)
	if err != nil {
		return out.Fail("failed to count books", err)
	}

	if out.Format == "json" {
		return out.Success(ExportResult{Path: path, Books: n})
	}
	msgs := cat.notify.messages
	return out.Success(msgs[len(msgs)-1].Text)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, &book.ValidationError{
			Code:    book.CodeInvalidID,
			Field:   string(book.FieldID),
			Message: fmt.Sprintf("%q is not a book id", s),
		}
	}
	return id, nil
}

func describe(b book.Book) string {
	return fmt.Sprintf("%s by %s (%d)", b.Title, b.Author, b.Year)
}
