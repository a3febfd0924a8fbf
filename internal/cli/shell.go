package cli

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/shelf/internal/book"
	"github.com/roach88/shelf/internal/controller"
)

const shellHelp = `Commands:
  save <title> <author> <year>  add a book
  select <id>                   select the row of a book
  edit <id> <field> <value>     change title, author or year of a book
  delete                        delete the selected book
  search [text]                 show books whose title contains text
  export                        write the whole catalog to CSV
  reload                        read the catalog again
  show                          print the table
  help                          print this help
  quit                          leave the shell
Quote values that contain spaces: save "The Hobbit" Tolkien 1937`

// NewShellCommand creates the shell command.
func NewShellCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Work with the catalog interactively",
		Long: `Work with the catalog interactively.

The shell shows the catalog table and refreshes it after every change.
Messages appear as [info], [warning] or [error] lines. Type "help" for
the command list.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(rootOpts, cmd)
		},
	}
}

// shell is one interactive session.
type shell struct {
	cat *catalog
	out io.Writer
}

func runShell(opts *RootOptions, cmd *cobra.Command) error {
	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	notify := &terminalNotifier{out: out, in: in}
	cat, err := openCatalog(opts, cmd, nil, notify)
	if err != nil {
		return err
	}
	defer cat.Close()

	sh := &shell{cat: cat, out: out}
	ctx := cmd.Context()

	fmt.Fprintln(out, `Type "help" for commands.`)
	sh.show()
	for {
		fmt.Fprint(out, "shelf> ")
		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(out)
			if errors.Is(err, io.EOF) {
				return nil
			}
			return WrapExitError(ExitCommandError, "failed to read input", err)
		}

		args, err := splitLine(line)
		if err != nil {
			fmt.Fprintf(out, "cannot parse line: %v\n", err)
			continue
		}
		if len(args) == 0 {
			continue
		}

		cat.logger.Debug("shell command", "command", args[0], "args", len(args)-1)
		notify.reset()
		if quit := sh.dispatch(ctx, args); quit {
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

// dispatch runs one command line. Controller failures have already been
// printed by the notifier, so their errors only decide whether the table
// is shown again.
func (sh *shell) dispatch(ctx context.Context, args []string) (quit bool) {
	ctrl := sh.cat.ctrl

	switch name := strings.ToLower(args[0]); name {
	case "save":
		if len(args) != 4 {
			sh.usage("save <title> <author> <year>")
			return false
		}
		id, err := ctrl.Save(ctx, &controller.Form{Title: args[1], Author: args[2], Year: args[3]})
		if err == nil {
			fmt.Fprintf(sh.out, "Saved book %d.\n", id)
			sh.show()
		}

	case "select":
		if len(args) != 2 {
			sh.usage("select <id>")
			return false
		}
		id, err := parseID(args[1])
		if err != nil {
			fmt.Fprintln(sh.out, err)
			return false
		}
		if !ctrl.SelectID(id) {
			fmt.Fprintf(sh.out, "No row shows book %d.\n", id)
		}
		sh.show()

	case "edit":
		if len(args) != 4 {
			sh.usage("edit <id> <field> <value>")
			return false
		}
		sh.edit(ctx, args[1], args[2], args[3])

	case "delete":
		if err := ctrl.Delete(ctx); !errors.Is(err, controller.ErrNoSelection) {
			sh.show()
		}

	case "search":
		_ = ctrl.Search(ctx, strings.Join(args[1:], " "))
		sh.show()

	case "export":
		_, _ = ctrl.Export(ctx)

	case "reload":
		if err := ctrl.Reload(ctx); err == nil {
			sh.show()
		}

	case "show":
		sh.show()

	case "help", "?":
		fmt.Fprintln(sh.out, shellHelp)

	case "quit", "exit":
		return true

	default:
		fmt.Fprintf(sh.out, "Unknown command %q. Type \"help\" for commands.\n", name)
	}
	return false
}

// edit changes a cell of the displayed row holding the book id.
func (sh *shell) edit(ctx context.Context, idText, fieldText, value string) {
	id, err := parseID(idText)
	if err != nil {
		fmt.Fprintln(sh.out, err)
		return
	}
	field, err := book.ParseField(fieldText)
	if err != nil {
		fmt.Fprintln(sh.out, err)
		return
	}

	v := sh.cat.ctrl.View()
	row := -1
	for i := 0; i < v.Len(); i++ {
		if rid, err := v.RowID(i); err == nil && rid == id {
			row = i
			break
		}
	}
	if row < 0 {
		fmt.Fprintf(sh.out, "No row shows book %d.\n", id)
		return
	}

	_ = sh.cat.ctrl.CellEdit(ctx, row, slices.Index(book.Columns, field), value)
	sh.show()
}

func (sh *shell) show() {
	if err := sh.cat.ctrl.View().Render(sh.out); err != nil {
		sh.cat.logger.Error("failed to render table", "error", err)
	}
}

func (sh *shell) usage(form string) {
	fmt.Fprintf(sh.out, "Usage: %s\n", form)
}

// splitLine breaks a command line into words. Words are separated by
// spaces; double quotes group words and "" inside quotes is a literal
// quote.
func splitLine(line string) ([]string, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, nil
	}

	r := csv.NewReader(strings.NewReader(line))
	r.Comma = ' '
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	fields, err := r.Read()
	if err != nil {
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return nil, perr.Err
		}
		return nil, err
	}
	return fields, nil
}
