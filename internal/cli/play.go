package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/shelf/internal/harness"
	"github.com/roach88/shelf/internal/store"
)

// PlayOptions holds flags for the play command.
type PlayOptions struct {
	*RootOptions
	Live bool   // run against the configured catalog
	Dir  string // base directory for export steps
}

// ScriptResult holds the result of a single script run.
type ScriptResult struct {
	Name       string   `json:"name"`
	Pass       bool     `json:"pass"`
	Failures   []string `json:"failures,omitempty"`
	Transcript string   `json:"transcript,omitempty"`
}

// PlayResult holds the overall play result.
type PlayResult struct {
	Scripts []ScriptResult `json:"scripts"`
	Passed  int            `json:"passed"`
	Failed  int            `json:"failed"`
	Total   int            `json:"total"`
}

// NewPlayCommand creates the play command.
func NewPlayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "play <script.yaml>...",
		Short: "Replay scripted sessions",
		Long: `Replay scripted sessions and print their transcripts.

Each script runs against a fresh scratch catalog unless --live is given,
in which case it runs against the configured one and its changes stay.

Exit codes:
  0 - All scripts passed
  1 - One or more expectations failed
  2 - Command error (unreadable script, storage failure, etc.)

Examples:
  shelf play session.yaml
  shelf play --live --dir ./out session.yaml
  shelf play --format json a.yaml b.yaml`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Live, "live", false, "run against the configured catalog")
	cmd.Flags().StringVar(&opts.Dir, "dir", "", "directory for export steps (default export_dir)")

	return cmd
}

func runPlay(opts *PlayOptions, paths []string, cmd *cobra.Command) error {
	cfg, err := opts.settings()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	logger := opts.logger(cmd, cfg)

	dir := opts.Dir
	if dir == "" {
		dir = cfg.ExportDir
	}

	// Load every script first so a typo fails before anything runs.
	scripts := make([]*harness.Script, len(paths))
	for i, p := range paths {
		s, err := harness.LoadScript(p)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to load %s", p), err)
		}
		scripts[i] = s
	}

	result := PlayResult{
		Scripts: make([]ScriptResult, 0, len(scripts)),
		Total:   len(scripts),
	}
	w := cmd.OutOrStdout()

	for _, script := range scripts {
		st, cleanup, err := openPlayStore(opts.Live, cfg.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open catalog", err)
		}

		tr, err := harness.Run(cmd.Context(), st, script, harness.Options{Dir: dir, Logger: logger})
		cleanup()
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("script %s interrupted", script.Name), err)
		}

		sr := ScriptResult{Name: script.Name, Pass: !tr.Failed(), Failures: tr.Failures}
		if opts.Format == "json" {
			sr.Transcript = tr.String()
		} else {
			_ = tr.Render(w)
			fmt.Fprintln(w)
		}
		result.Scripts = append(result.Scripts, sr)
		if sr.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	if opts.Format == "json" {
		if err := opts.formatter(cmd).Success(result); err != nil {
			return err
		}
	} else {
		for _, sr := range result.Scripts {
			mark := "✓"
			if !sr.Pass {
				mark = "✗"
			}
			fmt.Fprintf(w, "%s %s\n", mark, sr.Name)
		}
		fmt.Fprintf(w, "\n%d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)
	}

	if result.Failed > 0 {
		exitErr := NewExitError(ExitFailure, fmt.Sprintf("%d of %d scripts failed", result.Failed, result.Total))
		exitErr.Reported = true
		return exitErr
	}
	return nil
}

// openPlayStore opens the configured catalog, or a scratch one that
// cleanup removes.
func openPlayStore(live bool, path string) (*store.Store, func(), error) {
	if live {
		st, err := store.Open(path)
		if err != nil {
			return nil, nil, err
		}
		return st, func() { st.Close() }, nil
	}

	dir, err := os.MkdirTemp("", "shelf-play-*")
	if err != nil {
		return nil, nil, err
	}
	st, err := store.Open(filepath.Join(dir, "play.db"))
	if err != nil {
		os.RemoveAll(dir)
		return nil, nil, err
	}
	return st, func() {
		st.Close()
		os.RemoveAll(dir)
	}, nil
}
