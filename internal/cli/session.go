package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/shelf/internal/config"
	"github.com/roach88/shelf/internal/controller"
	"github.com/roach88/shelf/internal/store"
)

// catalog is an open store with a controller driving it.
type catalog struct {
	cfg    config.Config
	store  *store.Store
	ctrl   *controller.Controller
	notify *terminalNotifier
	logger *slog.Logger
}

// openCatalog resolves settings, opens the store and loads the view.
// Notifications raised through notify are attached to out.
// The caller must Close the catalog.
func openCatalog(opts *RootOptions, cmd *cobra.Command, out *OutputFormatter, notify *terminalNotifier) (*catalog, error) {
	cfg, err := opts.settings()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	logger := opts.logger(cmd, cfg)

	logger.Debug("opening catalog", "path", cfg.Database)
	st, err := store.Open(cfg.Database)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open catalog", err)
	}

	if out != nil {
		out.attach(notify)
	}
	ctrl := controller.New(st,
		controller.WithNotifier(notify),
		controller.WithLogger(logger),
		controller.WithConfirmDelete(cfg.ConfirmDelete),
		controller.WithExportDir(cfg.ExportDir),
	)
	if err := ctrl.Reload(cmd.Context()); err != nil {
		st.Close()
		return nil, WrapExitError(ExitCommandError, "failed to read catalog", err)
	}

	return &catalog{cfg: cfg, store: st, ctrl: ctrl, notify: notify, logger: logger}, nil
}

// Close releases the store.
func (c *catalog) Close() {
	if err := c.store.Close(); err != nil {
		c.logger.Error("error closing catalog", "error", err)
	}
}
