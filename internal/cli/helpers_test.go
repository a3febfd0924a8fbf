package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/roach88/shelf/internal/book"
	"github.com/roach88/shelf/internal/logging"
	"github.com/roach88/shelf/internal/store"
	"github.com/roach88/shelf/internal/testutil"
)

// testOptions returns root options with a catalog in a temp dir and no
// environment overrides. The session generator holds one token, enough
// for a single command run.
func testOptions(t *testing.T, env map[string]string) *RootOptions {
	t.Helper()
	return &RootOptions{
		Format:   "text",
		Database: filepath.Join(t.TempDir(), "katalog.db"),
		Getenv:   func(k string) string { return env[k] },
		Sessions: logging.NewFixedGenerator("test-session"),
	}
}

// seed stores drafts in the catalog at path.
func seed(t *testing.T, path string, drafts ...book.Draft) {
	t.Helper()
	st, err := store.Open(path)
	require.NoError(t, err)
	testutil.Seed(t, st, drafts...)
	require.NoError(t, st.Close())
}

// catalogTitles lists the stored titles at path in id order.
func catalogTitles(t *testing.T, path string) []string {
	t.Helper()
	st, err := store.Open(path)
	require.NoError(t, err)
	defer st.Close()

	books, err := st.ListAll(t.Context())
	require.NoError(t, err)
	titles := make([]string, len(books))
	for i, b := range books {
		titles[i] = b.Title
	}
	return titles
}

type result struct {
	out  string
	logs string
	err  error
}

// run executes cmd with args and stdin, capturing both streams.
func run(cmd *cobra.Command, stdin string, args ...string) result {
	out := &bytes.Buffer{}
	logs := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(logs)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return result{out: out.String(), logs: logs.String(), err: err}
}

func writeConfig(t *testing.T, dir, data string) string {
	t.Helper()
	path := filepath.Join(dir, "shelf.yaml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}
