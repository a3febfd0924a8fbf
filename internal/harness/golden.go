package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// AssertGolden compares the rendered transcript against
// testdata/golden/{name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func AssertGolden(t *testing.T, name string, tr *Transcript) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(tr.String()))
}
