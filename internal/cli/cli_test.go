// SPDX-License-Identifier: MIT

package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dynhung/hungarian"
)

const threeTOML = `name = "three"
cost = [[4, 1, 3], [2, 0, 5], [3, 2, 2]]

[[updates]]
axis  = "row"
lines = [{ index = 2, values = [0, 9, 9] }]

[[updates]]
axis    = "column"
changed = [0]
cost    = [[1, 1, 3], [1, 0, 5], [1, 9, 9]]
`

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	c := New(&out, &logs, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&logs)
	err := root.ExecuteContext(context.Background())

	return out.String(), logs.String(), err
}

func writeProblem(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestSolve_Text(t *testing.T) {
	out, _, err := run(t, "solve", "--verify", writeProblem(t, "three.toml", threeTOML))
	require.NoError(t, err)
	require.Contains(t, out, "Initial solve")
	require.Contains(t, out, "0→1 1→0 2→2")
	require.Contains(t, out, "Update 1 (row)")
	require.Contains(t, out, "0→2 1→1 2→0")
	require.Contains(t, out, "Update 2 (column)")
	require.Contains(t, out, "optimality certificate holds after 3 step(s)")
}

func TestSolve_JSON(t *testing.T) {
	out, _, err := run(t, "solve", "--json", writeProblem(t, "three.toml", threeTOML))
	require.NoError(t, err)

	var steps []stepResult
	sc := bufio.NewScanner(bytes.NewBufferString(out))
	for sc.Scan() {
		var s stepResult
		require.NoError(t, json.Unmarshal(sc.Bytes(), &s))
		steps = append(steps, s)
	}
	require.Len(t, steps, 3)
	require.Equal(t, []float64{5, 3, 4}, []float64{steps[0].Cost, steps[1].Cost, steps[2].Cost})
	require.Equal(t, []int{1, 0, 2}, steps[0].Assignment)
	require.Equal(t, "column", steps[2].Axis)
}

func TestSolve_Errors(t *testing.T) {
	_, _, err := run(t, "solve")
	require.Error(t, err)

	_, _, err = run(t, "solve", filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)

	bad := writeProblem(t, "bad.json", `{"cost": [[1, 2]]}`)
	_, _, err = run(t, "solve", bad)
	require.ErrorIs(t, err, hungarian.ErrShape)

	oob := writeProblem(t, "oob.yaml", "cost: [[1, 2], [3, 4]]\nupdates:\n  - axis: row\n    changed: [2]\n    cost: [[1, 2], [3, 4]]\n")
	_, _, err = run(t, "solve", oob)
	require.ErrorContains(t, err, "update 1")

	_, _, err = run(t, "solve", "--epsilon=-1", bad)
	require.ErrorContains(t, err, "--epsilon")
}

func TestBench(t *testing.T) {
	out, _, err := run(t, "bench", "--n", "12", "--instances", "3", "--changes", "10", "--workers", "2", "--max-cost", "20")
	require.NoError(t, err)
	require.Contains(t, out, "Benchmark n=12")
	require.Contains(t, out, "all 30 incremental costs match fresh solves")

	_, _, err = run(t, "bench", "--n", "0")
	require.Error(t, err)
}

func TestRunBenchInstance_Deterministic(t *testing.T) {
	opts := benchOptions{n: 8, instances: 1, changes: 15, maxCost: 10}
	a, err := runBenchInstance(opts, 99)
	require.NoError(t, err)
	require.Zero(t, a.mismatches)
}

func TestVersion(t *testing.T) {
	SetVersion("v1.2.3", "abc123", "2026-01-01")
	defer SetVersion("dev", "none", "unknown")

	out, _, err := run(t, "version")
	require.NoError(t, err)
	require.Equal(t, "dynhung v1.2.3\ncommit: abc123\nbuilt: 2026-01-01\n", out)
}

func TestServe_ConfigErrors(t *testing.T) {
	_, _, err := run(t, "serve", "--config", filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)

	_, _, err = run(t, "serve", "--max-n", "0")
	require.ErrorContains(t, err, "invalid configuration")
}

func TestServe_StopsOnCancel(t *testing.T) {
	var out, logs bytes.Buffer
	c := New(&out, &logs, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"serve", "--port", "0", "--log-level", "error"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, root.ExecuteContext(ctx))
}

func TestSetLogLevel(t *testing.T) {
	var out, logs bytes.Buffer
	c := New(&out, &logs, LogInfo)
	c.Logger.Debug("quiet")
	c.SetLogLevel(LogDebug)
	c.Logger.Debug("loud")
	require.NotContains(t, logs.String(), "quiet")
	require.Contains(t, logs.String(), "loud")
}
