package main

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixedProfile = `
name: identity-fixed
function: identity
lower: -2
upper: 6
size: 16
subsamples: 4
`

const extendedProfile = `
name: identity-extended
function: identity
mode: extended
lower: -2
step: 0.5
atLeast: 1
subsamples: 4
stop:
  below: 0
  atOrAbove: 8.2
`

func writeProfile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestTable_SinglePhase(t *testing.T) {
	path := writeProfile(t, "fixed.yaml", fixedProfile)

	out, _, err := run(t, "table", "--phase", "0", path)
	require.NoError(t, err)

	assert.Contains(t, out, "# identity-fixed: sampled[-2, 6)")
	assert.Contains(t, out, "0\t0\t-2\t-2\n")
	assert.Contains(t, out, "0\t15\t5.5\t5.5\n")
	assert.NotContains(t, out, "\n1\t0\t")
}

func TestTable_SameGridIsBuiltOnce(t *testing.T) {
	path := writeProfile(t, "fixed.yaml", fixedProfile)

	_, logs, err := run(t, "--log-level", "debug", "table", path, path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(logs, "sampled function built"))
}

func TestTable_PhaseOutOfRange(t *testing.T) {
	path := writeProfile(t, "fixed.yaml", fixedProfile)

	_, _, err := run(t, "table", "--phase", "4", path)
	assert.ErrorContains(t, err, "phase 4 out of range")
}

func TestTable_NegativePhaseOtherThanAll(t *testing.T) {
	path := writeProfile(t, "fixed.yaml", fixedProfile)

	_, _, err := run(t, "table", "--phase=-2", path)
	assert.ErrorContains(t, err, "invalid phase -2")

	out, _, err := run(t, "table", "--phase=-1", path)
	require.NoError(t, err)
	assert.Contains(t, out, "3\t15\t5.875\t5.875\n")
}

func TestDescribe_ShippedProfiles(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "examples", "profiles", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	nonEmpty := regexp.MustCompile(`(?m)^samples:\s+[1-9][0-9]* x [1-9][0-9]* subsamples$`)
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			out, _, err := run(t, "describe", path)
			require.NoError(t, err)
			assert.Regexp(t, nonEmpty, out)
		})
	}
}

func TestDescribe_Extended(t *testing.T) {
	path := writeProfile(t, "extended.yaml", extendedProfile)

	out, _, err := run(t, "describe", path)
	require.NoError(t, err)
	assert.Contains(t, out, "range:       [-2, 8) size 10\n")
	assert.Contains(t, out, "samples:     20 x 4 subsamples\n")
	assert.Contains(t, out, "step:        0.5 (substep 0.125)\n")
}

func TestLookup(t *testing.T) {
	path := writeProfile(t, "fixed.yaml", fixedProfile)

	out, _, err := run(t, "lookup", "-p", path, "--", "0.3", "7", "-1.55")
	require.NoError(t, err)
	assert.Contains(t, out, "0.3\t2\t4\t0.25\n")
	assert.Contains(t, out, "7\t0\t18\tout of range\n")
	// rounds up past the last phase onto sample 1 of phase 0
	assert.Contains(t, out, "-1.55\t0\t1\t-1.5\n")
}

func TestLookup_BadCoordinate(t *testing.T) {
	path := writeProfile(t, "fixed.yaml", fixedProfile)

	_, _, err := run(t, "lookup", "-p", path, "abc")
	assert.ErrorContains(t, err, "invalid coordinate")
}

func TestUnknownFunction(t *testing.T) {
	path := writeProfile(t, "bad.yaml", "function: zeta\nupper: 1\nsize: 4\n")

	_, _, err := run(t, "describe", path)
	assert.ErrorContains(t, err, "unknown function")
}

func TestFunctions(t *testing.T) {
	out, _, err := run(t, "functions")
	require.NoError(t, err)
	assert.Contains(t, out, "landau\n")
	assert.Contains(t, out, "identity\n")
}
