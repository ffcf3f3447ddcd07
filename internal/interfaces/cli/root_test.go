package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with the given args in a temp working
// directory so no local chemgraph.yaml leaks into the test.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	wd, wdErr := os.Getwd()
	require.NoError(t, wdErr)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cmd := NewRootCommand()
	var out, errBuf bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errBuf.String(), err
}

func TestRootCommand_Structure(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "chemgraph", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	names := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		names[strings.Fields(sub.Use)[0]] = true
	}
	for _, want := range []string{"parse", "validate", "canon", "rings", "match", "sim", "props"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}

func TestCanonCommand(t *testing.T) {
	stdout, _, err := execute(t, "canon", "OCC")
	require.NoError(t, err)
	assert.Equal(t, "CCO\n", stdout)
}

func TestCanonCommand_ParseError(t *testing.T) {
	_, _, err := execute(t, "canon", "C1CC")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SMI_005")
}

func TestValidateCommand(t *testing.T) {
	stdout, _, err := execute(t, "validate", "c1ccccc1")
	require.NoError(t, err)
	assert.Equal(t, "valid\n", stdout)
}

func TestValidateCommand_Invalid(t *testing.T) {
	stdout, _, err := execute(t, "validate", "C1CC")
	require.Error(t, err)
	assert.Contains(t, stdout, "invalid")
	assert.Contains(t, stdout, "SMI_005")
}

func TestParseCommand_Text(t *testing.T) {
	stdout, _, err := execute(t, "parse", "CCO")
	require.NoError(t, err)
	assert.Contains(t, stdout, "canonical: CCO")
	assert.Contains(t, stdout, "formula:   C2H6O")
	assert.Contains(t, stdout, "atoms:     3")
}

func TestParseCommand_JSON(t *testing.T) {
	stdout, _, err := execute(t, "parse", "CCO", "-o", "json")
	require.NoError(t, err)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(stdout), &payload))
	assert.Equal(t, "CCO", payload["canonical_smiles"])
}

func TestRingsCommand(t *testing.T) {
	stdout, _, err := execute(t, "rings", "c1ccccc1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "size=6 aromatic")

	stdout, _, err = execute(t, "rings", "CCO")
	require.NoError(t, err)
	assert.Equal(t, "no rings\n", stdout)
}

func TestMatchCommand(t *testing.T) {
	stdout, _, err := execute(t, "match", "CCO", "O")
	require.NoError(t, err)
	assert.Contains(t, stdout, "match: atoms")

	stdout, _, err = execute(t, "match", "CCO", "N")
	require.NoError(t, err)
	assert.Equal(t, "no match\n", stdout)
}

func TestSimCommand(t *testing.T) {
	stdout, _, err := execute(t, "sim", "CCO", "CCO")
	require.NoError(t, err)
	assert.Equal(t, "1.0000\n", stdout)
}

func TestPropsCommand(t *testing.T) {
	stdout, _, err := execute(t, "props", "CC(=O)Oc1ccccc1C(=O)O")
	require.NoError(t, err)
	assert.Contains(t, stdout, "formula:          C9H8O4")
	assert.Contains(t, stdout, "Lipinski:         pass")
}

func TestUnknownElementSurfacesCode(t *testing.T) {
	_, _, err := execute(t, "canon", "[Xx]")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SMI_003")
}

func TestMissingArguments(t *testing.T) {
	_, _, err := execute(t, "canon")
	assert.Error(t, err)
}

func TestPersistentShutdown_ClosesCache(t *testing.T) {
	wd, wdErr := os.Getwd()
	require.NoError(t, wdErr)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	require.NoError(t, persistentPreRun(cmd, &RootOptions{LogLevel: "warn", OutputFormat: "text"}))

	cliCtx, err := GetCLIContext(cmd)
	require.NoError(t, err)
	require.NotNil(t, cliCtx.Cache, "the janitor's owner rides on the context")

	persistentPostRun(cmd, nil)
	// Close is idempotent, so a second run of the hook is harmless.
	persistentPostRun(cmd, nil)
	assert.NoError(t, cliCtx.Cache.Close())
}
