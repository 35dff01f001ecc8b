package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/DealLens/pkg/errors"
)

// execute runs the root command against a throwaway config file whose
// output file lives in dir.
func execute(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()

	cfgPath := filepath.Join(dir, "deallens.yaml")
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		yaml := "environment: development\n" +
			"extract:\n" +
			"  output_file: " + filepath.Join(dir, "extracted_deals.json") + "\n" +
			"  preview_limit: 2\n"
		require.NoError(t, os.WriteFile(cfgPath, []byte(yaml), 0o644))
	}

	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", cfgPath, "--log-level", "error"}, args...))

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestNewRootCommand_Structure(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "deallens", cmd.Use)
	assert.NotEmpty(t, cmd.Short)

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"extract", "score", "report", "version"}, names)

	for _, flag := range []string{"config", "log-level", "output", "verbose", "timeout"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}
	assert.Equal(t, "text", cmd.PersistentFlags().Lookup("output").DefValue)
}

func TestRoot_UnsupportedOutputFormat(t *testing.T) {
	_, err := execute(t, t.TempDir(), "-o", "yaml", "version")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeBadRequest))
}

func TestRoot_MissingConfigFile(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "absent.yaml"), "version"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config initialization failed")
}

func TestRoot_UnknownSubcommand(t *testing.T) {
	_, err := execute(t, t.TempDir(), "unknownsubcommand")
	assert.Error(t, err)
}

func TestGetCLIContext_Missing(t *testing.T) {
	cmd := NewVersionCmd()
	_, err := GetCLIContext(cmd)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInternal))
}

func TestVersionCmd(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	Version, GitCommit, BuildDate = "1.2.3", "abc1234", "2024-03-09"
	defer func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate }()

	out, err := execute(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "deallens 1.2.3\n")
	assert.Contains(t, out, "  commit:   abc1234\n")
	assert.Contains(t, out, "  built:    2024-03-09\n")

	out, err = execute(t, t.TempDir(), "version", "-o", "json")
	require.NoError(t, err)
	var info BuildInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, "abc1234", info.Commit)
	assert.NotEmpty(t, info.GoVersion)
}

//Personal.AI order the ending
