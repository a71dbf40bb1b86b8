package commands_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aims-dev/sectorburst/internal/config"
	"github.com/aims-dev/sectorburst/internal/reference"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build the binary once for all tests.
	tmpDir, err := os.MkdirTemp("", "sectorburst-test-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmpDir)

	binaryPath = filepath.Join(tmpDir, "sectorburst")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/sectorburst")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic("failed to build binary: " + err.Error())
	}

	os.Exit(m.Run())
}

func runSectorburst(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func TestInit_WritesFiles(t *testing.T) {
	dir := t.TempDir()
	out, err := runSectorburst(t, "init", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Initialized sectorburst project")

	for _, name := range []string{config.FileName, "sectors.csv"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, "%s should exist", name)
		assert.False(t, info.IsDir())
	}
}

func TestInit_Config(t *testing.T) {
	dir := t.TempDir()
	_, err := runSectorburst(t, "init", dir)
	require.NoError(t, err)

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, "sectors.csv", cfg.Reference.Path)
	assert.Equal(t, config.Default().Server.Addr, cfg.Server.Addr)
	require.NoError(t, cfg.Validate())
}

func TestInit_Sectors(t *testing.T) {
	dir := t.TempDir()
	_, err := runSectorburst(t, "init", dir)
	require.NoError(t, err)

	table, err := reference.Load(filepath.Join(dir, "sectors.csv"))
	require.NoError(t, err)
	bundled, err := reference.Default()
	require.NoError(t, err)
	assert.Equal(t, bundled.Len(), table.Len())
}

func TestInit_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	_, err := runSectorburst(t, "init", dir)
	require.NoError(t, err)

	out, err := runSectorburst(t, "init", dir)
	require.Error(t, err, "second init without --force should fail")
	assert.Contains(t, out, "already exists")

	_, err = runSectorburst(t, "init", dir, "--force")
	require.NoError(t, err)
}

func TestInit_KeepsExistingSectors(t *testing.T) {
	dir := t.TempDir()
	custom := []byte("code,name,category_code,category_name,group_code,group_name\n")
	sectors := filepath.Join(dir, "sectors.csv")
	require.NoError(t, os.WriteFile(sectors, custom, 0o644))

	out, err := runSectorburst(t, "init", dir)
	require.Error(t, err, "init without --force should not replace sectors.csv")
	assert.Contains(t, out, "already exists")

	data, err := os.ReadFile(sectors)
	require.NoError(t, err)
	assert.Equal(t, custom, data)
	_, err = os.Stat(filepath.Join(dir, config.FileName))
	assert.True(t, os.IsNotExist(err), "config should not be written either")
}
