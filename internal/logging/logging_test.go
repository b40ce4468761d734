package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupNoLogReturnsNilSafeLogger(t *testing.T) {
	logger, err := Setup(t.TempDir(), false, true, []string{"webpopt"})
	require.NoError(t, err)
	require.Nil(t, logger)

	// All methods tolerate the nil receiver.
	logger.Info("ignored")
	logger.Debug("ignored")
	assert.NotNil(t, logger.Writer())
	assert.NoError(t, logger.Close())
}

func TestDebugWrittenOnlyWhenVerbose(t *testing.T) {
	quietDir := t.TempDir()
	quiet, err := Setup(quietDir, false, false, []string{"webpopt", "convert"})
	require.NoError(t, err)
	quiet.Debug("hidden detail")
	quiet.Info("plain note")
	require.NoError(t, quiet.Close())

	content := readOnlyLog(t, quietDir)
	assert.NotContains(t, content, "hidden detail")
	assert.Contains(t, content, "[INFO] plain note")

	verboseDir := t.TempDir()
	verbose, err := Setup(verboseDir, true, false, []string{"webpopt", "convert"})
	require.NoError(t, err)
	verbose.Debug("shown detail")
	require.NoError(t, verbose.Close())

	content = readOnlyLog(t, verboseDir)
	assert.Contains(t, content, "[DEBUG] shown detail")
}

func TestSetupRecordsCommandLine(t *testing.T) {
	dir := t.TempDir()
	logger, err := Setup(dir, false, false, []string{"webpopt", "convert", "--quality", "80"})
	require.NoError(t, err)
	require.NoError(t, logger.Close())

	content := readOnlyLog(t, dir)
	assert.Contains(t, content, "Command: webpopt convert --quality 80")
}

// readOnlyLog returns the content of the single log file in dir.
func readOnlyLog(t *testing.T, dir string) string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	return string(data)
}
