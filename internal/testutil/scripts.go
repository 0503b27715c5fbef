package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// RequirePOSIX skips the test on platforms without /bin/sh.
func RequirePOSIX(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fixtures require a POSIX shell")
	}
}

// WriteScript writes an executable /bin/sh script at dir/rel with the given
// body and returns its absolute path.
func WriteScript(t *testing.T, dir, rel, body string) string {
	t.Helper()
	RequirePOSIX(t)

	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	content := "#!/bin/sh\n" + body + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0755))
	return path
}

// WritePipeline installs a fake task runner at
// projectDir/node_modules/.bin/gulp that appends a line to marker on every
// run and then exits with exitCode.
func WritePipeline(t *testing.T, projectDir, marker string, exitCode int) string {
	t.Helper()
	body := fmt.Sprintf("echo \"gulp ran\"\necho pipeline >> %q\nexit %d", marker, exitCode)
	return WriteScript(t, projectDir, filepath.Join("node_modules", ".bin", "gulp"), body)
}

// ReadLines returns the non-empty lines of path, or nil when it does not exist.
func ReadLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)

	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
