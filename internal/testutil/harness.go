// Package testutil provides the shared harness for integration tests: it
// writes settings files, manifests and data files to a temporary project
// root and runs the full application against them.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/simmering/ladle/internal/app"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
	RootDir   string
}

// RunIntegrationTest writes the given files below a fresh project root, then
// builds and runs the application with the built-in technique modules.
// Settings files go under "project/", technique manifests under
// "techniques/"; data files sit at the root so settings can reference them
// by relative path. A startup panic is converted into the returned error.
func RunIntegrationTest(t *testing.T, files map[string]string) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files)
}

// RunIntegrationTestWithContext is RunIntegrationTest with a caller-provided
// context.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string) *HarnessResult {
	t.Helper()

	rootDir := t.TempDir()
	projectDir := filepath.Join(rootDir, "project")
	techniquesDir := filepath.Join(rootDir, "techniques")
	require.NoError(t, os.Mkdir(projectDir, 0o755))
	require.NoError(t, os.Mkdir(techniquesDir, 0o755))

	for name, content := range files {
		filePath := filepath.Join(rootDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	appConfig, err := app.NewConfig(app.Config{
		ProjectPath:    projectDir,
		TechniquesPath: techniquesDir,
		RootDir:        rootDir,
		LogLevel:       "debug",
		LogFormat:      "text",
		WorkerCount:    4,
	})
	require.NoError(t, err)

	logBuffer := &SafeBuffer{}

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp = app.NewApp(logBuffer, appConfig)
	}()

	if panicErr != nil {
		return &HarnessResult{
			LogOutput: logBuffer.String(),
			Err:       fmt.Errorf("application startup panicked | %v", panicErr),
			RootDir:   rootDir,
		}
	}

	runErr := testApp.Run(ctx)

	if os.Getenv("LADLE_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
		RootDir:   rootDir,
	}
}

// RunDir locates the single run folder produced below the harness root.
func (r *HarnessResult) RunDir(t *testing.T) string {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(r.RootDir, "results"))
	require.NoError(t, err)
	require.Len(t, entries, 1, "expected exactly one run folder")
	return filepath.Join(r.RootDir, "results", entries[0].Name())
}
