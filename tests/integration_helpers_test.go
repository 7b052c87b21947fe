package tests

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	integrationCommandTimeout          = 60 * time.Second
	integrationConfigSearchPathEnvName = "GIBERG_CONFIG_SEARCH_PATH"
)

type integrationResult struct {
	output string
	failed bool
}

func repositoryRootDirectory(testInstance *testing.T) string {
	testInstance.Helper()
	workingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)
	return filepath.Dir(workingDirectory)
}

// runIntegrationCommand executes `go run <module path> <arguments...>` from the repository root with an isolated configuration search path.
func runIntegrationCommand(testInstance *testing.T, modulePath string, arguments ...string) integrationResult {
	testInstance.Helper()
	executionContext, cancel := context.WithTimeout(context.Background(), integrationCommandTimeout)
	defer cancel()

	command := exec.CommandContext(executionContext, "go", append([]string{"run", modulePath}, arguments...)...)
	command.Dir = repositoryRootDirectory(testInstance)
	command.Env = append(append([]string{}, os.Environ()...), integrationConfigSearchPathEnvName+"="+testInstance.TempDir())

	outputBytes, runError := command.CombinedOutput()
	if executionContext.Err() != nil {
		testInstance.Fatalf("command timed out: %v\n%s", executionContext.Err(), string(outputBytes))
	}
	var exitError *exec.ExitError
	if runError != nil && !errors.As(runError, &exitError) {
		testInstance.Fatalf("command failed to start: %v\n%s", runError, string(outputBytes))
	}
	return integrationResult{output: string(outputBytes), failed: runError != nil}
}

func writeIntegrationFile(testInstance *testing.T, directory string, name string, content string) string {
	testInstance.Helper()
	path := filepath.Join(directory, name)
	require.NoError(testInstance, os.WriteFile(path, []byte(content), 0o600))
	return path
}
