// Package execshell provides structured helpers for invoking external tools.
//
// ShellExecutor wraps a CommandRunner with zap logging and lifecycle
// observers, OSCommandRunner provides the os/exec backed default, and
// CommandMessageFormatter renders git invocations as readable sentences with
// URL credentials masked so tokens never reach logs or error text.
package execshell
