// Package cli constructs the giberg, ghd and cbu command-line interfaces. It wires the Cobra command
// hierarchy to the layered configuration loader, the zap logger and the mirror commands, and converts
// command outcomes into process exit codes.
package cli
