// Package flags binds the command-line flags shared by the mirror commands.
package flags

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	// TokenFlagName names the access token flag.
	TokenFlagName          = "token"
	// TokenFlagUsage describes the access token flag.
	TokenFlagUsage         = "Access token for the hosting provider (falls back to the environment and the credentials file)"
	// RequiredTokenFlagUsage describes the access token flag of commands that accept no other token source.
	RequiredTokenFlagUsage = "Access token for the hosting provider"
	// RepositoriesFlagName names the explicit repository selection flag.
	RepositoriesFlagName   = "repos"
	// RepositoriesFlagUsage describes the explicit repository selection flag.
	RepositoriesFlagUsage  = "Repository names to process; repeat the flag, separate names with commas, or list them after the flag"
	// AllFlagName names the whole-account selection flag.
	AllFlagName            = "all"
	// AllFlagUsage describes the whole-account selection flag.
	AllFlagUsage           = "Process every repository"
	// RootFlagName names the local working copy directory flag.
	RootFlagName           = "root"
	// RootFlagUsage describes the local working copy directory flag.
	RootFlagUsage          = "Directory holding one working copy per repository"
	// KeepGoingFlagName names the failure policy flag.
	KeepGoingFlagName      = "keep-going"
	// KeepGoingFlagUsage describes the failure policy flag.
	KeepGoingFlagUsage     = "Continue with the remaining repositories after a failure and report every error"
	// ProviderFlagName names the hosting provider flag.
	ProviderFlagName       = "provider"

	selectionRequiredMessageConstant   = "one of --repos or --all is required"
	selectionConflictMessageConstant   = "--repos and --all are mutually exclusive"
	unexpectedArgumentsMessageConstant = "repository names must follow --repos"
)

// ErrSelectionRequired indicates neither --repos nor --all was provided.
var ErrSelectionRequired = errors.New(selectionRequiredMessageConstant)

// ErrSelectionConflict indicates both --repos and --all were provided.
var ErrSelectionConflict = errors.New(selectionConflictMessageConstant)

// ErrUnexpectedArguments indicates positional arguments without --repos.
var ErrUnexpectedArguments = errors.New(unexpectedArgumentsMessageConstant)

// SelectionFlagValues stores the raw selection flag values of one command.
type SelectionFlagValues struct {
	Repositories []string
	All          bool
	Root         string
	KeepGoing    bool
}

// Selection is a validated choice between every repository and an explicit name list.
type Selection struct {
	All   bool
	Names []string
}

// BindTokenFlag attaches the --token flag to flagSet. Bind it on persistent flags when sub-actions must accept it too.
func BindTokenFlag(flagSet *pflag.FlagSet, target *string) {
	if flagSet == nil || flagSet.Lookup(TokenFlagName) != nil {
		return
	}
	flagSet.StringVar(target, TokenFlagName, "", TokenFlagUsage)
}

// BindRequiredTokenFlag attaches a mandatory --token flag to flagSet. Cobra rejects a run without it before the
// command's RunE is reached.
func BindRequiredTokenFlag(flagSet *pflag.FlagSet, target *string) error {
	if flagSet == nil {
		return nil
	}
	if flagSet.Lookup(TokenFlagName) == nil {
		flagSet.StringVar(target, TokenFlagName, "", RequiredTokenFlagUsage)
	}
	return cobra.MarkFlagRequired(flagSet, TokenFlagName)
}

// BindSelectionFlags attaches --repos, --all, --root and --keep-going to the command.
func BindSelectionFlags(command *cobra.Command) *SelectionFlagValues {
	values := &SelectionFlagValues{}
	if command == nil {
		return values
	}
	flagSet := command.Flags()
	flagSet.StringSliceVar(&values.Repositories, RepositoriesFlagName, nil, RepositoriesFlagUsage)
	flagSet.BoolVar(&values.All, AllFlagName, false, AllFlagUsage)
	flagSet.StringVar(&values.Root, RootFlagName, "", RootFlagUsage)
	AddToggleFlag(flagSet, &values.KeepGoing, KeepGoingFlagName, false, KeepGoingFlagUsage)
	return values
}

// ResolveSelection validates the selection flags. Positional arguments extend --repos.
func ResolveSelection(command *cobra.Command, values *SelectionFlagValues, arguments []string) (Selection, error) {
	repositoriesProvided := command != nil && command.Flags().Changed(RepositoriesFlagName)
	if values == nil {
		values = &SelectionFlagValues{}
	}

	switch {
	case values.All && repositoriesProvided:
		return Selection{}, ErrSelectionConflict
	case !repositoriesProvided && len(arguments) > 0:
		return Selection{}, ErrUnexpectedArguments
	case values.All:
		return Selection{All: true}, nil
	case !repositoriesProvided:
		return Selection{}, ErrSelectionRequired
	}

	names := uniqueNames(append(append([]string{}, values.Repositories...), arguments...))
	if len(names) == 0 {
		return Selection{}, ErrSelectionRequired
	}
	return Selection{Names: names}, nil
}

// Override returns the flag value when the user set the flag on the command, otherwise fallback.
func Override(command *cobra.Command, flagName string, flagValue string, fallback string) string {
	if command == nil || !command.Flags().Changed(flagName) {
		return fallback
	}
	return flagValue
}

func uniqueNames(candidates []string) []string {
	names := make([]string, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))
	for _, candidate := range candidates {
		trimmed := strings.TrimSpace(candidate)
		if len(trimmed) == 0 {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		names = append(names, trimmed)
	}
	return names
}
