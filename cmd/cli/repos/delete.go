package repos

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/giberg/internal/hosting"
	"github.com/temirov/giberg/internal/repos/shared"
	flagutils "github.com/temirov/giberg/internal/utils/flags"
)

const (
	deleteUseConstant      = "delete"
	deleteShortDescription = "Delete repositories from the target provider"
	deleteLongDescription  = "delete removes each selected repository from the target provider immediately. There is no confirmation and no dry run."
	deleteExampleConstant  = "  delete --token T --repos alpha\n  delete --all"
)

// DeleteCommandBuilder assembles the delete command.
type DeleteCommandBuilder struct {
	Dependencies
	// InheritTokenFlag skips the local --token flag so a parent's persistent flag applies.
	InheritTokenFlag bool
}

// Build constructs the delete command.
func (builder *DeleteCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     deleteUseConstant,
		Short:   deleteShortDescription,
		Long:    deleteLongDescription,
		Example: deleteExampleConstant,
	}

	var tokenValue string
	var providerValue string
	if !builder.InheritTokenFlag {
		flagutils.BindTokenFlag(command.Flags(), &tokenValue)
	}
	command.Flags().StringVar(&providerValue, flagutils.ProviderFlagName, "", fmt.Sprintf(providerFlagUsageTemplateConstant, hosting.ProviderCodeberg))
	selectionValues := flagutils.BindSelectionFlags(command)

	command.RunE = func(command *cobra.Command, arguments []string) error {
		return builder.run(command, arguments, selectionValues, providerValue)
	}

	return command, nil
}

func (builder *DeleteCommandBuilder) run(command *cobra.Command, arguments []string, selectionValues *flagutils.SelectionFlagValues, providerValue string) error {
	selection, selectionError := flagutils.ResolveSelection(command, selectionValues, arguments)
	if selectionError != nil {
		return selectionError
	}

	configuration := builder.configuration()
	console := builder.console(command)

	return runWithinBoundary(command, console, shared.RepositoryActionDelete, func(executionContext context.Context) error {
		settings := newReconcilerSettings(command, selectionValues, builder.Dependencies, configuration, console)
		settings.providerName = resolveProviderName(command, flagutils.ProviderFlagName, providerValue, configuration.Mirror.Target)
		deleter, deleterError := builder.newDeleter(settings)
		if deleterError != nil {
			return deleterError
		}

		if selection.All {
			return deleter.DeleteAll(executionContext)
		}
		return deleter.DeleteNames(executionContext, selection.Names)
	})
}
