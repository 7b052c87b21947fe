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
	uploadUseConstant      = "upload"
	uploadShortDescription = "Publish local working copies to the target provider"
	uploadLongDescription  = "upload creates each missing remote repository, aligns its visibility with the private marker file, points the mirror remote at it, and force-pushes every branch."
	uploadExampleConstant  = "  upload --token T --repos alpha\n  upload --all --keep-going"
)

// UploadCommandBuilder assembles the upload command.
type UploadCommandBuilder struct {
	Dependencies
	// InheritTokenFlag skips the local --token flag so a parent's persistent flag applies.
	InheritTokenFlag bool
}

// Build constructs the upload command.
func (builder *UploadCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     uploadUseConstant,
		Short:   uploadShortDescription,
		Long:    uploadLongDescription,
		Example: uploadExampleConstant,
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

func (builder *UploadCommandBuilder) run(command *cobra.Command, arguments []string, selectionValues *flagutils.SelectionFlagValues, providerValue string) error {
	selection, selectionError := flagutils.ResolveSelection(command, selectionValues, arguments)
	if selectionError != nil {
		return selectionError
	}

	configuration := builder.configuration()
	console := builder.console(command)

	return runWithinBoundary(command, console, shared.RepositoryActionUpload, func(executionContext context.Context) error {
		settings := newReconcilerSettings(command, selectionValues, builder.Dependencies, configuration, console)
		settings.providerName = resolveProviderName(command, flagutils.ProviderFlagName, providerValue, configuration.Mirror.Target)
		uploader, uploaderError := builder.newUploader(settings)
		if uploaderError != nil {
			return uploaderError
		}

		if selection.All {
			return uploader.UploadAll(executionContext)
		}
		return uploader.UploadNames(executionContext, selection.Names)
	})
}
