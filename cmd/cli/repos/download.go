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
	downloadUseConstant      = "download"
	downloadShortDescription = "Clone or refresh repositories from the source provider"
	downloadLongDescription  = "download clones every selected repository into the root directory, or hard-resets and pulls a working copy that already exists."
	downloadExampleConstant  = "  download --token T --repos alpha beta\n  download --all --root ~/mirrors"
)

// DownloadCommandBuilder assembles the download command.
type DownloadCommandBuilder struct {
	Dependencies
	// RequireToken makes --token mandatory instead of falling back to the environment and the credentials file.
	RequireToken bool
}

// Build constructs the download command.
func (builder *DownloadCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     downloadUseConstant,
		Short:   downloadShortDescription,
		Long:    downloadLongDescription,
		Example: downloadExampleConstant,
	}

	var tokenValue string
	var providerValue string
	if builder.RequireToken {
		if tokenFlagError := flagutils.BindRequiredTokenFlag(command.Flags(), &tokenValue); tokenFlagError != nil {
			return nil, tokenFlagError
		}
	} else {
		flagutils.BindTokenFlag(command.Flags(), &tokenValue)
	}
	command.Flags().StringVar(&providerValue, flagutils.ProviderFlagName, "", fmt.Sprintf(providerFlagUsageTemplateConstant, hosting.ProviderGitHub))
	selectionValues := flagutils.BindSelectionFlags(command)

	command.RunE = func(command *cobra.Command, arguments []string) error {
		return builder.run(command, arguments, selectionValues, providerValue)
	}

	return command, nil
}

func (builder *DownloadCommandBuilder) run(command *cobra.Command, arguments []string, selectionValues *flagutils.SelectionFlagValues, providerValue string) error {
	selection, selectionError := flagutils.ResolveSelection(command, selectionValues, arguments)
	if selectionError != nil {
		return selectionError
	}

	configuration := builder.configuration()
	console := builder.console(command)

	return runWithinBoundary(command, console, shared.RepositoryActionDownload, func(executionContext context.Context) error {
		settings := newReconcilerSettings(command, selectionValues, builder.Dependencies, configuration, console)
		settings.providerName = resolveProviderName(command, flagutils.ProviderFlagName, providerValue, configuration.Mirror.Source)
		downloader, downloaderError := builder.newDownloader(settings)
		if downloaderError != nil {
			return downloaderError
		}

		if selection.All {
			return downloader.DownloadAll(executionContext)
		}
		return downloader.DownloadNames(executionContext, selection.Names)
	})
}
