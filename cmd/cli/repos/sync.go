package repos

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/temirov/giberg/internal/repos/shared"
	flagutils "github.com/temirov/giberg/internal/utils/flags"
)

const (
	syncUseConstant             = "sync"
	syncShortDescription        = "Mirror repositories from the source provider to the target provider"
	syncLongDescription         = "sync downloads the selected repositories from the source provider and then uploads the same repositories to the target provider. Tokens come from the environment or the credentials file."
	syncExampleConstant         = "  sync --all\n  sync --repos alpha beta --source github --target codeberg"
	syncSourceFlagNameConstant  = "source"
	syncSourceFlagUsageConstant = "Provider to download from (overrides mirror.source)"
	syncTargetFlagNameConstant  = "target"
	syncTargetFlagUsageConstant = "Provider to upload to (overrides mirror.target)"
)

// SyncCommandBuilder assembles the sync command.
type SyncCommandBuilder struct {
	Dependencies
}

// Build constructs the sync command.
func (builder *SyncCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     syncUseConstant,
		Short:   syncShortDescription,
		Long:    syncLongDescription,
		Example: syncExampleConstant,
	}

	var sourceValue string
	var targetValue string
	command.Flags().StringVar(&sourceValue, syncSourceFlagNameConstant, "", syncSourceFlagUsageConstant)
	command.Flags().StringVar(&targetValue, syncTargetFlagNameConstant, "", syncTargetFlagUsageConstant)
	selectionValues := flagutils.BindSelectionFlags(command)

	command.RunE = func(command *cobra.Command, arguments []string) error {
		return builder.run(command, arguments, selectionValues, sourceValue, targetValue)
	}

	return command, nil
}

func (builder *SyncCommandBuilder) run(command *cobra.Command, arguments []string, selectionValues *flagutils.SelectionFlagValues, sourceValue string, targetValue string) error {
	selection, selectionError := flagutils.ResolveSelection(command, selectionValues, arguments)
	if selectionError != nil {
		return selectionError
	}

	configuration := builder.configuration()
	console := builder.console(command)

	return runWithinBoundary(command, console, shared.RepositoryActionDownload, func(executionContext context.Context) error {
		settings := newReconcilerSettings(command, selectionValues, builder.Dependencies, configuration, console)

		downloadSettings := settings
		downloadSettings.providerName = resolveProviderName(command, syncSourceFlagNameConstant, sourceValue, configuration.Mirror.Source)
		downloader, downloaderError := builder.newDownloader(downloadSettings)
		if downloaderError != nil {
			return actionFailure{action: shared.RepositoryActionDownload, cause: downloaderError}
		}

		uploadSettings := settings
		uploadSettings.providerName = resolveProviderName(command, syncTargetFlagNameConstant, targetValue, configuration.Mirror.Target)
		uploader, uploaderError := builder.newUploader(uploadSettings)
		if uploaderError != nil {
			return actionFailure{action: shared.RepositoryActionUpload, cause: uploaderError}
		}

		if selection.All {
			if downloadError := downloader.DownloadAll(executionContext); downloadError != nil {
				return actionFailure{action: shared.RepositoryActionDownload, cause: downloadError}
			}
			if uploadError := uploader.UploadAll(executionContext); uploadError != nil {
				return actionFailure{action: shared.RepositoryActionUpload, cause: uploadError}
			}
			return nil
		}

		if downloadError := downloader.DownloadNames(executionContext, selection.Names); downloadError != nil {
			return actionFailure{action: shared.RepositoryActionDownload, cause: downloadError}
		}
		if uploadError := uploader.UploadNames(executionContext, selection.Names); uploadError != nil {
			return actionFailure{action: shared.RepositoryActionUpload, cause: uploadError}
		}
		return nil
	})
}
