package repos

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/giberg/internal/hosting"
	"github.com/temirov/giberg/internal/ui"
	flagutils "github.com/temirov/giberg/internal/utils/flags"
)

const (
	listUseConstant                 = "list"
	listShortDescription            = "List the repositories of the authenticated user"
	listLongDescription             = "list prints every repository the provider reports for the authenticated user, following pagination to the last page."
	listExampleConstant             = "  list\n  list --provider codeberg --output json"
	listOutputFlagNameConstant      = "output"
	listOutputFlagUsageConstant     = "Output format"
	listedLogMessageConstant        = "Listed remote repositories"
	logFieldRepositoryCountConstant = "repository_count"
)

// ListCommandBuilder assembles the list command.
type ListCommandBuilder struct {
	Dependencies
}

// Build constructs the list command.
func (builder *ListCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     listUseConstant,
		Short:   listShortDescription,
		Long:    listLongDescription,
		Example: listExampleConstant,
		Args:    cobra.NoArgs,
	}

	var tokenValue string
	var providerValue string
	var outputValue string
	flagutils.BindTokenFlag(command.Flags(), &tokenValue)
	command.Flags().StringVar(&providerValue, flagutils.ProviderFlagName, "", fmt.Sprintf(providerFlagUsageTemplateConstant, hosting.ProviderGitHub))
	flagutils.AddChoiceFlag(command.Flags(), &outputValue, listOutputFlagNameConstant, string(ui.ListingFormatTable), ui.ListingFormats(), listOutputFlagUsageConstant)

	command.RunE = func(command *cobra.Command, arguments []string) error {
		return builder.run(command, providerValue, outputValue)
	}

	return command, nil
}

func (builder *ListCommandBuilder) run(command *cobra.Command, providerValue string, outputValue string) error {
	listingFormat, formatError := ui.ParseListingFormat(outputValue)
	if formatError != nil {
		return formatError
	}

	configuration := builder.configuration()
	providerName := resolveProviderName(command, flagutils.ProviderFlagName, providerValue, configuration.Mirror.Source)
	provider, providerError := builder.provider(builder.tokenResolver(configuration), configuration, providerName, lookupToken(command))
	if providerError != nil {
		return providerError
	}

	repositories, listError := provider.ListRepositories(command.Context())
	if listError != nil {
		return listError
	}
	builder.logger().Debug(
		listedLogMessageConstant,
		zap.String(logFieldProviderConstant, string(providerName)),
		zap.Int(logFieldRepositoryCountConstant, len(repositories)),
	)

	return ui.RenderRepositories(command.OutOrStdout(), listingFormat, repositories)
}
