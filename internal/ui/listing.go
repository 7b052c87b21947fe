package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/temirov/giberg/internal/hosting"
)

const (
	listingFormatTableConstant       = "table"
	listingFormatYAMLConstant        = "yaml"
	listingFormatJSONConstant        = "json"
	unsupportedListingFormatTemplate = "unsupported output format: %s"
	listingHeaderNameConstant        = "Name"
	listingHeaderOwnerConstant       = "Owner"
	listingHeaderVisibilityConstant  = "Visibility"
	listingHeaderCloneURLConstant    = "Clone URL"
	visibilityPrivateConstant        = "private"
	visibilityPublicConstant         = "public"
	jsonIndentConstant               = "  "
	yamlIndentConstant               = 2
)

// ListingFormat selects how remote repositories are rendered.
type ListingFormat string

// Supported listing formats.
const (
	ListingFormatTable ListingFormat = ListingFormat(listingFormatTableConstant)
	ListingFormatYAML  ListingFormat = ListingFormat(listingFormatYAMLConstant)
	ListingFormatJSON  ListingFormat = ListingFormat(listingFormatJSONConstant)
)

// ListingFormats returns the accepted format names.
func ListingFormats() []string {
	return []string{listingFormatTableConstant, listingFormatYAMLConstant, listingFormatJSONConstant}
}

// ParseListingFormat normalizes a requested format. An empty value selects the table.
func ParseListingFormat(rawFormat string) (ListingFormat, error) {
	normalizedFormat := ListingFormat(strings.ToLower(strings.TrimSpace(rawFormat)))
	switch normalizedFormat {
	case "":
		return ListingFormatTable, nil
	case ListingFormatTable, ListingFormatYAML, ListingFormatJSON:
		return normalizedFormat, nil
	default:
		return "", fmt.Errorf(unsupportedListingFormatTemplate, rawFormat)
	}
}

// RenderRepositories writes repositories to output in the requested format.
func RenderRepositories(output io.Writer, format ListingFormat, repositories []hosting.RemoteRepository) error {
	if repositories == nil {
		repositories = []hosting.RemoteRepository{}
	}
	switch format {
	case ListingFormatYAML:
		encoder := yaml.NewEncoder(output)
		encoder.SetIndent(yamlIndentConstant)
		if encodeError := encoder.Encode(repositories); encodeError != nil {
			return encodeError
		}
		return encoder.Close()
	case ListingFormatJSON:
		encoded, encodeError := json.MarshalIndent(repositories, "", jsonIndentConstant)
		if encodeError != nil {
			return encodeError
		}
		_, writeError := fmt.Fprintf(output, "%s\n", encoded)
		return writeError
	case ListingFormatTable, "":
		table := tablewriter.NewWriter(output)
		table.SetHeader([]string{listingHeaderNameConstant, listingHeaderOwnerConstant, listingHeaderVisibilityConstant, listingHeaderCloneURLConstant})
		table.SetAutoWrapText(false)
		for _, repository := range repositories {
			table.Append([]string{repository.Name, repository.Owner, visibilityLabel(repository.Private), repository.CloneURL})
		}
		table.Render()
		return nil
	default:
		return fmt.Errorf(unsupportedListingFormatTemplate, format)
	}
}

func visibilityLabel(private bool) string {
	if private {
		return visibilityPrivateConstant
	}
	return visibilityPublicConstant
}
