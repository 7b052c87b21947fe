package ui_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/temirov/giberg/internal/hosting"
	"github.com/temirov/giberg/internal/ui"
)

var testListedRepositories = []hosting.RemoteRepository{
	{Name: "alpha", Owner: "alice", CloneURL: "https://github.com/alice/alpha.git", Private: false},
	{Name: "secret", Owner: "alice", CloneURL: "https://github.com/alice/secret.git", Private: true},
}

func TestRenderRepositoriesTable(testInstance *testing.T) {
	output := &bytes.Buffer{}
	require.NoError(testInstance, ui.RenderRepositories(output, ui.ListingFormatTable, testListedRepositories))

	rendered := output.String()
	require.Contains(testInstance, rendered, "NAME")
	require.Contains(testInstance, rendered, "VISIBILITY")
	require.Contains(testInstance, rendered, "alpha")
	require.Contains(testInstance, rendered, "public")
	require.Contains(testInstance, rendered, "https://github.com/alice/secret.git")
	require.Contains(testInstance, rendered, "private")
}

func TestRenderRepositoriesStructuredFormats(testInstance *testing.T) {
	testCases := []struct {
		name   string
		format ui.ListingFormat
		decode func(content []byte, target *[]hosting.RemoteRepository) error
	}{
		{
			name:   "json",
			format: ui.ListingFormatJSON,
			decode: func(content []byte, target *[]hosting.RemoteRepository) error {
				return json.Unmarshal(content, target)
			},
		},
		{
			name:   "yaml",
			format: ui.ListingFormatYAML,
			decode: func(content []byte, target *[]hosting.RemoteRepository) error {
				return yaml.Unmarshal(content, target)
			},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			output := &bytes.Buffer{}
			require.NoError(testInstance, ui.RenderRepositories(output, testCase.format, testListedRepositories))

			decoded := []hosting.RemoteRepository{}
			require.NoError(testInstance, testCase.decode(output.Bytes(), &decoded))
			require.Equal(testInstance, testListedRepositories, decoded)
		})
	}
}

func TestRenderRepositoriesEmptyJSONIsArray(testInstance *testing.T) {
	output := &bytes.Buffer{}
	require.NoError(testInstance, ui.RenderRepositories(output, ui.ListingFormatJSON, nil))
	require.Equal(testInstance, "[]\n", output.String())
}

func TestParseListingFormat(testInstance *testing.T) {
	format, parseError := ui.ParseListingFormat("")
	require.NoError(testInstance, parseError)
	require.Equal(testInstance, ui.ListingFormatTable, format)

	format, parseError = ui.ParseListingFormat(" YAML ")
	require.NoError(testInstance, parseError)
	require.Equal(testInstance, ui.ListingFormatYAML, format)

	_, parseError = ui.ParseListingFormat("xml")
	require.Error(testInstance, parseError)
}
