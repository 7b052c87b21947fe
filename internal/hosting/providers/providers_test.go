package providers_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/giberg/internal/hosting"
	"github.com/temirov/giberg/internal/hosting/providers"
)

func TestDefaultRegistryBuildsEveryProvider(testInstance *testing.T) {
	registry := providers.NewDefaultRegistry()
	require.Equal(testInstance, []string{"codeberg", "github", "gitlab"}, registry.Names())

	for _, name := range registry.Names() {
		provider, creationError := registry.Create(hosting.ProviderName(name), hosting.Settings{Token: "token"})
		require.NoError(testInstance, creationError)
		require.Equal(testInstance, hosting.ProviderName(name), provider.Name())
	}
}
