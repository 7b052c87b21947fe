package hosting_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/giberg/internal/hosting"
)

type stubProvider struct {
	hosting.Provider
	settings hosting.Settings
}

func (provider stubProvider) Name() hosting.ProviderName {
	return hosting.ProviderName("stub")
}

func TestCollectPagesStopsAtFirstEmptyPage(testInstance *testing.T) {
	requestedPages := []int{}
	pages := map[int][]hosting.RemoteRepository{
		1: {{Name: "alpha"}, {Name: "beta"}},
		2: {{Name: "gamma"}},
		4: {{Name: "unreachable"}},
	}

	repositories, collectError := hosting.CollectPages(context.Background(), func(_ context.Context, page int) ([]hosting.RemoteRepository, error) {
		requestedPages = append(requestedPages, page)
		return pages[page], nil
	})

	require.NoError(testInstance, collectError)
	require.Equal(testInstance, []int{1, 2, 3}, requestedPages)
	require.Len(testInstance, repositories, 3)
	require.Equal(testInstance, "gamma", repositories[2].Name)
}

func TestCollectPagesPropagatesFailure(testInstance *testing.T) {
	pageFailure := hosting.ApiError{Provider: hosting.ProviderGitHub, Operation: hosting.OperationListRepositories, StatusCode: http.StatusUnauthorized, Body: "Bad credentials"}

	repositories, collectError := hosting.CollectPages(context.Background(), func(_ context.Context, page int) ([]hosting.RemoteRepository, error) {
		if page == 2 {
			return nil, pageFailure
		}
		return []hosting.RemoteRepository{{Name: "alpha"}}, nil
	})

	require.Nil(testInstance, repositories)
	var apiError hosting.ApiError
	require.ErrorAs(testInstance, collectError, &apiError)
	require.Equal(testInstance, "github list repositories failed with status 401: Bad credentials", apiError.Error())
}

func TestCollectPagesEmptyListing(testInstance *testing.T) {
	repositories, collectError := hosting.CollectPages(context.Background(), func(context.Context, int) ([]hosting.RemoteRepository, error) {
		return nil, nil
	})
	require.NoError(testInstance, collectError)
	require.NotNil(testInstance, repositories)
	require.Empty(testInstance, repositories)
}

func TestFindRepositoryMatchesExactName(testInstance *testing.T) {
	repositories := []hosting.RemoteRepository{{Name: "Demo"}, {Name: "demo", Private: true}}

	repository, found := hosting.FindRepository(repositories, "demo")
	require.True(testInstance, found)
	require.True(testInstance, repository.Private)

	_, missing := hosting.FindRepository(repositories, "DEMO")
	require.False(testInstance, missing)
}

func TestRegistry(testInstance *testing.T) {
	registry := hosting.NewRegistry()
	registry.Register(hosting.ProviderName("Stub"), func(settings hosting.Settings) (hosting.Provider, error) {
		return stubProvider{settings: settings}, nil
	})
	registry.Register(hosting.ProviderName("alpha"), func(hosting.Settings) (hosting.Provider, error) {
		return nil, errors.New("not used")
	})

	require.Equal(testInstance, []string{"alpha", "stub"}, registry.Names())

	provider, creationError := registry.Create(hosting.ProviderName(" STUB "), hosting.Settings{Token: "token"})
	require.NoError(testInstance, creationError)
	require.Equal(testInstance, hosting.ProviderName("stub"), provider.Name())
	require.Equal(testInstance, "token", provider.(stubProvider).settings.Token)

	_, tokenError := registry.Create(hosting.ProviderName("stub"), hosting.Settings{})
	require.ErrorIs(testInstance, tokenError, hosting.ErrTokenRequired)

	_, unknownError := registry.Create(hosting.ProviderName("missing"), hosting.Settings{Token: "token"})
	require.ErrorAs(testInstance, unknownError, &hosting.UnknownProviderError{})
}

func TestSettingsResolution(testInstance *testing.T) {
	require.Equal(testInstance, "https://codeberg.org/", hosting.Settings{}.ResolveBaseURL("https://codeberg.org"))
	require.Equal(testInstance, "http://127.0.0.1:8080/", hosting.Settings{BaseURL: " http://127.0.0.1:8080 "}.ResolveBaseURL("https://codeberg.org/"))
	require.Same(testInstance, http.DefaultClient, hosting.Settings{}.ResolveHTTPClient())
}

func TestAuthorizedHTTPClientSendsTokenHeader(testInstance *testing.T) {
	receivedHeaders := make(chan string, 1)
	server := httptest.NewServer(http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
		receivedHeaders <- request.Header.Get("Authorization")
		responseWriter.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := hosting.Settings{Token: "secret", HTTPClient: server.Client()}.AuthorizedHTTPClient()
	response, requestError := client.Get(server.URL)
	require.NoError(testInstance, requestError)
	require.NoError(testInstance, response.Body.Close())
	require.Equal(testInstance, "token secret", <-receivedHeaders)
	require.NotSame(testInstance, server.Client(), client)
}
