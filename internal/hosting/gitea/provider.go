// Package gitea implements the hosting provider for Gitea compatible services such as Codeberg and Forgejo.
package gitea

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/temirov/giberg/internal/gitrepo"
	"github.com/temirov/giberg/internal/hosting"
)

const (
	// DefaultBaseURL is the Codeberg instance.
	DefaultBaseURL                    = "https://codeberg.org/"
	apiPrefixConstant                 = "api/v1/"
	userRepositoriesPathConstant      = "user/repos"
	currentUserPathConstant           = "user"
	repositoryPathTemplateConstant    = "repos/%s/%s"
	pageQueryParameterConstant        = "page"
	limitQueryParameterConstant       = "limit"
	contentTypeHeaderNameConstant     = "Content-Type"
	acceptHeaderNameConstant          = "Accept"
	jsonContentTypeConstant           = "application/json"
	repositoryURLTemplateConstant     = "%s%s/%s.git"
	requestBuildErrorTemplateConstant = "unable to build %s request: %w"
	decodeErrorTemplateConstant       = "unable to decode %s response: %w"
	errorBodyLimitConstant            = 4096
)

type apiUser struct {
	Login string `json:"login"`
}

type apiRepository struct {
	Name     string  `json:"name"`
	Private  bool    `json:"private"`
	CloneURL string  `json:"clone_url"`
	Owner    apiUser `json:"owner"`
}

type createRepositoryRequest struct {
	Name     string `json:"name"`
	Private  bool   `json:"private"`
	AutoInit bool   `json:"auto_init"`
}

type updateVisibilityRequest struct {
	Private bool `json:"private"`
}

// Provider talks to the Gitea REST API.
type Provider struct {
	httpClient         *http.Client
	baseURL            string
	token              string
	name               hosting.ProviderName
	statusExpectations hosting.StatusExpectations
}

// NewProvider constructs a Gitea provider reporting itself under name.
func NewProvider(name hosting.ProviderName, settings hosting.Settings) (*Provider, error) {
	if len(strings.TrimSpace(settings.Token)) == 0 {
		return nil, hosting.ErrTokenRequired
	}
	return &Provider{
		httpClient:         settings.AuthorizedHTTPClient(),
		baseURL:            settings.ResolveBaseURL(DefaultBaseURL),
		token:              settings.Token,
		name:               name,
		statusExpectations: hosting.RESTStatusExpectations,
	}, nil
}

// CodebergFactory builds a provider registered as codeberg.
func CodebergFactory(settings hosting.Settings) (hosting.Provider, error) {
	return NewProvider(hosting.ProviderCodeberg, settings)
}

// Name identifies the provider.
func (provider *Provider) Name() hosting.ProviderName {
	return provider.name
}

// ListRepositories returns every repository owned by the authenticated user.
func (provider *Provider) ListRepositories(executionContext context.Context) ([]hosting.RemoteRepository, error) {
	return hosting.CollectPages(executionContext, provider.listPage)
}

func (provider *Provider) listPage(executionContext context.Context, page int) ([]hosting.RemoteRepository, error) {
	query := url.Values{}
	query.Set(pageQueryParameterConstant, strconv.Itoa(page))
	query.Set(limitQueryParameterConstant, strconv.Itoa(hosting.DefaultPageSize))

	var repositories []apiRepository
	requestError := provider.do(executionContext, hosting.OperationListRepositories, http.MethodGet, userRepositoriesPathConstant+"?"+query.Encode(), nil, provider.statusExpectations.List, &repositories)
	if requestError != nil {
		return nil, requestError
	}

	remoteRepositories := make([]hosting.RemoteRepository, 0, len(repositories))
	for _, repository := range repositories {
		remoteRepositories = append(remoteRepositories, repository.remote())
	}
	return remoteRepositories, nil
}

// CurrentUsername returns the login of the authenticated user.
func (provider *Provider) CurrentUsername(executionContext context.Context) (string, error) {
	var user apiUser
	requestError := provider.do(executionContext, hosting.OperationCurrentUser, http.MethodGet, currentUserPathConstant, nil, provider.statusExpectations.User, &user)
	if requestError != nil {
		return "", requestError
	}
	return user.Login, nil
}

// CreateRepository creates an empty repository under the authenticated user.
func (provider *Provider) CreateRepository(executionContext context.Context, name string, private bool) (hosting.RemoteRepository, error) {
	var repository apiRepository
	payload := createRepositoryRequest{Name: name, Private: private, AutoInit: false}
	requestError := provider.do(executionContext, hosting.OperationCreateRepository, http.MethodPost, userRepositoriesPathConstant, payload, provider.statusExpectations.Create, &repository)
	if requestError != nil {
		return hosting.RemoteRepository{}, requestError
	}
	return repository.remote(), nil
}

// UpdateRepositoryVisibility sets the private flag of owner/name.
func (provider *Provider) UpdateRepositoryVisibility(executionContext context.Context, owner string, name string, private bool) error {
	return provider.do(executionContext, hosting.OperationUpdateVisibility, http.MethodPatch, repositoryPath(owner, name), updateVisibilityRequest{Private: private}, provider.statusExpectations.Update, nil)
}

// DeleteRepository removes owner/name.
func (provider *Provider) DeleteRepository(executionContext context.Context, owner string, name string) error {
	return provider.do(executionContext, hosting.OperationDeleteRepository, http.MethodDelete, repositoryPath(owner, name), nil, provider.statusExpectations.Delete, nil)
}

// AuthenticatedURL returns https://<username>:<token>@<host>/<username>/<name>.git.
func (provider *Provider) AuthenticatedURL(repository hosting.RemoteRepository, username string) (string, error) {
	repositoryURL := fmt.Sprintf(repositoryURLTemplateConstant, provider.baseURL, username, repository.Name)
	return gitrepo.EmbedCredentials(repositoryURL, gitrepo.Credentials{Username: username, Password: provider.token})
}

func repositoryPath(owner string, name string) string {
	return fmt.Sprintf(repositoryPathTemplateConstant, url.PathEscape(owner), url.PathEscape(name))
}

func (provider *Provider) do(executionContext context.Context, operation string, method string, path string, payload any, expectedStatus int, target any) error {
	var requestBody io.Reader
	if payload != nil {
		encodedPayload, encodeError := json.Marshal(payload)
		if encodeError != nil {
			return fmt.Errorf(requestBuildErrorTemplateConstant, operation, encodeError)
		}
		requestBody = bytes.NewReader(encodedPayload)
	}

	request, requestError := http.NewRequestWithContext(executionContext, method, provider.baseURL+apiPrefixConstant+path, requestBody)
	if requestError != nil {
		return fmt.Errorf(requestBuildErrorTemplateConstant, operation, requestError)
	}
	request.Header.Set(acceptHeaderNameConstant, jsonContentTypeConstant)
	if payload != nil {
		request.Header.Set(contentTypeHeaderNameConstant, jsonContentTypeConstant)
	}

	response, responseError := provider.httpClient.Do(request)
	if responseError != nil {
		return hosting.RequestError{Provider: provider.name, Operation: operation, Cause: responseError}
	}
	defer response.Body.Close()

	if response.StatusCode != expectedStatus {
		errorBody, _ := io.ReadAll(io.LimitReader(response.Body, errorBodyLimitConstant))
		return hosting.UnexpectedStatus(provider.name, operation, response.StatusCode, expectedStatus, string(errorBody))
	}
	if target == nil {
		return nil
	}
	if decodeError := json.NewDecoder(response.Body).Decode(target); decodeError != nil {
		return fmt.Errorf(decodeErrorTemplateConstant, operation, decodeError)
	}
	return nil
}

func (repository apiRepository) remote() hosting.RemoteRepository {
	return hosting.RemoteRepository{
		Name:     repository.Name,
		Owner:    repository.Owner.Login,
		CloneURL: repository.CloneURL,
		Private:  repository.Private,
	}
}
