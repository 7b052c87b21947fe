// Package gitlab implements the hosting provider for GitLab.
package gitlab

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	gl "gitlab.com/gitlab-org/api/client-go"

	"github.com/temirov/giberg/internal/gitrepo"
	"github.com/temirov/giberg/internal/hosting"
)

const (
	// DefaultBaseURL is the public GitLab instance.
	DefaultBaseURL                     = "https://gitlab.com/"
	oauthUsernameConstant              = "oauth2"
	projectIdentifierSeparatorConstant = "/"
	clientCreateErrorTemplateConstant  = "unable to create gitlab client: %w"
)

// StatusExpectations reflects that GitLab schedules project deletion and answers 202.
var StatusExpectations = hosting.StatusExpectations{
	List:   http.StatusOK,
	User:   http.StatusOK,
	Create: http.StatusCreated,
	Update: http.StatusOK,
	Delete: http.StatusAccepted,
}

// Provider talks to the GitLab REST API through the official client.
type Provider struct {
	client             *gl.Client
	token              string
	statusExpectations hosting.StatusExpectations
}

// NewProvider constructs a GitLab provider. The client is configured without retries.
func NewProvider(settings hosting.Settings) (*Provider, error) {
	if len(strings.TrimSpace(settings.Token)) == 0 {
		return nil, hosting.ErrTokenRequired
	}
	client, clientError := gl.NewClient(
		settings.Token,
		gl.WithBaseURL(settings.ResolveBaseURL(DefaultBaseURL)),
		gl.WithHTTPClient(settings.ResolveHTTPClient()),
		gl.WithCustomRetryMax(0),
	)
	if clientError != nil {
		return nil, fmt.Errorf(clientCreateErrorTemplateConstant, clientError)
	}
	return &Provider{client: client, token: settings.Token, statusExpectations: StatusExpectations}, nil
}

// Factory adapts NewProvider to hosting.Factory.
func Factory(settings hosting.Settings) (hosting.Provider, error) {
	return NewProvider(settings)
}

// Name identifies the provider.
func (provider *Provider) Name() hosting.ProviderName {
	return hosting.ProviderGitLab
}

// ListRepositories returns every project owned by the authenticated user.
func (provider *Provider) ListRepositories(executionContext context.Context) ([]hosting.RemoteRepository, error) {
	return hosting.CollectPages(executionContext, provider.listPage)
}

func (provider *Provider) listPage(executionContext context.Context, page int) ([]hosting.RemoteRepository, error) {
	options := &gl.ListProjectsOptions{
		ListOptions: gl.ListOptions{Page: int64(page), PerPage: hosting.DefaultPageSize},
		Owned:       gl.Ptr(true),
	}
	projects, response, listError := provider.client.Projects.ListProjects(options, gl.WithContext(executionContext))
	if checkError := provider.check(hosting.OperationListRepositories, provider.statusExpectations.List, response, listError); checkError != nil {
		return nil, checkError
	}

	repositories := make([]hosting.RemoteRepository, 0, len(projects))
	for _, project := range projects {
		repositories = append(repositories, convertProject(project))
	}
	return repositories, nil
}

// CurrentUsername returns the username of the authenticated user.
func (provider *Provider) CurrentUsername(executionContext context.Context) (string, error) {
	user, response, userError := provider.client.Users.CurrentUser(gl.WithContext(executionContext))
	if checkError := provider.check(hosting.OperationCurrentUser, provider.statusExpectations.User, response, userError); checkError != nil {
		return "", checkError
	}
	return user.Username, nil
}

// CreateRepository creates an empty project in the user's namespace.
func (provider *Provider) CreateRepository(executionContext context.Context, name string, private bool) (hosting.RemoteRepository, error) {
	options := &gl.CreateProjectOptions{
		Name:                 gl.Ptr(name),
		Path:                 gl.Ptr(name),
		Visibility:           gl.Ptr(visibilityFor(private)),
		InitializeWithReadme: gl.Ptr(false),
	}
	project, response, createError := provider.client.Projects.CreateProject(options, gl.WithContext(executionContext))
	if checkError := provider.check(hosting.OperationCreateRepository, provider.statusExpectations.Create, response, createError); checkError != nil {
		return hosting.RemoteRepository{}, checkError
	}
	return convertProject(project), nil
}

// UpdateRepositoryVisibility switches owner/name between private and public.
func (provider *Provider) UpdateRepositoryVisibility(executionContext context.Context, owner string, name string, private bool) error {
	options := &gl.EditProjectOptions{Visibility: gl.Ptr(visibilityFor(private))}
	_, response, editError := provider.client.Projects.EditProject(projectIdentifier(owner, name), options, gl.WithContext(executionContext))
	return provider.check(hosting.OperationUpdateVisibility, provider.statusExpectations.Update, response, editError)
}

// DeleteRepository schedules owner/name for deletion.
func (provider *Provider) DeleteRepository(executionContext context.Context, owner string, name string) error {
	response, deleteError := provider.client.Projects.DeleteProject(projectIdentifier(owner, name), &gl.DeleteProjectOptions{}, gl.WithContext(executionContext))
	return provider.check(hosting.OperationDeleteRepository, provider.statusExpectations.Delete, response, deleteError)
}

// AuthenticatedURL embeds oauth2:<token> into the project's HTTP URL.
func (provider *Provider) AuthenticatedURL(repository hosting.RemoteRepository, _ string) (string, error) {
	return gitrepo.EmbedCredentials(repository.CloneURL, gitrepo.Credentials{Username: oauthUsernameConstant, Password: provider.token})
}

func (provider *Provider) check(operation string, expectedStatus int, response *gl.Response, requestError error) error {
	if response == nil || response.Response == nil {
		if requestError == nil {
			return nil
		}
		return hosting.RequestError{Provider: hosting.ProviderGitLab, Operation: operation, Cause: requestError}
	}

	body := ""
	var errorResponse *gl.ErrorResponse
	if errors.As(requestError, &errorResponse) {
		body = errorResponse.Message
	} else if requestError != nil {
		body = requestError.Error()
	}
	if requestError != nil && response.StatusCode == expectedStatus {
		return hosting.RequestError{Provider: hosting.ProviderGitLab, Operation: operation, Cause: requestError}
	}
	return hosting.UnexpectedStatus(hosting.ProviderGitLab, operation, response.StatusCode, expectedStatus, body)
}

func projectIdentifier(owner string, name string) string {
	return owner + projectIdentifierSeparatorConstant + name
}

func visibilityFor(private bool) gl.VisibilityValue {
	if private {
		return gl.PrivateVisibility
	}
	return gl.PublicVisibility
}

func convertProject(project *gl.Project) hosting.RemoteRepository {
	owner := ""
	if project.Namespace != nil {
		owner = project.Namespace.FullPath
	}
	return hosting.RemoteRepository{
		Name:     project.Path,
		Owner:    owner,
		CloneURL: project.HTTPURLToRepo,
		Private:  project.Visibility != gl.PublicVisibility,
	}
}
