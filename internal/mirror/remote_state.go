package mirror

import (
	"context"
	"strings"

	"github.com/temirov/giberg/internal/hosting"
)

// remoteState caches provider lookups for the duration of one run.
type remoteState struct {
	provider     hosting.Provider
	repositories []hosting.RemoteRepository
	listed       bool
	username     string
}

func newRemoteState(provider hosting.Provider) *remoteState {
	return &remoteState{provider: provider}
}

func (state *remoteState) list(executionContext context.Context) ([]hosting.RemoteRepository, error) {
	if state.listed {
		return state.repositories, nil
	}
	repositories, listError := state.provider.ListRepositories(executionContext)
	if listError != nil {
		return nil, listError
	}
	state.repositories = repositories
	state.listed = true
	return state.repositories, nil
}

func (state *remoteState) find(executionContext context.Context, name string) (hosting.RemoteRepository, bool, error) {
	repositories, listError := state.list(executionContext)
	if listError != nil {
		return hosting.RemoteRepository{}, false, listError
	}
	repository, found := hosting.FindRepository(repositories, name)
	return repository, found, nil
}

// findOwned matches name among the repositories of owner. A listed repository without an owner belongs to the
// authenticated user.
func (state *remoteState) findOwned(executionContext context.Context, name string, owner string) (hosting.RemoteRepository, bool, error) {
	repositories, listError := state.list(executionContext)
	if listError != nil {
		return hosting.RemoteRepository{}, false, listError
	}
	for _, repository := range repositories {
		if repository.Name == name && ownedBy(repository, owner) {
			return repository, true, nil
		}
	}
	return hosting.RemoteRepository{}, false, nil
}

func ownedBy(repository hosting.RemoteRepository, owner string) bool {
	return len(repository.Owner) == 0 || strings.EqualFold(repository.Owner, owner)
}

func (state *remoteState) currentUsername(executionContext context.Context) (string, error) {
	if len(state.username) > 0 {
		return state.username, nil
	}
	username, userError := state.provider.CurrentUsername(executionContext)
	if userError != nil {
		return "", userError
	}
	state.username = username
	return state.username, nil
}

func (state *remoteState) remember(repository hosting.RemoteRepository) {
	if !state.listed {
		return
	}
	for index := range state.repositories {
		if state.repositories[index].Name == repository.Name && ownedBy(state.repositories[index], repository.Owner) {
			state.repositories[index] = repository
			return
		}
	}
	state.repositories = append(state.repositories, repository)
}

func (state *remoteState) forget(owner string, name string) {
	if !state.listed {
		return
	}
	remaining := state.repositories[:0]
	for _, repository := range state.repositories {
		if repository.Name != name || !ownedBy(repository, owner) {
			remaining = append(remaining, repository)
		}
	}
	state.repositories = remaining
}
