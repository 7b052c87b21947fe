// Package providers assembles the registry of built-in hosting providers.
package providers

import (
	"github.com/temirov/giberg/internal/hosting"
	"github.com/temirov/giberg/internal/hosting/gitea"
	"github.com/temirov/giberg/internal/hosting/github"
	"github.com/temirov/giberg/internal/hosting/gitlab"
)

// NewDefaultRegistry registers github, codeberg and gitlab.
func NewDefaultRegistry() *hosting.Registry {
	registry := hosting.NewRegistry()
	registry.Register(hosting.ProviderGitHub, github.Factory)
	registry.Register(hosting.ProviderCodeberg, gitea.CodebergFactory)
	registry.Register(hosting.ProviderGitLab, gitlab.Factory)
	return registry
}
