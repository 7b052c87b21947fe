// Package ui renders what a mirror run shows to a person: colored status
// lines per repository, console sentences for git commands, and repository
// listings as tables, YAML or JSON.
package ui
