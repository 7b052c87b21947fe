// Package scanner inspects the local directory that holds repository working copies.
package scanner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/temirov/giberg/internal/repos/shared"
)

const (
	gitMetadataDirectoryNameConstant = ".git"
	hiddenEntryPrefixConstant        = "."
	rootDirectoryPermissionsConstant = 0o755
	rootNotFoundTemplateConstant     = "%w: %s"
	readRootErrorTemplateConstant    = "unable to read %s: %w"
	inspectErrorTemplateConstant     = "unable to inspect %s: %w"
	createRootErrorTemplateConstant  = "unable to create %s: %w"
)

// ErrRootNotFound indicates the root directory does not exist.
var ErrRootNotFound = errors.New("root directory not found")

// Scanner inspects working copies below a root directory.
type Scanner struct {
	fileSystem    afero.Fs
	privateMarker string
}

// NewScanner constructs a Scanner. An empty marker falls back to shared.DefaultPrivateMarkerConstant.
func NewScanner(fileSystem afero.Fs, privateMarker string) *Scanner {
	if fileSystem == nil {
		fileSystem = afero.NewOsFs()
	}
	trimmedMarker := strings.TrimSpace(privateMarker)
	if len(trimmedMarker) == 0 {
		trimmedMarker = shared.DefaultPrivateMarkerConstant
	}
	return &Scanner{fileSystem: fileSystem, privateMarker: trimmedMarker}
}

// ListRepositoryNames returns the sorted names of visible directories under root.
func (scanner *Scanner) ListRepositoryNames(root string) ([]string, error) {
	rootExists, existsError := afero.DirExists(scanner.fileSystem, root)
	if existsError != nil {
		return nil, fmt.Errorf(readRootErrorTemplateConstant, root, existsError)
	}
	if !rootExists {
		return nil, fmt.Errorf(rootNotFoundTemplateConstant, ErrRootNotFound, root)
	}

	entries, readError := afero.ReadDir(scanner.fileSystem, root)
	if readError != nil {
		return nil, fmt.Errorf(readRootErrorTemplateConstant, root, readError)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), hiddenEntryPrefixConstant) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// IsVersionControlled reports whether path contains a .git directory.
func (scanner *Scanner) IsVersionControlled(path string) (bool, error) {
	return afero.DirExists(scanner.fileSystem, filepath.Join(path, gitMetadataDirectoryNameConstant))
}

// IsMarkedPrivate reports whether the private marker file exists in path.
func (scanner *Scanner) IsMarkedPrivate(path string) (bool, error) {
	return afero.Exists(scanner.fileSystem, filepath.Join(path, scanner.privateMarker))
}

// Inspect describes root/name without modifying anything.
func (scanner *Scanner) Inspect(root string, name string) (shared.LocalRepository, error) {
	repositoryPath := filepath.Join(root, name)
	repository := shared.LocalRepository{Name: name, Path: repositoryPath}

	info, statError := scanner.fileSystem.Stat(repositoryPath)
	if errors.Is(statError, os.ErrNotExist) {
		return repository, nil
	}
	if statError != nil {
		return repository, fmt.Errorf(inspectErrorTemplateConstant, repositoryPath, statError)
	}
	repository.Exists = info.IsDir()
	if !repository.Exists {
		return repository, nil
	}

	versionControlled, versionControlError := scanner.IsVersionControlled(repositoryPath)
	if versionControlError != nil {
		return repository, fmt.Errorf(inspectErrorTemplateConstant, repositoryPath, versionControlError)
	}
	markedPrivate, markerError := scanner.IsMarkedPrivate(repositoryPath)
	if markerError != nil {
		return repository, fmt.Errorf(inspectErrorTemplateConstant, repositoryPath, markerError)
	}
	repository.VersionControlled = versionControlled
	repository.MarkedPrivate = markedPrivate
	return repository, nil
}

// EnsureRoot creates root and its parents when missing.
func (scanner *Scanner) EnsureRoot(root string) error {
	if mkdirError := scanner.fileSystem.MkdirAll(root, rootDirectoryPermissionsConstant); mkdirError != nil {
		return fmt.Errorf(createRootErrorTemplateConstant, root, mkdirError)
	}
	return nil
}
