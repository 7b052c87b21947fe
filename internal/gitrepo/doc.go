// Package gitrepo manipulates local working copies for mirroring.
//
// RepositoryManager clones, resets, pulls, configures remotes and force-pushes
// through the git executable, while remote inspection relies on go-git so no
// process is spawned for read-only checks. The remote URL helpers parse
// hosting URLs and embed credentials for authenticated transport.
package gitrepo
