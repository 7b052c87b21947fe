// Package mirror reconciles repositories between a hosting provider and a local root directory.
//
// Downloader clones or fast-forwards every remote repository into the root. Uploader creates or
// updates remote repositories from local working copies and force-pushes all branches. Deleter
// removes remote repositories. Each reconciler lists remote state at most once per run and checks
// for cancellation between repositories.
package mirror
