// Package hosting defines the capability contract shared by git hosting
// providers: listing the authenticated user's repositories, resolving the
// current user, creating repositories, changing visibility and deleting them.
//
// Provider implementations live in subpackages and are assembled through a
// Registry so reconcilers never depend on a concrete hosting service.
package hosting
