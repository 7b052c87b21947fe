// Package repos builds the mirror commands: download, upload, delete, sync and list.
// The mirroring commands resolve provider tokens, run their reconciler inside an interrupt scope and
// report progress through the colored console. list only prints the rendered listing.
package repos
