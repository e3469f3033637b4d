// Package tilestore implements the filesystem tile store and work
// queue of spec.md §4.11: per-path advisory locking (with a --nolock
// override), point-set (*.pts) read/write, and the append-only job
// queue with its sibling .seek cursor file.
//
// No file-locking library appears anywhere in the retrieved example
// corpus, so this package locks directly via the standard library's
// syscall.Flock (see DESIGN.md).
package tilestore
