// Package preflight checks that the library's directories, database, lock,
// and stored image files are usable. `qbank check` prints the results.
package preflight
