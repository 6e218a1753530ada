// Package registry reads and updates the root build configuration that lists
// every workspace package under "references". Updates rewrite the whole file
// but keep unrelated fields and their order intact.
package registry
