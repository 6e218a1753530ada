// Package manifest defines the package manifest (package.json) and build
// configuration (tsconfig.json) generated for new workspace packages. It
// renders them as indented JSON, parses them back, and validates them
// against embedded JSON Schemas.
package manifest
