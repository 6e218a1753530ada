// Package scaffold generates new workspace packages. It powers the "ovel new"
// command: it validates the package name, writes package.json, tsconfig.json
// and src/index.ts into packages/<name>, and registers the package in the
// root tsconfig.json references.
package scaffold
