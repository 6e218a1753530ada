// Package config resolves workspace settings for the ovel CLI. Values come
// from built-in defaults, an optional .ovel.yaml at the workspace root,
// OVEL_* environment variables and command-line flags, in increasing order
// of precedence.
package config
