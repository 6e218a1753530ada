// Package cli defines the Cobra command tree for the ovel CLI. Each file
// registers one command with the root command. Commands delegate to internal
// packages for the work and only handle flags, output and exit codes.
package cli
