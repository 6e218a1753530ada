package cli

import (
	"errors"
	"fmt"

	"github.com/ovel-dev/ovel-js/internal/config"
	"github.com/ovel-dev/ovel-js/internal/scaffold"
)

const (
	exitOK      = 0
	exitUsage   = 1 // bad input or a conflict with existing state; nothing was written
	exitFailure = 2 // I/O or parse failure; earlier writes may remain
)

var (
	// errUsage marks command-line mistakes.
	errUsage = errors.New("usage error")

	// errUsageShown is returned after usage text was printed; no further
	// diagnostic is needed.
	errUsageShown = fmt.Errorf("%w: usage shown", errUsage)
)

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errUsage),
		errors.Is(err, scaffold.ErrInvalidName),
		errors.Is(err, scaffold.ErrInvalidVersion),
		errors.Is(err, scaffold.ErrPackageExists),
		errors.Is(err, config.ErrUnknownKey),
		errors.Is(err, config.ErrInvalidValue):
		return exitUsage
	default:
		return exitFailure
	}
}
