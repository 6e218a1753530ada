package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ovel-dev/ovel-js/internal/branding"
	"github.com/ovel-dev/ovel-js/internal/config"
	"github.com/ovel-dev/ovel-js/internal/scaffold"
)

func newNewCmd(stdout io.Writer, logger *log.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new <package-name>",
		Short: "Scaffold a new workspace package",
		Long: fmt.Sprintf(`Create packages/<package-name> with package.json, tsconfig.json and
src/index.ts, and add it to the root tsconfig.json references.

Example:
  %s new my-package`, branding.CLIName()),
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || args[0] == "" {
				printNewUsage(stdout)
				return errUsageShown
			}
			if len(args) > 1 {
				return fmt.Errorf("%w: expected one package name, got %d", errUsage, len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			// Reject bad names before touching the filesystem.
			if err := scaffold.ValidateName(name); err != nil {
				return withExample(err)
			}

			settings, err := config.Load()
			if err != nil {
				return err
			}
			data := scaffold.NewPackageData(name, settings)
			logger.Debug("resolved workspace", "root", settings.Root, "package", data.Dir)

			result, err := scaffold.Generate(data, stdout, logger)
			if err != nil {
				return err
			}

			printResult(stdout, data, result)
			return nil
		},
	}

	// A name starting with a hyphen parses as a flag; report it as a bad name.
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		if token := unknownFlagToken(err); token != "" && c.Flags().NArg() == 0 {
			return withExample(scaffold.ValidateName(token))
		}
		return withExample(fmt.Errorf("%w: %v", errUsage, err))
	})

	cmd.Flags().String("version", config.DefaultVersion, "Initial package version (semver)")
	cmd.Flags().String("scope", branding.Scope(), "npm scope for the package name")
	return cmd
}

func withExample(err error) error {
	return fmt.Errorf("%w\n  Example: %s new my-package", err, branding.CLIName())
}

// unknownFlagToken returns the argument pflag rejected as an unknown flag,
// or "" for any other flag error.
func unknownFlagToken(err error) string {
	msg := err.Error()
	switch {
	case strings.HasPrefix(msg, "unknown shorthand flag: "):
		if i := strings.LastIndex(msg, " in "); i >= 0 {
			return msg[i+len(" in "):]
		}
	case strings.HasPrefix(msg, "unknown flag: "):
		return strings.TrimPrefix(msg, "unknown flag: ")
	}
	return ""
}

func printNewUsage(w io.Writer) {
	fmt.Fprintf(w, "Usage: %s new <package-name>\n", branding.CLIName())
	fmt.Fprintf(w, "Example: %s new my-package\n", branding.CLIName())
}

func printResult(w io.Writer, data *scaffold.PackageData, result *scaffold.Result) {
	st := newStyles(w)

	fmt.Fprintf(w, "\n%s\n\n", st.success.Render(fmt.Sprintf("Package %s created!", data.PackageName)))

	if len(result.Warnings) > 0 {
		fmt.Fprintln(w, st.warning.Render("Warnings:"))
		for _, warning := range result.Warnings {
			fmt.Fprintf(w, "  - %s\n", warning)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, st.heading.Render("Next steps:"))
	fmt.Fprintf(w, "  1. cd %s\n", data.RefPath)
	fmt.Fprintln(w, "  2. Add dependencies if needed")
	fmt.Fprintf(w, "  3. Run %s from root\n\n", st.muted.Render(`"bun install"`))
}
