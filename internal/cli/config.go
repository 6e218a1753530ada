package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ovel-dev/ovel-js/internal/config"
)

func newConfigCmd(stdout io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read or change workspace settings",
		Long: fmt.Sprintf(`Read or change the settings stored in %s at the workspace root.

Keys: %v`, config.FilePath("<root>"), config.FileKeys),
	}

	cmd.AddCommand(
		newConfigSetCmd(stdout),
		newConfigGetCmd(stdout),
	)
	return cmd
}

func newConfigSetCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store a setting in the workspace config file",
		Args:  usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load()
			if err != nil {
				return err
			}
			if err := config.Set(settings.Root, args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(stdout, "Set %s = %s\n", args[0], args[1])
			return nil
		},
	}
}

func newConfigGetCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print the resolved value of a setting",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load()
			if err != nil {
				return err
			}
			value, err := settings.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, value)
			return nil
		},
	}
}

// usageArgs marks argument count errors as usage errors.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
		return nil
	}
}
