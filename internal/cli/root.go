package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ovel-dev/ovel-js/internal/branding"
	"github.com/ovel-dev/ovel-js/internal/config"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// flagKeys maps flag names to the config keys they override.
var flagKeys = map[string]string{
	"root":    config.KeyRoot,
	"scope":   config.KeyScope,
	"version": config.KeyVersion,
}

func newRootCmd(stdout io.Writer, logger *log.Logger) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   branding.CLIName(),
		Short: branding.Description(),
		Long: branding.DisplayName() + ` scaffolds packages in the workspace and keeps the root
tsconfig.json references in sync with them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				logger.SetLevel(log.DebugLevel)
			}
			for name, key := range flagKeys {
				if f := cmd.Flags().Lookup(name); f != nil {
					if err := viper.BindPFlag(key, f); err != nil {
						return fmt.Errorf("binding flag --%s: %w", name, err)
					}
				}
			}
			return nil
		},
	}
	cmd.SetOut(stdout)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", errUsage, err)
	})

	cmd.PersistentFlags().String("root", "", "Workspace root (env "+branding.EnvVar(config.KeyRoot)+"; default: nearest directory with "+config.DefaultBaseConfig+")")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug details to stderr")

	cmd.AddCommand(
		newNewCmd(stdout, logger),
		newListCmd(stdout, logger),
		newConfigCmd(stdout),
		newVersionCmd(stdout),
	)
	return cmd
}

func newLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix: branding.CLIName(),
	})
}

// Execute runs the root command with build info injected via ldflags and
// returns the process exit code.
func Execute(version, commit, date string) int {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return run(os.Args[1:], os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) int {
	viper.Reset()
	logger := newLogger(stderr)

	cmd := newRootCmd(stdout, logger)
	cmd.SetArgs(args)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return exitOK
	}
	if !errors.Is(err, errUsageShown) {
		logger.Error(err)
	}
	return exitCode(err)
}
