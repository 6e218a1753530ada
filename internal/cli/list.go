package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ovel-dev/ovel-js/internal/config"
	"github.com/ovel-dev/ovel-js/internal/registry"
	"github.com/ovel-dev/ovel-js/utils"
)

func newListCmd(stdout io.Writer, logger *log.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List packages referenced by the root tsconfig.json",
		Long: `List every reference in the root tsconfig.json together with the package
it points at. References whose directory no longer exists are marked missing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load()
			if err != nil {
				return err
			}
			logger.Debug("reading registry", "file", settings.RegistryPath())

			refs, err := registry.Load(settings.RegistryPath())
			if err != nil {
				return err
			}
			if len(refs) == 0 {
				fmt.Fprintln(stdout, "No packages referenced.")
				return nil
			}

			st := newStyles(stdout)
			tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
			missing := 0
			for _, e := range registry.Resolve(settings.Root, refs) {
				switch {
				case e.Detached:
					missing++
					fmt.Fprintf(tw, "%s\t%s\n", e.Path, st.warning.Render("missing"))
				case utils.IsNonNullable(e.Package):
					fmt.Fprintf(tw, "%s\t%s@%s\n", e.Path, e.Package.Name, e.Package.Version)
				default:
					fmt.Fprintf(tw, "%s\t%s\n", e.Path, st.muted.Render("no package.json"))
				}
			}
			if err := tw.Flush(); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			if missing > 0 {
				logger.Warn("registry references missing directories", "count", missing)
			}
			return nil
		},
	}
}
