package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/cppdeps/internal/app"
)

func (c *CLI) newLinkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link [dependencies...]",
		Short: "Print CMake link statements for resolved dependencies",
		Long: "Resolve the manifest and print one target_link_libraries statement per resolved target.\n" +
			"Without arguments every available dependency is linked; unresolved names are skipped with a warning.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := c.projectOptions()
			if err != nil {
				return err
			}

			_, err = c.app.Link(cmd.Context(), app.LinkOptions{
				ProjectOptions: project,
				Consumer:       c.v.GetString("consumer"),
				Visibility:     c.v.GetString("visibility"),
				Names:          args,
			})
			return err
		},
	}
	addProjectFlags(cmd)
	cmd.Flags().String("consumer", "", "CMake target that receives the link statements")
	cmd.Flags().String("visibility", "", "Link visibility: private, public or interface (default: private)")
	return cmd
}
