package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/cppdeps/internal/app"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve every manifest dependency and print the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			project, err := c.projectOptions()
			if err != nil {
				return err
			}

			return c.app.Resolve(cmd.Context(), app.ResolveOptions{
				ProjectOptions: project,
				Format:         c.v.GetString("format"),
			})
		},
	}
	addProjectFlags(cmd)
	cmd.Flags().StringP("format", "o", "auto", "Output format: auto, table or json")
	return cmd
}
