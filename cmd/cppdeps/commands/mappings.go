package commands

import (
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/cppdeps/internal/app"
)

func (c *CLI) newMappingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mappings",
		Short: "List the effective dependency mapping table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := os.Getwd()
			if err != nil {
				return err
			}

			return c.app.Mappings(cmd.Context(), app.MappingsOptions{
				Dir:        dir,
				ConfigPath: c.v.GetString("config"),
				Format:     c.v.GetString("format"),
			})
		},
	}
	cmd.Flags().StringP("format", "o", "auto", "Output format: auto, table or json")
	return cmd
}
