package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kingrea/packdocs/internal/stage"
	"github.com/kingrea/packdocs/internal/stages"
)

func newStagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stages",
		Short: "List the available document stages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg := stage.NewRegistry()
			stages.RegisterBuiltins(reg)
			for _, id := range reg.IDs() {
				s, err := reg.Resolve(id)
				if err != nil {
					return err
				}
				info := s.Info()
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", info.ID, info.Description)
			}
			return nil
		},
	}
}
