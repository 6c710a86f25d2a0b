package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/cornhole/internal/api/response"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Status

			if err := client.Get(cmd.Context(), "/health", &result); err != nil {
				return err
			}

			out.Print(result)
			return nil
		},
	}
}
