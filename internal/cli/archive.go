package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/cornhole/internal/api/request"
	"github.com/mcoot/cornhole/internal/api/response"
	"github.com/mcoot/cornhole/internal/services/stats"
	"github.com/mcoot/cornhole/internal/services/upload"
)

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List archived games",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.History

			if err := client.Get(cmd.Context(), "/history", &result); err != nil {
				return err
			}

			out.Print(result)
			return nil
		},
	}
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <name>",
		Short: "Show archived statistics for a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result stats.Summary

			if err := client.Get(cmd.Context(), "/stats/"+escape(args[0]), &result); err != nil {
				return err
			}

			out.Print(result)
			return nil
		},
	}
}

func newUploadCmd() *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload archived games to the record store",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := request.UploadRequest{User: user}
			var result upload.Result

			if err := client.Post(cmd.Context(), "/sync/upload", req, &result); err != nil {
				return err
			}

			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Player to upload for; must be the logged-in player")

	return cmd
}
