package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/cornhole/internal/api/request"
	"github.com/mcoot/cornhole/internal/api/response"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Login session commands",
	}

	cmd.AddCommand(newSessionShowCmd())
	cmd.AddCommand(newSessionLoginCmd())
	cmd.AddCommand(newSessionLogoutCmd())
	cmd.AddCommand(newSessionBoardCmd())

	return cmd
}

func newSessionShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the logged-in player",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Session

			if err := client.Get(cmd.Context(), "/session", &result); err != nil {
				return err
			}

			out.Print(result)
			return nil
		},
	}
}

func newSessionLoginCmd() *cobra.Command {
	var passcode string

	cmd := &cobra.Command{
		Use:   "login <name>",
		Short: "Log in against the record store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if passcode == "" {
				return fmt.Errorf("--passcode is required")
			}

			req := request.LoginRequest{Name: args[0], Passcode: passcode}
			var result response.Session

			if err := client.Post(cmd.Context(), "/session/login", req, &result); err != nil {
				return err
			}

			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&passcode, "passcode", "", "Passcode (required)")
	_ = cmd.MarkFlagRequired("passcode")

	return cmd
}

func newSessionLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the cached login",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post(cmd.Context(), "/session/logout", nil, nil); err != nil {
				return err
			}

			out.PrintMessage("Logged out")
			return nil
		},
	}
}

func newSessionBoardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "board <name>",
		Short: "Change the logged-in player's board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := request.BoardRequest{Board: args[0]}
			var result response.Session

			if err := client.Put(cmd.Context(), "/session/board", req, &result); err != nil {
				return err
			}

			out.Print(result)
			return nil
		},
	}
}
