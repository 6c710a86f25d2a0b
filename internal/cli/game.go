package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/cornhole/internal/api/request"
	"github.com/mcoot/cornhole/internal/api/response"
	"github.com/mcoot/cornhole/internal/model"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameShowCmd())
	cmd.AddCommand(newGameStartCmd())
	cmd.AddCommand(newGameThrowCmd())
	cmd.AddCommand(newGameRoundCmd())
	cmd.AddCommand(newGameEndCmd())
	cmd.AddCommand(newGameResetCmd())
	cmd.AddCommand(newGameRoundsCmd())

	return cmd
}

func newGameShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the game in progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Game

			if err := client.Get(cmd.Context(), "/game", &result); err != nil {
				return err
			}

			out.Print(result)
			return nil
		},
	}
}

func newGameStartCmd() *cobra.Command {
	var board string

	cmd := &cobra.Command{
		Use:   "start <player1> <player2>",
		Short: "Start a game between two players",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := request.StartGameRequest{
				Player1: args[0],
				Player2: args[1],
				Board:   board,
			}
			var result response.Game

			if err := client.Post(cmd.Context(), "/game/start", req, &result); err != nil {
				return err
			}

			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&board, "board", "", "Board name (defaults to the logged-in player's board)")

	return cmd
}

func newGameThrowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "throw <slot> <in|on|subtractIn|subtractOn>",
		Short: "Record a throw for player 1 or 2",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := strconv.Atoi(args[0])
			if err != nil || !model.Slot(slot).Valid() {
				return fmt.Errorf("slot must be 1 or 2")
			}

			kind, err := model.ParseThrowKind(args[1])
			if err != nil {
				return err
			}

			req := request.ThrowRequest{Slot: slot, Kind: string(kind)}
			var result response.ThrowResponse

			if err := client.Post(cmd.Context(), "/game/throw", req, &result); err != nil {
				return err
			}

			out.Print(result)
			return nil
		},
	}
}

func newGameRoundCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "round",
		Short: "End the current round",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.RoundResponse

			if err := client.Post(cmd.Context(), "/game/round", nil, &result); err != nil {
				return err
			}

			out.Print(result)
			return nil
		},
	}
}

func newGameEndCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "end",
		Short: "End the game and archive it",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result model.GameRecord

			if err := client.Post(cmd.Context(), "/game/end", nil, &result); err != nil {
				return err
			}

			out.Print(result)
			return nil
		},
	}
}

func newGameResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Abandon the game and return to setup",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Game

			if err := client.Post(cmd.Context(), "/game/reset", nil, &result); err != nil {
				return err
			}

			out.PrintMessage("Game reset")
			return nil
		},
	}
}

func newGameRoundsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rounds",
		Short: "List the rounds played so far",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Rounds

			if err := client.Get(cmd.Context(), "/game/rounds", &result); err != nil {
				return err
			}

			out.Print(result)
			return nil
		},
	}
}
