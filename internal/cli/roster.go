package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/cornhole/internal/api/request"
	"github.com/mcoot/cornhole/internal/api/response"
	"github.com/mcoot/cornhole/internal/services/roster"
)

func newRosterCmd() *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "roster",
		Short: "List known players",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/roster"
			if refresh {
				path += "?refresh=true"
			}

			var result roster.Result
			if err := client.Get(cmd.Context(), path, &result); err != nil {
				return err
			}

			out.Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "Fetch the roster from the record store first")

	return cmd
}

func newMetaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meta",
		Short: "Per-user metadata commands",
	}

	cmd.AddCommand(newMetaGetCmd())
	cmd.AddCommand(newMetaSetCmd())

	return cmd
}

func newMetaGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <user-id>",
		Short: "Show a user's metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Metadata

			if err := client.Get(cmd.Context(), "/users/"+escape(args[0])+"/metadata", &result); err != nil {
				return err
			}

			out.Print(result)
			return nil
		},
	}
}

func newMetaSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <user-id> <key=value>...",
		Short: "Merge keys into a user's metadata",
		Long: `Merge keys into a user's metadata. Values that parse as JSON are stored
as such, so redirectcount=3 stores a number and flag=true a boolean.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := parseMetadata(args[1:])
			if err != nil {
				return err
			}

			var result response.Metadata
			if err := client.Patch(cmd.Context(), "/users/"+escape(args[0])+"/metadata", patch, &result); err != nil {
				return err
			}

			out.Print(result)
			return nil
		},
	}
}

func parseMetadata(pairs []string) (request.MetadataPatch, error) {
	patch := request.MetadataPatch{}
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid metadata %q: want key=value", pair)
		}

		var value any
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			value = raw
		}
		patch[key] = value
	}
	return patch, nil
}
