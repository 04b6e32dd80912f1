package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wesen/weave/internal/config"
	"github.com/wesen/weave/internal/wire"
)

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <project-id>",
		Short: "Print a workflow's backend payload as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			store, err := openStore(cfg, nil)
			if err != nil {
				return err
			}

			g, err := store.Load(args[0])
			if err != nil {
				return err
			}

			data, err := wire.Marshal(args[0], g)
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	}
}
