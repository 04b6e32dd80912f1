package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wesen/weave/internal/catalog"
	"github.com/wesen/weave/internal/config"
	"github.com/wesen/weave/internal/ui"
)

func projectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage stored workflow projects",
	}
	cmd.AddCommand(
		projectsListCmd(),
		projectsShowCmd(),
		projectsDeleteCmd(),
	)
	return cmd
}

func projectsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored workflows",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			store, err := openStore(cfg, nil)
			if err != nil {
				return err
			}

			ids, err := store.List()
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				fmt.Println("  No workflows stored yet. Start one with `weave edit <id>`.")
				return nil
			}

			rows := make([][]string, 0, len(ids))
			for _, id := range ids {
				g, err := store.Load(id)
				if err != nil {
					rows = append(rows, []string{id, "?", "?", ui.Bad.Sprint("unreadable")})
					continue
				}
				rows = append(rows, []string{
					id,
					fmt.Sprintf("%d", g.NodeCount()),
					fmt.Sprintf("%d", g.ConnectionCount()),
					ui.StatusIcon(true),
				})
			}
			ui.Table([]string{"ID", "NODES", "CONNECTIONS", ""}, rows)
			return nil
		},
	}
}

func projectsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <project-id>",
		Short: "Show a workflow's nodes and connections",
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

			ui.Banner(args[0])
			nodeRows := make([][]string, 0, g.NodeCount())
			for _, n := range g.Nodes() {
				nodeRows = append(nodeRows, []string{
					n.ID, catalog.Label(n.Type), n.Label,
					fmt.Sprintf("(%.0f, %.0f)", n.Pos.X, n.Pos.Y),
				})
			}
			ui.Table([]string{"ID", "TYPE", "LABEL", "POSITION"}, nodeRows)

			if g.ConnectionCount() > 0 {
				fmt.Println()
				connRows := make([][]string, 0, g.ConnectionCount())
				for _, c := range g.Connections() {
					connRows = append(connRows, []string{c.From, "→", c.To})
				}
				ui.Table([]string{"FROM", "", "TO"}, connRows)
			}
			return nil
		},
	}
}

func projectsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <project-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a stored workflow",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			store, err := openStore(cfg, nil)
			if err != nil {
				return err
			}
			if err := store.Delete(args[0]); err != nil {
				return err
			}
			ui.Good.Printf("  Deleted %s\n", args[0])
			return nil
		},
	}
}
