package cli

import (
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/wesen/weave/internal/config"
	"github.com/wesen/weave/internal/project"
	"github.com/wesen/weave/internal/ui"
	"github.com/wesen/weave/internal/weaveui"
	"github.com/wesen/weave/pkg/flowgraph"
)

func editCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit [project-id]",
		Short: "Open a workflow in the canvas editor",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := "untitled"
			if len(args) == 1 {
				id = args[0]
			}

			cfg := config.Load()
			logger := newLogger(cfg)
			defer logger.Sync()

			store, err := openStore(cfg, logger)
			if err != nil {
				return err
			}

			g, err := store.Load(id)
			if errors.Is(err, project.ErrNotFound) {
				g = flowgraph.New()
			} else if err != nil {
				return err
			}

			m := weaveui.NewModel(id, g, store, cfg, logger)
			p := tea.NewProgram(m)
			if _, err := p.Run(); err != nil {
				ui.Bad.Printf("editor failed: %v\n", err)
				return fmt.Errorf("run editor: %w", err)
			}
			return nil
		},
	}
}
