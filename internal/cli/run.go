package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wesen/weave/internal/config"
	"github.com/wesen/weave/internal/runner"
	"github.com/wesen/weave/internal/ui"
	"github.com/wesen/weave/internal/wire"
)

func runCmd() *cobra.Command {
	var backendURL string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "run <project-id>",
		Short: "Execute a workflow on the backend and stream events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if backendURL != "" {
				cfg.Backend.URL = backendURL
			}
			logger := newLogger(cfg)
			defer logger.Sync()

			store, err := openStore(cfg, logger)
			if err != nil {
				return err
			}

			g, err := store.Load(args[0])
			if err != nil {
				return err
			}
			if g.NodeCount() == 0 {
				return fmt.Errorf("workflow %s has no nodes", args[0])
			}

			ui.Banner(fmt.Sprintf("running %s (%d nodes)", args[0], g.NodeCount()))

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			payload := wire.Serialize(args[0], g)
			events, err := runner.Run(ctx, cfg.Backend.URL, payload, logger)
			for _, ev := range events {
				printEvent(ev)
			}
			if err != nil {
				return fmt.Errorf("run workflow: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&backendURL, "backend", "", "Backend websocket URL (overrides config)")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "Abort the run after this long")
	return cmd
}

func printEvent(ev runner.Event) {
	switch ev.Type {
	case runner.EventExecutionStarted, runner.EventWorkflowStarted:
		ui.Info.Printf("  ▶ %s started\n", ev.WorkflowID)
	case runner.EventNodeExecuted:
		fmt.Printf("  %s %s", ui.StatusIcon(true), ev.NodeID)
		if ev.Result != "" {
			ui.Subtle.Printf("  %s", ev.Result)
		}
		fmt.Println()
	case runner.EventExecutionError:
		ui.Bad.Printf("  ✗ %s: %s\n", ev.NodeID, ev.Error)
	case runner.EventWorkflowFinished:
		ui.Good.Println("  ■ finished")
	}
}
