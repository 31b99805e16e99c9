package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-drift/gridpanel/cmd/gridpanel/internal/telemetry"
	"github.com/go-drift/gridpanel/cmd/gridpanel/internal/tui"
	"github.com/go-drift/gridpanel/pkg/items"
)

func init() {
	RegisterCommand(&Command{
		Name:  "tui",
		Short: "Browse the items in a terminal grid",
		Long: `Show the configured items (one million integers by default) in an
interactive terminal grid. Only the rows on screen are realized while
scrolling.

Keys:
  arrows, h/j/k/l   Move focus
  pgup/pgdn         Move one screen
  g/G               First/last item
  ?                 Toggle help
  q                 Quit`,
		Usage: "gridpanel tui",
		Run:   runTUI,
	})
}

func runTUI(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected argument %q\n\nUsage: gridpanel tui", args[0])
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	tracer, err := telemetry.New(ctx)
	if err != nil {
		return fmt.Errorf("failed to start tracing: %w", err)
	}
	defer tracer.Shutdown(ctx)

	model := tui.New(ctx, tui.Options{
		Source:   items.Range(cfg.Count),
		Label:    cfg.TUILabel,
		ItemSize: cfg.TUIItemSize,
		Spacing:  cfg.TUISpacing,
		Logger:   appLogger,
		Tracer:   tracer,
	})
	defer model.Close()

	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
