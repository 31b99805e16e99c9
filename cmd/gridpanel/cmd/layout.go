package cmd

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/gridpanel/cmd/gridpanel/internal/config"
	"github.com/go-drift/gridpanel/cmd/gridpanel/internal/telemetry"
	"github.com/go-drift/gridpanel/pkg/graphics"
	"github.com/go-drift/gridpanel/pkg/items"
	"github.com/go-drift/gridpanel/pkg/layout"
	"github.com/go-drift/gridpanel/pkg/text"
	"github.com/go-drift/gridpanel/pkg/virtualizing"
)

func init() {
	RegisterCommand(&Command{
		Name:  "layout",
		Short: "Print one layout pass as YAML",
		Long: `Run a measure and arrange pass over the configured items and print the
column layout, the realized window and every realized container.

Labels are measured with the built-in 7x13 bitmap font, so sizes are in
pixels. Values not given on the command line come from gridpanel.yaml.`,
		Usage: "gridpanel layout [--y N] [--width N] [--height N] [--count N] [--item-size N] [--spacing N]",
		Run:   runLayout,
	})
}

// LayoutReport is the YAML document printed by the layout command.
type LayoutReport struct {
	Items        int                `yaml:"items"`
	Viewport     RectReport         `yaml:"viewport"`
	Columns      int                `yaml:"columns"`
	ColumnWidth  float64            `yaml:"columnWidth"`
	RowHeight    float64            `yaml:"rowHeight"`
	ExtentHeight float64            `yaml:"extentHeight"`
	Window       *WindowReport      `yaml:"window,omitempty"`
	Containers   []ContainerReport  `yaml:"containers"`
	Stats        virtualizing.Stats `yaml:"stats"`
}

// RectReport is a rectangle in left/top/width/height form.
type RectReport struct {
	Left   float64 `yaml:"left"`
	Top    float64 `yaml:"top"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// WindowReport is the realized index range.
type WindowReport struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
}

// ContainerReport describes one realized container.
type ContainerReport struct {
	Index  int        `yaml:"index"`
	Label  string     `yaml:"label"`
	Bounds RectReport `yaml:"bounds"`
}

func rectReport(r graphics.Rect) RectReport {
	return RectReport{Left: r.Left, Top: r.Top, Width: r.Width(), Height: r.Height()}
}

func runLayout(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyLayoutFlags(cfg, args); err != nil {
		return err
	}

	ctx := context.Background()
	tracer, err := telemetry.New(ctx)
	if err != nil {
		return fmt.Errorf("failed to start tracing: %w", err)
	}
	defer tracer.Shutdown(ctx)

	report := layoutReport(ctx, cfg, tracer)
	out, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode layout: %w", err)
	}
	_, err = stdout.Write(out)
	return err
}

// layoutReport runs one pass for cfg and collects the result.
func layoutReport(ctx context.Context, cfg *config.Resolved, tracer *telemetry.Tracer) *LayoutReport {
	owner := &layout.PipelineOwner{}
	labels := make(map[layout.Container]string)
	factory := virtualizing.FactoryFunc(func(item any, _ int) layout.Container {
		label := text.NewLabel(fmt.Sprintf(cfg.Label, item), text.FaceMeasurer{})
		label.Padding = 4
		labels[label] = label.Text
		return label
	})

	panel := virtualizing.New(items.Range(cfg.Count), factory,
		virtualizing.WithItemSize(cfg.ItemSize),
		virtualizing.WithSpacing(cfg.Spacing),
		virtualizing.WithPipelineOwner(owner),
		virtualizing.WithLogger(appLogger),
	)
	defer panel.Close()

	viewport := graphics.RectFromLTWH(0, cfg.ScrollY, cfg.Width, cfg.Height)
	panel.SetViewport(viewport)
	tracer.LayoutPass(ctx, owner, panel, graphics.Unbounded(cfg.Width))

	report := &LayoutReport{
		Items:        panel.ItemCount(),
		Viewport:     rectReport(viewport),
		Columns:      panel.Columns(),
		ColumnWidth:  panel.ColumnWidth(),
		RowHeight:    panel.RowHeight(),
		ExtentHeight: panel.ExtentHeight(),
		Containers:   []ContainerReport{},
		Stats:        panel.Stats(),
	}
	if start, end, ok := panel.Window(); ok {
		report.Window = &WindowReport{Start: start, End: end}
	}
	for _, c := range panel.RealizedContainers() {
		report.Containers = append(report.Containers, ContainerReport{
			Index:  panel.IndexOf(c),
			Label:  labels[c],
			Bounds: rectReport(c.Bounds()),
		})
	}
	return report
}

// applyLayoutFlags overrides cfg with --name value pairs.
func applyLayoutFlags(cfg *config.Resolved, args []string) error {
	for i := 0; i < len(args); i++ {
		name, value, hasValue := strings.Cut(args[i], "=")
		if !strings.HasPrefix(name, "--") {
			return fmt.Errorf("unexpected argument %q", args[i])
		}
		if !hasValue {
			if i+1 >= len(args) {
				return fmt.Errorf("%s requires a value", name)
			}
			value = args[i+1]
			i++
		}
		if name == "--count" {
			n, err := strconv.ParseInt(value, 10, 32)
			if err != nil || n < 0 {
				return fmt.Errorf("%s: %q is not a non-negative integer up to %d", name, value, math.MaxInt32)
			}
			cfg.Count = int(n)
			continue
		}
		n, err := strconv.ParseFloat(value, 64)
		if err != nil || n < 0 || math.IsNaN(n) || math.IsInf(n, 0) {
			return fmt.Errorf("%s: %q is not a non-negative number", name, value)
		}
		switch name {
		case "--y":
			cfg.ScrollY = n
		case "--width":
			cfg.Width = n
		case "--height":
			cfg.Height = n
		case "--item-size":
			cfg.ItemSize = n
		case "--spacing":
			cfg.Spacing = n
		default:
			return fmt.Errorf("unknown flag %s", name)
		}
	}
	return nil
}
