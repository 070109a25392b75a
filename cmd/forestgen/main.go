// Package main is the entry point for forestgen.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"golang.org/x/term"

	"github.com/samdwyer/forestgen/internal/config"
	"github.com/samdwyer/forestgen/internal/presets"
	"github.com/samdwyer/forestgen/internal/telemetry"
	"github.com/samdwyer/forestgen/internal/ui"
	"github.com/samdwyer/forestgen/internal/viewer"
	"github.com/samdwyer/forestgen/internal/world"
)

func main() {
	// Loads .env for local development, including the Honeycomb key
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("forestgen: %v", err)
	}

	setupOTelEnv()

	err = run(context.Background(), os.Args[1:], cfg, os.Stdout)
	if code := exitCode(err); code != 0 {
		log.Printf("forestgen: %v", err)
		os.Exit(code)
	}
}

// exitCode maps the result of run to a process status. Asking for help is not a failure.
func exitCode(err error) int {
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return 0
	}
	return 1
}

// options are the command line settings layered over the environment config.
type options struct {
	cfg       config.Config
	print     bool
	view      viewer.Mode
	verbosity int
}

// parseFlags reads args on top of cfg.
func parseFlags(args []string, cfg config.Config, output io.Writer) (options, error) {
	opts := options{cfg: cfg}
	fs := flag.NewFlagSet("forestgen", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.Int64Var(&opts.cfg.Seed, "seed", cfg.Seed, "random seed (0 picks one from the clock)")
	fs.IntVar(&opts.cfg.Width, "width", cfg.Width, "terrain width in tiles (0 uses the preset)")
	fs.IntVar(&opts.cfg.Height, "height", cfg.Height, "terrain height in tiles (0 uses the preset)")
	fs.StringVar(&opts.cfg.Preset, "preset", cfg.Preset, "generation preset")
	fs.DurationVar(&opts.cfg.Tick, "tick", cfg.Tick, "delay between steps while watching")
	fs.BoolVar(&opts.print, "print", false, "build one map, print it and exit")
	view := fs.String("view", viewer.ModeGrid.String(), "initial view: grid or terrain")
	fs.IntVar(&opts.verbosity, "v", 0, "log verbosity")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	mode, ok := viewer.ParseMode(*view)
	if !ok {
		return options{}, fmt.Errorf("unknown view %q", *view)
	}
	opts.view = mode

	if err := opts.cfg.Validate(); err != nil {
		return options{}, err
	}
	return opts, nil
}

func run(ctx context.Context, args []string, cfg config.Config, stdout io.Writer) error {
	opts, err := parseFlags(args, cfg, os.Stderr)
	if err != nil {
		return err
	}

	stdr.SetVerbosity(opts.verbosity)
	logger := stdr.New(log.New(os.Stderr, "", log.LstdFlags)).WithName("forestgen")

	shutdown, err := telemetry.Setup(ctx, logger)
	if err != nil {
		logger.Error(err, "telemetry setup failed, running without observability")
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				logger.Error(err, "shutting down telemetry")
			}
		}()
	}

	registry, err := presets.LoadRegistry()
	if err != nil {
		return err
	}

	if opts.print {
		return printMap(ctx, stdout, registry, opts.cfg, logger)
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Close()

	v, err := viewer.New(screen, registry, opts.cfg, opts.view, logger)
	if err != nil {
		return err
	}
	return v.Run(ctx)
}

// printMap builds a single map and writes it to w, in color when w is a terminal.
func printMap(ctx context.Context, w io.Writer, registry *presets.Registry, cfg config.Config, logger logr.Logger) error {
	preset, err := registry.Lookup(cfg.Preset)
	if err != nil {
		return err
	}

	width, height := preset.Width, preset.Height
	if cfg.Width > 0 {
		width = cfg.Width
	}
	if cfg.Height > 0 {
		height = cfg.Height
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	roomOpts := preset.Rooms
	roomOpts.Logger = logger
	forest, err := world.NewForest(width, height, roomOpts, rand.New(rand.NewSource(seed)))
	if err != nil {
		return err
	}
	m := forest.Build(ctx)
	logger.Info("map built", "id", m.ID, "preset", preset.ID, "seed", seed,
		"rooms", len(m.Rooms), "pruned", m.Pruned, "regions", m.Components)

	var palette *presets.Palette
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		palette = &preset.Palette
	}
	return ui.WriteTerrain(w, m, palette)
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	// Always set endpoint to Honeycomb
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

	apiKey := os.Getenv("HONEYCOMB_FORESTGEN_API_KEY")
	dataset := os.Getenv("HONEYCOMB_FORESTGEN_DATASET")
	if dataset == "" {
		dataset = "forestgen" // default dataset name
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
