package viewer

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/forestgen/internal/config"
	"github.com/samdwyer/forestgen/internal/presets"
	"github.com/samdwyer/forestgen/internal/telemetry"
	"github.com/samdwyer/forestgen/internal/ui"
	"github.com/samdwyer/forestgen/internal/world"
)

const helpLine = "[s]tep [g]enerate [w]atch [t]oggle [r]egen [p]reset [q]uit"

// Viewer holds the interactive session state.
type Viewer struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	registry *presets.Registry
	cfg      config.Config
	log      logr.Logger

	preset   *presets.Preset
	seed     int64
	forest   *world.Forest
	mode     Mode
	watching bool
	running  bool
	message  string
}

// New creates a viewer on screen. The preset named in cfg must exist in registry.
func New(screen *ui.Screen, registry *presets.Registry, cfg config.Config, mode Mode, log logr.Logger) (*Viewer, error) {
	preset, err := registry.Lookup(cfg.Preset)
	if err != nil {
		return nil, err
	}
	if log.GetSink() == nil {
		log = logr.Discard()
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	v := &Viewer{
		screen:   screen,
		renderer: ui.NewRenderer(screen, preset.Colors()),
		registry: registry,
		cfg:      cfg,
		log:      log.WithName("viewer"),
		mode:     mode,
		running:  true,
	}
	if err := v.reset(context.Background(), preset, seed); err != nil {
		return nil, err
	}
	return v, nil
}

// Forest returns the current generator.
func (v *Viewer) Forest() *world.Forest {
	return v.forest
}

// Seed returns the seed of the current generator.
func (v *Viewer) Seed() int64 {
	return v.seed
}

// Mode returns the current view.
func (v *Viewer) Mode() Mode {
	return v.mode
}

// Watching reports whether generation advances on every tick.
func (v *Viewer) Watching() bool {
	return v.watching
}

// Preset returns the active preset.
func (v *Viewer) Preset() *presets.Preset {
	return v.preset
}

// Run executes the main loop until the user quits or ctx is done. Terminal
// events arrive through a channel fed by the screen, so the loop can also
// advance generation on a ticker while watching.
func (v *Viewer) Run(ctx context.Context) error {
	events := make(chan tcell.Event)
	quit := make(chan struct{})
	go v.screen.ChannelEvents(events, quit)
	defer close(quit)

	ticker := time.NewTicker(v.cfg.Tick)
	defer ticker.Stop()

	v.render()
	for v.running {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			v.handleEvent(ctx, ev)
		case <-ticker.C:
			if !v.watching {
				continue
			}
			v.step(ctx)
		}
		v.render()
	}
	return nil
}

// handleEvent processes a single terminal event.
func (v *Viewer) handleEvent(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		v.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		v.screen.Sync()
	}
}

// handleKeyEvent processes keyboard input.
func (v *Viewer) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		v.running = false
		return
	case tcell.KeyRune:
	default:
		return
	}

	switch ev.Rune() {
	case 'q', 'Q':
		v.running = false
	case 's':
		v.watching = false
		v.step(ctx)
	case 'g':
		v.watching = false
		v.finish(ctx)
	case 'w':
		v.watching = !v.watching && v.forest.Map() == nil
	case 't':
		v.toggleMode()
	case 'r':
		v.resetOrReport(ctx, v.preset, v.seed+1)
	case 'p':
		v.resetOrReport(ctx, v.nextPreset(), v.seed)
	}
}

// step advances generation by one unit, finishing the map once the grid is full.
func (v *Viewer) step(ctx context.Context) {
	if v.forest.Map() != nil {
		v.watching = false
		return
	}
	if !v.forest.Step() {
		v.finish(ctx)
	}
}

// finish builds the map and switches to the terrain view.
func (v *Viewer) finish(ctx context.Context) {
	m := v.forest.Build(ctx)
	v.watching = false
	v.mode = ModeTerrain
	v.message = fmt.Sprintf("rooms=%d runs=%d pruned=%d regions=%d", len(m.Rooms), m.Runs, m.Pruned, m.Components)
}

func (v *Viewer) toggleMode() {
	if v.mode == ModeGrid {
		if v.forest.Map() == nil {
			v.message = "terrain is available once generation finishes"
			return
		}
		v.mode = ModeTerrain
		return
	}
	v.mode = ModeGrid
}

// nextPreset returns the preset after the active one in registry order.
func (v *Viewer) nextPreset() *presets.Preset {
	all := v.registry.All()
	for i := range all {
		if all[i].ID == v.preset.ID {
			return &all[(i+1)%len(all)]
		}
	}
	return v.preset
}

// resetOrReport switches to preset and seed, keeping the current session when
// the new generator cannot be created.
func (v *Viewer) resetOrReport(ctx context.Context, preset *presets.Preset, seed int64) {
	if err := v.reset(ctx, preset, seed); err != nil {
		v.log.Error(err, "cannot create forest", "preset", preset.ID, "seed", seed)
		v.message = err.Error()
	}
}

// reset starts a fresh generator for preset and seed. Nothing changes on error.
func (v *Viewer) reset(ctx context.Context, preset *presets.Preset, seed int64) error {
	tracer := telemetry.Tracer("viewer")
	ctx, span := tracer.Start(ctx, "viewer.reset")
	defer span.End()

	width, height := preset.Width, preset.Height
	if v.cfg.Width > 0 {
		width = v.cfg.Width
	}
	if v.cfg.Height > 0 {
		height = v.cfg.Height
	}

	opts := preset.Rooms
	opts.Logger = v.log
	forest, err := world.NewForest(width, height, opts, rand.New(rand.NewSource(seed)))
	if err != nil {
		span.RecordError(err)
		return err
	}

	span.SetAttributes(
		attribute.String("preset", preset.ID),
		attribute.Int64("seed", seed),
		attribute.Int("width", width),
		attribute.Int("height", height),
	)

	v.preset = preset
	v.seed = seed
	v.renderer.SetColors(preset.Colors())
	v.forest = forest
	v.watching = false
	v.message = ""
	v.log.V(1).Info("new forest", "preset", preset.ID, "seed", seed, "width", width, "height", height)

	// The terrain view has nothing to show until the map is built.
	if v.mode == ModeTerrain {
		v.finish(ctx)
	}
	return nil
}

// render draws the current view and the status lines.
func (v *Viewer) render() {
	if m := v.forest.Map(); v.mode == ModeTerrain && m != nil {
		v.renderer.RenderTerrain(m)
	} else {
		gen := v.forest.Generator()
		v.renderer.RenderGrid(gen.Grid(), gen.MazeBuilder().Current())
	}

	_, height := v.screen.Size()
	v.renderer.RenderMessage(v.status(), height-2)
	v.renderer.RenderMessage(helpLine, height-1)
	v.renderer.Show()
}

// status describes the session on one line.
func (v *Viewer) status() string {
	gen := v.forest.Generator()
	s := fmt.Sprintf("%s seed=%d phase=%s rooms=%d view=%s", v.preset.ID, v.seed, gen.Phase(), len(gen.Rooms()), v.mode)
	if v.watching {
		s += " watching"
	}
	if v.message != "" {
		s += "  " + v.message
	}
	return s
}
