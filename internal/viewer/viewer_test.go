package viewer

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/forestgen/internal/builder"
	"github.com/samdwyer/forestgen/internal/config"
	"github.com/samdwyer/forestgen/internal/presets"
	"github.com/samdwyer/forestgen/internal/ui"
)

type harness struct {
	sim    tcell.SimulationScreen
	screen *ui.Screen
	viewer *Viewer
}

func newHarness(t *testing.T, cfg config.Config, mode Mode) *harness {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := ui.Wrap(sim)
	require.NoError(t, err)
	t.Cleanup(screen.Close)

	v, err := New(screen, presets.MustLoadRegistry(), cfg, mode, logr.Discard())
	require.NoError(t, err)
	return &harness{sim: sim, screen: screen, viewer: v}
}

func smallConfig() config.Config {
	cfg := config.Default()
	cfg.Seed = 42
	cfg.Width = 40
	cfg.Height = 20
	return cfg
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func (h *harness) row(y int) string {
	width, _ := h.screen.Size()
	var b strings.Builder
	for x := 0; x < width; x++ {
		ch, _ := h.screen.Content(x, y)
		b.WriteRune(ch)
	}
	return strings.TrimRight(b.String(), " ")
}

func TestNewUsesConfig(t *testing.T) {
	h := newHarness(t, smallConfig(), ModeGrid)

	assert.Equal(t, int64(42), h.viewer.Seed())
	assert.Equal(t, "forest", h.viewer.Preset().ID)
	assert.Equal(t, ModeGrid, h.viewer.Mode())
	assert.Nil(t, h.viewer.Forest().Map())
	assert.Equal(t, 20, h.viewer.Forest().Generator().Grid().Width)
	assert.Equal(t, 10, h.viewer.Forest().Generator().Grid().Height)
}

func TestNewUnknownPreset(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := ui.Wrap(sim)
	require.NoError(t, err)
	defer screen.Close()

	cfg := smallConfig()
	cfg.Preset = "swamp"
	_, err = New(screen, presets.MustLoadRegistry(), cfg, ModeGrid, logr.Discard())
	assert.ErrorIs(t, err, presets.ErrUnknownPreset)
}

func TestNewTerrainModeBuildsImmediately(t *testing.T) {
	h := newHarness(t, smallConfig(), ModeTerrain)

	require.NotNil(t, h.viewer.Forest().Map())
	assert.Equal(t, ModeTerrain, h.viewer.Mode())
}

func TestStepKey(t *testing.T) {
	h := newHarness(t, smallConfig(), ModeGrid)
	ctx := context.Background()

	h.viewer.handleKeyEvent(ctx, key('s'))

	gen := h.viewer.Forest().Generator()
	assert.Equal(t, 1, gen.RoomBuilder().Attempts())
	assert.Equal(t, builder.PhasePlacing, gen.Phase())
	assert.Equal(t, ModeGrid, h.viewer.Mode())
}

func TestStepUntilDoneSwitchesToTerrain(t *testing.T) {
	h := newHarness(t, smallConfig(), ModeGrid)
	ctx := context.Background()

	for i := 0; i < 10000 && h.viewer.Forest().Map() == nil; i++ {
		h.viewer.handleKeyEvent(ctx, key('s'))
	}

	require.NotNil(t, h.viewer.Forest().Map())
	assert.Equal(t, ModeTerrain, h.viewer.Mode())
	assert.Zero(t, h.viewer.Forest().Map().Grid.Empty())
}

func TestGenerateAndToggle(t *testing.T) {
	h := newHarness(t, smallConfig(), ModeGrid)
	ctx := context.Background()

	h.viewer.handleKeyEvent(ctx, key('t'))
	assert.Equal(t, ModeGrid, h.viewer.Mode(), "terrain needs a finished map")

	h.viewer.handleKeyEvent(ctx, key('g'))
	m := h.viewer.Forest().Map()
	require.NotNil(t, m)
	assert.Equal(t, ModeTerrain, h.viewer.Mode())

	h.viewer.handleKeyEvent(ctx, key('t'))
	assert.Equal(t, ModeGrid, h.viewer.Mode())
	h.viewer.handleKeyEvent(ctx, key('t'))
	assert.Equal(t, ModeTerrain, h.viewer.Mode())

	h.viewer.handleKeyEvent(ctx, key('g'))
	assert.Same(t, m, h.viewer.Forest().Map(), "generate on a finished map keeps it")
}

func TestWatchToggle(t *testing.T) {
	h := newHarness(t, smallConfig(), ModeGrid)
	ctx := context.Background()

	h.viewer.handleKeyEvent(ctx, key('w'))
	assert.True(t, h.viewer.Watching())
	h.viewer.handleKeyEvent(ctx, key('w'))
	assert.False(t, h.viewer.Watching())

	h.viewer.handleKeyEvent(ctx, key('g'))
	h.viewer.handleKeyEvent(ctx, key('w'))
	assert.False(t, h.viewer.Watching(), "nothing left to watch")
}

func TestRegenerateAndPreset(t *testing.T) {
	h := newHarness(t, smallConfig(), ModeGrid)
	ctx := context.Background()
	first := h.viewer.Forest()

	h.viewer.handleKeyEvent(ctx, key('r'))
	assert.Equal(t, int64(43), h.viewer.Seed())
	assert.NotSame(t, first, h.viewer.Forest())

	h.viewer.handleKeyEvent(ctx, key('p'))
	assert.Equal(t, "dungeon", h.viewer.Preset().ID)
	h.viewer.handleKeyEvent(ctx, key('p'))
	h.viewer.handleKeyEvent(ctx, key('p'))
	assert.Equal(t, "forest", h.viewer.Preset().ID)
}

func TestPresetFailureKeepsSession(t *testing.T) {
	registry := presets.NewRegistry([]presets.Preset{
		{ID: "forest", Width: 40, Height: 20},
		{ID: "broken", Width: 1, Height: 20, Palette: presets.Palette{
			Wall: "#ff0000", Floor: "#ff0000", Room: "#ff0000",
			Maze: "#ff0000", Current: "#ff0000", Text: "#ff0000",
		}},
	})
	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := ui.Wrap(sim)
	require.NoError(t, err)
	defer screen.Close()

	cfg := config.Default()
	cfg.Seed = 7
	v, err := New(screen, registry, cfg, ModeGrid, logr.Discard())
	require.NoError(t, err)
	forest := v.Forest()

	v.handleKeyEvent(context.Background(), key('p'))

	assert.Equal(t, "forest", v.Preset().ID)
	assert.Same(t, forest, v.Forest())
	assert.Equal(t, int64(7), v.Seed())
	assert.Equal(t, presets.DefaultColors, v.renderer.Colors())
	assert.NotEmpty(t, v.message)
}

func TestRenderShowsStatus(t *testing.T) {
	h := newHarness(t, smallConfig(), ModeGrid)

	h.viewer.render()

	_, height := h.screen.Size()
	assert.True(t, strings.HasPrefix(h.row(height-2), "forest seed=42 phase=placing"), h.row(height-2))
	assert.Equal(t, helpLine, h.row(height-1))
}

func TestRunQuits(t *testing.T) {
	h := newHarness(t, smallConfig(), ModeGrid)
	h.sim.InjectKey(tcell.KeyRune, 'g', tcell.ModNone)
	h.sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	done := make(chan error, 1)
	go func() { done <- h.viewer.Run(context.Background()) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("viewer did not quit")
	}
	assert.NotNil(t, h.viewer.Forest().Map())
}

func TestRunStopsOnContext(t *testing.T) {
	h := newHarness(t, smallConfig(), ModeGrid)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := h.viewer.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseMode(t *testing.T) {
	m, ok := ParseMode("terrain")
	assert.True(t, ok)
	assert.Equal(t, ModeTerrain, m)

	_, ok = ParseMode("hex")
	assert.False(t, ok)
	assert.Equal(t, "grid", ModeGrid.String())
}
