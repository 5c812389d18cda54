package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/footfall/assets"
	"github.com/milk9111/footfall/common"
	"github.com/milk9111/footfall/ecs"
	"github.com/milk9111/footfall/ecs/component"
	"github.com/milk9111/footfall/ecs/entity"
	"github.com/milk9111/footfall/ecs/system"
	"github.com/milk9111/footfall/footstep"
	"github.com/milk9111/footfall/logging"
	"github.com/milk9111/footfall/prefabs"
	"github.com/milk9111/footfall/sfx"
	"github.com/rs/zerolog"
	"golang.design/x/clipboard"
)

// flashTime is how long a body stays highlighted after a footstep.
const flashTime = 0.15

type GameOptions struct {
	Debug bool
	Watch bool
	Log   zerolog.Logger
}

type body struct {
	prefab string
	entity ecs.Entity
	voice  *sfx.Voice
	flash  float64
}

type Game struct {
	frames int
	debug  bool
	log    zerolog.Logger

	world   *ecs.World
	sched   *ecs.Scheduler
	physics *system.PhysicsSystem
	env     entity.Env
	bodies  []*body

	// lastVoice is the voice created by the most recent footstep build.
	lastVoice *sfx.Voice

	inspector     *Inspector
	showInspector bool
	clipboardOK   bool
	watcher       *prefabs.Watcher
	status        string
}

func NewGame(opts GameOptions) (*Game, error) {
	g := &Game{
		debug:   opts.Debug,
		log:     opts.Log,
		world:   ecs.NewWorld(),
		physics: system.NewPhysicsSystem(),
	}

	g.env = entity.Env{
		Output:  g.newVoice,
		Physics: g.physics,
		Log:     logging.Component(g.log, "entity"),
	}

	g.sched = ecs.NewScheduler(
		system.NewInputSystem(),
		system.NewTrackSystem(logging.Component(g.log, "track")),
		system.NewControllerSystem(),
		g.physics,
		system.NewFootstepSystem(logging.Component(g.log, "footstep")),
	)

	builders := []struct {
		prefab string
		build  func(*ecs.World, entity.Env) (ecs.Entity, error)
	}{
		{"player.yaml", entity.NewPlayer},
		{"walker.yaml", entity.NewWalker},
	}
	for _, b := range builders {
		e, err := b.build(g.world, g.env)
		if err != nil {
			g.Close()
			return nil, err
		}
		g.bodies = append(g.bodies, &body{prefab: b.prefab, entity: e, voice: g.lastVoice})
	}

	if err := clipboard.Init(); err != nil {
		g.log.Warn().Err(err).Msg("clipboard unavailable, snapshot copy disabled")
	} else {
		g.clipboardOK = true
	}

	if opts.Watch {
		w, err := prefabs.NewWatcher("prefabs", "prefabs/scripts")
		if err != nil {
			g.log.Warn().Err(err).Msg("prefab watch disabled")
		} else {
			g.watcher = w
			g.log.Info().Msg("watching prefabs/ for changes")
		}
	}

	g.inspector = NewInspector(g)
	return g, nil
}

func (g *Game) newVoice(clips []footstep.Clip) (footstep.Output, error) {
	bank, err := sfx.LoadBank(clips)
	if err != nil {
		return nil, err
	}
	g.lastVoice = sfx.NewVoice(assets.AudioContext(), bank, logging.Component(g.log, "sfx"))
	return g.lastVoice, nil
}

func (g *Game) Update() error {
	g.frames++
	dt := 1 / float64(ebiten.TPS())

	g.pollWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.showInspector = !g.showInspector
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copySnapshots()
	}

	g.sched.Update(g.world, dt)

	for _, b := range g.bodies {
		b.flash -= dt
	}
	for _, ev := range g.world.Events().Drain() {
		if ev.Type != ecs.EventFootstep {
			continue
		}
		for _, b := range g.bodies {
			if b.entity == ev.Entity {
				b.flash = flashTime
			}
		}
	}

	if g.showInspector {
		g.inspector.Update()
	}
	return nil
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(name)
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.log.Warn().Err(err).Msg("prefab watch")
			}
		default:
			return
		}
	}
}

// reload rebuilds the footstep of every body built from prefab. A failed
// rebuild keeps the running trigger.
func (g *Game) reload(prefab string) {
	for _, b := range g.bodies {
		if b.prefab != prefab {
			continue
		}
		g.lastVoice = nil
		if err := entity.RebuildFootstep(g.world, b.entity, b.prefab, g.env); err != nil {
			g.log.Error().Err(err).Str("prefab", prefab).Msg("footstep reload failed")
			if g.lastVoice != nil {
				_ = g.lastVoice.Close()
			}
			continue
		}
		if b.voice != nil {
			_ = b.voice.Close()
		}
		b.voice = g.lastVoice
		g.status = "reloaded " + prefab
		g.log.Info().Str("prefab", prefab).Msg("footstep reloaded")
	}
}

func (g *Game) copySnapshots() {
	if !g.clipboardOK {
		g.status = "clipboard unavailable"
		return
	}
	var sb strings.Builder
	for _, b := range g.bodies {
		snap, ok := system.Snapshot(g.world, b.entity)
		if !ok {
			continue
		}
		data, err := snap.YAML()
		if err != nil {
			g.log.Error().Err(err).Msg("encode snapshot")
			return
		}
		fmt.Fprintf(&sb, "# %s\n%s", b.prefab, data)
	}
	clipboard.Write(clipboard.FmtText, []byte(sb.String()))
	g.status = "snapshot copied"
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 24, G: 26, B: 32, A: 255})
	vector.StrokeLine(screen, 0, common.GroundY, common.BaseWidth, common.GroundY, 2, color.RGBA{R: 120, G: 120, B: 130, A: 255}, false)

	for _, b := range g.bodies {
		g.drawBody(screen, b)
	}

	hud := fmt.Sprintf("FPS: %.2f  A/D move  W/S strafe  Shift sprint  Space jump  F1 inspector  C copy", ebiten.ActualFPS())
	if g.status != "" {
		hud += "\n" + g.status
	}
	ebitenutil.DebugPrint(screen, hud)

	if g.showInspector {
		g.inspector.Draw(screen)
	}
}

func (g *Game) drawBody(screen *ebiten.Image, b *body) {
	tr, ok := ecs.Get(g.world, b.entity, component.TransformComponent.Kind())
	if !ok {
		return
	}

	w, h := 24.0, 40.0
	if pb, ok := ecs.Get(g.world, b.entity, component.PhysicsBodyComponent.Kind()); ok {
		w, h = pb.Width, pb.Height
	}

	x, y := tr.X-w/2, tr.Y-h/2
	if !ecs.Has(g.world, b.entity, component.PhysicsBodyComponent.Kind()) {
		// Z reads as depth
		y -= tr.Z * 0.25
	}

	t := float32(common.Clamp(b.flash/flashTime, 0, 1))
	fill := color.RGBA{
		R: uint8(common.Lerp(70, 250, t)),
		G: uint8(common.Lerp(140, 220, t)),
		B: uint8(common.Lerp(200, 90, t)),
		A: 255,
	}
	vector.FillRect(screen, float32(x), float32(y), float32(w), float32(h), fill, false)

	if g.debug {
		if snap, ok := system.Snapshot(g.world, b.entity); ok {
			ebitenutil.DebugPrintAt(screen, snap.State.String(), int(x), int(y)-16)
		}
	}
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	for _, b := range g.bodies {
		if b.voice != nil {
			_ = b.voice.Close()
		}
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) footstepRate(b *body) float64 {
	fs, ok := ecs.Get(g.world, b.entity, component.FootstepComponent.Kind())
	if !ok || fs.Trigger == nil {
		return 0
	}
	return fs.Trigger.Rate()
}
