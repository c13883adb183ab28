package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/olivierh59500/sparkle-fountain-go/config"
	"github.com/olivierh59500/sparkle-fountain-go/particles"
	"github.com/olivierh59500/sparkle-fountain-go/view"
	"go.uber.org/zap"
)

const (
	tuningFile     = "tuning.toml"
	cameraDistance = 40.0
	minRadius      = 0.75
)

var background = color.RGBA{6, 6, 18, 255}

// Window renders a simulator with Ebitengine and feeds it mouse forces.
type Window struct {
	sim    *particles.Simulator
	cfg    config.SimulationConfig
	tuning config.Tuning
	cam    view.Camera
	log    *zap.Logger

	Paused     bool
	Turbulence bool
	attracting bool
	attractX   float32
	attractY   float32
	PrevMX     float64 // Previous mouse position for drag
	PrevMY     float64
}

func newWindow(sim *particles.Simulator, cfg *config.Config, log *zap.Logger) *Window {
	return &Window{
		sim: sim,
		cfg: cfg.Simulation,
		tuning: config.Tuning{
			Gravity:         cfg.Simulation.Gravity,
			Damping:         cfg.Simulation.Damping,
			AttractStrength: cfg.Simulation.AttractStrength,
		},
		cam: view.Camera{
			Width:    float64(cfg.Window.Width),
			Height:   float64(cfg.Window.Height),
			CenterY:  particles.SpawnHeight / 2,
			Distance: cameraDistance,
			Zoom:     cfg.Window.Zoom,
		},
		log: log.Named("window"),
	}
}

func runWindow(sim *particles.Simulator, cfg *config.Config, log *zap.Logger) error {
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetTPS(cfg.Window.TPS)

	if err := ebiten.RunGame(newWindow(sim, cfg, log)); err != nil {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}

// Update is called each tick by Ebitengine
func (w *Window) Update() error {
	w.handleInput()

	if w.Paused {
		return nil
	}

	dt := float32(1.0 / float64(ebiten.TPS()))

	if w.attracting {
		w.sim.Attract(w.attractX, w.attractY, 0, w.tuning.AttractStrength*dt)
	}
	if w.Turbulence {
		w.sim.Turbulence(w.sim.Clock(), w.cfg.TurbulenceScale, w.cfg.TurbulenceStrength*dt)
	}
	w.sim.Step(dt, w.tuning.Gravity, w.tuning.Damping)

	return nil
}

// Draw is called each frame by Ebitengine
func (w *Window) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	for _, p := range w.sim.Particles() {
		if p.A <= 0 {
			continue
		}
		sx, sy, scale, ok := w.cam.Project(float64(p.X), float64(p.Y), float64(p.Z))
		if !ok {
			continue
		}
		radius := float64(p.Size) * scale * 0.5
		if radius < minRadius {
			radius = minRadius
		}
		if !w.cam.Visible(sx, sy, radius) {
			continue
		}
		r, g, b, a := view.RGBA8(p.R, p.G, p.B, p.A)
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(radius), color.NRGBA{R: r, G: g, B: b, A: a}, true)
	}

	stats := w.sim.Stats()
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"Particles: %d  TPS: %.1f  t=%.1fs\nGravity: %.2f  Damping: %.3f  Attract: %.1f\nSparkles: %d  Respawns: %d  Turbulence: %t",
		w.sim.Count(), ebiten.ActualTPS(), w.sim.Clock(),
		w.tuning.Gravity, w.tuning.Damping, w.tuning.AttractStrength,
		stats.Sparkles, stats.Respawns, w.Turbulence,
	))
}

// Layout returns the screen size
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(w.cam.Width), int(w.cam.Height)
}

// handleInput processes keyboard and mouse input
func (w *Window) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		w.Paused = !w.Paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := w.sim.Initialize(w.sim.Count()); err != nil {
			w.log.Error("reinitialize failed", zap.Error(err))
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		w.Turbulence = !w.Turbulence
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		w.saveTuning()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		w.loadTuning()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		w.tuning.AttractStrength *= 1.25
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
		w.tuning.AttractStrength /= 1.25
	}

	// Zoom
	_, wheelY := ebiten.Wheel()
	w.cam.ZoomBy(wheelY)

	mx, my := ebiten.CursorPosition()
	fx, fy := float64(mx), float64(my)

	// Attract toward the cursor on the z=0 plane
	w.attracting = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if w.attracting {
		x, y := w.cam.Unproject(fx, fy)
		w.attractX, w.attractY = float32(x), float32(y)
	}

	// Pan (drag)
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		w.cam.Pan(fx-w.PrevMX, fy-w.PrevMY)
	}
	w.PrevMX = fx
	w.PrevMY = fy
}

func (w *Window) saveTuning() {
	if err := config.SaveTuning(tuningFile, w.tuning); err != nil {
		w.log.Error("save tuning", zap.Error(err))
		return
	}
	w.log.Info("tuning saved", zap.String("path", tuningFile))
}

func (w *Window) loadTuning() {
	t, err := config.LoadTuning(tuningFile, w.tuning)
	if err != nil {
		w.log.Error("load tuning", zap.Error(err))
		return
	}
	w.tuning = t
	w.log.Info("tuning loaded",
		zap.Float32("gravity", t.Gravity),
		zap.Float32("damping", t.Damping),
		zap.Float32("attract_strength", t.AttractStrength),
	)
}
