package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/olivierh59500/sparkle-fountain-go/config"
	"github.com/olivierh59500/sparkle-fountain-go/particles"
	"github.com/olivierh59500/sparkle-fountain-go/view"
	"go.uber.org/zap"
)

const (
	terminalLogFile = "sparkle.log"
	terminalZoom    = 2.0 // Columns per world unit
	minVisibleAlpha = 0.05
)

// Terminal renders a simulator into character cells. Rows count double in
// the camera since cells are about twice as tall as they are wide.
type Terminal struct {
	screen tcell.Screen
	sim    *particles.Simulator
	cfg    config.SimulationConfig
	cam    view.Camera
	chime  *chime
	log    *zap.Logger

	paused     bool
	turbulence bool
	attracting bool
	attractX   float32
	attractY   float32
}

func runTerminal(sim *particles.Simulator, cfg *config.Config, log *zap.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	t := &Terminal{
		screen: screen,
		sim:    sim,
		cfg:    cfg.Simulation,
		cam: view.Camera{
			CenterY:  particles.SpawnHeight / 2,
			Distance: cameraDistance,
			Zoom:     terminalZoom,
		},
		log: log.Named("terminal"),
	}
	t.resize()

	if cfg.Terminal.Audio {
		c, err := newChime()
		if err != nil {
			// Non-fatal, runs without sound
			t.log.Warn("audio unavailable", zap.Error(err))
		} else {
			t.chime = c
			defer c.Close()
		}
	}

	t.run(time.Second / time.Duration(cfg.Terminal.FPS))
	return nil
}

func (t *Terminal) run(frame time.Duration) {
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	dt := float32(frame.Seconds())
	for {
		select {
		case ev, ok := <-events:
			if !ok || !t.handleEvent(ev) {
				return
			}

		case <-ticker.C:
			if !t.paused {
				t.step(dt)
			}
			t.draw()
		}
	}
}

func (t *Terminal) step(dt float32) {
	if t.attracting {
		t.sim.Attract(t.attractX, t.attractY, 0, t.cfg.AttractStrength*dt)
	}
	if t.turbulence {
		t.sim.Turbulence(t.sim.Clock(), t.cfg.TurbulenceScale, t.cfg.TurbulenceStrength*dt)
	}
	t.sim.Step(dt, t.cfg.Gravity, t.cfg.Damping)

	if t.chime != nil {
		t.chime.Sparkle(t.sim.Stats().Sparkles)
	}
}

func (t *Terminal) draw() {
	t.screen.Clear()

	for _, p := range t.sim.Particles() {
		if p.A < minVisibleAlpha {
			continue
		}
		sx, sy, _, ok := t.cam.Project(float64(p.X), float64(p.Y), float64(p.Z))
		if !ok || !t.cam.Visible(sx, sy, 0) {
			continue
		}
		r, g, b := view.Shade8(p.R, p.G, p.B, p.A)
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(r, g, b))
		t.screen.SetContent(int(sx), int(sy/2), glyph(p.Size), nil, style)
	}

	stats := t.sim.Stats()
	status := fmt.Sprintf(" %d particles  t=%.1fs  sparkles %d  respawns %d  [space] pause [t] turbulence [r] reset [q] quit",
		t.sim.Count(), t.sim.Clock(), stats.Sparkles, stats.Respawns)
	for i, ch := range status {
		t.screen.SetContent(i, 0, ch, nil, tcell.StyleDefault.Reverse(true))
	}

	t.screen.Show()
}

// glyph picks a character by particle size
func glyph(size float32) rune {
	switch {
	case size < 0.25:
		return '.'
	case size < 0.45:
		return '*'
	default:
		return '@'
	}
}

func (t *Terminal) resize() {
	w, h := t.screen.Size()
	t.cam.Width = float64(w)
	t.cam.Height = float64(h * 2)
}

func (t *Terminal) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			t.paused = !t.paused
		case 't':
			t.turbulence = !t.turbulence
		case 'r':
			if err := t.sim.Initialize(t.sim.Count()); err != nil {
				t.log.Error("reinitialize failed", zap.Error(err))
			}
		}

	case *tcell.EventMouse:
		t.attracting = ev.Buttons()&tcell.Button1 != 0
		if t.attracting {
			mx, my := ev.Position()
			x, y := t.cam.Unproject(float64(mx), float64(my*2))
			t.attractX, t.attractY = float32(x), float32(y)
		}

	case *tcell.EventResize:
		t.resize()
		t.screen.Sync()
	}

	return true
}
