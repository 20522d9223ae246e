// Package render bridges a running flock to an ebiten window: it forwards
// input to the flock actor and draws the latest render buffer.
package render

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/Always-Flowting/FinalBoidSimulation/internal/simulation"
	"github.com/Always-Flowting/FinalBoidSimulation/pkg/config"
	"github.com/Always-Flowting/FinalBoidSimulation/pkg/flock"
	"github.com/Always-Flowting/FinalBoidSimulation/pkg/ui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	golog "github.com/tochemey/goakt/v3/log"
	"golang.org/x/image/font/basicfont"
)

// Simulator is the flock as seen from the window. *simulation.Client
// implements it.
type Simulator interface {
	Tick(ctx context.Context) (simulation.Frame, error)
	ToggleFreeze(ctx context.Context) (simulation.Frame, error)
	Frame(ctx context.Context) (simulation.Frame, error)
	AddGroup(ctx context.Context, g config.Group) error
	SetWeights(ctx context.Context, w flock.Weights) error
}

var spawnKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

var (
	background = color.RGBA{R: 10, G: 10, B: 30, A: 255}
	whiteImage *ebiten.Image
	hudFace    = text.NewGoXFace(basicfont.Face7x13)
)

const hudLine = 16

type Game struct {
	ctx    context.Context
	sim    Simulator
	cfg    *config.Config
	logger golog.Logger

	frame    simulation.Frame
	vertices []ebiten.Vertex
	indices  []uint32
	uploads  int // mesh rebuilds, one per changed frame

	panel     *ui.Panel
	showPanel bool
	weights   [5]*ui.Slider
	frozenBox *ui.Checkbox
	spawn     []*ui.Button

	// Timing instrumentation
	updateAvg float64 // Rolling average in ms
	drawAvg   float64
}

// NewGame reads the first frame from sim and lays out the control panel.
func NewGame(ctx context.Context, cfg *config.Config, sim Simulator, logger golog.Logger) (*Game, error) {
	fr, err := sim.Frame(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read initial frame: %w", err)
	}

	panel := ui.NewPanel(10, 10, 220, cfg.WorldHeight-20, "Flock")
	panel.AddSection("Steering Weights")
	w := cfg.Weights
	g := &Game{
		ctx:       ctx,
		sim:       sim,
		cfg:       cfg,
		logger:    logger,
		panel:     panel,
		showPanel: true,
		weights: [5]*ui.Slider{
			panel.AddSlider("Separation", 0, 5, w.Separation),
			panel.AddSlider("Alignment", 0, 5, w.Alignment),
			panel.AddSlider("Cohesion", 0, 5, w.Cohesion),
			panel.AddSlider("Chase", 0, 5, w.Chase),
			panel.AddSlider("Flee", 0, 5, w.Flee),
		},
	}
	panel.AddSection("Simulation")
	g.frozenBox = panel.AddCheckbox("Frozen (F)", fr.Frozen)
	if len(cfg.Groups) > 0 {
		panel.AddSection("Spawn")
		for i, grp := range cfg.Groups {
			g.spawn = append(g.spawn, panel.AddButton(fmt.Sprintf("%d: %d %s", i+1, grp.Amount, groupLabel(grp))))
		}
	}

	g.upload(fr)
	return g, nil
}

func groupLabel(g config.Group) string {
	if g.Name != "" {
		return g.Name
	}
	return g.Type.String()
}

// upload replaces the cached frame and rebuilds the mesh.
func (g *Game) upload(fr simulation.Frame) {
	g.frame = fr
	g.vertices, g.indices = buildMesh(fr.Data, fr.Amount, g.vertices, g.indices)
	g.uploads++
}

// input is everything Update reacts to in one frame.
type input struct {
	quit, togglePanel, toggleFreeze bool
	spawn                           []bool // per configured group
	pointer                         ui.Pointer
}

func (g *Game) readInput() input {
	in := input{
		quit:         inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		togglePanel:  inpututil.IsKeyJustPressed(ebiten.KeyH),
		toggleFreeze: inpututil.IsKeyJustPressed(ebiten.KeyF),
		spawn:        make([]bool, len(g.cfg.Groups)),
		pointer:      ui.CurrentPointer(),
	}
	for i := range in.spawn {
		in.spawn[i] = i < len(spawnKeys) && inpututil.IsKeyJustPressed(spawnKeys[i])
	}
	return in
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		g.updateAvg = g.updateAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()
	return g.step(g.readInput())
}

func (g *Game) step(in input) error {
	if in.quit {
		return ebiten.Termination
	}
	if in.togglePanel {
		g.showPanel = !g.showPanel
	}
	if g.showPanel {
		g.panel.Update(in.pointer)
	}

	if in.toggleFreeze || g.frozenBox.Changed() {
		g.toggleFreeze()
	}
	g.applyWeights()
	for i, grp := range g.cfg.Groups {
		pressed := i < len(in.spawn) && in.spawn[i]
		if g.spawn[i].Clicked() || pressed {
			g.addGroup(grp)
		}
	}

	if g.frame.Frozen {
		return nil
	}
	fr, err := g.sim.Tick(g.ctx)
	if err != nil {
		g.logger.Warnf("tick failed: %v", err)
		return nil
	}
	// Unchanged frames keep the current mesh.
	if fr.Changed {
		g.upload(fr)
	} else {
		g.frame.Frozen = fr.Frozen
	}
	return nil
}

func (g *Game) toggleFreeze() {
	fr, err := g.sim.ToggleFreeze(g.ctx)
	if err != nil {
		g.logger.Warnf("toggle freeze failed: %v", err)
		return
	}
	g.frame.Frozen = fr.Frozen
	g.frozenBox.Set(fr.Frozen)
}

func (g *Game) applyWeights() {
	changed := false
	for _, s := range g.weights {
		if s.Changed() {
			changed = true
		}
	}
	if !changed {
		return
	}
	w := flock.Weights{
		Separation: g.weights[0].Value,
		Alignment:  g.weights[1].Value,
		Cohesion:   g.weights[2].Value,
		Chase:      g.weights[3].Value,
		Flee:       g.weights[4].Value,
	}
	if err := g.sim.SetWeights(g.ctx, w); err != nil {
		g.logger.Warnf("set weights failed: %v", err)
	}
}

// addGroup adds grp and rebuilds the mesh from the resized buffer.
func (g *Game) addGroup(grp config.Group) {
	if err := g.sim.AddGroup(g.ctx, grp); err != nil {
		g.logger.Warnf("add group failed: %v", err)
		return
	}
	fr, err := g.sim.Frame(g.ctx)
	if err != nil {
		g.logger.Warnf("frame after add group failed: %v", err)
		return
	}
	g.upload(fr)
	g.logger.Infof("spawned %d %s, %d boids now", grp.Amount, groupLabel(grp), fr.Agents)
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.drawAvg = g.drawAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	if whiteImage == nil {
		whiteImage = ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
	}

	screen.Fill(background)
	if len(g.indices) > 0 {
		screen.DrawTriangles32(g.vertices, g.indices, whiteImage, &ebiten.DrawTrianglesOptions{})
	}

	if g.showPanel {
		g.panel.Draw(screen)
	}
	g.drawHUD(screen)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	x := float64(g.cfg.WorldWidth) - 330
	state := flock.Normal
	if g.frame.Frozen {
		state = flock.Frozen
	}
	lines := []string{
		fmt.Sprintf("%s | boids %d | tick %d", state, g.frame.Agents, g.frame.Ticks),
		fmt.Sprintf("FPS %.1f TPS %.1f | upd %.2fms draw %.2fms", ebiten.ActualFPS(), ebiten.ActualTPS(), g.updateAvg, g.drawAvg),
		"F freeze  H panel  1-9 spawn  ESC quit",
	}
	y := 8.0
	for _, l := range lines {
		drawText(screen, l, x, y, color.White)
		y += hudLine
	}

	// Legend, one line per configured group in its own colour.
	for i, grp := range g.cfg.Groups {
		c := grp.FlockColour().RGBA()
		drawText(screen, fmt.Sprintf("%d  %s (%s)", i+1, groupLabel(grp), grp.Type), x, y, c)
		y += hudLine
	}
}

func drawText(screen *ebiten.Image, s string, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, hudFace, op)
}

func (g *Game) Layout(w, h int) (int, int) {
	return int(g.cfg.WorldWidth), int(g.cfg.WorldHeight)
}
