package main

import (
	"fmt"
	"image/color"
	"log"
	"math/rand/v2"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/mococo/common"
	"github.com/milk9111/mococo/ecs/system"
	"github.com/milk9111/mococo/game"
	"github.com/milk9111/mococo/prefabs"
	"github.com/milk9111/mococo/prefs"
	"golang.org/x/image/font/basicfont"
)

const tuningFile = "tuning.yaml"

const spawnScript = "spawn.tengo"

var (
	backgroundColor = color.NRGBA{R: 0xf6, G: 0xee, B: 0xdc, A: 0xff}
	wellColor       = color.NRGBA{R: 0x8a, G: 0x6b, B: 0x4e, A: 0xff}
	lineColor       = color.NRGBA{R: 0xc9, G: 0xb8, B: 0x9b, A: 0xff}
	warnColor       = color.NRGBA{R: 0xe0, G: 0x3c, B: 0x31, A: 0xff}
	hudColor        = color.NRGBA{R: 0x4a, G: 0x3a, B: 0x2c, A: 0xff}
)

type Options struct {
	Debug     bool
	PrefsPath string
	Seed      uint64
	Watch     bool
	Mute      bool
	SoundsDir string
}

// Game is the Ebiten front end. It owns one game.Session at a time and
// replaces it when the scene restarts.
type Game struct {
	opts   Options
	tuning prefabs.Tuning
	rule   system.SpawnRule
	store  system.Store

	session *game.Session
	physics *system.PhysicsSystem
	pres    *presenter
	mixer   *mixer
	screens *screens
	view    view
	watcher *prefabs.Watcher
	face    ebtext.Face

	restart bool
	quit    bool
	frames  int
	rounds  uint64
}

func NewGame(opts Options) *Game {
	g := &Game{
		opts: opts,
		face: ebtext.NewGoXFace(basicfont.Face7x13),
	}

	g.loadTuning()
	g.loadRule()

	store, err := prefs.Open(opts.PrefsPath)
	if err != nil {
		log.Printf("prefs: %v", err)
	}
	g.store = store

	g.mixer = newMixer(opts.Mute, opts.SoundsDir)

	if opts.Watch {
		w, err := prefabs.NewWatcher(prefabs.DiskDir, filepath.Join(prefabs.DiskDir, "scripts"))
		if err != nil {
			log.Printf("watch: %v", err)
		} else {
			g.watcher = w
		}
	}

	g.newSession()
	return g
}

func (g *Game) loadTuning() {
	tuning, err := prefabs.LoadTuning(tuningFile)
	if err != nil {
		log.Printf("tuning: using defaults: %v", err)
	}
	g.tuning = tuning
	g.view = newView(tuning)
	ebiten.SetTPS(tuning.TPS)
}

func (g *Game) loadRule() {
	src, err := prefabs.LoadScript(spawnScript)
	if err != nil {
		log.Printf("spawn: %v", err)
		g.rule = nil
		return
	}
	rule, err := system.NewScriptRule(src)
	if err != nil {
		log.Printf("spawn: using builtin rule: %v", err)
		g.rule = nil
		return
	}
	g.rule = rule
}

// newSession starts a fresh round on the title screen.
func (g *Game) newSession() {
	g.rounds++
	seed := g.opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	high := g.store.GetInt(system.HighScoreKey, 0)
	g.screens = newScreens(g.face, high, g.start, g.reset)
	g.pres = newPresenter(g.mixer, g.screens, g.opts.Debug)
	g.physics = system.NewPhysicsSystem(g.tuning)
	g.session = game.New(game.Options{
		Tuning:    g.tuning,
		Physics:   g.physics,
		Presenter: g.pres,
		Store:     g.store,
		Scene:     g,
		Rand:      rand.New(rand.NewPCG(seed, g.rounds)),
		Rule:      g.rule,
		Debug:     g.opts.Debug,
	})
	g.pres.high = high
}

func (g *Game) start() {
	g.screens.hide()
	g.session.Start()
}

func (g *Game) reset() {
	g.session.Reset()
}

// Restart implements system.Scene.
func (g *Game) Restart() {
	g.restart = true
}

// Quit implements system.Scene.
func (g *Game) Quit() {
	g.quit = true
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	g.mixer.close()
}

func (g *Game) Update() error {
	g.frames++

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.session.Quit()
	}
	if g.quit {
		return ebiten.Termination
	}

	g.pollWatcher()
	if g.restart {
		g.restart = false
		g.newSession()
	}

	g.screens.Update()
	g.handlePointer()
	g.session.Update()
	g.pres.update()
	return nil
}

func (g *Game) handlePointer() {
	if !g.session.Started() || g.session.Over() {
		return
	}
	sx, sy := pointerPosition()
	x, y := g.view.toWorld(float64(sx), float64(sy))
	g.session.Drag(x, y)

	if pointerJustPressed() {
		g.session.TouchDown()
	}
	if pointerJustReleased() {
		g.session.TouchUp()
	}
}

// pollWatcher reloads tuning or the spawn rule after an edit on disk and
// restarts the round so every system sees the new values.
func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name := <-g.watcher.Events:
			switch name {
			case tuningFile:
				g.loadTuning()
			case spawnScript:
				g.loadRule()
			default:
				continue
			}
			log.Printf("watch: %s changed, restarting", name)
			g.restart = true
		case err := <-g.watcher.Errors:
			log.Printf("watch: %v", err)
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	g.drawWell(screen)

	for _, p := range g.session.Pieces() {
		cx, cy := g.view.toScreen(p.X, p.Y)
		r := float32(p.Scale / 2 * g.view.ppu)
		if r <= 0 {
			continue
		}
		vector.FillCircle(screen, cx, cy, r, g.tuning.LevelColor(p.Visual), true)
		if p.Warning && g.frames/8%2 == 0 {
			vector.StrokeCircle(screen, cx, cy, r, 3, warnColor, true)
		}
	}

	for _, e := range g.pres.effects {
		cx, cy := g.view.toScreen(e.x, e.y)
		grow := 1 + float64(effectFrames-e.ttl)/effectFrames
		r := float32(e.scale / 2 * g.view.ppu * grow)
		alpha := uint8(255 * e.ttl / effectFrames)
		vector.StrokeCircle(screen, cx, cy, r, 2, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: alpha}, true)
	}

	if g.session.Started() {
		g.drawText(screen, humanize.Comma(int64(g.pres.score)), 20, 20, 3)
		g.drawText(screen, "best "+humanize.Comma(int64(g.pres.high)), 20, 70, 2)
	}

	g.screens.Draw(screen)

	if g.opts.Debug {
		g.physics.DrawDebug(screen, g.view.toScreen)
		ebitenutil.DebugPrint(screen, fmt.Sprintf("TPS: %.1f  pieces: %d/%d  max level: %d",
			ebiten.ActualTPS(), len(g.session.Pieces()), g.session.Pool().Created(), g.session.MaxLevel()))
	}
}

func (g *Game) drawWell(screen *ebiten.Image) {
	well := g.view.well()
	thickness := float32(wallThicknessPx)
	x0, y0 := float32(well.X), float32(well.Y)
	x1, y1 := float32(well.X+well.Width), float32(well.Y+well.Height)

	vector.FillRect(screen, x0-thickness, y1, x1-x0+2*thickness, thickness, wellColor, false)
	vector.FillRect(screen, x0-thickness, y0, thickness, y1-y0, wellColor, false)
	vector.FillRect(screen, x1, y0, thickness, y1-y0, wellColor, false)

	line := lineColor
	if g.pres.warnings > 0 {
		line = warnColor
	}
	_, dy := g.view.toScreen(0, g.tuning.Well.DangerLine)
	vector.StrokeLine(screen, x0, dy, x1, dy, 2, line, true)
}

func (g *Game) drawText(screen *ebiten.Image, s string, x, y, scale float64) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(hudColor)
	ebtext.Draw(screen, s, g.face, op)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
