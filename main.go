package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/mococo/common"
	"github.com/milk9111/mococo/prefs"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode")
	prefsPath := flag.String("prefs", prefs.DefaultPath(), "high score file")
	seed := flag.Uint64("seed", 0, "random seed for spawn levels (0 = time based)")
	watch := flag.Bool("watch", false, "reload prefabs/ when tuning or scripts change on disk")
	mute := flag.Bool("mute", false, "disable audio")
	sounds := flag.String("sounds", "sounds", "directory with optional <cue>.wav overrides")
	flag.Parse()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("mococo")

	game := NewGame(Options{
		Debug:     *debug,
		PrefsPath: *prefsPath,
		Seed:      *seed,
		Watch:     *watch,
		Mute:      *mute,
		SoundsDir: *sounds,
	})
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
