package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/footfall/logging"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	watch := flag.Bool("watch", false, "rebuild footsteps when prefabs/ changes on disk")
	jsonLogs := flag.Bool("json", false, "log JSON lines")
	flag.Parse()

	log := logging.New(logging.Options{Debug: *debug, JSON: *jsonLogs})

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowTitle("footfall")

	game, err := NewGame(GameOptions{Debug: *debug, Watch: *watch, Log: log})
	if err != nil {
		log.Error().Err(err).Msg("start game")
		os.Exit(1)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Error().Err(err).Msg("run game")
		os.Exit(1)
	}
}
