package main

import (
	"flag"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/console"
	"github.com/vancomm/minefield/internal/mines"
)

var (
	log = logrus.New()

	configPath string
	height     int
	width      int
	mineCount  int
)

func init() {
	const usage = "config file path"
	flag.StringVar(&configPath, "config", "", usage)
	flag.StringVar(&configPath, "c", "", usage+" (shorthand)")
	flag.IntVar(&height, "height", 0, "field height (default from config)")
	flag.IntVar(&width, "width", 0, "field width (default from config)")
	flag.IntVar(&mineCount, "mines", -1, "number of mines (asked for when unset)")
}

func main() {
	flag.Parse()

	cfg, err := config.Read(configPath)
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.SetupLogging(log); err != nil {
		log.Fatal(err)
	}
	mines.Log = log
	if !cfg.Development() {
		log.SetLevel(logrus.WarnLevel)
	}

	params := cfg.Game.Params()
	if height > 0 {
		params.Height = height
	}
	if width > 0 {
		params.Width = width
	}
	ask := mineCount < 0
	if !ask {
		params.MineCount = mineCount
	}
	log.WithFields(cfg.Fields()).Debug("config")

	game := console.New(os.Stdin, os.Stdout, log, nil)
	s, err := game.Setup(params, ask)
	if err != nil {
		log.Fatal(err)
	}
	if err := game.Play(s); err != nil {
		log.Fatal(err)
	}
}
