package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minefield/internal/app"
	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/mines"
)

var (
	log = logrus.New()

	configPath string
)

func init() {
	const (
		defaultConfigPath = "/run/config.json"
		usage             = "config file path"
	)
	flag.StringVar(&configPath, "config", defaultConfigPath, usage)
	flag.StringVar(&configPath, "c", defaultConfigPath, usage+" (shorthand)")
}

func main() {
	mainCtx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	flag.Parse()

	cfg, err := config.Read(configPath)
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.SetupLogging(log); err != nil {
		log.Fatal(err)
	}
	mines.Log = log

	log.Info("starting up, mode = ", cfg.Mode)
	log.WithFields(cfg.Fields()).Debug("config")

	a, err := app.New(log, cfg, nil)
	if err != nil {
		log.Fatal("unable to set up server: ", err)
	}

	if err := a.Run(mainCtx); err != nil {
		log.Printf("exit reason: %s\n", err)
	}
}
