package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	charmlog "github.com/charmbracelet/log"
	"gitlab.com/gomidi/midi/v2"

	"midilisten/seq"
)

func main() {
	inPort := flag.String("input", "", "MIDI input port name (overrides config)")
	configFile := flag.String("config", "config.yaml", "config file")
	bpm := flag.Float64("bpm", 0, "BPM for tick timestamps (overrides config)")
	debug := flag.Bool("debug", false, "log unhandled messages")

	flag.Parse()

	logger := charmlog.NewWithOptions(os.Stdout, charmlog.Options{
		ReportTimestamp: false,
		Prefix:          "mididump",
	})
	if *debug {
		logger.SetLevel(charmlog.DebugLevel)
	}

	cfg, err := seq.LoadConfig(*configFile)
	if err != nil {
		logger.Fatal(err)
	}
	if *inPort != "" {
		cfg.PortName = *inPort
	}
	if *bpm > 0 {
		cfg.BPM = *bpm
	}

	defer midi.CloseDriver()
	listener, err := seq.Open(cfg)
	if err != nil {
		logger.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	ctx = context.WithValue(ctx, charmlog.ContextKey, logger)
	go func() {
		signalCh := make(chan os.Signal, 1)
		signal.Notify(signalCh, os.Interrupt)
		<-signalCh
		logger.Info("interrupt")
		cancel()
	}()

	dump := &seq.DumpDecoder{Logger: logger, Names: cfg.ControllerNames()}
	if err := seq.Run(ctx, listener, dump); err != nil {
		logger.Fatal(err)
	}
}
