/*
This is an example of application that will use the
engine package to test things out
*/
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/affine/engine"
	"github.com/spaghettifunk/affine/engine/core"
	"github.com/spaghettifunk/affine/engine/renderer"
	"github.com/spaghettifunk/affine/testbed"
)

func main() {
	configPath := flag.String("config", "", "application config file (TOML)")
	scenePath := flag.String("scene", "", "scene file (TOML or YAML), overrides the config")
	frames := flag.Uint64("frames", 0, "number of frames to run, 0 runs until interrupted")
	watch := flag.Bool("watch", false, "reload the scene file when it changes")
	logLevel := flag.String("log-level", "", "debug, info, warn, error or fatal")
	flag.Parse()

	config := engine.DefaultApplicationConfig()
	config.Name = "Affine Testbed"
	if *configPath != "" {
		c, err := engine.LoadApplicationConfig(*configPath)
		if err != nil {
			core.LogFatal(err.Error())
		}
		config = c
	}

	// flags override the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scene":
			config.ScenePath = *scenePath
		case "frames":
			config.Frames = *frames
		case "watch":
			config.Watch = *watch
		case "log-level":
			lvl, err := core.ParseLogLevel(*logLevel)
			if err != nil {
				core.LogFatal(err.Error())
			}
			config.LogLevel = lvl
		}
	})

	backend, err := renderer.NewBackend(config.Renderer, os.Stdout)
	if err != nil {
		core.LogFatal(err.Error())
	}

	tb := testbed.NewTestGame(config)
	e, err := engine.New(tb.Game, backend)
	if err != nil {
		core.LogFatal(err.Error())
	}

	if err := e.Initialize(); err != nil {
		core.LogFatal(err.Error())
	}

	// capture sigterm and other system calls to stop the run
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	// run engine
	runErr := e.Run(ctx)
	if err := e.Shutdown(); err != nil {
		core.LogError(err.Error())
	}
	if runErr != nil {
		core.LogFatal(runErr.Error())
	}
}
