/*
Screen space ambient occlusion sample built on the engine package
*/
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/anima-ssao/engine"
	"github.com/spaghettifunk/anima-ssao/engine/core"
	"github.com/spaghettifunk/anima-ssao/samples/ssao"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to the application configuration")
	headless := flag.Bool("headless", false, "run without a window")
	frames := flag.Int("frames", 0, "headless only: number of fixed steps to run, 0 runs until interrupted")
	seed := flag.Uint64("seed", 1, "seed for the random box sizes")
	flag.Parse()

	config, err := engine.LoadApplicationConfig(*configPath)
	if err != nil {
		core.LogFatal("failed to load configuration: %s", err)
	}
	if *headless {
		config.Headless = true
	}

	sample, err := ssao.New(config, *seed)
	if err != nil {
		core.LogFatal("failed to create the sample: %s", err)
	}

	e, err := engine.New(sample.Game)
	if err != nil {
		core.LogFatal("failed to create the engine: %s", err)
	}

	if err := e.Initialize(); err != nil {
		core.LogFatal("failed to initialize the engine: %s", err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	// start shutdown goroutine
	go func() {
		// capture sigterm and other system call here
		<-sigCh
		e.Stop()
	}()

	if config.Headless && *frames > 0 {
		const step = 1.0 / 60.0
		for i := 0; i < *frames && e.IsRunning(); i++ {
			if err := e.RunFrame(step); err != nil {
				core.LogError("frame %d failed: %s", i, err)
				break
			}
		}
	} else if err := e.Run(); err != nil {
		core.LogError("engine stopped with an error: %s", err)
	}

	if err := e.Shutdown(); err != nil {
		core.LogFatal("failed to shut down the engine: %s", err)
	}
}
