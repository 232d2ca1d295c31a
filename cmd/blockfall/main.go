package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/blockfall/audio"
	"github.com/lixenwraith/blockfall/config"
	"github.com/lixenwraith/blockfall/constants"
	"github.com/lixenwraith/blockfall/core"
	"github.com/lixenwraith/blockfall/driver"
	"github.com/lixenwraith/blockfall/engine"
	"github.com/lixenwraith/blockfall/input"
	"github.com/lixenwraith/blockfall/logging"
	"github.com/lixenwraith/blockfall/render"
	"github.com/lixenwraith/blockfall/spectate"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Load(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "blockfall: %v\n", err)
		return 1
	}

	log, closer, err := logging.Setup(logging.Options{
		Enabled: cfg.Debug,
		Path:    cfg.LogFile,
		Level:   cfg.LogLevel,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "blockfall: %v\n", err)
		return 1
	}
	defer closer.Close()

	keys := input.DefaultKeyTable()
	override, err := input.ParseBindings(cfg.Keys)
	if err != nil {
		fmt.Fprintf(os.Stderr, "blockfall: keys: %v\n", err)
		return 1
	}
	keys.Merge(override)

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "blockfall: screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "blockfall: screen init: %v\n", err)
		return 1
	}
	core.SetCrashTerminal(screen)

	// Panics on this goroutine restore the terminal the same way as driver goroutines
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("crash")
			core.HandleCrash(r)
		}
	}()

	screen.SetStyle(tcell.StyleDefault.Background(constants.ColorBackground))
	screen.HideCursor()
	screen.Clear()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	game := engine.New()
	opts := []driver.Option{
		driver.WithInterval(cfg.TickInterval),
		driver.WithKeyTable(keys),
		driver.WithLogger(logging.Component(log, "driver")),
	}

	if cfg.Audio {
		sm := audio.NewSoundManager(logging.Component(log, "audio"))
		if err := sm.Initialize(); err != nil {
			// No audio device is not fatal
			log.Warn().Err(err).Msg("audio disabled")
		} else {
			defer sm.Cleanup()
			opts = append(opts, driver.WithObserver(sm))
		}
	}

	if cfg.SpectateAddr != "" {
		hubLog := logging.Component(log, "spectate")
		hub := spectate.NewHub(hubLog)
		hub.Publish(game.Snapshot())
		opts = append(opts, driver.WithObserver(hub))

		srv := spectate.NewServer(cfg.SpectateAddr, hub, hubLog)
		srvCtx, cancelSrv := context.WithCancel(ctx)
		srvDone := make(chan struct{})
		core.Go(func() {
			defer close(srvDone)
			if err := srv.Run(srvCtx); err != nil {
				hubLog.Error().Err(err).Msg("spectator server failed")
			}
		})
		defer func() {
			cancelSrv()
			<-srvDone
		}()
	}

	d := driver.New(game, render.NewGridRenderer(screen), opts...)
	res, err := d.Run(ctx, screen)

	// Restore the terminal before anything is printed
	screen.Fini()
	core.SetCrashTerminal(nil)

	return report(os.Stdout, os.Stderr, log, game.Stats(), res, err)
}

// report prints the end-of-run summary and picks the exit code
func report(stdout, stderr io.Writer, log zerolog.Logger, stats engine.Stats, res driver.Result, err error) int {
	switch {
	case errors.Is(err, render.ErrScreenTooSmall):
		log.Error().Err(err).Msg("render failed")
		fmt.Fprintf(stderr, "blockfall: %v\n", err)
		return 1
	case errors.Is(err, context.Canceled):
		log.Info().Msg("terminated")
		return 0
	case err != nil:
		log.Error().Err(err).Msg("driver failed")
		fmt.Fprintf(stderr, "blockfall: %v\n", err)
		return 1
	}

	if res == driver.ResultGameOver {
		fmt.Fprintf(stdout, "%s ticks %d, pieces %d, rows %d\n",
			constants.TextGameOver, stats.Ticks, stats.Pieces, stats.RowsCleared)
	}
	return 0
}
