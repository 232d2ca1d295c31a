package driver

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/blockfall/constants"
	"github.com/lixenwraith/blockfall/core"
	"github.com/lixenwraith/blockfall/engine"
	"github.com/lixenwraith/blockfall/input"
)

// Source yields terminal events; a nil event means the source is closed
type Source interface {
	PollEvent() tcell.Event
}

// Renderer draws a snapshot
type Renderer interface {
	Draw(engine.Snapshot) error
}

// Observer is notified of every tick outcome, on the control goroutine
type Observer interface {
	Observe(engine.Outcome, engine.Snapshot)
}

// Option configures a Driver
type Option func(*Driver)

// WithInterval sets the gravity period
func WithInterval(d time.Duration) Option {
	return func(dr *Driver) { dr.interval = d }
}

// WithKeyTable replaces the default bindings
func WithKeyTable(kt *input.KeyTable) Option {
	return func(dr *Driver) { dr.keys = kt }
}

// WithLogger sets the driver logger
func WithLogger(l zerolog.Logger) Option {
	return func(dr *Driver) { dr.log = l }
}

// WithObserver appends an outcome observer
func WithObserver(o Observer) Option {
	return func(dr *Driver) { dr.observers = append(dr.observers, o) }
}

// Driver owns a Game and feeds it ticks and intents from two producers through one channel
type Driver struct {
	game      *engine.Game
	renderer  Renderer
	interval  time.Duration
	keys      *input.KeyTable
	log       zerolog.Logger
	observers []Observer
}

// New creates a driver for game drawing through renderer
func New(game *engine.Game, renderer Renderer, opts ...Option) *Driver {
	d := &Driver{
		game:     game,
		renderer: renderer,
		interval: constants.TickInterval,
		keys:     input.DefaultKeyTable(),
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run drives the game until it ends, the user quits, the source closes or ctx is done.
// Render failures are returned unchanged so callers can match them with errors.Is.
// The input producer stays blocked in PollEvent until the source is finalized.
func (d *Driver) Run(ctx context.Context, src Source) (Result, error) {
	if d.interval <= 0 {
		return ResultNone, fmt.Errorf("driver: tick interval must be positive, got %v", d.interval)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	iters := make(chan Iteration, constants.EventBufferSize)

	if err := d.render(); err != nil {
		return ResultNone, err
	}

	core.Go(func() { d.tickLoop(ctx, iters) })
	core.Go(func() { d.inputLoop(ctx, src, iters) })

	d.log.Info().Dur("interval", d.interval).Msg("driver started")

	for {
		select {
		case <-ctx.Done():
			d.log.Info().Err(ctx.Err()).Msg("driver canceled")
			return ResultNone, ctx.Err()

		case it := <-iters:
			switch it.Kind {
			case IterTick:
				out := d.game.Step()
				snap := d.game.Snapshot()
				for _, o := range d.observers {
					o.Observe(out, snap)
				}
				if out.Landed() {
					d.log.Debug().
						Stringer("step", out.Kind).
						Ints("cleared", out.Cleared).
						Stringer("piece", out.Piece).
						Uint64("tick", snap.Stats.Ticks).
						Msg("piece landed")
				}
				if err := d.renderer.Draw(snap); err != nil {
					return ResultNone, err
				}
				if !out.Continue() {
					d.log.Info().
						Uint64("ticks", snap.Stats.Ticks).
						Int("pieces", snap.Stats.Pieces).
						Int("rows", snap.Stats.RowsCleared).
						Msg("game over")
					return ResultGameOver, nil
				}

			case IterIntent:
				moved := d.game.Event(it.Intent)
				d.log.Trace().Stringer("intent", it.Intent).Bool("moved", moved).Msg("intent")
				if err := d.render(); err != nil {
					return ResultNone, err
				}

			case IterRedraw:
				if s, ok := d.renderer.(interface{ Sync() }); ok {
					s.Sync()
				}
				if err := d.render(); err != nil {
					return ResultNone, err
				}

			case IterQuit:
				d.log.Info().Msg("quit requested")
				return ResultQuit, nil
			}
		}
	}
}

func (d *Driver) render() error {
	return d.renderer.Draw(d.game.Snapshot())
}

// tickLoop emits one tick per interval
func (d *Driver) tickLoop(ctx context.Context, iters chan<- Iteration) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !send(ctx, iters, Iteration{Kind: IterTick}) {
				return
			}
		}
	}
}

// inputLoop translates terminal events into iterations
func (d *Driver) inputLoop(ctx context.Context, src Source, iters chan<- Iteration) {
	for {
		ev := src.PollEvent()
		if ev == nil {
			send(ctx, iters, Iteration{Kind: IterQuit})
			return
		}

		it, ok := d.translate(ev)
		if !ok {
			continue
		}
		if !send(ctx, iters, it) || it.Kind == IterQuit {
			return
		}
	}
}

// translate maps a terminal event to an iteration; false for events with no binding
func (d *Driver) translate(ev tcell.Event) (Iteration, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		b := d.keys.Lookup(ev)
		switch b.Action {
		case input.ActionIntent:
			return Iteration{Kind: IterIntent, Intent: b.Intent}, true
		case input.ActionQuit:
			return Iteration{Kind: IterQuit}, true
		case input.ActionRedraw:
			return Iteration{Kind: IterRedraw}, true
		}
	case *tcell.EventResize:
		return Iteration{Kind: IterRedraw}, true
	}
	return Iteration{}, false
}

func send(ctx context.Context, iters chan<- Iteration, it Iteration) bool {
	select {
	case iters <- it:
		return true
	case <-ctx.Done():
		return false
	}
}
