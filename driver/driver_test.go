package driver

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/blockfall/engine"
	"github.com/lixenwraith/blockfall/input"
	"github.com/lixenwraith/blockfall/render"
)

// chanSource replays queued events and returns nil once closed
type chanSource struct {
	events chan tcell.Event
}

func newChanSource(evs ...tcell.Event) *chanSource {
	s := &chanSource{events: make(chan tcell.Event, len(evs)+1)}
	for _, ev := range evs {
		s.events <- ev
	}
	return s
}

func (s *chanSource) PollEvent() tcell.Event {
	ev, ok := <-s.events
	if !ok {
		return nil
	}
	return ev
}

// blockingSource never yields an event
type blockingSource struct{}

func (blockingSource) PollEvent() tcell.Event {
	select {}
}

type recordRenderer struct {
	mu    sync.Mutex
	snaps []engine.Snapshot
	err   error
	syncs int
}

func (r *recordRenderer) Draw(s engine.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.snaps = append(r.snaps, s)
	return nil
}

func (r *recordRenderer) Sync() {
	r.mu.Lock()
	r.syncs++
	r.mu.Unlock()
}

func (r *recordRenderer) last() engine.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snaps[len(r.snaps)-1]
}

type recordObserver struct {
	outcomes []engine.Outcome
}

func (o *recordObserver) Observe(out engine.Outcome, _ engine.Snapshot) {
	o.outcomes = append(o.outcomes, out)
}

func key(k tcell.Key) tcell.Event {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func runeKey(r rune) tcell.Event {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestRunUntilGameOver(t *testing.T) {
	g := engine.New()
	r := &recordRenderer{}
	obs := &recordObserver{}

	d := New(g, r, WithInterval(time.Millisecond), WithObserver(obs))
	res, err := d.Run(testContext(t), blockingSource{})

	require.NoError(t, err)
	assert.Equal(t, ResultGameOver, res)
	assert.True(t, g.Over())

	require.NotEmpty(t, obs.outcomes)
	assert.Equal(t, engine.StepGameOver, obs.outcomes[len(obs.outcomes)-1].Kind)
	assert.Len(t, obs.outcomes, int(g.Stats().Ticks))
	assert.True(t, r.last().Over, "final frame shows the stopped game")
}

func TestRunQuitKey(t *testing.T) {
	g := engine.New()
	r := &recordRenderer{}

	d := New(g, r, WithInterval(time.Hour))
	res, err := d.Run(testContext(t), newChanSource(key(tcell.KeyEscape)))

	require.NoError(t, err)
	assert.Equal(t, ResultQuit, res)
	assert.Len(t, r.snaps, 1, "only the initial frame")
}

func TestRunIntentsInOrder(t *testing.T) {
	g := engine.New()
	r := &recordRenderer{}

	src := newChanSource(runeKey('a'), runeKey('a'), runeKey('z'), key(tcell.KeyRight), key(tcell.KeyCtrlC))
	d := New(g, r, WithInterval(time.Hour))
	res, err := d.Run(testContext(t), src)

	require.NoError(t, err)
	assert.Equal(t, ResultQuit, res)

	_, col := g.Anchor()
	assert.Equal(t, 3, col)
	// initial frame plus one per bound intent; the unbound rune is ignored
	assert.Len(t, r.snaps, 4)
	assert.Equal(t, 3, r.last().Col)
}

func TestRunCustomKeyTable(t *testing.T) {
	g := engine.New()
	r := &recordRenderer{}

	kt := input.DefaultKeyTable()
	override, err := input.ParseBindings("left=h,none=a")
	require.NoError(t, err)
	kt.Merge(override)

	src := newChanSource(runeKey('a'), runeKey('h'), key(tcell.KeyEscape))
	d := New(g, r, WithInterval(time.Hour), WithKeyTable(kt))
	_, err = d.Run(testContext(t), src)
	require.NoError(t, err)

	_, col := g.Anchor()
	assert.Equal(t, 3, col)
}

func TestRunClosedSourceQuits(t *testing.T) {
	src := newChanSource()
	close(src.events)

	res, err := New(engine.New(), &recordRenderer{}, WithInterval(time.Hour)).Run(testContext(t), src)
	require.NoError(t, err)
	assert.Equal(t, ResultQuit, res)
}

func TestRunRedrawSyncs(t *testing.T) {
	r := &recordRenderer{}
	src := newChanSource(tcell.NewEventResize(80, 24), key(tcell.KeyCtrlL), key(tcell.KeyEscape))

	_, err := New(engine.New(), r, WithInterval(time.Hour)).Run(testContext(t), src)
	require.NoError(t, err)
	assert.Equal(t, 2, r.syncs)
	assert.Len(t, r.snaps, 3)
}

func TestRunRenderErrorIsReturned(t *testing.T) {
	r := &recordRenderer{err: render.ErrScreenTooSmall}

	res, err := New(engine.New(), r, WithInterval(time.Millisecond)).Run(testContext(t), blockingSource{})
	assert.Equal(t, ResultNone, res)
	assert.True(t, errors.Is(err, render.ErrScreenTooSmall))
}

func TestRunContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// The initial frame draws before the loop sees cancellation
	res, err := New(engine.New(), &recordRenderer{}, WithInterval(time.Hour)).Run(ctx, blockingSource{})
	assert.Equal(t, ResultNone, res)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunRejectsBadInterval(t *testing.T) {
	_, err := New(engine.New(), &recordRenderer{}, WithInterval(0)).Run(testContext(t), blockingSource{})
	assert.Error(t, err)
}

func TestTranslate(t *testing.T) {
	d := New(engine.New(), &recordRenderer{})

	it, ok := d.translate(runeKey('e'))
	require.True(t, ok)
	assert.Equal(t, Iteration{Kind: IterIntent, Intent: engine.IntentClockwise}, it)

	_, ok = d.translate(runeKey('x'))
	assert.False(t, ok)

	it, ok = d.translate(tcell.NewEventResize(10, 20))
	require.True(t, ok)
	assert.Equal(t, IterRedraw, it.Kind)

	_, ok = d.translate(tcell.NewEventInterrupt(nil))
	assert.False(t, ok)
}
