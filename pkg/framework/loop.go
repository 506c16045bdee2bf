package framework

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/golang/glog"
)

// Loop drives all per-iteration work from a single goroutine. Controllers
// own whatever state they mutate; other goroutines reach them only through
// PostMessage. An iteration runs every Interval, or immediately after
// TriggerNext.
type Loop struct {
	Interval time.Duration

	controllers [phaseCount][]Controller
	runners     []Runnable

	lock    sync.Mutex
	pending []Message

	wakeUpCh chan struct{}
}

// LoopAdder wires a component into a loop.
type LoopAdder interface {
	AddToLoop(*Loop)
}

var loopCtxKey = &Loop{}

// LoopCtlFrom gets the LoopControl from a runner context. Runnables spawned
// by a loop use it to post messages back.
func LoopCtlFrom(ctx context.Context) LoopControl {
	return ctx.Value(loopCtxKey).(LoopControl)
}

// NewLoop creates a loop with the default interval.
func NewLoop() *Loop {
	return &Loop{
		Interval: 5 * time.Millisecond,
		wakeUpCh: make(chan struct{}, 1),
	}
}

// Add wires components into the loop.
func (l *Loop) Add(adders ...LoopAdder) *Loop {
	for _, adder := range adders {
		adder.AddToLoop(l)
	}
	return l
}

// AddController registers controllers at a phase. Controllers that also
// implement Runnable are spawned alongside the loop.
func (l *Loop) AddController(phase int, ctls ...Controller) *Loop {
	l.controllers[phase] = append(l.controllers[phase], ctls...)
	for _, ctl := range ctls {
		if runner, ok := ctl.(Runnable); ok {
			l.runners = append(l.runners, runner)
		}
	}
	return l
}

// AddRunnable registers background runners spawned alongside the loop.
func (l *Loop) AddRunnable(runnables ...Runnable) *Loop {
	l.runners = append(l.runners, runnables...)
	return l
}

// Run implements Runnable. It spawns the registered runners and executes
// iterations until the context is canceled.
func (l *Loop) Run(ctx context.Context) error {
	if l.wakeUpCh == nil {
		l.wakeUpCh = make(chan struct{}, 1)
	}

	runner := NewRunnerWith(context.WithValue(ctx, loopCtxKey, l))
	runner.Go(l.runners...)
	defer runner.Wait()

	interval := l.Interval
	if interval <= 0 {
		interval = 5 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			l.runIteration(ctx)
		case <-l.wakeUpCh:
			l.runIteration(ctx)
		}
	}
}

// RunOrFail runs the loop from main and exits on failure. Cancellation is
// a clean stop.
func (l *Loop) RunOrFail() {
	if err := l.Run(context.Background()); err != nil && err != context.Canceled {
		log.Fatalln(err)
	}
}

// PostMessage implements LoopControl.
func (l *Loop) PostMessage(msg Message) {
	l.lock.Lock()
	l.pending = append(l.pending, msg)
	l.lock.Unlock()
}

// TriggerNext implements LoopControl.
func (l *Loop) TriggerNext() {
	select {
	case l.wakeUpCh <- struct{}{}:
	default:
	}
}

func (l *Loop) runIteration(ctx context.Context) {
	iter := &loopIteration{loop: l, time: time.Now()}
	l.lock.Lock()
	iter.messages, l.pending = l.pending, nil
	l.lock.Unlock()
	iter.ctx = context.WithValue(ctx, loopCtxKey, iter)
	for phase := 0; phase < phaseCount; phase++ {
		iter.phase = phase
		for _, ctl := range l.controllers[phase] {
			if err := ctl.Control(iter); err != nil {
				glog.Errorf("controller error: %v", err)
			}
		}
	}
}

type loopIteration struct {
	loop     *Loop
	ctx      context.Context
	time     time.Time
	phase    int
	messages []Message
}

func (t *loopIteration) Context() context.Context { return t.ctx }

func (t *loopIteration) Time() time.Time { return t.time }

func (t *loopIteration) Phase() int { return t.phase }

func (t *loopIteration) TakeMessages() []Message {
	msgs := t.messages
	t.messages = nil
	return msgs
}

func (t *loopIteration) PostMessage(msg Message) { t.loop.PostMessage(msg) }

func (t *loopIteration) TriggerNext() { t.loop.TriggerNext() }
