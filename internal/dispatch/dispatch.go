// Package dispatch fans simulation events out to audio, persistence and UI
// callbacks after each tick.
package dispatch

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cloudhop/internal/core"
)

// Queue bounds for pending best-score writes and background jobs.
const (
	saveQueueSize = 8
	jobQueueSize  = 8
)

// AudioSink receives sound triggers. Implementations must not block.
type AudioSink interface {
	PlayJump()
	PlayLanding()
	PlayGameOver()
	StartMusic()
	StopMusic()
}

// BestScoreSaver persists a new best score.
type BestScoreSaver interface {
	SetBestScore(score int) error
}

// Options wires the dispatcher's collaborators. Any of them may be nil.
type Options struct {
	Audio         AudioSink
	Saver         BestScoreSaver
	OnScoreChange func(score int)
	OnGameOver    func(score int)
	Logger        *log.Logger
	// Context, when set, closes the dispatcher once it is done.
	Context context.Context
}

// Dispatcher routes events to collaborators without blocking the caller.
type Dispatcher struct {
	audio         AudioSink
	saver         BestScoreSaver
	onScoreChange func(int)
	onGameOver    func(int)
	logger        *log.Logger

	saves   chan int
	jobs    chan func()
	dropped atomic.Int64
	wg      sync.WaitGroup
	mu      sync.Mutex
	closed  bool
}

// New creates a dispatcher and starts its persistence worker.
func New(opts Options) *Dispatcher {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	d := &Dispatcher{
		audio:         opts.Audio,
		saver:         opts.Saver,
		onScoreChange: opts.OnScoreChange,
		onGameOver:    opts.OnGameOver,
		logger:        logger,
		saves:         make(chan int, saveQueueSize),
		jobs:          make(chan func(), jobQueueSize),
	}

	d.wg.Add(2)
	go d.persist()
	go d.work()

	if opts.Context != nil {
		go func() {
			<-opts.Context.Done()
			d.Close()
		}()
	}
	return d
}

// Dispatch routes events in order. It never returns an error; collaborator
// failures are logged.
func (d *Dispatcher) Dispatch(events []core.Event) {
	for _, ev := range events {
		d.route(ev)
	}
}

func (d *Dispatcher) route(ev core.Event) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("event handler panicked", "event", ev.Kind, "panic", fmt.Sprint(r))
		}
	}()

	switch ev.Kind {
	case core.EventMusicStart:
		if d.audio != nil {
			d.audio.StartMusic()
		}
	case core.EventJump:
		if d.audio != nil {
			d.audio.PlayJump()
		}
	case core.EventLanding:
		if d.audio != nil {
			d.audio.PlayLanding()
		}
	case core.EventMusicStop:
		if d.audio != nil {
			d.audio.StopMusic()
		}
	case core.EventScoreChanged:
		if d.onScoreChange != nil {
			d.onScoreChange(ev.Score)
		}
	case core.EventNewBest:
		d.queueSave(ev.Score)
	case core.EventGameOver:
		if d.audio != nil {
			d.audio.PlayGameOver()
		}
		if d.onGameOver != nil {
			d.onGameOver(ev.Score)
		}
	default:
		d.logger.Debug("ignoring event", "event", ev.Kind)
	}
}

func (d *Dispatcher) queueSave(score int) {
	if d.saver == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}

	// Bests only grow, so on a full queue the oldest pending one goes.
	// The lock keeps this the only sender, so the loop ends.
	for {
		select {
		case d.saves <- score:
			return
		default:
		}
		select {
		case <-d.saves:
			d.dropped.Add(1)
		default:
		}
	}
}

// Go runs job on the background worker, after any job queued before it.
// It never blocks: a job submitted after Close or onto a full queue is
// skipped and Go reports false.
func (d *Dispatcher) Go(job func()) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return false
	}
	select {
	case d.jobs <- job:
		return true
	default:
		d.logger.Warn("background queue full, skipping job")
		return false
	}
}

func (d *Dispatcher) work() {
	defer d.wg.Done()
	for job := range d.jobs {
		d.run(job)
	}
}

func (d *Dispatcher) run(job func()) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("background job panicked", "panic", fmt.Sprint(r))
		}
	}()
	job()
}

func (d *Dispatcher) persist() {
	defer d.wg.Done()
	for score := range d.saves {
		d.save(score)
	}
}

func (d *Dispatcher) save(score int) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("best score saver panicked", "panic", fmt.Sprint(r))
		}
	}()

	if err := d.saver.SetBestScore(score); err != nil {
		d.logger.Warn("failed to persist best score", "score", score, "err", err)
		return
	}
	d.logger.Debug("best score persisted", "score", score)
}

// Dropped returns how many queued best-score writes were superseded by a
// newer best on a full queue.
func (d *Dispatcher) Dropped() int64 {
	return d.dropped.Load()
}

// Close stops accepting saves and jobs and waits for queued ones to finish.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.saves)
		close(d.jobs)
	}
	d.mu.Unlock()

	d.wg.Wait()
}
