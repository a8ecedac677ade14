package audio

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// queueSize bounds pending sound requests.
const queueSize = 16

// Output is the audio trigger surface used by the game's collaborators.
// All methods return immediately.
type Output interface {
	PlayJump()
	PlayLanding()
	PlayGameOver()
	StartMusic()
	StopMusic()
	Close() error
}

// Silent is an Output that plays nothing.
type Silent struct{}

func (Silent) PlayJump()     {}
func (Silent) PlayLanding()  {}
func (Silent) PlayGameOver() {}
func (Silent) StartMusic()   {}
func (Silent) StopMusic()    {}
func (Silent) Close() error  { return nil }

type cue int

const (
	cueJump cue = iota
	cueLanding
	cueGameOver
	cueMusicStart
	cueMusicStop
)

// Player mixes effects and music into a beep.Mixer from a worker goroutine.
type Player struct {
	cfg    Config
	rate   beep.SampleRate
	mixer  *beep.Mixer
	lock   func()
	unlock func()
	logger *log.Logger

	cues    chan cue
	dropped atomic.Int64
	music   *beep.Ctrl // Owned by the worker
	wg      sync.WaitGroup
	once    sync.Once
	release func()
}

// Open starts speaker output. Disabled audio or a failing sound device
// yields Silent; the failure is logged, never returned.
func Open(cfg Config, logger *log.Logger) Output {
	if !cfg.Enabled {
		return Silent{}
	}

	rate := beep.SampleRate(cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		logger.Warn("audio unavailable, continuing silently", "err", err)
		return Silent{}
	}

	mixer := &beep.Mixer{}
	speaker.Play(mixer)

	p := newPlayer(cfg, mixer, speaker.Lock, speaker.Unlock, logger)
	p.release = speaker.Close
	logger.Debug("audio started", "rate", cfg.SampleRate)
	return p
}

// newPlayer wires a player to any mixer; lock and unlock guard mixer access.
func newPlayer(cfg Config, mixer *beep.Mixer, lock, unlock func(), logger *log.Logger) *Player {
	p := &Player{
		cfg:    cfg,
		rate:   beep.SampleRate(cfg.SampleRate),
		mixer:  mixer,
		lock:   lock,
		unlock: unlock,
		logger: logger,
		cues:   make(chan cue, queueSize),
	}
	p.wg.Add(1)
	go p.run()
	return p
}

func (p *Player) PlayJump()     { p.enqueue(cueJump) }
func (p *Player) PlayLanding()  { p.enqueue(cueLanding) }
func (p *Player) PlayGameOver() { p.enqueue(cueGameOver) }
func (p *Player) StartMusic()   { p.enqueue(cueMusicStart) }
func (p *Player) StopMusic()    { p.enqueue(cueMusicStop) }

// Dropped returns how many requests were discarded because the queue was full.
func (p *Player) Dropped() int64 {
	return p.dropped.Load()
}

func (p *Player) enqueue(c cue) {
	select {
	case p.cues <- c:
	default:
		p.dropped.Add(1)
	}
}

// Close stops the worker, silences the mixer and releases the device.
func (p *Player) Close() error {
	p.once.Do(func() {
		close(p.cues)
		p.wg.Wait()

		p.lock()
		p.mixer.Clear()
		p.unlock()

		if p.release != nil {
			p.release()
		}
		if n := p.dropped.Load(); n > 0 {
			p.logger.Debug("audio requests dropped", "count", n)
		}
	})
	return nil
}

func (p *Player) run() {
	defer p.wg.Done()
	for c := range p.cues {
		p.handle(c)
	}
}

func (p *Player) handle(c cue) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("audio worker recovered", "panic", fmt.Sprint(r))
		}
	}()

	sfx := p.cfg.MasterVolume * p.cfg.SFXVolume

	switch c {
	case cueJump:
		p.add(newVolume(JumpSound(p.rate), sfx))
	case cueLanding:
		p.add(newVolume(LandingSound(p.rate), sfx))
	case cueGameOver:
		p.add(newVolume(GameOverSound(p.rate), sfx))
	case cueMusicStart:
		if p.music != nil {
			return
		}
		p.music = &beep.Ctrl{Streamer: newVolume(NewMusic(p.rate), p.cfg.MasterVolume*p.cfg.MusicVolume)}
		p.add(p.music)
	case cueMusicStop:
		if p.music == nil {
			return
		}
		// A nil streamer drains the Ctrl, so the mixer drops it.
		p.lock()
		p.music.Streamer = nil
		p.unlock()
		p.music = nil
	}
}

func (p *Player) add(s beep.Streamer) {
	p.lock()
	p.mixer.Add(s)
	p.unlock()
}
