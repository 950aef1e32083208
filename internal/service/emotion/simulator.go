// Package emotion produces simulated camera emotion readings.
package emotion

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	analysis "github.com/moodmate/companion/internal/analysis/emotion"
)

// Simulator drifts readings from the baseline on every tick.
type Simulator struct {
	mu       sync.Mutex
	readings analysis.Readings
	rnd      *rand.Rand
	interval time.Duration
}

// NewSimulator creates a simulator at the baseline. A nil src seeds from the clock.
func NewSimulator(interval time.Duration, src rand.Source) *Simulator {
	if src == nil {
		now := uint64(time.Now().UnixNano())
		src = rand.NewPCG(now, now>>1)
	}
	return &Simulator{
		readings: analysis.Baseline(),
		rnd:      rand.New(src),
		interval: interval,
	}
}

// Current returns the latest readings.
func (s *Simulator) Current() analysis.Readings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readings
}

// Step advances one tick and returns the new readings.
func (s *Simulator) Step() analysis.Readings {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readings = s.readings.Perturb(s.rnd)
	return s.readings
}

// Run steps every interval and hands each sample to onSample until ctx is done.
func (s *Simulator) Run(ctx context.Context, onSample func(analysis.Readings)) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sample := s.Step()
			if onSample != nil {
				onSample(sample)
			}
		}
	}
}

// Stream is a running simulator. Stop ends it and waits for the loop to exit.
type Stream struct {
	sim    *Simulator
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Start runs the simulator in the background.
func (s *Simulator) Start(ctx context.Context, onSample func(analysis.Readings)) *Stream {
	ctx, cancel := context.WithCancel(ctx)
	st := &Stream{sim: s, cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(st.done)
		s.Run(ctx, onSample)
	}()
	return st
}

// Readings returns the simulator's latest readings.
func (st *Stream) Readings() analysis.Readings {
	return st.sim.Current()
}

func (st *Stream) Stop() {
	st.once.Do(func() {
		st.cancel()
		<-st.done
	})
}
