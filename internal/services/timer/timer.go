package timer

import (
	"sync"
	"time"
)

// RepeatedTimer calls function every interval until stopped.
type RepeatedTimer struct {
	mu        sync.Mutex
	interval  time.Duration
	function  func()
	stopChan  chan struct{}
	done      chan struct{}
	isRunning bool
}

// NewRepeatedTimer returns a started timer.
func NewRepeatedTimer(interval time.Duration, function func()) *RepeatedTimer {
	rt := &RepeatedTimer{
		interval: interval,
		function: function,
	}
	rt.Start()
	return rt
}

func (rt *RepeatedTimer) Start() {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if rt.isRunning {
		return
	}

	rt.isRunning = true
	rt.stopChan = make(chan struct{})
	rt.done = make(chan struct{})
	go func(stop, done chan struct{}) {
		defer close(done)
		ticker := time.NewTicker(rt.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rt.function()
			case <-stop:
				return
			}
		}
	}(rt.stopChan, rt.done)
}

// Stop halts the timer and waits for an in-flight call to return.
func (rt *RepeatedTimer) Stop() {
	rt.mu.Lock()
	if !rt.isRunning {
		rt.mu.Unlock()
		return
	}
	rt.isRunning = false
	close(rt.stopChan)
	done := rt.done
	rt.mu.Unlock()

	<-done
}

func (rt *RepeatedTimer) Running() bool {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.isRunning
}
