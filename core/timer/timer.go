// Package timer provides the named timers a binding uses to report where its
// time went. Totals are printed by the end-of-program handler under --verbose.
package timer

import (
	"sort"
	"sync"
	"time"

	"github.com/rcrowley/go-metrics"

	"github.com/shrit/mlpack/pkg/errors"
)

// Timers is a set of named, restartable stopwatches. Each Start/Stop pair adds
// one sample to a go-metrics Timer; the reported value is the sum of samples.
type Timers struct {
	mu       sync.Mutex
	registry metrics.Registry
	running  map[string]time.Time
	now      func() time.Time
}

// New returns an empty timer set.
func New() *Timers {
	return &Timers{
		registry: metrics.NewRegistry(),
		running:  make(map[string]time.Time),
		now:      time.Now,
	}
}

// Start begins timing name. Starting a timer that is already running is an
// error.
func (t *Timers) Start(name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.running[name]; ok {
		return errors.Newf("timer '%s' is already running", name)
	}
	t.running[name] = t.now()
	return nil
}

// Stop ends the running timer name and adds the elapsed time to its total.
func (t *Timers) Stop(name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	started, ok := t.running[name]
	if !ok {
		return errors.Newf("timer '%s' is not running", name)
	}
	delete(t.running, name)
	metrics.GetOrRegisterTimer(name, t.registry).Update(t.now().Sub(started))
	return nil
}

// Get returns the accumulated time of name, including the current run if the
// timer is still running.
func (t *Timers) Get(name string) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	var total time.Duration
	if m, ok := t.registry.Get(name).(metrics.Timer); ok {
		total = time.Duration(m.Sum())
	}
	if started, ok := t.running[name]; ok {
		total += t.now().Sub(started)
	}
	return total
}

// Count returns how many times name was stopped.
func (t *Timers) Count(name string) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if m, ok := t.registry.Get(name).(metrics.Timer); ok {
		return m.Count()
	}
	return 0
}

// Names returns every timer that was started, sorted.
func (t *Timers) Names() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	seen := make(map[string]struct{})
	t.registry.Each(func(name string, _ interface{}) {
		seen[name] = struct{}{}
	})
	for name := range t.running {
		seen[name] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StopAll stops every running timer.
func (t *Timers) StopAll() {
	t.mu.Lock()
	running := make([]string, 0, len(t.running))
	for name := range t.running {
		running = append(running, name)
	}
	t.mu.Unlock()
	for _, name := range running {
		_ = t.Stop(name)
	}
}

// Reset discards all timers.
func (t *Timers) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.registry.UnregisterAll()
	t.running = make(map[string]time.Time)
}
