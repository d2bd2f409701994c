// Package scheduler runs periodic background checks against the upstream
// platform.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultSchedule probes the upstream every five minutes.
const DefaultSchedule = "@every 5m"

// Pinger performs a single cheap request against the upstream.
type Pinger interface {
	Ping(ctx context.Context, endpoint string) error
}

// ProbeStatus is the outcome of the most recent probe.
type ProbeStatus struct {
	Reachable bool      `json:"reachable"`
	CheckedAt time.Time `json:"checked_at"`
	Error     string    `json:"error,omitempty"`
}

// Prober pings the upstream on a cron schedule and remembers the result.
type Prober struct {
	pinger   Pinger
	endpoint string
	timeout  time.Duration

	cronRunner *cron.Cron

	mu     sync.RWMutex
	status *ProbeStatus
}

// NewProber creates a Prober. Start must be called to begin probing.
func NewProber(pinger Pinger, endpoint string, timeout time.Duration) *Prober {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Prober{
		pinger:   pinger,
		endpoint: endpoint,
		timeout:  timeout,
		cronRunner: cron.New(
			cron.WithParser(cron.NewParser(cron.SecondOptional|cron.Minute|cron.Hour|cron.Dom|cron.Month|cron.Dow|cron.Descriptor)),
			cron.WithChain(
				cron.SkipIfStillRunning(cron.DefaultLogger),
				cron.Recover(cron.DefaultLogger),
			),
		),
	}
}

// Start schedules the probe, runs it once immediately and starts the cron
// runner.
func (p *Prober) Start(schedule string) error {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	if _, err := p.cronRunner.AddFunc(schedule, p.Probe); err != nil {
		return fmt.Errorf("invalid probe schedule %q: %w", schedule, err)
	}
	go p.Probe()
	p.cronRunner.Start()
	log.Printf("[Scheduler] Upstream probe scheduled (%s)", schedule)
	return nil
}

// Stop halts the cron runner and waits for a running probe to finish.
func (p *Prober) Stop() {
	<-p.cronRunner.Stop().Done()
	log.Println("[Scheduler] Upstream probe stopped")
}

// Probe pings the upstream once and records the outcome.
func (p *Prober) Probe() {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	status := ProbeStatus{Reachable: true, CheckedAt: time.Now().UTC()}
	if err := p.pinger.Ping(ctx, p.endpoint); err != nil {
		status.Reachable = false
		status.Error = err.Error()
		log.Printf("[Scheduler] Upstream probe failed: %v", err)
	}

	p.mu.Lock()
	p.status = &status
	p.mu.Unlock()
}

// Status returns the last probe result, or nil before the first probe.
func (p *Prober) Status() *ProbeStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.status == nil {
		return nil
	}
	s := *p.status
	return &s
}
