package scheduler

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// MockPinger is a mock implementation of Pinger.
type MockPinger struct {
	PingFunc func(ctx context.Context, endpoint string) error
	calls    atomic.Int32
}

func (m *MockPinger) Ping(ctx context.Context, endpoint string) error {
	m.calls.Add(1)
	if m.PingFunc != nil {
		return m.PingFunc(ctx, endpoint)
	}
	return nil
}

func TestProber_Probe(t *testing.T) {
	var fail atomic.Bool
	pinger := &MockPinger{PingFunc: func(ctx context.Context, endpoint string) error {
		assert.Equal(t, "/job.json", endpoint)
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		if fail.Load() {
			return errors.New("status 503")
		}
		return nil
	}}
	p := NewProber(pinger, "/job.json", time.Second)
	assert.Nil(t, p.Status())

	p.Probe()
	status := p.Status()
	require.NotNil(t, status)
	assert.True(t, status.Reachable)
	assert.Empty(t, status.Error)
	assert.False(t, status.CheckedAt.IsZero())

	fail.Store(true)
	p.Probe()
	status = p.Status()
	require.NotNil(t, status)
	assert.False(t, status.Reachable)
	assert.Equal(t, "status 503", status.Error)
}

func TestProber_StartRunsImmediately(t *testing.T) {
	pinger := &MockPinger{}
	p := NewProber(pinger, "/job.json", time.Second)
	require.NoError(t, p.Start("@every 1h"))
	defer p.Stop()

	assert.Eventually(t, func() bool { return p.Status() != nil }, 2*time.Second, 10*time.Millisecond)
	assert.GreaterOrEqual(t, pinger.calls.Load(), int32(1))
}

func TestProber_InvalidSchedule(t *testing.T) {
	p := NewProber(&MockPinger{}, "/job.json", time.Second)
	err := p.Start("every now and then")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid probe schedule")
}
