package timer_test

import (
	"testing"
	"time"

	"github.com/devantler-tech/flutterkit/pkg/utils/timer"
	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	current time.Time
}

func (c *fakeClock) now() time.Time { return c.current }

func (c *fakeClock) advance(d time.Duration) { c.current = c.current.Add(d) }

func TestTimer_NotStarted(t *testing.T) {
	t.Parallel()

	tmr := timer.New()
	total, stage := tmr.GetTiming()

	assert.Zero(t, total)
	assert.Zero(t, stage)
}

func TestTimer_StagesAndStop(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{current: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	tmr := timer.NewWithClock(clock.now)

	tmr.Start()
	clock.advance(2 * time.Second)
	tmr.NewStage()
	clock.advance(3 * time.Second)

	total, stage := tmr.GetTiming()
	assert.Equal(t, 5*time.Second, total)
	assert.Equal(t, 3*time.Second, stage)

	tmr.Stop()
	clock.advance(time.Minute)

	total, stage = tmr.GetTiming()
	assert.Equal(t, 5*time.Second, total, "stopped timer must not advance")
	assert.Equal(t, 3*time.Second, stage)
}
