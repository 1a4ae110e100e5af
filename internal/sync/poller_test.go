package sync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoller_TicksAndStops(t *testing.T) {
	p := NewPoller(10 * time.Millisecond)

	wait := p.Start()
	require.NotNil(t, wait)

	msg := wait()
	_, ok := msg.(PollTickMsg)
	assert.True(t, ok)

	msg = p.WaitForNext()()
	_, ok = msg.(PollTickMsg)
	assert.True(t, ok)

	p.Stop()
	// Stopping twice must not panic.
	p.Stop()
}

func TestPoller_DisabledInterval(t *testing.T) {
	p := NewPoller(0)
	assert.Nil(t, p.Start())
}
