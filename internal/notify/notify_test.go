package notify

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCenter_DrainDeliversOnce(t *testing.T) {
	t.Parallel()

	c := NewCenter()
	c.Notify("Restored 2 item(s) from your session")
	c.Notify("Merged 1 new item(s) from your session")

	notices := c.Drain()
	require.Len(t, notices, 2)
	assert.Equal(t, "Restored 2 item(s) from your session", notices[0].Message)
	assert.NotEmpty(t, notices[0].ID)

	assert.Empty(t, c.Drain())
}

func TestCenter_BoundsPending(t *testing.T) {
	t.Parallel()

	c := NewCenter()
	for i := 0; i < maxPending+10; i++ {
		c.Notify(fmt.Sprintf("notice %d", i))
	}

	notices := c.Drain()
	require.Len(t, notices, maxPending)
	// oldest notices are dropped first
	assert.Equal(t, fmt.Sprintf("notice %d", 10), notices[0].Message)
}
