package events

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recv(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case e, ok := <-ch:
		require.True(t, ok, "channel closed")
		return e
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestMemoryBroker_FanOut(t *testing.T) {
	b := NewMemoryBroker(4)
	a, cancelA := b.Subscribe()
	c, cancelC := b.Subscribe()
	defer cancelA()
	defer cancelC()

	e := Event{Type: TaskCreated, TaskID: 1, Task: &models.Task{ID: 1, Title: "x"}}
	require.NoError(t, b.Publish(context.Background(), e))

	assert.Equal(t, e, recv(t, a))
	assert.Equal(t, e, recv(t, c))
}

func TestMemoryBroker_CancelClosesChannel(t *testing.T) {
	b := NewMemoryBroker(1)
	ch, cancel := b.Subscribe()
	require.Equal(t, 1, b.Subscribers())

	cancel()
	cancel()
	_, ok := <-ch
	assert.False(t, ok)
	assert.Equal(t, 0, b.Subscribers())

	require.NoError(t, b.Publish(context.Background(), Event{Type: TaskDeleted}))
}

func TestMemoryBroker_SlowSubscriberDoesNotBlock(t *testing.T) {
	b := NewMemoryBroker(1)
	ch, cancel := b.Subscribe()
	defer cancel()

	for i := 0; i < 5; i++ {
		require.NoError(t, b.Publish(context.Background(), Event{Type: TaskUpdated, TaskID: int64(i)}))
	}
	assert.Equal(t, int64(0), recv(t, ch).TaskID)
	assert.Len(t, ch, 0)
}

func TestMemoryBroker_Close(t *testing.T) {
	b := NewMemoryBroker(1)
	ch, cancel := b.Subscribe()
	require.NoError(t, b.Close())

	_, ok := <-ch
	assert.False(t, ok)
	cancel()

	late, _ := b.Subscribe()
	_, ok = <-late
	assert.False(t, ok)
}

func TestMemoryBroker_ConcurrentUse(t *testing.T) {
	b := NewMemoryBroker(8)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, cancel := b.Subscribe()
			cancel()
		}()
		go func() {
			defer wg.Done()
			_ = b.Publish(context.Background(), Event{Type: TaskCreated})
		}()
	}
	wg.Wait()
}

func TestRedisBroker_HandleRelaysToLocal(t *testing.T) {
	b := &RedisBroker{local: NewMemoryBroker(2), logger: logging.Nop{}}
	ch, cancel := b.Subscribe()
	defer cancel()

	at := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	payload, err := json.Marshal(Event{Type: TaskUpdated, TaskID: 7, Task: &models.Task{ID: 7, Title: "t", Done: true}, At: at})
	require.NoError(t, err)

	b.handle("not json")
	b.handle(string(payload))

	got := recv(t, ch)
	assert.Equal(t, TaskUpdated, got.Type)
	assert.Equal(t, int64(7), got.TaskID)
	assert.True(t, got.Task.Done)
	assert.True(t, at.Equal(got.At))
}
