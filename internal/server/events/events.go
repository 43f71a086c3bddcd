// Package events fans task changes out to live subscribers. MemoryBroker
// serves a single server process; RedisBroker relays events between
// processes over Redis pub/sub.
package events

import (
	"context"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/server/models"
)

type Type string

const (
	TaskCreated Type = "created"
	TaskUpdated Type = "updated"
	TaskDeleted Type = "deleted"
)

// Event describes one task change. Task is nil for deletions.
type Event struct {
	Type   Type         `json:"type"`
	TaskID int64        `json:"taskId"`
	Task   *models.Task `json:"task,omitempty"`
	At     time.Time    `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

type Subscriber interface {
	// Subscribe returns a channel of events and a cancel func that
	// unsubscribes and closes the channel.
	Subscribe() (<-chan Event, func())
}

type Broker interface {
	Publisher
	Subscriber
	Close() error
}
