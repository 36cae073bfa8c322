package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType enumerates all outbound progress event types.
type EventType string

const (
	EventUserRegistered      EventType = "study.user.registered"
	EventXPAwarded           EventType = "study.progress.xp.awarded"
	EventLevelUp             EventType = "study.progress.level.up"
	EventAchievementUnlocked EventType = "study.progress.achievement.unlocked"
	EventStreakExtended      EventType = "study.progress.streak.extended"
)

// AggregateType enumerates the aggregate root types for outbox events.
type AggregateType string

const (
	AggregateUser    AggregateType = "user"
	AggregateProfile AggregateType = "profile"
)

// OutboxDraft is the payload written to the event_outbox table. Rows are
// inserted in the same transaction as the profile mutation and published
// to Kafka by the outbox poller.
type OutboxDraft struct {
	EventID       uuid.UUID       `json:"event_id"`
	AggregateType AggregateType   `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	EventType     EventType       `json:"event_type"`
	PartitionKey  string          `json:"partition_key"`
	Payload       json.RawMessage `json:"payload"`
	OccurredAt    time.Time       `json:"occurred_at"`
}
