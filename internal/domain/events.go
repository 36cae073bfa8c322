package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

func newProfileEvent(userID uuid.UUID, evtType EventType, payload interface{}) OutboxDraft {
	raw, _ := json.Marshal(payload)
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregateProfile,
		AggregateID:   userID.String(),
		EventType:     evtType,
		PartitionKey:  userID.String(),
		Payload:       raw,
		OccurredAt:    time.Now(),
	}
}

// NewXPAwardedEvent records XP earned by a study event.
func NewXPAwardedEvent(userID uuid.UUID, kind EventKind, xpEarned, totalXP int64) OutboxDraft {
	return newProfileEvent(userID, EventXPAwarded, map[string]interface{}{
		"user_id":    userID.String(),
		"event_kind": kind,
		"xp_earned":  xpEarned,
		"total_xp":   totalXP,
	})
}

// NewLevelUpEvent records a level change.
func NewLevelUpEvent(userID uuid.UUID, fromLevel, toLevel int) OutboxDraft {
	return newProfileEvent(userID, EventLevelUp, map[string]interface{}{
		"user_id":    userID.String(),
		"from_level": fromLevel,
		"to_level":   toLevel,
	})
}

// NewAchievementUnlockedEvent records a newly unlocked achievement.
func NewAchievementUnlockedEvent(userID uuid.UUID, a Achievement) OutboxDraft {
	return newProfileEvent(userID, EventAchievementUnlocked, map[string]interface{}{
		"user_id":     userID.String(),
		"achievement": a.Type,
		"category":    a.Category,
		"xp_reward":   a.XPReward,
		"coin_reward": a.CoinReward,
	})
}

// NewStreakExtendedEvent records a streak advance.
func NewStreakExtendedEvent(userID uuid.UUID, streak int, date Day) OutboxDraft {
	return newProfileEvent(userID, EventStreakExtended, map[string]interface{}{
		"user_id": userID.String(),
		"streak":  streak,
		"date":    date.String(),
	})
}

// NewUserRegisteredEvent records a user lifecycle event.
func NewUserRegisteredEvent(userID uuid.UUID, email string) OutboxDraft {
	raw, _ := json.Marshal(map[string]string{
		"user_id": userID.String(),
		"email":   email,
	})
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregateUser,
		AggregateID:   userID.String(),
		EventType:     EventUserRegistered,
		PartitionKey:  userID.String(),
		Payload:       raw,
		OccurredAt:    time.Now(),
	}
}
