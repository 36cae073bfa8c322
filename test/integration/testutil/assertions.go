//go:build integration

package testutil

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
)

// DecodeJSON reads and decodes a JSON response body into dst.
func DecodeJSON(t *testing.T, resp *http.Response, dst interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
}

// AssertStatus checks that the response has the expected HTTP status code.
func AssertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Errorf("expected status %d, got %d", expected, resp.StatusCode)
	}
}

// AssertErrorCode checks that the response body contains the expected error code.
func AssertErrorCode(t *testing.T, resp *http.Response, expectedCode string) {
	t.Helper()
	var errResp struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	DecodeJSON(t, resp, &errResp)
	if errResp.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, errResp.Code, errResp.Message)
	}
}

// AssertProfileRow queries progress_profiles and asserts the stored XP, level
// and streak for a user.
func AssertProfileRow(t *testing.T, env *TestEnv, userID uuid.UUID, totalXP int64, level, currentStreak int) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var xp int64
	var lvl, streak int
	err := env.Pool.QueryRow(ctx,
		"SELECT total_xp, level, current_streak FROM progress_profiles WHERE user_id = $1",
		userID).Scan(&xp, &lvl, &streak)
	if err != nil {
		t.Fatalf("AssertProfileRow: query: %v", err)
	}
	if xp != totalXP {
		t.Errorf("total_xp: expected %d, got %d", totalXP, xp)
	}
	if lvl != level {
		t.Errorf("level: expected %d, got %d", level, lvl)
	}
	if streak != currentStreak {
		t.Errorf("current_streak: expected %d, got %d", currentStreak, streak)
	}
}

// CountOutboxEvents returns the number of outbox events for an aggregate.
func CountOutboxEvents(t *testing.T, env *TestEnv, userID uuid.UUID) int {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var count int
	err := env.Pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM event_outbox WHERE aggregate_id = $1", userID.String()).Scan(&count)
	if err != nil {
		t.Fatalf("CountOutboxEvents: %v", err)
	}
	return count
}
