package domain

// GuardResult is the outcome of a pre-flight guard check (rate limiter,
// idempotency, circuit breaker).
type GuardResult struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
	Guard   string `json:"guard,omitempty"`
}
