package fallback

import (
	"strconv"
	"strings"
	"sync"
	"time"
)

// Result is a resolved canned answer. IsFollowUp is set when the answer came
// from the follow-up options of the previous turn's entry.
type Result struct {
	Response   string
	IsFollowUp bool
}

type conversationContext struct {
	entry    *Entry
	storedAt time.Time
}

// Resolver maps a user message to a canned response. It remembers, per user,
// the last matched entry that offered follow-up options so the next message
// can select one by number or keyword. Matching is substring containment on
// the trimmed lowercase message, first match in table order wins.
type Resolver struct {
	mu       sync.Mutex
	contexts map[uint]conversationContext
	now      func() time.Time
}

func NewResolver() *Resolver {
	return &Resolver{
		contexts: make(map[uint]conversationContext),
		now:      time.Now,
	}
}

func (r *Resolver) Resolve(message string, userID uint) Result {
	normalized := strings.ToLower(strings.TrimSpace(message))
	if normalized == "" {
		return Result{Response: emptyMessageResponse}
	}

	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	if ctx, ok := r.contexts[userID]; ok && len(ctx.entry.FollowUps) > 0 {
		if followUp, ok := matchFollowUp(ctx.entry.FollowUps, normalized); ok {
			return Result{Response: followUp, IsFollowUp: true}
		}
	}

	for i := range responses {
		entry := &responses[i]
		if !strings.Contains(normalized, entry.Keyword) {
			continue
		}
		if len(entry.FollowUps) > 0 {
			r.contexts[userID] = conversationContext{entry: entry, storedAt: now}
		}
		return Result{Response: entry.Response}
	}

	for _, query := range commonQueries {
		if strings.Contains(normalized, query.Keyword) {
			return Result{Response: query.Answer(now)}
		}
	}

	return Result{Response: unknownResponse}
}

// SweepIdle drops conversation contexts untouched for longer than maxIdle
// and reports how many were removed.
func (r *Resolver) SweepIdle(now time.Time, maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for userID, ctx := range r.contexts {
		if now.Sub(ctx.storedAt) > maxIdle {
			delete(r.contexts, userID)
			removed++
		}
	}
	return removed
}

// matchFollowUp tries a numeric option selection first, then keyword
// containment in declaration order.
func matchFollowUp(followUps []FollowUp, normalized string) (string, bool) {
	if isAllDigits(normalized) {
		if n, err := strconv.Atoi(normalized); err == nil && n >= 1 && n <= len(followUps) {
			for _, f := range followUps {
				if f.Trigger == normalized {
					return f.Response, true
				}
			}
		}
	}

	for _, f := range followUps {
		if strings.Contains(normalized, f.Trigger) {
			return f.Response, true
		}
	}
	return "", false
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
