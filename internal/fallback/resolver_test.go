package fallback

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver(now time.Time) *Resolver {
	r := NewResolver()
	r.now = func() time.Time { return now }
	return r
}

func TestResolveGreeting(t *testing.T) {
	r := newTestResolver(time.Now())

	res := r.Resolve("hi", 1)
	require.Equal(t, "Hi there! What would you like to know?", res.Response)
	assert.False(t, res.IsFollowUp)
}

func TestResolveFirstMatchWins(t *testing.T) {
	r := newTestResolver(time.Now())

	// "hello" precedes "hi" in the table; a message containing both
	// resolves to the earlier entry.
	res := r.Resolve("hello hi", 1)
	assert.Equal(t, "Hello! I'm your AI assistant. How can I help you today?", res.Response)
}

func TestResolveNumericFollowUp(t *testing.T) {
	r := newTestResolver(time.Now())

	first := r.Resolve("ai trends", 7)
	require.Contains(t, first.Response, "latest AI trends")
	require.False(t, first.IsFollowUp)

	second := r.Resolve("2", 7)
	assert.True(t, second.IsFollowUp)
	assert.Contains(t, second.Response, "AI-powered automation is revolutionizing industries")
}

func TestResolveKeywordFollowUp(t *testing.T) {
	r := newTestResolver(time.Now())

	_ = r.Resolve("ai trends", 7)
	res := r.Resolve("tell me about generative ai", 7)
	assert.True(t, res.IsFollowUp)
	assert.Contains(t, res.Response, "Generative AI and large language models")
}

func TestResolveFollowUpIsPerUser(t *testing.T) {
	r := newTestResolver(time.Now())

	_ = r.Resolve("ai trends", 7)

	// Another user has no stored context; a bare "2" matches nothing.
	res := r.Resolve("2", 8)
	assert.False(t, res.IsFollowUp)
	assert.Equal(t, unknownResponse, res.Response)
}

func TestResolveNumericOutOfRange(t *testing.T) {
	r := newTestResolver(time.Now())

	_ = r.Resolve("ai trends", 7)
	res := r.Resolve("99", 7)
	assert.False(t, res.IsFollowUp)
	assert.Equal(t, unknownResponse, res.Response)
}

func TestResolveContextOverwrite(t *testing.T) {
	r := newTestResolver(time.Now())

	_ = r.Resolve("ai trends", 7)
	_ = r.Resolve("help", 7)

	// "1" now selects from the help entry, not the trends entry.
	res := r.Resolve("1", 7)
	require.True(t, res.IsFollowUp)
	assert.Contains(t, res.Response, "latest movies and TV shows")
}

func TestResolveCommonQueries(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 30, 45, 0, time.UTC)
	r := newTestResolver(now)

	res := r.Resolve("what about the weather today?", 1)
	assert.Contains(t, res.Response, "real-time weather")

	res = r.Resolve("what time is it", 1)
	assert.Equal(t, "The current time is 2:30:45 PM.", res.Response)

	res = r.Resolve("what is the date", 1)
	assert.Equal(t, "Today's date is 3/5/2024.", res.Response)
}

func TestResolveUnknown(t *testing.T) {
	r := newTestResolver(time.Now())

	res := r.Resolve("qwertyuiop", 1)
	assert.Equal(t, unknownResponse, res.Response)
	assert.False(t, res.IsFollowUp)
}

func TestResolveEmptyMessage(t *testing.T) {
	r := newTestResolver(time.Now())

	res := r.Resolve("   ", 1)
	assert.Equal(t, emptyMessageResponse, res.Response)
}

func TestResolveUnknownDoesNotTouchContext(t *testing.T) {
	r := newTestResolver(time.Now())

	_ = r.Resolve("ai trends", 7)
	_ = r.Resolve("qwertyuiop", 7)

	// Context from "ai trends" survives an unmatched turn.
	res := r.Resolve("3", 7)
	require.True(t, res.IsFollowUp)
	assert.Contains(t, res.Response, "AI in healthcare")
}

func TestSweepIdle(t *testing.T) {
	base := time.Now()
	r := newTestResolver(base)

	_ = r.Resolve("ai trends", 7)
	_ = r.Resolve("help", 8)

	removed := r.SweepIdle(base.Add(31*time.Minute), 30*time.Minute)
	assert.Equal(t, 2, removed)

	res := r.Resolve("2", 7)
	assert.False(t, res.IsFollowUp)
}
