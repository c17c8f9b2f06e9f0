package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"supportchat/internal/ai"
	"supportchat/internal/fallback"
	"supportchat/internal/model"
	"supportchat/internal/ratelimit"
)

var ErrMessageEmpty = errors.New("message is required")

// RateLimitedError carries the retry hint computed by the limiter.
type RateLimitedError struct {
	RetryAfter int
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("too many requests, retry in %d seconds", e.RetryAfter)
}

// MessageStore is the persistence surface the chat service needs.
type MessageStore interface {
	Create(message *model.Message) error
	ListByUserID(userID uint, limit int) ([]model.Message, error)
	ListRecentByUserID(userID uint, since time.Time, limit int) ([]model.Message, error)
}

// LLMClient performs one bounded chat completion.
type LLMClient interface {
	Complete(ctx context.Context, cfg ai.ChatConfig, messages []ai.ChatMessage) (string, error)
}

// Resolver maps a message to a canned response, tracking per-user follow-up
// context between calls.
type Resolver interface {
	Resolve(message string, userID uint) fallback.Result
}

// Limiter decides whether to admit a request at the given instant.
type Limiter interface {
	CheckAndRecord(userID uint, now time.Time) ratelimit.Decision
}

// EventPublisher emits analytics events. Best-effort: failures are logged,
// never propagated into the chat path.
type EventPublisher interface {
	Publish(ctx context.Context, event model.ChatEvent) error
}

// HistoryCache is the Redis-backed per-user history cache with dirty markers.
type HistoryCache interface {
	GetHistory(ctx context.Context, userID uint) ([]model.Message, bool, error)
	SetHistory(ctx context.Context, userID uint, messages []model.Message) error
	DeleteHistory(ctx context.Context, userID uint) error
	MarkDirty(ctx context.Context, userID uint) error
	IsDirty(ctx context.Context, userID uint) (bool, error)
}

type ChatOptions struct {
	LLM              ai.ChatConfig
	LLMTimeout       time.Duration
	Production       bool
	HistoryLimit     int
	ContextWindow    time.Duration
	ContextLimit     int
	FallbackMaxWords int
}

type ChatService struct {
	store        MessageStore
	limiter      Limiter
	resolver     Resolver
	llm          LLMClient
	events       EventPublisher
	historyCache HistoryCache
	opts         ChatOptions
	log          *logrus.Logger
	now          func() time.Time
}

func NewChatService(
	store MessageStore,
	limiter Limiter,
	resolver Resolver,
	llm LLMClient,
	events EventPublisher,
	historyCache HistoryCache,
	opts ChatOptions,
	log *logrus.Logger,
) *ChatService {
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = 50
	}
	if opts.ContextWindow <= 0 {
		opts.ContextWindow = 15 * time.Minute
	}
	if opts.ContextLimit <= 0 {
		opts.ContextLimit = 10
	}
	if opts.FallbackMaxWords <= 0 {
		opts.FallbackMaxWords = 3
	}
	if opts.LLMTimeout <= 0 {
		opts.LLMTimeout = 30 * time.Second
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ChatService{
		store:        store,
		limiter:      limiter,
		resolver:     resolver,
		llm:          llm,
		events:       events,
		historyCache: historyCache,
		opts:         opts,
		log:          log,
		now:          time.Now,
	}
}

// SendMessage runs one chat turn: rate check, persist the user message, answer
// from the fallback table or the LLM, persist and return the AI message.
// Upstream LLM failures never fail the turn; they downgrade to a fallback
// answer flagged isFallback/isError.
func (s *ChatService) SendMessage(ctx context.Context, userID uint, content string) (*model.Message, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrMessageEmpty
	}

	now := s.now()
	decision := s.limiter.CheckAndRecord(userID, now)
	if !decision.Allowed {
		s.publishEvent(ctx, model.ChatEvent{
			UserID:     userID,
			Kind:       model.EventRateLimited,
			RetryAfter: decision.RetryAfter,
		})
		return nil, &RateLimitedError{RetryAfter: decision.RetryAfter}
	}

	s.log.WithFields(logrus.Fields{
		"user_id": userID,
		"length":  len(content),
	}).Info("received chat message")

	userMessage := &model.Message{
		UserID:  userID,
		Content: content,
		Sender:  model.SenderUser,
	}
	if err := s.store.Create(userMessage); err != nil {
		return nil, err
	}
	s.invalidateHistory(ctx, userID)

	if s.shouldUseFallback(content) {
		return s.respondWithFallback(ctx, userID, content)
	}
	return s.respondWithLLM(ctx, userID, content)
}

// GetHistory returns the user's messages oldest first, capped at the
// configured history limit, served from the Redis cache when it is warm
// and not marked dirty.
func (s *ChatService) GetHistory(ctx context.Context, userID uint) ([]model.Message, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}

	if s.historyCache != nil {
		dirty, err := s.historyCache.IsDirty(ctx, userID)
		if err == nil && !dirty {
			if cached, hit, cacheErr := s.historyCache.GetHistory(ctx, userID); cacheErr == nil && hit {
				return cached, nil
			}
		}
	}

	messages, err := s.store.ListByUserID(userID, s.opts.HistoryLimit)
	if err != nil {
		return nil, err
	}
	if s.historyCache != nil {
		if dirty, dirtyErr := s.historyCache.IsDirty(ctx, userID); dirtyErr == nil && !dirty {
			_ = s.historyCache.SetHistory(ctx, userID, messages)
		}
	}
	return messages, nil
}

// shouldUseFallback routes short greeting-style messages straight to the
// canned table, and everything when no LLM credential is configured outside
// production.
func (s *ChatService) shouldUseFallback(content string) bool {
	normalized := strings.ToLower(strings.TrimSpace(content))
	if len(strings.Fields(normalized)) <= s.opts.FallbackMaxWords {
		return true
	}
	return !s.opts.Production && s.opts.LLM.APIKey == ""
}

func (s *ChatService) respondWithFallback(ctx context.Context, userID uint, content string) (*model.Message, error) {
	result := s.resolver.Resolve(content, userID)

	aiMessage := &model.Message{
		UserID:     userID,
		Content:    result.Response,
		Sender:     model.SenderAI,
		IsFallback: true,
		IsFollowUp: result.IsFollowUp,
	}
	if err := s.store.Create(aiMessage); err != nil {
		return nil, err
	}
	s.invalidateHistory(ctx, userID)

	kind := model.EventFallback
	if result.IsFollowUp {
		kind = model.EventFollowUp
	}
	s.publishEvent(ctx, model.ChatEvent{
		UserID:    userID,
		MessageID: aiMessage.ID,
		Kind:      kind,
	})
	return aiMessage, nil
}

func (s *ChatService) respondWithLLM(ctx context.Context, userID uint, content string) (*model.Message, error) {
	prompt, err := s.buildPromptMessages(userID, content)
	if err != nil {
		return nil, err
	}

	llmCtx, cancel := context.WithTimeout(ctx, s.opts.LLMTimeout)
	defer cancel()

	answer, llmErr := s.llm.Complete(llmCtx, s.opts.LLM, prompt)
	if llmErr != nil {
		s.log.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   llmErr.Error(),
		}).Warn("llm request failed, falling back")
		return s.respondWithLLMError(ctx, userID, content, llmErr)
	}

	aiMessage := &model.Message{
		UserID:  userID,
		Content: answer,
		Sender:  model.SenderAI,
	}
	if err := s.store.Create(aiMessage); err != nil {
		return nil, err
	}
	s.invalidateHistory(ctx, userID)

	s.publishEvent(ctx, model.ChatEvent{
		UserID:    userID,
		MessageID: aiMessage.ID,
		Kind:      model.EventLLM,
	})
	return aiMessage, nil
}

// respondWithLLMError downgrades an upstream failure to a fallback answer
// prefixed by a short apology matching the error category.
func (s *ChatService) respondWithLLMError(ctx context.Context, userID uint, content string, llmErr error) (*model.Message, error) {
	result := s.resolver.Resolve(content, userID)

	var answer string
	switch {
	case errors.Is(llmErr, ai.ErrRateLimited):
		answer = "I'm currently helping many users right now. " + result.Response
	case errors.Is(llmErr, ai.ErrTimeout):
		answer = "I'm taking longer than expected to respond. " + result.Response
	default:
		answer = fmt.Sprintf("I encountered an error: %v. %s", llmErr, result.Response)
	}

	aiMessage := &model.Message{
		UserID:     userID,
		Content:    answer,
		Sender:     model.SenderAI,
		IsFallback: true,
		IsError:    true,
	}
	if err := s.store.Create(aiMessage); err != nil {
		return nil, err
	}
	s.invalidateHistory(ctx, userID)

	s.publishEvent(ctx, model.ChatEvent{
		UserID:    userID,
		MessageID: aiMessage.ID,
		Kind:      model.EventLLMError,
	})
	return aiMessage, nil
}

// buildPromptMessages assembles the user's recent turns, oldest first, capped
// at the context limit, and appends the current message.
func (s *ChatService) buildPromptMessages(userID uint, content string) ([]ai.ChatMessage, error) {
	since := s.now().Add(-s.opts.ContextWindow)
	recent, err := s.store.ListRecentByUserID(userID, since, s.opts.ContextLimit)
	if err != nil {
		return nil, err
	}

	messages := make([]ai.ChatMessage, 0, len(recent)+1)
	for _, item := range recent {
		role := "user"
		if item.Sender == model.SenderAI {
			role = "assistant"
		}
		messages = append(messages, ai.ChatMessage{
			Role:    role,
			Content: item.Content,
		})
	}
	messages = append(messages, ai.ChatMessage{
		Role:    "user",
		Content: content,
	})
	return messages, nil
}

func (s *ChatService) invalidateHistory(ctx context.Context, userID uint) {
	if s.historyCache == nil {
		return
	}
	_ = s.historyCache.MarkDirty(ctx, userID)
	_ = s.historyCache.DeleteHistory(ctx, userID)
}

func (s *ChatService) publishEvent(ctx context.Context, event model.ChatEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.log.WithFields(logrus.Fields{
			"user_id": event.UserID,
			"kind":    event.Kind,
		}).WithError(err).Warn("publish chat event failed")
	}
}
