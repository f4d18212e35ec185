package session

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Summarizer produces display text for a prompt and never fails.
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) string
}

// Summaries memoises summarizer output per session and filter key.
type Summaries struct {
	store      Store
	summarizer Summarizer
	logger     *zap.Logger
	now        func() time.Time
}

func NewSummaries(store Store, summarizer Summarizer, logger *zap.Logger) *Summaries {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Summaries{store: store, summarizer: summarizer, logger: logger, now: time.Now}
}

// Resolve returns the stored memo when its prompt matches and no rerun is
// asked for. Otherwise it summarizes prompt and stores the result. Store
// failures are logged and the call proceeds uncached.
func (s *Summaries) Resolve(ctx context.Context, sessionID, key, prompt string, regenerate bool) Memo {
	if !regenerate {
		memo, err := s.store.Get(ctx, sessionID, key)
		if err != nil {
			s.logger.Warn("memo lookup failed", zap.String("key", key), zap.Error(err))
		} else if memo != nil && memo.Prompt == prompt {
			return *memo
		}
	}

	memo := Memo{
		Prompt:    prompt,
		Response:  s.summarizer.Summarize(ctx, prompt),
		UpdatedAt: s.now(),
	}
	if err := s.store.Put(ctx, sessionID, key, memo); err != nil {
		s.logger.Warn("memo store failed", zap.String("key", key), zap.Error(err))
	}
	return memo
}
