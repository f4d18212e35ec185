// Package session keeps per-session summary memos so a view only calls the
// summarization provider when its prompt changes or a rerun is requested.
package session

import (
	"context"
	"errors"
	"time"
)

// Memo is the cached prompt and response for one session and filter key.
type Memo struct {
	Prompt    string    `json:"prompt"`
	Response  string    `json:"response"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store persists memos. Get returns (nil, nil) when nothing is stored.
type Store interface {
	Get(ctx context.Context, sessionID, key string) (*Memo, error)
	Put(ctx context.Context, sessionID, key string, memo Memo) error
}

var ErrNoSession = errors.New("session id is empty")
