package gate

import (
	"context"
	"sync"

	"CourseForge/internal/app_errors"

	"github.com/google/uuid"
)

type Kind string

const (
	KindDelete    Kind = "delete"
	KindSaveOrder Kind = "save_order"
)

// Action is the gated mutation, bound at request time.
type Action func(ctx context.Context) error

type pending struct {
	kind        Kind
	description string
	action      Action
	executed    bool
	outcome     error
}

// Gate holds issued confirmation tokens. A gated action runs at most once
// per token: the first Confirm executes it, repeat Confirms replay the
// recorded outcome without touching the action again.
type Gate struct {
	mu     sync.Mutex
	tokens map[uuid.UUID]*pending
}

func New() *Gate {
	return &Gate{tokens: make(map[uuid.UUID]*pending)}
}

// Request issues a token for the described mutation.
func (g *Gate) Request(kind Kind, description string, action Action) uuid.UUID {
	g.mu.Lock()
	defer g.mu.Unlock()
	token := uuid.New()
	g.tokens[token] = &pending{kind: kind, description: description, action: action}
	return token
}

func (g *Gate) Describe(token uuid.UUID) (Kind, string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, ok := g.tokens[token]
	if !ok {
		return "", "", app_errors.ErrConfirmationNotFound
	}
	return p.kind, p.description, nil
}

// Confirm executes the token's action, once. The action runs outside the
// gate lock; a repeat Confirm is a safe no-op that replays the recorded
// outcome.
func (g *Gate) Confirm(ctx context.Context, token uuid.UUID) error {
	g.mu.Lock()
	p, ok := g.tokens[token]
	if !ok {
		g.mu.Unlock()
		return app_errors.ErrConfirmationNotFound
	}
	if p.executed {
		outcome := p.outcome
		g.mu.Unlock()
		return outcome
	}
	p.executed = true
	action := p.action
	p.action = nil
	g.mu.Unlock()

	outcome := action(ctx)

	g.mu.Lock()
	p.outcome = outcome
	g.mu.Unlock()
	return outcome
}

// Cancel discards a token with no effect. Cancelling an already executed
// or unknown token reports ErrConfirmationNotFound.
func (g *Gate) Cancel(token uuid.UUID) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, ok := g.tokens[token]
	if !ok || p.executed {
		return app_errors.ErrConfirmationNotFound
	}
	delete(g.tokens, token)
	return nil
}
