// Package credstore persists the session credential as two string values in a key-value store.
package credstore

import (
	"context"
	"fmt"

	"github.com/shivanky2822/resume-analyzer/internal/types"
)

// Stable keys under which the credential halves are stored.
const (
	KeyToken    = "token"
	KeyUserName = "userName"
)

// Store is a string key-value store with get/set/clear.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// Clear removes the given keys. Missing keys are not an error.
	Clear(ctx context.Context, keys ...string) error
}

// CredentialStore wraps a Store with the token + display name pair.
type CredentialStore struct {
	store Store
}

// NewCredentialStore creates a CredentialStore over the given backend.
func NewCredentialStore(store Store) *CredentialStore {
	return &CredentialStore{store: store}
}

// Load returns the persisted session, or nil when either half is absent or empty.
// A session is never built from only one of the two values.
func (c *CredentialStore) Load(ctx context.Context) (*types.Session, error) {
	token, okToken, err := c.store.Get(ctx, KeyToken)
	if err != nil {
		return nil, err
	}
	name, okName, err := c.store.Get(ctx, KeyUserName)
	if err != nil {
		return nil, err
	}
	if !okToken || !okName || token == "" || name == "" {
		return nil, nil
	}
	return &types.Session{Token: token, DisplayName: name}, nil
}

// Save persists both halves of the session.
func (c *CredentialStore) Save(ctx context.Context, session *types.Session) error {
	if !session.Valid() {
		return &Error{Op: "save", Message: "session is missing token or name"}
	}
	if err := c.store.Set(ctx, KeyToken, session.Token); err != nil {
		return err
	}
	if err := c.store.Set(ctx, KeyUserName, session.DisplayName); err != nil {
		return err
	}
	return nil
}

// Clear removes both halves of the session. Clearing an empty store succeeds.
func (c *CredentialStore) Clear(ctx context.Context) error {
	return c.store.Clear(ctx, KeyToken, KeyUserName)
}

// Error represents a failure reading or writing the backing store
type Error struct {
	Op      string
	Key     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	where := e.Op
	if e.Key != "" {
		where = fmt.Sprintf("%s %s", e.Op, e.Key)
	}
	if e.Cause != nil {
		return fmt.Sprintf("credential store %s: %s: %v", where, e.Message, e.Cause)
	}
	return fmt.Sprintf("credential store %s: %s", where, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
