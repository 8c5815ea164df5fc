package memory

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/futplanner/internal/domain/credential"
)

type CredentialRepository struct {
	mu    sync.RWMutex
	items map[int64]credential.Credential
	now   func() time.Time
}

var _ credential.Repository = (*CredentialRepository)(nil)

func NewCredentialRepository() *CredentialRepository {
	return &CredentialRepository{
		items: make(map[int64]credential.Credential),
		now:   time.Now,
	}
}

func (r *CredentialRepository) Get(_ context.Context, userID int64) (credential.Credential, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[userID]
	return item, ok, nil
}

func (r *CredentialRepository) Upsert(_ context.Context, item credential.Credential) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if item.UpdatedAt.IsZero() {
		item.UpdatedAt = r.now().UTC()
	}

	r.mu.Lock()
	r.items[item.UserID] = item
	r.mu.Unlock()
	return nil
}
