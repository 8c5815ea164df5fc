package credential

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Credential is the stored OAuth grant of the calendar owner.
type Credential struct {
	UserID       int64
	Name         string
	RefreshToken string
	UpdatedAt    time.Time
}

func (c Credential) Validate() error {
	if c.UserID < 1 {
		return fmt.Errorf("credential user id must be >= 1")
	}
	if strings.TrimSpace(c.RefreshToken) == "" {
		return fmt.Errorf("credential refresh token is required")
	}
	return nil
}

// Repository stores credentials by user id.
type Repository interface {
	Get(ctx context.Context, userID int64) (Credential, bool, error)
	Upsert(ctx context.Context, item Credential) error
}

// Token is an OAuth2 token pair as issued by the provider.
type Token struct {
	AccessToken  string
	RefreshToken string
	Expiry       time.Time
}

// Usable reports whether the access token stays valid for at least leeway.
func (t Token) Usable(now time.Time, leeway time.Duration) bool {
	if strings.TrimSpace(t.AccessToken) == "" {
		return false
	}
	if t.Expiry.IsZero() {
		return true
	}
	return t.Expiry.After(now.Add(leeway))
}
