package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/futplanner/internal/domain/credential"
	"github.com/riskibarqy/futplanner/internal/platform/cache"
	"github.com/riskibarqy/futplanner/internal/platform/id"
	"github.com/riskibarqy/futplanner/internal/platform/logging"
	"github.com/riskibarqy/futplanner/internal/platform/resilience"
)

const (
	authStateTTL        = 10 * time.Minute
	accessTokenLeeway   = time.Minute
	tokenRefreshTimeout = 15 * time.Second
	authStateKeyPrefix  = "oauth_state:"
)

// OAuthClient is the authorization server used to obtain calendar access.
type OAuthClient interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (credential.Token, error)
	Refresh(ctx context.Context, refreshToken string) (credential.Token, error)
}

type CredentialServiceConfig struct {
	OwnerUserID int64
	OwnerName   string
}

// CredentialService owns the calendar owner's OAuth grant. Access tokens are
// cached in process and refreshed at most once at a time per user.
type CredentialService struct {
	repo   credential.Repository
	oauth  OAuthClient
	states *cache.Store
	ids    id.Generator
	cfg    CredentialServiceConfig
	logger *logging.Logger
	now    func() time.Time

	mu     sync.Mutex
	tokens map[int64]credential.Token
	flight resilience.SingleFlight
}

func NewCredentialService(
	repo credential.Repository,
	oauth OAuthClient,
	ids id.Generator,
	cfg CredentialServiceConfig,
	logger *logging.Logger,
) *CredentialService {
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = id.NewTokenGenerator(0)
	}
	if cfg.OwnerUserID < 1 {
		cfg.OwnerUserID = 1
	}
	return &CredentialService{
		repo:   repo,
		oauth:  oauth,
		states: cache.NewStore(authStateTTL),
		ids:    ids,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
		tokens: make(map[int64]credential.Token),
	}
}

// BeginAuth returns the consent URL. The embedded state is one-time and
// expires after a few minutes.
func (s *CredentialService) BeginAuth(ctx context.Context) (string, error) {
	state, err := s.ids.NewID()
	if err != nil {
		return "", fmt.Errorf("generate oauth state: %w", err)
	}
	s.states.Set(ctx, authStateKeyPrefix+state, struct{}{})
	return s.oauth.AuthCodeURL(state), nil
}

// CompleteAuth exchanges an authorization code and stores the refresh token
// for the owner user.
func (s *CredentialService) CompleteAuth(ctx context.Context, code, state string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.CredentialService.CompleteAuth")
	defer span.End()

	code = strings.TrimSpace(code)
	if code == "" {
		return fmt.Errorf("%w: authorization code is required", ErrInvalidInput)
	}
	key := authStateKeyPrefix + strings.TrimSpace(state)
	if _, ok := s.states.Get(ctx, key); !ok {
		return fmt.Errorf("%w: unknown or expired oauth state", ErrUnauthorized)
	}
	s.states.Delete(ctx, key)

	tok, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("exchange authorization code: %w", err)
	}
	if strings.TrimSpace(tok.RefreshToken) == "" {
		return fmt.Errorf("%w: provider did not return a refresh token", ErrUnauthorized)
	}

	item := credential.Credential{
		UserID:       s.cfg.OwnerUserID,
		Name:         s.cfg.OwnerName,
		RefreshToken: tok.RefreshToken,
		UpdatedAt:    s.now().UTC(),
	}
	if err := s.repo.Upsert(ctx, item); err != nil {
		return fmt.Errorf("store credential: %w", err)
	}

	s.mu.Lock()
	s.tokens[item.UserID] = tok
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "calendar credential stored", "user_id", item.UserID)
	return nil
}

// AccessToken returns a usable access token for the owner user.
func (s *CredentialService) AccessToken(ctx context.Context) (credential.Token, error) {
	userID := s.cfg.OwnerUserID

	s.mu.Lock()
	cached, ok := s.tokens[userID]
	s.mu.Unlock()
	if ok && cached.Usable(s.now(), accessTokenLeeway) {
		return cached, nil
	}

	key := "refresh:" + strconv.FormatInt(userID, 10)
	value, err, shared := s.flight.DoDetached(ctx, key, tokenRefreshTimeout, func(refreshCtx context.Context) (any, error) {
		return s.refresh(refreshCtx, userID)
	})
	if err != nil {
		return credential.Token{}, err
	}
	if shared {
		s.logger.DebugContext(ctx, "access token refresh shared", "user_id", userID)
	}

	tok, _ := value.(credential.Token)
	return tok, nil
}

func (s *CredentialService) refresh(ctx context.Context, userID int64) (credential.Token, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CredentialService.refresh")
	defer span.End()

	s.mu.Lock()
	cached, ok := s.tokens[userID]
	s.mu.Unlock()
	if ok && cached.Usable(s.now(), accessTokenLeeway) {
		return cached, nil
	}

	item, exists, err := s.repo.Get(ctx, userID)
	if err != nil {
		return credential.Token{}, fmt.Errorf("load credential: %w", err)
	}
	if !exists || strings.TrimSpace(item.RefreshToken) == "" {
		return credential.Token{}, fmt.Errorf("%w: calendar owner has not granted access", ErrUnauthorized)
	}

	tok, err := s.oauth.Refresh(ctx, item.RefreshToken)
	if err != nil {
		return credential.Token{}, fmt.Errorf("refresh access token: %w", err)
	}

	if tok.RefreshToken != "" && tok.RefreshToken != item.RefreshToken {
		item.RefreshToken = tok.RefreshToken
		item.UpdatedAt = s.now().UTC()
		if err := s.repo.Upsert(ctx, item); err != nil {
			s.logger.WarnContext(ctx, "persist rotated refresh token failed", "user_id", userID, "error", err)
		}
	}
	if tok.RefreshToken == "" {
		tok.RefreshToken = item.RefreshToken
	}

	s.mu.Lock()
	s.tokens[userID] = tok
	s.mu.Unlock()

	return tok, nil
}
