package httpapi

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/futplanner/internal/domain/league"
	"github.com/riskibarqy/futplanner/internal/platform/logging"
	"github.com/riskibarqy/futplanner/internal/usecase"
)

type CatalogReader interface {
	ListLeagues(ctx context.Context) ([]league.League, error)
	ListCountries(ctx context.Context) ([]league.Country, error)
}

type Planner interface {
	Plan(ctx context.Context, input usecase.PlanInput) (usecase.PlanResult, error)
}

type Authenticator interface {
	BeginAuth(ctx context.Context) (string, error)
	CompleteAuth(ctx context.Context, code, state string) error
}

type HandlerConfig struct {
	// DefaultTimeZone is used when a plan request omits timeZone.
	DefaultTimeZone string
}

type Handler struct {
	catalog   CatalogReader
	planner   Planner
	auth      Authenticator
	cfg       HandlerConfig
	logger    *logging.Logger
	validator *validator.Validate
}

func NewHandler(
	catalog CatalogReader,
	planner Planner,
	auth Authenticator,
	cfg HandlerConfig,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.DefaultTimeZone == "" {
		cfg.DefaultTimeZone = "America/Los_Angeles"
	}

	return &Handler{
		catalog:   catalog,
		planner:   planner,
		auth:      auth,
		cfg:       cfg,
		logger:    logger,
		validator: validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type planRequest struct {
	Name     string   `validate:"required,max=100"`
	TimeZone string   `validate:"required,timezone"`
	Entries  []string `validate:"required,min=2"`
}

type authCallbackRequest struct {
	Code  string `validate:"required"`
	State string `validate:"required"`
}

type teamDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo,omitempty"`
}

type leagueDTO struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	CurrentSeason int       `json:"current_season"`
	Logo          string    `json:"logo,omitempty"`
	CountryName   string    `json:"country_name"`
	CountryFlag   string    `json:"country_flag,omitempty"`
	Teams         []teamDTO `json:"teams"`
}

type countryDTO struct {
	Name    string      `json:"name"`
	Flag    string      `json:"flag,omitempty"`
	Leagues []leagueDTO `json:"leagues"`
}

func toLeagueDTO(l league.League) leagueDTO {
	teams := make([]teamDTO, 0, len(l.Teams))
	for _, t := range l.Teams {
		teams = append(teams, teamDTO{ID: t.ID, Name: t.Name, Logo: t.Logo})
	}
	return leagueDTO{
		ID:            l.ID,
		Name:          l.Name,
		CurrentSeason: l.CurrentSeason,
		Logo:          l.Logo,
		CountryName:   l.CountryName,
		CountryFlag:   l.CountryFlag,
		Teams:         teams,
	}
}

func toLeagueDTOs(items []league.League) []leagueDTO {
	out := make([]leagueDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toLeagueDTO(item))
	}
	return out
}
