package planner

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"
	"strings"

	"freewen/internal/model"
	"freewen/internal/store"
)

var (
	ErrMissingCities = errors.New("origin and destination are required")
	ErrInvalidDates  = errors.New("end date must be after start date")
	ErrInvalidBudget = errors.New("budget must be greater than zero")
)

// TextGenerator is the narrow seam to the hosted model, swappable without
// touching parsing, presentation or export.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string, grounded bool) (string, error)
}

// ResponseCache caches raw model responses keyed by prompt hash. May be nil.
type ResponseCache interface {
	GetResponse(ctx context.Context, key string) (string, bool, error)
	SetResponse(ctx context.Context, key, raw string) error
}

// RecordPublisher hands finished generations to the archive pipeline. May be nil.
type RecordPublisher interface {
	Publish(ctx context.Context, rec model.PlanRecord) error
}

type Service struct {
	store     *store.SessionStore
	generator TextGenerator
	cache     ResponseCache
	archive   RecordPublisher
	grounding bool
}

func NewService(
	sessions *store.SessionStore,
	generator TextGenerator,
	cache ResponseCache,
	archive RecordPublisher,
	grounding bool,
) *Service {
	return &Service{
		store:     sessions,
		generator: generator,
		cache:     cache,
		archive:   archive,
		grounding: grounding,
	}
}

// Generate builds the prompt for the named session's current config, runs
// the model (or serves the cached response), parses the text and replaces
// the session's plan with the result.
func (s *Service) Generate(ctx context.Context, workspaceID, sessionName string) (*model.TravelPlan, error) {
	session, err := s.store.Get(workspaceID, sessionName)
	if err != nil {
		return nil, err
	}
	cfg := session.Config
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	prompt := BuildPrompt(cfg)
	raw, err := s.resolveResponse(ctx, prompt)
	if err != nil {
		return nil, err
	}

	plan := ParsePlan(raw)
	plan.Config = cfg.Clone() // frozen snapshot; later edits don't touch it
	if err := s.store.SavePlan(workspaceID, sessionName, plan); err != nil {
		return nil, err
	}

	// Archive is fire-and-forget: a broken pipeline never fails generation.
	if s.archive != nil {
		rec := model.PlanRecord{
			WorkspaceID: workspaceID,
			SessionName: sessionName,
			Origin:      cfg.Origin,
			Destination: cfg.Destination,
			Prompt:      prompt,
			RawResponse: raw,
			ParseStatus: string(plan.Status),
		}
		if pubErr := s.archive.Publish(ctx, rec); pubErr != nil {
			log.Printf("archive publish failed: %v", pubErr)
		}
	}

	return plan.Clone(), nil
}

func (s *Service) resolveResponse(ctx context.Context, prompt string) (string, error) {
	key := promptKey(prompt)
	if s.cache != nil {
		if cached, hit, err := s.cache.GetResponse(ctx, key); err == nil && hit {
			return cached, nil
		}
	}

	raw, err := s.generator.GenerateContent(ctx, prompt, s.grounding)
	if err != nil {
		return "", err
	}
	if s.cache != nil {
		if err := s.cache.SetResponse(ctx, key, raw); err != nil {
			log.Printf("cache response failed: %v", err)
		}
	}
	return raw, nil
}

func validateConfig(cfg model.TripConfig) error {
	if strings.TrimSpace(cfg.Origin) == "" || strings.TrimSpace(cfg.Destination) == "" {
		return ErrMissingCities
	}
	if !cfg.EndDate.After(cfg.StartDate) {
		return ErrInvalidDates
	}
	if cfg.Budget <= 0 {
		return ErrInvalidBudget
	}
	return nil
}

func promptKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}
