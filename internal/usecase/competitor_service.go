package usecase

import (
	"context"
	"strings"
	"time"

	"MarketIntel/internal/domain/errs"
	"MarketIntel/internal/domain/models"
	drepo "MarketIntel/internal/domain/repository"
	"MarketIntel/pkg/util"

	"github.com/google/uuid"
)

// CompetitorService manages competitor records and their mentions.
type CompetitorService struct {
	store  drepo.CompetitorStore
	events *EventProcessor
	now    func() time.Time
}

func NewCompetitorService(store drepo.CompetitorStore, events *EventProcessor) *CompetitorService {
	return &CompetitorService{
		store:  store,
		events: events,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *CompetitorService) Create(ctx context.Context, req models.CompetitorRequest) (models.Competitor, error) {
	const op = "create_competitor"
	if err := checkCompetitor(op, req); err != nil {
		return models.Competitor{}, err
	}
	now := s.now()
	c := fromRequest(req)
	c.ID = uuid.NewString()
	c.CreatedAt = now
	c.UpdatedAt = now
	if err := s.store.Insert(ctx, c); err != nil {
		return models.Competitor{}, errs.Wrap(errs.KindComputationFailure, op, err, "store competitor")
	}
	return c, nil
}

func (s *CompetitorService) List(ctx context.Context, limit, offset int) ([]models.Competitor, error) {
	out, err := s.store.Find(ctx, drepo.CompetitorFilter{Limit: limit, Offset: offset})
	if err != nil {
		return nil, errs.Wrap(errs.KindComputationFailure, "list_competitors", err, "load competitors")
	}
	return out, nil
}

func (s *CompetitorService) Get(ctx context.Context, id string) (models.Competitor, error) {
	const op = "get_competitor"
	if err := ValidateID(op, id); err != nil {
		return models.Competitor{}, err
	}
	c, ok, err := s.store.FindOne(ctx, id)
	if err != nil {
		return models.Competitor{}, errs.Wrap(errs.KindComputationFailure, op, err, "load competitor")
	}
	if !ok {
		return models.Competitor{}, errs.Newf(errs.KindNotFound, op, "competitor %s not found", id)
	}
	return c, nil
}

// Update replaces the editable fields and keeps id and created_at.
func (s *CompetitorService) Update(ctx context.Context, id string, req models.CompetitorRequest) (models.Competitor, error) {
	const op = "update_competitor"
	if err := checkCompetitor(op, req); err != nil {
		return models.Competitor{}, err
	}
	existing, err := s.Get(ctx, id)
	if err != nil {
		return models.Competitor{}, err
	}
	c := fromRequest(req)
	c.ID = existing.ID
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = s.now()

	ok, err := s.store.Update(ctx, c)
	if err != nil {
		return models.Competitor{}, errs.Wrap(errs.KindComputationFailure, op, err, "store competitor")
	}
	if !ok {
		return models.Competitor{}, errs.Newf(errs.KindNotFound, op, "competitor %s not found", id)
	}
	return c, nil
}

func (s *CompetitorService) Delete(ctx context.Context, id string) error {
	const op = "delete_competitor"
	if err := ValidateID(op, id); err != nil {
		return err
	}
	ok, err := s.store.Delete(ctx, id)
	if err != nil {
		return errs.Wrap(errs.KindComputationFailure, op, err, "delete competitor")
	}
	if !ok {
		return errs.Newf(errs.KindNotFound, op, "competitor %s not found", id)
	}
	return nil
}

// AddMentions records public mentions of an existing competitor.
func (s *CompetitorService) AddMentions(ctx context.Context, id string, in []models.MentionInput) (int, error) {
	const op = "add_mentions"
	if _, err := s.Get(ctx, id); err != nil {
		return 0, err
	}
	now := s.now()
	mentions := make([]models.Mention, 0, len(in))
	for _, m := range in {
		text := strings.TrimSpace(m.Text)
		if text == "" {
			continue
		}
		mentions = append(mentions, models.Mention{
			CompetitorID: id,
			Text:         text,
			Source:       m.Source,
			CreatedAt:    now,
		})
	}
	if len(mentions) == 0 {
		return 0, errs.New(errs.KindValidationFailure, op, "no mention text")
	}
	if err := s.events.ProcessMentions(ctx, mentions); err != nil {
		return 0, errs.Wrap(errs.KindComputationFailure, op, err, "store mentions")
	}
	return len(mentions), nil
}

func checkCompetitor(op string, req models.CompetitorRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return errs.New(errs.KindValidationFailure, op, "name is required")
	}
	if req.MarketShare < 0 || req.MarketShare > 100 {
		return errs.Newf(errs.KindValidationFailure, op, "market_share %.2f outside [0, 100]", req.MarketShare)
	}
	return nil
}

func fromRequest(req models.CompetitorRequest) models.Competitor {
	return models.Competitor{
		Name:          strings.TrimSpace(req.Name),
		Website:       req.Website,
		MarketShare:   req.MarketShare,
		PriceRange:    req.PriceRange,
		CustomerCount: strings.TrimSpace(req.CustomerCount),
		Strengths:     clean(req.Strengths),
		Weaknesses:    clean(req.Weaknesses),
		Features:      clean(req.Features),
		Description:   strings.TrimSpace(req.Description),
	}
}

// clean trims entries and drops blanks and repeats.
func clean(values []string) []string {
	trimmed := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			trimmed = append(trimmed, v)
		}
	}
	return util.Dedupe(trimmed)
}
