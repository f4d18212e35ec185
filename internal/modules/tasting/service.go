package tasting

import (
	"context"
	"fmt"
	"strings"

	"github.com/cellar-club/tasting/internal/aggregate"
	"github.com/cellar-club/tasting/internal/models"
	"github.com/cellar-club/tasting/internal/session"
	"github.com/cellar-club/tasting/internal/summarize"
	"go.uber.org/zap"
)

// RecordStore is the part of store.Store the service needs.
type RecordStore interface {
	AppendRecord(ctx context.Context, r models.Record) error
	FetchAll(ctx context.Context) ([]models.Record, error)
}

// SummaryResolver hands out memoised summaries.
type SummaryResolver interface {
	Resolve(ctx context.Context, sessionID, key, prompt string, regenerate bool) session.Memo
}

type Service struct {
	store     RecordStore
	summaries SummaryResolver
	wines     []string
	logger    *zap.Logger
}

func NewService(store RecordStore, summaries SummaryResolver, wines []string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:     store,
		summaries: summaries,
		wines:     append([]string(nil), wines...),
		logger:    logger,
	}
}

// Wines lists the options offered by the submission form.
func (s *Service) Wines() []string {
	return append([]string(nil), s.wines...)
}

func (s *Service) knownWine(wine string) bool {
	for _, w := range s.wines {
		if w == wine {
			return true
		}
	}
	return false
}

// Submit validates the form and appends one Rating record followed by one
// Taste record per non-blank line of notes. Nothing is written when
// validation fails.
func (s *Service) Submit(ctx context.Context, dto SubmitDTO) (*SubmitResult, error) {
	name := strings.TrimSpace(dto.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	wine := strings.TrimSpace(dto.Wine)
	if !s.knownWine(wine) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownWine, dto.Wine)
	}
	rating := DefaultRating
	if dto.Rating != nil {
		rating = *dto.Rating
	}
	if rating < models.MinRating || rating > models.MaxRating {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidRating, rating)
	}

	records := []models.Record{models.NewRatingRecord(name, wine, rating)}
	for _, line := range SplitNotes(dto.Notes) {
		records = append(records, models.NewTasteRecord(name, wine, line))
	}

	for i, r := range records {
		if err := s.store.AppendRecord(ctx, r); err != nil {
			s.logger.Error("submission interrupted",
				zap.String("name", name),
				zap.String("wine", wine),
				zap.Int("written", i),
				zap.Int("total", len(records)),
				zap.Error(err))
			return nil, err
		}
	}

	s.logger.Info("submission recorded", zap.String("name", name), zap.String("wine", wine), zap.Int("notes", len(records)-1))
	return &SubmitResult{
		Message: fmt.Sprintf(msgThankYouFmt, name, wine),
		Records: records,
	}, nil
}

// SplitNotes returns the trimmed non-blank lines of notes.
func SplitNotes(notes string) []string {
	var out []string
	for _, line := range strings.Split(notes, "\n") {
		if v := strings.TrimSpace(line); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (s *Service) Records(ctx context.Context) ([]models.Record, error) {
	return s.store.FetchAll(ctx)
}

// ParseCategory accepts Rating or Taste, case-insensitively; blank means Rating.
func ParseCategory(raw string) (models.Category, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "rating":
		return models.CategoryRating, nil
	case "taste":
		return models.CategoryTaste, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, raw)
	}
}

// View reads the store once and builds the requested section.
func (s *Service) View(ctx context.Context, sessionID string, q ViewQuery) (*ViewResult, error) {
	category, err := ParseCategory(q.Category)
	if err != nil {
		return nil, err
	}
	sel := aggregate.NewSelection(q.Wine, q.User, category)

	records, err := s.store.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	result := &ViewResult{
		Users:     append([]string{aggregate.AllUsers}, aggregate.Users(records)...),
		Wines:     append([]string{aggregate.AllWines}, aggregate.Wines(records)...),
		Selection: sel,
	}
	if len(records) == 0 {
		result.Empty = true
		result.Message = MsgNoData
		return result, nil
	}

	if unknown := len(aggregate.Partition(records).Unknown); unknown > 0 {
		result.UnknownCategories = unknown
		s.logger.Warn("records with unknown category ignored", zap.Int("count", unknown))
	}

	switch sel.Category {
	case models.CategoryTaste:
		result.Taste = s.tasteSection(records, sel)
	default:
		result.Rating = s.ratingSection(ctx, sessionID, records, sel, q.Regenerate)
	}
	return result, nil
}

func (s *Service) ratingSection(ctx context.Context, sessionID string, records []models.Record, sel aggregate.Selection, regenerate bool) *RatingSection {
	view := aggregate.BuildRatingView(records, sel)
	section := &RatingSection{Histogram: view.Histogram}
	if view.Empty {
		section.Message = MsgNoRatings
		return section
	}

	chart := aggregate.RatingChart(view, sel.User)
	section.Chart = &chart
	section.OverallMean = view.OverallMean
	section.UserMean = view.UserMean

	if !sel.AllUsers() {
		if view.UserHasRatings && view.OverallMean != nil {
			prompt := summarize.ComparisonPrompt(sel.User, sel.Wine, *view.UserMean, *view.OverallMean)
			memo := s.summaries.Resolve(ctx, sessionID, sel.Key()+"#comparison", prompt, false)
			section.Comparison = newSummary(fmt.Sprintf(comparisonTitleFmt, sel.User), memo)
		} else {
			section.PersonalMessage = fmt.Sprintf(MsgNoPersonalFmt, sel.User)
		}
	}

	if !sel.AllWines() && len(view.Values) > 0 && view.OverallMean != nil {
		overall := *view.OverallMean
		userMean := overall
		if view.UserMean != nil {
			userMean = *view.UserMean
		}
		prompt := summarize.ReadPrompt(sel.User, sel.Wine, userMean, overall, view.Values)
		memo := s.summaries.Resolve(ctx, sessionID, sel.Key()+"#read", prompt, regenerate)
		section.Read = newSummary(fmt.Sprintf(readTitleFmt, sel.Wine), memo)
	}
	return section
}

func (s *Service) tasteSection(records []models.Record, sel aggregate.Selection) *TasteSection {
	view := aggregate.BuildTasteView(records, sel)
	section := &TasteSection{Frequencies: view.Frequencies}
	if view.Empty {
		section.Message = MsgNoTastingNotes
		return section
	}
	chart := aggregate.TasteChart(view)
	section.Chart = &chart
	return section
}

func newSummary(title string, memo session.Memo) *Summary {
	return &Summary{
		Title:     title,
		Text:      memo.Response,
		HTML:      summarize.RenderHTML(memo.Response),
		UpdatedAt: memo.UpdatedAt,
	}
}
