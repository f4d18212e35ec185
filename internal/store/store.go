// Package store persists tasting records to a tabular sheet and reads them back.
package store

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/cellar-club/tasting/internal/models"
	"go.uber.org/zap"
)

// Sheet is the tabular collaborator a backend implements. Rows are plain
// cell lists; the first row is the header.
type Sheet interface {
	ReadHeader(ctx context.Context) ([]string, error)
	WriteHeader(ctx context.Context, header []string) error
	AppendRow(ctx context.Context, cells []string) error
	ReadAllRows(ctx context.Context) ([]map[string]string, error)
	Close() error
}

// SchemaAction describes what EnsureSchema did to the sheet.
type SchemaAction string

const (
	SchemaUnchanged SchemaAction = "unchanged"
	SchemaCreated   SchemaAction = "created"
	SchemaRepaired  SchemaAction = "repaired"
)

// Option configures a Store.
type Option func(*Store)

// WithHeaderRepair makes EnsureSchema insert the expected header above a
// mismatched one instead of failing. Existing rows are left as they are.
func WithHeaderRepair() Option {
	return func(s *Store) { s.repairHeader = true }
}

// WithLogger sets the logger used for schema changes.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Store adapts a Sheet to the fixed record schema.
type Store struct {
	sheet        Sheet
	repairHeader bool
	logger       *zap.Logger
}

func New(sheet Sheet, opts ...Option) *Store {
	s := &Store{sheet: sheet, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EnsureSchema checks the header row and writes it when the sheet is empty.
// It is safe to run on every start.
func (s *Store) EnsureSchema(ctx context.Context) (SchemaAction, error) {
	header, err := s.sheet.ReadHeader(ctx)
	if err != nil {
		return "", wrap("read header", err)
	}
	if headerEqual(header, models.Header) {
		return SchemaUnchanged, nil
	}

	if isBlank(header) {
		if err := s.sheet.WriteHeader(ctx, models.Header); err != nil {
			return "", wrap("write header", err)
		}
		s.logger.Info("sheet header created", zap.Strings("header", models.Header))
		return SchemaCreated, nil
	}

	if !s.repairHeader {
		return "", &SchemaMismatchError{Expected: models.Header, Actual: header}
	}
	if err := s.sheet.WriteHeader(ctx, models.Header); err != nil {
		return "", wrap("write header", err)
	}
	s.logger.Warn("sheet header mismatched, inserted expected header",
		zap.Strings("found", header),
		zap.Strings("expected", models.Header),
	)
	return SchemaRepaired, nil
}

// AppendRecord appends one row. Duplicates are allowed.
func (s *Store) AppendRecord(ctx context.Context, rec models.Record) error {
	if err := s.sheet.AppendRow(ctx, rec.Row()); err != nil {
		return wrap("append row", err)
	}
	return nil
}

// FetchAll returns every stored record in insertion order.
func (s *Store) FetchAll(ctx context.Context) ([]models.Record, error) {
	rows, err := s.sheet.ReadAllRows(ctx)
	if err != nil {
		return nil, wrap("read rows", err)
	}
	records := make([]models.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, recordFromRow(row))
	}
	return records, nil
}

// Close releases the underlying sheet.
func (s *Store) Close() error {
	return s.sheet.Close()
}

func recordFromRow(row map[string]string) models.Record {
	return models.Record{
		Name:     strings.TrimSpace(row[models.ColumnName]),
		Wine:     strings.TrimSpace(row[models.ColumnWine]),
		Rating:   ParseRating(row[models.ColumnRating]),
		Category: models.Category(strings.TrimSpace(row[models.ColumnCategory])),
		Taste:    row[models.ColumnTaste],
	}
}

// ParseRating coerces a rating cell. Anything that is not an integral
// number in 1..10 is treated as absent.
func ParseRating(raw string) *int {
	v := strings.TrimSpace(raw)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil
	}
	n := int(f)
	if n < models.MinRating || n > models.MaxRating {
		return nil
	}
	return &n
}

func headerEqual(a, b []string) bool {
	a = trimTrailingBlank(a)
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if strings.TrimSpace(a[i]) != b[i] {
			return false
		}
	}
	return true
}

func isBlank(cells []string) bool {
	return len(trimTrailingBlank(cells)) == 0
}

func trimTrailingBlank(cells []string) []string {
	end := len(cells)
	for end > 0 && strings.TrimSpace(cells[end-1]) == "" {
		end--
	}
	return cells[:end]
}
