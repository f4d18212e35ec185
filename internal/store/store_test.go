package store

import (
	"context"
	"errors"
	"testing"

	"github.com/cellar-club/tasting/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureSchemaCreatesHeaderOnEmptySheet(t *testing.T) {
	ctx := context.Background()
	sheet := NewMemorySheet()
	s := New(sheet)

	action, err := s.EnsureSchema(ctx)
	require.NoError(t, err)
	assert.Equal(t, SchemaCreated, action)
	assert.Equal(t, [][]string{models.Header}, sheet.Rows())

	action, err = s.EnsureSchema(ctx)
	require.NoError(t, err)
	assert.Equal(t, SchemaUnchanged, action)
	assert.Len(t, sheet.Rows(), 1)
}

func TestEnsureSchemaMismatch(t *testing.T) {
	ctx := context.Background()
	sheet := NewMemorySheet(
		[]string{"Who", "What"},
		[]string{"Ann", "Riesling"},
	)

	_, err := New(sheet).EnsureSchema(ctx)
	var mismatch *SchemaMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, []string{"Who", "What"}, mismatch.Actual)
	assert.Len(t, sheet.Rows(), 2, "a mismatch must not touch the sheet")
}

func TestEnsureSchemaRepairInsertsHeaderAbove(t *testing.T) {
	ctx := context.Background()
	sheet := NewMemorySheet(
		[]string{"Who", "What"},
		[]string{"Ann", "Riesling"},
	)
	s := New(sheet, WithHeaderRepair())

	action, err := s.EnsureSchema(ctx)
	require.NoError(t, err)
	assert.Equal(t, SchemaRepaired, action)

	rows := sheet.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, models.Header, rows[0])
	assert.Equal(t, []string{"Who", "What"}, rows[1])

	action, err = s.EnsureSchema(ctx)
	require.NoError(t, err)
	assert.Equal(t, SchemaUnchanged, action)
}

func TestEnsureSchemaIgnoresTrailingBlankHeaderCells(t *testing.T) {
	sheet := NewMemorySheet(append(append([]string{}, models.Header...), "", " "))
	action, err := New(sheet).EnsureSchema(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SchemaUnchanged, action)
}

func TestAppendAndFetchAll(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemorySheet())
	_, err := s.EnsureSchema(ctx)
	require.NoError(t, err)

	require.NoError(t, s.AppendRecord(ctx, models.NewRatingRecord("A", "W1", 7)))
	require.NoError(t, s.AppendRecord(ctx, models.NewRatingRecord("A", "W1", 7)))
	require.NoError(t, s.AppendRecord(ctx, models.NewTasteRecord("A", "W1", "Citrus")))

	records, err := s.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, 7, records[0].RatingValue())
	assert.Equal(t, records[0], records[1], "duplicates are kept")
	assert.Equal(t, models.CategoryTaste, records[2].Category)
	assert.Nil(t, records[2].Rating)
	assert.Equal(t, "Citrus", records[2].Taste)

	again, err := s.FetchAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, records, again)
}

func TestFetchAllCoercesRatings(t *testing.T) {
	sheet := NewMemorySheet(
		models.Header,
		[]string{"A", "W1", "8", "Rating", ""},
		[]string{"B", "W1", "9.0", "Rating", ""},
		[]string{"C", "W1", "abc", "Rating", ""},
		[]string{"D", "W1", "7.5", "Rating", ""},
		[]string{"E", "W1", "11", "Rating", ""},
		[]string{"F", "W1"},
		[]string{"", "", "", "", ""},
	)

	records, err := New(sheet).FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 6, "blank rows are skipped")

	assert.Equal(t, 8, records[0].RatingValue())
	assert.Equal(t, 9, records[1].RatingValue())
	for _, r := range records[2:] {
		assert.Nil(t, r.Rating, "row %s", r.Name)
	}
	assert.Equal(t, models.Category(""), records[5].Category)
}

func TestParseRating(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"1", 1, true},
		{" 10 ", 10, true},
		{"5.0", 5, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"NaN", 0, false},
		{"", 0, false},
		{"seven", 0, false},
	}
	for _, tt := range tests {
		got := ParseRating(tt.in)
		if !tt.ok {
			assert.Nil(t, got, "ParseRating(%q)", tt.in)
			continue
		}
		require.NotNil(t, got, "ParseRating(%q)", tt.in)
		assert.Equal(t, tt.want, *got)
	}
}

type failingSheet struct{ MemorySheet }

var errBackend = errors.New("quota exceeded")

func (f *failingSheet) ReadAllRows(context.Context) ([]map[string]string, error) {
	return nil, errBackend
}

func (f *failingSheet) AppendRow(context.Context, []string) error {
	return errBackend
}

func TestBackendErrorsAreWrapped(t *testing.T) {
	ctx := context.Background()
	s := New(&failingSheet{})

	_, err := s.FetchAll(ctx)
	var storeErr *StoreError
	require.True(t, errors.As(err, &storeErr))
	assert.Equal(t, "read rows", storeErr.Op)
	assert.ErrorIs(t, err, errBackend)

	err = s.AppendRecord(ctx, models.NewRatingRecord("A", "W1", 3))
	assert.ErrorIs(t, err, errBackend)
}

func TestMapRows(t *testing.T) {
	rows := MapRows([]string{"Name", " Wine ", ""}, [][]string{
		{"Ann", "Riesling", "ignored", "extra"},
		{"Bob"},
	})
	require.Len(t, rows, 2)
	assert.Equal(t, map[string]string{"Name": "Ann", "Wine": "Riesling"}, rows[0])
	assert.Equal(t, map[string]string{"Name": "Bob", "Wine": ""}, rows[1])
}
