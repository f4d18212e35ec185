package sqlsheet

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/cellar-club/tasting/internal/database"
	"github.com/cellar-club/tasting/internal/models"
	"github.com/cellar-club/tasting/internal/store"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "sheet.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func TestNewValidates(t *testing.T) {
	_, err := New(nil, "wine_ratings")
	assert.Error(t, err)

	_, err = New(openTestDB(t), "")
	assert.Error(t, err)
}

func TestStoreRoundTripThroughTable(t *testing.T) {
	ctx := context.Background()
	sheet, err := New(openTestDB(t), "wine_ratings")
	require.NoError(t, err)
	s := store.New(sheet)

	action, err := s.EnsureSchema(ctx)
	require.NoError(t, err)
	assert.Equal(t, store.SchemaCreated, action)

	action, err = s.EnsureSchema(ctx)
	require.NoError(t, err)
	assert.Equal(t, store.SchemaUnchanged, action)

	require.NoError(t, s.AppendRecord(ctx, models.NewRatingRecord("Ann", "Riesling", 7)))
	require.NoError(t, s.AppendRecord(ctx, models.NewTasteRecord("Ann", "Riesling", "Citrus")))

	records, err := s.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 7, records[0].RatingValue())
	assert.Equal(t, models.CategoryTaste, records[1].Category)
	assert.Equal(t, "Citrus", records[1].Taste)
}

func TestSheetsAreIsolatedByName(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	first, err := New(db, "first")
	require.NoError(t, err)
	second, err := New(db, "second")
	require.NoError(t, err)

	require.NoError(t, first.WriteHeader(ctx, models.Header))
	require.NoError(t, first.AppendRow(ctx, []string{"Ann", "Riesling", "6", "Rating", ""}))

	header, err := second.ReadHeader(ctx)
	require.NoError(t, err)
	assert.Empty(t, header)

	rows, err := second.ReadAllRows(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestWriteHeaderGoesAboveExistingRows(t *testing.T) {
	ctx := context.Background()
	sheet, err := New(openTestDB(t), "legacy")
	require.NoError(t, err)

	require.NoError(t, sheet.AppendRow(ctx, []string{"who", "what"}))
	require.NoError(t, sheet.WriteHeader(ctx, models.Header))

	header, err := sheet.ReadHeader(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Header, header)

	rows, err := sheet.ReadAllRows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "who", rows[0][models.ColumnName])
}
