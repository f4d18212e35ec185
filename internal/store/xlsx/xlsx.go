// Package xlsx stores the record sheet in a local Excel workbook.
package xlsx

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/cellar-club/tasting/internal/models"
	"github.com/cellar-club/tasting/internal/store"
	"github.com/xuri/excelize/v2"
)

const defaultSheetName = "Sheet1"

var ratingColumn = columnIndex(models.ColumnRating)

func columnIndex(name string) int {
	for i, col := range models.Header {
		if col == name {
			return i
		}
	}
	return -1
}

// Sheet is a store.Sheet backed by one worksheet of an .xlsx file. Every
// write is saved to disk before returning.
type Sheet struct {
	mu    sync.Mutex
	path  string
	sheet string
	file  *excelize.File
}

var _ store.Sheet = (*Sheet)(nil)

// Open opens the workbook at path, creating the file and the worksheet when
// they do not exist yet.
func Open(path, sheetName string) (*Sheet, error) {
	if sheetName == "" {
		return nil, errors.New("xlsx: sheet name is empty")
	}

	f, created, err := openOrCreate(path)
	if err != nil {
		return nil, err
	}

	idx, err := f.GetSheetIndex(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("xlsx: lookup sheet %q: %w", sheetName, err)
	}
	if idx < 0 {
		idx, err = f.NewSheet(sheetName)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("xlsx: create sheet %q: %w", sheetName, err)
		}
		f.SetActiveSheet(idx)
		if created && sheetName != defaultSheetName {
			_ = f.DeleteSheet(defaultSheetName)
		}
		created = true
	}
	if created {
		if err := f.SaveAs(path); err != nil {
			f.Close()
			return nil, fmt.Errorf("xlsx: save %q: %w", path, err)
		}
	}

	return &Sheet{path: path, sheet: sheetName, file: f}, nil
}

func openOrCreate(path string) (*excelize.File, bool, error) {
	if _, err := os.Stat(path); err == nil {
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, false, fmt.Errorf("xlsx: open %q: %w", path, err)
		}
		return f, false, nil
	} else if !os.IsNotExist(err) {
		return nil, false, fmt.Errorf("xlsx: stat %q: %w", path, err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, false, fmt.Errorf("xlsx: create dir %q: %w", dir, err)
		}
	}
	return excelize.NewFile(), true, nil
}

func (s *Sheet) rows() ([][]string, error) {
	rows, err := s.file.GetRows(s.sheet)
	if err != nil {
		return nil, fmt.Errorf("xlsx: read rows: %w", err)
	}
	return rows, nil
}

func (s *Sheet) ReadHeader(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.rows()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []string{}, nil
	}
	return rows[0], nil
}

func (s *Sheet) WriteHeader(ctx context.Context, header []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.rows()
	if err != nil {
		return err
	}
	if len(rows) > 0 {
		if err := s.file.InsertRows(s.sheet, 1, 1); err != nil {
			return fmt.Errorf("xlsx: insert header row: %w", err)
		}
	}
	if err := s.setRow(1, header); err != nil {
		return err
	}
	return s.save()
}

func (s *Sheet) AppendRow(ctx context.Context, cells []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.rows()
	if err != nil {
		return err
	}
	if err := s.setRow(len(rows)+1, cells); err != nil {
		return err
	}
	return s.save()
}

func (s *Sheet) ReadAllRows(ctx context.Context) ([]map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.rows()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []map[string]string{}, nil
	}
	return store.MapRows(rows[0], rows[1:]), nil
}

func (s *Sheet) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}

// setRow writes cells starting at column A. Only the rating column of a
// data row is stored as a number; every other cell keeps its text as is.
func (s *Sheet) setRow(row int, cells []string) error {
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
		if row > 1 && i == ratingColumn {
			if n, err := strconv.Atoi(c); err == nil {
				values[i] = n
			}
		}
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("xlsx: cell name: %w", err)
	}
	if err := s.file.SetSheetRow(s.sheet, cell, &values); err != nil {
		return fmt.Errorf("xlsx: write row %d: %w", row, err)
	}
	return nil
}

func (s *Sheet) save() error {
	if err := s.file.SaveAs(s.path); err != nil {
		return fmt.Errorf("xlsx: save %q: %w", s.path, err)
	}
	return nil
}
