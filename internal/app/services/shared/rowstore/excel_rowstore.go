package rowstore

import (
	"context"
	"errors"
	"fmt"
	"jazaidoc-service/internal/app/contracts"
	"jazaidoc-service/internal/pkg/constvars"
	"jazaidoc-service/internal/pkg/exceptions"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	workbookExtension  = ".xlsx"
	defaultWorkbookTab = "Sheet1"
)

// excelRowStore keeps one workbook per container under a directory.
type excelRowStore struct {
	directory string
	locksMu   sync.Mutex
	locks     map[string]*sync.Mutex
	Log       *zap.Logger
}

func NewExcelRowStore(directory string, logger *zap.Logger) (contracts.RowStore, error) {
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return nil, err
	}
	return &excelRowStore{
		directory: directory,
		locks:     make(map[string]*sync.Mutex),
		Log:       logger,
	}, nil
}

func (s *excelRowStore) ReadRange(ctx context.Context, container, reference string) ([][]string, error) {
	ref, err := parseRange(reference)
	if err != nil {
		return nil, exceptions.ErrInvalidRangeReference(err, reference)
	}

	var rows [][]string
	err = s.withWorkbook(container, false, func(f *excelize.File) (bool, error) {
		if f == nil || !hasSheet(f, ref.Sheet) {
			return false, nil
		}
		all, err := f.GetRows(ref.Sheet)
		if err != nil {
			return false, err
		}
		rows = ref.project(trimTrailingEmpty(all))
		return false, nil
	})
	if err != nil {
		s.logFailure("excelRowStore.ReadRange", container, reference, err)
		return nil, exceptions.ErrRowStore(err, "ReadRange")
	}
	return rows, nil
}

func (s *excelRowStore) AppendRow(ctx context.Context, container, sheet string, values []string) error {
	err := s.withWorkbook(container, true, func(f *excelize.File) (bool, error) {
		if err := ensureSheet(f, sheet); err != nil {
			return false, err
		}
		all, err := f.GetRows(sheet)
		if err != nil {
			return false, err
		}
		cell, err := excelize.CoordinatesToCellName(1, len(trimTrailingEmpty(all))+1)
		if err != nil {
			return false, err
		}
		row := append([]string(nil), values...)
		return true, f.SetSheetRow(sheet, cell, &row)
	})
	if err != nil {
		s.logFailure("excelRowStore.AppendRow", container, sheet, err)
		return exceptions.ErrRowStore(err, "AppendRow")
	}
	return nil
}

func (s *excelRowStore) UpdateCell(ctx context.Context, container, reference, value string) error {
	ref, err := parseCell(reference)
	if err != nil {
		return exceptions.ErrInvalidCellReference(err, reference)
	}

	err = s.withWorkbook(container, true, func(f *excelize.File) (bool, error) {
		if err := ensureSheet(f, ref.Sheet); err != nil {
			return false, err
		}
		cell, err := excelize.CoordinatesToCellName(ref.Col, ref.Row)
		if err != nil {
			return false, err
		}
		return true, f.SetCellStr(ref.Sheet, cell, value)
	})
	if err != nil {
		s.logFailure("excelRowStore.UpdateCell", container, reference, err)
		return exceptions.ErrRowStore(err, "UpdateCell")
	}
	return nil
}

func (s *excelRowStore) DeleteRow(ctx context.Context, container, sheet string, rowIndex int) error {
	err := s.withWorkbook(container, false, func(f *excelize.File) (bool, error) {
		if f == nil || !hasSheet(f, sheet) {
			return false, fmt.Errorf("sheet %s does not exist", sheet)
		}
		all, err := f.GetRows(sheet)
		if err != nil {
			return false, err
		}
		if rowIndex < 1 || rowIndex > len(all) {
			return false, fmt.Errorf("row %d out of range", rowIndex)
		}
		return true, f.RemoveRow(sheet, rowIndex)
	})
	if err != nil {
		s.logFailure("excelRowStore.DeleteRow", container, sheet, err)
		return exceptions.ErrRowStore(err, "DeleteRow")
	}
	return nil
}

func (s *excelRowStore) EnsureSheet(ctx context.Context, container, sheet string, header []string) error {
	err := s.withWorkbook(container, true, func(f *excelize.File) (bool, error) {
		if err := ensureSheet(f, sheet); err != nil {
			return false, err
		}
		all, err := f.GetRows(sheet)
		if err != nil {
			return false, err
		}
		if len(trimTrailingEmpty(all)) > 0 || len(header) == 0 {
			return true, nil
		}
		row := append([]string(nil), header...)
		return true, f.SetSheetRow(sheet, "A1", &row)
	})
	if err != nil {
		s.logFailure("excelRowStore.EnsureSheet", container, sheet, err)
		return exceptions.ErrRowStore(err, "EnsureSheet")
	}
	return nil
}

// withWorkbook opens the container workbook under its lock and saves it when fn
// reports a change. With create unset, a missing workbook is passed as nil.
func (s *excelRowStore) withWorkbook(container string, create bool, fn func(f *excelize.File) (bool, error)) error {
	path, err := s.workbookPath(container)
	if err != nil {
		return err
	}

	lock := s.containerLock(container)
	lock.Lock()
	defer lock.Unlock()

	f, err := excelize.OpenFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist) && create:
		f = excelize.NewFile()
	case errors.Is(err, os.ErrNotExist):
		_, err = fn(nil)
		return err
	case err != nil:
		return err
	}
	defer f.Close()

	changed, err := fn(f)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	return f.SaveAs(path)
}

func (s *excelRowStore) workbookPath(container string) (string, error) {
	name := strings.TrimSpace(container)
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name {
		return "", fmt.Errorf("invalid container name %q", container)
	}
	return filepath.Join(s.directory, name+workbookExtension), nil
}

func (s *excelRowStore) containerLock(container string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	lock, ok := s.locks[container]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[container] = lock
	}
	return lock
}

func (s *excelRowStore) logFailure(operation, container, reference string, err error) {
	s.Log.Error(operation+" failed",
		zap.String(constvars.LoggingContainerKey, container),
		zap.String(constvars.LoggingRangeKey, reference),
		zap.Error(err),
	)
}

func hasSheet(f *excelize.File, sheet string) bool {
	index, err := f.GetSheetIndex(sheet)
	return err == nil && index != -1
}

// ensureSheet creates the sheet. The default tab of a fresh workbook is renamed
// rather than left behind.
func ensureSheet(f *excelize.File, sheet string) error {
	if hasSheet(f, sheet) {
		return nil
	}
	list := f.GetSheetList()
	if len(list) == 1 && list[0] == defaultWorkbookTab {
		rows, err := f.GetRows(defaultWorkbookTab)
		if err == nil && len(trimTrailingEmpty(rows)) == 0 {
			return f.SetSheetName(defaultWorkbookTab, sheet)
		}
	}
	_, err := f.NewSheet(sheet)
	return err
}
