package rowstore

import (
	"context"
	"fmt"
	"jazaidoc-service/internal/app/contracts"
	"jazaidoc-service/internal/pkg/exceptions"
	"sync"
)

type memoryRowStore struct {
	mu         sync.RWMutex
	containers map[string]map[string][][]string
}

func NewMemoryRowStore() contracts.RowStore {
	return &memoryRowStore{containers: make(map[string]map[string][][]string)}
}

func (s *memoryRowStore) ReadRange(ctx context.Context, container, reference string) ([][]string, error) {
	ref, err := parseRange(reference)
	if err != nil {
		return nil, exceptions.ErrInvalidRangeReference(err, reference)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return ref.project(trimTrailingEmpty(s.containers[container][ref.Sheet])), nil
}

func (s *memoryRowStore) AppendRow(ctx context.Context, container, sheet string, values []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := trimTrailingEmpty(s.sheet(container, sheet))
	s.containers[container][sheet] = append(rows, append([]string(nil), values...))
	return nil
}

func (s *memoryRowStore) UpdateCell(ctx context.Context, container, reference, value string) error {
	ref, err := parseCell(reference)
	if err != nil {
		return exceptions.ErrInvalidCellReference(err, reference)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.sheet(container, ref.Sheet)
	for len(rows) < ref.Row {
		rows = append(rows, []string{})
	}
	rows[ref.Row-1] = setCell(rows[ref.Row-1], ref.Col, value)
	s.containers[container][ref.Sheet] = rows
	return nil
}

func (s *memoryRowStore) DeleteRow(ctx context.Context, container, sheet string, rowIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.sheet(container, sheet)
	if rowIndex < 1 || rowIndex > len(rows) {
		return exceptions.ErrRowStore(fmt.Errorf("row %d out of range", rowIndex), "DeleteRow")
	}
	s.containers[container][sheet] = append(rows[:rowIndex-1], rows[rowIndex:]...)
	return nil
}

func (s *memoryRowStore) EnsureSheet(ctx context.Context, container, sheet string, header []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.sheet(container, sheet)
	if len(trimTrailingEmpty(rows)) == 0 && len(header) > 0 {
		s.containers[container][sheet] = [][]string{append([]string(nil), header...)}
	}
	return nil
}

// sheet returns the rows of a sheet, creating the container and sheet. Callers hold mu.
func (s *memoryRowStore) sheet(container, sheet string) [][]string {
	sheets, ok := s.containers[container]
	if !ok {
		sheets = make(map[string][][]string)
		s.containers[container] = sheets
	}
	rows, ok := sheets[sheet]
	if !ok {
		rows = [][]string{}
		sheets[sheet] = rows
	}
	return rows
}
