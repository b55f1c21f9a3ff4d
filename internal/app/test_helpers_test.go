package app

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/example/codegen/internal/models"
	"github.com/example/codegen/internal/ports/primary"
	"github.com/example/codegen/internal/ports/secondary"
)

// Ensure mocks implement the interfaces
var (
	_ secondary.ProjectLocator       = (*mockProjectLocator)(nil)
	_ secondary.ClassIntrospector    = (*mockIntrospector)(nil)
	_ secondary.EntityPrompter       = (*mockPrompter)(nil)
	_ secondary.DiagnosticRepository = (*mockDiagnosticRepository)(nil)
	_ primary.DiagnosticService      = (*mockDiagnosticService)(nil)
)

// mockProjectLocator implements secondary.ProjectLocator for testing.
type mockProjectLocator struct {
	projects []*secondary.ProjectRecord
	err      error
}

func (m *mockProjectLocator) Owning(ctx context.Context, dir string) (*secondary.ProjectRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	var best *secondary.ProjectRecord
	for _, p := range m.projects {
		if dir == p.RootDir || strings.HasPrefix(dir, p.RootDir+"/") {
			if best == nil || len(p.RootDir) > len(best.RootDir) {
				best = p
			}
		}
	}
	return best, nil
}

func (m *mockProjectLocator) FindByName(ctx context.Context, solutionDir, name string) (*secondary.ProjectRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, p := range m.projects {
		if p.Name == name && strings.HasPrefix(p.RootDir, solutionDir) {
			return p, nil
		}
	}
	return nil, nil
}

// mockIntrospector implements secondary.ClassIntrospector for testing.
type mockIntrospector struct {
	classes []models.ClassDescriptor
	err     error
	roots   []string
}

func (m *mockIntrospector) Classes(ctx context.Context, projectRoot string) ([]models.ClassDescriptor, error) {
	m.roots = append(m.roots, projectRoot)
	return m.classes, m.err
}

// mockPrompter implements secondary.EntityPrompter for testing.
type mockPrompter struct {
	answer  string
	err     error
	called  bool
	offered []string
}

func (m *mockPrompter) SelectEntity(ctx context.Context, folder string, entities []string) (string, error) {
	m.called = true
	m.offered = entities
	return m.answer, m.err
}

// mockDiagnosticService implements primary.DiagnosticService for testing.
type mockDiagnosticService struct {
	mu       sync.Mutex
	recorded []primary.FileOutcome
	batchIDs []string
}

func (m *mockDiagnosticService) ListDiagnostics(ctx context.Context, filters primary.DiagnosticFilters) ([]*primary.Diagnostic, error) {
	return nil, nil
}

func (m *mockDiagnosticService) GetDiagnostic(ctx context.Context, id string) (*primary.Diagnostic, error) {
	return nil, errors.New("not found")
}

func (m *mockDiagnosticService) RecordFailure(ctx context.Context, batchID string, outcome primary.FileOutcome) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recorded = append(m.recorded, outcome)
	m.batchIDs = append(m.batchIDs, batchID)
	return nil
}

func (m *mockDiagnosticService) PruneDiagnostics(ctx context.Context, olderThanDays int) (int, error) {
	return 0, nil
}

// mockDiagnosticRepository implements secondary.DiagnosticRepository for testing.
type mockDiagnosticRepository struct {
	records  map[string]*secondary.DiagnosticRecord
	order    []string
	listErr  error
	pruned   int
	pruneArg int
}

func newMockDiagnosticRepository() *mockDiagnosticRepository {
	return &mockDiagnosticRepository{records: make(map[string]*secondary.DiagnosticRecord)}
}

func (m *mockDiagnosticRepository) Create(ctx context.Context, record *secondary.DiagnosticRecord) error {
	if _, ok := m.records[record.ID]; ok {
		return errors.New("duplicate id")
	}
	m.records[record.ID] = record
	m.order = append(m.order, record.ID)
	return nil
}

func (m *mockDiagnosticRepository) GetByID(ctx context.Context, id string) (*secondary.DiagnosticRecord, error) {
	if r, ok := m.records[id]; ok {
		return r, nil
	}
	return nil, errors.New("not found")
}

func (m *mockDiagnosticRepository) List(ctx context.Context, filters secondary.DiagnosticFilters) ([]*secondary.DiagnosticRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.DiagnosticRecord
	for _, id := range m.order {
		r := m.records[id]
		if filters.BatchID != "" && r.BatchID != filters.BatchID {
			continue
		}
		if filters.Entity != "" && r.Entity != filters.Entity {
			continue
		}
		if filters.Level != "" && r.Level != filters.Level {
			continue
		}
		result = append(result, r)
	}
	if filters.Limit > 0 && len(result) > filters.Limit {
		result = result[:filters.Limit]
	}
	return result, nil
}

func (m *mockDiagnosticRepository) PruneOlderThan(ctx context.Context, days int) (int, error) {
	m.pruneArg = days
	return m.pruned, nil
}
