package store

import (
	"context"
	"sync"

	"github.com/legallenshq/legal-lens-api/internal/models"
	"github.com/legallenshq/legal-lens-api/internal/utils"
)

// memoryStore is the default backend: process-lifetime, no eviction.
type memoryStore struct {
	mu       sync.RWMutex
	analyses map[string]models.StructuredAnalysis
}

func NewMemoryStore() Store {
	return &memoryStore{
		analyses: make(map[string]models.StructuredAnalysis),
	}
}

func (s *memoryStore) Put(_ context.Context, analysis *models.StructuredAnalysis) (string, error) {
	id := utils.GenerateID()

	// Copy the clause slice so callers cannot mutate a stored record through
	// a retained reference.
	record := *analysis
	record.RiskyClauses = append([]models.Clause{}, analysis.RiskyClauses...)

	s.mu.Lock()
	s.analyses[id] = record
	s.mu.Unlock()

	return id, nil
}

func (s *memoryStore) Get(_ context.Context, id string) (*models.StructuredAnalysis, error) {
	s.mu.RLock()
	analysis, ok := s.analyses[id]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}

	result := analysis
	result.RiskyClauses = append([]models.Clause{}, analysis.RiskyClauses...)
	return &result, nil
}
