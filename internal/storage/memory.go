package storage

import (
	"context"
	"sync"

	"github.com/sumanurawat/phoenix-sub003/internal/models"
)

// Memory is a process-local store. Contents are lost on exit.
type Memory struct {
	mu    sync.RWMutex
	docs  map[string]models.Submission
	clock writeClock
}

func NewMemory() *Memory {
	return &Memory{docs: make(map[string]models.Submission)}
}

func (m *Memory) Close() error { return nil }

func (m *Memory) CreateSubmission(ctx context.Context, s models.Submission) (models.Submission, error) {
	if err := ctx.Err(); err != nil {
		return models.Submission{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.docs[s.ID]; ok {
		return models.Submission{}, ErrDuplicate
	}
	out := s.Clone()
	out.Timestamp = m.clock.next()
	m.docs[s.ID] = out
	return out.Clone(), nil
}

func (m *Memory) GetSubmission(ctx context.Context, id string) (models.Submission, error) {
	if err := ctx.Err(); err != nil {
		return models.Submission{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.docs[id]
	if !ok {
		return models.Submission{}, ErrNotFound
	}
	return s.Clone(), nil
}

// Len reports how many submissions are stored.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs)
}
