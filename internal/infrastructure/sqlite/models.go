package sqlite

import (
	"time"

	"github.com/zjrosen/vizsync/internal/workspace"
)

// savedStateModel is the database row for the saved_states table.
type savedStateModel struct {
	ID        int64
	Name      string
	Document  []byte
	CreatedAt int64 // Unix timestamp
	UpdatedAt int64 // Unix timestamp
}

func toSavedStateModel(s *workspace.SavedState) *savedStateModel {
	return &savedStateModel{
		Name:      s.Name,
		Document:  s.Document,
		CreatedAt: s.CreatedAt.Unix(),
		UpdatedAt: s.UpdatedAt.Unix(),
	}
}

func (m *savedStateModel) toDomain() *workspace.SavedState {
	return &workspace.SavedState{
		Name:      m.Name,
		Document:  m.Document,
		CreatedAt: time.Unix(m.CreatedAt, 0),
		UpdatedAt: time.Unix(m.UpdatedAt, 0),
	}
}
