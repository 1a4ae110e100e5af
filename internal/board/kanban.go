package board

import "github.com/aharoni/caseboard/internal/model"

// Filter narrows the Kanban projection. Nil fields match everything.
type Filter struct {
	TypeID  *string
	ChildID *string
}

func (f Filter) matches(t model.Task) bool {
	if f.TypeID != nil && t.TypeID != *f.TypeID {
		return false
	}
	if f.ChildID != nil {
		if t.ChildID == nil || *t.ChildID != *f.ChildID {
			return false
		}
	}
	return true
}

// Column is one Kanban lane: a status and the tasks currently in it.
type Column struct {
	Status string
	Tasks  []model.Task
}

// Projection groups the store's tasks into the three status columns,
// in lifecycle order, applying the filter. Tasks with an unknown status
// are dropped from the projection rather than invented a column.
func (s *Store) Projection(filter Filter) []Column {
	cols := make([]Column, len(model.StatusOrder))
	for i, status := range model.StatusOrder {
		cols[i] = Column{Status: status}
	}

	for _, t := range s.All() {
		if !filter.matches(t) {
			continue
		}
		idx := model.StatusIndex(t.Status)
		if idx < 0 {
			continue
		}
		cols[idx].Tasks = append(cols[idx].Tasks, t)
	}
	return cols
}
