package export

import "github.com/google/uuid"

// Selection is an insertion-ordered set of tenant ids. Export runs walk it in
// the order tenants were picked, and clear it when the run finishes.
type Selection struct {
	order []uuid.UUID
	seen  map[uuid.UUID]struct{}
}

func NewSelection(ids ...uuid.UUID) *Selection {
	s := &Selection{seen: make(map[uuid.UUID]struct{})}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

func (s *Selection) Add(id uuid.UUID) {
	if _, ok := s.seen[id]; ok {
		return
	}
	s.seen[id] = struct{}{}
	s.order = append(s.order, id)
}

func (s *Selection) IDs() []uuid.UUID {
	out := make([]uuid.UUID, len(s.order))
	copy(out, s.order)
	return out
}

func (s *Selection) Len() int {
	return len(s.order)
}

func (s *Selection) Clear() {
	s.order = s.order[:0]
	s.seen = make(map[uuid.UUID]struct{})
}
