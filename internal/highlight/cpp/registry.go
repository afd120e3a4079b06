package cpp

import "slices"

// nameSet is an append-only set of names that remembers insertion order.
type nameSet struct {
	index map[string]struct{}
	order []string
}

func newNameSet(seed ...string) *nameSet {
	s := &nameSet{index: make(map[string]struct{}, len(seed))}
	for _, name := range seed {
		s.add(name)
	}
	return s
}

// add inserts name and reports whether it was new. Empty names are ignored.
func (s *nameSet) add(name string) bool {
	if name == "" {
		return false
	}
	if _, ok := s.index[name]; ok {
		return false
	}
	s.index[name] = struct{}{}
	s.order = append(s.order, name)
	return true
}

func (s *nameSet) has(name string) bool {
	_, ok := s.index[name]
	return ok
}

func (s *nameSet) len() int {
	return len(s.order)
}

func (s *nameSet) names() []string {
	return slices.Clone(s.order)
}
