package util

import (
	"cmp"
	"slices"
)

type Set[T cmp.Ordered] struct {
	data map[T]struct{}
}

func NewSet[T cmp.Ordered](items ...T) *Set[T] {
	s := &Set[T]{
		data: make(map[T]struct{}),
	}
	for _, item := range items {
		s.Add(item)
	}
	return s
}

func (s Set[T]) Length() int {
	return len(s.data)
}

func (s *Set[T]) Add(item T) {
	s.data[item] = struct{}{}
}

func (s Set[T]) List() []T {
	out := make([]T, 0, len(s.data))
	for v := range s.data {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

func (s *Set[T]) Contains(item T) bool {
	_, found := s.data[item]
	return found
}

func (s *Set[T]) Remove(item T) {
	delete(s.data, item)
}

func (s *Set[T]) Clear() {
	s.data = make(map[T]struct{})
}
