package query

import "qbank/internal/question"

// Choice is a single-valued selector that is either All (the zero value) or
// one concrete value.
type Choice[T comparable] struct {
	value T
	set   bool
}

// All returns the unconstrained selector.
func All[T comparable]() Choice[T] {
	return Choice[T]{}
}

// Only returns a selector matching exactly v.
func Only[T comparable](v T) Choice[T] {
	return Choice[T]{value: v, set: true}
}

// Value returns the selected value and whether one is set.
func (c Choice[T]) Value() (T, bool) {
	return c.value, c.set
}

// IsAll reports whether the selector is unconstrained.
func (c Choice[T]) IsAll() bool {
	return !c.set
}

// Matches reports whether v satisfies the selector.
func (c Choice[T]) Matches(v T) bool {
	return !c.set || c.value == v
}

type (
	PaperChoice      = Choice[question.PaperType]
	YearChoice       = Choice[question.Year]
	DifficultyChoice = Choice[question.Difficulty]
)
