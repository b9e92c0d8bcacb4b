// Package session coordinates the remote account/application state with
// the local single-row caches, and exposes the loading/success/error
// state machine consumed by screen controllers.
package session

// Phase identifies which variant a State holds.
type Phase int

const (
	// Loading is the initial phase and the phase re-entered on every
	// user-triggered refresh or mutation.
	Loading Phase = iota
	// Success is a terminal phase holding a value.
	Success
	// Failed is a terminal phase holding an error. There is no
	// automatic retry; leaving Failed requires an explicit
	// user-triggered repeat.
	Failed
)

// State is the observable result of one controller operation: exactly
// one of Loading, Success (with a value) or Failed (with an error).
type State[T any] struct {
	phase Phase
	value T
	err   error
}

// NewLoading returns a Loading state.
func NewLoading[T any]() State[T] {
	return State[T]{phase: Loading}
}

// NewSuccess returns a Success state holding v.
func NewSuccess[T any](v T) State[T] {
	return State[T]{phase: Success, value: v}
}

// NewFailure returns a Failed state holding err.
func NewFailure[T any](err error) State[T] {
	return State[T]{phase: Failed, err: err}
}

// Phase returns the variant tag.
func (s State[T]) Phase() Phase { return s.phase }

// Value returns the held value and whether the state is Success.
func (s State[T]) Value() (T, bool) {
	return s.value, s.phase == Success
}

// Err returns the held error, nil unless the state is Failed.
func (s State[T]) Err() error { return s.err }

// Match invokes exactly one branch for the state's variant. Nil
// branches are skipped.
func (s State[T]) Match(onLoading func(), onSuccess func(T), onFailure func(error)) {
	switch s.phase {
	case Loading:
		if onLoading != nil {
			onLoading()
		}
	case Success:
		if onSuccess != nil {
			onSuccess(s.value)
		}
	case Failed:
		if onFailure != nil {
			onFailure(s.err)
		}
	}
}
