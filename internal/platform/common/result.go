// Package common provides the core infrastructure shared by every school
// module: the use case Result type, the UnitOfWork contract, execution
// context propagation, and the tagged error taxonomy.
package common

// Result represents the outcome of a use case execution.
//
// A successful Result can ONLY be created via UnitOfWork.Commit: the
// success constructor is unexported, so only this package (specifically
// MongoUnitOfWork) can produce one. That is the mechanism guaranteeing
// every successful mutation persisted its aggregate together with its
// domain event and audit record.
type Result[T any] struct {
	value   T
	err     *UseCaseError
	success bool
}

// newSuccess is unexported on purpose; see the type comment.
func newSuccess[T any](value T) Result[T] {
	return Result[T]{value: value, success: true}
}

// Failure creates a failed result. Any code may fail directly, without a
// unit of work: validation problems, policy denials, lookup misses.
func Failure[T any](err *UseCaseError) Result[T] {
	return Result[T]{err: err}
}

// IsSuccess reports whether the result is successful.
func (r Result[T]) IsSuccess() bool {
	return r.success
}

// IsFailure reports whether the result is a failure.
func (r Result[T]) IsFailure() bool {
	return !r.success
}

// Value returns the success value. Only meaningful after IsSuccess.
func (r Result[T]) Value() T {
	return r.value
}

// Error returns the error for a failed result, nil otherwise.
func (r Result[T]) Error() *UseCaseError {
	return r.err
}

// Map transforms a successful result's value. A failure passes through
// unchanged.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	if r.IsFailure() {
		return Failure[U](r.err)
	}
	return newSuccess(fn(r.value))
}

// FlatMap chains result-returning operations, short-circuiting on the
// first failure.
func FlatMap[T, U any](r Result[T], fn func(T) Result[U]) Result[U] {
	if r.IsFailure() {
		return Failure[U](r.err)
	}
	return fn(r.value)
}
