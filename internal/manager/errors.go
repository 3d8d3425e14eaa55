package manager

import (
	"errors"
	"fmt"
	"time"
)

// dependencyUnavailableError signals that the model-execution runtime is not
// linked into this binary or cannot be used.
type dependencyUnavailableError struct{ msg string }

func (e dependencyUnavailableError) Error() string { return e.msg }

// ErrDependencyUnavailable constructs a dependencyUnavailableError.
func ErrDependencyUnavailable(msg string) error { return dependencyUnavailableError{msg: msg} }

// IsDependencyUnavailable reports whether err indicates a missing runtime dependency.
func IsDependencyUnavailable(err error) bool {
	var e dependencyUnavailableError
	return errors.As(err, &e)
}

type modelAssetMissingError struct{ path string }

func (e modelAssetMissingError) Error() string { return "model file not found at " + e.path }

// ErrModelAssetMissing returns an error for a model path that does not exist.
func ErrModelAssetMissing(path string) error { return modelAssetMissingError{path: path} }

// IsModelAssetMissing reports whether err indicates a missing model asset.
func IsModelAssetMissing(err error) bool {
	var e modelAssetMissingError
	return errors.As(err, &e)
}

// modelLoadError wraps a failure raised by the runtime while constructing the model handle.
type modelLoadError struct {
	path string
	err  error
}

func (e modelLoadError) Error() string {
	return fmt.Sprintf("error initializing model from %s: %v", e.path, e.err)
}

func (e modelLoadError) Unwrap() error { return e.err }

// ErrModelLoad wraps a construction failure for the model at path.
func ErrModelLoad(path string, err error) error { return modelLoadError{path: path, err: err} }

// IsModelLoad reports whether err is a model construction failure.
func IsModelLoad(err error) bool {
	var e modelLoadError
	return errors.As(err, &e)
}

type notReadyError struct{}

func (notReadyError) Error() string { return "Model not loaded yet or failed to load" }

// ErrNotReady is returned by Generate while no model handle is ready.
var ErrNotReady error = notReadyError{}

// IsNotReady reports whether err indicates the model is not ready (return 503).
func IsNotReady(err error) bool {
	var e notReadyError
	return errors.As(err, &e)
}

// tooBusyError signals that the model lock could not be acquired within MaxWait.
type tooBusyError struct{ waited string }

func (e tooBusyError) Error() string { return "too busy: model lock not acquired within " + e.waited }

// ErrTooBusy returns the error produced when the model lock was not acquired within waited.
func ErrTooBusy(waited time.Duration) error { return tooBusyError{waited: waited.String()} }

// IsTooBusy reports whether err indicates backpressure (return 429).
func IsTooBusy(err error) bool {
	var e tooBusyError
	return errors.As(err, &e)
}

// generationError wraps an error raised by the runtime during generation.
// Its message is the runtime's message unchanged.
type generationError struct{ err error }

func (e generationError) Error() string { return e.err.Error() }

func (e generationError) Unwrap() error { return e.err }

// IsGenerationFailed reports whether err was raised by the runtime during generation.
func IsGenerationFailed(err error) bool {
	var e generationError
	return errors.As(err, &e)
}
