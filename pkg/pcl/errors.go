package pcl

import (
	"errors"
	"fmt"

	"github.com/pclgo/pcl-go/pkg/pcl/internal/backend"
)

var (
	// ErrReleased is returned when a handle is used after Release, Free or Move.
	ErrReleased = errors.New("pcl: handle released")

	// ErrNotShared is returned for shared-ownership queries on a value handle.
	ErrNotShared = errors.New("pcl: handle is not shared")

	ErrIndexOutOfRange = errors.New("pcl: index out of range")
	ErrTypeMismatch    = errors.New("pcl: point type mismatch")
	ErrEmptyPath       = errors.New("pcl: empty path")

	// ErrNoValidPoints is returned by reductions such as ComputeCentroid when
	// no point has finite coordinates.
	ErrNoValidPoints = errors.New("pcl: no valid points")

	// ErrNotBuilt is returned when the requested backend feature was not
	// compiled in.
	ErrNotBuilt = backend.ErrNotBuilt
)

// NativeError is a failure reported by the native library. Op names the
// native routine; Code is one of the backend status codes.
type NativeError = backend.NativeError

// remapError converts backend errors to public API errors. Native errors keep
// their structure and additionally match the closest sentinel with errors.Is.
func remapError(err error) error {
	if err == nil {
		return nil
	}
	var ne *NativeError
	if !errors.As(err, &ne) {
		return err
	}
	var sentinel error
	switch ne.Code {
	case backend.CodeNull:
		sentinel = ErrReleased
	case backend.CodeNotShared:
		sentinel = ErrNotShared
	case backend.CodeRange:
		sentinel = ErrIndexOutOfRange
	case backend.CodeType:
		sentinel = ErrTypeMismatch
	default:
		return err
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
