package engine

import (
	"errors"
	"fmt"

	"github.com/kovacq/gravl/pkg/persistence"
)

var (
	// ErrIO covers store paths that cannot be read or written.
	ErrIO = errors.New("store i/o error")
	// ErrCorruptLog covers a command log that cannot be fully parsed. There
	// is no partial recovery; the invocation aborts with no result.
	ErrCorruptLog = errors.New("corrupt command log")
	// ErrUnsupported covers query combinations the engine cannot represent.
	ErrUnsupported = errors.New("unsupported query")
)

// classifyStoreErr sorts a persistence failure into the corruption or the
// plain i/o bucket, keeping the underlying detail in the chain.
func classifyStoreErr(err error) error {
	if err == nil {
		return nil
	}
	if persistence.IsCorrupt(err) {
		return fmt.Errorf("%w: %w", ErrCorruptLog, err)
	}
	return fmt.Errorf("%w: %w", ErrIO, err)
}
