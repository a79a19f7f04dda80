// Package persistence implements the durable, append-only command log
// backing a graph store.
//
// The log is a flat file of binary frames (see frame.go), one frame per
// mutation command. Appends are atomic and synced before returning, so a
// successful Append guarantees the command survives a process crash. Loads
// read the file sequentially and fail hard on any truncated or corrupt
// frame; there is no partial-recovery mode.
//
// Writers and readers from independent invocations are serialized by an
// advisory file lock scoped to the store directory: appends take the lock
// exclusively, loads take it shared so readers do not block each other.
package persistence

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/kovacq/gravl/pkg/graph"
)

const (
	// StoreDir is the directory holding the log inside a graph root.
	StoreDir = ".gravl"
	// LogFilename is the command log file inside StoreDir.
	LogFilename = "commands.log"
	// LockFilename is the advisory lock file inside StoreDir.
	LockFilename = "lock"
)

// ErrNoStore is returned when the store directory has not been initialized.
var ErrNoStore = errors.New("store not initialized (run init first)")

// Store is a handle on one on-disk command log. It holds no open file
// descriptors between operations; every Append/Load/Clear opens, locks and
// closes on its own.
type Store struct {
	root string
	flk  *flock.Flock
}

// At returns a store handle rooted at dir. The store may not exist yet;
// use Init to create it.
func At(dir string) *Store {
	return &Store{
		root: dir,
		flk:  flock.New(filepath.Join(dir, StoreDir, LockFilename)),
	}
}

// LogPath returns the absolute-ish path of the command log file.
func (s *Store) LogPath() string {
	return filepath.Join(s.root, StoreDir, LogFilename)
}

// Exists reports whether the store has been initialized.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.LogPath())
	return err == nil
}

// Init creates the store directory structure and an empty command log.
// Initializing an existing store is a no-op and keeps its contents.
func (s *Store) Init() error {
	if err := os.MkdirAll(filepath.Join(s.root, StoreDir), 0o755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}
	f, err := os.OpenFile(s.LogPath(), os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("create command log: %w", err)
	}
	return f.Close()
}

// Append writes the commands to the end of the log as one locked, synced
// batch. When Append returns nil every command is durable and will be seen
// by the next Load in this exact order.
func (s *Store) Append(cmds ...graph.Command) error {
	if len(cmds) == 0 {
		return nil
	}
	// The whole batch is vetted before the file is touched; a rejected
	// command must not leave earlier frames of the same batch behind.
	for _, cmd := range cmds {
		if err := validateCommand(cmd); err != nil {
			return fmt.Errorf("refuse append: %w", err)
		}
	}
	if !s.Exists() {
		return ErrNoStore
	}
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("acquire store lock: %w", err)
	}
	defer s.flk.Unlock()

	f, err := os.OpenFile(s.LogPath(), os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open command log: %w", err)
	}
	buf := bufio.NewWriter(f)
	for _, cmd := range cmds {
		if err := WriteFrame(buf, cmd); err != nil {
			f.Close()
			return fmt.Errorf("append command: %w", err)
		}
	}
	if err := buf.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("flush command log: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sync command log: %w", err)
	}
	return f.Close()
}

// Load reads the whole log and returns the commands in exact append order.
// Any malformed frame aborts the load: the log is either fully readable or
// the error identifies the corruption.
func (s *Store) Load() ([]graph.Command, error) {
	if !s.Exists() {
		return nil, ErrNoStore
	}
	if err := s.flk.RLock(); err != nil {
		return nil, fmt.Errorf("acquire store lock: %w", err)
	}
	defer s.flk.Unlock()

	f, err := os.Open(s.LogPath())
	if err != nil {
		return nil, fmt.Errorf("open command log: %w", err)
	}
	defer f.Close()

	var cmds []graph.Command
	reader := bufio.NewReader(f)
	for {
		cmd, err := ReadFrame(reader)
		if err == io.EOF {
			return cmds, nil
		}
		if err != nil {
			return nil, fmt.Errorf("command log record %d: %w", len(cmds), err)
		}
		cmds = append(cmds, cmd)
	}
}

// Rewrite atomically replaces the log contents with the given command
// sequence. Used to compact a long mutation history into its net effect:
// the replacement is written to a temp file, synced and renamed over the
// old log so a crash leaves either the old or the new log, never a mix.
func (s *Store) Rewrite(cmds []graph.Command) error {
	if !s.Exists() {
		return ErrNoStore
	}
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("acquire store lock: %w", err)
	}
	defer s.flk.Unlock()

	tmpPath := s.LogPath() + ".rewrite"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create rewrite file: %w", err)
	}
	defer os.Remove(tmpPath)

	buf := bufio.NewWriter(f)
	for _, cmd := range cmds {
		if err := WriteFrame(buf, cmd); err != nil {
			f.Close()
			return fmt.Errorf("write rewrite file: %w", err)
		}
	}
	if err := buf.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("flush rewrite file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sync rewrite file: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, s.LogPath()); err != nil {
		return fmt.Errorf("replace command log: %w", err)
	}
	return nil
}

// Clear truncates the log, discarding every recorded command. The store
// itself stays initialized.
func (s *Store) Clear() error {
	if !s.Exists() {
		return ErrNoStore
	}
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("acquire store lock: %w", err)
	}
	defer s.flk.Unlock()
	if err := os.Truncate(s.LogPath(), 0); err != nil {
		return fmt.Errorf("truncate command log: %w", err)
	}
	return nil
}

// Destroy removes the store directory and everything in it. Cannot be
// undone.
func (s *Store) Destroy() error {
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("acquire store lock: %w", err)
	}
	defer s.flk.Unlock()
	if err := os.RemoveAll(filepath.Join(s.root, StoreDir)); err != nil {
		return fmt.Errorf("remove store directory: %w", err)
	}
	return nil
}

// IsCorrupt reports whether err is one of the log-corruption conditions, as
// opposed to an ordinary I/O failure.
func IsCorrupt(err error) bool {
	return errors.Is(err, ErrInvalidMagic) ||
		errors.Is(err, ErrChecksumMismatch) ||
		errors.Is(err, ErrIncompleteFrame) ||
		errors.Is(err, ErrUnknownOpCode) ||
		errors.Is(err, ErrBadPayload)
}
