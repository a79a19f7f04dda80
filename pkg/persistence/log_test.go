package persistence

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kovacq/gravl/pkg/graph"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := At(t.TempDir())
	require.NoError(t, s.Init())
	return s
}

func TestStoreRoundTrip(t *testing.T) {
	s := newTestStore(t)

	cmds := []graph.Command{
		graph.AddVertex(1),
		graph.AddVertex(2),
		graph.AddEdge(1, 2, 5),
		graph.RemoveEdge(1, 2),
		graph.RemoveVertex(2),
	}
	require.NoError(t, s.Append(cmds...))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, cmds, got)
}

func TestStoreAppendAccumulates(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Append(graph.AddVertex(1)))
	require.NoError(t, s.Append(graph.AddVertex(2), graph.AddEdge(1, 2, 1)))

	got, err := s.Load()
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, graph.AddVertex(1), got[0])
	assert.Equal(t, graph.AddEdge(1, 2, 1), got[2])
}

func TestStoreLoadEmpty(t *testing.T) {
	s := newTestStore(t)

	got, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStoreUninitialized(t *testing.T) {
	s := At(t.TempDir())

	assert.False(t, s.Exists())
	assert.ErrorIs(t, s.Append(graph.AddVertex(1)), ErrNoStore)
	_, err := s.Load()
	assert.ErrorIs(t, err, ErrNoStore)
	assert.ErrorIs(t, s.Clear(), ErrNoStore)
}

func TestStoreInitIdempotent(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Append(graph.AddVertex(7)))
	require.NoError(t, s.Init())

	got, err := s.Load()
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestStoreClear(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Append(graph.AddVertex(1), graph.AddVertex(2)))
	require.NoError(t, s.Clear())

	got, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.True(t, s.Exists())
}

func TestStoreDestroy(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Append(graph.AddVertex(1)))

	require.NoError(t, s.Destroy())
	assert.False(t, s.Exists())
}

func TestStoreRewrite(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Append(
		graph.AddVertex(1),
		graph.AddVertex(2),
		graph.AddEdge(1, 2, 3),
		graph.RemoveVertex(2),
	))

	compact := []graph.Command{graph.AddVertex(1)}
	require.NoError(t, s.Rewrite(compact))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, compact, got)
}

func TestStoreTruncatedLog(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Append(graph.AddVertex(1), graph.AddEdge(1, 1, 2)))

	// Chop off the tail of the last frame, simulating a crash mid-write.
	info, err := os.Stat(s.LogPath())
	require.NoError(t, err)
	require.NoError(t, os.Truncate(s.LogPath(), info.Size()-5))

	_, err = s.Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIncompleteFrame)
	assert.True(t, IsCorrupt(err))
}

func TestStoreCorruptPayload(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Append(graph.AddEdge(1, 2, 9)))

	data, err := os.ReadFile(s.LogPath())
	require.NoError(t, err)
	data[len(data)-1] ^= 0xFF
	require.NoError(t, os.WriteFile(s.LogPath(), data, 0o644))

	_, err = s.Load()
	assert.ErrorIs(t, err, ErrChecksumMismatch)
	assert.True(t, IsCorrupt(err))
}

func TestStoreForeignFile(t *testing.T) {
	dir := t.TempDir()
	s := At(dir)
	require.NoError(t, s.Init())
	// Longer than one frame header, so the magic byte check is what fires.
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, StoreDir, LogFilename), []byte("definitely not a command log"), 0o644))

	_, err := s.Load()
	assert.ErrorIs(t, err, ErrInvalidMagic)
	assert.True(t, IsCorrupt(err))
}

func TestStoreAppendRejectsBadCommand(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Append(graph.AddVertex(1)))

	err := s.Append(graph.AddVertex(2), graph.Command{Kind: graph.KindAddVertex, ID: 0})
	require.ErrorIs(t, err, ErrInvalidCommand)

	// The refused batch left no bytes behind; the log is still loadable.
	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, []graph.Command{graph.AddVertex(1)}, got)
}

func TestFrameUnknownOpCode(t *testing.T) {
	var buf bytes.Buffer
	err := WriteFrame(&buf, graph.Command{Kind: graph.CommandKind(0xEE), ID: 1})
	assert.ErrorIs(t, err, ErrUnknownOpCode)
}

func TestFrameRejectsZeroVertex(t *testing.T) {
	var buf bytes.Buffer
	err := WriteFrame(&buf, graph.Command{Kind: graph.KindAddVertex, ID: 0})
	assert.ErrorIs(t, err, ErrInvalidCommand)
	assert.Zero(t, buf.Len())

	err = WriteFrame(&buf, graph.Command{Kind: graph.KindAddEdge, From: 1, To: 2, Weight: 0})
	assert.ErrorIs(t, err, ErrInvalidCommand)
}

func TestReadFrameRejectsZeroVertexPayload(t *testing.T) {
	// Built by hand: the writer refuses to produce this frame.
	payload := make([]byte, 8)
	frame := make([]byte, HeaderSize, HeaderSize+len(payload))
	frame[0] = MagicByte
	frame[1] = byte(graph.KindAddVertex)
	binary.LittleEndian.PutUint32(frame[2:6], uint32(len(payload)))
	binary.LittleEndian.PutUint32(frame[6:10], crc32.ChecksumIEEE(payload))
	frame = append(frame, payload...)

	_, err := ReadFrame(bytes.NewReader(frame))
	assert.ErrorIs(t, err, ErrBadPayload)
}
