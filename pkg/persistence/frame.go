package persistence

import (
	"encoding/binary"
	"errors"
	"hash/crc32"
	"io"

	"github.com/kovacq/gravl/pkg/graph"
)

// Constants for the binary log protocol.
const (
	// MagicByte marks the start of a valid frame. It lets a load detect a
	// stream that lost synchronization or a file that is not a command log.
	MagicByte = 0xA7

	// HeaderSize is the fixed size of the frame metadata:
	// 1 byte (Magic) + 1 byte (OpCode) + 4 bytes (Length) + 4 bytes (CRC32).
	HeaderSize = 10
)

var (
	// ErrInvalidMagic indicates the stream lost synchronization or the file
	// is not a command log.
	ErrInvalidMagic = errors.New("invalid magic byte")
	// ErrChecksumMismatch indicates corruption within the frame payload.
	ErrChecksumMismatch = errors.New("crc32 checksum mismatch")
	// ErrIncompleteFrame indicates the file ended mid-record, e.g. after a
	// crash during an unsynced write.
	ErrIncompleteFrame = errors.New("incomplete frame")
	// ErrUnknownOpCode indicates a frame with an opcode this build does not
	// understand.
	ErrUnknownOpCode = errors.New("unknown opcode")
	// ErrBadPayload indicates a structurally valid frame whose payload does
	// not decode into a command.
	ErrBadPayload = errors.New("malformed command payload")
	// ErrInvalidCommand indicates a producer handed over a command that a
	// later load would refuse to decode. The command is rejected before any
	// bytes reach the log.
	ErrInvalidCommand = errors.New("invalid command")
)

// validateCommand mirrors the decode-side checks on the write side: a
// command that passes here round-trips through the frame codec.
func validateCommand(cmd graph.Command) error {
	switch cmd.Kind {
	case graph.KindAddVertex, graph.KindRemoveVertex:
		if cmd.ID == 0 {
			return ErrInvalidCommand
		}
	case graph.KindAddEdge:
		if cmd.From == 0 || cmd.To == 0 || cmd.Weight <= 0 {
			return ErrInvalidCommand
		}
	case graph.KindRemoveEdge:
		if cmd.From == 0 || cmd.To == 0 {
			return ErrInvalidCommand
		}
	default:
		return ErrUnknownOpCode
	}
	return nil
}

// payloadSize returns the fixed payload length for a command kind.
func payloadSize(kind graph.CommandKind) (int, bool) {
	switch kind {
	case graph.KindAddVertex, graph.KindRemoveVertex:
		return 8, true
	case graph.KindAddEdge:
		return 24, true
	case graph.KindRemoveEdge:
		return 16, true
	}
	return 0, false
}

// encodePayload serializes the command fields as little-endian uint64s.
func encodePayload(cmd graph.Command) []byte {
	size, _ := payloadSize(cmd.Kind)
	buf := make([]byte, size)
	switch cmd.Kind {
	case graph.KindAddVertex, graph.KindRemoveVertex:
		binary.LittleEndian.PutUint64(buf[0:8], uint64(cmd.ID))
	case graph.KindAddEdge:
		binary.LittleEndian.PutUint64(buf[0:8], uint64(cmd.From))
		binary.LittleEndian.PutUint64(buf[8:16], uint64(cmd.To))
		binary.LittleEndian.PutUint64(buf[16:24], uint64(cmd.Weight))
	case graph.KindRemoveEdge:
		binary.LittleEndian.PutUint64(buf[0:8], uint64(cmd.From))
		binary.LittleEndian.PutUint64(buf[8:16], uint64(cmd.To))
	}
	return buf
}

// decodePayload rebuilds a command from an opcode and payload.
func decodePayload(kind graph.CommandKind, payload []byte) (graph.Command, error) {
	want, ok := payloadSize(kind)
	if !ok {
		return graph.Command{}, ErrUnknownOpCode
	}
	if len(payload) != want {
		return graph.Command{}, ErrBadPayload
	}
	switch kind {
	case graph.KindAddVertex, graph.KindRemoveVertex:
		id := graph.VertexID(binary.LittleEndian.Uint64(payload[0:8]))
		if id == 0 {
			return graph.Command{}, ErrBadPayload
		}
		return graph.Command{Kind: kind, ID: id}, nil
	case graph.KindAddEdge:
		from := graph.VertexID(binary.LittleEndian.Uint64(payload[0:8]))
		to := graph.VertexID(binary.LittleEndian.Uint64(payload[8:16]))
		weight := int64(binary.LittleEndian.Uint64(payload[16:24]))
		if from == 0 || to == 0 || weight <= 0 {
			return graph.Command{}, ErrBadPayload
		}
		return graph.Command{Kind: kind, From: from, To: to, Weight: weight}, nil
	default: // KindRemoveEdge
		from := graph.VertexID(binary.LittleEndian.Uint64(payload[0:8]))
		to := graph.VertexID(binary.LittleEndian.Uint64(payload[8:16]))
		if from == 0 || to == 0 {
			return graph.Command{}, ErrBadPayload
		}
		return graph.Command{Kind: kind, From: from, To: to}, nil
	}
}

// WriteFrame encodes one command into a binary frame and writes it.
// Frame format: [Magic(1)][OpCode(1)][Length(4)][CRC(4)][Payload(N)].
// Writing through a bufio.Writer keeps header and payload in one syscall.
func WriteFrame(w io.Writer, cmd graph.Command) error {
	if err := validateCommand(cmd); err != nil {
		return err
	}
	payload := encodePayload(cmd)

	header := make([]byte, HeaderSize)
	header[0] = MagicByte
	header[1] = byte(cmd.Kind)
	binary.LittleEndian.PutUint32(header[2:6], uint32(len(payload)))
	binary.LittleEndian.PutUint32(header[6:10], crc32.ChecksumIEEE(payload))

	if _, err := w.Write(header); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}

// ReadFrame reads and validates the next frame. It returns io.EOF when the
// reader is positioned exactly at the end of the last complete frame; any
// other shortfall is ErrIncompleteFrame.
func ReadFrame(r io.Reader) (graph.Command, error) {
	header := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		if err == io.EOF {
			return graph.Command{}, io.EOF
		}
		return graph.Command{}, ErrIncompleteFrame
	}
	if header[0] != MagicByte {
		return graph.Command{}, ErrInvalidMagic
	}

	length := binary.LittleEndian.Uint32(header[2:6])
	expectedCRC := binary.LittleEndian.Uint32(header[6:10])
	if length > 1<<10 {
		// No command payload is anywhere near this large; the length field
		// itself must be corrupt.
		return graph.Command{}, ErrBadPayload
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return graph.Command{}, ErrIncompleteFrame
	}
	if crc32.ChecksumIEEE(payload) != expectedCRC {
		return graph.Command{}, ErrChecksumMismatch
	}
	return decodePayload(graph.CommandKind(header[1]), payload)
}
