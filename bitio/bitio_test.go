package bitio_test

import (
	"bytes"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gcbfs/bitio"
)

type field struct {
	v     uint32
	width int
}

// TestWriter_KnownLayout pins the MSB-first packing across byte boundaries.
func TestWriter_KnownLayout(t *testing.T) {
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	require.Equal(t, 1, w.WriteBit(true))
	require.Equal(t, 3, w.WriteBits(0b010, 3))
	require.Equal(t, 8, w.WriteBits(0xF0, 8))
	require.Equal(t, 2, w.WriteBits(0b11, 2))
	n, err := w.Close()
	require.NoError(t, err)
	require.EqualValues(t, 14, n)
	// 1010 1111 | 0000 11(00)
	require.Equal(t, []byte{0xAF, 0x0C}, buf.Bytes())
}

// TestRoundTrip_RandomFields writes random widths through a tiny buffer to
// force many intermediate flushes and reads them back.
func TestRoundTrip_RandomFields(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	fields := make([]field, 5000)
	for i := range fields {
		width := rng.Intn(33)
		v := rng.Uint32()
		if width < 32 {
			v &= 1<<uint(width) - 1
		}
		fields[i] = field{v: v, width: width}
	}

	var buf bytes.Buffer
	w := bitio.NewWriterSize(&buf, 16)
	var total int64
	for _, f := range fields {
		total += int64(w.WriteBits(f.v, f.width))
	}
	require.Equal(t, total, w.Bits())
	n, err := w.Close()
	require.NoError(t, err)
	require.Equal(t, total, n)
	require.Equal(t, (total+7)/8, int64(buf.Len()))

	r := bitio.NewReader(buf.Bytes())
	for i, f := range fields {
		require.Equalf(t, f.v, r.ReadBits(f.width), "field %d", i)
	}
	require.NoError(t, r.Err())
	require.Equal(t, total, r.Position())
}

func TestLongAndInt(t *testing.T) {
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	w.WriteBit(false)
	w.WriteLong(uint64(1)<<63 | 0xDEADBEEF)
	w.WriteBits(uint32(0xFFFFFFFE), 32)
	_, err := w.Close()
	require.NoError(t, err)

	r := bitio.NewReader(buf.Bytes())
	require.False(t, r.ReadBit())
	require.Equal(t, int64(-1<<63|0xDEADBEEF), r.ReadLong())
	require.Equal(t, int32(-2), r.ReadInt())
}

func TestReader_PastEndIsSticky(t *testing.T) {
	r := bitio.NewReader([]byte{0x80})
	require.True(t, r.ReadBit())
	require.Zero(t, r.ReadBits(7))
	require.NoError(t, r.Err())
	require.False(t, r.ReadBit())
	require.ErrorIs(t, r.Err(), bitio.ErrUnexpectedEOF)
	require.Zero(t, r.ReadBits(3))

	r.SetPosition(0)
	require.NoError(t, r.Err())
	require.True(t, r.ReadBit())
}

func TestReader_ForkIsIndependent(t *testing.T) {
	r := bitio.NewReader([]byte{0b1010_0000})
	r.SetPosition(1)
	f := r.Fork()
	require.False(t, f.ReadBit())
	require.True(t, f.ReadBit())
	require.EqualValues(t, 1, r.Position())
}

func TestWriter_InvalidWidth(t *testing.T) {
	w := bitio.NewWriter(nil)
	require.Zero(t, w.WriteBits(1, 33))
	require.ErrorIs(t, w.Err(), bitio.ErrWidth)
	require.Zero(t, w.WriteBits(1, 1))
}

type failingSink struct{}

func (failingSink) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriter_SinkErrorIsSticky(t *testing.T) {
	w := bitio.NewWriterSize(failingSink{}, 16)
	for i := 0; i < 200; i++ {
		w.WriteBits(0xFF, 8)
	}
	require.Error(t, w.Err())
	_, err := w.Close()
	require.ErrorContains(t, err, "disk full")
}

func TestOpen_MemoryMapped(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blob.bin")
	require.NoError(t, os.WriteFile(path, []byte{0x0F, 0xF0}, 0o644))

	r, err := bitio.Open(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, r.Close()) }()
	require.EqualValues(t, 16, r.Len())
	r.SetPosition(4)
	require.Equal(t, uint32(0xFF), r.ReadBits(8))

	empty := filepath.Join(dir, "empty.bin")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	e, err := bitio.Open(empty)
	require.NoError(t, err)
	require.Zero(t, e.Len())
	require.NoError(t, e.Close())

	_, err = bitio.Open(filepath.Join(dir, "missing.bin"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
