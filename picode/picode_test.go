package picode_test

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gcbfs/bitio"
	"github.com/katalvlaran/gcbfs/picode"
)

// bitString renders the first n bits of data as '0'/'1'.
func bitString(data []byte, n int64) string {
	var sb strings.Builder
	r := bitio.NewReader(data)
	for i := int64(0); i < n; i++ {
		if r.ReadBit() {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

func encodeString(t *testing.T, fn func(e *picode.Encoder) int) string {
	t.Helper()
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	e := picode.NewEncoder(w)
	n := fn(e)
	require.NoError(t, e.Err())
	total, err := w.Close()
	require.NoError(t, err)
	require.EqualValues(t, n, total)
	return bitString(buf.Bytes(), total)
}

// TestKnownCodes pins the exact bit patterns of small codes.
func TestKnownCodes(t *testing.T) {
	cases := []struct {
		n, k int
		zero bool
		want string
	}{
		{n: 1, k: 0, want: "1"},
		{n: 2, k: 0, want: "010"},
		{n: 3, k: 0, want: "011"},
		{n: 4, k: 0, want: "00100"},
		{n: 1, k: 1, want: "11"},  // s=1 odd → parity 1, sFinal=1
		{n: 2, k: 1, want: "100"}, // s=2 even → parity 0, sFinal=1
		{n: 5, k: 1, want: "011" + "01"},
		{n: 0, k: 2, zero: true, want: "1"},
		{n: 2, k: 0, zero: true, want: "0010"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(fmt.Sprintf("n=%d/k=%d/zero=%v", tc.n, tc.k, tc.zero), func(t *testing.T) {
			got := encodeString(t, func(e *picode.Encoder) int {
				if tc.zero {
					return e.Encode0(tc.n, tc.k)
				}
				return e.Encode(tc.n, tc.k)
			})
			require.Equal(t, tc.want, got)
			if tc.zero {
				require.Equal(t, len(tc.want), picode.Len0(tc.n, tc.k))
			} else {
				require.Equal(t, len(tc.want), picode.Len(tc.n, tc.k))
			}
		})
	}
}

// TestRoundTrip covers the boundary values for every parameter.
func TestRoundTrip(t *testing.T) {
	values := []int{0, 1, 2, 3, 1 << 16, math.MaxInt32}
	for k := 0; k <= picode.MaxK; k++ {
		var buf bytes.Buffer
		w := bitio.NewWriter(&buf)
		e := picode.NewEncoder(w, picode.WithCacheLimit(1024))
		for _, v := range values {
			n := e.Encode0(v, k)
			require.Equalf(t, picode.Len0(v, k), n, "Len0(%d,%d)", v, k)
			require.Equal(t, n, e.Len0(v, k))
		}
		for v := 1; v < 3000; v += 7 {
			require.Equal(t, picode.Len(v, k), e.Encode(v, k))
		}
		require.NoError(t, e.Err())
		_, err := w.Close()
		require.NoError(t, err)

		d := picode.NewDecoder(bitio.NewReader(buf.Bytes()))
		for _, v := range values {
			require.Equalf(t, v, d.Decode0(k), "k=%d", k)
		}
		for v := 1; v < 3000; v += 7 {
			require.Equal(t, v, d.Decode(k))
		}
		require.NoError(t, d.Err())
	}
}

func TestEncoder_InvalidArguments(t *testing.T) {
	e := picode.NewEncoder(bitio.NewWriter(nil))
	require.Zero(t, e.Encode(0, 0))
	require.ErrorIs(t, e.Err(), picode.ErrInvalidValue)

	e = picode.NewEncoder(bitio.NewWriter(nil))
	require.Zero(t, e.Encode0(-1, 0))
	require.ErrorIs(t, e.Err(), picode.ErrInvalidValue)

	e = picode.NewEncoder(bitio.NewWriter(nil))
	require.Zero(t, e.Encode(5, picode.MaxK+1))
	require.ErrorIs(t, e.Err(), picode.ErrInvalidParam)

	require.Equal(t, -1, picode.Len(0, 0))
	require.Equal(t, -1, picode.Len0(3, -1))
}

func TestDecoder_CorruptStream(t *testing.T) {
	// 40 zero bits: a unary prefix no valid code can have.
	d := picode.NewDecoder(bitio.NewReader(make([]byte, 5)))
	require.Zero(t, d.Decode(0))
	require.ErrorIs(t, d.Err(), picode.ErrCorrupt)

	// truncated stream
	d = picode.NewDecoder(bitio.NewReader([]byte{0x00}))
	require.Zero(t, d.Decode(0))
	require.ErrorIs(t, d.Err(), bitio.ErrUnexpectedEOF)
}
