package chunk_test

import (
	"bufio"
	"bytes"
	"io"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/gcbfs/bitio"
	"github.com/katalvlaran/gcbfs/chunk"
	"github.com/katalvlaran/gcbfs/picode"
)

// input is one row fed to a chunk.
type input struct {
	children int
	succ     []int
}

// encode fills a chunk with rows starting at id first, optimizes it and
// encodes it, checking that the plan matches the written size.
func encode(t *testing.T, level, first int, rows []input, opts ...chunk.Option) (*chunk.Chunk, []byte) {
	t.Helper()
	c, err := chunk.New(level, opts...)
	require.NoError(t, err)
	c.Reset(first)
	for i, r := range rows {
		require.NoError(t, c.AddRow(r.children, r.succ), "row %d", i)
	}
	c.Optimize()

	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	planned := c.Plan()
	written, err := c.Encode(picode.NewEncoder(w))
	require.NoError(t, err)
	require.Equal(t, planned, written, "planned and written sizes differ")
	require.Equal(t, written, w.Bits())
	_, err = w.Close()
	require.NoError(t, err)
	return c, buf.Bytes()
}

// decoded is a copy of a replayed row.
type decoded struct {
	id, start, children int
	values              []int
}

func decode(t *testing.T, data []byte, level, first, n int) []decoded {
	t.Helper()
	d, err := chunk.NewDecoder(bitio.NewReader(data), level)
	require.NoError(t, err)
	var out []decoded
	_, err = d.Decode(first, first+n, first, func(r *chunk.Row) bool {
		out = append(out, decoded{r.ID, r.ChildStart, r.Children, append([]int(nil), r.Values...)})
		return true
	})
	require.NoError(t, err)
	return out
}

func requireRoundTrip(t *testing.T, level, first int, rows []input, opts ...chunk.Option) *chunk.Chunk {
	t.Helper()
	c, data := encode(t, level, first, rows, opts...)
	got := decode(t, data, level, first, len(rows))
	require.Len(t, got, len(rows))
	for i, r := range rows {
		require.Equal(t, first+i, got[i].id)
		require.Equal(t, r.children, got[i].children, "row %d children", i)
		want := r.succ
		if want == nil {
			want = []int{}
		}
		require.Equal(t, want, append([]int{}, got[i].values...), "row %d values", i)
	}
	return c
}

// randomRows builds rows mixing random successor sets with shifted
// copies of earlier rows, which exercises merging, runs and blocks.
func randomRows(rng *rand.Rand, first, n, span int) []input {
	rows := make([]input, n)
	for i := range rows {
		switch rng.Intn(5) {
		case 0:
			// contiguous run of ids
			start, l := rng.Intn(span), 1+rng.Intn(20)
			for v := start; v < start+l; v++ {
				rows[i].succ = append(rows[i].succ, v)
			}
		case 1:
			if i > 0 {
				shift := rng.Intn(3)
				for _, v := range rows[i-1].succ {
					rows[i].succ = append(rows[i].succ, v+shift)
				}
				break
			}
			fallthrough
		default:
			seen := map[int]bool{}
			for k := rng.Intn(12); k > 0; k-- {
				seen[rng.Intn(span)] = true
			}
			for v := range seen {
				rows[i].succ = append(rows[i].succ, v)
			}
			sort.Ints(rows[i].succ)
		}
		if rng.Intn(3) == 0 {
			rows[i].children = rng.Intn(4)
		}
	}
	return rows
}

type ChunkSuite struct {
	suite.Suite
}

func TestChunkSuite(t *testing.T) {
	suite.Run(t, new(ChunkSuite))
}

func (s *ChunkSuite) TestNewRejectsLevel() {
	_, err := chunk.New(0)
	s.Require().ErrorIs(err, chunk.ErrLevel)
	_, err = chunk.NewDecoder(bitio.NewReader(nil), -1)
	s.Require().ErrorIs(err, chunk.ErrLevel)
}

func (s *ChunkSuite) TestAddRowErrors() {
	c, err := chunk.New(2)
	s.Require().NoError(err)
	c.Reset(0)
	s.Require().ErrorIs(c.AddRow(-1, nil), chunk.ErrNegative)
	s.Require().ErrorIs(c.AddRow(0, []int{3, 3}), chunk.ErrUnsorted)
	s.Require().ErrorIs(c.AddRow(0, []int{4, 2}), chunk.ErrUnsorted)
	s.Require().ErrorIs(c.AddRow(0, []int{-1}), chunk.ErrUnsorted)
	s.Require().NoError(c.AddRow(0, nil))
	s.Require().NoError(c.AddRow(0, []int{1}))
	s.Require().True(c.Full())
	s.Require().ErrorIs(c.AddRow(0, nil), chunk.ErrFull)
}

func (s *ChunkSuite) TestEmptyChunkWritesNothing() {
	c, data := encode(s.T(), 4, 0, nil)
	s.Require().Zero(c.Plan())
	s.Require().Empty(data)
}

// TestTraverseRanges checks how children ranges are rebuilt from counts.
func (s *ChunkSuite) TestTraverseRanges() {
	rows := []input{{2, nil}, {0, []int{0}}, {1, nil}, {0, nil}}
	_, data := encode(s.T(), 4, 0, rows)
	got := decode(s.T(), data, 4, 0, 4)
	s.Require().Equal(1, got[0].start)
	s.Require().Equal(2, got[0].children)
	s.Require().Equal(3, got[2].start)
	s.Require().Equal(1, got[2].children)
}

// TestBlockCollapsing is the twenty-row chunk where rows 5..14 share the
// cell (x,4) in column 1: it serializes with a single block descriptor.
func (s *ChunkSuite) TestBlockCollapsing() {
	var rows []input
	for _, v := range []int{30, 33, 41, 42, 50} {
		rows = append(rows, input{succ: []int{v}})
	}
	for r := 5; r < 15; r++ {
		a := 50 + 10*r + (r%2)*3
		rows = append(rows, input{succ: []int{a, a + 5}})
	}
	for _, v := range []int{300, 304, 311, 313, 320} {
		rows = append(rows, input{succ: []int{v}})
	}
	c := requireRoundTrip(s.T(), 20, 0, rows)
	st := c.Stats()
	s.Require().EqualValues(1, st.Columns+st.Blocks)
	s.Require().EqualValues(1, st.Columns)
	s.Require().EqualValues(20, st.Rows)
	s.Require().EqualValues(20+1, st.Cells, "nine covered cells are not written")
}

// TestWideBlock builds rows that are shifted copies of each other. The
// first and last columns alternate so rows do not merge, the middle three
// form a 12x3 block.
func (s *ChunkSuite) TestWideBlock() {
	var rows []input
	for r := 0; r < 12; r++ {
		base := 1000 + 7*r + (r%2)*2
		rows = append(rows, input{succ: []int{base, base + 3, base + 9, base + 10, base + 20}})
	}
	c := requireRoundTrip(s.T(), 16, 0, rows)
	st := c.Stats()
	s.Require().EqualValues(1, st.Blocks)
	s.Require().Zero(st.Columns)
	s.Require().EqualValues(12, st.Lines)
	// 12 heads plus 12 trailing cells plus the 3 block columns of row 0
	s.Require().EqualValues(12+12+3, st.Cells)
}

func (s *ChunkSuite) TestRunCollapsing() {
	succ := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	c := requireRoundTrip(s.T(), 4, 0, []input{{0, succ}})
	s.Require().EqualValues(1, c.Stats().Runs)

	// too short for a zero gap run, long enough for a gap of 1
	c = requireRoundTrip(s.T(), 4, 0, []input{{0, []int{0, 1, 2, 3, 4}}})
	s.Require().Zero(c.Stats().Runs)
	c = requireRoundTrip(s.T(), 4, 0, []input{{0, []int{0, 2, 4, 6, 8}}})
	s.Require().EqualValues(1, c.Stats().Runs)
}

func (s *ChunkSuite) TestMergedRowsRoundTrip() {
	rows := []input{{1, nil}, {0, nil}, {0, nil}, {0, []int{5, 6}}, {0, []int{5, 6}}}
	c := requireRoundTrip(s.T(), 8, 3, rows)
	s.Require().EqualValues(5, c.Stats().Rows)
	s.Require().Less(c.Stats().Lines, c.Stats().Rows)
}

func (s *ChunkSuite) TestRandomRoundTrip() {
	rng := rand.New(rand.NewSource(7))
	for iter := 0; iter < 40; iter++ {
		level := 1 + rng.Intn(60)
		n := 1 + rng.Intn(level)
		first := rng.Intn(500)
		rows := randomRows(rng, first, n, 600)
		requireRoundTrip(s.T(), level, first, rows)
		requireRoundTrip(s.T(), level, first, rows, chunk.WithFast())
	}
}

// TestStopEarly returns only the rows up to the requested one.
func (s *ChunkSuite) TestStopEarly() {
	rows := randomRows(rand.New(rand.NewSource(3)), 0, 30, 100)
	_, data := encode(s.T(), 30, 0, rows)
	d, err := chunk.NewDecoder(bitio.NewReader(data), 30)
	s.Require().NoError(err)
	seen := 0
	_, err = d.Decode(0, 30, 0, func(r *chunk.Row) bool {
		seen++
		return r.ID < 9
	})
	s.Require().NoError(err)
	s.Require().Equal(10, seen)
}

// TestReplayAfterSetPosition stops a replay midway, rewinds the decoder
// and checks that the second replay sees every row.
func (s *ChunkSuite) TestReplayAfterSetPosition() {
	rows := randomRows(rand.New(rand.NewSource(8)), 0, 25, 100)
	_, data := encode(s.T(), 25, 0, rows)
	want := decode(s.T(), data, 25, 0, 25)

	d, err := chunk.NewDecoder(bitio.NewReader(data), 25)
	s.Require().NoError(err)
	_, err = d.Decode(0, 25, 0, func(r *chunk.Row) bool { return r.ID < 4 })
	s.Require().NoError(err)

	d.SetPosition(0)
	var got []decoded
	_, err = d.Decode(0, 25, 0, func(r *chunk.Row) bool {
		got = append(got, decoded{r.ID, r.ChildStart, r.Children, append([]int(nil), r.Values...)})
		return true
	})
	s.Require().NoError(err)
	s.Require().Equal(want, got)
}

func (s *ChunkSuite) TestTruncatedStream() {
	rows := randomRows(rand.New(rand.NewSource(5)), 0, 20, 100)
	_, data := encode(s.T(), 20, 0, rows)
	d, err := chunk.NewDecoder(bitio.NewReader(data[:len(data)/2]), 20)
	s.Require().NoError(err)
	_, err = d.Decode(0, 20, 0, func(*chunk.Row) bool { return true })
	s.Require().ErrorIs(err, chunk.ErrFormat)
}

// TestTextRoundTrip checks that the intermediate format reproduces the
// same chunk: same text and same planned size.
func (s *ChunkSuite) TestTextRoundTrip() {
	rng := rand.New(rand.NewSource(11))
	for iter := 0; iter < 10; iter++ {
		level := 5 + rng.Intn(30)
		rows := randomRows(rng, 0, level, 300)
		c, err := chunk.New(level)
		s.Require().NoError(err)
		c.Reset(0)
		for _, r := range rows {
			s.Require().NoError(c.AddRow(r.children, r.succ))
		}
		var text bytes.Buffer
		s.Require().NoError(c.WriteText(&text))

		p, err := chunk.New(level)
		s.Require().NoError(err)
		n, err := p.ReadText(bufio.NewReader(bytes.NewReader(text.Bytes())))
		s.Require().NoError(err)
		s.Require().Equal(level, n)

		var again bytes.Buffer
		s.Require().NoError(p.WriteText(&again))
		s.Require().Equal(text.String(), again.String())

		c.Optimize()
		p.Optimize()
		s.Require().Equal(c.Plan(), p.Plan())
	}
}

func (s *ChunkSuite) TestReadTextEOFAndErrors() {
	c, err := chunk.New(3)
	s.Require().NoError(err)

	_, err = c.ReadText(bufio.NewReader(bytes.NewReader(nil)))
	s.Require().ErrorIs(err, io.EOF)

	n, err := c.ReadText(bufio.NewReader(bytes.NewBufferString("1 2 0 1\n1 x 4\n0\n")))
	s.Require().NoError(err)
	s.Require().Equal(2, n)

	for _, bad := range []string{"2\n", "1 0 0 0 0\n", "0\n1 q 3\n", "0\n2 x 1\n", "0\n1 x -1\n"} {
		_, err = c.ReadText(bufio.NewReader(bytes.NewBufferString(bad)))
		s.Require().ErrorIs(err, chunk.ErrFormat, "input %q", bad)
	}
}
