package idmap_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gcbfs/idmap"
)

func TestWriteRead(t *testing.T) {
	ids := []int{2, -1, 0, 1}
	var buf bytes.Buffer
	require.NoError(t, idmap.Write(&buf, ids))
	require.Equal(t, "2\n-1\n0\n1\n", buf.String())

	got, err := idmap.Read(&buf, 4, 3)
	require.NoError(t, err)
	require.Equal(t, ids, got)

	inv, err := idmap.Invert(got, 3)
	require.NoError(t, err)
	require.Equal(t, []int{2, 3, 0}, inv)
}

func TestRead_Errors(t *testing.T) {
	cases := map[string]string{
		"short":     "0\n",
		"garbage":   "0\nx\n",
		"too large": "0\n5\n",
		"repeated":  "0\n0\n",
	}
	for name, text := range cases {
		text := text
		t.Run(name, func(t *testing.T) {
			_, err := idmap.Read(strings.NewReader(text), 2, 2)
			require.ErrorIs(t, err, idmap.ErrFormat)
		})
	}
}

func TestInvert_Incomplete(t *testing.T) {
	_, err := idmap.Invert([]int{0, -1}, 2)
	require.ErrorIs(t, err, idmap.ErrFormat)
}

func TestFiles(t *testing.T) {
	base := filepath.Join(t.TempDir(), "g")
	_, err := idmap.ReadFile(base, 2, 2)
	require.ErrorIs(t, err, idmap.ErrMissing)

	require.NoError(t, idmap.WriteFile(base, []int{1, 0}))
	got, err := idmap.ReadFile(base, 2, 2)
	require.NoError(t, err)
	require.Equal(t, []int{1, 0}, got)
}
