package meta

import (
	"fmt"

	"github.com/katalvlaran/gcbfs/bitio"
)

// Version identifies the bitstream header layout.
type Version uint8

const (
	// V1 carries the graph properties inline.
	V1 Version = iota + 1
	// V11 keeps the graph properties in the .info file.
	V11
)

// Default is the version written unless told otherwise.
const Default = V11

func (v Version) String() string {
	switch v {
	case V1:
		return "1"
	case V11:
		return "1.1"
	}
	return fmt.Sprintf("Version(%d)", uint8(v))
}

// ParseVersion accepts "1" and "1.1".
func ParseVersion(s string) (Version, error) {
	switch s {
	case "1", "1.0":
		return V1, nil
	case "1.1":
		return V11, nil
	}
	return 0, fmt.Errorf("meta: unknown version %q", s)
}

// WriteHeader emits the version bits and, for V1, the inline properties.
// It returns the number of bits written.
func WriteHeader(w *bitio.Writer, v Version, i Info) (int, error) {
	var n int
	switch v {
	case V1:
		if err := i.Validate(); err != nil {
			return 0, err
		}
		n = w.WriteBit(true)
		n += w.WriteBits(uint32(i.Nodes), 32)
		n += w.WriteLong(uint64(i.Edges))
		n += w.WriteBits(uint32(i.Used()), 32)
		n += w.WriteBits(uint32(i.Level), 32)
		n += w.WriteBits(uint32(i.Root), 32)
	case V11:
		n = w.WriteBits(0b01, 2)
	default:
		return 0, fmt.Errorf("meta: cannot write %v", v)
	}
	return n, w.Err()
}

// ReadHeader decodes the version bits. For V1 the inline properties are
// returned; for V11 sidecar is called to load them.
func ReadHeader(r *bitio.Reader, sidecar func() (Info, error)) (Version, Info, error) {
	if r.ReadBit() {
		i := Info{Nodes: int(r.ReadInt())}
		i.Edges = r.ReadLong()
		used := int(r.ReadInt())
		i.Isolated = i.Nodes - used
		i.Level = int(r.ReadInt())
		i.Root = int(r.ReadInt())
		if err := r.Err(); err != nil {
			return 0, Info{}, fmt.Errorf("%w: header: %v", ErrFormat, err)
		}
		if used < 0 {
			return 0, Info{}, fmt.Errorf("%w: %d used nodes", ErrFormat, used)
		}
		if err := i.Validate(); err != nil {
			return 0, Info{}, err
		}
		return V1, i, nil
	}
	if !r.ReadBit() {
		if err := r.Err(); err != nil {
			return 0, Info{}, fmt.Errorf("%w: header: %v", ErrFormat, err)
		}
		return 0, Info{}, fmt.Errorf("%w: unknown version bits 00", ErrFormat)
	}
	if sidecar == nil {
		return 0, Info{}, fmt.Errorf("%w: version 1.1 needs an info file", ErrFormat)
	}
	i, err := sidecar()
	if err != nil {
		return 0, Info{}, err
	}
	return V11, i, nil
}
