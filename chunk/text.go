package chunk

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// WriteText writes the chunk in the intermediate row format: a traverse
// line ("0" when no row has children, otherwise "1" followed by level
// counts), then one "outdegree kind gap kind gap ..." line per row.
func (c *Chunk) WriteText(w io.Writer) error {
	if c.count == 0 {
		return nil
	}
	buf := make([]byte, 0, 256)
	if !c.children {
		buf = append(buf, '0')
	} else {
		buf = append(buf, '1')
		for _, t := range c.traverse {
			buf = append(buf, ' ')
			buf = strconv.AppendInt(buf, int64(t), 10)
		}
	}
	buf = append(buf, '\n')
	if _, err := w.Write(buf); err != nil {
		return err
	}

	for i := range c.rows {
		r := &c.rows[i]
		buf = strconv.AppendInt(buf[:0], int64(len(r.cells)), 10)
		for _, cl := range r.cells {
			buf = append(buf, ' ', byte(cl.kind), ' ')
			buf = strconv.AppendInt(buf, int64(cl.gap), 10)
		}
		buf = append(buf, '\n')
		for n := 0; n <= r.repeat; n++ {
			if _, err := w.Write(buf); err != nil {
				return err
			}
		}
	}
	return nil
}

// ReadText resets the chunk and fills it with the next chunk of the
// intermediate format. It returns the number of rows read, which is
// below level only for the last chunk, and io.EOF when the input is
// exhausted before a traverse line.
func (c *Chunk) ReadText(br *bufio.Reader) (int, error) {
	c.Reset(0)
	line, err := readLine(br)
	if err != nil {
		return 0, err
	}
	if err := c.parseTraverse(line); err != nil {
		return 0, err
	}

	var prev []byte
	for c.count < c.level {
		line, err := readLine(br)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return c.count, err
		}
		if prev != nil && bytes.Equal(line, prev) {
			c.rows[len(c.rows)-1].repeat++
			c.count++
			continue
		}
		if err := c.parseRow(line); err != nil {
			return c.count, fmt.Errorf("row %d: %w", c.count, err)
		}
		prev = append(prev[:0], line...)
		c.count++
	}
	c.planned = false
	return c.count, nil
}

// readLine returns the next line without its terminator. The returned
// slice is valid until the next read.
func readLine(br *bufio.Reader) ([]byte, error) {
	line, err := br.ReadSlice('\n')
	if errors.Is(err, bufio.ErrBufferFull) {
		// long rows: fall back to an allocating read
		rest, err2 := br.ReadBytes('\n')
		line = append(append([]byte(nil), line...), rest...)
		err = err2
	}
	if len(line) == 0 && err != nil {
		return nil, err
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return bytes.TrimRight(line, "\r\n"), nil
}

func (c *Chunk) parseTraverse(line []byte) error {
	fields := bytes.Fields(line)
	if len(fields) == 0 {
		return fmt.Errorf("%w: empty traverse line", ErrFormat)
	}
	switch string(fields[0]) {
	case "0":
		return nil
	case "1":
	default:
		return fmt.Errorf("%w: traverse flag %q", ErrFormat, fields[0])
	}
	if len(fields)-1 > c.level {
		return fmt.Errorf("%w: %d traverse entries for level %d", ErrFormat, len(fields)-1, c.level)
	}
	for i, f := range fields[1:] {
		t, err := strconv.Atoi(string(f))
		if err != nil || t < 0 {
			return fmt.Errorf("%w: traverse entry %q", ErrFormat, f)
		}
		c.traverse[i] = t
		if t > 0 {
			c.children = true
		}
	}
	return nil
}

func (c *Chunk) parseRow(line []byte) error {
	fields := bytes.Fields(line)
	if len(fields) == 0 {
		return fmt.Errorf("%w: empty row", ErrFormat)
	}
	deg, err := strconv.Atoi(string(fields[0]))
	if err != nil || deg < 0 {
		return fmt.Errorf("%w: degree %q", ErrFormat, fields[0])
	}
	if len(fields) != 1+2*deg {
		return fmt.Errorf("%w: degree %d with %d fields", ErrFormat, deg, len(fields)-1)
	}
	r := c.nextRow()
	for p := 0; p < deg; p++ {
		k := fields[1+2*p]
		if len(k) != 1 {
			c.rows = c.rows[:len(c.rows)-1]
			return fmt.Errorf("%w: kind %q", ErrFormat, k)
		}
		kind, err := ParseKind(k[0])
		if err != nil {
			c.rows = c.rows[:len(c.rows)-1]
			return err
		}
		gap, err := strconv.Atoi(string(fields[2+2*p]))
		if err != nil || gap < 0 {
			c.rows = c.rows[:len(c.rows)-1]
			return fmt.Errorf("%w: gap %q", ErrFormat, fields[2+2*p])
		}
		r.cells = append(r.cells, cell{kind: kind, gap: gap})
	}
	return nil
}
