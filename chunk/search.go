package chunk

// Optimize looks for blocks and columns of identical cells. Block
// passes run from the largest area threshold down, then column passes
// from the chunk level down, so large structures claim cells first.
func (c *Chunk) Optimize() {
	for area := maxArea; area >= minArea; area -= areaStep {
		c.blockPass(area)
	}
	for height := c.level; height >= minColumn; height -= areaStep {
		c.columnPass(height)
	}
	c.planned = false
}

func (c *Chunk) blockPass(area int) {
	for i := 0; i < len(c.rows)-1; i++ {
		cells := c.rows[i].cells
		for p := 0; p < len(cells); p++ {
			if cells[p].state != free {
				continue
			}
			p += c.blockAt(i, p, area)
		}
	}
}

// commons counts the cells from column p on that rows a and b share and
// that no block has claimed yet.
func commons(a, b []cell, p int) int {
	n := min(len(a), len(b))
	k := 0
	for q := p; q < n; q++ {
		if a[q].state != free || b[q].state != free || !a[q].same(b[q]) {
			break
		}
		k++
	}
	return k
}

// blockAt tries to grow a block of at least area cells whose top-left
// cell is (line, p). It returns how many further cells of the row the
// pass may skip.
func (c *Chunk) blockAt(line, p, area int) int {
	head := c.rows[line].cells
	left := len(c.rows) - line
	if left*len(head) < area {
		return len(head)
	}
	width := commons(head, c.rows[line+1].cells, p)
	if width < 2 {
		if c.fast {
			return 1
		}
		return width
	}
	if left*width < area {
		return width
	}
	width = min(width, maxBlockWidth)

	height := 2
	for i := line + 2; i < len(c.rows); i++ {
		w := commons(head, c.rows[i].cells, p)
		if w < width {
			if w < 2 || width*height >= area {
				break
			}
			width = w
		}
		height++
		if height == MaxBlockRows {
			break
		}
	}
	if height*width < area {
		if c.fast {
			return width
		}
		return 0
	}
	c.claim(line, p, height, width)
	return width
}

func (c *Chunk) columnPass(height int) {
	if height > len(c.rows) || height <= 0 {
		return
	}
	for i := 0; i <= len(c.rows)-height; i++ {
		cells := c.rows[i].cells
		for p := range cells {
			if cells[p].state != free {
				continue
			}
			c.columnAt(i, p, height)
		}
	}
}

// columnAt claims the vertical run of identical cells starting at
// (line, p) if it spans at least height rows.
func (c *Chunk) columnAt(line, p, height int) {
	if line >= len(c.rows)-1 {
		return
	}
	head := c.rows[line].cells[p]
	rows := 1
	for i := line + 1; i < len(c.rows); i++ {
		cells := c.rows[i].cells
		if len(cells) <= p || cells[p].state != free || !head.same(cells[p]) {
			break
		}
		rows++
		if rows == MaxBlockRows {
			break
		}
	}
	if rows < height {
		return
	}
	c.claim(line, p, rows, 1)
}

// claim marks a height x width block with its head at (line, p).
func (c *Chunk) claim(line, p, height, width int) {
	head := c.rows[line].cells
	head[p].state = blockHead
	head[p].height = height
	head[p].width = width
	for q := p + 1; q < p+width; q++ {
		head[q].state = reserved
	}
	for i := line + 1; i < line+height; i++ {
		cells := c.rows[i].cells
		for q := p; q < p+width; q++ {
			cells[q].state = covered
		}
	}
}
