package ui

// listCursor tracks a selection and scroll offset over n rows with
// vim-style movement.
type listCursor struct {
	n        int
	pos      int
	offset   int
	rows     int // rows that fit on screen
	lastGKey bool
}

func (c *listCursor) reset(n int) {
	c.n = n
	c.pos = 0
	c.offset = 0
	c.lastGKey = false
}

// clamp keeps the selection valid after n changes.
func (c *listCursor) clamp(n int) {
	c.n = n
	if c.pos >= n {
		c.pos = n - 1
	}
	if c.pos < 0 {
		c.pos = 0
	}
	c.ensureVisible()
}

func (c *listCursor) setRows(rows int) {
	if rows < 1 {
		rows = 1
	}
	c.rows = rows
	c.ensureVisible()
}

func (c *listCursor) up() {
	c.lastGKey = false
	if c.pos > 0 {
		c.pos--
		c.ensureVisible()
	}
}

func (c *listCursor) down() {
	c.lastGKey = false
	if c.pos < c.n-1 {
		c.pos++
		c.ensureVisible()
	}
}

func (c *listCursor) top() {
	c.lastGKey = false
	c.pos = 0
	c.offset = 0
}

func (c *listCursor) bottom() {
	c.lastGKey = false
	if c.n > 0 {
		c.pos = c.n - 1
		c.ensureVisible()
	}
}

func (c *listCursor) halfPageDown() {
	c.lastGKey = false
	c.pos += c.rows / 2
	if c.pos >= c.n {
		c.pos = c.n - 1
	}
	if c.pos < 0 {
		c.pos = 0
	}
	c.ensureVisible()
}

func (c *listCursor) halfPageUp() {
	c.lastGKey = false
	c.pos -= c.rows / 2
	if c.pos < 0 {
		c.pos = 0
	}
	c.ensureVisible()
}

// gKey returns true when a second g completes gg.
func (c *listCursor) gKey() bool {
	if c.lastGKey {
		c.top()
		return true
	}
	c.lastGKey = true
	return false
}

func (c *listCursor) ensureVisible() {
	rows := c.rows
	if rows < 1 {
		rows = 1
	}
	if c.pos < c.offset {
		c.offset = c.pos
	}
	if c.pos >= c.offset+rows {
		c.offset = c.pos - rows + 1
	}
	if c.offset < 0 {
		c.offset = 0
	}
}

// window returns the half-open range of rows on screen.
func (c *listCursor) window() (int, int) {
	end := c.offset + c.rows
	if end > c.n {
		end = c.n
	}
	return c.offset, end
}

func truncate(s string, max int) string {
	r := []rune(s)
	if max <= 0 {
		return ""
	}
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
