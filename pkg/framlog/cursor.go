package framlog

// Cursor tracks the next write offset inside a circular window.
type Cursor struct {
	window int
	off    int
}

// NewCursor creates a Cursor for a window of the given size.
func NewCursor(window int) *Cursor {
	return &Cursor{window: window}
}

// Offset returns the current offset, always in [0, window).
func (c *Cursor) Offset() int {
	return c.off
}

// Window returns the window size.
func (c *Cursor) Window() int {
	return c.window
}

// Advance moves the offset forward by n and returns the new offset.
// The offset is reduced modulo the window size, so it wraps to the
// origin when a move lands on or beyond the window end.
func (c *Cursor) Advance(n int) int {
	c.off = (c.off + n) % c.window
	return c.off
}

// Reset moves the offset back to the window origin.
func (c *Cursor) Reset() {
	c.off = 0
}
