package viz

import "strings"

// Braille patterns encode a 2x4 dot cell per rune, unicode offset
// 0x2800.
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// OrbitCanvas renders body positions in world coordinates onto a
// braille character grid. The drawable resolution is Width*2 by
// Height*4 sub-pixels.
type OrbitCanvas struct {
	Width, Height          int
	XMin, XMax, YMin, YMax float64
	grid                   [][]rune
}

func NewOrbitCanvas(w, h int, xmin, xmax, ymin, ymax float64) *OrbitCanvas {
	c := &OrbitCanvas{
		Width: w, Height: h,
		XMin: xmin, XMax: xmax, YMin: ymin, YMax: ymax,
		grid: make([][]rune, h),
	}
	for i := range c.grid {
		c.grid[i] = make([]rune, w)
		for j := range c.grid[i] {
			c.grid[i][j] = 0x2800
		}
	}
	return c
}

func (c *OrbitCanvas) Clear() {
	for i := range c.grid {
		for j := range c.grid[i] {
			c.grid[i][j] = 0x2800
		}
	}
}

// Mark plots one world-coordinate point. Points outside the viewport
// are dropped.
func (c *OrbitCanvas) Mark(x, y float64) {
	if x < c.XMin || x >= c.XMax || y < c.YMin || y >= c.YMax {
		return
	}
	// World y grows upward, rows grow downward.
	px := int((x - c.XMin) / (c.XMax - c.XMin) * float64(c.Width*2))
	py := int((c.YMax - y) / (c.YMax - c.YMin) * float64(c.Height*4))

	col := px / 2
	row := py / 4
	if col < 0 || col >= c.Width || row < 0 || row >= c.Height {
		return
	}
	c.grid[row][col] |= pixelMap[py%4][px%2]
}

func (c *OrbitCanvas) Render() string {
	var sb strings.Builder
	for _, row := range c.grid {
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}
