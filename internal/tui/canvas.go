package tui

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// canvas is a character grid over a rectangle of scene coordinates. Scene Y
// grows downwards, as rows do.
type canvas struct {
	cells    [][]rune
	w, h     int
	min, max mgl64.Vec2
}

func newCanvas(w, h int, min, max mgl64.Vec2) *canvas {
	cells := make([][]rune, h)
	for i := range cells {
		cells[i] = make([]rune, w)
		for j := range cells[i] {
			cells[i][j] = ' '
		}
	}
	return &canvas{cells: cells, w: w, h: h, min: min, max: max}
}

// cell maps a scene point to its column and row.
func (c *canvas) cell(p mgl64.Vec2) (int, int) {
	span := c.max.Sub(c.min)
	x := (p.X() - c.min.X()) / span.X() * float64(c.w-1)
	y := (p.Y() - c.min.Y()) / span.Y() * float64(c.h-1)
	return int(math.Round(x)), int(math.Round(y))
}

// point maps a column and row back to the scene point at the cell centre.
func (c *canvas) point(col, row int) mgl64.Vec2 {
	span := c.max.Sub(c.min)
	return mgl64.Vec2{
		c.min.X() + float64(col)/float64(c.w-1)*span.X(),
		c.min.Y() + float64(row)/float64(c.h-1)*span.Y(),
	}
}

func (c *canvas) set(x, y int, r rune) {
	if x >= 0 && x < c.w && y >= 0 && y < c.h {
		c.cells[y][x] = r
	}
}

func (c *canvas) plot(p mgl64.Vec2, r rune) {
	x, y := c.cell(p)
	c.set(x, y, r)
}

func (c *canvas) text(p mgl64.Vec2, s string) {
	x, y := c.cell(p)
	for i, r := range []rune(s) {
		c.set(x+i, y, r)
	}
}

func (c *canvas) line(a, b mgl64.Vec2, r rune) {
	x1, y1 := c.cell(a)
	x2, y2 := c.cell(b)
	dx := intAbs(x2 - x1)
	dy := intAbs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy
	for {
		c.set(x1, y1, r)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func (c *canvas) box(min, max mgl64.Vec2) {
	x1, y1 := c.cell(min)
	x2, y2 := c.cell(max)
	for x := x1; x <= x2; x++ {
		c.set(x, y1, '─')
		c.set(x, y2, '─')
	}
	for y := y1; y <= y2; y++ {
		c.set(x1, y, '│')
		c.set(x2, y, '│')
	}
	c.set(x1, y1, '┌')
	c.set(x2, y1, '┐')
	c.set(x1, y2, '└')
	c.set(x2, y2, '┘')
}

func (c *canvas) lines() []string {
	out := make([]string, len(c.cells))
	for i, row := range c.cells {
		out[i] = string(row)
	}
	return out
}

func intAbs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
