package virtual

import (
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/font"

	"github.com/rook-computer/panels/internal/device"
	"github.com/rook-computer/panels/internal/render"
)

// Terminal prints text onto a device as a grid of fixed-size character
// cells. Text wraps at the right edge and the grid scrolls up once the
// cursor passes the bottom row. Output is only displayed on Flush unless
// Animate is set.
type Terminal struct {
	dev  device.Device
	face font.Face

	Color      color.Color
	Background color.Color
	// Animate flushes after every character.
	Animate bool
	TabStop int
	// WordWrap makes Println break lines between words where it can.
	WordWrap bool

	cellW, cellH int
	cols, rows   int
	grid         [][]rune
	x, y         int
}

// NewTerminal sizes the grid from the width of "M" and the line height of
// face. A nil face uses render.DefaultFace.
func NewTerminal(dev device.Device, face font.Face) *Terminal {
	if face == nil {
		face = render.DefaultFace()
	}
	t := &Terminal{
		dev:        dev,
		face:       face,
		Color:      render.White,
		Background: render.Black,
		TabStop:    4,
	}
	t.cellW = max(1, font.MeasureString(face, "M").Ceil())
	t.cellH = max(1, render.TextBBox("M", face).Dy())
	if h := face.Metrics().Height.Ceil(); h > 0 {
		t.cellH = h
	}
	t.cols = max(1, dev.Width()/t.cellW)
	t.rows = max(1, dev.Height()/t.cellH)
	t.grid = make([][]rune, t.rows)
	for i := range t.grid {
		t.grid[i] = blankRow(t.cols)
	}
	return t
}

func blankRow(n int) []rune {
	row := make([]rune, n)
	for i := range row {
		row[i] = ' '
	}
	return row
}

// Cols and Rows are the grid size in characters.
func (t *Terminal) Cols() int { return t.cols }
func (t *Terminal) Rows() int { return t.rows }

// Cursor returns the column and row the next character goes to.
func (t *Terminal) Cursor() (col, row int) { return t.x, t.y }

// Lines returns the grid contents with trailing spaces trimmed.
func (t *Terminal) Lines() []string {
	out := make([]string, t.rows)
	for i, row := range t.grid {
		out[i] = strings.TrimRight(string(row), " ")
	}
	return out
}

// Clear blanks the grid, homes the cursor and flushes.
func (t *Terminal) Clear() error {
	for i := range t.grid {
		t.grid[i] = blankRow(t.cols)
	}
	t.x, t.y = 0, 0
	return t.Flush()
}

// Println prints s followed by a newline.
func (t *Terminal) Println(s string) error {
	if t.WordWrap {
		s = wrap(s, t.cols)
	}
	if err := t.Puts(s); err != nil {
		return err
	}
	return t.Putch('\n')
}

// Puts prints every character of s.
func (t *Terminal) Puts(s string) error {
	for _, r := range s {
		if err := t.Putch(r); err != nil {
			return err
		}
	}
	return nil
}

// Putch prints one character. '\n', '\r', '\b' and '\t' move the cursor.
func (t *Terminal) Putch(r rune) error {
	switch r {
	case '\n':
		t.newline()
	case '\r':
		t.x = 0
	case '\b':
		t.backspace()
	case '\t':
		stop := max(1, t.TabStop)
		next := (t.x/stop + 1) * stop
		for t.x < next && t.x < t.cols {
			t.grid[t.y][t.x] = ' '
			t.x++
		}
	default:
		if t.x >= t.cols {
			t.newline()
		}
		t.grid[t.y][t.x] = r
		t.x++
	}
	if t.Animate {
		return t.Flush()
	}
	return nil
}

func (t *Terminal) newline() {
	t.x = 0
	if t.y+1 < t.rows {
		t.y++
		return
	}
	copy(t.grid, t.grid[1:])
	t.grid[t.rows-1] = blankRow(t.cols)
}

// backspace erases the character before the cursor, moving to the end of
// the previous row when at the start of one.
func (t *Terminal) backspace() {
	switch {
	case t.x > 0:
		t.x--
	case t.y > 0:
		t.y--
		t.x = t.cols - 1
	default:
		return
	}
	t.grid[t.y][t.x] = ' '
}

// Flush draws the grid and displays it.
func (t *Terminal) Flush() error {
	return render.Draw(t.dev, func(c *render.Canvas) {
		c.Clear(t.Background)
		for i, row := range t.grid {
			line := strings.TrimRight(string(row), " ")
			if line == "" {
				continue
			}
			for j, r := range row {
				if r == ' ' {
					continue
				}
				c.Text(image.Pt(j*t.cellW, i*t.cellH), string(r), t.face, t.Color)
			}
		}
	})
}

// wrap inserts newlines between words so no line exceeds width. Words
// longer than width are left for the terminal to break.
func wrap(s string, width int) string {
	var b strings.Builder
	for i, para := range strings.Split(s, "\n") {
		if i > 0 {
			b.WriteByte('\n')
		}
		n := 0
		for j, word := range strings.Fields(para) {
			w := len([]rune(word))
			switch {
			case j == 0:
			case n+1+w > width:
				b.WriteByte('\n')
				n = 0
			default:
				b.WriteByte(' ')
				n++
			}
			b.WriteString(word)
			n += w
		}
	}
	return b.String()
}
