package boggle

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"unicode"

	"crosswarped.com/boggle/pkg/primitives"
)

// sentinel marks a cell outside the board.
const sentinel byte = 0

// CellID identifies an occupied cell within one Grid. Its numeric value
// carries no meaning beyond identity; use Neighbors for adjacency.
type CellID int

// Cell is an occupied board position and its lower case letter.
type Cell struct {
	ID     CellID
	Letter rune
}

// Grid is a square board of letters.
//
// The board is stored flat with a one cell border of sentinels, so a 3x3
// board occupies a 5x5 slice:
//
//	. . . . .
//	. a b c .
//	. d e f .
//	. g h i .
//	. . . . .
//
// The eight neighbors of index x are then at fixed offsets and never need a
// bounds check: x-w-3, x-w-2, x-w-1, x-1, x+1, x+w+1, x+w+2, x+w+3.
type Grid struct {
	width   int
	cells   []byte
	offsets [8]int
}

// NewGrid builds a width x width board from row-major letters. Letters may be
// upper or lower case and are stored lower case.
func NewGrid(width int, letters []string) (*Grid, error) {
	if width < 1 {
		return nil, fmt.Errorf("%w: width %d must be positive", ErrInvalidDimension, width)
	}
	if len(letters) != width*width {
		return nil, fmt.Errorf("%w: expected %d letters, saw %d", ErrLetterCountMismatch, width*width, len(letters))
	}
	for i, l := range letters {
		if len(l) != 1 || !isASCIILetter(l[0]) {
			return nil, fmt.Errorf("%w: %q at position %d", ErrInvalidLetter, l, i)
		}
	}

	padded := width + 2
	g := &Grid{
		width: width,
		cells: make([]byte, padded*padded),
		offsets: [8]int{
			-padded - 1, -padded, -padded + 1,
			-1, +1,
			padded - 1, padded, padded + 1,
		},
	}
	for row := range width {
		for col := range width {
			g.cells[(row+1)*padded+col+1] = toLower(letters[row*width+col][0])
		}
	}
	return g, nil
}

// ParseGrid reads a board from free text. Whitespace, commas and slashes are
// ignored; every other character is one cell. The width is the square root
// of the number of cells.
func ParseGrid(s string) (*Grid, error) {
	var letters []string
	for _, r := range s {
		if unicode.IsSpace(r) || r == ',' || r == '/' {
			continue
		}
		letters = append(letters, string(r))
	}
	width := int(math.Sqrt(float64(len(letters))))
	if width == 0 {
		return nil, fmt.Errorf("%w: no letters in %q", ErrInvalidDimension, s)
	}
	if width*width != len(letters) {
		return nil, fmt.Errorf("%w: %d letters do not form a square board", ErrLetterCountMismatch, len(letters))
	}
	return NewGrid(width, letters)
}

// RandomGrid fills a board with letters drawn uniformly from a-z.
func RandomGrid(width int, rng *rand.Rand) (*Grid, error) {
	if width < 1 {
		return nil, fmt.Errorf("%w: width %d must be positive", ErrInvalidDimension, width)
	}
	letters := make([]string, width*width)
	for i := range letters {
		letters[i] = string(rune('a' + rng.IntN(26)))
	}
	return NewGrid(width, letters)
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func toLower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

func (g *Grid) Width() int {
	return g.width
}

// NewCellSet returns an empty visited set that can hold any cell of g.
func (g *Grid) NewCellSet() *primitives.CellSet {
	return primitives.NewCellSet(len(g.cells))
}

// Nodes returns every occupied cell in storage order.
func (g *Grid) Nodes() []Cell {
	nodes := make([]Cell, 0, g.width*g.width)
	for i, c := range g.cells {
		if c != sentinel {
			nodes = append(nodes, Cell{ID: CellID(i), Letter: rune(c)})
		}
	}
	return nodes
}

// Letter returns the letter stored at id.
func (g *Grid) Letter(id CellID) rune {
	g.mustBeOccupied(id)
	return rune(g.cells[id])
}

// Neighbors returns the occupied cells adjacent to id, including diagonals,
// skipping any whose ID is in exclude. A nil exclude set excludes nothing.
//
// Passing an ID that was not returned by this grid is a programming error and
// panics.
func (g *Grid) Neighbors(id CellID, exclude *primitives.CellSet) []Cell {
	g.mustBeOccupied(id)

	neighbors := make([]Cell, 0, len(g.offsets))
	for _, off := range g.offsets {
		n := int(id) + off
		if g.cells[n] == sentinel || exclude.Contains(n) {
			continue
		}
		neighbors = append(neighbors, Cell{ID: CellID(n), Letter: rune(g.cells[n])})
	}
	return neighbors
}

func (g *Grid) mustBeOccupied(id CellID) {
	if id < 0 || int(id) >= len(g.cells) || g.cells[id] == sentinel {
		panic(fmt.Sprintf("boggle: cell %d is not on a %dx%d board", id, g.width, g.width))
	}
}

// Repr returns the board as upper case rows separated by newlines.
func (g *Grid) Repr() string {
	padded := g.width + 2
	lines := make([]string, g.width)
	for row := range g.width {
		start := (row+1)*padded + 1
		lines[row] = strings.ToUpper(string(g.cells[start : start+g.width]))
	}
	return strings.Join(lines, "\n")
}

// Letters returns the board as row-major upper case letters, the same shape
// NewGrid accepts.
func (g *Grid) Letters() []string {
	nodes := g.Nodes()
	letters := make([]string, len(nodes))
	for i, n := range nodes {
		letters[i] = strings.ToUpper(string(n.Letter))
	}
	return letters
}

func (g *Grid) DebugString() string {
	return fmt.Sprintf("Grid{width: %d, cells: %q}", g.width, g.cells)
}
