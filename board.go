package main

import "fmt"

const (
	// Tic-tac-go is fixed at a 12x12 grid, six in a row to win.
	BoardSize = 12
	WinLength = 6
)

type Cell int

const (
	CellEmpty Cell = iota
	CellX
	CellO
)

type Board struct {
	size  int
	cells []Cell
}

func NewBoard() Board {
	b := Board{}
	b.Reset()
	return b
}

func (b *Board) Reset() {
	b.size = BoardSize
	b.cells = make([]Cell, BoardSize*BoardSize)
}

func (b Board) At(x, y int) Cell {
	return b.cells[b.index(x, y)]
}

func (b *Board) Set(x, y int, value Cell) {
	b.cells[b.index(x, y)] = value
}

func (b *Board) Remove(x, y int) {
	b.cells[b.index(x, y)] = CellEmpty
}

func (b Board) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.size && y < b.size
}

func (b Board) IsEmpty(x, y int) bool {
	return b.InBounds(x, y) && b.At(x, y) == CellEmpty
}

func (b Board) HasAnyMark() bool {
	for _, cell := range b.cells {
		if cell != CellEmpty {
			return true
		}
	}
	return false
}

func (b Board) HasMarkOf(target Cell) bool {
	for _, cell := range b.cells {
		if cell == target {
			return true
		}
	}
	return false
}

func (b Board) IsFull() bool {
	for _, cell := range b.cells {
		if cell == CellEmpty {
			return false
		}
	}
	return true
}

func (b Board) CountMarks() int {
	count := 0
	for _, cell := range b.cells {
		if cell != CellEmpty {
			count++
		}
	}
	return count
}

func (b Board) Size() int {
	return b.size
}

func (b Board) Clone() Board {
	clone := Board{size: b.size}
	clone.cells = make([]Cell, len(b.cells))
	copy(clone.cells, b.cells)
	return clone
}

func (b Board) index(x, y int) int {
	return y*b.size + x
}

func (c Cell) String() string {
	switch c {
	case CellX:
		return "X"
	case CellO:
		return "O"
	default:
		return "Empty"
	}
}

func CellFromPlayer(player PlayerColor) Cell {
	if player == PlayerX {
		return CellX
	}
	return CellO
}

func PlayerFromCell(cell Cell) (PlayerColor, error) {
	switch cell {
	case CellX:
		return PlayerX, nil
	case CellO:
		return PlayerO, nil
	default:
		return PlayerX, fmt.Errorf("empty cell has no player")
	}
}

func otherCell(cell Cell) Cell {
	if cell == CellX {
		return CellO
	}
	return CellX
}
