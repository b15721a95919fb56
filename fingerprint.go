package main

import "fmt"

// Fingerprint is a canonical content encoding of a full board, used as the
// key of the precomputed-response cache. Two boards with the same marks in
// the same cells always encode identically, and any cell difference changes
// the encoding, so keys never collide.
type Fingerprint string

const fingerprintLen = BoardSize * BoardSize

func (b Board) Fingerprint() Fingerprint {
	buf := make([]byte, 0, fingerprintLen)
	for _, cell := range b.cells {
		switch cell {
		case CellX:
			buf = append(buf, 'X')
		case CellO:
			buf = append(buf, 'O')
		default:
			buf = append(buf, '.')
		}
	}
	return Fingerprint(buf)
}

func ParseFingerprint(raw string) (Board, error) {
	if len(raw) != fingerprintLen {
		return Board{}, fmt.Errorf("fingerprint length %d, want %d", len(raw), fingerprintLen)
	}
	board := NewBoard()
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case 'X':
			board.cells[i] = CellX
		case 'O':
			board.cells[i] = CellO
		case '.':
		default:
			return Board{}, fmt.Errorf("fingerprint byte %q at %d", raw[i], i)
		}
	}
	return board, nil
}

func (f Fingerprint) Valid() bool {
	if len(f) != fingerprintLen {
		return false
	}
	for i := 0; i < len(f); i++ {
		if f[i] != 'X' && f[i] != 'O' && f[i] != '.' {
			return false
		}
	}
	return true
}

// Short returns an abbreviated form for log lines.
func (f Fingerprint) Short() string {
	h := uint64(1469598103934665603)
	for i := 0; i < len(f); i++ {
		h ^= uint64(f[i])
		h *= 1099511628211
	}
	return fmt.Sprintf("%016x", h)
}
