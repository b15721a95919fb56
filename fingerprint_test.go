package main

import "testing"

func TestFingerprintRoundTrip(t *testing.T) {
	board := NewBoard()
	board.Set(0, 0, CellX)
	board.Set(11, 11, CellO)
	board.Set(5, 7, CellX)

	key := board.Fingerprint()
	if len(key) != BoardSize*BoardSize {
		t.Fatalf("expected %d byte fingerprint, got %d", BoardSize*BoardSize, len(key))
	}
	if !key.Valid() {
		t.Fatalf("expected round-trippable fingerprint to validate")
	}
	parsed, err := ParseFingerprint(string(key))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if parsed.Fingerprint() != key {
		t.Fatalf("round trip changed the fingerprint")
	}
	if parsed.At(5, 7) != CellX || parsed.At(11, 11) != CellO {
		t.Fatalf("round trip lost cell contents")
	}
}

func TestFingerprintChangesWithAnyCell(t *testing.T) {
	a := NewBoard()
	b := NewBoard()
	a.Set(3, 4, CellX)
	b.Set(3, 4, CellO)
	if a.Fingerprint() == b.Fingerprint() {
		t.Fatalf("different marks in the same cell must differ")
	}
	c := NewBoard()
	c.Set(4, 3, CellX)
	if a.Fingerprint() == c.Fingerprint() {
		t.Fatalf("transposed coordinates must differ")
	}
}

func TestParseFingerprintRejectsMalformedInput(t *testing.T) {
	if _, err := ParseFingerprint("XO."); err == nil {
		t.Fatalf("expected length error")
	}
	raw := make([]byte, BoardSize*BoardSize)
	for i := range raw {
		raw[i] = '.'
	}
	raw[17] = 'z'
	if _, err := ParseFingerprint(string(raw)); err == nil {
		t.Fatalf("expected alphabet error")
	}
}

func TestBoardCloneIsIndependent(t *testing.T) {
	board := NewBoard()
	board.Set(2, 2, CellX)
	clone := board.Clone()
	clone.Set(3, 3, CellO)
	if cell := board.At(3, 3); cell != CellEmpty {
		t.Fatalf("mutating the clone leaked into the original, found %v", cell)
	}
	if clone.At(2, 2) != CellX {
		t.Fatalf("clone lost the original's marks")
	}
	if board.CountMarks() != 1 || clone.CountMarks() != 2 {
		t.Fatalf("unexpected mark counts %d/%d", board.CountMarks(), clone.CountMarks())
	}
}
