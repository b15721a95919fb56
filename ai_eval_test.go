package main

import "testing"

func TestEvaluateRewardsOwnImminentWin(t *testing.T) {
	rules := NewRules()
	board := NewBoard()
	for k := 0; k < 5; k++ {
		board.Set(2+k, 6, CellX)
	}
	score := EvaluateBoard(board, CellX, rules, DefaultConfig().Heuristics)
	if score < 5000.0 {
		t.Fatalf("expected strong positive score with open five for the AI, got %f", score)
	}
}

func TestEvaluatePenalizesOpponentImminentWin(t *testing.T) {
	rules := NewRules()
	board := NewBoard()
	for k := 0; k < 5; k++ {
		board.Set(2+k, 6, CellO)
	}
	score := EvaluateBoard(board, CellX, rules, DefaultConfig().Heuristics)
	if score > -5000.0 {
		t.Fatalf("expected strong negative score with open five against the AI, got %f", score)
	}
}

func TestSequenceScanBiasesOpponentRuns(t *testing.T) {
	rules := NewRules()
	heuristics := DefaultConfig().Heuristics

	ownRun := NewBoard()
	opponentRun := NewBoard()
	for k := 0; k < 3; k++ {
		ownRun.Set(3+k, 5, CellX)
		opponentRun.Set(3+k, 5, CellO)
	}

	// Same cells occupied, so the center term is identical; only the
	// sequence term differs. A length-3 run weighs 9*SequenceWeight, the
	// opponent's additionally by OpponentBias.
	noScan := heuristics
	noScan.EnableSequenceScan = false
	base := EvaluateBoard(ownRun, CellX, rules, noScan)

	ownScore := EvaluateBoard(ownRun, CellX, rules, heuristics)
	opponentScore := EvaluateBoard(opponentRun, CellX, rules, heuristics)

	wantOwn := 9.0 * heuristics.SequenceWeight
	wantOpp := wantOwn * heuristics.OpponentBias
	if diff := ownScore - base; !closeTo(diff, wantOwn) {
		t.Fatalf("expected own run bonus %f, got %f", wantOwn, diff)
	}
	if diff := base - opponentScore; !closeTo(diff, wantOpp) {
		t.Fatalf("expected opponent run penalty %f, got %f", wantOpp, diff)
	}
}

func TestCountRunsAllDirections(t *testing.T) {
	board := NewBoard()
	board.Set(2, 2, CellX)
	board.Set(3, 2, CellX)
	board.Set(4, 2, CellX)
	if got := countRuns(board, CellX, 3); got != 1 {
		t.Fatalf("expected one horizontal run of 3, got %d", got)
	}
	board = NewBoard()
	board.Set(7, 3, CellO)
	board.Set(6, 4, CellO)
	board.Set(5, 5, CellO)
	if got := countRuns(board, CellO, 3); got != 1 {
		t.Fatalf("expected one anti-diagonal run of 3, got %d", got)
	}
	if got := countRuns(board, CellX, 3); got != 0 {
		t.Fatalf("expected no X runs, got %d", got)
	}
}

func closeTo(a, b float64) bool {
	return absFloat(a-b) < 1e-6
}
