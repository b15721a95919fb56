package main

import "testing"

func searchSettingsForTest(depth int) SearchSettings {
	return SearchSettings{
		Depth:      depth,
		AiPlayer:   PlayerO,
		Heuristics: DefaultConfig().Heuristics,
		Stats:      newSearchStats(),
	}
}

func TestFindBestResponseTakesImmediateWin(t *testing.T) {
	rules := NewRules()
	board := NewBoard()
	for k := 0; k < 5; k++ {
		board.Set(2+k, 2, CellO)
	}
	board.Set(3, 3, CellX)
	board.Set(5, 3, CellX)
	board.Set(7, 3, CellX)

	settings := searchSettingsForTest(3)
	move, ok := FindBestResponse(board, rules, settings)
	if !ok {
		t.Fatalf("expected a move")
	}
	if !move.Equals(Move{X: 7, Y: 2}) {
		t.Fatalf("expected winning move (7,2), got %+v", move)
	}
	if settings.Stats.FastPath != "win" {
		t.Fatalf("expected win fast path, got %q", settings.Stats.FastPath)
	}
}

func TestFindBestResponseBlocksImmediateLoss(t *testing.T) {
	rules := NewRules()
	board := NewBoard()
	for k := 0; k < 5; k++ {
		board.Set(2+k, 5, CellX)
	}

	settings := searchSettingsForTest(3)
	move, ok := FindBestResponse(board, rules, settings)
	if !ok {
		t.Fatalf("expected a move")
	}
	if !move.Equals(Move{X: 1, Y: 5}) && !move.Equals(Move{X: 7, Y: 5}) {
		t.Fatalf("expected a blocking move at an open end, got %+v", move)
	}
	if settings.Stats.FastPath != "block_win" {
		t.Fatalf("expected block_win fast path, got %q", settings.Stats.FastPath)
	}
}

func TestFindBestResponsePrefersOwnFiveOverBlockingFour(t *testing.T) {
	rules := NewRules()
	board := NewBoard()
	for k := 0; k < 4; k++ {
		board.Set(2+k, 2, CellO)
	}
	for k := 0; k < 3; k++ {
		board.Set(3+k, 3, CellX)
	}

	settings := searchSettingsForTest(3)
	move, ok := FindBestResponse(board, rules, settings)
	if !ok {
		t.Fatalf("expected a move")
	}
	if !move.Equals(Move{X: 6, Y: 2}) {
		t.Fatalf("expected (6,2) completing the own five, got %+v", move)
	}
	if settings.Stats.FastPath != "make_five" {
		t.Fatalf("expected make_five fast path, got %q", settings.Stats.FastPath)
	}
}

func TestFindBestResponseBlocksDevelopingFour(t *testing.T) {
	rules := NewRules()
	board := NewBoard()
	for k := 0; k < 3; k++ {
		board.Set(4+k, 8, CellX)
	}

	settings := searchSettingsForTest(3)
	move, ok := FindBestResponse(board, rules, settings)
	if !ok {
		t.Fatalf("expected a move")
	}
	if settings.Stats.FastPath != "block_four" {
		t.Fatalf("expected block_four fast path, got %q", settings.Stats.FastPath)
	}
	probe := board.Clone()
	if !rules.WouldCompleteRun(probe, move, CellX, 4) {
		t.Fatalf("expected the reply to occupy a four-completing cell, got %+v", move)
	}
}

func TestFindBestResponseIsDeterministic(t *testing.T) {
	rules := NewRules()
	board := NewBoard()
	board.Set(5, 5, CellX)
	board.Set(6, 6, CellO)
	board.Set(4, 5, CellX)

	first, ok := FindBestResponse(board, rules, searchSettingsForTest(2))
	if !ok {
		t.Fatalf("expected a move")
	}
	for i := 0; i < 5; i++ {
		move, ok := FindBestResponse(board, rules, searchSettingsForTest(2))
		if !ok || !move.Equals(first) {
			t.Fatalf("run %d: expected %+v again, got %+v ok=%v", i, first, move, ok)
		}
	}
}

func TestFindBestResponseDoesNotMutateCallerBoard(t *testing.T) {
	rules := NewRules()
	board := NewBoard()
	board.Set(5, 5, CellX)
	board.Set(6, 5, CellO)
	before := board.Fingerprint()

	if _, ok := FindBestResponse(board, rules, searchSettingsForTest(2)); !ok {
		t.Fatalf("expected a move")
	}
	if board.Fingerprint() != before {
		t.Fatalf("search mutated the caller's board")
	}
}

func TestFindBestResponseNoMovesOnFullBoard(t *testing.T) {
	rules := NewRules()
	if _, ok := FindBestResponse(fullDrawBoard(), rules, searchSettingsForTest(2)); ok {
		t.Fatalf("expected no move on a full board")
	}
}
