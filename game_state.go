package main

type PlayerColor int

type GameStatus int

const (
	PlayerX PlayerColor = iota
	PlayerO
)

const (
	StatusNotStarted GameStatus = iota
	StatusRunning
	StatusXWon
	StatusOWon
	StatusDraw
)

type GameState struct {
	Board       Board
	ToMove      PlayerColor
	Status      GameStatus
	HasLastMove bool
	LastMove    Move
	LastMessage string
}

func DefaultGameState(settings GameSettings) GameState {
	state := GameState{}
	state.Reset(settings)
	return state
}

func (s *GameState) Reset(settings GameSettings) {
	s.Board = NewBoard()
	if settings.HumanStarts {
		s.ToMove = settings.HumanPlayer
	} else {
		s.ToMove = otherPlayer(settings.HumanPlayer)
	}
	s.Status = StatusNotStarted
	s.HasLastMove = false
	s.LastMove = Move{X: -1, Y: -1}
	s.LastMessage = ""
}

func (s GameState) Clone() GameState {
	clone := s
	clone.Board = s.Board.Clone()
	return clone
}

func otherPlayer(player PlayerColor) PlayerColor {
	if player == PlayerX {
		return PlayerO
	}
	return PlayerX
}

func (p PlayerColor) String() string {
	if p == PlayerX {
		return "X"
	}
	return "O"
}
