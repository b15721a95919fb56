package main

// GameSettings binds the human and AI roles to marks for the lifetime of a
// session. Board size and win length are fixed constants.
type GameSettings struct {
	HumanPlayer PlayerColor `json:"-"`
	HumanStarts bool        `json:"human_starts"`
}

func DefaultGameSettings() GameSettings {
	return GameSettings{
		HumanPlayer: PlayerX,
		HumanStarts: true,
	}
}

func (s GameSettings) AiPlayer() PlayerColor {
	return otherPlayer(s.HumanPlayer)
}

func (s GameSettings) HumanCell() Cell {
	return CellFromPlayer(s.HumanPlayer)
}

func (s GameSettings) AiCell() Cell {
	return CellFromPlayer(s.AiPlayer())
}
