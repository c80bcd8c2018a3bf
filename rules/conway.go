package rules

const (
	// ParentsRequired is the exact live-neighbor count that brings a dead cell to life.
	ParentsRequired = 3
	// OverpopulationThreshold is the count above which a live cell dies.
	OverpopulationThreshold = 3
	// IsolationThreshold is the count at or below which a live cell dies.
	IsolationThreshold = 1
)

/*
ApplyConwayRules applies Conway's Game of Life rules to determine the next state of a cell.

Conway's Game of Life rules (B3/S23): a dead cell with exactly 3 live neighbors is born,
a live cell with more than 3 dies of overpopulation, with 1 or fewer dies of isolation,
and with 2 or 3 it survives.
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	if !alive {
		return neighbors == ParentsRequired
	}
	if neighbors > OverpopulationThreshold {
		return false
	}
	if neighbors <= IsolationThreshold {
		return false
	}
	return true
}
