package progress

// ScoredGames lists the games whose points count toward TotalMarks.
// Game2 and game4 points are tracked but not part of the total.
var ScoredGames = []GameCode{GameGM01, GameGM03}

// Points returns the points of the given game slot, or 0 when the slot is
// absent or unknown.
func (r *Record) Points(code GameCode) int {
	if r == nil {
		return 0
	}
	switch code {
	case GameGM01:
		return r.Module1.Game1.GamePoints
	case GameGM02:
		if r.Module1.Game2 == nil {
			return 0
		}
		return r.Module1.Game2.GamePoints
	case GameGM03:
		return r.Module1.Game3.GamePoints
	case GameGM04:
		return r.Module1.Game4.GamePoints
	default:
		return 0
	}
}

// TotalMarks sums the points of ScoredGames.
func TotalMarks(r *Record) int {
	total := 0
	for _, code := range ScoredGames {
		total += r.Points(code)
	}
	return total
}

// Game3TotalLikes counts the likes across every game3 Q&A entry.
func Game3TotalLikes(r *Record) int {
	if r == nil {
		return 0
	}
	total := 0
	for _, q := range r.Module1.Game3.QandA {
		total += q.LikeCount()
	}
	return total
}

// Game1CompletedTasks returns the number of tasks recorded for game1.
func Game1CompletedTasks(r *Record) int {
	if r == nil {
		return 0
	}
	return len(r.Module1.Game1.Tasks)
}
