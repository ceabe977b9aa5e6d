package leaderboard

import "sort"

// Cap is the number of entries the board keeps.
const Cap = 10

// Entry is one row on the board. Name is the unique key.
type Entry struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Upsert records score for name, keeping the higher of the old and new
// scores, then re-sorts and trims the board. The input slice is not
// modified.
func Upsert(board []Entry, name string, score float64) []Entry {
	out := make([]Entry, 0, len(board)+1)
	found := false
	for _, e := range board {
		if e.Name == name {
			found = true
			if score > e.Score {
				e.Score = score
			}
		}
		out = append(out, e)
	}
	if !found {
		out = append(out, Entry{Name: name, Score: score})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if len(out) > Cap {
		out = out[:Cap]
	}
	return out
}

// Rank returns name's 1-based position, or 0 when off the board.
func Rank(board []Entry, name string) int {
	for i, e := range board {
		if e.Name == name {
			return i + 1
		}
	}
	return 0
}
