package mission

// Type categorizes daily missions by what advances them.
type Type string

const (
	TypeTap   Type = "tap"   // accumulates, +1 per tap
	TypeCombo Type = "combo" // running max combo reached today
	TypeHappy Type = "happy" // accumulates, +1 per happy mode activation
)

// ValidType reports whether t is a type Advance knows how to drive.
func ValidType(t Type) bool {
	switch t {
	case TypeTap, TypeCombo, TypeHappy:
		return true
	}
	return false
}

// DailyCount is how many missions every rollover generates.
const DailyCount = 3

// Mission is one daily mission record, persisted inside the player snapshot.
// Progress never decreases within a day and Completed is terminal for the day.
type Mission struct {
	ID        int    `json:"id"`
	Type      Type   `json:"type"`
	Title     string `json:"title"`
	Desc      string `json:"desc"`
	Target    int    `json:"target"`
	Reward    int    `json:"reward"`
	Progress  int    `json:"progress"`
	Completed bool   `json:"completed"`
	Claimed   bool   `json:"claimed"`
}

type template struct {
	Type   Type
	Title  string
	Desc   string
	Target int
	Reward int
}

// The fixed daily set. Every rollover regenerates all three from scratch;
// missions never carry across days.
var templates = []template{
	{Type: TypeTap, Title: "Petting Master", Desc: "Pet the cat 100 times today.", Target: 100, Reward: 5},
	{Type: TypeCombo, Title: "Combo Master", Desc: "Reach a 50 combo today.", Target: 50, Reward: 10},
	{Type: TypeHappy, Title: "Happy Virus", Desc: "Trigger happy mode once.", Target: 1, Reward: 15},
}

// Generate builds the day's three missions, zeroed.
func Generate() []Mission {
	out := make([]Mission, 0, len(templates))
	for i, t := range templates {
		out = append(out, Mission{
			ID:     i + 1,
			Type:   t.Type,
			Title:  t.Title,
			Desc:   t.Desc,
			Target: t.Target,
			Reward: t.Reward,
		})
	}
	return out
}

// Advance applies a progress update to every unclaimed mission of the given
// type. For absolute updates (combo) the value only sticks when it exceeds
// the stored progress; otherwise amount accumulates. It returns the missions
// that transitioned to completed by this update.
func Advance(list []Mission, typ Type, amount int, absolute bool) []Mission {
	var completed []Mission
	for i := range list {
		m := &list[i]
		if m.Type != typ || m.Claimed {
			continue
		}
		if absolute {
			if amount > m.Progress {
				m.Progress = amount
			}
		} else {
			m.Progress += amount
		}
		if m.Progress >= m.Target && !m.Completed {
			m.Completed = true
			completed = append(completed, *m)
		}
	}
	return completed
}

// AllCompleted reports whether every mission in the list is completed.
// An empty list does not count as completed.
func AllCompleted(list []Mission) bool {
	if len(list) == 0 {
		return false
	}
	for _, m := range list {
		if !m.Completed {
			return false
		}
	}
	return true
}
