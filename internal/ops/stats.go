package ops

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/neojoin1-cyber/game/internal/cosmetic"
	"github.com/neojoin1-cyber/game/internal/leaderboard"
	"github.com/neojoin1-cyber/game/internal/state"
	"github.com/neojoin1-cyber/game/internal/upgrade"
)

// WriteStats prints a human-readable summary of a save directory.
func WriteStats(w io.Writer, dataDir string) error {
	store, err := state.NewFileStore(dataDir)
	if err != nil {
		return err
	}
	st := store.Load()

	fmt.Fprintf(w, "score:         %s\n", humanize.CommafWithDigits(st.Score, 0))
	fmt.Fprintf(w, "treats:        %s\n", humanize.Comma(int64(st.Treats)))
	fmt.Fprintf(w, "combo:         %d (x%d)\n", st.Combo, st.Multiplier)
	fmt.Fprintf(w, "pet meter:     %d\n", st.PetMeter)
	fmt.Fprintf(w, "premium:       %t\n", st.IsPremium)
	fmt.Fprintf(w, "login streak:  %d (last played %s)\n", st.Daily.LoginStreak, st.Daily.LastPlayDate)
	fmt.Fprintf(w, "cosmetics:     %d/%d unlocked\n", len(st.UnlockedCosmetics), len(cosmetic.Catalog))

	fmt.Fprintln(w, "upgrades:")
	for _, u := range upgrade.Catalog {
		level := st.Level(u.Key)
		fmt.Fprintf(w, "  %-14s %d/%d (next costs %s)\n",
			u.Name, level, u.MaxLevel, humanize.Comma(int64(u.Cost(level))))
	}

	board, err := leaderboard.NewFileStore(dataDir)
	if err != nil {
		return err
	}
	entries := board.Top()
	if len(entries) == 0 {
		fmt.Fprintln(w, "leaderboard:   empty")
		return nil
	}
	fmt.Fprintln(w, "leaderboard:")
	for i, e := range entries {
		fmt.Fprintf(w, "  %2d. %-20s %s\n", i+1, e.Name, humanize.CommafWithDigits(e.Score, 0))
	}
	return nil
}
