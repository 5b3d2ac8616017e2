// Package leaderboard builds the "Top Rollers" table: a fixed set of legends
// merged with the runs stored on this machine.
package leaderboard

import (
	"sort"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vovakirdan/stacks-roll/internal/storage"
)

// Title is shown above the table.
const Title = "Top Rollers"

// Entry is one leaderboard row.
type Entry struct {
	Rank     int // 0 for the unranked current run
	Name     string
	Distance float64
	Score    int
	Current  bool // The live run; its score is not final yet
}

var legends = []Entry{
	{Rank: 1, Name: "Satoshi", Distance: 98765, Score: 125000},
	{Rank: 2, Name: "Muneeb", Distance: 87654, Score: 110250},
	{Rank: 3, Name: "Vitalik", Distance: 76543, Score: 98700},
	{Rank: 4, Name: "Hal", Distance: 65432, Score: 85400},
	{Rank: 5, Name: "Player1", Distance: 54321, Score: 72300},
}

// Legends returns the built-in rows.
func Legends() []Entry {
	return append([]Entry(nil), legends...)
}

// IsTopPlayer reports whether distance beats the last legend.
func IsTopPlayer(distance float64) bool {
	return distance > legends[len(legends)-1].Distance
}

// Board merges legends with stored runs, ranks them by distance and keeps
// the first limit rows. When current qualifies as a top run it is appended
// as an unranked "You" row.
func Board(current float64, runs []storage.Run, limit int) []Entry {
	if limit <= 0 {
		limit = len(legends)
	}

	rows := Legends()
	for _, r := range runs {
		rows = append(rows, Entry{Name: r.Player, Distance: r.Distance, Score: r.Score})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Distance != rows[j].Distance {
			return rows[i].Distance > rows[j].Distance
		}
		return rows[i].Score > rows[j].Score
	})

	if len(rows) > limit {
		rows = rows[:limit]
	}
	for i := range rows {
		rows[i].Rank = i + 1
	}

	if IsTopPlayer(current) {
		rows = append(rows, Entry{Name: "You", Distance: current, Current: true})
	}
	return rows
}

var printer = message.NewPrinter(language.English)

// FormatDistance renders whole metres with thousands separators.
func FormatDistance(d float64) string {
	return printer.Sprintf("%dm", int64(d))
}

// FormatScore renders a score with thousands separators.
func FormatScore(score int) string {
	return printer.Sprintf("%d", score)
}

// FormatRank renders the rank column, "?" for the live run.
func FormatRank(e Entry) string {
	if e.Current || e.Rank == 0 {
		return "?"
	}
	return printer.Sprintf("%d", e.Rank)
}

// FormatEntryScore renders the score column, "..." while the run is live.
func FormatEntryScore(e Entry) string {
	if e.Current {
		return "..."
	}
	return FormatScore(e.Score)
}
