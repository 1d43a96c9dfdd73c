// Package stats contains round metrics and listing helpers.
package stats

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/verte-zerg/taipu/internal/model"
)

// Metrics summarizes typing speed and accuracy of one round.
type Metrics struct {
	CPM      float64
	WPM      float64
	Accuracy float64
}

// RoundMetrics computes CPM, WPM and accuracy from keystroke counts.
func RoundMetrics(tally model.Tally, elapsed time.Duration) Metrics {
	var m Metrics
	den := float64(tally.Correct + tally.Incorrect)
	if den > 0 {
		m.Accuracy = float64(tally.Correct) / den
	}
	minutes := elapsed.Minutes()
	if minutes <= 0 {
		return m
	}
	m.CPM = float64(tally.Correct) / minutes
	m.WPM = m.CPM / 5.0
	return m
}

// FormatScore renders a score with thousands separators.
func FormatScore(score int) string {
	return humanize.Comma(int64(score))
}

// FormatElapsed renders elapsed time with one decimal, as shown during a round.
func FormatElapsed(d time.Duration) string {
	return fmt.Sprintf("%.1f", d.Seconds())
}

// ResultLines returns the lines shown on the result screen.
func ResultLines(res model.RoundResult) []string {
	m := RoundMetrics(res.Tally, res.Elapsed)
	rows := [][]string{
		{"Score", FormatScore(res.Score)},
		{"Time", FormatElapsed(res.Elapsed) + "s"},
		{"Speed", fmt.Sprintf("%.1f CPM", m.CPM)},
		{"Accuracy", fmt.Sprintf("%.1f%%", m.Accuracy*100)},
		{"Misses", humanize.Comma(int64(res.Tally.Incorrect))},
	}
	return formatTable(nil, rows, map[int]bool{1: true})
}

// LevelTable renders level summaries for the levels command.
func LevelTable(summaries []model.LevelSummary, selected string) string {
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		mark := ""
		if s.Level == selected {
			mark = "*"
		}
		rows = append(rows, []string{
			mark + s.Level,
			humanize.Comma(int64(s.Phrases)),
			humanize.Comma(int64(s.Chars)),
		})
	}
	lines := formatTable([]string{"Level", "Phrases", "Chars"}, rows, map[int]bool{1: true, 2: true})
	return strings.Join(lines, "\n")
}
