// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/bheadmaster/fastread/internal/model"
)

const sparkChars = " .:-=+*#%@"

// EffectiveWPM computes the realized words-per-minute of a session from the
// words shown and the wall-clock duration, pauses included.
func EffectiveWPM(wordsRead int, durationMs int64) float64 {
	if durationMs <= 0 {
		return 0
	}
	minutes := float64(durationMs) / 60000.0
	return float64(wordsRead) / minutes
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// FormatDuration renders a millisecond duration as a compact human string.
func FormatDuration(ms int64) string {
	d := time.Duration(ms) * time.Millisecond
	if d >= time.Minute {
		d = d.Round(time.Second)
	}
	return d.String()
}

// RenderSummary prints a summary block for sessions.
func RenderSummary(w io.Writer, sessions []model.SessionAggregate) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	var totalWords int
	var totalMs int64
	var totalWPM float64
	bestWPM := 0.0
	for _, s := range sessions {
		wpm := EffectiveWPM(s.WordsRead, s.DurationMs)
		totalWords += s.WordsRead
		totalMs += s.DurationMs
		totalWPM += wpm
		if wpm > bestWPM {
			bestWPM = wpm
		}
	}
	count := float64(len(sessions))
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Sessions: %d\n", len(sessions)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Words read: %d\n", totalWords); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Reading time: %s\n", FormatDuration(totalMs)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg speed: %.1f wpm\n", totalWPM/count); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Best speed: %.1f wpm\n", bestWPM); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// RenderCurve prints the effective reading speed curve across sessions.
func RenderCurve(w io.Writer, sessions []model.SessionAggregate, window int) error {
	return RenderCurveWithSize(w, sessions, window, 0, 10)
}

// RenderCurveWithSize prints the speed curve sized to a given total width.
func RenderCurveWithSize(w io.Writer, sessions []model.SessionAggregate, window, totalWidth, height int) error {
	if len(sessions) == 0 {
		return nil
	}
	wpms := make([]float64, len(sessions))
	for i, s := range sessions {
		wpms[i] = EffectiveWPM(s.WordsRead, s.DurationMs)
	}
	wpms = MovingAverage(wpms, window)

	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	return PlotSeries(w, "Reading Speed (wpm)", wpms, width, height)
}

// RenderSourceTable prints per-source aggregates.
func RenderSourceTable(w io.Writer, aggs []model.SourceAggregate) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No sources found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Sources"); err != nil {
		return err
	}

	headers := []string{"Source", "Sessions", "Words", "Time", "Avg WPM", "Last read"}
	tableRows := make([][]string, 0, len(aggs))
	for _, agg := range aggs {
		tableRows = append(tableRows, []string{
			agg.Source,
			fmt.Sprintf("%d", agg.Sessions),
			fmt.Sprintf("%d", agg.WordsRead),
			FormatDuration(agg.DurationMs),
			fmt.Sprintf("%.1f", EffectiveWPM(agg.WordsRead, agg.DurationMs)),
			agg.LastReadAt.Format("2006-01-02 15:04"),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true}
	lines := formatTable(headers, tableRows, rightAlign)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}
