// Package pace owns the reading speed, pause state and the time-credit
// accumulator that decides when the reading cursor advances.
package pace

import (
	"math"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/bheadmaster/fastread/internal/window"
)

// State describes what the engine is doing between two events.
type State int

const (
	// Paused means a scheduled advance is suspended until unpaused.
	Paused State = iota
	// Forward means the cursor advances toward the end of the document.
	Forward
	// Backward means the cursor walks back toward the start.
	Backward
	// Frozen means speed is zero: the display is static but the reader is
	// not paused, which matters only for the status text.
	Frozen
)

const (
	// MinSpeed and MaxSpeed bound the configured words-per-minute. Negative
	// speeds play the document backwards.
	MinSpeed = -1000
	MaxSpeed = 1000
	// SpeedStep is the words-per-minute delta per speed command.
	SpeedStep = 50
)

// strongStops are the word endings that grant a full extra interval of dwell.
const strongStops = "!?.;:"

// Engine drives a window.Window on a word-per-interval schedule. It never
// blocks: the caller polls for input with the deadline from PollTimeout and
// reports back elapsed wall-clock time through Tick and Keystroke. The
// fractional credit carries partial progress toward the next advance across
// interruptions, so the effective rate converges to the configured speed.
type Engine struct {
	win      *window.Window
	speed    int
	paused   bool
	credit   float64
	markedAt time.Time
}

// New returns an engine over win at the given words-per-minute, with the
// per-word clock starting at now. Speed is clamped to [MinSpeed, MaxSpeed].
func New(win *window.Window, wpm int, now time.Time) *Engine {
	return &Engine{win: win, speed: clampSpeed(wpm), markedAt: now}
}

// Speed returns the configured words-per-minute, sign included.
func (e *Engine) Speed() int {
	return e.speed
}

// Credit returns the fractional progress toward the next advance. Negative
// credit is dwell owed after punctuation.
func (e *Engine) Credit() float64 {
	return e.credit
}

// State reports the current scheduling state.
func (e *Engine) State() State {
	switch {
	case e.paused:
		return Paused
	case e.speed > 0:
		return Forward
	case e.speed < 0:
		return Backward
	}
	return Frozen
}

// Interval returns the seconds-per-word at the current speed. The second
// return is false when speed is zero and no advance is scheduled.
func (e *Engine) Interval() (time.Duration, bool) {
	if e.speed == 0 {
		return 0, false
	}
	wpm := int64(e.speed)
	if wpm < 0 {
		wpm = -wpm
	}
	return time.Duration(int64(time.Minute) / wpm), true
}

// PollTimeout returns how long the caller should wait for input before the
// next advance is due. The second return is false when the engine is paused
// or frozen: wait for a keystroke with no deadline.
func (e *Engine) PollTimeout() (time.Duration, bool) {
	interval, ok := e.Interval()
	if !ok || e.paused {
		return 0, false
	}
	return time.Duration(math.Abs(float64(interval) * (1 - e.credit))), true
}

// Tick handles an expired poll deadline. If the engine is running and the
// accumulated progress has reached a full interval, the cursor moves one word
// in the direction of the speed sign, the credit resets, the per-word clock
// restarts at now, and the word just departed from charges its punctuation
// dwell against the next interval. Returns whether the advance happened.
func (e *Engine) Tick(now time.Time) bool {
	interval, ok := e.Interval()
	if !ok || e.paused {
		return false
	}
	elapsed := now.Sub(e.markedAt)
	if e.credit+float64(elapsed)/float64(interval) < 1 {
		return false
	}

	departed := e.win.Current()
	if e.speed > 0 {
		e.win.Advance()
	} else {
		e.win.Retreat()
	}
	e.credit = -pauseAfter(departed)
	e.markedAt = now
	return true
}

// Keystroke accounts for a poll interrupted by input: the fraction of the
// interval already elapsed is banked into the credit (running only), and the
// per-word clock restarts regardless of state.
func (e *Engine) Keystroke(now time.Time) {
	if interval, ok := e.Interval(); ok && !e.paused {
		e.credit += float64(now.Sub(e.markedAt)) / float64(interval)
	}
	e.markedAt = now
}

// TogglePause flips between paused and the running state chosen by the speed
// sign. The credit resets and the clock restarts so time spent paused never
// counts toward an advance.
func (e *Engine) TogglePause(now time.Time) {
	e.paused = !e.paused
	e.credit = 0
	e.markedAt = now
}

// SpeedUp raises the speed one step, clamped to MaxSpeed.
func (e *Engine) SpeedUp() {
	e.speed = clampSpeed(e.speed + SpeedStep)
}

// SpeedDown lowers the speed one step, clamped to MinSpeed.
func (e *Engine) SpeedDown() {
	e.speed = clampSpeed(e.speed - SpeedStep)
}

// StepForward moves one word forward, bypassing the timer. Permitted only
// while paused or frozen; a running engine ignores it.
func (e *Engine) StepForward() {
	if e.paused || e.speed == 0 {
		e.win.Advance()
	}
}

// StepBackward moves one word back, bypassing the timer. Permitted only
// while paused or frozen; a running engine ignores it.
func (e *Engine) StepBackward() {
	if e.paused || e.speed == 0 {
		e.win.Retreat()
	}
}

func clampSpeed(wpm int) int {
	if wpm > MaxSpeed {
		return MaxSpeed
	}
	if wpm < MinSpeed {
		return MinSpeed
	}
	return wpm
}

// pauseAfter returns the extra dwell owed after leaving word, in intervals:
// a full interval for strong-stop endings, half for any other non-letter
// ending, none for words ending in a letter.
func pauseAfter(word string) float64 {
	last, size := utf8.DecodeLastRuneInString(word)
	if size == 0 {
		return 0
	}
	switch {
	case strings.ContainsRune(strongStops, last):
		return 1
	case !unicode.IsLetter(last):
		return 0.5
	}
	return 0
}
