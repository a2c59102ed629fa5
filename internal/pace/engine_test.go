package pace

import (
	"testing"
	"time"

	"github.com/bheadmaster/fastread/internal/window"
)

func newTestEngine(t *testing.T, words []string, wpm int, now time.Time) (*Engine, *window.Window) {
	t.Helper()
	win, err := window.New(words, 0)
	if err != nil {
		t.Fatalf("window.New: %v", err)
	}
	return New(win, wpm, now), win
}

func TestInterval(t *testing.T) {
	base := time.Unix(1000, 0)
	tests := []struct {
		wpm  int
		want time.Duration
		ok   bool
	}{
		{500, 120 * time.Millisecond, true},
		{-500, 120 * time.Millisecond, true},
		{1000, 60 * time.Millisecond, true},
		{50, 1200 * time.Millisecond, true},
		{0, 0, false},
	}
	for _, tt := range tests {
		e, _ := newTestEngine(t, []string{"one", "two"}, tt.wpm, base)
		got, ok := e.Interval()
		if ok != tt.ok || got != tt.want {
			t.Errorf("Interval at %d wpm = %v, %v; want %v, %v", tt.wpm, got, ok, tt.want, tt.ok)
		}
	}
}

func TestKeystrokeBanksElapsedTime(t *testing.T) {
	base := time.Unix(1000, 0)
	e, win := newTestEngine(t, []string{"alpha", "beta", "gamma"}, 500, base)

	if d, ok := e.PollTimeout(); !ok || d != 120*time.Millisecond {
		t.Fatalf("fresh PollTimeout = %v, %v; want 120ms, true", d, ok)
	}

	// A key halfway through the interval banks half an advance and leaves
	// half the interval on the next deadline.
	e.Keystroke(base.Add(60 * time.Millisecond))
	if got := e.Credit(); got != 0.5 {
		t.Fatalf("credit after key at 60ms = %v; want 0.5", got)
	}
	if d, ok := e.PollTimeout(); !ok || d != 60*time.Millisecond {
		t.Fatalf("PollTimeout after key = %v, %v; want 60ms, true", d, ok)
	}

	// The shortened deadline fires and the banked credit completes the
	// interval: exactly one word of progress despite the interruption.
	if !e.Tick(base.Add(120 * time.Millisecond)) {
		t.Fatal("Tick at combined full interval did not advance")
	}
	if cur, _ := win.Progress(); cur != 1 {
		t.Fatalf("cursor after tick = %d; want 1", cur)
	}
}

func TestKeystrokeSplitMatchesSingleWait(t *testing.T) {
	base := time.Unix(1000, 0)
	split, _ := newTestEngine(t, []string{"alpha", "beta"}, 500, base)
	whole, _ := newTestEngine(t, []string{"alpha", "beta"}, 500, base)

	split.Keystroke(base.Add(30 * time.Millisecond))
	split.Keystroke(base.Add(75 * time.Millisecond))
	whole.Keystroke(base.Add(75 * time.Millisecond))

	if split.Credit() != whole.Credit() {
		t.Fatalf("split credit %v != single-wait credit %v", split.Credit(), whole.Credit())
	}
}

func TestTickNotDueBeforeFullInterval(t *testing.T) {
	base := time.Unix(1000, 0)
	e, win := newTestEngine(t, []string{"alpha", "beta"}, 500, base)

	if e.Tick(base.Add(119 * time.Millisecond)) {
		t.Fatal("Tick advanced before a full interval elapsed")
	}
	if cur, _ := win.Progress(); cur != 0 {
		t.Fatalf("cursor = %d; want 0", cur)
	}
	if !e.Tick(base.Add(120 * time.Millisecond)) {
		t.Fatal("Tick did not advance at a full interval")
	}
}

func TestPunctuationDwell(t *testing.T) {
	base := time.Unix(1000, 0)
	tests := []struct {
		word     string
		credit   float64
		nextWait time.Duration
	}{
		{"sentence.", -1, 240 * time.Millisecond},
		{"really?!", -1, 240 * time.Millisecond},
		{"clause;", -1, 240 * time.Millisecond},
		{"so:", -1, 240 * time.Millisecond},
		{"pause,", -0.5, 180 * time.Millisecond},
		{"(aside)", -0.5, 180 * time.Millisecond},
		{"dash-", -0.5, 180 * time.Millisecond},
		{"plain", 0, 120 * time.Millisecond},
		{"число7", -0.5, 180 * time.Millisecond},
		{"слово", 0, 120 * time.Millisecond},
	}
	for _, tt := range tests {
		e, _ := newTestEngine(t, []string{tt.word, "next", "after"}, 500, base)
		if !e.Tick(base.Add(120 * time.Millisecond)) {
			t.Fatalf("%q: tick not due", tt.word)
		}
		if got := e.Credit(); got != tt.credit {
			t.Errorf("departing %q: credit = %v; want %v", tt.word, got, tt.credit)
		}
		if d, ok := e.PollTimeout(); !ok || d != tt.nextWait {
			t.Errorf("departing %q: PollTimeout = %v, %v; want %v, true", tt.word, d, ok, tt.nextWait)
		}
	}
}

func TestStrongStopHoldsFollowingWord(t *testing.T) {
	base := time.Unix(1000, 0)
	e, win := newTestEngine(t, []string{"end.", "held", "free"}, 500, base)

	now := base.Add(120 * time.Millisecond)
	if !e.Tick(now) {
		t.Fatal("first tick not due")
	}

	// One plain interval is not enough while the dwell debt is unpaid.
	if e.Tick(now.Add(120 * time.Millisecond)) {
		t.Fatal("advanced past held word after a single interval")
	}
	if !e.Tick(now.Add(240 * time.Millisecond)) {
		t.Fatal("did not advance after the doubled dwell")
	}
	if cur, _ := win.Progress(); cur != 2 {
		t.Fatalf("cursor = %d; want 2", cur)
	}
}

func TestPauseBlocksAndResetsCredit(t *testing.T) {
	base := time.Unix(1000, 0)
	e, win := newTestEngine(t, []string{"alpha", "beta"}, 500, base)

	e.Keystroke(base.Add(60 * time.Millisecond))
	e.TogglePause(base.Add(90 * time.Millisecond))

	if got := e.State(); got != Paused {
		t.Fatalf("state = %v; want Paused", got)
	}
	if got := e.Credit(); got != 0 {
		t.Fatalf("credit after pause = %v; want 0", got)
	}
	if _, ok := e.PollTimeout(); ok {
		t.Fatal("PollTimeout returned a deadline while paused")
	}
	if e.Tick(base.Add(10 * time.Second)) {
		t.Fatal("Tick advanced while paused")
	}

	// Keys while paused restart the clock but bank nothing.
	e.Keystroke(base.Add(20 * time.Second))
	if got := e.Credit(); got != 0 {
		t.Fatalf("credit after key while paused = %v; want 0", got)
	}

	// Unpausing starts a fresh full interval: time spent paused is gone.
	resume := base.Add(30 * time.Second)
	e.TogglePause(resume)
	if got := e.State(); got != Forward {
		t.Fatalf("state after unpause = %v; want Forward", got)
	}
	if e.Tick(resume.Add(119 * time.Millisecond)) {
		t.Fatal("advanced before a full interval after unpausing")
	}
	if !e.Tick(resume.Add(120 * time.Millisecond)) {
		t.Fatal("did not advance a full interval after unpausing")
	}
	if cur, _ := win.Progress(); cur != 1 {
		t.Fatalf("cursor = %d; want 1", cur)
	}
}

func TestFrozenEngine(t *testing.T) {
	base := time.Unix(1000, 0)
	e, win := newTestEngine(t, []string{"alpha", "beta", "gamma"}, 0, base)

	if got := e.State(); got != Frozen {
		t.Fatalf("state = %v; want Frozen", got)
	}
	if _, ok := e.Interval(); ok {
		t.Fatal("Interval reported a duration at zero speed")
	}
	if _, ok := e.PollTimeout(); ok {
		t.Fatal("PollTimeout returned a deadline at zero speed")
	}
	if e.Tick(base.Add(time.Hour)) {
		t.Fatal("Tick advanced at zero speed")
	}
	e.Keystroke(base.Add(time.Hour))
	if got := e.Credit(); got != 0 {
		t.Fatalf("credit = %v; want 0", got)
	}

	// Manual stepping works while frozen, same as while paused.
	e.StepForward()
	if cur, _ := win.Progress(); cur != 1 {
		t.Fatalf("cursor after step = %d; want 1", cur)
	}
}

func TestSpeedStepsClamp(t *testing.T) {
	base := time.Unix(1000, 0)
	e, _ := newTestEngine(t, []string{"alpha", "beta"}, 900, base)

	for i := 0; i < 5; i++ {
		e.SpeedUp()
	}
	if got := e.Speed(); got != MaxSpeed {
		t.Fatalf("speed after raising past max = %d; want %d", got, MaxSpeed)
	}

	for i := 0; i < 80; i++ {
		e.SpeedDown()
	}
	if got := e.Speed(); got != MinSpeed {
		t.Fatalf("speed after lowering past min = %d; want %d", got, MinSpeed)
	}
}

func TestSpeedSignSelectsDirection(t *testing.T) {
	base := time.Unix(1000, 0)
	words := []string{"alpha", "beta", "gamma", "delta"}
	win, err := window.New(words, 2)
	if err != nil {
		t.Fatalf("window.New: %v", err)
	}
	e := New(win, -500, base)

	if got := e.State(); got != Backward {
		t.Fatalf("state = %v; want Backward", got)
	}
	if !e.Tick(base.Add(120 * time.Millisecond)) {
		t.Fatal("tick not due")
	}
	if cur, _ := win.Progress(); cur != 1 {
		t.Fatalf("cursor after backward tick = %d; want 1", cur)
	}

	// Flipping the sign takes effect on the next advance, not retroactively.
	for i := 0; i < 20; i++ {
		e.SpeedUp()
	}
	if got := e.Speed(); got != 500 {
		t.Fatalf("speed = %d; want 500", got)
	}
	if !e.Tick(base.Add(240 * time.Millisecond)) {
		t.Fatal("tick after sign flip not due")
	}
	if cur, _ := win.Progress(); cur != 2 {
		t.Fatalf("cursor after forward tick = %d; want 2", cur)
	}
}

func TestSpeedChangeKeepsCredit(t *testing.T) {
	base := time.Unix(1000, 0)
	e, _ := newTestEngine(t, []string{"alpha", "beta"}, 500, base)

	e.Keystroke(base.Add(60 * time.Millisecond))
	e.SpeedUp()
	if got := e.Credit(); got != 0.5 {
		t.Fatalf("credit after speed change = %v; want 0.5", got)
	}

	// Banked progress carries over, measured against the new interval.
	iv, ok := e.Interval()
	if !ok {
		t.Fatal("Interval not available at 550 wpm")
	}
	want := time.Duration(float64(iv) * 0.5)
	if d, ok := e.PollTimeout(); !ok || d != want {
		t.Fatalf("PollTimeout after speed change = %v, %v; want %v, true", d, ok, want)
	}
}

func TestManualStepsIgnoredWhileRunning(t *testing.T) {
	base := time.Unix(1000, 0)
	e, win := newTestEngine(t, []string{"alpha", "beta", "gamma"}, 500, base)

	e.StepForward()
	e.StepBackward()
	if cur, _ := win.Progress(); cur != 0 {
		t.Fatalf("cursor moved by manual step while running: %d", cur)
	}

	e.TogglePause(base)
	e.StepForward()
	e.StepForward()
	e.StepBackward()
	if cur, _ := win.Progress(); cur != 1 {
		t.Fatalf("cursor after paused steps = %d; want 1", cur)
	}
}

func TestTickAtDocumentEnd(t *testing.T) {
	base := time.Unix(1000, 0)
	words := []string{"alpha", "omega"}
	win, err := window.New(words, 1)
	if err != nil {
		t.Fatalf("window.New: %v", err)
	}
	e := New(win, 500, base)

	// The cursor clamps at the last word; the schedule keeps running.
	if !e.Tick(base.Add(120 * time.Millisecond)) {
		t.Fatal("tick not due at document end")
	}
	if cur, _ := win.Progress(); cur != 1 {
		t.Fatalf("cursor = %d; want 1 (clamped)", cur)
	}
}

func TestNewClampsSpeed(t *testing.T) {
	base := time.Unix(1000, 0)
	e, _ := newTestEngine(t, []string{"alpha"}, 4000, base)
	if got := e.Speed(); got != MaxSpeed {
		t.Fatalf("speed = %d; want %d", got, MaxSpeed)
	}
	e, _ = newTestEngine(t, []string{"alpha"}, -4000, base)
	if got := e.Speed(); got != MinSpeed {
		t.Fatalf("speed = %d; want %d", got, MinSpeed)
	}
}

func TestPauseAfter(t *testing.T) {
	tests := []struct {
		word string
		want float64
	}{
		{"end.", 1},
		{"eh?", 1},
		{"wow!", 1},
		{"list:", 1},
		{"clause;", 1},
		{"comma,", 0.5},
		{"quoted\"", 0.5},
		{"paren)", 0.5},
		{"digit9", 0.5},
		{"plain", 0},
		{"Wörter", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := pauseAfter(tt.word); got != tt.want {
			t.Errorf("pauseAfter(%q) = %v; want %v", tt.word, got, tt.want)
		}
	}
}
