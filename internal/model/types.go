// Package model defines shared data structures.
package model

import "time"

// Config defines reader settings.
type Config struct {
	Speed     int
	ChunkSize int
	Skip      int
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Source      string
	Since       *time.Time
	Last        int
	CurveWindow int
}

// SessionStats captures a completed reading session.
type SessionStats struct {
	StartedAt  time.Time
	EndedAt    time.Time
	Source     string
	StartIndex int
	EndIndex   int
	TotalWords int
	WordsRead  int
	DurationMs int64
	SpeedWPM   int
}

// SessionAggregate summarizes a session for reporting.
type SessionAggregate struct {
	SessionID  int64
	EndedAt    time.Time
	Source     string
	WordsRead  int
	TotalWords int
	DurationMs int64
	SpeedWPM   int
}

// SourceAggregate aggregates reading stats per source across sessions.
type SourceAggregate struct {
	Source     string
	Sessions   int
	WordsRead  int
	DurationMs int64
	LastReadAt time.Time
}
