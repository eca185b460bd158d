package main

import (
	"fmt"
	"strings"
	"time"
)

// SearchStats collects the counters one search session increments. The
// engine creates a fresh set per ChooseMove call.
type SearchStats struct {
	Start           time.Time
	Nodes           int
	CacheHits       int
	Cutoffs         int
	CutoffMovesSum  int
	CompletedDepths int
	DepthDurations  []time.Duration
}

func (s *SearchStats) CacheHit() {
	s.CacheHits++
}

// CutoffAfter records a pruning cutoff and how many sibling moves were
// evaluated up to and including the cutting move.
func (s *SearchStats) CutoffAfter(movesEvaluated int) {
	s.Cutoffs++
	s.CutoffMovesSum += movesEvaluated
}

func logSearchStats(tag string, stats *SearchStats, ai *MinimaxAI) {
	if stats == nil {
		return
	}
	elapsed := time.Duration(0)
	if !stats.Start.IsZero() {
		elapsed = time.Since(stats.Start)
	}
	nps := 0.0
	if elapsed > 0 {
		nps = float64(stats.Nodes) / elapsed.Seconds()
	}
	avgCutoffAt := 0.0
	if stats.Cutoffs > 0 {
		avgCutoffAt = float64(stats.CutoffMovesSum) / float64(stats.Cutoffs)
	}
	parts := make([]string, 0, len(stats.DepthDurations))
	for _, d := range stats.DepthDurations {
		parts = append(parts, fmt.Sprintf("%dms", d.Milliseconds()))
	}
	fmt.Printf("[ai:%s] t=%dms completed=%d nodes=%d nps=%.0f tt_size=%d tt_hit=%d cutoffs=%d avg_cutoff_at=%.2f depth_times=[%s]\n",
		tag,
		elapsed.Milliseconds(),
		stats.CompletedDepths,
		stats.Nodes,
		nps,
		ai.CacheSize(),
		stats.CacheHits,
		stats.Cutoffs,
		avgCutoffAt,
		strings.Join(parts, ","),
	)
}
