package main

import "testing"

func TestResolvedHeuristicConfigFillsZeroWeights(t *testing.T) {
	defaults := DefaultConfig().Heuristics
	if got := resolvedHeuristicConfig(HeuristicConfig{}); got != defaults {
		t.Fatalf("expected defaults for an empty config, got %+v", got)
	}

	partial := resolvedHeuristicConfig(HeuristicConfig{QueenPressure: 7})
	if partial.QueenPressure != 7 {
		t.Fatalf("explicit weight overwritten: %+v", partial)
	}
	if partial.Development != defaults.Development || partial.BeetleOnQueen != defaults.BeetleOnQueen {
		t.Fatalf("zero weights not filled from defaults: %+v", partial)
	}
}

func TestConfigStoreUpdate(t *testing.T) {
	defer configStore.Update(DefaultConfig())

	cfg := DefaultConfig()
	cfg.AiDepth = 9
	cfg.AiSeed = 123
	configStore.Update(cfg)

	got := GetConfig()
	if got.AiDepth != 9 || got.AiSeed != 123 {
		t.Fatalf("update not visible: %+v", got)
	}
}
