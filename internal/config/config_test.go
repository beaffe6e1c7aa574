package config

import "testing"

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Weights.MinimumScore != 0.88 {
		t.Errorf("Weights.MinimumScore = %v, want 0.88", cfg.Weights.MinimumScore)
	}
	if cfg.Search.DefaultLimit != 10 || cfg.Search.MaxLimit != 100 {
		t.Errorf("Search defaults = %+v, want default=10 max=100", cfg.Search)
	}
	if cfg.Batch.MaxBatchSize != 1000 {
		t.Errorf("Batch.MaxBatchSize = %d, want 1000", cfg.Batch.MaxBatchSize)
	}
	if !cfg.Weights.NameEnabled || !cfg.Weights.GovIDEnabled {
		t.Error("all scoring phases should default to enabled")
	}
}

func TestSimilarityEngineConversion(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	simCfg := cfg.SimilarityEngine()
	if simCfg.BoostThreshold != cfg.Similarity.JaroWinklerBoostThreshold {
		t.Errorf("BoostThreshold = %v, want %v", simCfg.BoostThreshold, cfg.Similarity.JaroWinklerBoostThreshold)
	}
	if simCfg.PrefixSize != cfg.Similarity.JaroWinklerPrefixSize {
		t.Errorf("PrefixSize = %v, want %v", simCfg.PrefixSize, cfg.Similarity.JaroWinklerPrefixSize)
	}
	if simCfg.KeepStopwords != cfg.Similarity.KeepStopwords {
		t.Errorf("KeepStopwords = %v, want %v", simCfg.KeepStopwords, cfg.Similarity.KeepStopwords)
	}
}

func TestScoringWeightsConversion(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	weights := cfg.ScoringWeights()
	if weights.NameWeight != cfg.Weights.Name {
		t.Errorf("NameWeight = %v, want %v", weights.NameWeight, cfg.Weights.Name)
	}
	if weights.CriticalIDWeight != cfg.Weights.CriticalID {
		t.Errorf("CriticalIDWeight = %v, want %v", weights.CriticalIDWeight, cfg.Weights.CriticalID)
	}
	if weights.MinimumScore != cfg.Weights.MinimumScore {
		t.Errorf("MinimumScore = %v, want %v", weights.MinimumScore, cfg.Weights.MinimumScore)
	}
}
