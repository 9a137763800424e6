// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

package recommend

import "testing"

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero search terms", func(c *Config) { c.Generation.MaxSearchTerms = 0 }},
		{"zero take", func(c *Config) { c.Generation.Take = 0 }},
		{"zero candidate cap", func(c *Config) { c.Generation.MaxCandidates = 0 }},
		{"zero generation concurrency", func(c *Config) { c.Generation.Concurrency = 0 }},
		{"zero diversity window", func(c *Config) { c.Rerank.DiversityWindow = 0 }},
		{"zero enrich topK", func(c *Config) { c.Enrich.TopK = 0 }},
		{"zero enrich concurrency", func(c *Config) { c.Enrich.Concurrency = 0 }},
		{"topK below topN", func(c *Config) { c.Enrich.TopK = 5; c.Limits.MaxTopN = 10 }},
		{"maxTopN below default", func(c *Config) { c.Limits.MaxTopN = 1; c.Limits.DefaultTopN = 10 }},
		{"zero deadline", func(c *Config) { c.Limits.RequestDeadline = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("invalid config accepted")
			}
		})
	}
}

func TestConfigCloneIsIndependent(t *testing.T) {
	original := DefaultConfig()
	clone := original.Clone()

	clone.Rerank.FlexibilityMarkers[0] = "changed"
	clone.Generation.Take = 1

	if original.Rerank.FlexibilityMarkers[0] == "changed" {
		t.Error("clone shares the flexibility marker slice")
	}
	if original.Generation.Take == 1 {
		t.Error("clone shares scalar fields")
	}
}
