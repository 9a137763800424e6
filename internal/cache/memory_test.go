// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestMemoryGetSet(t *testing.T) {
	t.Parallel()

	c := NewMemory(time.Minute)

	if _, ok := c.Get("absent"); ok {
		t.Error("Get(absent) = hit, want miss")
	}

	c.Set("k", "v")
	got, ok := c.Get("k")
	if !ok {
		t.Fatal("Get(k) = miss after Set")
	}
	if got.(string) != "v" {
		t.Errorf("Get(k) = %v, want v", got)
	}

	stats := c.GetStats()
	if stats.Hits != 1 || stats.Misses != 1 || stats.TotalKeys != 1 {
		t.Errorf("stats = %+v, want 1 hit, 1 miss, 1 key", stats)
	}
}

func TestMemoryExpiry(t *testing.T) {
	t.Parallel()

	c := NewMemory(time.Minute)
	c.SetWithTTL("gone", 42, -time.Second)

	if _, ok := c.Get("gone"); ok {
		t.Error("expired entry returned as hit")
	}
	if stats := c.GetStats(); stats.Evictions != 1 {
		t.Errorf("Evictions = %d, want 1", stats.Evictions)
	}
}

func TestMemorySweep(t *testing.T) {
	t.Parallel()

	c := NewMemory(time.Minute)
	c.SetWithTTL("expired-1", 1, -time.Second)
	c.SetWithTTL("expired-2", 2, -time.Second)
	c.Set("fresh", 3)

	if evicted := c.Sweep(); evicted != 2 {
		t.Errorf("Sweep() = %d, want 2", evicted)
	}
	if _, ok := c.Get("fresh"); !ok {
		t.Error("Sweep removed an unexpired entry")
	}
	stats := c.GetStats()
	if stats.TotalKeys != 1 {
		t.Errorf("TotalKeys = %d, want 1", stats.TotalKeys)
	}
	if stats.LastCleanup.IsZero() {
		t.Error("LastCleanup not updated by Sweep")
	}
}

func TestMemoryClear(t *testing.T) {
	t.Parallel()

	c := NewMemory(time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	if removed := c.Clear(); removed != 2 {
		t.Errorf("Clear() = %d, want 2", removed)
	}
	if _, ok := c.Get("a"); ok {
		t.Error("entry survived Clear")
	}
	if stats := c.GetStats(); stats.TotalKeys != 0 {
		t.Errorf("TotalKeys = %d after Clear, want 0", stats.TotalKeys)
	}
}

func TestMemoryHitRate(t *testing.T) {
	t.Parallel()

	c := NewMemory(time.Minute)
	if c.HitRate() != 0.0 {
		t.Errorf("HitRate() = %f on empty cache, want 0", c.HitRate())
	}

	c.Set("k", 1)
	c.Get("k")
	c.Get("k")
	c.Get("missing")
	c.Get("missing")

	if rate := c.HitRate(); rate != 50.0 {
		t.Errorf("HitRate() = %f, want 50.0", rate)
	}
}

func TestMemoryConcurrentAccess(t *testing.T) {
	t.Parallel()

	c := NewMemory(time.Minute)
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("key-%d", j%10)
				c.Set(key, n*1000+j)
				c.Get(key)
				if j%25 == 0 {
					c.Sweep()
				}
			}
		}(i)
	}
	wg.Wait()

	if stats := c.GetStats(); stats.TotalKeys == 0 {
		t.Error("no keys after concurrent writes")
	}
}

func TestGenerateKeyDeterministic(t *testing.T) {
	t.Parallel()

	type params struct {
		Term   string   `json:"term"`
		Causes []string `json:"causes"`
		Take   int      `json:"take"`
	}

	a := GenerateKey(NamespaceSearch, params{Term: "earthquake", Causes: NormalizeTerms([]string{"Disaster-Relief", "health"}), Take: 50})
	b := GenerateKey(NamespaceSearch, params{Term: "earthquake", Causes: NormalizeTerms([]string{"health", "disaster-relief"}), Take: 50})
	if a != b {
		t.Errorf("keys differ for reordered causes:\n%s\n%s", a, b)
	}

	c := GenerateKey(NamespaceSearch, params{Term: "flood", Causes: nil, Take: 50})
	if a == c {
		t.Error("distinct terms produced identical keys")
	}

	d := GenerateKey(NamespaceBrowse, params{Term: "earthquake", Causes: NormalizeTerms([]string{"disaster-relief", "health"}), Take: 50})
	if a == d {
		t.Error("distinct namespaces produced identical keys")
	}
}

func TestNormalizeTerms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil input", nil, nil},
		{"empty input", []string{}, nil},
		{"only blanks", []string{"", "  "}, nil},
		{"case and whitespace", []string{" Disaster-Relief ", "HEALTH"}, []string{"disaster-relief", "health"}},
		{"dedup", []string{"water", "Water", "water "}, []string{"water"}},
		{"sorted", []string{"shelter", "food", "medical"}, []string{"food", "medical", "shelter"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := NormalizeTerms(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("NormalizeTerms(%v) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("NormalizeTerms(%v)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNopAlwaysMisses(t *testing.T) {
	t.Parallel()

	n := NewNop()
	n.Set("k", "v")
	n.SetWithTTL("k2", "v", time.Hour)

	if _, ok := n.Get("k"); ok {
		t.Error("Nop cache returned a hit")
	}
	if stats := n.GetStats(); stats.Misses != 1 {
		t.Errorf("Misses = %d, want 1", stats.Misses)
	}
	if n.HitRate() != 0.0 {
		t.Errorf("HitRate() = %f, want 0", n.HitRate())
	}
}
