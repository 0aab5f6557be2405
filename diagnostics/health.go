// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: An AR(2)-based Computational Analysis of Circadian Gene Persistence
// Class: 02-613 at Caregie Mellon University

package diagnostics

import (
	"sort"
	"sync"

	"Circadian_Persistence_AR_Project/ar2"
	"Circadian_Persistence_AR_Project/series"
)

// DatasetHealth fits every series and scores the share of genes whose fit is
// valid and carries neither a critical sample size nor a boundary flag.
func DatasetHealth(data map[string]*series.TimeSeries, th Thresholds) HealthScore {
	genes := make([]string, 0, len(data))
	for g := range data {
		genes = append(genes, g)
	}
	sort.Strings(genes)

	score := HealthScore{Genes: len(genes)}
	for _, g := range genes {
		ts := data[g]
		fit, _, err := ar2.FitSeries(ts)
		if err != nil {
			continue
		}
		score.ValidFits++
		rep := Run(ts, fit, th)
		if rep.SampleSize.Level == SampleCritical || rep.Boundary.Triggered {
			score.Flagged++
		}
	}
	if score.Genes > 0 {
		score.Score = float64(score.ValidFits-score.Flagged) / float64(score.Genes)
	}
	return score
}

// HealthCache memoizes DatasetHealth by dataset key for the life of the
// process. Entries are never evicted. Safe for concurrent use.
type HealthCache struct {
	mu      sync.Mutex
	entries map[string]HealthScore
}

// NewHealthCache returns an empty cache.
func NewHealthCache() *HealthCache {
	return &HealthCache{entries: make(map[string]HealthScore)}
}

// GetOrCompute returns the cached score for key, computing it on first use.
// compute runs under the lock so each key is scored once.
func (c *HealthCache) GetOrCompute(key string, compute func() HealthScore) HealthScore {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries == nil {
		c.entries = make(map[string]HealthScore)
	}
	if s, ok := c.entries[key]; ok {
		return s
	}
	s := compute()
	c.entries[key] = s
	return s
}

// Len returns the number of cached datasets.
func (c *HealthCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
