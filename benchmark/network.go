// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: An AR(2)-based Computational Analysis of Circadian Gene Persistence
// Class: 02-613 at Caregie Mellon University

package benchmark

import (
	"fmt"
	"math"
	"strings"
)

// HubDegrees is the number of regulatory edges of each core clock gene in the
// curated transcriptional network.
var HubDegrees = map[string]int{
	"arntl":   12,
	"clock":   10,
	"npas2":   8,
	"per1":    9,
	"per2":    11,
	"per3":    6,
	"cry1":    10,
	"cry2":    8,
	"nr1d1":   9,
	"nr1d2":   7,
	"rora":    6,
	"dbp":     7,
	"tef":     5,
	"hlf":     4,
	"nfil3":   6,
	"bhlhe40": 5,
	"bhlhe41": 4,
	"ciart":   5,
}

var geneAliases = map[string]string{
	"bmal1": "arntl",
}

// Degree looks up a gene's hub degree, ignoring case.
func Degree(gene string) (int, bool) {
	key := strings.ToLower(strings.TrimSpace(gene))
	if alias, ok := geneAliases[key]; ok {
		key = alias
	}
	d, ok := HubDegrees[key]
	return d, ok
}

// NetworkAdapter checks that highly connected hubs are the most persistent.
type NetworkAdapter struct{}

// Name implements Adapter.
func (n *NetworkAdapter) Name() string { return "network" }

// Evaluate implements Adapter.
func (n *NetworkAdapter) Evaluate(genes []GeneSeries) Result {
	const (
		question = "Are network hubs the most persistent genes?"
		expected = "positive rank correlation between hub degree and eigenvalue"
	)
	var degrees, eigen []float64
	for _, g := range genes {
		d, ok := Degree(g.Gene)
		if !ok || math.IsNaN(g.Eigenvalue) || math.IsInf(g.Eigenvalue, 0) {
			continue
		}
		degrees = append(degrees, float64(d))
		eigen = append(eigen, g.Eigenvalue)
	}
	if len(degrees) < 3 {
		return insufficient(n.Name(), question, expected,
			fmt.Sprintf("%d genes with known hub degree, need 3", len(degrees)))
	}
	rho, err := spearman(degrees, eigen)
	if err != nil {
		return insufficient(n.Name(), question, expected, err.Error())
	}

	score := correlationScore(rho)
	return Result{
		Name:     n.Name(),
		Question: question,
		Expected: expected,
		Actual:   fmt.Sprintf("Spearman rho = %.3f over %d hub genes", rho, len(degrees)),
		Score:    score,
		Status:   StatusFor(score),
		Details: map[string]float64{
			"rho":   rho,
			"genes": float64(len(degrees)),
		},
	}
}
