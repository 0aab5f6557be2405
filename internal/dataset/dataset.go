// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: An AR(2)-based Computational Analysis of Circadian Gene Persistence
// Class: 02-613 at Caregie Mellon University

// Package dataset loads gene expression tables and group assignments from CSV.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"Circadian_Persistence_AR_Project/series"
)

// Dataset is a gene-by-timepoint expression table.
type Dataset struct {
	// Series per gene symbol
	Genes map[string]*series.TimeSeries
	// Gene symbols in file order
	Order []string
	// Sampling times parsed from the header
	Times []float64
	// Rows dropped for missing or unparsable values
	Dropped []string
}

// Values returns the gene -> values map the resampling engines consume.
func (d *Dataset) Values() map[string][]float64 {
	out := make(map[string][]float64, len(d.Genes))
	for name, ts := range d.Genes {
		out[name] = ts.Values
	}
	return out
}

var trailingNumber = regexp.MustCompile(`(-?\d+(?:\.\d+)?)\s*$`)

// ParseTime reads the sampling time from a column header such as "ZT04",
// "CT12" or "6.5". Headers without a trailing number use the column index.
func ParseTime(header string, index int) float64 {
	m := trailingNumber.FindStringSubmatch(strings.TrimSpace(header))
	if m == nil {
		return float64(index)
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return float64(index)
	}
	return v
}

// NormalizeGene trims a gene symbol and strips surrounding quotes.
func NormalizeGene(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"'`)
}

// LoadCSV loads a gene table from path.
func LoadCSV(path string) (*Dataset, error) {
	// 1. Open file
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	ds, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// Read parses a gene table with header gene,<t0>,<t1>,... and one gene per row.
// Rows with missing or non-numeric cells are dropped and listed in Dropped.
func Read(r io.Reader) (*Dataset, error) {
	// 1. Make CSV reader
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	// 2. Read header row
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("header needs a gene column and at least one timepoint, got %d columns", len(header))
	}
	times := make([]float64, len(header)-1)
	for j, h := range header[1:] {
		times[j] = ParseTime(h, j)
	}

	ds := &Dataset{Genes: make(map[string]*series.TimeSeries), Times: times}

	// 3. Read each gene row
	for row := 2; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row, err)
		}
		if len(record) == 1 && record[0] == "" {
			continue
		}

		gene := NormalizeGene(record[0])
		if gene == "" {
			return nil, fmt.Errorf("row %d: empty gene symbol", row)
		}
		if _, dup := ds.Genes[gene]; dup {
			return nil, fmt.Errorf("row %d: duplicate gene %q", row, gene)
		}

		values, ok := parseValues(record[1:], len(times))
		if !ok {
			ds.Dropped = append(ds.Dropped, gene)
			continue
		}
		ts, err := series.NewWithTime(gene, values, append([]float64(nil), times...))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		ds.Genes[gene] = ts
		ds.Order = append(ds.Order, gene)
	}

	if len(ds.Genes) == 0 {
		return nil, fmt.Errorf("no complete gene rows (%d dropped)", len(ds.Dropped))
	}
	return ds, nil
}

// parseValues reports false when a cell is missing, empty, "NA" or not finite.
func parseValues(cells []string, want int) ([]float64, bool) {
	if len(cells) != want {
		return nil, false
	}
	out := make([]float64, want)
	for j, s := range cells {
		s = strings.TrimSpace(s)
		if s == "" || strings.EqualFold(s, "na") {
			return nil, false
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, false
		}
		out[j] = v
	}
	return out, true
}

// Groups maps a gene symbol to its group label.
type Groups map[string]string

// Members returns the sorted genes labelled group.
func (g Groups) Members(group string) []string {
	var out []string
	for gene, label := range g {
		if label == group {
			out = append(out, gene)
		}
	}
	sort.Strings(out)
	return out
}

// Labels returns the distinct group labels, sorted.
func (g Groups) Labels() []string {
	seen := make(map[string]bool)
	var out []string
	for _, label := range g {
		if !seen[label] {
			seen[label] = true
			out = append(out, label)
		}
	}
	sort.Strings(out)
	return out
}

// LoadGroups reads a gene,group CSV. A header row whose first cell is "gene"
// is skipped.
func LoadGroups(path string) (Groups, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	g, err := ReadGroups(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// ReadGroups parses gene,group rows.
func ReadGroups(r io.Reader) (Groups, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	groups := make(Groups)
	for row := 1; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row, err)
		}
		if len(record) == 1 && record[0] == "" {
			continue
		}
		if len(record) < 2 {
			return nil, fmt.Errorf("row %d: expected gene,group", row)
		}
		gene, label := NormalizeGene(record[0]), strings.TrimSpace(record[1])
		if row == 1 && strings.EqualFold(gene, "gene") {
			continue
		}
		if gene == "" || label == "" {
			return nil, fmt.Errorf("row %d: empty gene or group", row)
		}
		if prev, dup := groups[gene]; dup && prev != label {
			return nil, fmt.Errorf("row %d: gene %q is in both %q and %q", row, gene, prev, label)
		}
		groups[gene] = label
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("no group assignments")
	}
	return groups, nil
}
