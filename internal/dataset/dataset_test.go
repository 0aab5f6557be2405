// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: An AR(2)-based Computational Analysis of Circadian Gene Persistence
// Class: 02-613 at Caregie Mellon University

package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		header string
		index  int
		want   float64
	}{
		{"ZT04", 0, 4},
		{"CT12", 3, 12},
		{"6.5", 1, 6.5},
		{"t-2", 0, -2},
		{"sampleA", 7, 7},
		{"", 2, 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseTime(tt.header, tt.index), tt.header)
	}
}

func TestRead(t *testing.T) {
	in := `gene,ZT0,ZT4,ZT8,ZT12,ZT16,ZT20
Arntl,1,2,3,4,5,6
"Per2",6,5,4,3,2,1
Dbp,1,NA,3,4,5,6
Cry1,1,2,x,4,5,6
Nr1d1,1,2,3,4,5

Tef,0.5,0.25,1e-1,2,3,4
`
	ds, err := Read(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 4, 8, 12, 16, 20}, ds.Times)
	assert.Equal(t, []string{"Arntl", "Per2", "Tef"}, ds.Order)
	assert.Equal(t, []string{"Dbp", "Cry1", "Nr1d1"}, ds.Dropped)

	per2 := ds.Genes["Per2"]
	require.NotNil(t, per2)
	assert.Equal(t, "Per2", per2.Name)
	assert.Equal(t, []float64{6, 5, 4, 3, 2, 1}, per2.Values)
	assert.Equal(t, 4.0, per2.SamplingInterval())
	assert.Equal(t, 0.1, ds.Genes["Tef"].Values[2])

	values := ds.Values()
	assert.Len(t, values, 3)
	assert.Equal(t, ds.Genes["Arntl"].Values, values["Arntl"])
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"header only gene", "gene\n"},
		{"no complete rows", "gene,a,b\nx,1,\n"},
		{"duplicate", "gene,a,b\nx,1,2\nx,3,4\n"},
		{"empty symbol", "gene,a,b\n,1,2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.in))
			assert.Error(t, err)
		})
	}
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("gene,0,1,2,3,4\nArntl,1,2,3,2,1\n"), 0o644))

	ds, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Arntl"}, ds.Order)

	_, err = LoadCSV(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestReadGroups(t *testing.T) {
	g, err := ReadGroups(strings.NewReader("gene,group\nArntl,clock\nPer2,clock\nDbp,target\nArntl,clock\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Arntl", "Per2"}, g.Members("clock"))
	assert.Equal(t, []string{"Dbp"}, g.Members("target"))
	assert.Equal(t, []string{"clock", "target"}, g.Labels())

	_, err = ReadGroups(strings.NewReader("Arntl,clock\nArntl,target\n"))
	assert.Error(t, err)
	_, err = ReadGroups(strings.NewReader("gene,group\n"))
	assert.Error(t, err)
	_, err = ReadGroups(strings.NewReader("Arntl\n"))
	assert.Error(t, err)
}

func TestLoadGroups(t *testing.T) {
	path := filepath.Join(t.TempDir(), "groups.csv")
	require.NoError(t, os.WriteFile(path, []byte("Arntl,clock\nDbp,target\n"), 0o644))
	g, err := LoadGroups(path)
	require.NoError(t, err)
	assert.Equal(t, "target", g["Dbp"])
}
