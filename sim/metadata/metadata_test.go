package metadata

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsim/opsim/sim"
)

const sampleFile = `Start Program Meta-Data Code:
S{begin}0; A{begin}0; P{run}11; M{allocate}2;
O{monitor}7; I{hard drive}8; O{printer}20;
M{block}6; A{end}0; S{end}0.
End Program Meta-Data Code.
`

func TestParse_SampleFile(t *testing.T) {
	// GIVEN a well-formed meta-data file
	// WHEN parsed
	ops, err := Parse(strings.NewReader(sampleFile))
	require.NoError(t, err)

	// THEN every operation is recovered in order with its category
	assert.Equal(t, []sim.Operation{
		{Category: sim.CategoryProcStart, Descriptor: "begin", Cost: 0},
		{Category: sim.CategoryAppStart, Descriptor: "begin", Cost: 0},
		{Category: sim.CategoryRun, Descriptor: "run", Cost: 11},
		{Category: sim.CategoryMemory, Descriptor: "allocate", Cost: 2},
		{Category: sim.CategoryOutput, Descriptor: "monitor", Cost: 7},
		{Category: sim.CategoryInput, Descriptor: "hard drive", Cost: 8},
		{Category: sim.CategoryOutput, Descriptor: "printer", Cost: 20},
		{Category: sim.CategoryMemory, Descriptor: "block", Cost: 6},
		{Category: sim.CategoryAppEnd, Descriptor: "end", Cost: 0},
		{Category: sim.CategoryProcEnd, Descriptor: "end", Cost: 0},
	}, ops)
}

func TestParse_SegmentsIntoOneProcess(t *testing.T) {
	ops, err := Parse(strings.NewReader(sampleFile))
	require.NoError(t, err)
	assert.Len(t, sim.SplitProcesses(ops), 1)
}

func TestParse_WithoutHeaderFooter(t *testing.T) {
	ops, err := Parse(strings.NewReader("A{begin}0;P{run}3;A{end}0."))
	require.NoError(t, err)
	assert.Len(t, ops, 3)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"unterminated", "S{begin}0; A{begin}0", "not terminated"},
		{"unknown code", "S{begin}0; X{run}3.", "unknown meta-data code"},
		{"missing braces", "S{begin}0; Prun3.", "malformed operation"},
		{"missing cycles", "S{begin}0; P{run}.", "operation 2"},
		{"empty", ".", "no operations"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestParseOperation_UnknownDescriptorLeftForValidation(t *testing.T) {
	// Descriptor checks belong to sim.Operation.Validate, not the parser.
	op, err := ParseOperation(" P{walk}4 ")
	require.NoError(t, err)
	assert.Equal(t, sim.Operation{Category: sim.CategoryRun, Descriptor: "walk", Cost: 4}, op)
	assert.Error(t, op.Validate(sim.SimConfig{CycleTimes: map[string]int{sim.DeviceProcessor: 1}}))
}

func TestParseOperation_NegativeCostParsed(t *testing.T) {
	op, err := ParseOperation("P{run}-2")
	require.NoError(t, err)
	assert.Equal(t, -2, op.Cost)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.mdf")
	require.NoError(t, os.WriteFile(path, []byte(sampleFile), 0644))

	ops, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, ops, 10)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.mdf"))
	assert.Error(t, err)
}
