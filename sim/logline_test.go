package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatLine_PrefixOnlyForNonBoundary(t *testing.T) {
	run := op(CategoryRun, DescriptorRun, 5)
	boundary := op(CategoryAppStart, DescriptorBegin, 0)

	assert.Equal(t, "0.050001 - Process 3: end processing action", FormatLine(0.050001, 3, run, "end processing action"))
	assert.Equal(t, "1.500000 - OS: preparing process 3", FormatLine(1.5, 3, boundary, "OS: preparing process 3"))
}

func TestParseLogLine_RoundTripRunOperation(t *testing.T) {
	// GIVEN the start and end phrases of a CPU operation in process 4
	run := op(CategoryRun, DescriptorRun, 20)
	startLine := FormatLine(0.25, 4, run, run.StartPhrase(4))
	endLine := FormatLine(0.27, 4, run, run.EndPhrase(""))

	for i, line := range []string{startLine, endLine} {
		// WHEN the line is parsed back
		ll, err := ParseLogLine(line)
		require.NoError(t, err)

		// THEN the process id and descriptor are recovered
		got, isStart, err := ll.Operation()
		require.NoError(t, err)
		assert.Equal(t, 4, ll.ProcessID)
		assert.Equal(t, CategoryRun, got.Category)
		assert.Equal(t, run.Descriptor, got.Descriptor)
		assert.Equal(t, i == 0, isStart)
	}
}

func TestParseLogLine_RoundTripIOAndMemory(t *testing.T) {
	tests := []struct {
		op     Operation
		suffix string
	}{
		{op(CategoryInput, DeviceHardDrive, 1), " on HDD 2"},
		{op(CategoryOutput, DevicePrinter, 1), " on PRNTR 0"},
		{op(CategoryOutput, DeviceMonitor, 1), ""},
		{op(CategoryMemory, DescriptorAllocate, 1), "000000A0"},
		{op(CategoryMemory, DescriptorBlock, 1), ""},
	}
	for _, tc := range tests {
		t.Run(tc.op.String(), func(t *testing.T) {
			ll, err := ParseLogLine(FormatLine(1, 2, tc.op, tc.op.EndPhrase(tc.suffix)))
			require.NoError(t, err)
			got, isStart, err := ll.Operation()
			require.NoError(t, err)
			assert.False(t, isStart)
			assert.Equal(t, tc.op.Category, got.Category)
			assert.Equal(t, tc.op.Descriptor, got.Descriptor)
		})
	}
}

func TestParseLogLine_BoundaryLineHasNoProcess(t *testing.T) {
	ll, err := ParseLogLine("0.000000 - Simulator program starting")
	require.NoError(t, err)
	assert.Equal(t, 0, ll.ProcessID)
	assert.Equal(t, "Simulator program starting", ll.Phrase)

	_, _, err = ll.Operation()
	assert.Error(t, err)
}

func TestParseLogLine_Malformed(t *testing.T) {
	_, err := ParseLogLine("no separator here")
	assert.Error(t, err)

	_, err = ParseLogLine("abc - Process 1: start processing action")
	assert.Error(t, err)
}
