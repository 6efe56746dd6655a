package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsim/opsim/sim"
)

const legacyConfig = `Start Simulator Configuration File
Version/Phase: 2.0
File Path: Test_2.mdf
Monitor display time {msec}: 20
Processor cycle time {msec}: 10
Mouse cycle time {msec}: 25
Hard drive cycle time {msec}: 15
Keyboard cycle time {msec}: 50
Memory cycle time {msec}: 30
Printer cycle time {msec}: 10
Speaker cycle time {msec}: 15
System memory {Mbytes}: 2
Memory block size {kbytes}: 128
Printer quantity: 2
Hard drive quantity: 3
Log: Log to Both
Log File Path: logfile_1.lgf
End Simulation Configuration File
`

const yamlConfig = `version: "2.0"
metadata_file: Test_2.mdf
cycle_times:
  processor: 10
  monitor: 20
  hard_drive: 15
  printer: 10
  keyboard: 50
  memory: 30
  mouse: 25
  speaker: 15
system_memory_kb: 2048
memory_block_size_kb: 128
printer_quantity: 2
hard_drive_quantity: 3
log: Log to Both
log_file_path: logfile_1.lgf
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_LegacyAndYAML_Equivalent(t *testing.T) {
	// GIVEN the same configuration in both formats
	legacy, err := loadConfig(writeFile(t, "config_1.conf", legacyConfig))
	require.NoError(t, err)
	yml, err := loadConfig(writeFile(t, "config_1.yaml", yamlConfig))
	require.NoError(t, err)

	// THEN they decode to the same Config
	assert.Equal(t, yml, legacy)
	assert.Equal(t, 2048, legacy.SystemMemory, "Mbytes scaled to kbytes")
	assert.Equal(t, "Test_2.mdf", legacy.MetadataFile)
	assert.Equal(t, "Log to Both", legacy.Log)
}

func TestLoadConfig_YAML_UnknownFieldRejected(t *testing.T) {
	_, err := loadConfig(writeFile(t, "bad.yaml", yamlConfig+"printer_qty: 4\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "printer_qty")
}

func TestLoadConfig_Legacy_Errors(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"unknown key", "Scanner cycle time {msec}: 10", "unknown configuration key"},
		{"non-integer", "Printer quantity: two", "expected an integer"},
		{"unknown unit", "System memory {bits}: 4", "unknown unit"},
		{"no separator", "Log to Both", "expected \"key: value\""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := loadConfig(writeFile(t, "c.conf", tc.line+"\n"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestConfig_SimConfig_MapsFieldsAndDropsZeroCycleTimes(t *testing.T) {
	cfg, err := parseYAMLConfig([]byte(yamlConfig))
	require.NoError(t, err)
	cfg.CycleTimes.Speaker = 0
	cfg.Timer = "sleep"

	sc := cfg.SimConfig()

	assert.Equal(t, 10, sc.CycleTimes[sim.DeviceProcessor])
	assert.Equal(t, 15, sc.CycleTimes[sim.DeviceHardDrive])
	_, ok := sc.CycleTime(sim.DeviceSpeaker)
	assert.False(t, ok)
	assert.Equal(t, 2048, sc.SystemMemory)
	assert.Equal(t, 128, sc.MemoryBlockSize)
	assert.Equal(t, 2, sc.PrinterCount)
	assert.Equal(t, 3, sc.HardDriveCount)
	assert.Equal(t, sim.LogToBoth, sc.LogDestination)
	assert.Equal(t, sim.TimerSleep, sc.TimerMode)
	assert.NoError(t, sc.Validate())
}
