package cmd

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/opsim/opsim/sim"
)

// CycleTimes holds msec-per-cycle values for every device.
type CycleTimes struct {
	Processor int `yaml:"processor"`
	Monitor   int `yaml:"monitor"`
	HardDrive int `yaml:"hard_drive"`
	Printer   int `yaml:"printer"`
	Keyboard  int `yaml:"keyboard"`
	Memory    int `yaml:"memory"`
	Mouse     int `yaml:"mouse"`
	Speaker   int `yaml:"speaker"`
}

// Config represents a simulator configuration file.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type Config struct {
	Version           string     `yaml:"version"`
	MetadataFile      string     `yaml:"metadata_file"`
	CycleTimes        CycleTimes `yaml:"cycle_times"`
	SystemMemory      int        `yaml:"system_memory_kb"`
	MemoryBlockSize   int        `yaml:"memory_block_size_kb"`
	PrinterQuantity   int        `yaml:"printer_quantity"`
	HardDriveQuantity int        `yaml:"hard_drive_quantity"`
	Log               string     `yaml:"log"`
	LogFilePath       string     `yaml:"log_file_path"`
	LogBoundaries     bool       `yaml:"log_boundaries"`
	Timer             string     `yaml:"timer"`
}

// SimConfig converts the file representation into the engine's config.
// Devices with a zero cycle time are left out, so operations on them fail
// validation.
func (c Config) SimConfig() sim.SimConfig {
	times := map[string]int{
		sim.DeviceProcessor: c.CycleTimes.Processor,
		sim.DeviceMonitor:   c.CycleTimes.Monitor,
		sim.DeviceHardDrive: c.CycleTimes.HardDrive,
		sim.DevicePrinter:   c.CycleTimes.Printer,
		sim.DeviceKeyboard:  c.CycleTimes.Keyboard,
		sim.DeviceMemory:    c.CycleTimes.Memory,
		sim.DeviceMouse:     c.CycleTimes.Mouse,
		sim.DeviceSpeaker:   c.CycleTimes.Speaker,
	}
	for dev, ms := range times {
		if ms == 0 {
			delete(times, dev)
		}
	}
	return sim.SimConfig{
		CycleTimes:      times,
		SystemMemory:    c.SystemMemory,
		MemoryBlockSize: c.MemoryBlockSize,
		PrinterCount:    c.PrinterQuantity,
		HardDriveCount:  c.HardDriveQuantity,
		LogDestination:  sim.LogDestination(c.Log),
		LogFilePath:     c.LogFilePath,
		LogBoundaries:   c.LogBoundaries,
		TimerMode:       sim.TimerMode(c.Timer),
	}
}

// loadConfig reads a configuration file. Files ending in .conf use the
// legacy line format; anything else is parsed as YAML.
func loadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if filepath.Ext(path) == ".conf" {
		cfg, err = parseLegacyConfig(data)
	} else {
		cfg, err = parseYAMLConfig(data)
	}
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// parseYAMLConfig decodes YAML with strict field checking: typos must cause errors.
func parseYAMLConfig(data []byte) (Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config YAML: %w", err)
	}
	return cfg, nil
}

var legacyLine = regexp.MustCompile(`^([^:{]+?)\s*(?:\{([^}]*)\})?\s*:\s*(.*)$`)

// memoryUnits scales system memory values to kbytes.
var memoryUnits = map[string]int{
	"":       1,
	"kbytes": 1,
	"mbytes": 1024,
	"gbytes": 1024 * 1024,
}

// parseLegacyConfig reads the line-oriented format:
//
//	Start Simulator Configuration File
//	Version/Phase: 2.0
//	File Path: Test_2.mdf
//	Processor cycle time {msec}: 10
//	...
//	Log: Log to Both
//	Log File Path: logfile_1.lgf
//	End Simulation Configuration File
//
// Unknown keys are errors, matching the YAML decoder's strictness.
func parseLegacyConfig(data []byte) (Config, error) {
	var cfg Config
	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "Start Simulator Configuration") ||
			strings.HasPrefix(line, "End Simulation Configuration") {
			continue
		}
		m := legacyLine.FindStringSubmatch(line)
		if m == nil {
			return Config{}, fmt.Errorf("line %d: expected \"key: value\", got %q", lineNo, line)
		}
		key, unit, value := strings.ToLower(strings.TrimSpace(m[1])), strings.ToLower(m[2]), strings.TrimSpace(m[3])
		if err := cfg.setLegacy(key, unit, value); err != nil {
			return Config{}, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) setLegacy(key, unit, value string) error {
	switch key {
	case "version/phase":
		c.Version = value
		return nil
	case "file path":
		c.MetadataFile = value
		return nil
	case "log":
		c.Log = value
		return nil
	case "log file path":
		c.LogFilePath = value
		return nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%s: expected an integer, got %q", key, value)
	}
	switch key {
	case "monitor display time":
		c.CycleTimes.Monitor = n
	case "processor cycle time":
		c.CycleTimes.Processor = n
	case "hard drive cycle time":
		c.CycleTimes.HardDrive = n
	case "printer cycle time":
		c.CycleTimes.Printer = n
	case "keyboard cycle time":
		c.CycleTimes.Keyboard = n
	case "memory cycle time":
		c.CycleTimes.Memory = n
	case "mouse cycle time":
		c.CycleTimes.Mouse = n
	case "speaker cycle time":
		c.CycleTimes.Speaker = n
	case "system memory", "memory block size":
		scale, ok := memoryUnits[unit]
		if !ok {
			return fmt.Errorf("%s: unknown unit %q", key, unit)
		}
		if key == "system memory" {
			c.SystemMemory = n * scale
		} else {
			c.MemoryBlockSize = n * scale
		}
	case "printer quantity":
		c.PrinterQuantity = n
	case "hard drive quantity":
		c.HardDriveQuantity = n
	default:
		return fmt.Errorf("unknown configuration key %q", key)
	}
	return nil
}
