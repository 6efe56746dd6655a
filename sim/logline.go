package sim

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// FormatLine renders one execution log line: the clock in fixed-point
// seconds, " - ", a "Process N: " prefix for non-boundary operations, then
// the phrase.
func FormatLine(clock float64, processID int, op Operation, phrase string) string {
	if op.IsBoundary() {
		return fmt.Sprintf("%f - %s", clock, phrase)
	}
	return fmt.Sprintf("%f - Process %d: %s", clock, processID, phrase)
}

// LogLine is a parsed execution log line.
type LogLine struct {
	Time      float64
	ProcessID int // 0 for lines without a process prefix
	Phrase    string
}

var processPrefix = regexp.MustCompile(`^Process (\d+): (.*)$`)

// ParseLogLine is the inverse of FormatLine.
func ParseLogLine(line string) (LogLine, error) {
	ts, rest, ok := strings.Cut(line, " - ")
	if !ok {
		return LogLine{}, fmt.Errorf("log line %q: missing timestamp separator", line)
	}
	t, err := strconv.ParseFloat(ts, 64)
	if err != nil {
		return LogLine{}, fmt.Errorf("log line %q: bad timestamp: %w", line, err)
	}
	ll := LogLine{Time: t, Phrase: rest}
	if m := processPrefix.FindStringSubmatch(rest); m != nil {
		ll.ProcessID, _ = strconv.Atoi(m[1])
		ll.Phrase = m[2]
	}
	return ll, nil
}

var (
	ioPhrase     = regexp.MustCompile(`^(?:start|end) (.+) (input|output)(?: on (?:HDD|PRNTR) \d+)?$`)
	memAllocated = regexp.MustCompile(`^memory allocated at 0x[0-9A-F]+$`)
)

// phraseOperation recovers the category and descriptor a phrase was
// rendered from, and whether it is a start phrase.
func phraseOperation(phrase string) (cat Category, descriptor string, start bool, ok bool) {
	switch phrase {
	case "start processing action":
		return CategoryRun, DescriptorRun, true, true
	case "end processing action":
		return CategoryRun, DescriptorRun, false, true
	case "allocating memory":
		return CategoryMemory, DescriptorAllocate, true, true
	case "start memory blocking":
		return CategoryMemory, DescriptorBlock, true, true
	case "end memory blocking":
		return CategoryMemory, DescriptorBlock, false, true
	}
	if memAllocated.MatchString(phrase) {
		return CategoryMemory, DescriptorAllocate, false, true
	}
	if m := ioPhrase.FindStringSubmatch(phrase); m != nil {
		cat = CategoryInput
		if m[2] == "output" {
			cat = CategoryOutput
		}
		return cat, m[1], strings.HasPrefix(phrase, "start "), true
	}
	return "", "", false, false
}

// Operation recovers the category and descriptor of a non-boundary line.
// Cost is not part of the log and is left zero.
func (ll LogLine) Operation() (op Operation, start bool, err error) {
	cat, desc, start, ok := phraseOperation(ll.Phrase)
	if !ok {
		return Operation{}, false, fmt.Errorf("unrecognized phrase %q", ll.Phrase)
	}
	return Operation{Category: cat, Descriptor: desc}, start, nil
}
