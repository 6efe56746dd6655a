// Package metadata parses program meta-data files into sim operations.
//
// A file looks like:
//
//	Start Program Meta-Data Code:
//	S{begin}0; A{begin}0; P{run}11; M{allocate}2;
//	O{monitor}7; I{hard drive}8; A{end}0; S{end}0.
//	End Program Meta-Data Code.
//
// Operations are separated by ';' and the list ends with '.'. Descriptors are
// not checked here; Operation.Validate does that at execution time, so an
// unknown descriptor surfaces as the simulator's run-aborting error line.
package metadata

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/opsim/opsim/sim"
)

const (
	headerLine = "Start Program Meta-Data Code:"
	footerLine = "End Program Meta-Data Code."
)

var token = regexp.MustCompile(`^([A-Za-z])\s*\{([^{}]*)\}\s*(-?\d+)$`)

// codeCategories maps single-letter codes to categories. S and A are
// resolved against their descriptor in categoryFor.
var codeCategories = map[byte]sim.Category{
	'P': sim.CategoryRun,
	'I': sim.CategoryInput,
	'O': sim.CategoryOutput,
	'M': sim.CategoryMemory,
	'D': sim.CategoryOutputDevice,
}

func categoryFor(code byte, descriptor string) (sim.Category, bool) {
	switch code {
	case 'S':
		if descriptor == sim.DescriptorEnd {
			return sim.CategoryProcEnd, true
		}
		return sim.CategoryProcStart, true
	case 'A':
		if descriptor == sim.DescriptorEnd {
			return sim.CategoryAppEnd, true
		}
		return sim.CategoryAppStart, true
	}
	cat, ok := codeCategories[code]
	return cat, ok
}

// ParseOperation parses a single token such as "I{hard drive}8".
func ParseOperation(tok string) (sim.Operation, error) {
	m := token.FindStringSubmatch(strings.TrimSpace(tok))
	if m == nil {
		return sim.Operation{}, fmt.Errorf("malformed operation %q", tok)
	}
	code := strings.ToUpper(m[1])[0]
	descriptor := strings.TrimSpace(m[2])
	cat, ok := categoryFor(code, descriptor)
	if !ok {
		return sim.Operation{}, fmt.Errorf("unknown meta-data code %q in %q", m[1], tok)
	}
	cost, err := strconv.Atoi(m[3])
	if err != nil {
		return sim.Operation{}, fmt.Errorf("bad cycle count in %q: %w", tok, err)
	}
	return sim.Operation{Category: cat, Descriptor: descriptor, Cost: cost}, nil
}

// Parse reads a meta-data stream. The header and footer lines are optional;
// anything after the terminating '.' is ignored.
func Parse(r io.Reader) ([]sim.Operation, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading meta-data: %w", err)
	}
	body := string(data)
	if i := strings.Index(body, headerLine); i >= 0 {
		body = body[i+len(headerLine):]
	}
	if i := strings.Index(body, footerLine); i >= 0 {
		body = body[:i]
	}
	body, _, terminated := strings.Cut(body, ".")
	if !terminated {
		return nil, fmt.Errorf("meta-data is not terminated by '.'")
	}

	var ops []sim.Operation
	for i, tok := range strings.Split(body, ";") {
		if strings.TrimSpace(tok) == "" {
			continue
		}
		op, err := ParseOperation(tok)
		if err != nil {
			return nil, fmt.Errorf("operation %d: %w", i+1, err)
		}
		ops = append(ops, op)
	}
	if len(ops) == 0 {
		return nil, fmt.Errorf("meta-data contains no operations")
	}
	return ops, nil
}

// LoadFile parses the meta-data file at path.
func LoadFile(path string) ([]sim.Operation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening meta-data file: %w", err)
	}
	defer f.Close()
	ops, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ops, nil
}
