// Package script parses and replays line-oriented ledger scripts.
//
// A script sets up a window and then lists operations:
//
//	# two pages of heap, then a fixed text mapping
//	window   0x1000 0x10000
//	capacity 8
//	reserve  2 front heap
//	insert   0x8000 0xa000 text
//	insert   0x9000 0xb000 data
//	expect-error overlap
package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/joshuapare/pageledger/addr"
	"github.com/joshuapare/pageledger/ledger"
	"github.com/joshuapare/pageledger/pkg/vmmap"
)

// Op is the kind of a script step.
type Op uint8

const (
	OpInsert  Op = iota + 1 // Record a caller-chosen range
	OpReserve               // Find room and record it
	OpFind                  // Find room without recording it
)

func (o Op) String() string {
	switch o {
	case OpInsert:
		return DirInsert
	case OpReserve:
		return DirReserve
	case OpFind:
		return DirFind
	default:
		return fmt.Sprintf("Op(%d)", uint8(o))
	}
}

// Step is one operation of a script.
type Step struct {
	Line   int       // 1-based source line
	Op     Op        // Operation kind
	Limits addr.Line // OpInsert: the range to record
	Pages  uint64    // OpReserve, OpFind: length in pages
	Front  bool      // OpReserve, OpFind: search from the low end
	Tag    string    // Tag value, meaningful when Tagged
	Tagged bool      // Whether a tag was given

	// Expect, when non-nil, is the error the step must fail with.
	Expect error
}

// Script is a parsed script.
type Script struct {
	Window   addr.Line
	Capacity int
	Gap      ledger.GapCheck
	Steps    []Step
}

// ParseError reports a malformed script line.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("script line %d: %s", e.Line, e.Msg)
}

// errorKinds maps expect-error arguments to the errors they name.
var errorKinds = map[string]error{
	"invalid-region":  ledger.ErrInvalidRegion,
	"overlap":         ledger.ErrOverlap,
	"out-of-capacity": ledger.ErrOutOfCapacity,
	"out-of-space":    ledger.ErrOutOfSpace,
	"unaligned":       vmmap.ErrUnaligned,
}

// ErrorKind returns the expect-error name for err, or "" if err is not one
// of the named kinds.
func ErrorKind(err error) string {
	for name, target := range errorKinds {
		if errors.Is(err, target) {
			return name
		}
	}
	return ""
}

// Parse reads a script from r.
//
// Input is UTF-8. A byte-order mark switches decoding to UTF-16 (either
// endianness), so scripts saved by Windows editors parse as-is.
func Parse(r io.Reader) (*Script, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	scanner := bufio.NewScanner(transform.NewReader(r, decoder))
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), ScannerMaxLineSize)

	s := &Script{Capacity: DefaultCapacity}
	haveWindow := false
	lineNo := 0

	for scanner.Scan() {
		lineNo++

		line := scanner.Text()
		if i := strings.Index(line, CommentPrefix); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		fail := func(format string, args ...any) error {
			return &ParseError{Line: lineNo, Msg: fmt.Sprintf(format, args...)}
		}

		dir, args := fields[0], fields[1:]
		switch dir {
		case DirWindow:
			if haveWindow {
				return nil, fail("duplicate %s", DirWindow)
			}
			if len(s.Steps) > 0 {
				return nil, fail("%s must precede operations", DirWindow)
			}
			if len(args) != 2 {
				return nil, fail("usage: %s <start> <end>", DirWindow)
			}
			start, end, err := parseRange(args[0], args[1])
			if err != nil {
				return nil, fail("%v", err)
			}
			s.Window = addr.NewLine(start, end)
			haveWindow = true

		case DirCapacity:
			if len(s.Steps) > 0 {
				return nil, fail("%s must precede operations", DirCapacity)
			}
			if len(args) != 1 {
				return nil, fail("usage: %s <n>", DirCapacity)
			}
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return nil, fail("capacity must be a positive integer, got %q", args[0])
			}
			s.Capacity = n

		case DirGap:
			if len(args) != 1 {
				return nil, fail("usage: %s exact|span", DirGap)
			}
			switch args[0] {
			case ledger.GapExact.String():
				s.Gap = ledger.GapExact
			case ledger.GapSpan.String():
				s.Gap = ledger.GapSpan
			default:
				return nil, fail("unknown gap check %q", args[0])
			}

		case DirInsert:
			if !haveWindow {
				return nil, fail("%s before %s", DirInsert, DirWindow)
			}
			if len(args) < 2 || len(args) > 3 {
				return nil, fail("usage: %s <start> <end> [tag]", DirInsert)
			}
			start, end, err := parseRange(args[0], args[1])
			if err != nil {
				return nil, fail("%v", err)
			}
			step := Step{Line: lineNo, Op: OpInsert, Limits: addr.NewLine(start, end)}
			if len(args) == 3 {
				step.Tag, step.Tagged = args[2], true
			}
			s.Steps = append(s.Steps, step)

		case DirReserve, DirFind:
			if !haveWindow {
				return nil, fail("%s before %s", dir, DirWindow)
			}
			maxArgs := 3
			if dir == DirFind {
				maxArgs = 2
			}
			if len(args) < 2 || len(args) > maxArgs {
				if dir == DirFind {
					return nil, fail("usage: %s <pages> front|back", DirFind)
				}
				return nil, fail("usage: %s <pages> front|back [tag]", DirReserve)
			}
			pages, err := strconv.ParseUint(args[0], 0, 64)
			if err != nil || pages == 0 {
				return nil, fail("bad page count %q", args[0])
			}
			front, err := parseDirection(args[1])
			if err != nil {
				return nil, fail("%v", err)
			}
			step := Step{Line: lineNo, Op: OpReserve, Pages: pages, Front: front}
			if dir == DirFind {
				step.Op = OpFind
			}
			if len(args) == 3 {
				step.Tag, step.Tagged = args[2], true
			}
			s.Steps = append(s.Steps, step)

		case DirExpectError:
			if len(s.Steps) == 0 {
				return nil, fail("%s with no preceding operation", DirExpectError)
			}
			if len(args) != 1 {
				return nil, fail("usage: %s <kind>", DirExpectError)
			}
			target, ok := errorKinds[args[0]]
			if !ok {
				return nil, fail("unknown error kind %q", args[0])
			}
			last := &s.Steps[len(s.Steps)-1]
			if last.Expect != nil {
				return nil, fail("step on line %d already has an expected error", last.Line)
			}
			last.Expect = target

		default:
			return nil, fail("unknown directive %q", dir)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning script: %w", err)
	}
	if !haveWindow {
		return nil, &ParseError{Line: lineNo, Msg: "missing " + DirWindow}
	}

	return s, nil
}

func parseRange(startStr, endStr string) (addr.Address, addr.Address, error) {
	start, err := strconv.ParseUint(startStr, 0, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad address %q", startStr)
	}
	end, err := strconv.ParseUint(endStr, 0, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad address %q", endStr)
	}
	return addr.Address(start), addr.Address(end), nil
}

func parseDirection(s string) (bool, error) {
	switch s {
	case DirFront:
		return true, nil
	case DirBack:
		return false, nil
	default:
		return false, fmt.Errorf("direction must be %s or %s, got %q", DirFront, DirBack, s)
	}
}
