package script

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/joshuapare/pageledger/addr"
	"github.com/joshuapare/pageledger/ledger"
	"github.com/joshuapare/pageledger/pkg/vmmap"
)

// ErrUnexpected is returned by Report.Err when a step did not behave as the
// script said it would.
var ErrUnexpected = errors.New("script: unexpected result")

// Result is the outcome of one step.
type Result struct {
	Step  Step
	Range addr.Line // Range placed or found; zero for inserts and failures
	Err   error     // Error returned by the operation, if any

	// Unexpected is set when Err does not match Step.Expect.
	Unexpected bool
}

// Report is the outcome of replaying a script.
type Report struct {
	Results  []Result
	Regions  []ledger.Region[string]
	Stats    vmmap.Stats
	Failures int

	// Stopped is set when replay ended early at the first unexpected result.
	Stopped bool

	// Map is the map as the replay left it.
	Map *vmmap.Map[string]
}

// Err returns ErrUnexpected wrapped with the first failing line, or nil.
func (r *Report) Err() error {
	for _, res := range r.Results {
		if res.Unexpected {
			return fmt.Errorf("line %d (%d failing): %w", res.Step.Line, r.Failures, ErrUnexpected)
		}
	}
	return nil
}

// RunOptions configures Run.
type RunOptions struct {
	// KeepGoing replays every step even after an unexpected result.
	KeepGoing bool

	// PageBitmap enables the map's per-page occupancy bitmap.
	PageBitmap bool

	// Logger receives map events. nil discards them.
	Logger *slog.Logger
}

// Run replays s against a fresh map. The returned error is non-nil only when
// the map itself cannot be built; step outcomes are in the report.
func Run(s *Script, opts *RunOptions) (*Report, error) {
	if opts == nil {
		opts = &RunOptions{}
	}

	m, err := vmmap.New[string](s.Window, &vmmap.Options{
		Capacity:   s.Capacity,
		Gap:        s.Gap,
		PageBitmap: opts.PageBitmap,
		Logger:     opts.Logger,
	})
	if err != nil {
		return nil, err
	}

	rep := &Report{Results: make([]Result, 0, len(s.Steps)), Map: m}
	for _, step := range s.Steps {
		res := apply(m, step)
		rep.Results = append(rep.Results, res)
		if res.Unexpected {
			rep.Failures++
			if !opts.KeepGoing {
				rep.Stopped = true
				break
			}
		}
	}

	rep.Regions = m.Regions()
	rep.Stats = m.Stats()
	return rep, nil
}

func apply(m *vmmap.Map[string], step Step) Result {
	res := Result{Step: step}

	switch step.Op {
	case OpInsert:
		r := ledger.Untagged[string](step.Limits)
		if step.Tagged {
			r = ledger.Tagged(step.Limits, step.Tag)
		}
		res.Err = m.Insert(r)
	case OpReserve:
		if step.Tagged {
			res.Range, res.Err = m.Reserve(step.Pages, step.Front, step.Tag)
		} else {
			res.Range, res.Err = m.ReserveUntagged(step.Pages, step.Front)
		}
	case OpFind:
		res.Range, res.Err = m.FindFree(step.Pages, step.Front)
	default:
		res.Err = fmt.Errorf("script: unknown op %s", step.Op)
	}

	if step.Expect != nil {
		res.Unexpected = !errors.Is(res.Err, step.Expect)
	} else {
		res.Unexpected = res.Err != nil
	}
	return res
}
