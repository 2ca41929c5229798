package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/joshuapare/pageledger/addr"
	"github.com/joshuapare/pageledger/internal/script"
	"github.com/joshuapare/pageledger/ledger"
	"github.com/joshuapare/pageledger/pkg/vmmap"
)

// loadScript parses the script at path; "-" reads standard input.
func loadScript(path string) (*script.Script, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open script: %w", err)
		}
		defer f.Close()
		r = f
	}

	s, err := script.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return s, nil
}

// describeStep renders a step the way it reads in a script.
func describeStep(step script.Step) string {
	var desc string
	switch step.Op {
	case script.OpInsert:
		desc = fmt.Sprintf("insert %s", step.Limits)
	case script.OpReserve, script.OpFind:
		dir := script.DirBack
		if step.Front {
			dir = script.DirFront
		}
		desc = fmt.Sprintf("%s %d %s", step.Op, step.Pages, dir)
	default:
		desc = step.Op.String()
	}
	if step.Tagged {
		desc += " " + step.Tag
	}
	return desc
}

// formatPages renders a page count with its size in bytes. Counts too large
// to express in bytes are shown as a bare page count.
func formatPages(pages uint64) string {
	size, ok := addr.CheckedPages(pages)
	if !ok {
		return fmt.Sprintf("%d pages", pages)
	}
	return fmt.Sprintf("%d pages (%s)", pages, humanize.IBytes(uint64(size)))
}

type stepView struct {
	Line     int    `json:"line"`
	Step     string `json:"step"`
	Range    string `json:"range,omitempty"`
	Error    string `json:"error,omitempty"`
	Kind     string `json:"kind,omitempty"`
	Expected string `json:"expected,omitempty"`
	OK       bool   `json:"ok"`
}

type regionView struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Pages uint64 `json:"pages"`
	Size  string `json:"size"`
	Tag   string `json:"tag,omitempty"`
}

type statsView struct {
	Regions     int    `json:"regions"`
	Capacity    int    `json:"capacity"`
	MappedPages uint64 `json:"mapped_pages"`
	FreePages   uint64 `json:"free_pages"`
	LargestGap  uint64 `json:"largest_gap_pages"`
}

func newStepView(res script.Result) stepView {
	v := stepView{
		Line: res.Step.Line,
		Step: describeStep(res.Step),
		OK:   !res.Unexpected,
	}
	if res.Err == nil && !res.Range.IsEmpty() {
		v.Range = res.Range.String()
	}
	if res.Err != nil {
		v.Error = res.Err.Error()
		v.Kind = script.ErrorKind(res.Err)
	}
	if res.Step.Expect != nil {
		v.Expected = script.ErrorKind(res.Step.Expect)
	}
	return v
}

func newRegionViews(regions []ledger.Region[string]) []regionView {
	views := make([]regionView, 0, len(regions))
	for _, r := range regions {
		v := regionView{
			Start: r.Limits.Start.String(),
			End:   r.Limits.End.String(),
			Pages: r.Limits.Len().Pages(),
			Size:  humanize.IBytes(uint64(r.Limits.Len())),
		}
		if r.Valid {
			v.Tag = r.Value
		}
		views = append(views, v)
	}
	return views
}

func newStatsView(s vmmap.Stats) statsView {
	return statsView{
		Regions:     s.Regions,
		Capacity:    s.Capacity,
		MappedPages: s.MappedPages,
		FreePages:   s.FreePages,
		LargestGap:  s.LargestGap.Pages(),
	}
}

// printRegions prints the region table and occupancy summary.
func printRegions(regions []ledger.Region[string], stats vmmap.Stats) {
	printInfo("\nRegions (%d of %d):\n", stats.Regions, stats.Capacity)
	if len(regions) == 0 {
		printInfo("  (none)\n")
	}
	for _, v := range newRegionViews(regions) {
		tag := v.Tag
		if tag == "" {
			tag = "-"
		}
		printInfo("  %-18s %-18s %6d pages %10s  %s\n", v.Start, v.End, v.Pages, v.Size, tag)
	}

	printInfo("\nOccupancy:\n")
	printInfo("  Mapped:      %s\n", formatPages(stats.MappedPages))
	printInfo("  Free:        %s\n", formatPages(stats.FreePages))
	printInfo("  Largest gap: %s\n", formatPages(stats.LargestGap.Pages()))
}
