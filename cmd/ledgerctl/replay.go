package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/pageledger/internal/logger"
	"github.com/joshuapare/pageledger/internal/script"
)

var (
	replayKeepGoing bool
	replayBitmap    bool
)

func init() {
	cmd := newReplayCmd()
	cmd.Flags().BoolVar(&replayKeepGoing, "keep-going", false, "Continue past steps with unexpected results")
	cmd.Flags().BoolVar(&replayBitmap, "bitmap", false, "Keep a per-page occupancy bitmap")
	rootCmd.AddCommand(cmd)
}

func newReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <script>",
		Short: "Replay a script and report every step",
		Long: `The replay command runs each operation of a script against a fresh
ledger, prints where ranges landed and which operations were rejected, then
shows the final region table. It exits non-zero if any step did not behave as
the script expects. Use "-" to read the script from standard input.

Example:
  ledgerctl replay layout.txt
  ledgerctl replay layout.txt --keep-going
  ledgerctl replay layout.txt --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(args)
		},
	}
	return cmd
}

type replayOutput struct {
	Script   string       `json:"script"`
	Steps    []stepView   `json:"steps"`
	Regions  []regionView `json:"regions"`
	Stats    statsView    `json:"stats"`
	Failures int          `json:"failures"`
	Stopped  bool         `json:"stopped,omitempty"`
}

func runReplay(args []string) error {
	path := args[0]

	printVerbose("Loading script: %s\n", path)

	s, err := loadScript(path)
	if err != nil {
		return err
	}

	logger.Info("replaying script", "path", path, "steps", len(s.Steps), "window", s.Window.String())

	rep, err := script.Run(s, &script.RunOptions{
		KeepGoing:  replayKeepGoing,
		PageBitmap: replayBitmap,
		Logger:     logger.L,
	})
	if err != nil {
		return err
	}
	logger.Debug("replay finished", "path", path, "steps", len(rep.Results), "failures", rep.Failures)

	if jsonOut {
		out := replayOutput{
			Script:   path,
			Steps:    make([]stepView, 0, len(rep.Results)),
			Regions:  newRegionViews(rep.Regions),
			Stats:    newStatsView(rep.Stats),
			Failures: rep.Failures,
			Stopped:  rep.Stopped,
		}
		for _, res := range rep.Results {
			out.Steps = append(out.Steps, newStepView(res))
		}
		if err := printJSON(out); err != nil {
			return err
		}
		return rep.Err()
	}

	printInfo("\nScript: %s\n", path)
	printInfo("  Window:   %s (%s)\n", s.Window, formatPages(s.Window.Len().Pages()))
	printInfo("  Capacity: %d\n", s.Capacity)
	printInfo("  Gap:      %s\n", s.Gap)

	printInfo("\nSteps:\n")
	for _, res := range rep.Results {
		v := newStepView(res)
		outcome := v.Range
		if v.Error != "" {
			outcome = v.Kind
			if outcome == "" {
				outcome = v.Error
			}
		}
		mark := "✓"
		if !v.OK {
			mark = "✗"
		}
		printInfo("  %s line %-4d %-36s %s\n", mark, v.Line, v.Step, outcome)
		if !v.OK && v.Expected != "" {
			printInfo("      expected %s\n", v.Expected)
		}
	}
	if rep.Stopped {
		printInfo("  (stopped; %d step(s) not run)\n", len(s.Steps)-len(rep.Results))
	}

	printRegions(rep.Regions, rep.Stats)

	return rep.Err()
}
