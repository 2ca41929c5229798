package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/pageledger/internal/logger"
	"github.com/joshuapare/pageledger/internal/script"
)

var (
	findPages uint64
	findBack  bool
)

func init() {
	cmd := newFindCmd()
	cmd.Flags().Uint64Var(&findPages, "pages", 1, "Number of pages to place")
	cmd.Flags().BoolVar(&findBack, "back", false, "Search from the high end of the window")
	rootCmd.AddCommand(cmd)
}

func newFindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find <script>",
		Short: "Report where a new range would be placed",
		Long: `The find command replays a script and then reports where a range of the
given size would be placed, without recording it.

Example:
  ledgerctl find layout.txt --pages 4
  ledgerctl find layout.txt --pages 4 --back --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFind(args)
		},
	}
	return cmd
}

type findOutput struct {
	Pages uint64 `json:"pages"`
	Front bool   `json:"front"`
	Start string `json:"start"`
	End   string `json:"end"`
	Size  string `json:"size"`
}

func runFind(args []string) error {
	path := args[0]

	if findPages == 0 {
		return fmt.Errorf("--pages must be at least 1")
	}

	printVerbose("Loading script: %s\n", path)

	s, err := loadScript(path)
	if err != nil {
		return err
	}

	rep, err := script.Run(s, &script.RunOptions{Logger: logger.L})
	if err != nil {
		return err
	}
	if err := rep.Err(); err != nil {
		logger.Warn("replay failed before find", "path", path, "error", err)
		return fmt.Errorf("replay failed: %w", err)
	}

	where, err := rep.Map.FindFree(findPages, !findBack)
	logger.Debug("find", "pages", findPages, "front", !findBack, "range", where.String(), "error", err)
	if err != nil {
		return fmt.Errorf("no room for %s: %w", formatPages(findPages), err)
	}

	if jsonOut {
		return printJSON(findOutput{
			Pages: findPages,
			Front: !findBack,
			Start: where.Start.String(),
			End:   where.End.String(),
			Size:  formatPages(findPages),
		})
	}

	printInfo("%s\n", where)
	printVerbose("  %s after %d step(s)\n", formatPages(findPages), len(rep.Results))
	return nil
}
