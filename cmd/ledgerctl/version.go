package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/joshuapare/pageledger/addr"
)

// Set at link time with -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var versionShort bool

func init() {
	cmd := newVersionCmd()
	cmd.Flags().BoolVar(&versionShort, "short", false, "Print only the version number")
	rootCmd.AddCommand(cmd)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion(versionShort)
		},
	}
}

type versionOutput struct {
	Version  string `json:"version"`
	Commit   string `json:"commit"`
	Built    string `json:"built"`
	Go       string `json:"go"`
	PageSize uint64 `json:"page_size"`
}

func runVersion(short bool) error {
	if short {
		fmt.Fprintln(os.Stdout, version)
		return nil
	}

	out := versionOutput{
		Version:  version,
		Commit:   commit,
		Built:    date,
		Go:       runtime.Version(),
		PageSize: addr.PageSize,
	}
	if jsonOut {
		return printJSON(out)
	}

	fmt.Fprintf(os.Stdout, "ledgerctl %s (%s, built %s)\n", out.Version, out.Commit, out.Built)
	fmt.Fprintf(os.Stdout, "  go:        %s\n", out.Go)
	fmt.Fprintf(os.Stdout, "  page size: %#x\n", out.PageSize)
	return nil
}
