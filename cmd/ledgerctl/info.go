package main

import (
	"runtime"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/joshuapare/pageledger/addr"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show page size and host information",
		Long: `The info command shows the page size the ledger works in and the page
size reported by the host.

Example:
  ledgerctl info
  ledgerctl info --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo()
		},
	}
	return cmd
}

type infoOutput struct {
	PageSize     uint64 `json:"page_size"`
	HostPageSize uint64 `json:"host_page_size"`
	OS           string `json:"os"`
	Arch         string `json:"arch"`
}

func runInfo() error {
	info := infoOutput{
		PageSize:     uint64(addr.PageSize),
		HostPageSize: uint64(addr.HostPageSize()),
		OS:           runtime.GOOS,
		Arch:         runtime.GOARCH,
	}

	if jsonOut {
		return printJSON(info)
	}

	printInfo("\nLedger:\n")
	printInfo("  Page size: %s (%#x)\n", humanize.IBytes(info.PageSize), info.PageSize)
	printInfo("\nHost:\n")
	printInfo("  Page size: %s (%#x)\n", humanize.IBytes(info.HostPageSize), info.HostPageSize)
	printInfo("  Platform:  %s/%s\n", info.OS, info.Arch)
	if info.HostPageSize%info.PageSize != 0 {
		printInfo("  ! host page size is not a multiple of the ledger page size\n")
	}
	return nil
}
