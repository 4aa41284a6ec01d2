package main

import (
	"os"

	"github.com/olekukonko/tablewriter"

	"github.com/omarish/symbol-mutator/internal/mutate"
)

// printMappingTable renders a mapping's entries as an aligned table on
// stdout, shared by `mutate --summary-table` and the standalone
// `report` command.
func printMappingTable(entries []mutate.Entry) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Original", "New Name", "Kind"})
	for _, e := range entries {
		table.Append([]string{e.Original, e.New, e.Kind.String()})
	}
	table.Render()
}
