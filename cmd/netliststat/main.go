// Command netliststat parses a structural Verilog file, flattens it into a
// netlistdb.Database, and prints summary statistics. It exists to exercise
// the library end to end from the command line, not as a production
// netlist analysis tool.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/netlistdb/clilog"
	"github.com/sarchlab/netlistdb/netlistdb"
	"github.com/sarchlab/netlistdb/sverilog"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s <verilog-path> [<top-module>]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		atexit.Exit(2)
		return
	}
	path := flag.Arg(0)

	atexit.Register(func() {
		clilog.Default().Info(netlistdb.TagParse, "exiting")
	})

	src, err := os.ReadFile(path)
	if err != nil {
		slog.Error("failed to read source", "path", path, "err", err)
		atexit.Exit(1)
		return
	}

	sv, err := sverilog.Parse(src)
	if err != nil {
		slog.Error("failed to parse source", "path", path, "err", err)
		atexit.Exit(1)
		return
	}

	builder := netlistdb.NewBuilder()
	if flag.NArg() >= 2 {
		builder = builder.WithTop(flag.Arg(1))
	}

	db, err := builder.Build(sv)
	if err != nil {
		slog.Error("failed to build netlist database", "err", err)
		atexit.Exit(1)
		return
	}

	printStats(db)
	atexit.Exit(0)
}

func printStats(db *netlistdb.Database) {
	undriven, unknownDir := 0, 0
	for netID := 0; netID < db.NumNets; netID++ {
		if _, isConst := db.ConstantNets[netID]; isConst {
			continue
		}
		hasDriver := false
		for _, pinID := range db.Net2Pin.Set(netID) {
			if db.PinDirect[pinID] == netlistdb.O {
				hasDriver = true
				break
			}
		}
		if !hasDriver {
			undriven++
		}
	}
	for _, d := range db.PinDirect {
		if d == netlistdb.Unknown {
			unknownDir++
		}
	}

	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("Netlist stats: %s", db.Name))
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRow(table.Row{"Cells", db.NumCells})
	t.AppendRow(table.Row{"Logic pins", db.NumLogicPins})
	t.AppendRow(table.Row{"Pins", db.NumPins})
	t.AppendRow(table.Row{"Nets", db.NumNets})
	t.AppendRow(table.Row{"Constant nets", len(db.ConstantNets)})
	t.AppendRow(table.Row{"Undriven nets", undriven})
	t.AppendRow(table.Row{"Unknown-direction pins", unknownDir})
	fmt.Println(t.Render())
}
