// Package main provides the entry point for perfestimate.
// perfestimate is a cycle-accurate software performance estimator: it reads
// a retired-instruction trace and a cache configuration, drives the timing
// core to completion, and reports the resulting cycle count.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/archsim/perfestimate/config"
	"github.com/archsim/perfestimate/timing/cache"
	"github.com/archsim/perfestimate/timing/core"
	"github.com/archsim/perfestimate/trace"
)

var (
	tracePath  = flag.String("trace", "", "path to a line-oriented instruction trace")
	configPath = flag.String("config", "", "path to a YAML cache configuration file (built-in default if empty)")
	histDir    = flag.String("hist", "", "directory to write per-cache-level histogram CSVs into")
	verbose    = flag.Bool("v", false, "print each instruction's mnemonic and retirement cycle")
)

func main() {
	flag.Parse()

	if *tracePath == "" {
		fmt.Fprintf(os.Stderr, "Usage: perfestimate [options] -trace <file>\n\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	set := core.BuildDefaultInstructionSet()

	records, err := loadTrace(*tracePath, nameIndex(set))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading trace: %v\n", err)
		os.Exit(1)
	}

	src, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	exitCode := run(set, records, src)
	os.Exit(exitCode)
}

// run drives the timing core over records and prints the resulting report.
// It returns the process exit code.
func run(set *core.Set, records []traceRecord, src config.Source) int {
	model := core.New(set)
	if err := model.ApplyConfig(src); err != nil {
		fmt.Fprintf(os.Stderr, "Error applying config: %v\n", err)
		return 1
	}

	size := trace.WindowSize
	if len(records) > size {
		size = len(records)
	}
	window := trace.NewWindow(size)
	for i, rec := range records {
		window.Set(i, rec.typeID, rec.pc, rec.rs1, rec.rs2, rec.rd, rec.brTarget, rec.memAddr, rec.rs1Data, rec.rs2Data)
	}

	if err := model.ConnectChannel(window); err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting channel: %v\n", err)
		return 1
	}
	if err := model.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing: %v\n", err)
		return 1
	}

	dispatch := core.NewDispatcher(set)
	for i := range records {
		if err := model.Execute(); err != nil {
			fmt.Fprintf(os.Stderr, "Error executing instruction %d: %v\n", i, err)
			return 1
		}
		if *verbose {
			name, _ := dispatch.Name(records[i].typeID)
			fmt.Printf("%4d: %-8s cycle=%d\n", i, name, model.GetCycleCount())
		}
	}

	cycles := model.Finalize()
	fmt.Printf("instructions: %d\n", len(records))
	fmt.Printf("cycles:       %d\n", cycles)
	if len(records) > 0 {
		fmt.Printf("CPI:          %.3f\n", float64(cycles)/float64(len(records)))
	}

	if *histDir != "" {
		if err := writeHistograms(model, *histDir); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing histograms: %v\n", err)
			return 1
		}
	}
	return 0
}

// traceRecord is one parsed line of the synthetic trace format: a mnemonic
// followed by the eight numeric columns the timing core reads.
type traceRecord struct {
	typeID                                                int32
	pc, rs1, rs2, rd, brTarget, memAddr, rs1Data, rs2Data uint64
}

// nameIndex builds the mnemonic-to-typeId lookup the trace loader needs,
// from the same instruction set the dispatcher uses.
func nameIndex(set *core.Set) map[string]int32 {
	idx := make(map[string]int32, len(set.Entries()))
	for _, e := range set.Entries() {
		idx[e.Name] = e.TypeID
	}
	return idx
}

// loadTrace parses a line-oriented trace: one instruction per line, blank
// lines and "#"-prefixed comments ignored, each record holding a mnemonic
// and eight whitespace-separated numeric fields (decimal or 0x-prefixed
// hex): pc rs1 rs2 rd brTarget memAddr rs1Data rs2Data.
func loadTrace(path string, names map[string]int32) ([]traceRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []traceRecord
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 9 {
			return nil, fmt.Errorf("line %d: expected 9 fields, got %d", lineNo, len(fields))
		}

		typeID, ok := names[fields[0]]
		if !ok {
			return nil, fmt.Errorf("line %d: unknown mnemonic %q", lineNo, fields[0])
		}

		vals := make([]uint64, 8)
		for i, field := range fields[1:] {
			v, err := strconv.ParseUint(field, 0, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: field %d: %w", lineNo, i+2, err)
			}
			vals[i] = v
		}

		records = append(records, traceRecord{
			typeID: typeID,
			pc:     vals[0], rs1: vals[1], rs2: vals[2], rd: vals[3],
			brTarget: vals[4], memAddr: vals[5], rs1Data: vals[6], rs2Data: vals[7],
		})
	}
	return records, scanner.Err()
}

// loadConfig reads a dotted-key YAML cache configuration, or falls back to
// a small built-in two-level default when no path is given.
func loadConfig(path string) (config.Source, error) {
	if path == "" {
		return defaultConfig(), nil
	}
	return config.LoadYAML(path)
}

func defaultConfig() config.MapSource {
	return config.MapSource{
		"plugin.perfEst.memory.layout":            "l1 l2",
		"plugin.perfEst.memory.addrspace.lower":   "0",
		"plugin.perfEst.memory.addrspace.upper":   "18446744073709551615",
		"plugin.perfEst.memory.delay.notCachable": "100",
		"plugin.perfEst.memory.l1.nblocks":        "64",
		"plugin.perfEst.memory.l1.nways":          "4",
		"plugin.perfEst.memory.l1.blockSize":      "4",
		"plugin.perfEst.memory.l1.delay.cacheHit": "1",
		"plugin.perfEst.memory.l1.delay.cacheMiss": "10",
		"plugin.perfEst.memory.l2.nblocks":         "512",
		"plugin.perfEst.memory.l2.nways":           "8",
		"plugin.perfEst.memory.l2.blockSize":       "8",
		"plugin.perfEst.memory.l2.delay.cacheHit":  "10",
		"plugin.perfEst.memory.l2.delay.cacheMiss": "100",
	}
}

// writeHistograms writes one CSV per configured cache level into dir.
func writeHistograms(m *core.PerformanceModel, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, lvl := range m.DCache.Levels() {
		path := filepath.Join(dir, lvl.Name()+".csv")
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		writeErr := cache.WriteHistogram(f, lvl)
		closeErr := f.Close()
		if writeErr != nil {
			return writeErr
		}
		if closeErr != nil {
			return closeErr
		}
	}
	return nil
}
