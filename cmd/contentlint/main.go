// Command contentlint validates the plain-text energy pack content files
// this server loads at boot (internal/catalog.LoadEnergyPacks), the same
// "name,cell,value" format described in spec.md §6. It checks:
//   - line syntax (exactly three comma-separated fields)
//   - cell bounds (must fall within the sampleable special-tile range)
//   - non-zero, non-collapsed starting values
//   - duplicate pack names and duplicate cells
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/voltrace/gameserver/internal/catalog"
)

// Finding is a single lint complaint against one line of a content file.
type Finding struct {
	Line    int
	Message string
}

// Report is the outcome of linting a single content file.
type Report struct {
	File     string
	Packs    int
	Findings []Finding
}

func (r Report) OK() bool {
	return len(r.Findings) == 0
}

func lintFile(path string) (Report, error) {
	report := Report{File: path}

	f, err := os.Open(path)
	if err != nil {
		return report, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	seenNames := make(map[string]int)
	seenCells := make(map[int]int)

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.SplitN(line, ",", 3)
		if len(parts) != 3 {
			report.Findings = append(report.Findings, Finding{lineNo, fmt.Sprintf("expected name,cell,value, got %q", line)})
			continue
		}
		name := strings.TrimSpace(parts[0])
		if name == "" {
			report.Findings = append(report.Findings, Finding{lineNo, "empty pack name"})
		}

		cell, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			report.Findings = append(report.Findings, Finding{lineNo, fmt.Sprintf("invalid cell: %v", err)})
			continue
		}
		if cell < catalog.TileSampleCellMin || cell > catalog.TileSampleCellMax {
			report.Findings = append(report.Findings, Finding{lineNo,
				fmt.Sprintf("cell %d out of sampleable range [%d, %d]", cell, catalog.TileSampleCellMin, catalog.TileSampleCellMax)})
		}

		value, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil {
			report.Findings = append(report.Findings, Finding{lineNo, fmt.Sprintf("invalid value: %v", err)})
			continue
		}
		pack := catalog.EnergyPack{Name: name, Cell: cell, Value: value}
		if pack.Collapsed() {
			report.Findings = append(report.Findings, Finding{lineNo, fmt.Sprintf("value %d collapses immediately (|value| < 10)", value)})
		}

		if prev, ok := seenNames[name]; ok {
			report.Findings = append(report.Findings, Finding{lineNo, fmt.Sprintf("duplicate pack name %q (first seen line %d)", name, prev)})
		}
		seenNames[name] = lineNo
		if prev, ok := seenCells[cell]; ok {
			report.Findings = append(report.Findings, Finding{lineNo, fmt.Sprintf("duplicate cell %d (first seen line %d)", cell, prev)})
		}
		seenCells[cell] = lineNo

		report.Packs++
	}
	if err := scanner.Err(); err != nil {
		return report, fmt.Errorf("scan %s: %w", path, err)
	}
	return report, nil
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		fmt.Println("usage: contentlint <file> [file...]")
		os.Exit(2)
	}

	allOK := true
	for _, path := range args {
		report, err := lintFile(path)
		if err != nil {
			fmt.Printf("❌ %s: %v\n", path, err)
			allOK = false
			continue
		}

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), report.File)
		if report.OK() {
			fmt.Printf("✅ VALID (%d packs)\n", report.Packs)
			continue
		}
		allOK = false
		fmt.Printf("❌ INVALID (%d packs, %d findings)\n", report.Packs, len(report.Findings))
		for _, f := range report.Findings {
			fmt.Printf("  ❌ line %d: %s\n", f.Line, f.Message)
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allOK {
		fmt.Println("✅ All content files are valid!")
	} else {
		fmt.Println("❌ Some content files have errors")
		os.Exit(1)
	}
}
