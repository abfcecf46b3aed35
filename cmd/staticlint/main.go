// The application provides a custom Go static analysis tool that combines
// standard analyzers from the Go toolchain, third-party analyzers, and a
// project-specific analyzer into a single `multichecker.Main` invocation.
//
// An optional config file (config.json) next to the binary lists the names
// of staticcheck analyzers to enable; without it only the fixed set runs.
package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"

	// Standard analyzers from the Go toolchain.
	"golang.org/x/tools/go/analysis/passes/copylock"
	"golang.org/x/tools/go/analysis/passes/loopclosure"
	"golang.org/x/tools/go/analysis/passes/lostcancel"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"golang.org/x/tools/go/analysis/passes/unmarshal"
	"golang.org/x/tools/go/analysis/passes/unreachable"

	// Third-party analyzers.
	"github.com/gordonklaus/ineffassign/pkg/ineffassign"
	"github.com/gostaticanalysis/nilerr"
	"honnef.co/go/tools/staticcheck"

	// Custom analyzer.
	"github.com/patric-chuzhbe/tinylinks/cmd/staticlint/noosexit"
)

// configName is the JSON configuration file listing enabled staticcheck
// analyzers, e.g., "SA1000", "SA4010".
const configName = `config.json`

type configData struct {
	Staticcheck []string
}

func loadEnabledStaticchecks() map[string]bool {
	enabled := map[string]bool{}

	appfile, err := os.Executable()
	if err != nil {
		return enabled
	}
	data, err := os.ReadFile(filepath.Join(filepath.Dir(appfile), configName))
	if err != nil {
		return enabled
	}

	var cfg configData
	if err := json.Unmarshal(data, &cfg); err != nil {
		return enabled
	}

	for _, name := range cfg.Staticcheck {
		enabled[name] = true
	}

	return enabled
}

func main() {
	checks := []*analysis.Analyzer{
		copylock.Analyzer,    // Checks for copying of locks by value.
		loopclosure.Analyzer, // Detects references to loop variables inside closures.
		lostcancel.Analyzer,  // Finds contexts that are not canceled.
		printf.Analyzer,      // Verifies format strings.
		structtag.Analyzer,   // Checks for incorrect struct field tags.
		unmarshal.Analyzer,   // Detects unused fields in JSON unmarshal targets.
		unreachable.Analyzer, // Detects unreachable code.

		ineffassign.Analyzer, // Detects ineffective assignments.
		nilerr.Analyzer,      // Flags returning nil after an error was created.

		noosexit.Analyzer, // Project-specific: forbids use of os.Exit in main.main.
	}

	enabled := loadEnabledStaticchecks()
	for _, v := range staticcheck.Analyzers {
		if enabled[v.Analyzer.Name] {
			checks = append(checks, v.Analyzer)
		}
	}

	multichecker.Main(checks...)
}
