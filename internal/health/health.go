// Package health checks that the repository and configuration are ready for
// nbcommunities commands.
package health

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/neurobagel/communities/internal/config"
	"github.com/neurobagel/communities/internal/manifest"
)

// CheckResult represents the result of a single health check
type CheckResult struct {
	Name    string
	Passed  bool
	Message string
}

// HealthReport contains all health check results
type HealthReport struct {
	Checks []CheckResult
	Passed bool
}

func (r *HealthReport) add(c CheckResult) {
	r.Checks = append(r.Checks, c)
	if !c.Passed {
		r.Passed = false
	}
}

// RunHealthChecks runs all health checks against cfg and returns a report
func RunHealthChecks(cfg *config.Configuration) *HealthReport {
	report := &HealthReport{
		Checks: make([]CheckResult, 0),
		Passed: true,
	}

	report.add(CheckAPIKey(cfg.GoogleAPIKey))

	dirCheck := CheckConfigsDir(cfg.ConfigsDir)
	report.add(dirCheck)
	if dirCheck.Passed {
		for _, c := range CheckManifests(cfg.ConfigsDir) {
			report.add(c)
		}
	}

	report.add(CheckOutputDir(cfg.NamespaceMapFile))
	return report
}

// CheckAPIKey checks that a Google API key is configured
func CheckAPIKey(key string) CheckResult {
	if key == "" {
		return CheckResult{
			Name:    "Google API key",
			Passed:  false,
			Message: "Google API key not set (COMMUNITIES_GOOGLE_API_KEY)",
		}
	}

	return CheckResult{
		Name:    "Google API key",
		Passed:  true,
		Message: "Google API key set",
	}
}

// CheckConfigsDir checks that the community configurations directory exists
func CheckConfigsDir(dir string) CheckResult {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return CheckResult{
			Name:    "Configs directory",
			Passed:  false,
			Message: fmt.Sprintf("Configs directory not found: %s", dir),
		}
	}

	return CheckResult{
		Name:    "Configs directory",
		Passed:  true,
		Message: fmt.Sprintf("Configs directory found: %s", dir),
	}
}

// CheckManifests validates the terms manifest of every community directory
// under configsDir. Directories without a manifest are skipped.
func CheckManifests(configsDir string) []CheckResult {
	entries, err := os.ReadDir(configsDir)
	if err != nil {
		return []CheckResult{{
			Name:    "Terms manifests",
			Passed:  false,
			Message: fmt.Sprintf("Cannot list %s: %v", configsDir, err),
		}}
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var results []CheckResult
	for _, name := range names {
		check := "Terms manifest " + name
		m, err := manifest.Load(filepath.Join(configsDir, name))
		switch {
		case errors.Is(err, manifest.ErrManifestNotFound):
			continue
		case err != nil:
			results = append(results, CheckResult{Name: check, Passed: false, Message: err.Error()})
		default:
			results = append(results, CheckResult{
				Name:    check,
				Passed:  true,
				Message: fmt.Sprintf("%s: %d vocabularies", name, len(m.Entries)),
			})
		}
	}
	return results
}

// CheckOutputDir checks that the directory of the namespace map file exists
func CheckOutputDir(path string) CheckResult {
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return CheckResult{
			Name:    "Namespace map directory",
			Passed:  false,
			Message: fmt.Sprintf("Namespace map directory not found: %s", dir),
		}
	}

	return CheckResult{
		Name:    "Namespace map directory",
		Passed:  true,
		Message: fmt.Sprintf("Namespace map directory found: %s", dir),
	}
}

// FormatReport formats the health report for console output
func FormatReport(report *HealthReport) string {
	var output string

	for _, check := range report.Checks {
		if check.Passed {
			output += fmt.Sprintf("✓ %s\n", check.Message)
		} else {
			output += fmt.Sprintf("✗ Error: %s\n", check.Message)
		}
	}

	return output
}
