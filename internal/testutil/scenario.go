// Package testutil loads conformance scenario fixtures for tests.
package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"gopkg.in/yaml.v3"
)

// Scenario is one conformance fixture: an imp program plus the exact
// behavior the CLI pipeline must show for it.
type Scenario struct {
	Name        string `yaml:"-"`
	Description string `yaml:"description"`
	Program     string `yaml:"program"` // file name relative to the scenario dir
	ExitCode    int    `yaml:"exit_code"`
	Stdout      string `yaml:"stdout"`
	ErrCode     string `yaml:"err_code"` // expected diagnostic code, failures only

	// Source is the program text, loaded from Program.
	Source string `yaml:"-"`
}

// LoadScenarios reads every scenario under dir. Each scenario is a
// subdirectory holding scenario.yaml and the program file it names.
func LoadScenarios(t *testing.T, dir string) []Scenario {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read scenario dir %s: %v", dir, err)
	}

	var scenarios []Scenario
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		scenarios = append(scenarios, loadScenario(t, filepath.Join(dir, entry.Name()), entry.Name()))
	}

	sort.Slice(scenarios, func(i, j int) bool { return scenarios[i].Name < scenarios[j].Name })
	return scenarios
}

func loadScenario(t *testing.T, dir, name string) Scenario {
	t.Helper()

	f, err := os.Open(filepath.Join(dir, "scenario.yaml"))
	if err != nil {
		t.Fatalf("open scenario %s: %v", name, err)
	}
	defer f.Close()

	var sc Scenario
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		t.Fatalf("decode scenario %s: %v", name, err)
	}
	sc.Name = name

	if sc.Program == "" {
		t.Fatalf("scenario %s names no program file", name)
	}
	source, err := os.ReadFile(filepath.Join(dir, sc.Program))
	if err != nil {
		t.Fatalf("read program for scenario %s: %v", name, err)
	}
	sc.Source = string(source)

	return sc
}
