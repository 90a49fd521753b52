//go:build stave

package main

import (
	"bytes"
	"cmp"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const binary = "bin/exprcst"

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":  Build,
	"t":  Test.Default,
	"tc": Test.Core,
	"l":  Lint.Default,
	"c":  Check,
	"fz": Fuzz.Default,
	"g":  Golden.Check,
}

type (
	Test   st.Namespace
	Lint   st.Namespace
	CI     st.Namespace
	Bench  st.Namespace
	Fuzz   st.Namespace
	Golden st.Namespace
)

// Build compiles bin/exprcst with version info when its sources changed.
func Build() error {
	rebuild, err := target.Dir(binary, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println(binary, "is up to date")
		return nil
	}
	fmt.Println("Building exprcst...")
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binary, "./cmd/exprcst")
}

// Check formats, lints, tests and compares golden trees.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default, Golden.Check)
}

// Clean removes build and coverage output.
func Clean() error {
	for _, path := range []string{"bin", "coverage.out"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Default runs every test with race detection and coverage.
func (Test) Default() error {
	fmt.Println("Running tests...")
	return gotestsum("./...", "-race", "-coverprofile=coverage.out", "-covermode=atomic")
}

// Core runs the tests of the lexer, parser and tree packages only.
func (Test) Core() error {
	fmt.Println("Running core tests...")
	return gotestsum("./pkg/syntax/...", "./pkg/lexer/...", "./pkg/parser/...", "./pkg/cst/...")
}

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	fmt.Println("Running linters...")
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", ".")
}

// FmtCheck fails when a file is not gofmt-formatted.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s", out)
	}
	return nil
}

// Vet runs go vet.
func (Lint) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Gate runs the checks CI requires before merging.
func (CI) Gate() {
	st.SerialDeps(Lint.FmtCheck, Lint.Vet, Build, Test.Default, Golden.Check, CI.ModTidy)
}

// ModTidy fails when go mod tidy would change go.mod or go.sum.
func (CI) ModTidy() error {
	files := []string{"go.mod", "go.sum"}
	before := make([][]byte, len(files))
	for i, name := range files {
		data, err := os.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		before[i] = data
	}

	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}

	for i, name := range files {
		after, err := os.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		if !bytes.Equal(before[i], after) {
			return fmt.Errorf("%s changed after go mod tidy", name)
		}
	}
	return nil
}

// Default runs the benchmarks of the library packages.
func (Bench) Default() error {
	return sh.RunV("go", "test", "-run=^$", "-bench=.", "-benchmem", "./pkg/...")
}

// fuzzTargets are the fuzz tests run by fuzz:default, keyed by package.
var fuzzTargets = []struct{ pkg, name string }{
	{"./pkg/lexer", "FuzzTokenize"},
	{"./pkg/parser", "FuzzParse"},
}

// Default runs every fuzz target for FUZZ_TIME (default 30s) each.
func (Fuzz) Default() error {
	fuzzTime := cmp.Or(os.Getenv("FUZZ_TIME"), "30s")
	for _, ft := range fuzzTargets {
		fmt.Printf("Fuzzing %s %s for %s...\n", ft.pkg, ft.name, fuzzTime)
		if err := sh.RunV("go", "test", "-run=^$", "-fuzz=^"+ft.name+"$", "-fuzztime="+fuzzTime, ft.pkg); err != nil {
			return fmt.Errorf("fuzz %s: %w", ft.name, err)
		}
	}
	return nil
}

// Check compares the trees of testdata/*.expr with their golden files.
func (Golden) Check() error {
	st.Deps(Build)
	return sh.RunV(binary, "check", "--golden", "testdata")
}

// Update rewrites the golden trees of testdata/*.expr.
func (Golden) Update() error {
	st.Deps(Build)
	return sh.RunV(binary, "check", "--update-golden", "testdata")
}

// gotestsum runs go test through gotestsum. STAVE_NUM_PROCESSORS bounds
// package and test parallelism.
func gotestsum(pkgsAndFlags ...string) error {
	procs := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	args := []string{"tool", "gotestsum", "-f", "pkgname-and-test-fails", "--", "-p", procs, "-parallel", procs}
	return sh.RunV("go", append(args, pkgsAndFlags...)...)
}

func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ldflags injects version, commit and build date into cmd/exprcst.
func ldflags() string {
	version := cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev")
	commit := cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none")
	date := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s", version, commit, date)
}
