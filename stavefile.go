//go:build stave

package main

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const (
	binaryName = "razorlint"
	binaryPath = "bin/" + binaryName
	mainPkg    = "./cmd/" + binaryName
)

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":   Build,
	"t":   Test.Default,
	"l":   Lint.Default,
	"c":   Check,
	"i":   Install,
	"s":   Smoke,
	"fmt": Lint.Fmt,
	"bp":  Bench.Parser,
}

type (
	Test  st.Namespace
	Lint  st.Namespace
	CI    st.Namespace
	Bench st.Namespace
)

// Build compiles bin/razorlint with version info when sources changed.
func Build() error {
	rebuild, err := target.Dir(binaryPath, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println(binaryPath, "is up to date")
		return nil
	}
	fmt.Println("Building", binaryName+"...")
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binaryPath, mainPkg)
}

// Check runs format, lint, and test sequentially.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Smoke builds the binary and runs every inspection command against a
// small template holding a parser error and a rule finding.
func Smoke() error {
	st.Deps(Build)

	dir, err := os.MkdirTemp("", "razorlint-smoke")
	if err != nil {
		return fmt.Errorf("create smoke dir: %w", err)
	}
	defer os.RemoveAll(dir)

	page := filepath.Join(dir, "Index.cshtml")
	const template = "@section Scripts { }\n@section Scripts { }\n<p>@{ }</p>\n@{ <div>\n"
	if err := os.WriteFile(page, []byte(template), 0o644); err != nil {
		return fmt.Errorf("write smoke template: %w", err)
	}

	for _, args := range [][]string{
		{"tokens", page},
		{"tokens", "--grammar", "code", page},
		{"tree", page},
		{"tree", "--flatten", page},
		{"rules"},
	} {
		if err := sh.RunV(binaryPath, args...); err != nil {
			return fmt.Errorf("%s %s: %w", binaryName, strings.Join(args, " "), err)
		}
	}

	// The template has error-severity findings, so check must exit 1.
	check := exec.Command(binaryPath, "check", "--format", "summary", page)
	check.Stdout, check.Stderr = os.Stdout, os.Stderr
	var exitErr *exec.ExitError
	if err := check.Run(); !errors.As(err, &exitErr) || exitErr.ExitCode() != 1 {
		return fmt.Errorf("check should exit 1 on error findings: %v", err)
	}
	fmt.Println("✓ smoke run passed")
	return nil
}

// Clean removes build artifacts and profiles.
func Clean() error {
	fmt.Println("Cleaning build artifacts...")
	for _, path := range []string{"bin", "parser.cpu.out", "coverage.out", "coverage.html"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Install installs razorlint to $GOBIN or $GOPATH/bin.
func Install() error {
	fmt.Println("Installing", binaryName+"...")
	return sh.RunV("go", "install", "-ldflags", ldflags(), mainPkg)
}

// Uninstall removes razorlint from $GOBIN or $GOPATH/bin.
func Uninstall() error {
	binPath, err := installedBinary()
	if err != nil {
		return err
	}
	if err := os.Remove(binPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Println(binaryName, "is not installed")
			return nil
		}
		return fmt.Errorf("remove binary: %w", err)
	}
	fmt.Println("Removed", binPath)
	return nil
}

// Deps downloads and tidies module dependencies.
func Deps() error {
	if err := sh.RunV("go", "mod", "download"); err != nil {
		return err
	}
	return sh.RunV("go", "mod", "tidy")
}

// Coverage renders coverage.out as coverage.html.
func Coverage() error {
	st.Deps(Test.Default)
	return sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}

// Default runs all tests with race detection and coverage.
func (Test) Default() error {
	fmt.Println("Running tests...")
	return gotestsum("pkgname-and-test-fails")
}

// Verbose runs all tests with standard-verbose output.
func (Test) Verbose() error {
	return gotestsum("standard-verbose")
}

// Parser runs only the source, tokenizer, syntax and parser tests.
func (Test) Parser() error {
	return gotestsum("testname", "./pkg/source/...", "./pkg/tokenizer/...", "./pkg/syntax/...", "./pkg/parser/...")
}

func gotestsum(format string, pkgs ...string) error {
	procs := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	if len(pkgs) == 0 {
		pkgs = []string{"./..."}
	}
	args := []string{"tool", "gotestsum", "-f", format, "--", "-race", "-p", procs, "-parallel", procs}
	args = append(args, pkgs...)
	args = append(args, "-coverprofile=coverage.out", "-covermode=atomic")
	return sh.RunV("go", args...)
}

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// CI runs golangci-lint without auto-fix.
func (Lint) CI() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", ".")
}

// FmtCheck fails when gofmt would change any file.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt check failed: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s\nRun 'stave lint:fmt' to fix", out)
	}
	return nil
}

// Vet runs go vet.
func (Lint) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Gate runs every CI check in order.
func (CI) Gate() error {
	st.SerialDeps(
		Lint.FmtCheck,
		Lint.Vet,
		Lint.CI,
		Build,
		Test.Default,
		Smoke,
		CI.ModTidy,
		CI.Cross,
	)
	fmt.Println("\n✓ All CI gate checks passed!")
	return nil
}

// ModTidy fails when go mod tidy changes go.mod or go.sum.
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
			return fmt.Errorf("read %s after tidy: %w", name, err)
		}
		if !bytes.Equal(before[i], after) {
			return fmt.Errorf("%s changed after 'go mod tidy'; commit the result", name)
		}
	}
	return nil
}

var releasePlatforms = []struct{ goos, goarch string }{
	{"linux", "amd64"},
	{"linux", "arm64"},
	{"darwin", "amd64"},
	{"darwin", "arm64"},
	{"windows", "amd64"},
	{"windows", "arm64"},
	{"freebsd", "amd64"},
}

// Cross builds every release platform with cgo disabled.
func (CI) Cross() error {
	for _, p := range releasePlatforms {
		fmt.Printf("  Building %s/%s...\n", p.goos, p.goarch)
		env := map[string]string{"GOOS": p.goos, "GOARCH": p.goarch, "CGO_ENABLED": "0"}
		if err := sh.RunWith(env, "go", "build", "-o", os.DevNull, mainPkg); err != nil {
			return fmt.Errorf("build %s/%s: %w", p.goos, p.goarch, err)
		}
	}
	return nil
}

// Default runs every benchmark in the module.
func (Bench) Default() error {
	return sh.RunV("go", "test", "-run=^$", "-bench=.", "-benchmem", "./...")
}

// Parser runs the parser benchmarks and keeps a CPU profile.
func (Bench) Parser() error {
	return sh.RunV("go", "test", "-run=^$", "-bench=.", "-benchmem", "-cpuprofile=parser.cpu.out", "./pkg/parser/")
}

func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

func ldflags() string {
	version := cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev")
	commit := cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none")
	date := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s", version, commit, date)
}

// installedBinary returns where go install places the binary.
func installedBinary() (string, error) {
	if gobin := os.Getenv("GOBIN"); gobin != "" {
		return filepath.Join(gobin, binaryName), nil
	}
	gopath := os.Getenv("GOPATH")
	if gopath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get home directory: %w", err)
		}
		gopath = filepath.Join(home, "go")
	}
	return filepath.Join(gopath, "bin", binaryName), nil
}
