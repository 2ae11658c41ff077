package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/urfave/cli.v1"

	"mlua/interpreter-go/pkg/ast"
	"mlua/interpreter-go/pkg/driver"
	"mlua/interpreter-go/pkg/lexer"
	"mlua/interpreter-go/pkg/parser"
	"mlua/interpreter-go/pkg/runtime"
)

const cliToolVersion = "mlua 0.1.0-dev"

var errManifestNotFound = errors.New(driver.ManifestFileName + " not found")

// errReported marks failures whose diagnostics were already written.
var errReported = errors.New("reported")

var (
	manifestFlag = cli.StringFlag{
		Name:  "manifest, m",
		Usage: "program manifest to run when no files are given (default ./" + driver.ManifestFileName + ")",
	}
	sharedStoreFlag = cli.BoolFlag{
		Name:  "shared-store",
		Usage: "keep variables from one program to the next",
	}
	verboseFlag = cli.BoolFlag{
		Name:  "verbose, v",
		Usage: "print a header before each program and its final store",
	}
	noColorFlag = cli.BoolFlag{
		Name:  "no-color",
		Usage: "disable coloured diagnostics",
	}
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := runContext(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(args []string, stdout, stderr io.Writer) int {
	return runContext(context.Background(), args, stdout, stderr)
}

func runContext(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := &command{ctx: ctx, stdout: stdout, stderr: stderr}
	app := cmd.app()
	if err := app.Run(append([]string{app.Name}, args...)); err != nil {
		if !errors.Is(err, errReported) {
			cmd.errorf("%v", err)
		}
		return 1
	}
	return 0
}

type command struct {
	ctx    context.Context
	stdout io.Writer
	stderr io.Writer
}

func (c *command) app() *cli.App {
	app := cli.NewApp()
	app.Name = "mlua"
	app.Usage = "run minimal Lua programs"
	app.UsageText = "mlua [global options] [command] [files...]"
	app.Version = cliToolVersion
	app.HideVersion = true
	app.Writer = c.stdout
	app.ErrWriter = c.stderr
	app.Flags = []cli.Flag{manifestFlag, sharedStoreFlag, verboseFlag, noColorFlag}
	app.Before = func(ctx *cli.Context) error {
		if ctx.GlobalBool("no-color") {
			color.NoColor = true
		}
		return nil
	}
	app.Action = c.runPrograms
	app.Commands = []cli.Command{
		{
			Name:      "run",
			Usage:     "run files in order, or the manifest programs when none are given",
			ArgsUsage: "[files...]",
			Action:    c.runPrograms,
		},
		{
			Name:      "check",
			Usage:     "lex and parse without running",
			ArgsUsage: "[files...]",
			Action:    c.checkPrograms,
		},
		{
			Name:      "tokens",
			Usage:     "print the token stream of a file",
			ArgsUsage: "<file>",
			Action:    c.printTokens,
		},
		{
			Name:      "ast",
			Usage:     "print the syntax tree of a file as JSON",
			ArgsUsage: "<file>",
			Action:    c.printAST,
		},
		{
			Name:      "fmt",
			Usage:     "print a file in canonical layout",
			ArgsUsage: "<file>",
			Action:    c.formatFile,
		},
		{
			Name:  "version",
			Usage: "print the version",
			Action: func(*cli.Context) error {
				fmt.Fprintln(c.stdout, cliToolVersion)
				return nil
			},
		},
	}
	return app
}

func (c *command) runPrograms(ctx *cli.Context) error {
	sources, shared, err := c.sources(ctx)
	if err != nil {
		return err
	}
	verbose := ctx.GlobalBool("verbose")
	cache, err := driver.NewProgramCache(driver.DefaultCacheSize)
	if err != nil {
		return err
	}
	units := driver.NewLoader(cache).LoadAll(c.ctx, sources)

	runner := &driver.Runner{
		Stdout:      c.stdout,
		SharedStore: shared || ctx.GlobalBool("shared-store"),
	}
	if verbose {
		runner.BeforeUnit = func(unit *driver.Unit) {
			color.New(color.FgCyan).Fprintf(c.stderr, "== %s (%s)\n", unit.Name, unit.Path)
		}
	}
	runner.OnResult = func(result driver.Result) {
		if result.Err != nil {
			c.report(driver.DiagnosticFromError(result.Err, result.Path))
			return
		}
		if verbose {
			fmt.Fprintf(c.stderr, "store: %s\n", formatStore(result.Store))
		}
	}
	if driver.AnyFailed(runner.Run(units)) {
		return errReported
	}
	return nil
}

func (c *command) checkPrograms(ctx *cli.Context) error {
	sources, _, err := c.sources(ctx)
	if err != nil {
		return err
	}
	failed := false
	for _, unit := range driver.NewLoader(nil).LoadAll(c.ctx, sources) {
		if unit.Err != nil {
			failed = true
			c.report(driver.DiagnosticFromError(unit.Err, unit.Path))
			continue
		}
		fmt.Fprintf(c.stdout, "ok %s\n", unit.Path)
	}
	if failed {
		return errReported
	}
	return nil
}

func (c *command) printTokens(ctx *cli.Context) error {
	path, err := singleFile(ctx)
	if err != nil {
		return err
	}
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()
	lex, err := lexer.FromReader(file)
	if err != nil {
		c.report(driver.DiagnosticFromError(err, path))
		return errReported
	}
	for {
		tok, err := lex.Next()
		if err != nil {
			return err
		}
		fmt.Fprintln(c.stdout, tok.String())
		if tok.Kind() == lexer.KindEOS {
			return nil
		}
	}
}

func (c *command) printAST(ctx *cli.Context) error {
	path, program, err := c.parseFile(ctx)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(program, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: encode ast: %w", path, err)
	}
	fmt.Fprintln(c.stdout, string(data))
	return nil
}

func (c *command) formatFile(ctx *cli.Context) error {
	_, program, err := c.parseFile(ctx)
	if err != nil {
		return err
	}
	fmt.Fprint(c.stdout, ast.Format(program))
	return nil
}

func (c *command) parseFile(ctx *cli.Context) (string, *ast.Program, error) {
	path, err := singleFile(ctx)
	if err != nil {
		return "", nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return path, nil, err
	}
	program, err := parser.ParseSource(string(data))
	if err != nil {
		c.report(driver.DiagnosticFromError(err, path))
		return path, nil, errReported
	}
	return path, program, nil
}

// sources returns the files named on the command line, or the manifest
// programs when there are none. The bool reports the manifest's shared_store.
func (c *command) sources(ctx *cli.Context) ([]driver.Source, bool, error) {
	if ctx.NArg() > 0 {
		sources := make([]driver.Source, 0, ctx.NArg())
		for _, path := range ctx.Args() {
			sources = append(sources, driver.FileSource{Path: path})
		}
		return sources, false, nil
	}
	manifest, err := loadManifest(ctx.GlobalString("manifest"))
	if err != nil {
		if errors.Is(err, errManifestNotFound) {
			return nil, false, fmt.Errorf("no source files given and %w", err)
		}
		return nil, false, fmt.Errorf("failed to load manifest: %w", err)
	}
	return driver.ProgramsFromManifest(manifest), manifest.SharedStore, nil
}

func loadManifest(path string) (*driver.Manifest, error) {
	if path == "" {
		path = driver.ManifestFileName
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, errManifestNotFound
			}
			return nil, err
		}
	}
	return driver.LoadManifest(path)
}

func singleFile(ctx *cli.Context) (string, error) {
	if ctx.NArg() != 1 {
		return "", fmt.Errorf("%s requires exactly one file", ctx.Command.Name)
	}
	return ctx.Args().First(), nil
}

func (c *command) report(d driver.Diagnostic) {
	color.New(color.FgRed).Fprintln(c.stderr, driver.DescribeDiagnostic(d))
}

func (c *command) errorf(format string, args ...any) {
	color.New(color.FgRed).Fprintf(c.stderr, "error: "+format+"\n", args...)
}

// formatStore lists variables in slot order: a-z then A-Z.
func formatStore(snapshot map[byte]int32) string {
	if len(snapshot) == 0 {
		return "(empty)"
	}
	letters := make([]byte, 0, len(snapshot))
	for letter := range snapshot {
		letters = append(letters, letter)
	}
	runtime.SortLetters(letters)
	parts := make([]string, 0, len(letters))
	for _, letter := range letters {
		parts = append(parts, fmt.Sprintf("%c=%d", letter, snapshot[letter]))
	}
	return strings.Join(parts, " ")
}
