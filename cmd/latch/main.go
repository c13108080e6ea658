// Command latch is Latch's command-line front end: run|check|repl|version,
// wired with github.com/urfave/cli/v3 the way rubiojr-rugo's cmd/cmd.go
// wires its own command tree.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/latch-lang/latch/internal/ast"
	"github.com/latch-lang/latch/internal/config"
	"github.com/latch-lang/latch/internal/diag"
	"github.com/latch-lang/latch/internal/interp"
	"github.com/latch-lang/latch/internal/logging"
	"github.com/latch-lang/latch/internal/modules"
	"github.com/latch-lang/latch/internal/parser"
	"github.com/latch-lang/latch/internal/repl"
	"github.com/latch-lang/latch/internal/sema"
)

// version is set at build time via -ldflags; a bare "dev" default keeps
// unversioned builds identifiable, matching the interpreter it evolved from's Version/BuildDate
// pattern (oracles.go/main.go), simplified since Latch does not need a
// separate build-date string.
var version = "dev"

func main() {
	cmd := &cli.Command{
		Name:    "latch",
		Usage:   "A small scripting language for local automation",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "path to a YAML config file"},
			&cli.BoolFlag{Name: "debug", Usage: "enable debug logging"},
			&cli.IntFlag{Name: "workers-ceiling", Usage: "max goroutines a parallel block may use (0 = use config/default)"},
		},
		Commands: []*cli.Command{
			{
				Name:            "run",
				Usage:           "Run a Latch script",
				ArgsUsage:       "<file.latch>",
				SkipFlagParsing: true,
				Action:          runAction,
			},
			{
				Name:      "check",
				Usage:     "Parse and analyze a script without running it",
				ArgsUsage: "<file.latch>",
				Action:    checkAction,
			},
			{
				Name:   "repl",
				Usage:  "Start an interactive session",
				Action: replAction,
			},
			{
				Name:  "version",
				Usage: "Print the compiled version",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					fmt.Println(version)
					return nil
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "latch: %v\n", err)
		os.Exit(1)
	}
}

// loadAndAnalyze reads path, lexes+parses it, then runs the semantic
// analyzer, returning every diagnostic gathered along the way (spec.md's
// promise that `check` reports more than one error per run).
func loadAndAnalyze(path string) (*ast.Program, []diag.Diagnostic, string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, "", err
	}
	prog, diags := parser.Parse(path, string(src))
	diags = append(diags, sema.Analyze(path, prog)...)
	return prog, diags, string(src), nil
}

func loadConfig(cmd *cli.Command) config.Config {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "latch: loading config: %v\n", err)
	}
	return cfg
}

func newInterp(cmd *cli.Command) *interp.Interp {
	cfg := loadConfig(cmd)
	ip := interp.New(modules.Registry(cfg))
	ip.Logger = logging.New(os.Stderr, cmd.Bool("debug"))
	if cfg.MaxWorkers > 0 {
		ip.MaxWorkers = cfg.MaxWorkers
	}
	if ceiling := cmd.Int("workers-ceiling"); ceiling > 0 {
		ip.MaxWorkers = int(ceiling)
	}
	return ip
}

func runAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: latch run <file.latch> [args...]")
	}
	path := cmd.Args().First()

	prog, diags, src, err := loadAndAnalyze(path)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", path, err)
	}
	if len(diags) > 0 {
		printDiagnostics(diags, src)
		os.Exit(2)
	}

	ip := newInterp(cmd)
	res, err := ip.Run(prog)
	if err != nil {
		return err
	}
	os.Exit(res.ExitCode)
	return nil
}

func checkAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: latch check <file.latch>")
	}
	path := cmd.Args().First()

	_, diags, src, err := loadAndAnalyze(path)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", path, err)
	}
	if len(diags) == 0 {
		fmt.Println("ok")
		return nil
	}
	printDiagnostics(diags, src)
	os.Exit(1)
	return nil
}

// printDiagnostics writes each diagnostic to stderr, colorizing the header
// line red when stderr is a terminal (colorEnabled).
func printDiagnostics(diags []diag.Diagnostic, src string) {
	red := colorEnabled()
	for _, d := range diags {
		text := diag.Format(d, src)
		if red {
			if nl := strings.IndexByte(text, '\n'); nl >= 0 {
				text = "\x1b[31m" + text[:nl] + "\x1b[0m" + text[nl:]
			} else {
				text = "\x1b[31m" + text + "\x1b[0m"
			}
		}
		fmt.Fprintln(os.Stderr, text)
	}
}

func replAction(ctx context.Context, cmd *cli.Command) error {
	ip := newInterp(cmd)
	os.Exit(repl.Run(ip))
	return nil
}

// colorEnabled mirrors rugo's cmd/cmd.go TTY check for deciding whether
// printDiagnostics should wrap diag.Format's plain-text output in ANSI color.
func colorEnabled() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}
