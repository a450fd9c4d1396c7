package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	gascript "github.com/HomelikeBrick42/GeometricAlgebraSandbox"
)

const (
	appName     = "gas"
	historyFile = ".gas_history"
	prompt      = "gas> "
)

var banner = fmt.Sprintf(
	"Geometric Algebra Sandbox %s\nCtrl+C cancels input, Ctrl+D exits. Type :help for commands.",
	gascript.Version)

const helpText = `Statements are assignments over 2D PGA multivectors:

  p = e1 + 2 * e2 + e0;      ## a point
  l = normalize (a & b);     ## the line through a and b
  m = !p;                    ## dual

Operators: + - * (geometric) ^ (wedge) | (inner) & (regressive)
Prefix:    - (negate) ! (dual) ~ (reverse) normalize magnitude sin cos asin acos

REPL commands:
  :vars    List bound variables
  :clear   Forget all bound variables
  :help    Show this help
  :quit    Exit`

func red(s string) string   { return "\x1b[31m" + s + "\x1b[0m" }
func blue(s string) string  { return "\x1b[94m" + s + "\x1b[0m" }
func green(s string) string { return "\x1b[32m" + s + "\x1b[0m" }

func main() {
	if len(os.Args) < 2 {
		os.Exit(cmdRepl())
	}

	switch cmd := os.Args[1]; cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl())
	case "version":
		fmt.Println(gascript.Version)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`Geometric Algebra Sandbox %s (built %s)

Usage:
  %s                  Start the REPL.
  %s repl             Start the REPL.
  %s run <file.gas>   Run a script and print its variables.
  %s version          Print the version.

`, gascript.Version, gascript.BuildDate, appName, appName, appName, appName)
}

// -----------------------------------------------------------------------------
// run
// -----------------------------------------------------------------------------

func cmdRun(args []string) int {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s run <file.gas>\n", appName)
		return 2
	}

	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, args[0], err)
		return 1
	}

	env := gascript.NewEnv(gascript.BasisEnv())
	errs := gascript.RunScript(string(src), env)
	for _, e := range errs {
		fmt.Fprintln(os.Stderr, red(e))
	}

	for _, name := range env.Names() {
		v, _ := env.Get(name)
		fmt.Printf("%s = %s\n", name, v)
	}

	if len(errs) > 0 {
		return 1
	}
	return 0
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func cmdRepl() int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	env := gascript.NewEnv(gascript.BasisEnv())

	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return 0
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			return 1
		}

		code := strings.TrimSpace(line)
		if code == "" {
			continue
		}

		if strings.HasPrefix(code, ":") {
			switch strings.ToLower(code) {
			case ":quit", ":q":
				return 0
			case ":help":
				fmt.Println(helpText)
			case ":vars":
				for _, name := range env.Names() {
					v, _ := env.Get(name)
					fmt.Printf("%s = %s\n", blue(name), green(v.String()))
				}
			case ":clear":
				env = gascript.NewEnv(gascript.BasisEnv())
			default:
				fmt.Println("unknown command. Type :help for commands.")
			}
			continue
		}

		// A line without a ';' is treated as a bare expression to inspect.
		if !strings.Contains(code, ";") {
			expr, perr := gascript.ParseExpression(code)
			if perr != nil {
				fmt.Fprintln(os.Stderr, red(gascript.WrapErrorWithSource(perr, code).Error()))
				continue
			}
			v, eerr := gascript.Evaluate(expr, env)
			if eerr != nil {
				fmt.Fprintln(os.Stderr, red(gascript.WrapErrorWithSource(eerr, code).Error()))
				continue
			}
			fmt.Println(green(v.String()))
			ln.AppendHistory(code)
			continue
		}

		statements, perr := gascript.Parse(code)
		if perr != nil {
			fmt.Fprintln(os.Stderr, red(gascript.WrapErrorWithSource(perr, code).Error()))
			continue
		}
		for _, stmt := range statements {
			assign := stmt.(*gascript.AssignStatement)
			v, eerr := gascript.Evaluate(assign.Value, env)
			if eerr != nil {
				fmt.Fprintln(os.Stderr, red(gascript.WrapErrorWithSource(eerr, code).Error()))
				continue
			}
			env.Define(assign.Name, v)
			fmt.Printf("%s = %s\n", blue(assign.Name), green(v.String()))
		}
		ln.AppendHistory(code)
	}
}
