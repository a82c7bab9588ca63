package maincmd

import (
	"context"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/mna/mainer"
)

const binName = "lox"

// Exit codes, fixed by the language's external-interface contract: success,
// a usage error (wrong number of paths for the command; a first argument
// that is not a command name is taken as a script path to run), or a
// compile-time (scan/parse/resolve) or runtime failure.
const (
	exitSuccess mainer.ExitCode = 0
	exitUsage   mainer.ExitCode = 64
	exitFailure mainer.ExitCode = 65
)

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] [<command>] [<path>...]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] [<command>] [<path>...]
       %[1]s -h|--help
       %[1]s -v|--version

Tree-walking interpreter for the Lox programming language.

With no command and no path, starts an interactive REPL. The <command> can
be one of:
       run <path>                Execute the given script once.
       repl                      Start the interactive REPL explicitly.
       tokenize <path>...        Run the scanner and print the resulting
                                 tokens.
       parse <path>...           Run the scanner and parser and print the
                                 resulting syntax tree.
       resolve <path>...         Run the scanner, parser and resolver and
                                 print the syntax tree annotated with
                                 resolved variable distances.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.

Exit status is 0 on success, 64 on a usage error, and 65 on any
scan/parse/resolve/runtime error.
`, binName)
)

// Cmd is the root command, built and dispatched by mainer.Parser/mainer.Cmd
// conventions: exported bool fields tagged "flag" become CLI flags, and
// exported methods matching the (context.Context, mainer.Stdio, []string)
// error shape become subcommands, dispatched by their lowercased name.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	args  []string
	cmdFn func(context.Context, mainer.Stdio, []string) error
}

func (c *Cmd) SetArgs(args []string)      { c.args = args }
func (c *Cmd) SetFlags(_ map[string]bool) {}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}

	cmdName := "repl"
	rest := c.args
	if len(c.args) > 0 {
		if _, isCmd := buildCmds(c)[c.args[0]]; isCmd {
			cmdName = c.args[0]
			rest = c.args[1:]
		} else {
			// no recognized command name: treat a bare path as "run <path>" so
			// the classic "lox script.lox" invocation still works.
			cmdName = "run"
		}
	}

	commands := buildCmds(c)
	c.cmdFn = commands[cmdName]
	if c.cmdFn == nil {
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	switch cmdName {
	case "run":
		if len(rest) != 1 {
			return fmt.Errorf("run: expected exactly one script path, got %d", len(rest))
		}
	case "tokenize", "parse", "resolve":
		if len(rest) == 0 {
			return fmt.Errorf("%s: at least one file must be provided", cmdName)
		}
	case "repl":
		if len(rest) != 0 {
			return fmt.Errorf("repl: does not take any path")
		}
	}

	c.args = append([]string{cmdName}, rest...)
	return nil
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false,
		EnvPrefix: strings.ToUpper(binName) + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return exitUsage
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return exitSuccess
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return exitSuccess
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if err := c.cmdFn(ctx, stdio, c.args[1:]); err != nil {
		return exitFailure
	}
	return exitSuccess
}

// buildCmds reflects over v's exported methods to find those matching the
// (context.Context, mainer.Stdio, []string) error shape, keyed by their
// lowercased name - the same dispatch idiom the teacher's Cmd uses.
func buildCmds(v interface{}) map[string]func(context.Context, mainer.Stdio, []string) error {
	cmds := make(map[string]func(context.Context, mainer.Stdio, []string) error)

	vv := reflect.ValueOf(v)
	vt := vv.Type()
	for i := 0; i < vt.NumMethod(); i++ {
		m := vt.Method(i)
		mt := m.Type

		if mt.NumIn() != 4 || mt.NumOut() != 1 {
			continue
		}
		if rt := mt.Out(0); rt.Kind() != reflect.Interface || rt.Name() != "error" {
			continue
		}
		if p0 := mt.In(0); p0.Kind() != reflect.Ptr || p0.Elem().Name() != "Cmd" {
			continue
		}
		if p1 := mt.In(1); p1.Kind() != reflect.Interface || p1.Name() != "Context" {
			continue
		}
		if p2 := mt.In(2); p2.Kind() != reflect.Struct || p2.Name() != "Stdio" {
			continue
		}
		if p3 := mt.In(3); p3.Kind() != reflect.Slice || p3.Elem().Name() != "string" {
			continue
		}
		cmds[strings.ToLower(m.Name)] = vv.Method(i).Interface().(func(context.Context, mainer.Stdio, []string) error)
	}
	return cmds
}
