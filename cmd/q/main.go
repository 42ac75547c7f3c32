// Command q runs, inspects and interactively evaluates Q programs.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/repr"
	"github.com/takoeight0821/q/diagnostic"
	"github.com/takoeight0821/q/driver"
	"github.com/takoeight0821/q/lexer"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"
)

// errFailed is returned by commands that have already reported their error.
var errFailed = errors.New("q: failed")

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

type state struct {
	stdout io.Writer
	stderr io.Writer

	logger   *slog.Logger
	trace    bool
	profiler interface{ Stop() }
}

func newApp(stdout, stderr io.Writer) *cli.App {
	st := &state{stdout: stdout, stderr: stderr}

	return &cli.App{
		Name:      "q",
		Usage:     "run Q programs",
		Writer:    stdout,
		ErrWriter: stderr,
		// Errors are reported by the commands themselves.
		ExitErrHandler: func(*cli.Context, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "minimum level of log messages (debug, info, warn, error)",
				EnvVars: []string{"Q_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Value:   "text",
				Usage:   "log message format (text, json)",
				EnvVars: []string{"Q_LOG_FORMAT"},
			},
			&cli.StringFlag{
				Name:    "profile",
				Usage:   "write a pprof profile of the given kind",
				EnvVars: []string{"Q_PROFILE"},
			},
			&cli.StringFlag{
				Name:  "profile-dir",
				Value: ".",
				Usage: "directory profiles are written to",
			},
			&cli.BoolFlag{
				Name:  "trace",
				Usage: "print errors with a stack trace",
			},
		},
		Before: func(c *cli.Context) error {
			logger, err := newLogger(stderr, c.String("log-level"), c.String("log-format"))
			if err != nil {
				return err
			}
			st.logger = logger
			st.trace = c.Bool("trace")

			st.profiler, err = startProfile(c.String("profile"), c.String("profile-dir"))
			return err
		},
		After: func(*cli.Context) error {
			if st.profiler != nil {
				st.profiler.Stop()
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "run the main function of a file",
				ArgsUsage: "FILE",
				Action:    st.run,
			},
			{
				Name:      "parse",
				Usage:     "print the parse tree of a file",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "dump",
						Usage: "dump the Go representation of the tree",
					},
				},
				Action: st.parse,
			},
			{
				Name:      "check",
				Usage:     "report problems in a file without running it",
				ArgsUsage: "FILE",
				Action:    st.check,
			},
			{
				Name:      "tokens",
				Usage:     "print the tokens of a file",
				ArgsUsage: "FILE",
				Action:    st.tokens,
			},
			{
				Name:   "repl",
				Usage:  "start an interactive session",
				Action: st.repl,
			},
		},
	}
}

func (st *state) runner() *driver.Runner {
	return driver.NewRunner(driver.WithOutput(st.stdout), driver.WithLogger(st.logger))
}

func fileArg(c *cli.Context) (string, error) {
	if c.Args().Len() != 1 {
		return "", fmt.Errorf("%s: expected one FILE argument, got %d", c.Command.Name, c.Args().Len())
	}
	return c.Args().First(), nil
}

func (st *state) run(c *cli.Context) error {
	path, err := fileArg(c)
	if err != nil {
		return err
	}

	err = st.runner().RunFile(path)
	if err == nil {
		return nil
	}
	// The file was readable a moment ago; a failure here only loses the excerpt.
	source, _ := os.ReadFile(path)
	return st.report(filepath.Base(path), string(source), err, candidates(string(source)))
}

func (st *state) parse(c *cli.Context) error {
	path, err := fileArg(c)
	if err != nil {
		return err
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return st.report(path, "", tracerr.Wrap(err), nil)
	}

	name := filepath.Base(path)
	module, err := st.runner().Parse(name, string(source))
	if module != nil {
		if c.Bool("dump") {
			repr.New(st.stdout, repr.Indent("  ")).Println(module)
		} else {
			fmt.Fprint(st.stdout, module)
		}
	}
	if err != nil {
		return st.report(name, string(source), err, nil)
	}
	return nil
}

func (st *state) check(c *cli.Context) error {
	path, err := fileArg(c)
	if err != nil {
		return err
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return st.report(path, "", tracerr.Wrap(err), nil)
	}

	name := filepath.Base(path)
	runner := st.runner()
	module, err := runner.Parse(name, string(source))
	if err != nil {
		return st.report(name, string(source), err, nil)
	}

	r := diagnostic.NewRenderer(st.stderr, name, string(source))
	for _, w := range runner.Check(module).Warnings {
		fmt.Fprint(st.stderr, r.RenderWarning(w))
	}
	return nil
}

func (st *state) tokens(c *cli.Context) error {
	path, err := fileArg(c)
	if err != nil {
		return err
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return st.report(path, "", tracerr.Wrap(err), nil)
	}

	for _, tok := range lexer.Lex(string(source)) {
		fmt.Fprintln(st.stdout, tok)
	}
	return nil
}
