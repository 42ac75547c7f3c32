package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/peterh/liner"
	"github.com/takoeight0821/q/driver"
	"github.com/takoeight0821/q/eval"
	"github.com/urfave/cli/v2"
)

var history = filepath.Join(xdg.DataHome, "q", ".q_history")

func (st *state) repl(*cli.Context) error {
	session, err := st.runner().NewSession()
	if err != nil {
		return err
	}

	line := liner.NewLiner()
	defer func() {
		if err := os.MkdirAll(filepath.Dir(history), os.ModePerm); err != nil {
			fmt.Fprintln(st.stderr, err)
		}
		if f, err := os.Create(history); err == nil {
			defer f.Close()
			if _, err := line.WriteHistory(f); err != nil {
				fmt.Fprintln(st.stderr, err)
			}
		}
		line.Close()
	}()

	if f, err := os.Open(history); err == nil {
		defer f.Close()
		if _, err := line.ReadHistory(f); err != nil {
			fmt.Fprintln(st.stderr, err)
		}
	}
	line.SetCtrlCAborts(true)
	line.SetCompleter(completer(session))

	for {
		input, err := line.Prompt("q> ")
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		line.AppendHistory(input)

		st.evalLine(session, input)
	}
}

func (st *state) evalLine(session *driver.Session, input string) {
	v, err := session.Eval(input)
	if err != nil {
		_ = st.report("<repl>", input, err, session.Names())
		return
	}
	if v != nil {
		fmt.Fprintln(st.stdout, eval.Repr(v))
	}
}

// completer completes the identifier under the cursor from the session's names.
func completer(session *driver.Session) liner.Completer {
	return func(line string) []string {
		start := len(line)
		for start > 0 && isIdentByte(line[start-1]) {
			start--
		}
		prefix := line[start:]

		var completions []string
		for _, name := range session.Names() {
			if strings.HasPrefix(name, prefix) {
				completions = append(completions, line[:start]+name)
			}
		}
		return completions
	}
}

func isIdentByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
