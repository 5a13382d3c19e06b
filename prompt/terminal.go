package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"golang.org/x/term"

	"github.com/stencil-cli/stencil/errors"
	"github.com/stencil-cli/stencil/variable"
)

// Terminal asks questions over a line-oriented reader/writer pair,
// blocking until the operator answers. Validation failures re-prompt in
// place; a closed input stream aborts the run.
type Terminal struct {
	in   *bufio.Reader
	raw  io.Reader
	out  io.Writer
	warn *pterm.PrefixPrinter
}

// NewTerminal returns a terminal asker reading from in and writing
// questions and menus to out.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	warn := pterm.Warning.WithWriter(out)
	return &Terminal{
		in:   bufio.NewReader(in),
		raw:  in,
		out:  out,
		warn: warn,
	}
}

func (t *Terminal) readLine() (string, error) {
	line, err := t.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", errors.Wrap(errors.ErrAborted, "input closed")
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Text implements Asker.
func (t *Terminal) Text(question, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(t.out, "%s (%s): ", question, def)
	} else {
		fmt.Fprintf(t.out, "%s: ", question)
	}
	answer, err := t.readLine()
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// YesNo implements Asker.
func (t *Terminal) YesNo(question string, def bool) (bool, error) {
	defWord := "n"
	if def {
		defWord = "y"
	}
	for {
		fmt.Fprintf(t.out, "%s [y/n] (%s): ", question, defWord)
		answer, err := t.readLine()
		if err != nil {
			return false, err
		}
		if strings.TrimSpace(answer) == "" {
			return def, nil
		}
		if value, ok := ParseBoolToken(answer); ok {
			return value, nil
		}
		t.warn.Println("Please answer yes or no (y, n, true, false, 1, 0, on, off)")
	}
}

// Choice implements Asker.
func (t *Terminal) Choice(question string, options []*variable.OrderedDict, defaultIndex int) (*variable.OrderedDict, error) {
	if len(options) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyChoices, question)
	}
	if defaultIndex < 0 || defaultIndex >= len(options) {
		defaultIndex = 0
	}

	fmt.Fprintln(t.out, question)
	for i, opt := range options {
		fmt.Fprintf(t.out, "    %s - %s\n", pterm.FgMagenta.Sprint(i+1), OptionLabel(opt))
	}

	for {
		fmt.Fprintf(t.out, "    Choose from [1-%d] (%d): ", len(options), defaultIndex+1)
		answer, err := t.readLine()
		if err != nil {
			return nil, err
		}
		answer = strings.TrimSpace(answer)
		if answer == "" {
			return options[defaultIndex], nil
		}
		n, err := strconv.Atoi(answer)
		if err != nil || n < 1 || n > len(options) {
			t.warn.Printfln("Invalid selection %q, pick a number between 1 and %d", answer, len(options))
			continue
		}
		return options[n-1], nil
	}
}

// JSONObject implements Asker. The default mapping is not dumped into the
// question; the operator sees a "default" marker and keeps it by
// submitting nothing.
func (t *Terminal) JSONObject(question string, def *variable.OrderedDict) (*variable.OrderedDict, error) {
	for {
		fmt.Fprintf(t.out, "%s (default): ", question)
		answer, err := t.readLine()
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(answer) == "" {
			if def == nil {
				return variable.NewOrderedDict(), nil
			}
			return def.Clone(), nil
		}
		parsed, err := DecodeObject(answer)
		if err != nil {
			t.warn.Println(err.Error())
			continue
		}
		return parsed, nil
	}
}

// Password implements Asker. Echo is suppressed when the input is a real
// terminal; otherwise it falls back to a plain line read.
func (t *Terminal) Password(question string) (string, error) {
	fmt.Fprintf(t.out, "%s: ", question)
	if f, ok := t.raw.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		secret, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(t.out)
		if err != nil {
			return "", errors.Wrap(errors.ErrAborted, "password read failed")
		}
		return string(secret), nil
	}
	return t.readLine()
}
