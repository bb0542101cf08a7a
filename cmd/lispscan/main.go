// Command lispscan tokenizes Lisp source files and prints their lexemes.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fortio.org/safecast"
	"github.com/agentable/lispscan"
	"github.com/agentable/lispscan/idents"
	"github.com/peterh/liner"
)

const (
	appName     = "lispscan"
	historyFile = ".lispscan_history"
	promptMain  = "lisp> "
	promptCont  = "...   "
)

func red(s string) string { return "\x1b[31m" + s + "\x1b[0m" }

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}

	cmd := os.Args[1]
	switch cmd {
	case "tokens":
		os.Exit(cmdTokens(os.Args[2:], os.Stdin, os.Stdout, os.Stderr))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "-h", "--help", "help":
		usage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage(os.Stderr)
		os.Exit(2)
	}
}

func usage(w io.Writer) {
	fmt.Fprintf(w, `Usage:
  %s tokens [-json] [-comments] [-idents name] [-buf n] [file ...]
                                  Print the lexemes of each file (stdin if none).
  %s repl [-idents name]          Tokenize lines read interactively.

Identifier sets: %s
`, appName, appName, strings.Join(idents.Names(), ", "))
}

// config holds the flags shared by the subcommands.
type config struct {
	json     bool
	comments bool
	idents   string
	buf      uint
}

func (c *config) register(fs *flag.FlagSet) {
	fs.StringVar(&c.idents, "idents", "lisp", "identifier set: "+strings.Join(idents.Names(), ", "))
}

// options turns the flags into scanner options.
func (c *config) options() ([]lispscan.Option, error) {
	cl, ok := idents.Lookup(c.idents)
	if !ok {
		return nil, fmt.Errorf("unknown identifier set %q", c.idents)
	}
	mode := lispscan.LispTokens
	if c.comments {
		mode = mode.Without(lispscan.SkipComments)
	}
	opts := []lispscan.Option{lispscan.WithMode(mode), lispscan.WithIdentClassifier(cl)}
	if c.buf > 0 {
		n, err := safecast.Conv[int](c.buf)
		if err != nil {
			return nil, fmt.Errorf("buffer size: %w", err)
		}
		opts = append(opts, lispscan.WithBufferSize(n))
	}
	return opts, nil
}

// -----------------------------------------------------------------------------
// tokens
// -----------------------------------------------------------------------------

func cmdTokens(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var c config
	fs := flag.NewFlagSet("tokens", flag.ContinueOnError)
	fs.SetOutput(stderr)
	c.register(fs)
	fs.BoolVar(&c.json, "json", false, "print one JSON object per lexeme")
	fs.BoolVar(&c.comments, "comments", false, "include comments in the output")
	fs.UintVar(&c.buf, "buf", 0, "read window size in bytes (0 for the default)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	opts, err := c.options()
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", appName, err)
		return 2
	}

	ret := 0
	scan := func(name string, r io.Reader) {
		if err := printTokens(stdout, stderr, r, c.json, append(opts, lispscan.WithFilename(name))...); err != nil {
			fmt.Fprintln(stderr, red(err.Error()))
			ret = 1
		}
	}

	paths := fs.Args()
	if len(paths) == 0 {
		scan("<stdin>", stdin)
		return ret
	}
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			fmt.Fprintln(stderr, red(err.Error()))
			ret = 1
			continue
		}
		scan(p, f)
		_ = f.Close()
	}
	return ret
}

var errLexical = errors.New("lexical errors")

// printTokens writes every lexeme of r to w. Diagnostics go to errw; any
// diagnostic or read failure makes printTokens return an error.
func printTokens(w, errw io.Writer, r io.Reader, asJSON bool, opts ...lispscan.Option) error {
	opts = append(opts, lispscan.WithErrorHandler(func(err *lispscan.Error) {
		fmt.Fprintln(errw, red(err.Error()))
	}))
	s := lispscan.New(r, opts...)

	if asJSON {
		if _, err := s.WriteJSON(w); err != nil {
			return err
		}
	} else {
		for lx := range s.All() {
			if _, err := fmt.Fprintln(w, lx); err != nil {
				return err
			}
		}
		if err := s.Err(); err != nil {
			return fmt.Errorf("%s: %w", s.Position.Filename, err)
		}
	}
	if n := s.ErrorCount(); n > 0 {
		return fmt.Errorf("%s: %d %w", s.Position.Filename, n, errLexical)
	}
	return nil
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func cmdRepl(args []string) int {
	var c config
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	c.register(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	c.comments = true
	opts, err := c.options()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 2
	}

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		code, ok := readForm(ln, opts)
		if !ok {
			fmt.Println()
			return 0
		}
		switch strings.TrimSpace(code) {
		case "":
			continue
		case ":quit":
			return 0
		}
		if err := printTokens(os.Stdout, os.Stderr, strings.NewReader(code), false,
			append(opts, lispscan.WithFilename("<repl>"))...); err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}
}

// readForm reads lines until the brackets opened so far are closed.
func readForm(ln *liner.State, opts []lispscan.Option) (string, bool) {
	var b strings.Builder
	prompt := promptMain
	for {
		line, err := ln.Prompt(prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) && b.Len() > 0 {
				// abandon the unfinished form
				b.Reset()
				prompt = promptMain
				continue
			}
			return "", false
		}
		b.WriteString(line)
		b.WriteByte('\n')
		if depth(b.String(), opts...) <= 0 {
			return b.String(), true
		}
		prompt = promptCont
	}
}

// depth returns the bracket nesting left open at the end of src. Brackets
// inside strings and comments do not count.
func depth(src string, opts ...lispscan.Option) int {
	opts = append(opts, lispscan.WithErrorHandler(func(*lispscan.Error) {}))
	s := lispscan.New(strings.NewReader(src), opts...)
	n := 0
	for lx := range s.All() {
		switch {
		case lx.Token.Kind == lispscan.Ident && lx.Text == "#{":
			n++
		case lx.Token.Kind != lispscan.Char:
		case strings.ContainsRune("([{", lx.Token.Char):
			n++
		case strings.ContainsRune(")]}", lx.Token.Char):
			n--
		}
	}
	return n
}
