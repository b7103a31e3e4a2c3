package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/itchyny/gojq"

	"github.com/gosuda/aeroki"
	"github.com/gosuda/aeroki/config"
	"github.com/gosuda/aeroki/lexer"
	"github.com/gosuda/aeroki/parser"
	aruntime "github.com/gosuda/aeroki/runtime"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("aeroki-inspect", flag.ContinueOnError)
	fs.SetOutput(stderr)
	tokens := fs.Bool("tokens", false, "dump the tokens of every line")
	trees := fs.Bool("ast", false, "dump the parsed header and expression tree of every line")
	state := fs.Bool("state", false, "run the script and print the final runtime state as JSON")
	query := fs.String("q", "", "jq filter applied to the -state output")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 || (!*tokens && !*trees && !*state) {
		fmt.Fprintln(stderr, "usage: aeroki-inspect -tokens|-ast|-state [-q filter] script")
		return 2
	}
	path := fs.Arg(0)
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stderr, "inspect: %v\n", err)
		return 1
	}
	lines := aeroki.LoadScript(filepath.Base(path), string(src))

	if *tokens {
		dumpTokens(stdout, lines)
	}
	if *trees {
		dumpTrees(stdout, lines)
	}
	if *state {
		if err := dumpState(stdout, stdin, lines, *query); err != nil {
			fmt.Fprintf(stderr, "inspect: %v\n", err)
			return 1
		}
	}
	return 0
}

func dumpTokens(w io.Writer, lines []parser.Line) {
	for _, l := range lines {
		toks := lexer.Lex(l.Content)
		parts := make([]string, 0, len(toks))
		for _, t := range toks[:len(toks)-1] {
			if t.Text == "" || t.Text == t.Kind.String() {
				parts = append(parts, t.Kind.String())
				continue
			}
			parts = append(parts, fmt.Sprintf("%s(%s)", t.Kind, t.Text))
		}
		fmt.Fprintf(w, "%s: %s\n", l.Pos(), strings.Join(parts, " "))
	}
}

// dumpTrees prints one line per statement, indented by block depth.
func dumpTrees(w io.Writer, lines []parser.Line) {
	depth := 0
	for _, l := range lines {
		toks := lexer.Lex(l.Content)
		head := toks[0].Kind
		if (head == lexer.END || head == lexer.ELSE) && depth > 0 {
			depth--
		}
		desc, err := describe(toks)
		if err != nil {
			desc = "error: " + err.Error()
		}
		fmt.Fprintf(w, "%s: %s%s\n", l.Pos(), strings.Repeat("  ", depth), desc)
		if head.IsBlockOpener() || head == lexer.ELSE {
			depth++
		}
	}
}

func describe(toks []lexer.Token) (string, error) {
	head, args := toks[0].Kind, toks[1:]
	switch head {
	case lexer.GIVE:
		g, err := parser.ParseGive(args)
		if err != nil {
			return "", err
		}
		target := g.Name
		if g.Index != nil {
			target += "[" + g.Index.String() + "]"
		}
		return fmt.Sprintf("GIVE %s %s %s", target, g.Op, g.Expr), nil
	case lexer.IF, lexer.WHILE:
		t, err := parser.ParseCond(args)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s %s", head, t), nil
	case lexer.FOR:
		h, err := parser.ParseFor(args)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("FOR %s %s %s", h.Var, h.Start, h.End), nil
	case lexer.FUNC:
		d, err := parser.ParseFuncDef(args)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("FUNC %s(%s)", d.Name, strings.Join(d.Params, ", ")), nil
	case lexer.FIND, lexer.PREC:
		t, err := parser.ParseExpr(args)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s %s", head, t), nil
	case lexer.PRINT, lexer.PRINTLN:
		p, err := parser.ParsePrint(args)
		if err != nil {
			return "", err
		}
		if p.IsString {
			return fmt.Sprintf("%s %q", head, p.Text), nil
		}
		return fmt.Sprintf("%s %s", head, p.Expr), nil
	case lexer.RETURN:
		t, err := parser.ParseOptionalExpr(args)
		if err != nil || t == nil {
			return head.String(), err
		}
		return fmt.Sprintf("RETURN %s", t), nil
	case lexer.CALL:
		t, err := parser.ParseCall(args)
		if err != nil {
			return "", err
		}
		return t.String(), nil
	case lexer.ARRAY:
		d, err := parser.ParseArrayDecl(args)
		if err != nil {
			return "", err
		}
		if d.Size == nil {
			return "ARRAY " + d.Name, nil
		}
		return fmt.Sprintf("ARRAY %s[%s]", d.Name, d.Size), nil
	case lexer.PUSH:
		p, err := parser.ParsePush(args)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("PUSH %s %s", p.Name, p.Expr), nil
	case lexer.INPUT, lexer.POP:
		name, err := parser.ParseName(args)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s %s", head, name), nil
	}
	return head.String(), nil
}

// dumpState runs the script with stdin lines as input values and prints
// the final snapshot, optionally through a jq filter.
func dumpState(w io.Writer, stdin io.Reader, lines []parser.Line, query string) error {
	conf := config.Default()
	if err := conf.ApplyEnv(os.LookupEnv); err != nil {
		return err
	}
	vm := aruntime.New(conf)
	sc := bufio.NewScanner(stdin)
	vm.SetInputProvider(func(aruntime.InputRequest) (string, bool, error) {
		if !sc.Scan() {
			return "", false, sc.Err()
		}
		return sc.Text(), true, nil
	})
	_, runErr := vm.Run(lines)
	var fe *aruntime.FatalError
	if runErr != nil && !errors.As(runErr, &fe) {
		return runErr
	}

	raw, err := json.Marshal(vm.Snapshot())
	if err != nil {
		return err
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}
	if fe != nil {
		doc["fatal"] = fe.Error()
	}

	if query == "" {
		return writeJSON(w, doc)
	}
	q, err := gojq.Parse(query)
	if err != nil {
		return fmt.Errorf("invalid query: %w", err)
	}
	iter := q.Run(doc)
	for {
		v, ok := iter.Next()
		if !ok {
			return nil
		}
		if err, ok := v.(error); ok {
			return fmt.Errorf("query: %w", err)
		}
		if err := writeJSON(w, v); err != nil {
			return err
		}
	}
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return err
}
