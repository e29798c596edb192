package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/zephyrtronium/formulas"
	"github.com/zephyrtronium/formulas/chainage"
	"github.com/zephyrtronium/formulas/measure"
)

func main() {
	log.SetFlags(0)
	var (
		inname, verb, formname string
		notation, start, end   string
		level, format          string
		given                  []measure.FieldDef
		rpn, strict            bool
		prec                   int
	)
	addgiven := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`field definitions must be "label=value", not %q`, s)
		}
		v, err := formulas.EvalString(d[1])
		if err != nil {
			return fmt.Errorf("field %s: %w", d[0], err)
		}
		given = append(given, measure.FieldDef{Label: strings.TrimSpace(d[0]), Value: v})
		return nil
	}
	flag.StringVar(&inname, "in", "", "file of formulas, one per line (- for stdin)")
	flag.StringVar(&verb, "fmt", "%g", "result formatting string")
	flag.StringVar(&formname, "form", "", "YAML form file to evaluate")
	flag.Func("given", "label=value field overriding the form (any number of times)", addgiven)
	flag.BoolVar(&strict, "strict", false, "treat unresolved form fields as invalid instead of zero")
	flag.StringVar(&notation, "chainage", "", "chainage notation of -start and -end (station or km)")
	flag.StringVar(&start, "start", "", "start marker, e.g. 10+0,000")
	flag.StringVar(&end, "end", "", "end marker, e.g. 12+5,000")
	flag.IntVar(&prec, "p", 64, "precision of calculations in bits")
	flag.BoolVar(&rpn, "rpn", false, "print formulas in RPN before their results")
	flag.StringVar(&level, "log-level", "info", "log level: debug, info, warn, or error")
	flag.StringVar(&format, "log-format", "text", "log format: text or json")
	flag.Parse()
	if prec <= 0 {
		log.Fatalf("precision (%d) must be positive", prec)
	}
	logger := newLogger(level, format, os.Stderr)
	verb += "\n"
	failed := false

	n, err := chainage.ParseNotation(notation)
	if err != nil {
		log.Fatal(err)
	}
	if n.Active() {
		markers(n, start, end)
	}

	if formname != "" {
		form, formula, err := loadForm(formname)
		if err != nil {
			log.Fatal(err)
		}
		// Flags override the file.
		form.Standard = append(given, form.Standard...)
		if notation != "" {
			form.Notation = n
		}
		if start != "" {
			form.Start = start
		}
		if end != "" {
			form.End = end
		}
		opts := []measure.Option{measure.Logger(logger), measure.Prec(uint(prec))}
		if strict {
			opts = append(opts, measure.Missing(measure.FailClosed))
		}
		r, err := measure.Evaluate(formula, form, opts...)
		if err != nil {
			fmt.Printf("%v : invalid: %v\n", formula, err)
			failed = true
		} else {
			fmt.Printf("%v : "+verb, formula, r)
		}
	}

	srcs, err := sources(inname, flag.Args())
	if err != nil {
		log.Fatal(err)
	}
	ctx := formulas.NewContext(formulas.Prec(uint(prec)))
	for _, src := range srcs {
		a, err := formulas.ParseString(formulas.Normalize(src))
		if err != nil {
			fmt.Printf("invalid: %v\n", err)
			failed = true
			continue
		}
		if rpn {
			fmt.Printf("%v : ", a)
		}
		r := ctx.Eval(a)
		if _, err := ctx.Float64(); err != nil {
			logger.Debug("invalid formula", slog.String("formula", src), slog.Any("err", err))
			fmt.Printf("invalid: %v\n", err)
			failed = true
			continue
		}
		fmt.Printf(verb, r)
	}
	if failed {
		os.Exit(1)
	}
}

// markers prints the offsets of the start and end markers and the distance
// between them.
func markers(n chainage.Notation, start, end string) {
	for _, m := range []string{start, end} {
		v, err := chainage.ParseStrict(m, n)
		if err != nil {
			// Still printed; a malformed marker reads as zero distance.
			log.Print(err)
		}
		fmt.Printf("%s = %s (%s)\n", m, strconv.FormatFloat(v, 'f', -1, 64), chainage.Format(v, n))
	}
	fmt.Printf("distance = %s\n", strconv.FormatFloat(chainage.Distance(start, end, n), 'f', -1, 64))
}

func loadForm(name string) (*measure.Form, measure.Formula, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return measure.LoadForm(f)
}

// sources collects formulas from args and the input file. With no args and no
// file, formulas are read from stdin.
func sources(inname string, args []string) ([]string, error) {
	var r io.Reader
	switch {
	case inname != "" && inname != "-":
		f, err := os.Open(inname)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	case inname == "-", len(args) == 0 && !flagSet("form") && !flagSet("chainage"):
		r = os.Stdin
	}
	srcs := append([]string(nil), args...)
	if r == nil {
		return srcs, nil
	}
	s := bufio.NewScanner(r)
	for s.Scan() {
		if line := strings.TrimSpace(s.Text()); line != "" {
			srcs = append(srcs, line)
		}
	}
	return srcs, s.Err()
}

func flagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
