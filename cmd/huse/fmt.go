package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/reoring/huse"
	"github.com/reoring/huse/json"
)

func fmtCmd(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("fmt", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		df       decodeFlags
		compact  bool
		showDiff bool
		colors   string
		driver   string
	)
	df.register(fs)
	fs.BoolVar(&compact, "compact", false, "emit compact JSON without whitespace")
	fs.BoolVar(&showDiff, "d", false, "print a line diff against the input instead of the result")
	fs.StringVar(&colors, "color", "auto", "colour output: auto, always or never")
	fs.StringVar(&driver, "driver", "gojson", "JSON token driver: gojson or std")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	log := newLogger(stderr)
	opt, err := df.options(log)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	prev := huse.CurrentJSONDriver()
	defer huse.SetJSONDriver(prev)
	switch driver {
	case "gojson":
		huse.UseDefaultJSONDriver()
	case "std":
		huse.SetJSONDriver(huse.StdJSONDriver())
	default:
		fmt.Fprintf(stderr, "invalid -driver %q\n", driver)
		return exitUsage
	}

	out := json.Options{Pretty: !compact}
	switch colors {
	case "always":
		out.Colors = json.NewColors()
	case "auto":
		if !showDiff && isTerminal(stdout) {
			out.Colors = json.NewColors()
		}
	case "never":
	default:
		fmt.Fprintf(stderr, "invalid -color %q\n", colors)
		return exitUsage
	}

	data, name, err := readInput(fs, stdin)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	v, err := decode("json", data, opt)
	if err != nil {
		return report(stderr, name, err)
	}
	res, err := json.Marshal(v, out)
	if err != nil {
		return report(stderr, name, err)
	}
	res = append(res, '\n')
	if showDiff {
		writeDiff(stdout, string(data), string(res))
		return exitOK
	}
	if _, err := stdout.Write(res); err != nil {
		log.Error("write failed", "error", err)
		return exitData
	}
	return exitOK
}

// writeDiff prints a line-oriented diff of from against to, in the manner of
// diff -u without hunk headers. Identical inputs print nothing.
func writeDiff(w io.Writer, from, to string) {
	if from == to {
		return
	}
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			if !strings.HasSuffix(line, "\n") {
				line += "\n"
			}
			fmt.Fprint(w, prefix+line)
		}
	}
}
