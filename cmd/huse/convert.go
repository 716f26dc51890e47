package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/reoring/huse/json"
	"github.com/reoring/huse/yaml"
)

func convertCmd(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		df      decodeFlags
		from    string
		to      string
		compact bool
		indent  int
	)
	df.register(fs)
	fs.StringVar(&from, "from", "json", "input format: json or yaml")
	fs.StringVar(&to, "to", "yaml", "output format: json or yaml")
	fs.BoolVar(&compact, "compact", false, "compact output (single-line JSON or flow-style YAML)")
	fs.IntVar(&indent, "indent", 2, "YAML indentation width")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if from != "json" && from != "yaml" {
		fmt.Fprintf(stderr, "invalid -from %q\n", from)
		return exitUsage
	}
	if to != "json" && to != "yaml" {
		fmt.Fprintf(stderr, "invalid -to %q\n", to)
		return exitUsage
	}
	log := newLogger(stderr)
	opt, err := df.options(log)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	data, name, err := readInput(fs, stdin)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	v, err := decode(from, data, opt)
	if err != nil {
		return report(stderr, name, err)
	}

	var res []byte
	if to == "json" {
		res, err = json.Marshal(v, json.Options{Pretty: !compact})
		res = append(res, '\n')
	} else {
		res, err = yaml.Marshal(v, yaml.Options{Compact: compact, Indent: indent})
	}
	if err != nil {
		return report(stderr, name, err)
	}
	log.Debug("converted", "from", from, "to", to, "bytes", len(res))
	if _, err := stdout.Write(res); err != nil {
		log.Error("write failed", "error", err)
		return exitData
	}
	return exitOK
}
