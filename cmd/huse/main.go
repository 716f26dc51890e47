package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"

	"github.com/reoring/huse"
	"github.com/reoring/huse/i18n"
	"github.com/reoring/huse/json"
	"github.com/reoring/huse/tree"
	"github.com/reoring/huse/yaml"
)

const (
	exitOK    = 0
	exitData  = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return exitUsage
	}
	switch args[0] {
	case "fmt":
		return fmtCmd(args[1:], stdin, stdout, stderr)
	case "convert":
		return convertCmd(args[1:], stdin, stdout, stderr)
	case "help", "-h", "-help", "--help":
		usage(stdout)
		return exitOK
	default:
		usage(stderr)
		return exitUsage
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "huse CLI\n\nUsage:\n  huse fmt [-compact] [-d] [-color auto|always|never] [-driver gojson|std] [-max-depth N] [-max-bytes N] [-dup ignore|warn|error] [-lang en|ja] [file]\n  huse convert [-from json|yaml] [-to json|yaml] [-compact] [-indent N] [file]\n\nWithout a file argument the document is read from standard input.")
}

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}

// decodeFlags are shared by every subcommand that reads a document.
type decodeFlags struct {
	maxDepth int
	maxBytes int64
	dup      string
	lang     string
}

func (f *decodeFlags) register(fs *flag.FlagSet) {
	fs.IntVar(&f.maxDepth, "max-depth", 0, "maximum nesting depth (0: unlimited)")
	fs.Int64Var(&f.maxBytes, "max-bytes", 0, "maximum input size in bytes (0: unlimited)")
	fs.StringVar(&f.dup, "dup", "ignore", "duplicate keys: ignore, warn or error")
	fs.StringVar(&f.lang, "lang", "en", "language of issue messages: en or ja")
}

func (f *decodeFlags) options(log *slog.Logger) (huse.DecodeOpt, error) {
	opt := huse.DecodeOpt{MaxDepth: f.maxDepth, MaxBytes: f.maxBytes}
	switch f.dup {
	case "ignore":
		opt.Strictness.OnDuplicateKey = huse.Ignore
	case "warn":
		opt.Strictness.OnDuplicateKey = huse.Warn
	case "error":
		opt.Strictness.OnDuplicateKey = huse.Error
	default:
		return opt, fmt.Errorf("invalid -dup %q", f.dup)
	}
	i18n.SetLanguage(f.lang)
	opt.IssueSink = func(it huse.Issue) {
		log.Warn(i18n.T(it.Code, nil), "path", pathOrRoot(it.Path), "detail", it.Message)
	}
	return opt, nil
}

func pathOrRoot(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

// readInput reads the single optional file argument, or stdin.
func readInput(fs *flag.FlagSet, stdin io.Reader) ([]byte, string, error) {
	switch fs.NArg() {
	case 0:
		data, err := io.ReadAll(stdin)
		return data, "<stdin>", err
	case 1:
		name := fs.Arg(0)
		data, err := os.ReadFile(name)
		return data, name, err
	default:
		return nil, "", errors.New("at most one input file")
	}
}

func decode(format string, data []byte, opt huse.DecodeOpt) (*tree.Value, error) {
	var (
		d   *huse.Deserializer
		err error
	)
	switch format {
	case "json":
		d, err = json.NewDeserializerBytes(data, opt)
	case "yaml":
		d, err = yaml.NewDeserializer(data, opt)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return nil, err
	}
	v := new(tree.Value)
	if err := d.Val(v); err != nil {
		return nil, err
	}
	return v, d.Close()
}

// report prints a failure and returns the matching exit status.
func report(stderr io.Writer, name string, err error) int {
	iss, ok := huse.AsIssues(err)
	if !ok {
		fmt.Fprintf(stderr, "%s: %v\n", name, err)
		return exitData
	}
	for _, it := range iss {
		line := fmt.Sprintf("%s: %s: %s", name, pathOrRoot(it.Path), i18n.T(it.Code, nil))
		if it.Message != "" {
			line += " (" + it.Message + ")"
		}
		if it.Offset >= 0 {
			line += " at byte " + strconv.FormatInt(it.Offset, 10)
		}
		fmt.Fprintln(stderr, line)
	}
	return exitData
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
