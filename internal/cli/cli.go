// Package cli implements tuplecat, a filter that converts enclosed tuples
// between wire formats and queries them.
//
// Usage:
//
//	tuplecat [flags] [file]
//
// Records are read from file (or stdin when absent or "-"), one tuple per
// record, and written to stdout. Without a query flag every record is
// re-encoded with the -to codec. -count prints the element count of each
// record, -find/-find-null print the index of the first matching element
// and -template renders each record through a placeholder template.
package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/rawbytedev/enclosed"
	"github.com/rawbytedev/enclosed/internal/codec"
	"github.com/rawbytedev/enclosed/pkg/multitask"
	"github.com/rawbytedev/enclosed/pkg/placeholder"
)

type mode uint8

const (
	modeConvert mode = iota
	modeCount
	modeFind
	modeTemplate
)

type options struct {
	Config
	input  string
	mode   mode
	target enclosed.Element
}

// record is one input tuple in its enclosed text form together with the
// result computed for it.
type record struct {
	index int
	src   string
	line  string
	tuple enclosed.Tuple
}

// Run executes tuplecat with args, which exclude the program name, and
// returns the process exit code.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, "tuplecat:", err)
		return 2
	}

	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if err := run(ctx, opts, stdin, stdout, logger); err != nil {
		logger.Error("tuplecat failed", "err", err)
		return 1
	}
	return 0
}

func parseArgs(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("tuplecat", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		opts       = options{Config: defaultConfig()}
		cfg        = &opts.Config
		configPath string
		find       string
		findNull   bool
		count      bool
	)
	names := strings.Join(codec.Names(), "|")
	fs.StringVar(&configPath, "config", "", "YAML `file` with default settings")
	fs.StringVar(&cfg.From, "from", cfg.From, "input codec: "+names)
	fs.StringVar(&cfg.To, "to", cfg.To, "output codec: "+names)
	fs.StringVar(&cfg.Separator, "sep", cfg.Separator, "element separator")
	fs.StringVar(&cfg.Escape, "esc", cfg.Escape, "escape character")
	fs.StringVar(&cfg.Null, "null", cfg.Null, "text of the null tuple (default <esc>0)")
	fs.StringVar(&cfg.Template, "template", cfg.Template, "render each record through a {placeholder} template")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "number of concurrent workers")
	fs.BoolVar(&cfg.Zstd, "zstd", cfg.Zstd, "compress frame output with zstd")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "log debug output")
	fs.StringVar(&find, "find", "", "print the index of the first element equal to `value`")
	fs.BoolVar(&findNull, "find-null", false, "print the index of the first null element")
	fs.BoolVar(&count, "count", false, "print the element count of each record")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 1 {
		return options{}, fmt.Errorf("%w: at most one input file, got %d", ErrConfig, fs.NArg())
	}
	opts.input = fs.Arg(0)

	set := map[string]string{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = f.Value.String() })

	if configPath != "" {
		fileCfg, err := LoadConfig(configPath)
		if err != nil {
			return options{}, err
		}
		*cfg = fileCfg
		for name, value := range set {
			if err := fs.Set(name, value); err != nil {
				return options{}, err
			}
		}
	}

	var modes []string
	if count {
		opts.mode = modeCount
		modes = append(modes, "-count")
	}
	if _, ok := set["find"]; ok || findNull {
		opts.mode = modeFind
		opts.target = enclosed.Of(find)
		if findNull {
			opts.target = enclosed.Null()
		}
		modes = append(modes, "-find")
	}
	if cfg.Template != "" {
		opts.mode = modeTemplate
		modes = append(modes, "-template")
	}
	if len(modes) > 1 {
		return options{}, fmt.Errorf("%w: %s are mutually exclusive", ErrConfig, strings.Join(modes, ", "))
	}
	if cfg.Workers < 1 {
		return options{}, fmt.Errorf("%w: %w", ErrConfig, multitask.ErrInvalidWorkers)
	}
	return opts, nil
}

func run(ctx context.Context, opts options, stdin io.Reader, stdout io.Writer, logger *slog.Logger) error {
	format, err := opts.Format()
	if err != nil {
		return err
	}
	from, err := codec.ByName(opts.From, format, false)
	if err != nil {
		return err
	}
	to, err := codec.ByName(opts.To, format, opts.Zstd)
	if err != nil {
		return err
	}

	in := stdin
	if opts.input != "" && opts.input != "-" {
		f, err := os.Open(opts.input)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	records, err := readRecords(from, format, in)
	if err != nil {
		return err
	}
	logger.Debug("read records", "count", len(records), "from", from.Name(), "workers", opts.Workers)

	p := processor{opts: opts, format: format, text: codec.Enclosed{Format: format}}
	err = multitask.RunSlice(ctx, opts.Workers, records, p.process, multitask.WithLogger(logger))
	if err != nil {
		return err
	}

	if opts.mode != modeConvert {
		w := bufio.NewWriter(stdout)
		for _, r := range records {
			w.WriteString(r.line)
			w.WriteByte('\n')
		}
		return w.Flush()
	}
	enc := to.NewEncoder(stdout)
	for _, r := range records {
		if err := enc.Encode(r.tuple); err != nil {
			return fmt.Errorf("record %d: %w", r.index+1, err)
		}
	}
	logger.Debug("wrote records", "count", len(records), "to", to.Name())
	return enc.Close()
}

// readRecords reads every input tuple as enclosed text. Enclosed input is
// kept verbatim so malformed lines reach the query modes unchanged.
func readRecords(from codec.Codec, format enclosed.Format, r io.Reader) ([]*record, error) {
	var records []*record
	if _, ok := from.(codec.Enclosed); ok {
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 64<<10), 64<<20)
		for sc.Scan() {
			src := strings.TrimSuffix(sc.Text(), "\r")
			records = append(records, &record{index: len(records), src: src})
		}
		return records, sc.Err()
	}

	format.AllowNull = true
	dec := from.NewDecoder(r)
	for {
		t, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", len(records)+1, err)
		}
		src, err := format.Encode(t)
		if err != nil {
			return nil, err
		}
		records = append(records, &record{index: len(records), src: src})
	}
}

type processor struct {
	opts   options
	format enclosed.Format
	text   codec.Enclosed
}

func (p processor) isNull(src string) bool {
	return p.opts.Null != "" && src == p.opts.Null
}

func (p processor) process(_ context.Context, r *record) error {
	switch p.opts.mode {
	case modeCount:
		n := 0
		if !p.isNull(r.src) {
			n = p.format.ForEach(r.src, nil)
		}
		r.line = strconv.Itoa(n)
		return nil
	case modeFind:
		i := enclosed.NotFound
		if !p.isNull(r.src) {
			i = p.format.IndexOf(r.src, p.opts.target)
		}
		r.line = strconv.Itoa(i)
		return nil
	}

	t, err := p.text.Unmarshal([]byte(r.src))
	if err != nil {
		return fmt.Errorf("record %d: %w", r.index+1, err)
	}
	if p.opts.mode == modeConvert {
		r.tuple = t
		return nil
	}

	values := map[string]string{
		"index": strconv.Itoa(r.index),
		"count": strconv.Itoa(len(t)),
		"tuple": r.src,
	}
	for i, e := range t {
		if v, ok := e.Value(); ok {
			values[strconv.Itoa(i)] = v
		}
	}
	r.line = placeholder.ResolveMap(p.opts.Template, values)
	return nil
}
