// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"fquack/internal/cliutil"
	"fquack/internal/config"
	"fquack/internal/scan"
	"fquack/internal/version"
)

// Output formats. Everything but OutputCount is served by a registered writer.
const (
	OutputTSV     = "tsv"
	OutputJSONL   = "jsonl"
	OutputArrow   = "arrow"
	OutputParquet = "parquet"
	OutputSQLite  = "sqlite"
	OutputCount   = "count"
)

var outputs = []string{OutputTSV, OutputJSONL, OutputArrow, OutputParquet, OutputSQLite, OutputCount}

// Options holds all CLI flags and arguments.
type Options struct {
	// Input
	SeqFiles []string
	Mmap     bool

	// Scan
	BatchSize int
	Threads   int

	// Output
	Output       string
	OutPath      string
	DBPath       string
	Header       bool // true unless --no-header
	SourceColumn bool

	// Config / diagnostics
	ConfigPath string
	EnvFiles   []string
	Debug      bool
	Quiet      bool

	Version bool

	// flags given on the command line; config never overrides these
	explicit map[string]bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: scan FASTQ files as a (metadata, sequence, quality) table

Version: %s

Usage of %s:
  %s [flags] FILE...

`, name, version.Version, name, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
// Positional arguments (globs expanded, flags may follow them) are
// appended to --sequences.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	var seq, envFiles stringSlice
	fs.Var(&seq, "sequences", "FASTQ file(s), plain/gzip/zstd (repeatable or '-') [*]")
	fs.BoolVar(&opt.Mmap, "mmap", false, "memory-map plain input files [false]")

	fs.IntVar(&opt.BatchSize, "batch-size", scan.DefaultBatchSize, fmt.Sprintf("rows per produced chunk [%d]", scan.DefaultBatchSize))
	fs.IntVar(&opt.Threads, "threads", 1, "files counted at once (count output only) [1]")

	fs.StringVar(&opt.Output, "output", OutputTSV, "output format: "+strings.Join(outputs, " | ")+" ["+OutputTSV+"]")
	fs.StringVar(&opt.OutPath, "out", "", "write output to this file instead of stdout")
	fs.StringVar(&opt.DBPath, "db", "", "SQLite database file (sqlite output)")
	noHeader := false
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line in TSV/count output [false]")
	fs.BoolVar(&opt.SourceColumn, "source-column", false, "prefix rows with the source file [false]")

	fs.StringVar(&opt.ConfigPath, "config", "", "YAML config file (default $"+config.EnvConfig+")")
	fs.Var(&envFiles, "env-file", ".env file to load before reading the config (repeatable)")
	fs.BoolVar(&opt.Debug, "debug", false, "log producer activity to stderr (also DEBUG=1) [false]")
	fs.BoolVar(&opt.Quiet, "q", false, "suppress warnings (shorthand) [false]")
	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress warnings [false]")

	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	flagArgs, posArgs := cliutil.SplitArgs(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}

	opt.explicit = map[string]bool{}
	fs.Visit(func(f *flag.Flag) { opt.explicit[f.Name] = true })
	if opt.explicit["no-header"] {
		opt.explicit["header"] = true
	}
	if opt.explicit["q"] {
		opt.explicit["quiet"] = true
	}

	files, err := cliutil.ExpandGlobs(append(posArgs, fs.Args()...))
	if err != nil {
		return opt, err
	}
	opt.SeqFiles = append(seq, files...)
	opt.EnvFiles = envFiles
	opt.Header = !noHeader

	if len(opt.SeqFiles) == 0 {
		return opt, errors.New("at least one FASTQ file is required")
	}
	return opt, nil
}

// ApplyConfig fills every option the command line left unset from c.
// A nil c is a no-op.
func (o *Options) ApplyConfig(c *config.Config) {
	if c == nil {
		return
	}
	setFrom(o, "batch-size", &o.BatchSize, c.BatchSize)
	setFrom(o, "threads", &o.Threads, c.Threads)
	setFrom(o, "output", &o.Output, c.Output)
	setFrom(o, "db", &o.DBPath, c.DB)
	setFrom(o, "mmap", &o.Mmap, c.Mmap)
	setFrom(o, "header", &o.Header, c.Header)
	setFrom(o, "source-column", &o.SourceColumn, c.SourceColumn)
	// DEBUG and --debug can only turn debugging on.
	if c.Debug != nil && *c.Debug {
		o.Debug = true
	}
}

// Validate checks the merged options.
func (o *Options) Validate() error {
	if o.BatchSize < 1 {
		return errors.New("--batch-size must be ≥ 1")
	}
	if o.Threads < 0 {
		return errors.New("--threads must be ≥ 0")
	}
	valid := false
	for _, f := range outputs {
		if o.Output == f {
			valid = true
		}
	}
	if !valid {
		return fmt.Errorf("invalid --output %q", o.Output)
	}
	if o.Output == OutputSQLite && o.DBPath == "" {
		return errors.New("--output sqlite requires --db")
	}
	if o.Output != OutputSQLite && o.DBPath != "" && o.explicit["db"] {
		return errors.New("--db only applies to --output sqlite")
	}
	return nil
}

func setFrom[T any](o *Options, name string, dst *T, v *T) {
	if v != nil && !o.explicit[name] {
		*dst = *v
	}
}

// stringSlice allows repeatable string flags.
type stringSlice []string

func (s *stringSlice) String() string     { return strings.Join(*s, ",") }
func (s *stringSlice) Set(v string) error { *s = append(*s, v); return nil }
