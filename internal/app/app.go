// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"fquack/internal/cli"
	"fquack/internal/cmdutil"
	"fquack/internal/config"
	"fquack/internal/debuglog"
	"fquack/internal/output"
	"fquack/internal/scan"
	"fquack/internal/vtab"
	"fquack/internal/version"
	"fquack/internal/writers"
)

// Exit codes.
const (
	ExitOK       = 0
	ExitUsage    = 2
	ExitRuntime  = 3
	ExitCanceled = 130
)

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) (code int) {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("fquack")
	fs.SetOutput(io.Discard)

	usage := func(code int) int {
		fs.SetOutput(outw)
		fs.Usage()
		return flushed(outw, stderr, code)
	}

	if len(argv) == 0 {
		return usage(ExitOK)
	}
	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return usage(ExitOK)
		}
		_, _ = fmt.Fprintln(stderr, err)
		return usage(ExitUsage)
	}
	if opts.Version {
		_, _ = fmt.Fprintf(outw, "fquack version %s\n", version.Version)
		return flushed(outw, stderr, ExitOK)
	}

	if _, err := config.LoadEnvFiles(opts.EnvFiles); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return ExitUsage
	}
	cfg, err := config.Resolve(opts.ConfigPath)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return ExitUsage
	}
	opts.ApplyConfig(cfg)
	if err := opts.Validate(); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return ExitUsage
	}

	debuglog.SetOutput(stderr)
	debuglog.SetEnabled(opts.Debug || debuglog.FromEnv())

	scfg := scan.Config{BatchSize: opts.BatchSize, Mmap: opts.Mmap, Threads: opts.Threads}

	dst := io.Writer(outw)
	if opts.OutPath != "" && opts.Output != cli.OutputSQLite {
		f, err := createOut(opts.OutPath)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return ExitRuntime
		}
		defer func() {
			if err := f.Close(); err != nil {
				_, _ = fmt.Fprintf(stderr, "close %s: %v\n", opts.OutPath, err)
				if code == ExitOK {
					code = ExitRuntime
				}
			}
		}()
		bw := bufio.NewWriterSize(f, 1<<20)
		defer func() { _ = bw.Flush() }()
		dst = bw
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	switch opts.Output {
	case cli.OutputCount:
		return runCount(ctx, dst, outw, stderr, scfg, opts)
	case cli.OutputArrow:
		return runArrow(ctx, dst, outw, stderr, scfg, opts)
	}
	return runRows(ctx, dst, outw, stderr, scfg, opts)
}

// createOut opens the --out file.
var createOut = func(path string) (io.WriteCloser, error) { return os.Create(path) }

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// runRows streams every produced batch to the selected writer.
func runRows(ctx context.Context, dst io.Writer, outw *bufio.Writer, stderr io.Writer, scfg scan.Config, opts cli.Options) int {
	inCh, writeErr := writers.Start(opts.Output, dst, writers.Options{
		Header:       opts.Header,
		SourceColumn: opts.SourceColumn,
		DBPath:       opts.DBPath,
		BufSize:      4,
	})

	total, serr := cmdutil.RunStream(ctx, scfg, opts.SeqFiles, func(b scan.Batch) error {
		select {
		case inCh <- b:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	close(inCh)

	if werr := <-writeErr; writers.IsBrokenPipe(werr) {
		return ExitOK
	} else if werr != nil {
		_, _ = fmt.Fprintln(stderr, werr)
		return ExitRuntime
	}
	if code := flushDst(dst, outw, stderr); code >= 0 {
		return code
	}
	if serr != nil {
		return reportScanError(stderr, serr)
	}
	if total == 0 {
		cmdutil.Warnf(stderr, opts.Quiet, "no FASTQ records found in %d input file(s)", len(opts.SeqFiles))
	}
	return ExitOK
}

// runArrow produces straight into Arrow record batches.
func runArrow(ctx context.Context, dst io.Writer, outw *bufio.Writer, stderr io.Writer, scfg scan.Config, opts cli.Options) int {
	total, err := writers.WriteArrow(ctx, scfg, opts.SeqFiles, dst, nil)
	if code := flushDst(dst, outw, stderr); code >= 0 {
		return code
	}
	if err != nil {
		return reportScanError(stderr, err)
	}
	if total == 0 {
		cmdutil.Warnf(stderr, opts.Quiet, "no FASTQ records found in %d input file(s)", len(opts.SeqFiles))
	}
	return ExitOK
}

// runCount prints "file<TAB>rows" per input in argument order.
func runCount(ctx context.Context, dst io.Writer, outw *bufio.Writer, stderr io.Writer, scfg scan.Config, opts cli.Options) int {
	counts, err := scan.Count(ctx, scfg, opts.SeqFiles)
	if err != nil {
		return reportScanError(stderr, err)
	}
	if opts.Header {
		_, _ = fmt.Fprintln(dst, output.CountHeader)
	}
	for _, c := range counts {
		if _, err := fmt.Fprintf(dst, "%s\t%d\n", c.File, c.Rows); err != nil {
			break
		}
	}
	if code := flushDst(dst, outw, stderr); code >= 0 {
		return code
	}
	return ExitOK
}

// reportScanError maps a scan failure to an exit code.
func reportScanError(stderr io.Writer, err error) int {
	switch {
	case errors.Is(err, context.Canceled):
		return ExitCanceled
	case writers.IsBrokenPipe(err):
		return ExitOK
	}
	_, _ = fmt.Fprintln(stderr, err)
	if vtab.IsKind(err, vtab.ArgumentError) {
		return ExitUsage
	}
	return ExitRuntime
}

// flushDst flushes the output file buffer (when dst is one) and stdout.
// It returns -1 when both succeeded.
func flushDst(dst io.Writer, outw *bufio.Writer, stderr io.Writer) int {
	if bw, ok := dst.(*bufio.Writer); ok && bw != outw {
		if err := bw.Flush(); err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return ExitRuntime
		}
	}
	if err := outw.Flush(); writers.IsBrokenPipe(err) {
		return ExitOK
	} else if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return ExitRuntime
	}
	return -1
}

func flushed(outw *bufio.Writer, stderr io.Writer, code int) int {
	if err := outw.Flush(); writers.IsBrokenPipe(err) {
		return ExitOK
	} else if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return ExitRuntime
	}
	return code
}
