// Package batch parses many Quipper inputs in parallel. Each input is
// parsed independently with its own timeout; one failing input never stops
// the others.
package batch

import (
	"context"
	"os"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"qtermquip/quipper"
)

// ErrTimeout is returned for an input whose parse did not finish within
// the runner's timeout.
var ErrTimeout = errors.New("parse timed out")

// Input is a named source text.
type Input struct {
	Name string
	Text string
}

// Result is the outcome of parsing one Input. Exactly one of Program and
// Err is set.
type Result struct {
	Name    string
	Program *quipper.Program
	Err     error
	Elapsed time.Duration
}

// Status classifies the result as "ok", "timeout", "io", "lex", "syntax",
// "semantic" or "error".
func (r Result) Status() string {
	if r.Err == nil {
		return "ok"
	}
	if errors.Is(r.Err, ErrTimeout) {
		return "timeout"
	}
	if kind := quipper.ErrorKind(r.Err); kind != "" {
		return kind
	}
	var pathErr *os.PathError
	if errors.As(r.Err, &pathErr) {
		return "io"
	}
	return "error"
}

// Option configures a Runner.
type Option func(*Runner)

// WithWorkers sets the number of inputs parsed at once; n <= 0 keeps the
// default of GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithTimeout bounds the time spent on each input. Zero disables the
// bound.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) { r.timeout = d }
}

// WithStrictCalls makes calls to undefined subroutines a parse failure.
func WithStrictCalls() Option {
	return func(r *Runner) { r.strict = true }
}

// Runner parses inputs on a bounded number of goroutines.
type Runner struct {
	logger  *zap.Logger
	workers int
	timeout time.Duration
	strict  bool

	parse func(text string, opts ...quipper.Option) (*quipper.Program, error)
}

// New returns a Runner logging to logger, or nowhere when logger is nil.
func New(logger *zap.Logger, opts ...Option) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Runner{
		logger:  logger,
		workers: runtime.GOMAXPROCS(0),
		timeout: 10 * time.Second,
		parse:   quipper.Parse,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ParseAll parses every input and returns the results in input order.
func (r *Runner) ParseAll(ctx context.Context, inputs []Input) []Result {
	return r.run(ctx, len(inputs), func(i int) Result {
		return r.parseOne(ctx, inputs[i])
	})
}

// ParseFiles reads and parses each path. A file that cannot be read yields
// a failed Result like any parse failure.
func (r *Runner) ParseFiles(ctx context.Context, paths []string) []Result {
	return r.run(ctx, len(paths), func(i int) Result {
		data, err := os.ReadFile(paths[i])
		if err != nil {
			res := Result{Name: paths[i], Err: errors.Wrap(err, "read input")}
			r.logFailure(res)
			return res
		}
		return r.parseOne(ctx, Input{Name: paths[i], Text: string(data)})
	})
}

func (r *Runner) run(ctx context.Context, n int, work func(i int) Result) []Result {
	results := make([]Result, n)

	eg := errgroup.Group{}
	eg.SetLimit(r.workers)

	for i := 0; i < n; i++ {
		index := i
		eg.Go(func() error {
			results[index] = work(index)
			return nil
		})
	}

	// Workers never return an error; failures live in the results.
	_ = eg.Wait()
	return results
}

func (r *Runner) parseOne(ctx context.Context, in Input) Result {
	start := time.Now()
	res := Result{Name: in.Name}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	opts := []quipper.Option{quipper.WithFilename(in.Name)}
	if r.strict {
		opts = append(opts, quipper.WithStrictCalls())
	}

	type outcome struct {
		program *quipper.Program
		err     error
	}
	done := make(chan outcome, 1)
	go func() {
		p, err := r.parse(in.Text, opts...)
		done <- outcome{p, err}
	}()

	select {
	case o := <-done:
		res.Program, res.Err = o.program, o.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			res.Err = errors.Wrapf(ErrTimeout, "%s after %s", in.Name, r.timeout)
		} else {
			res.Err = errors.Wrap(ctx.Err(), in.Name)
		}
	}
	res.Elapsed = time.Since(start)

	if res.Err != nil {
		r.logFailure(res)
		return res
	}

	r.logger.Debug(
		"parsed input",
		zap.String("file", res.Name),
		zap.Int("gates", len(res.Program.Circuit.Gates)),
		zap.Int("subroutines", len(res.Program.Subroutines)),
		zap.Duration("elapsed", res.Elapsed),
	)
	if names := res.Program.Report().UnresolvedNames(); len(names) > 0 {
		r.logger.Warn(
			"unresolved subroutine calls",
			zap.String("file", res.Name),
			zap.Strings("names", names),
		)
	}
	return res
}

func (r *Runner) logFailure(res Result) {
	r.logger.Warn(
		"parse failed",
		zap.String("file", res.Name),
		zap.String("status", res.Status()),
		zap.Error(res.Err),
	)
}

// Summary counts the outcomes of a batch.
type Summary struct {
	Total    int
	OK       int
	Failed   int
	TimedOut int
	// Unresolved counts successful inputs that call at least one
	// subroutine they do not define.
	Unresolved int
}

// Summarize counts the outcomes in results.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, res := range results {
		switch {
		case res.Err == nil:
			s.OK++
			if r := res.Program.Report(); r != nil && len(r.Unresolved) > 0 {
				s.Unresolved++
			}
		case errors.Is(res.Err, ErrTimeout):
			s.Failed++
			s.TimedOut++
		default:
			s.Failed++
		}
	}
	return s
}
