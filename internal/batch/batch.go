// Package batch decodes many GIF files with bounded parallelism.
package batch

import (
	"context"
	"io"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/log"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"github.com/jdeng/gogif/internal/config"
	"github.com/jdeng/gogif/internal/gif"
	"github.com/jdeng/gogif/internal/source"
	pkggif "github.com/jdeng/gogif/pkg/gif"
)

// Result is the outcome of decoding one file.
type Result struct {
	Path   string
	Codec  source.Codec
	Digest uint64
	// Cached is set when an identical input was decoded earlier and its
	// result reused.
	Cached     bool
	Header     *gif.Header
	Frame      *gif.Frame
	Extensions []*gif.Extension
	Image      *pkggif.Image
	Elapsed    time.Duration
	Err        error
}

// decoded is the part of a Result that only depends on file content.
type decoded struct {
	header     *gif.Header
	frame      *gif.Frame
	extensions []*gif.Extension
	image      *pkggif.Image
}

// Runner decodes files concurrently. Each file gets its own source and
// decoder; only the content cache is shared.
type Runner struct {
	workers int
	opts    pkggif.Options
	cache   *lru.Cache[uint64, decoded]
}

// NewRunner creates a runner from the batch and decode settings.
func NewRunner(bc config.Batch, dc config.Decode) (*Runner, error) {
	if bc.Workers < 1 {
		return nil, errors.Newf("batch: workers must be at least 1, got %d", bc.Workers)
	}
	r := &Runner{
		workers: bc.Workers,
		opts:    pkggif.Options{Deinterlace: dc.Deinterlace, MaxPixels: dc.MaxPixels},
	}
	if bc.CacheSize > 0 {
		cache, err := lru.New[uint64, decoded](bc.CacheSize)
		if err != nil {
			return nil, errors.Wrap(err, "batch: cache")
		}
		r.cache = cache
	}
	return r, nil
}

// Run decodes every path and returns one Result per path, in input order.
// A file that fails to decode only sets its own Result.Err. The returned
// error is non-nil only when ctx was cancelled; files not started by then
// carry the context error.
func (r *Runner) Run(ctx context.Context, paths []string) ([]Result, error) {
	results := make([]Result, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, path := range paths {
		results[i].Path = path
		if err := gctx.Err(); err != nil {
			results[i].Err = err
			continue
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].Err = err
				return err
			}
			r.decodeFile(&results[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}

func (r *Runner) decodeFile(res *Result) {
	start := time.Now()
	defer func() { res.Elapsed = time.Since(start) }()

	src, err := source.Open(res.Path)
	if err != nil {
		res.Err = err
		log.Warn("Failed to open input", "file", res.Path, "err", err)
		return
	}
	defer src.Close()
	res.Codec = src.Codec()

	data, err := io.ReadAll(src)
	if err != nil {
		res.Err = errors.Wrapf(err, "batch: reading %s", res.Path)
		log.Warn("Failed to read input", "file", res.Path, "err", err)
		return
	}
	res.Digest = xxhash.Sum64(data)

	if r.cache != nil {
		if d, ok := r.cache.Get(res.Digest); ok {
			res.Cached = true
			res.fill(d)
			log.Debug("Reused decoded input", "file", res.Path, "digest", res.Digest)
			return
		}
	}

	d, err := r.decode(data)
	if err != nil {
		res.Err = errors.Wrapf(err, "batch: %s", res.Path)
		log.Warn("Failed to decode input", "file", res.Path, "err", err)
		return
	}
	if r.cache != nil {
		r.cache.Add(res.Digest, d)
	}
	res.fill(d)
	log.Debug("Decoded input", "file", res.Path, "codec", res.Codec, "frame", res.Frame != nil)
}

func (r *Runner) decode(data []byte) (decoded, error) {
	dec, err := pkggif.NewFromBytes(data, r.opts)
	if err != nil {
		return decoded{}, err
	}
	if err := dec.Decode(); err != nil {
		return decoded{}, err
	}
	return decoded{
		header:     dec.Header(),
		frame:      dec.Frame(),
		extensions: dec.Extensions(),
		image:      dec.Image(),
	}, nil
}

func (res *Result) fill(d decoded) {
	res.Header = d.header
	res.Frame = d.frame
	res.Extensions = d.extensions
	res.Image = d.image
}
