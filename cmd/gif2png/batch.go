package main

import (
	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	"github.com/jdeng/gogif/internal/report"
)

var errNoInputs = errors.New("at least one input file is required")

var batchCommand = &cli.Command{
	Name:      "batch",
	Usage:     "Convert many GIF files to PNG in parallel",
	ArgsUsage: "<file>...",
	Flags:     []cli.Flag{outDirFlag, workersFlag, cacheFlag},
	Action:    convertBatch,
}

func convertBatch(ctx *cli.Context) error {
	results, err := runBatch(ctx)
	if err != nil {
		return err
	}
	cfg, _ := commandConfig(ctx)

	failed := 0
	for _, res := range results {
		err := res.Err
		if err == nil && res.Image == nil {
			err = errors.New("no image block")
		}
		if err == nil {
			err = writePNG(pngName(res.Path, cfg.Output.Dir), res.Image)
		}
		report.Status(ctx.App.Writer, res.Path, err)
		if err != nil {
			failed++
		}
	}
	log.Info("Batch finished", "files", len(results), "failed", failed)
	if failed > 0 {
		return errors.Newf("%d of %d files failed", failed, len(results))
	}
	return nil
}
