package main

import (
	"github.com/urfave/cli/v2"

	"github.com/jdeng/gogif/internal/batch"
	"github.com/jdeng/gogif/internal/report"
)

var inspectCommand = &cli.Command{
	Name:      "inspect",
	Usage:     "Describe the container structure of GIF files",
	ArgsUsage: "<file>...",
	Flags:     []cli.Flag{formatFlag, dumpFlag, workersFlag, cacheFlag},
	Action:    inspect,
}

func inspect(ctx *cli.Context) error {
	results, err := runBatch(ctx)
	if err != nil {
		return err
	}
	cfg, _ := commandConfig(ctx)
	if ctx.Bool(dumpFlag.Name) {
		for _, res := range results {
			report.Dump(ctx.App.Writer, res.Path, res.Header, res.Extensions, res.Frame, res.Err)
		}
		return nil
	}
	summaries := make([]report.Summary, len(results))
	for i, res := range results {
		summaries[i] = report.FromResult(res)
	}
	return report.Write(ctx.App.Writer, cfg.Output.Format, summaries)
}

// runBatch decodes every argument with the configured runner.
func runBatch(ctx *cli.Context) ([]batch.Result, error) {
	if ctx.NArg() == 0 {
		return nil, errNoInputs
	}
	cfg, err := commandConfig(ctx)
	if err != nil {
		return nil, err
	}
	runner, err := batch.NewRunner(cfg.Batch, cfg.Decode)
	if err != nil {
		return nil, err
	}
	return runner.Run(ctx.Context, ctx.Args().Slice())
}
