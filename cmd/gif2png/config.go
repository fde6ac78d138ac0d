package main

import (
	"github.com/urfave/cli/v2"

	"github.com/jdeng/gogif/internal/config"
)

var dumpConfigCommand = &cli.Command{
	Name:   "dumpconfig",
	Usage:  "Print the effective configuration as TOML",
	Flags:  []cli.Flag{formatFlag, outDirFlag, workersFlag, cacheFlag},
	Action: dumpConfig,
}

// loadConfig layers the config file and then explicitly set flags over the
// defaults.
func loadConfig(ctx *cli.Context) (config.Config, error) {
	cfg := config.Defaults()
	if file := ctx.String(configFlag.Name); file != "" {
		var err error
		if cfg, err = config.Load(file); err != nil {
			return cfg, err
		}
	}
	if ctx.IsSet(logLevelFlag.Name) {
		cfg.Log.Level = ctx.String(logLevelFlag.Name)
	}
	if ctx.IsSet(logFormatFlag.Name) {
		cfg.Log.Format = ctx.String(logFormatFlag.Name)
	}
	if ctx.IsSet(logFileFlag.Name) {
		cfg.Log.File = ctx.String(logFileFlag.Name)
	}
	if ctx.Bool(noColorFlag.Name) {
		cfg.Log.Color = false
	}
	if ctx.IsSet(deinterlaceFlag.Name) {
		cfg.Decode.Deinterlace = ctx.Bool(deinterlaceFlag.Name)
	}
	if ctx.IsSet(maxPixelsFlag.Name) {
		cfg.Decode.MaxPixels = ctx.Int(maxPixelsFlag.Name)
	}
	return cfg, cfg.Validate()
}

// commandConfig returns the configuration prepared by the app, with the
// command level flags applied.
func commandConfig(ctx *cli.Context) (config.Config, error) {
	cfg, _ := ctx.App.Metadata[configKey].(config.Config)
	if ctx.IsSet(formatFlag.Name) {
		cfg.Output.Format = ctx.String(formatFlag.Name)
	}
	if ctx.IsSet(outDirFlag.Name) {
		cfg.Output.Dir = ctx.String(outDirFlag.Name)
	}
	if ctx.IsSet(workersFlag.Name) {
		cfg.Batch.Workers = ctx.Int(workersFlag.Name)
	}
	if ctx.IsSet(cacheFlag.Name) {
		cfg.Batch.CacheSize = ctx.Int(cacheFlag.Name)
	}
	return cfg, cfg.Validate()
}

func dumpConfig(ctx *cli.Context) error {
	cfg, err := commandConfig(ctx)
	if err != nil {
		return err
	}
	out, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = ctx.App.Writer.Write(out)
	return err
}
