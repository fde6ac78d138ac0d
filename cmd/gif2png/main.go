// gif2png decodes the first frame of GIF files and writes them as PNG.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/jdeng/gogif/internal/config"
	"github.com/jdeng/gogif/internal/logging"
)

var (
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	logLevelFlag = &cli.StringFlag{
		Name:  "log.level",
		Usage: "Log level (trace, debug, info, warn, error, crit)",
		Value: config.Defaults().Log.Level,
	}
	logFormatFlag = &cli.StringFlag{
		Name:  "log.format",
		Usage: "Log format (terminal, json, logfmt)",
		Value: config.Defaults().Log.Format,
	}
	logFileFlag = &cli.StringFlag{
		Name:  "log.file",
		Usage: "Write logs to a rotating file instead of stderr",
	}
	noColorFlag = &cli.BoolFlag{
		Name:  "nocolor",
		Usage: "Disable colored terminal output",
	}
	deinterlaceFlag = &cli.BoolFlag{
		Name:  "deinterlace",
		Usage: "Place interlaced rows in display order",
	}
	maxPixelsFlag = &cli.IntFlag{
		Name:  "maxpixels",
		Usage: "Reject frames larger than this many pixels (0 = default, negative = no limit)",
	}
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output PNG file (defaults to the input name with a .png extension)",
	}
	outDirFlag = &cli.StringFlag{
		Name:  "outdir",
		Usage: "Directory for PNG output (defaults to next to each input)",
	}
	formatFlag = &cli.StringFlag{
		Name:  "format",
		Usage: "Report format (table, json, yaml)",
		Value: config.Defaults().Output.Format,
	}
	dumpFlag = &cli.BoolFlag{
		Name:  "dump",
		Usage: "Dump the raw decoded structures instead of a report",
	}
	workersFlag = &cli.IntFlag{
		Name:  "workers",
		Usage: "Number of files decoded in parallel",
		Value: config.Defaults().Batch.Workers,
	}
	cacheFlag = &cli.IntFlag{
		Name:  "cache",
		Usage: "Decoded inputs remembered by content hash (0 disables)",
		Value: config.Defaults().Batch.CacheSize,
	}
)

const configKey = "config"

func newApp(stdout, stderr io.Writer) *cli.App {
	app := &cli.App{
		Name:      "gif2png",
		Usage:     "decode the first frame of GIF files",
		ArgsUsage: "<input.gif> [output.png]",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			configFlag,
			logLevelFlag,
			logFormatFlag,
			logFileFlag,
			noColorFlag,
			deinterlaceFlag,
			maxPixelsFlag,
		},
		Commands: []*cli.Command{
			convertCommand,
			inspectCommand,
			batchCommand,
			dumpConfigCommand,
		},
		Action: convert,
	}
	var closer io.Closer
	app.Before = func(ctx *cli.Context) error {
		cfg, err := loadConfig(ctx)
		if err != nil {
			return err
		}
		closer, err = logging.Setup(cfg.Log, stderr)
		if err != nil {
			return err
		}
		ctx.App.Metadata = map[string]interface{}{configKey: cfg}
		return nil
	}
	app.After = func(ctx *cli.Context) error {
		if closer != nil {
			return closer.Close()
		}
		return nil
	}
	return app
}

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
