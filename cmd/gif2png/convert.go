package main

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	"github.com/jdeng/gogif/internal/source"
	gif "github.com/jdeng/gogif/pkg/gif"
)

var convertCommand = &cli.Command{
	Name:      "convert",
	Usage:     "Convert the first frame of a GIF to PNG",
	ArgsUsage: "<input.gif> [output.png]",
	Flags:     []cli.Flag{outputFlag, outDirFlag},
	Action:    convert,
}

func convert(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return errors.New("input file is required")
	}
	cfg, err := commandConfig(ctx)
	if err != nil {
		return err
	}
	input := ctx.Args().Get(0)
	output := ctx.String(outputFlag.Name)
	if output == "" {
		output = ctx.Args().Get(1)
	}
	if output == "" {
		output = pngName(input, cfg.Output.Dir)
	}

	src, err := source.Open(input)
	if err != nil {
		return err
	}
	defer src.Close()

	decoder, err := gif.New(src, gif.Options{Deinterlace: cfg.Decode.Deinterlace, MaxPixels: cfg.Decode.MaxPixels})
	if err != nil {
		return err
	}
	if err := decoder.Decode(); err != nil {
		return errors.Wrapf(err, "failed to decode %s", input)
	}
	img := decoder.Image()
	if img == nil {
		return errors.Newf("no image found in %s", input)
	}
	if err := writePNG(output, img); err != nil {
		return err
	}
	log.Info("Converted frame", "input", input, "output", output, "codec", src.Codec(),
		"width", img.Width(), "height", img.Height(), "extensions", len(decoder.Extensions()))
	return nil
}

// pngName derives the PNG path for input, dropping compression and image
// extensions. A non-empty dir replaces the input's directory.
func pngName(input, dir string) string {
	base, _ := source.SplitExtension(input)
	base = strings.TrimSuffix(base, filepath.Ext(base)) + ".png"
	if dir != "" {
		base = filepath.Join(dir, filepath.Base(base))
	}
	return base
}

func writePNG(path string, img *gif.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create output file")
	}
	if err := png.Encode(file, img.ToPaletted()); err != nil {
		file.Close()
		return errors.Wrapf(err, "failed to encode %s", path)
	}
	return errors.Wrapf(file.Close(), "failed to write %s", path)
}
