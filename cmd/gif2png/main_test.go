package main

import (
	"bytes"
	"image"
	"image/color"
	stdgif "image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdeng/gogif/internal/source"
)

func writeFixture(t *testing.T, path string, codec source.Codec) *image.Paletted {
	t.Helper()
	img := image.NewPaletted(image.Rect(0, 0, 5, 3), color.Palette{color.Black, color.White, color.RGBA{0xff, 0, 0, 0xff}})
	for i := range img.Pix {
		img.Pix[i] = uint8(i % 3)
	}
	var buf bytes.Buffer
	w, err := source.NewWriter(&buf, codec)
	require.NoError(t, err)
	require.NoError(t, stdgif.Encode(w, img, nil))
	require.NoError(t, w.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return img
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := newApp(&stdout, &stderr).Run(append([]string{"gif2png", "--log.level", "error"}, args...))
	return stdout.String(), err
}

func TestPNGName(t *testing.T) {
	assert.Equal(t, "a.png", pngName("a.gif", ""))
	assert.Equal(t, "dir/a.png", pngName("dir/a.gif.zst", ""))
	assert.Equal(t, filepath.Join("out", "a.png"), pngName("in/a.gif.gz", "out"))
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "fixture.gif.gz")
	want := writeFixture(t, input, source.CodecGzip)

	_, err := run(t, "convert", input)
	require.NoError(t, err)

	f, err := os.Open(filepath.Join(dir, "fixture.png"))
	require.NoError(t, err)
	defer f.Close()
	got, err := png.Decode(f)
	require.NoError(t, err)
	require.Equal(t, want.Bounds(), got.Bounds())
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			r1, g1, b1, _ := want.At(x, y).RGBA()
			r2, g2, b2, _ := got.At(x, y).RGBA()
			assert.Equal(t, [3]uint32{r1, g1, b1}, [3]uint32{r2, g2, b2}, "pixel %d,%d", x, y)
		}
	}
}

func TestConvertDefaultAction(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "a.gif")
	writeFixture(t, input, source.CodecPlain)
	output := filepath.Join(dir, "b.png")

	_, err := run(t, input, output)
	require.NoError(t, err)
	assert.FileExists(t, output)
}

func TestConvertRequiresInput(t *testing.T) {
	_, err := run(t, "convert")
	assert.Error(t, err)
}

func TestInspectJSON(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.gif")
	b := filepath.Join(dir, "b.gif.lz4")
	writeFixture(t, a, source.CodecPlain)
	writeFixture(t, b, source.CodecLZ4)

	out, err := run(t, "inspect", "--format", "json", a, b)
	require.NoError(t, err)
	assert.Contains(t, out, `"file": "`+a+`"`)
	assert.Contains(t, out, `"codec": "lz4"`)
	assert.Contains(t, out, `"pixels": 15`)
}

func TestInspectDump(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.gif")
	writeFixture(t, a, source.CodecPlain)

	out, err := run(t, "inspect", "--dump", a)
	require.NoError(t, err)
	assert.Contains(t, out, "GIF89a")
}

func TestBatch(t *testing.T) {
	dir := t.TempDir()
	outDir := t.TempDir()
	good := filepath.Join(dir, "good.gif.sz")
	writeFixture(t, good, source.CodecSnappy)
	bad := filepath.Join(dir, "bad.gif")
	require.NoError(t, os.WriteFile(bad, []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00\x99"), 0o644))

	out, err := run(t, "batch", "--outdir", outDir, good, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 files failed")
	assert.Contains(t, out, "good.gif.sz")
	assert.Contains(t, out, "FAIL")
	assert.FileExists(t, filepath.Join(outDir, "good.png"))
	assert.NoFileExists(t, filepath.Join(outDir, "bad.png"))
}

func TestDumpConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.toml")
	require.NoError(t, os.WriteFile(path, []byte("[Batch]\nWorkers = 7\n"), 0o644))

	out, err := run(t, "--config", path, "--deinterlace", "--maxpixels=-1", "dumpconfig", "--cache", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Workers = 7")
	assert.Contains(t, out, "CacheSize = 0")
	assert.Contains(t, out, "Deinterlace = true")
	assert.Contains(t, out, "MaxPixels = -1")
}

func TestBadConfigValue(t *testing.T) {
	_, err := run(t, "--log.format", "xml", "dumpconfig")
	assert.Error(t, err)
}
