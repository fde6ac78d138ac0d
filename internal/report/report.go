// Package report renders decoded container metadata for people and scripts.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	jsoniter "github.com/json-iterator/go"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/jdeng/gogif/internal/batch"
	"github.com/jdeng/gogif/internal/gif"
)

// Extension summarises one extension block.
type Extension struct {
	Kind  string `json:"kind" yaml:"kind"`
	Label uint8  `json:"label" yaml:"label"`
	Size  int    `json:"size" yaml:"size"`
}

// Frame summarises the decoded image block.
type Frame struct {
	Left        uint16 `json:"left" yaml:"left"`
	Top         uint16 `json:"top" yaml:"top"`
	Width       uint16 `json:"width" yaml:"width"`
	Height      uint16 `json:"height" yaml:"height"`
	Interlaced  bool   `json:"interlaced" yaml:"interlaced"`
	LocalColors int    `json:"localColors,omitempty" yaml:"localColors,omitempty"`
	Colors      int    `json:"colors" yaml:"colors"`
	CodeSize    int    `json:"codeSize" yaml:"codeSize"`
	Codes       uint64 `json:"codes" yaml:"codes"`
	Pixels      int    `json:"pixels" yaml:"pixels"`
}

// Summary is the flat, serialisable view of one input.
type Summary struct {
	File            string      `json:"file" yaml:"file"`
	Codec           string      `json:"codec,omitempty" yaml:"codec,omitempty"`
	Version         string      `json:"version,omitempty" yaml:"version,omitempty"`
	Width           uint16      `json:"width" yaml:"width"`
	Height          uint16      `json:"height" yaml:"height"`
	GlobalColors    int         `json:"globalColors,omitempty" yaml:"globalColors,omitempty"`
	ColorResolution int         `json:"colorResolution,omitempty" yaml:"colorResolution,omitempty"`
	Background      uint8       `json:"background" yaml:"background"`
	Extensions      []Extension `json:"extensions,omitempty" yaml:"extensions,omitempty"`
	Frame           *Frame      `json:"frame,omitempty" yaml:"frame,omitempty"`
	Cached          bool        `json:"cached,omitempty" yaml:"cached,omitempty"`
	Error           string      `json:"error,omitempty" yaml:"error,omitempty"`
}

// FromResult builds a Summary from a batch result.
func FromResult(res batch.Result) Summary {
	s := Summary{File: res.Path, Codec: res.Codec.String(), Cached: res.Cached}
	if res.Err != nil {
		s.Error = res.Err.Error()
	}
	if h := res.Header; h != nil {
		s.Version = h.Version
		s.Width, s.Height = h.Width, h.Height
		s.Background = h.BackgroundIndex
		if h.HasPalette() {
			s.GlobalColors = h.PaletteSize()
		}
		s.ColorResolution = h.ColorResolution()
	}
	for _, ext := range res.Extensions {
		s.Extensions = append(s.Extensions, Extension{Kind: ext.Kind(), Label: ext.Label, Size: len(ext.Data)})
	}
	if f := res.Frame; f != nil {
		s.Frame = frameSummary(f)
	}
	return s
}

func frameSummary(f *gif.Frame) *Frame {
	out := &Frame{
		Colors:   f.Colors,
		CodeSize: f.CodeSize,
		Codes:    f.Codes,
		Pixels:   f.Pixels,
	}
	if d := f.Descriptor; d != nil {
		out.Left, out.Top = d.Left, d.Top
		out.Width, out.Height = d.Width, d.Height
		out.Interlaced = d.Interlaced()
		if d.HasPalette() {
			out.LocalColors = d.PaletteSize()
		}
	}
	return out
}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Write renders summaries in the named format: table, json or yaml.
func Write(w io.Writer, format string, summaries []Summary) error {
	switch strings.ToLower(format) {
	case "table", "":
		writeTable(w, summaries)
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(summaries), "report: json")
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(summaries); err != nil {
			return errors.Wrap(err, "report: yaml")
		}
		return errors.Wrap(enc.Close(), "report: yaml")
	default:
		return errors.Newf("report: unknown format %q", format)
	}
}

func writeTable(w io.Writer, summaries []Summary) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"File", "Codec", "Version", "Screen", "Colors", "Extensions", "Frame", "Pixels", "Status"})
	table.SetAutoWrapText(false)
	for _, s := range summaries {
		table.Append(tableRow(s))
	}
	table.Render()
}

func tableRow(s Summary) []string {
	var kinds []string
	for _, ext := range s.Extensions {
		kinds = append(kinds, ext.Kind)
	}
	frame, pixels, colors := "-", "-", strconv.Itoa(s.GlobalColors)
	if f := s.Frame; f != nil {
		frame = fmt.Sprintf("%dx%d+%d+%d", f.Width, f.Height, f.Left, f.Top)
		if f.Interlaced {
			frame += " i"
		}
		pixels = strconv.Itoa(f.Pixels)
		colors = strconv.Itoa(f.Colors)
	}
	status := "ok"
	switch {
	case s.Error != "":
		status = s.Error
	case s.Cached:
		status = "ok (cached)"
	}
	return []string{
		s.File,
		s.Codec,
		s.Version,
		fmt.Sprintf("%dx%d", s.Width, s.Height),
		colors,
		strings.Join(kinds, ","),
		frame,
		pixels,
		status,
	}
}

// Dump writes a Go-syntax dump of values, for debugging.
func Dump(w io.Writer, values ...interface{}) {
	cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
	cfg.Fdump(w, values...)
}

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
)

// Status prints a one-line, colored outcome for a file.
func Status(w io.Writer, file string, err error) {
	if err != nil {
		failColor.Fprint(w, "FAIL")
		fmt.Fprintf(w, " %s: %v\n", file, err)
		return
	}
	okColor.Fprint(w, "OK")
	fmt.Fprintf(w, "   %s\n", file)
}
