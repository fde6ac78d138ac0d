package main

import (
	"bytes"
	"compress/lzw"
	"fmt"
	"os"

	"github.com/jdeng/gogif/internal/source"
)

const (
	fixtureWidth  = 16
	fixtureHeight = 16
	codeSize      = 2
)

// createMinimalGIF builds a 16x16 GIF89a with a four color global palette,
// a comment extension, a graphic control extension and diagonal stripes.
func createMinimalGIF() ([]byte, error) {
	var buf bytes.Buffer

	// Header and logical screen descriptor
	buf.WriteString("GIF89a")
	buf.Write([]byte{
		fixtureWidth, 0x00, // Width
		fixtureHeight, 0x00, // Height
		0x91, // Global palette, 2 bits per primary, 4 entries
		0x00, // Background index
		0x00, // Pixel aspect ratio
	})

	// Global palette: black, white, red, blue
	buf.Write([]byte{
		0x00, 0x00, 0x00,
		0xFF, 0xFF, 0xFF,
		0xFF, 0x00, 0x00,
		0x00, 0x00, 0xFF,
	})

	// Comment extension
	comment := "gogif test fixture"
	buf.Write([]byte{0x21, 0xFE, byte(len(comment))})
	buf.WriteString(comment)
	buf.WriteByte(0x00)

	// Graphic control extension: no transparency, no delay
	buf.Write([]byte{0x21, 0xF9, 0x04, 0x00, 0x00, 0x00, 0x00, 0x00})

	// Image descriptor covering the whole screen, no local palette
	buf.Write([]byte{
		0x2C,
		0x00, 0x00, // Left
		0x00, 0x00, // Top
		fixtureWidth, 0x00,
		fixtureHeight, 0x00,
		0x00, // Flags
	})

	pixels := make([]byte, fixtureWidth*fixtureHeight)
	for y := 0; y < fixtureHeight; y++ {
		for x := 0; x < fixtureWidth; x++ {
			pixels[y*fixtureWidth+x] = byte((x + y) / 4 % 4)
		}
	}
	var data bytes.Buffer
	w := lzw.NewWriter(&data, lzw.LSB, codeSize)
	if _, err := w.Write(pixels); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	// LZW minimum code size, then the data as sub-blocks
	buf.WriteByte(codeSize)
	payload := data.Bytes()
	for len(payload) > 0 {
		n := len(payload)
		if n > 255 {
			n = 255
		}
		buf.WriteByte(byte(n))
		buf.Write(payload[:n])
		payload = payload[n:]
	}
	buf.WriteByte(0x00)

	// Trailer
	buf.WriteByte(0x3B)
	return buf.Bytes(), nil
}

// writeFixture writes the GIF to filename, compressed according to its
// extension (.gz, .zst, .lz4, .sz, .br).
func writeFixture(filename string) error {
	data, err := createMinimalGIF()
	if err != nil {
		return err
	}
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	_, codec := source.SplitExtension(filename)
	w, err := source.NewWriter(file, codec)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return file.Close()
}

func main() {
	if len(os.Args) != 2 {
		fmt.Println("Usage: create-test-gif <output-file>")
		os.Exit(1)
	}

	filename := os.Args[1]
	err := writeFixture(filename)
	if err != nil {
		fmt.Printf("Error creating test GIF file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Created test GIF file: %s\n", filename)
}
