// Package frame encodes rendered RGB frames to image files.
package frame

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// An Encoder writes a frame to a stream.
type Encoder func(w io.Writer, pixels []uint8, frameW, frameH uint32) error

var encoders = map[string]Encoder{
	".png":  imageEncoder(png.Encode),
	".bmp":  imageEncoder(bmp.Encode),
	".tif":  imageEncoder(encodeTiff),
	".tiff": imageEncoder(encodeTiff),
	".ppm":  EncodePPM,
}

// Select an encoder based on the file extension.
func EncoderFor(filename string) (Encoder, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	enc, ok := encoders[ext]
	if !ok {
		return nil, errors.Errorf("frame: unsupported output format '%s'", ext)
	}
	return enc, nil
}

// Write a frame of tightly packed RGB pixels (top row first) to a file. The
// image format is selected by the file extension.
func Write(filename string, pixels []uint8, frameW, frameH uint32) error {
	if err := checkDims(pixels, frameW, frameH); err != nil {
		return err
	}

	enc, err := EncoderFor(filename)
	if err != nil {
		return err
	}

	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "frame: could not create '%s'", filename)
	}

	w := bufio.NewWriter(f)
	if err = enc(w, pixels, frameW, frameH); err != nil {
		f.Close()
		return errors.Wrapf(err, "frame: could not encode '%s'", filename)
	}
	if err = w.Flush(); err != nil {
		f.Close()
		return errors.Wrapf(err, "frame: could not write '%s'", filename)
	}
	return errors.Wrapf(f.Close(), "frame: could not write '%s'", filename)
}

// Convert a frame of RGB pixels to an opaque RGBA image.
func ToRGBA(pixels []uint8, frameW, frameH uint32) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, int(frameW), int(frameH)))
	for src, dst := 0, 0; src+2 < len(pixels) && dst+3 < len(img.Pix); src, dst = src+3, dst+4 {
		img.Pix[dst] = pixels[src]
		img.Pix[dst+1] = pixels[src+1]
		img.Pix[dst+2] = pixels[src+2]
		img.Pix[dst+3] = 255
	}
	return img
}

// Encode a frame in the plain text PPM (P3) format.
func EncodePPM(w io.Writer, pixels []uint8, frameW, frameH uint32) error {
	if err := checkDims(pixels, frameW, frameH); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "P3\n%d %d\n255\n", frameW, frameH); err != nil {
		return err
	}
	for px := 0; px < len(pixels); px += 3 {
		if _, err := fmt.Fprintf(w, "%d %d %d\n", pixels[px], pixels[px+1], pixels[px+2]); err != nil {
			return err
		}
	}
	return nil
}

func imageEncoder(encode func(io.Writer, image.Image) error) Encoder {
	return func(w io.Writer, pixels []uint8, frameW, frameH uint32) error {
		if err := checkDims(pixels, frameW, frameH); err != nil {
			return err
		}
		return encode(w, ToRGBA(pixels, frameW, frameH))
	}
}

func encodeTiff(w io.Writer, img image.Image) error {
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
}

func checkDims(pixels []uint8, frameW, frameH uint32) error {
	if frameW == 0 || frameH == 0 {
		return errors.Errorf("frame: invalid frame dims %dx%d", frameW, frameH)
	}
	if exp := int(frameW) * int(frameH) * 3; len(pixels) != exp {
		return errors.Errorf("frame: expected %d bytes for a %dx%d frame; got %d", exp, frameW, frameH, len(pixels))
	}
	return nil
}
