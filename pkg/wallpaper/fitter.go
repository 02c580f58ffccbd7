package wallpaper

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"

	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/dixieflatline76/Backdrop/pkg/sysinfo"
)

// Format is the on-disk encoding of a fitted wallpaper.
type Format int

// Format constants
const (
	FormatJPEG Format = iota
	FormatBMP
)

// Ext returns the file extension for the format, including the dot.
func (f Format) Ext() string {
	if f == FormatBMP {
		return FittedExtBMP
	}
	return FittedExtJPEG
}

// FormatFor picks BMP for Windows and JPEG everywhere else.
func FormatFor(env sysinfo.Environment) Format {
	if env == sysinfo.Windows {
		return FormatBMP
	}
	return FormatJPEG
}

// Fitter letterboxes images onto a black canvas of the screen size.
type Fitter struct {
	format    Format
	resampler imaging.ResampleFilter
}

// NewFitter returns a Fitter that writes format using Lanczos resampling.
func NewFitter(format Format) *Fitter {
	return &Fitter{format: format, resampler: imaging.Lanczos}
}

// Format returns the encoding FitFile writes.
func (f *Fitter) Format() Format {
	return f.format
}

// ComputeScale returns the largest factor that fits a sw×sh source inside tw×th.
func ComputeScale(sw, sh, tw, th int) float64 {
	return min(float64(tw)/float64(sw), float64(th)/float64(sh))
}

// FittedSize returns the size of a sw×sh source scaled by ComputeScale, clamped to at least 1×1.
// The side that sets the scale equals the target exactly; the other is floor(s×scale)
// computed in integers, so float rounding never loses a pixel.
func FittedSize(sw, sh, tw, th int) (int, int) {
	scale := ComputeScale(sw, sh, tw, th)

	var nw, nh int64
	if scale == float64(tw)/float64(sw) {
		nw = int64(tw)
		nh = int64(sh) * int64(tw) / int64(sw)
	} else {
		nh = int64(th)
		nw = int64(sw) * int64(th) / int64(sh)
	}
	return max(int(nw), 1), max(int(nh), 1)
}

// Fit scales img to fit target without cropping and centers it on a black canvas.
// The result is fully opaque and exactly target-sized.
func (f *Fitter) Fit(ctx context.Context, img image.Image, target sysinfo.Resolution) (*image.NRGBA, error) {
	if target.Width <= 0 || target.Height <= 0 {
		return nil, fmt.Errorf("invalid target resolution %s", target)
	}
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, fmt.Errorf("empty image")
	}

	flat := flatten(img)
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	nw, nh := FittedSize(bounds.Dx(), bounds.Dy(), target.Width, target.Height)
	resized := imaging.Resize(flat, nw, nh, f.resampler)
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	canvas := imaging.New(target.Width, target.Height, color.Black)
	offset := image.Pt((target.Width-nw)/2, (target.Height-nh)/2)
	return imaging.Paste(canvas, resized, offset), nil
}

// FitFile decodes src, fits it to target and writes the result to dst in the Fitter's format.
func (f *Fitter) FitFile(ctx context.Context, src, dst string, target sysinfo.Resolution) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	img, err := imaging.Open(src)
	if err != nil {
		return &EncodeError{Path: src, Err: fmt.Errorf("decoding: %w", err)}
	}

	fitted, err := f.Fit(ctx, img, target)
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		return &EncodeError{Path: src, Err: err}
	}
	if err := checkContext(ctx); err != nil {
		return err
	}

	out, err := os.Create(dst)
	if err != nil {
		return &EncodeError{Path: dst, Err: err}
	}
	if err := Encode(out, fitted, f.format); err != nil {
		out.Close()
		os.Remove(dst)
		return &EncodeError{Path: dst, Err: err}
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return &EncodeError{Path: dst, Err: err}
	}

	return nil
}

// Encode writes img as a 24-bit BMP or a quality 95 JPEG.
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatJPEG:
		return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(JPEGQuality))
	default:
		return fmt.Errorf("unsupported format: %d", format)
	}
}

// flatten converts img to NRGBA and drops the alpha channel, the same way an RGB
// conversion discards transparency without compositing.
func flatten(img image.Image) *image.NRGBA {
	dst := imaging.Clone(img)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst
}

func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
