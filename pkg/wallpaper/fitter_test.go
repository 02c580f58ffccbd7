package wallpaper

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/dixieflatline76/Backdrop/pkg/sysinfo"
)

func createTestImage(width, height int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{c}, image.Point{}, draw.Src)
	return img
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

func TestComputeScale(t *testing.T) {
	assert.InDelta(t, 0.48, ComputeScale(4000, 2000, 1920, 1080), 1e-9)
	assert.InDelta(t, 0.5, ComputeScale(3840, 2160, 1920, 1080), 1e-9)
	assert.InDelta(t, 2.0, ComputeScale(960, 540, 1920, 1080), 1e-9)
	assert.InDelta(t, 0.54, ComputeScale(2000, 2000, 1920, 1080), 1e-9)
}

func TestFittedSize(t *testing.T) {
	tests := []struct {
		sw, sh, tw, th int
		wantW, wantH   int
	}{
		{4000, 2000, 1920, 1080, 1920, 960},
		{3840, 2160, 1920, 1080, 1920, 1080},
		{2000, 2000, 1920, 1080, 1080, 1080},
		{1080, 1920, 1920, 1080, 607, 1080},
		{640, 480, 1920, 1080, 1440, 1080},
		{10000, 1, 1920, 1080, 1920, 1},
		{1, 10000, 1920, 1080, 1, 1080},
		{100000, 1, 1920, 1080, 1920, 1},
		{11, 1, 1920, 1080, 1920, 174},
		{1, 11, 1920, 1080, 98, 1080},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%dx%d->%dx%d", tt.sw, tt.sh, tt.tw, tt.th), func(t *testing.T) {
			w, h := FittedSize(tt.sw, tt.sh, tt.tw, tt.th)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}

func TestFittedSizeProperties(t *testing.T) {
	sources := [][2]int{{4000, 2000}, {1920, 1080}, {1366, 768}, {800, 1280}, {3000, 3000}, {5, 7}, {7013, 1999}, {11, 1}, {3, 7}}
	targets := [][2]int{{1920, 1080}, {2560, 1440}, {1280, 1024}, {3440, 1440}, {1080, 1920}}

	for _, s := range sources {
		for _, tg := range targets {
			w, h := FittedSize(s[0], s[1], tg[0], tg[1])
			assert.LessOrEqual(t, w, tg[0])
			assert.LessOrEqual(t, h, tg[1])
			assert.True(t, w == tg[0] || h == tg[1], "one side must touch the target for %v->%v", s, tg)

			// Both sides follow ComputeScale to within a pixel.
			scale := ComputeScale(s[0], s[1], tg[0], tg[1])
			assert.Less(t, math.Abs(float64(w)-float64(s[0])*scale), 1.0, "%v->%v width", s, tg)
			assert.Less(t, math.Abs(float64(h)-float64(s[1])*scale), 1.0, "%v->%v height", s, tg)

			// Aspect preserved to within one pixel on the short side.
			if w == tg[0] {
				assert.LessOrEqual(t, math.Abs(float64(h)-float64(s[1])*float64(w)/float64(s[0])), 1.0)
			} else {
				assert.LessOrEqual(t, math.Abs(float64(w)-float64(s[0])*float64(h)/float64(s[1])), 1.0)
			}
		}
	}
}

func TestFitLetterboxesWideImage(t *testing.T) {
	f := NewFitter(FormatJPEG)
	src := createTestImage(4000, 2000, color.RGBA{255, 255, 255, 255})

	out, err := f.Fit(context.Background(), src, sysinfo.Resolution{Width: 1920, Height: 1080})
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 1920, 1080), out.Bounds())

	black := color.NRGBA{0, 0, 0, 255}
	for _, x := range []int{0, 960, 1919} {
		assert.Equal(t, black, out.NRGBAAt(x, 0))
		assert.Equal(t, black, out.NRGBAAt(x, 59))
		assert.Equal(t, black, out.NRGBAAt(x, 1020))
		assert.Equal(t, black, out.NRGBAAt(x, 1079))
	}

	for _, y := range []int{60, 540, 1019} {
		c := out.NRGBAAt(960, y)
		assert.Greater(t, c.R, uint8(250), "content at y=%d", y)
		assert.Equal(t, uint8(255), c.A)
	}
}

func TestFitPillarboxesTallImage(t *testing.T) {
	f := NewFitter(FormatJPEG)
	src := createTestImage(1000, 2000, color.RGBA{0, 0, 255, 255})

	out, err := f.Fit(context.Background(), src, sysinfo.Resolution{Width: 1920, Height: 1080})
	require.NoError(t, err)

	// 540x1080 centered: bars of 690 px either side.
	assert.Equal(t, color.NRGBA{0, 0, 0, 255}, out.NRGBAAt(689, 540))
	assert.Equal(t, color.NRGBA{0, 0, 0, 255}, out.NRGBAAt(1230, 540))
	assert.Greater(t, out.NRGBAAt(960, 540).B, uint8(250))
}

func TestFitUpscalesSmallImage(t *testing.T) {
	f := NewFitter(FormatJPEG)
	out, err := f.Fit(context.Background(), createTestImage(320, 180, color.White), sysinfo.Resolution{Width: 1920, Height: 1080})
	require.NoError(t, err)
	assert.Equal(t, 1920, out.Bounds().Dx())
	assert.Equal(t, 1080, out.Bounds().Dy())
	assert.Greater(t, out.NRGBAAt(0, 0).R, uint8(250), "no bars when aspect matches")
}

func TestFitDropsAlpha(t *testing.T) {
	f := NewFitter(FormatJPEG)
	src := image.NewNRGBA(image.Rect(0, 0, 160, 90))
	for i := 0; i < len(src.Pix); i += 4 {
		copy(src.Pix[i:i+4], []uint8{200, 10, 10, 0})
	}

	out, err := f.Fit(context.Background(), src, sysinfo.Resolution{Width: 160, Height: 90})
	require.NoError(t, err)
	assert.True(t, out.Opaque())
	assert.Equal(t, color.NRGBA{200, 10, 10, 255}, out.NRGBAAt(80, 45))
}

func TestFitHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFitter(FormatJPEG).Fit(ctx, createTestImage(64, 64, color.White), sysinfo.Resolution{Width: 32, Height: 32})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFitRejectsBadTarget(t *testing.T) {
	_, err := NewFitter(FormatJPEG).Fit(context.Background(), createTestImage(64, 64, color.White), sysinfo.Resolution{})
	assert.Error(t, err)
}

func TestFitFileWritesBMP(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "wide.png")
	dst := filepath.Join(dir, "wide_fitted.bmp")
	writePNG(t, src, createTestImage(4000, 2000, color.RGBA{0, 255, 0, 255}))

	f := NewFitter(FormatBMP)
	require.NoError(t, f.FitFile(context.Background(), src, dst, sysinfo.Resolution{Width: 1920, Height: 1080}))

	raw, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Greater(t, len(raw), 30)
	assert.Equal(t, "BM", string(raw[:2]))
	assert.Equal(t, uint16(24), uint16(raw[28])|uint16(raw[29])<<8, "bits per pixel")

	in, err := os.Open(dst)
	require.NoError(t, err)
	defer in.Close()
	img, err := bmp.Decode(in)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 1920, 1080), img.Bounds())

	r, g, b, _ := img.At(100, 30).RGBA()
	assert.Equal(t, [3]uint32{0, 0, 0}, [3]uint32{r, g, b}, "top bar is black")
	_, g, _, _ = img.At(100, 540).RGBA()
	assert.Greater(t, g>>8, uint32(250), "content is green")
}

func TestFitFileWritesJPEG(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "square.png")
	dst := filepath.Join(dir, "square_fitted.jpg")
	writePNG(t, src, createTestImage(500, 500, color.White))

	require.NoError(t, NewFitter(FormatJPEG).FitFile(context.Background(), src, dst, sysinfo.Resolution{Width: 1280, Height: 720}))

	img, err := imaging.Open(dst)
	require.NoError(t, err)
	assert.Equal(t, 1280, img.Bounds().Dx())
	assert.Equal(t, 720, img.Bounds().Dy())
}

func TestFitFileUndecodableSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "broken.jpg")
	require.NoError(t, os.WriteFile(src, []byte("not an image"), 0644))

	err := NewFitter(FormatJPEG).FitFile(context.Background(), src, filepath.Join(dir, "broken_fitted.jpg"), sysinfo.DefaultResolution)
	var encErr *EncodeError
	require.ErrorAs(t, err, &encErr)
	assert.Equal(t, src, encErr.Path)
	assert.NoFileExists(t, filepath.Join(dir, "broken_fitted.jpg"))
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, FormatBMP, FormatFor(sysinfo.Windows))
	assert.Equal(t, FormatJPEG, FormatFor(sysinfo.KDE))
	assert.Equal(t, FormatJPEG, FormatFor(sysinfo.GNOME))
	assert.Equal(t, ".bmp", FormatBMP.Ext())
	assert.Equal(t, ".jpg", FormatJPEG.Ext())
}
