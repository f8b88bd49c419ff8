package cmd

import (
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"

	"hxpanel/gfx"

	"github.com/spf13/cobra"
	"golang.org/x/image/draw"
)

var (
	thumbSize    int
	thumbPreview string
)

var thumbCmd = &cobra.Command{
	Use:   "thumb <in.png|in.jpg> <out.raw>",
	Short: "Convert an image to a square raw RGB565 file",
	Long: `Center-crops the image to a square, scales it to --size pixels and
writes little-endian RGB565 words, row by row, with no header.`,
	Args: cobra.ExactArgs(2),
	RunE: runThumb,
}

func init() {
	thumbCmd.Flags().IntVarP(&thumbSize, "size", "s", 60, "edge length in pixels (60 for lists, 150 for covers)")
	thumbCmd.Flags().StringVar(&thumbPreview, "preview", "", "also write the converted image as PNG")
	rootCmd.AddCommand(thumbCmd)
}

func runThumb(cmd *cobra.Command, args []string) error {
	if thumbSize <= 0 || thumbSize > 480 {
		return fmt.Errorf("size %d out of range 1..480", thumbSize)
	}
	in, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer in.Close()
	src, format, err := image.Decode(in)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	logf(cmd, "%s: %s %v", args[0], format, src.Bounds().Size())

	bm := Thumbnail(src, thumbSize)
	if err := writeBitmap(args[1], bm); err != nil {
		return err
	}
	logf(cmd, "%s: %dx%d, %d bytes", args[1], bm.W, bm.H, 2*len(bm.Pix))
	if thumbPreview != "" {
		return writePNG(thumbPreview, bitmapImage(bm))
	}
	return nil
}

// Thumbnail crops the largest centered square of src and scales it to
// size×size RGB565.
func Thumbnail(src image.Image, size int) *gfx.Bitmap {
	b := src.Bounds()
	edge := min(b.Dx(), b.Dy())
	crop := image.Rect(0, 0, edge, edge).Add(b.Min).Add(image.Pt((b.Dx()-edge)/2, (b.Dy()-edge)/2))

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, draw.Src, nil)

	bm := gfx.NewBitmap(size, size)
	for i := range bm.Pix {
		p := dst.Pix[4*i:]
		bm.Pix[i] = uint16(gfx.RGB(p[0], p[1], p[2]))
	}
	return bm
}

// bitmapImage expands bm back to RGBA.
func bitmapImage(bm *gfx.Bitmap) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, bm.W, bm.H))
	for i, c := range bm.Pix {
		rgba := gfx.Color(c).ToRGBA()
		copy(img.Pix[4*i:], []uint8{rgba.R, rgba.G, rgba.B, rgba.A})
	}
	return img
}

func writeBitmap(path string, bm *gfx.Bitmap) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := bm.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}
