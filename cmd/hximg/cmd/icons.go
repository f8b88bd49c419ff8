package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"hxpanel/gfx"
	"hxpanel/gfx/assets"

	"github.com/spf13/cobra"
)

var (
	iconsOut  string
	iconsSize int
)

var iconsCmd = &cobra.Command{
	Use:   "icons",
	Short: "Export the built-in icons and digits as PNG",
	Args:  cobra.NoArgs,
	RunE:  runIcons,
}

func init() {
	iconsCmd.Flags().StringVarP(&iconsOut, "out", "o", ".", "output directory")
	iconsCmd.Flags().IntVar(&iconsSize, "size", assets.ToolSize, "icon edge length in pixels")
	rootCmd.AddCommand(iconsCmd)
}

func runIcons(cmd *cobra.Command, _ []string) error {
	if iconsSize <= 0 {
		return fmt.Errorf("bad icon size %d", iconsSize)
	}
	if err := os.MkdirAll(iconsOut, 0o755); err != nil {
		return err
	}
	n := 0
	for id := assets.IconID(0); id < assets.NumIcons; id++ {
		if err := writeIcon(filepath.Join(iconsOut, id.String()+".png"), assets.NewIcon(id, iconsSize)); err != nil {
			return err
		}
		n++
	}
	for i, ic := range assets.Digits() {
		name := fmt.Sprintf("digit-%d.png", i)
		if i == 10 {
			name = "digit-colon.png"
		}
		if err := writeIcon(filepath.Join(iconsOut, name), ic); err != nil {
			return err
		}
		n++
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d images to %s\n", n, iconsOut)
	return nil
}

// writeIcon renders ic silver on black, the way the toolbar shows it.
func writeIcon(path string, ic *gfx.Icon) error {
	bm := &gfx.Bitmap{W: ic.W, H: ic.H, Pix: ic.Blend(nil, gfx.Silver, gfx.Black)}
	return writePNG(path, bitmapImage(bm))
}
