//go:build tinygo && baremetal

package main

import (
	"hxpanel/app"
	"hxpanel/hal"
)

func main() {
	h := hal.New()
	step := app.NewWithConfig(h, app.DefaultConfig())
	for {
		if err := step(); err != nil {
			h.Logger().WriteLineString(err.Error())
			select {}
		}
	}
}
