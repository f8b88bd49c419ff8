package main

import "hxpanel/cmd/hximg/cmd"

func main() {
	cmd.Execute()
}
