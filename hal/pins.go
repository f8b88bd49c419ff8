package hal

// PeriphPins names the GPIO lines of the parallel bus as known to gpioreg.
type PeriphPins struct {
	Data [8]string `toml:"data"`
	WR   string    `toml:"wr"`
	CD   string    `toml:"cd"`
	CS   string    `toml:"cs"`
	RD   string    `toml:"rd"`
	RST  string    `toml:"rst"`
}
