// Command ppgrate estimates heart rate from photoplethysmogram samples.
//
// Usage:
//
//	ppgrate estimate [--file log.txt | --serial /dev/ttyUSB0] [flags]
//	ppgrate simulate [--bpm 72] [--samples 3000]
//	ppgrate bands
//	ppgrate windows
//
// Input is one sample per line, "<ir> <red>" or just "<ir>". Settings come
// from flags, PPG_* environment variables and an optional YAML file.
//
// Examples:
//
//	ppgrate simulate --bpm 84 | ppgrate estimate -o json
//	ppgrate estimate --serial /dev/ttyACM0 --baud 115200 --hop 256
//	ppgrate bands --max-hz 2.5
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
