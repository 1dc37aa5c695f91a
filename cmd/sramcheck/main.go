// Command sramcheck exercises a simulated QSPI pseudo-SRAM.
package main

import "github.com/sarchlab/sramcheck/cmd/sramcheck/cmd"

func main() {
	cmd.Execute()
}
