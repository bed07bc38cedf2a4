// Command ckcu-plan resolves a clock profile against the simulated clock
// control unit and prints the achieved clocks together with the register
// writes Freeze would perform on the chip.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
