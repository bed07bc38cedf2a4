package main

import (
	"context"
	"errors"
	"time"

	"ht32-hal-go/drivers/ckcu"
	"ht32-hal-go/services/config"
	"ht32-hal-go/services/heartbeat"
)

const lockTimeout = 50 * time.Millisecond

var errClocksTaken = errors.New("clock registers already taken")

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(bootDelay)
	println("Info: boot, board", board)

	clocks, err := setupClocks()
	if err != nil {
		println("Error:", err.Error())
		halt()
	}
	println("Info: ck_sys", clocks.Sys().String(), "hclk", clocks.Hclk().String(),
		"adc", clocks.ADC().String(), "stclk", clocks.Tick().String())

	hb := &heartbeat.Service{Clocks: clocks, Interval: time.Second}
	if err := hb.Start(context.Background()); err != nil {
		println("Error: heartbeat:", err.Error())
	}
	halt()
}

func setupClocks() (ckcu.Clocks, error) {
	regs, ok := takeClockRegisters()
	if !ok {
		return ckcu.Clocks{}, errClocksTaken
	}
	p, err := config.Lookup(board)
	if err != nil {
		return ckcu.Clocks{}, err
	}
	cfg, err := p.Apply(ckcu.Constrain(regs))
	if err != nil {
		return ckcu.Clocks{}, err
	}
	return cfg.FreezeTimeout(lockTimeout)
}

func halt() {
	for {
		time.Sleep(time.Hour)
	}
}
