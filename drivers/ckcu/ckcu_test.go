package ckcu

import (
	"errors"
	"testing"
	"time"

	"ht32-hal-go/errcode"
	"ht32-hal-go/x/units"
)

const (
	kHz = units.KHz
	MHz = units.MHz
)

func mustFreeze(t *testing.T, cfg Configuration) Clocks {
	t.Helper()
	clk, err := cfg.Freeze()
	if err != nil {
		t.Fatalf("Freeze: %v", err)
	}
	return clk
}

// expectPanic runs f and returns the recovered value.
func expectPanic(t *testing.T, f func()) (v any) {
	t.Helper()
	defer func() { v = recover() }()
	f()
	t.Fatal("expected panic")
	return nil
}

// lastWrite returns the index of the last store to r, or -1.
func lastWrite(tr []Write, r Reg) int {
	for i := len(tr) - 1; i >= 0; i-- {
		if tr[i].Reg == r {
			return i
		}
	}
	return -1
}

func firstWrite(tr []Write, r Reg) int {
	for i, w := range tr {
		if w.Reg == r {
			return i
		}
	}
	return -1
}

// ---------------- Scenarios ----------------

func TestSys32MHzFromHSIUsesPLL(t *testing.T) {
	sim := NewSim()
	clk := mustFreeze(t, Constrain(sim).Sys(32*MHz))

	if clk.Sys() != 32*MHz {
		t.Fatalf("sys = %v, want 32MHz", clk.Sys())
	}
	if clk.USB() != clk.Sys() {
		t.Fatalf("usb = %v, want PLL output %v", clk.USB(), clk.Sys())
	}
	if clk.Hclk() != 32*MHz || clk.Tick() != 4*MHz || clk.ADC() != 32*MHz {
		t.Fatalf("hclk/tick/adc = %v/%v/%v", clk.Hclk(), clk.Tick(), clk.ADC())
	}
	if _, ok := clk.Ckout(); ok {
		t.Fatal("no CKOUT requested")
	}

	if sim.SW() != swPLL {
		t.Fatalf("SW = %03b, want PLL", sim.SW())
	}
	if !sim.PLLEnabled() || sim.PLLSrcHSE() {
		t.Fatal("PLL must be enabled and fed from HSI")
	}
	if sim.PFBD() != 4 || sim.POTD() != 0b00 {
		t.Fatalf("PFBD/POTD = %d/%02b, want 4/00", sim.PFBD(), sim.POTD())
	}
	if sim.FlashWait() != waitOne {
		t.Fatalf("WAIT = %03b, want one wait state", sim.FlashWait())
	}
	if sim.AHBPRE() != 0 || sim.ADCDIV() != 0 {
		t.Fatal("prescalers must stay at /1")
	}
}

func TestCommitOrder(t *testing.T) {
	sim := NewSim()
	mustFreeze(t, Constrain(sim).Sys(32*MHz).Hclk(16*MHz).ADC(4*MHz).Ckout(CkoutSys))

	want := []Reg{
		RegGCFGR,   // PLLSRC
		RegPLLCFGR, // PFBD/POTD
		RegGCCR,    // PLLEN
		RegCFCR,    // WAIT
		RegGCCR,    // SW
		RegAHBCFGR, // AHBPRE
		RegAPBCFGR, // ADCDIV
		RegGCFGR,   // CKOUTSRC
	}
	if len(sim.Trace) != len(want) {
		t.Fatalf("trace has %d writes, want %d: %+v", len(sim.Trace), len(want), sim.Trace)
	}
	for i, r := range want {
		if sim.Trace[i].Reg != r {
			t.Fatalf("write %d went to %v, want %v", i, sim.Trace[i].Reg, r)
		}
	}
	if sim.CkoutSrc() != 0b010 {
		t.Fatalf("CKOUTSRC = %03b, want CK_SYS", sim.CkoutSrc())
	}
	if sim.AHBPRE() != 0b001 || sim.ADCDIV() != 0b010 {
		t.Fatalf("AHBPRE/ADCDIV = %03b/%03b", sim.AHBPRE(), sim.ADCDIV())
	}
}

func TestSysLSIExact(t *testing.T) {
	sim := NewSim()
	clk := mustFreeze(t, Constrain(sim).Sys(32*kHz))
	if clk.Sys() != 32_000 {
		t.Fatalf("sys = %v, want 32000 Hz", clk.Sys())
	}
	if sim.SW() != swLSI || sim.PLLEnabled() {
		t.Fatalf("SW = %03b, PLL enabled = %v", sim.SW(), sim.PLLEnabled())
	}
	if firstWrite(sim.Trace, RegPLLCFGR) != -1 || firstWrite(sim.Trace, RegCFCR) != -1 {
		t.Fatal("LSI path must not touch the PLL or the flash wait states")
	}
	if clk.USB() != 0 {
		t.Fatalf("usb = %v, want disabled", clk.USB())
	}
}

func TestDefaultsToLowSpeedInternal(t *testing.T) {
	sim := NewSim()
	clk := mustFreeze(t, Constrain(sim))
	if clk.Sys() != 32_000 || sim.SW() != swLSI {
		t.Fatalf("sys = %v, SW = %03b", clk.Sys(), sim.SW())
	}
	if clk.Tick() != 4_000 {
		t.Fatalf("tick = %v", clk.Tick())
	}
}

func TestDefaultsToLSEWhenDeclared(t *testing.T) {
	sim := NewSim()
	clk := mustFreeze(t, Constrain(sim).UseLSE(32_768))
	if clk.Sys() != 32_768 || sim.SW() != swLSE {
		t.Fatalf("sys = %v, SW = %03b", clk.Sys(), sim.SW())
	}
}

func TestExactOscillatorMatch(t *testing.T) {
	cases := []struct {
		name string
		cfg  func(Configuration) Configuration
		sw   uint32
		sys  units.Hertz
	}{
		{"lse", func(c Configuration) Configuration { return c.UseLSE(32_768).Sys(32_768) }, swLSE, 32_768},
		{"hse", func(c Configuration) Configuration { return c.UseHSE(12 * MHz).Sys(12 * MHz) }, swHSE, 12 * MHz},
		{"lsi", func(c Configuration) Configuration { return c.UseLSE(32_768).Sys(32 * kHz) }, swLSI, 32 * kHz},
		{"hsi", func(c Configuration) Configuration { return c.Sys(8 * MHz) }, swHSI, 8 * MHz},
		{"hsi-over-hse", func(c Configuration) Configuration { return c.UseHSE(16 * MHz).Sys(8 * MHz) }, swHSI, 8 * MHz},
		{"lse-before-lsi", func(c Configuration) Configuration { return c.UseLSE(32 * kHz).Sys(32 * kHz) }, swLSE, 32 * kHz},
		{"hse-before-hsi", func(c Configuration) Configuration { return c.UseHSE(8 * MHz).Sys(8 * MHz) }, swHSE, 8 * MHz},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sim := NewSim()
			cfg := c.cfg(Constrain(sim))
			p, err := cfg.Resolve()
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if _, _, _, ok := p.PLL(); ok {
				t.Fatal("exact oscillator match must not use the PLL")
			}
			clk := mustFreeze(t, cfg)
			if sim.SW() != c.sw || clk.Sys() != c.sys {
				t.Fatalf("SW = %03b sys = %v, want %03b %v", sim.SW(), clk.Sys(), c.sw, c.sys)
			}
			if sim.PLLEnabled() {
				t.Fatal("PLL enabled")
			}
		})
	}
}

func TestUSBTakesPLLWhenSysDoesNot(t *testing.T) {
	sim := NewSim()
	clk := mustFreeze(t, Constrain(sim).Sys(8*MHz).USB(16*MHz))
	if sim.SW() != swHSI || clk.Sys() != 8*MHz {
		t.Fatalf("SW = %03b sys = %v; CK_SYS must stay on the HSI", sim.SW(), clk.Sys())
	}
	if clk.USB() != 16*MHz {
		t.Fatalf("usb = %v, want 16MHz", clk.USB())
	}
	if !sim.PLLEnabled() || sim.PFBD() != 4 || sim.POTD() != 0b01 {
		t.Fatalf("PLL = %v PFBD/POTD = %d/%02b, want 4/01", sim.PLLEnabled(), sim.PFBD(), sim.POTD())
	}
	if firstWrite(sim.Trace, RegCFCR) != -1 {
		t.Fatal("8 MHz needs no flash wait state")
	}
}

func TestUSBFollowsSysPLL(t *testing.T) {
	sim := NewSim()
	clk := mustFreeze(t, Constrain(sim).Sys(40*MHz).USB(12*MHz))
	if clk.Sys() != 40*MHz || clk.USB() != 40*MHz {
		t.Fatalf("sys/usb = %v/%v; one PLL output serves both", clk.Sys(), clk.USB())
	}
}

func TestPLLFromHSE(t *testing.T) {
	sim := NewSim()
	clk := mustFreeze(t, Constrain(sim).UseHSE(12*MHz).Sys(36*MHz))
	if !sim.PLLSrcHSE() {
		t.Fatal("PLLSRC must select the HSE")
	}
	if clk.Sys() != 36*MHz || sim.PFBD() != 3 || sim.POTD() != 0 {
		t.Fatalf("sys = %v PFBD/POTD = %d/%02b", clk.Sys(), sim.PFBD(), sim.POTD())
	}
}

func TestPLLApproximatesTarget(t *testing.T) {
	// 8 MHz · 5/1 = 40 MHz, 8 MHz · 6/1 = 48 MHz is illegal; 41 MHz → 40 MHz.
	clk := mustFreeze(t, Constrain(NewSim()).Sys(41*MHz))
	if clk.Sys() != 40*MHz {
		t.Fatalf("sys = %v, want 40MHz", clk.Sys())
	}
}

// ---------------- Errors ----------------

func TestSysAbove48MHzPanicsBeforeWriting(t *testing.T) {
	sim := NewSim()
	cfg := Constrain(sim).Sys(50 * MHz)

	_, err := cfg.Resolve()
	if !IsPrecondition(err) || !errors.Is(err, ErrSysTooFast) {
		t.Fatalf("Resolve err = %v", err)
	}

	v := expectPanic(t, func() { _, _ = cfg.Freeze() })
	perr, ok := v.(error)
	if !ok || !errors.Is(perr, ErrSysTooFast) {
		t.Fatalf("panic value = %#v", v)
	}
	if len(sim.Trace) != 0 {
		t.Fatalf("registers written before failing: %+v", sim.Trace)
	}
}

func TestSys48MHzIsAllowedTarget(t *testing.T) {
	// 48 MHz passes the CK_SYS ceiling but the PLL output must stay below it.
	clk := mustFreeze(t, Constrain(NewSim()).UseHSE(48*MHz).Sys(48*MHz))
	if clk.Sys() != 48*MHz {
		t.Fatalf("sys = %v", clk.Sys())
	}
}

func TestUSBCeiling(t *testing.T) {
	_, err := Constrain(NewSim()).USB(48 * MHz).Resolve()
	if !IsPrecondition(err) || !errors.Is(err, ErrUSBTooFast) {
		t.Fatalf("err = %v", err)
	}
	if _, err := Constrain(NewSim()).USB(47 * MHz).Resolve(); err != nil {
		t.Fatalf("47 MHz USB: %v", err)
	}
}

func TestZeroFrequencyIsPrecondition(t *testing.T) {
	cfgs := []Configuration{
		Constrain(NewSim()).Sys(0),
		Constrain(NewSim()).UseHSE(0),
		Constrain(NewSim()).UseLSE(0),
		Constrain(NewSim()).USB(0),
		Constrain(NewSim()).Hclk(0),
		Constrain(NewSim()).ADC(0),
	}
	for i, cfg := range cfgs {
		_, err := cfg.Resolve()
		if !IsPrecondition(err) || !errors.Is(err, ErrZeroFrequency) {
			t.Fatalf("case %d: err = %v", i, err)
		}
	}
}

func TestUnreachablePLLIsReturned(t *testing.T) {
	// VCO = 1 MHz · 4·NF2 / 2 ≤ 32 MHz: no legal pair exists.
	sim := NewSim()
	_, err := Constrain(sim).UseHSE(1 * MHz).Sys(20 * MHz).Freeze()
	if errcode.Of(err) != errcode.PLLUnreachable || !errors.Is(err, ErrNoPLLDivider) {
		t.Fatalf("err = %v", err)
	}
	if len(sim.Trace) != 0 {
		t.Fatal("no register may be written for an unreachable PLL target")
	}
}

func TestFreezeOnlyOnce(t *testing.T) {
	sim := NewSim()
	cfg := Constrain(sim).Sys(8 * MHz)
	mustFreeze(t, cfg)
	n := len(sim.Trace)

	_, err := cfg.Sys(32 * MHz).Freeze()
	if errcode.Of(err) != errcode.AlreadyFrozen || !errors.Is(err, ErrAlreadyFrozen) {
		t.Fatalf("second Freeze err = %v", err)
	}
	if len(sim.Trace) != n {
		t.Fatal("second Freeze wrote registers")
	}
}

func TestZeroConfigurationIsRejected(t *testing.T) {
	_, err := Configuration{}.Freeze()
	if errcode.Of(err) != errcode.InvalidParams {
		t.Fatalf("err = %v", err)
	}
}

func TestLockWaitSpinsUntilReady(t *testing.T) {
	sim := NewSim()
	sim.LockAfter = 25
	mustFreeze(t, Constrain(sim).Sys(24*MHz))
	if sim.polls != 25 {
		t.Fatalf("polled %d times before lock, want 25", sim.polls)
	}
}

func TestFreezeTimeoutWithoutLock(t *testing.T) {
	sim := NewSim()
	sim.NeverLock = true
	cfg := Constrain(sim).Sys(32 * MHz)

	_, err := cfg.FreezeTimeout(2 * time.Millisecond)
	if errcode.Of(err) != errcode.PLLLockTimeout || !errors.Is(err, ErrPLLNoLock) {
		t.Fatalf("err = %v", err)
	}
	if sim.SW() != swHSI {
		t.Fatal("CK_SYS must not be switched without PLL lock")
	}
	if firstWrite(sim.Trace, RegCFCR) != -1 || firstWrite(sim.Trace, RegAHBCFGR) != -1 {
		t.Fatal("nothing past the lock wait may be written")
	}

	// Not frozen: a retry once the PLL locks succeeds.
	sim.NeverLock = false
	clk, err := cfg.FreezeTimeout(time.Second)
	if err != nil || clk.Sys() != 32*MHz {
		t.Fatalf("retry: %v, sys = %v", err, clk.Sys())
	}
}

// ---------------- Properties ----------------

func TestFlashWaitBeforeSwitch(t *testing.T) {
	targets := []units.Hertz{25 * MHz, 32 * MHz, 40 * MHz, 47 * MHz}
	for _, f := range targets {
		sim := NewSim()
		clk := mustFreeze(t, Constrain(sim).Sys(f))
		if clk.Hclk() <= 24*MHz {
			continue
		}
		wait, sw := lastWrite(sim.Trace, RegCFCR), lastWrite(sim.Trace, RegGCCR)
		if wait == -1 || wait >= sw {
			t.Fatalf("%v: WAIT written at %d, SW at %d", f, wait, sw)
		}
	}
}

func TestFlashWaitCoversTransientHclk(t *testing.T) {
	// HCLK ends at 10 MHz but runs at CK_SYS (40 MHz) until AHBPRE is set.
	sim := NewSim()
	clk := mustFreeze(t, Constrain(sim).Sys(40*MHz).Hclk(10*MHz))
	if clk.Hclk() != 10*MHz {
		t.Fatalf("hclk = %v", clk.Hclk())
	}
	if sim.FlashWait() != waitOne {
		t.Fatal("wait state must be raised for the CK_SYS transient")
	}
}

func TestNoFlashWaitAtOrBelow24MHz(t *testing.T) {
	cases := []struct {
		name string
		cfg  func(Configuration) Configuration
	}{
		{"pll-24mhz", func(c Configuration) Configuration { return c.Sys(24 * MHz) }},
		{"hsi", func(c Configuration) Configuration { return c.Sys(8 * MHz) }},
		{"hse-16mhz", func(c Configuration) Configuration { return c.UseHSE(16 * MHz).Sys(16 * MHz) }},
		{"usb-only-pll", func(c Configuration) Configuration { return c.Sys(8 * MHz).USB(40 * MHz) }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sim := NewSim()
			clk := mustFreeze(t, c.cfg(Constrain(sim)))
			if clk.Sys() > 24*MHz {
				t.Fatalf("sys = %v", clk.Sys())
			}
			if sim.FlashWait() != waitZero || firstWrite(sim.Trace, RegCFCR) != -1 {
				t.Fatalf("WAIT = %03b, CFCR written at %d", sim.FlashWait(), firstWrite(sim.Trace, RegCFCR))
			}
		})
	}
}

func TestPLLWindowsHold(t *testing.T) {
	for _, hse := range []units.Hertz{0, 4 * MHz, 8 * MHz, 12 * MHz, 16 * MHz} {
		for f := 4*MHz + 250*kHz; f < 48*MHz; f += 250 * kHz {
			cfg := Constrain(NewSim()).Sys(f)
			hso := units.Hertz(hsiHz)
			if hse != 0 {
				cfg, hso = cfg.UseHSE(hse), hse
			}
			p, err := cfg.Resolve()
			if err != nil {
				t.Fatalf("hse %v sys %v: %v", hse, f, err)
			}
			nf2, no2, out, ok := p.PLL()
			if !ok {
				continue // exact oscillator match
			}
			vco := uint64(hso) * 4 * uint64(nf2) / 2
			if vco < vcoMinHz || vco > vcoMaxHz {
				t.Fatalf("hse %v sys %v: VCO %d out of range", hse, f, vco)
			}
			if out <= 4*MHz || out >= 48*MHz || p.Sys() != out {
				t.Fatalf("hse %v sys %v: out %v (nf2=%d no2=%d)", hse, f, out, nf2, no2)
			}
		}
	}
}

func TestPLLSearchIsDeterministic(t *testing.T) {
	for f := units.Hertz(5 * MHz); f < 48*MHz; f += 1_234_567 {
		a, errA := searchPLL(8*MHz, f)
		b, errB := searchPLL(8*MHz, f)
		if errA != nil || errB != nil || a != b {
			t.Fatalf("%v: %+v/%v vs %+v/%v", f, a, errA, b, errB)
		}
	}
}

func TestPLLTieKeepsLowerFeedback(t *testing.T) {
	// 8 MHz → 12 MHz: 3/2 is exact and found before 6/4.
	d, err := searchPLL(8*MHz, 12*MHz)
	if err != nil || d.nf2 != 3 || d.no2 != 2 {
		t.Fatalf("got %+v, %v", d, err)
	}
}

func TestPLLEncoding(t *testing.T) {
	cases := []struct {
		d          pllDivider
		pfbd, potd uint32
	}{
		{pllDivider{nf2: 1, no2: 1}, 1, 0b00},
		{pllDivider{nf2: 15, no2: 2}, 15, 0b01},
		{pllDivider{nf2: 16, no2: 4}, 0, 0b10},
		{pllDivider{nf2: 6, no2: 8}, 6, 0b11},
	}
	for _, c := range cases {
		if c.d.pfbd() != c.pfbd || c.d.potd() != c.potd {
			t.Fatalf("%+v: pfbd/potd = %d/%02b", c.d, c.d.pfbd(), c.d.potd())
		}
	}
}

func TestHclkBrackets(t *testing.T) {
	cases := map[uint32]prescale{
		0:   {1, 0b000},
		1:   {1, 0b000},
		2:   {2, 0b001},
		3:   {2, 0b001},
		4:   {4, 0b010},
		5:   {4, 0b010},
		7:   {4, 0b010},
		8:   {8, 0b100},
		15:  {8, 0b100},
		16:  {16, 0b111},
		500: {16, 0b111},
	}
	for ratio, want := range cases {
		if got := pick(hclkBrackets[:], ratio); got != want {
			t.Fatalf("ratio %d: got %+v, want %+v", ratio, got, want)
		}
	}
}

func TestADCBrackets(t *testing.T) {
	cases := map[uint32]prescale{
		1:    {1, 0b000},
		2:    {2, 0b001},
		3:    {3, 0b111},
		4:    {4, 0b010},
		7:    {4, 0b010},
		8:    {8, 0b011},
		15:   {8, 0b011},
		16:   {16, 0b100},
		31:   {16, 0b100},
		32:   {32, 0b101},
		63:   {32, 0b101},
		64:   {64, 0b110},
		1000: {64, 0b110},
	}
	for ratio, want := range cases {
		if got := pick(adcBrackets[:], ratio); got != want {
			t.Fatalf("ratio %d: got %+v, want %+v", ratio, got, want)
		}
	}
}

func TestHclkRatioFiveUsesDivider4(t *testing.T) {
	clk := mustFreeze(t, Constrain(NewSim()).Sys(40*MHz).Hclk(8*MHz))
	if clk.Hclk() != 10*MHz {
		t.Fatalf("hclk = %v, want 40MHz/4", clk.Hclk())
	}
}

func TestHclkDividerMonotonic(t *testing.T) {
	prev := uint8(255)
	for f := units.Hertz(1 * MHz); f <= 40*MHz; f += 100 * kHz {
		p, err := Constrain(NewSim()).Sys(40 * MHz).Hclk(f).Resolve()
		if err != nil {
			t.Fatal(err)
		}
		if p.HclkDivider() > prev {
			t.Fatalf("target %v: divider %d grew from %d", f, p.HclkDivider(), prev)
		}
		prev = p.HclkDivider()
	}
}

func TestHclkAboveSysClampsToOne(t *testing.T) {
	clk := mustFreeze(t, Constrain(NewSim()).Sys(32*kHz).Hclk(1*MHz))
	if clk.Hclk() != 32*kHz {
		t.Fatalf("hclk = %v", clk.Hclk())
	}
}

func TestADCDividerThree(t *testing.T) {
	sim := NewSim()
	clk := mustFreeze(t, Constrain(sim).Sys(32*MHz).ADC(10*MHz))
	if clk.ADC() != 10_666_666 || sim.ADCDIV() != 0b111 {
		t.Fatalf("adc = %v ADCDIV = %03b", clk.ADC(), sim.ADCDIV())
	}
}

func TestTickIsHclkOverEight(t *testing.T) {
	cfgs := []Configuration{
		Constrain(NewSim()),
		Constrain(NewSim()).Sys(8 * MHz).Hclk(3 * MHz),
		Constrain(NewSim()).Sys(36 * MHz).Hclk(9 * MHz),
		Constrain(NewSim()).UseHSE(12 * MHz).Sys(12 * MHz).Hclk(12 * MHz),
	}
	for i, cfg := range cfgs {
		clk := mustFreeze(t, cfg)
		if clk.Tick() != clk.Hclk()/8 {
			t.Fatalf("case %d: tick %v, hclk %v", i, clk.Tick(), clk.Hclk())
		}
	}
	clk := mustFreeze(t, Constrain(NewSim()).Sys(32*MHz))
	if clk.TickPeriod() != 250*time.Nanosecond {
		t.Fatalf("tick period = %v", clk.TickPeriod())
	}
}

func TestCkoutSelectors(t *testing.T) {
	for src := CkoutRef; src <= CkoutLSI; src++ {
		sim := NewSim()
		clk := mustFreeze(t, Constrain(sim).Ckout(src))
		if got, ok := clk.Ckout(); !ok || got != src {
			t.Fatalf("Ckout() = %v,%v", got, ok)
		}
		if sim.CkoutSrc() != uint32(src) {
			t.Fatalf("%v: CKOUTSRC = %03b", src, sim.CkoutSrc())
		}
		if lastWrite(sim.Trace, RegGCFGR) != len(sim.Trace)-1 {
			t.Fatalf("%v: CKOUT must be written last", src)
		}
		back, ok := ParseCkoutSrc(src.String())
		if !ok || back != src {
			t.Fatalf("ParseCkoutSrc(%q) = %v,%v", src.String(), back, ok)
		}
	}
	if !CkoutSys.Divided() || CkoutLSE.Divided() || CkoutRef.Divided() {
		t.Fatal("Divided mismatch")
	}
}

func TestCkoutOutOfRangePanicsBeforeWriting(t *testing.T) {
	for _, src := range []CkoutSrc{CkoutLSI + 1, 9, 255} {
		sim := NewSim()
		cfg := Constrain(sim).Sys(32 * MHz).Ckout(src)

		_, err := cfg.Resolve()
		if !IsPrecondition(err) || !errors.Is(err, ErrBadCkout) {
			t.Fatalf("%d: Resolve err = %v", src, err)
		}

		v := expectPanic(t, func() { _, _ = cfg.Freeze() })
		if perr, ok := v.(error); !ok || !errors.Is(perr, ErrBadCkout) {
			t.Fatalf("%d: panic value = %#v", src, v)
		}
		if len(sim.Trace) != 0 {
			t.Fatalf("%d: registers written before failing: %+v", src, sim.Trace)
		}
	}
}

func TestBuilderIsValueSemantic(t *testing.T) {
	base := Constrain(NewSim()).Sys(8 * MHz)
	faster := base.Sys(32 * MHz)

	p, err := base.Resolve()
	if err != nil || p.Sys() != 8*MHz {
		t.Fatalf("base was modified by a later setter: %v %v", p.Sys(), err)
	}
	q, err := faster.Resolve()
	if err != nil || q.Sys() != 32*MHz {
		t.Fatalf("faster = %v %v", q.Sys(), err)
	}
}
