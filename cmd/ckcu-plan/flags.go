package main

import (
	"github.com/spf13/pflag"

	"ht32-hal-go/services/config"
	"ht32-hal-go/x/units"
)

// freqValue is a pflag.Value for an optional frequency ("8MHz", "32768").
type freqValue struct {
	p **config.Freq
}

var _ pflag.Value = freqValue{}

func (v freqValue) String() string {
	if v.p == nil || *v.p == nil {
		return ""
	}
	return (*v.p).Hertz().String()
}

func (v freqValue) Set(s string) error {
	f, err := units.Parse(s)
	if err != nil {
		return err
	}
	fv := config.Freq(f)
	*v.p = &fv
	return nil
}

func (freqValue) Type() string { return "freq" }

// addProfileFlags binds one flag per profile field to p.
func addProfileFlags(fs *pflag.FlagSet, p *config.Profile) {
	fs.Var(freqValue{&p.HSE}, "hse", "external high speed crystal frequency")
	fs.Var(freqValue{&p.LSE}, "lse", "external low speed crystal frequency")
	fs.Var(freqValue{&p.Sys}, "sys", "CK_SYS target")
	fs.Var(freqValue{&p.USB}, "usb", "CK_USB target (below 48MHz)")
	fs.Var(freqValue{&p.Hclk}, "hclk", "HCLK target")
	fs.Var(freqValue{&p.ADC}, "adc", "CK_ADC_IP target")
	fs.StringVar(&p.Ckout, "ckout", "", "clock routed to CKOUT (ck_ref, hclk, ck_sys, ck_hse, ck_hsi, ck_lse, ck_lsi)")
}
