// Package config holds the clock profiles the firmware and the planning tool
// start from.
package config

import (
	"encoding/json"
	"errors"
	"sort"

	"gopkg.in/yaml.v3"

	"ht32-hal-go/drivers/ckcu"
	"ht32-hal-go/errcode"
	"ht32-hal-go/x/units"
)

const opProfile = "config.profile"

var (
	ErrUnknownBoard = errors.New("no embedded clock profile for board")
	ErrUnknownCkout = errors.New("unknown ckout selector")
)

// EmbeddedProfileLookup allows overriding how profiles are resolved.
var EmbeddedProfileLookup = func(board string) ([]byte, bool) {
	b, ok := embeddedProfiles[board]
	return b, ok
}

// Freq is a frequency written either as a number of Hz or as a string with a
// unit ("32MHz", "32768", "32 kHz").
type Freq units.Hertz

func (f Freq) Hertz() units.Hertz { return units.Hertz(f) }

func (f *Freq) UnmarshalText(b []byte) error {
	v, err := units.Parse(string(b))
	if err != nil {
		return err
	}
	*f = Freq(v)
	return nil
}

func (f *Freq) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		return f.UnmarshalText([]byte(s))
	}
	return f.UnmarshalText(b)
}

func (f *Freq) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return &errcode.E{C: errcode.InvalidParams, Op: opProfile, Msg: "frequency must be a scalar", Err: units.ErrBadFrequency}
	}
	return f.UnmarshalText([]byte(n.Value))
}

func (f Freq) MarshalText() ([]byte, error) { return []byte(units.Hertz(f).String()), nil }

// Profile is a declarative clock setup. Nil fields are left unset on the
// ckcu.Configuration.
type Profile struct {
	HSE   *Freq  `json:"hse,omitempty" yaml:"hse,omitempty"`
	LSE   *Freq  `json:"lse,omitempty" yaml:"lse,omitempty"`
	Sys   *Freq  `json:"sys,omitempty" yaml:"sys,omitempty"`
	USB   *Freq  `json:"usb,omitempty" yaml:"usb,omitempty"`
	ADC   *Freq  `json:"adc,omitempty" yaml:"adc,omitempty"`
	Hclk  *Freq  `json:"hclk,omitempty" yaml:"hclk,omitempty"`
	Ckout string `json:"ckout,omitempty" yaml:"ckout,omitempty"`
}

// Decode parses a JSON profile.
func Decode(raw []byte) (Profile, error) {
	var p Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return Profile{}, errcode.New(errcode.InvalidParams, opProfile, err)
	}
	return p, nil
}

// DecodeYAML parses a YAML profile. JSON input is accepted too.
func DecodeYAML(raw []byte) (Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return Profile{}, errcode.New(errcode.InvalidParams, opProfile, err)
	}
	return p, nil
}

// Lookup decodes the embedded profile for board.
func Lookup(board string) (Profile, error) {
	raw, ok := EmbeddedProfileLookup(board)
	if !ok || len(raw) == 0 {
		return Profile{}, &errcode.E{C: errcode.InvalidParams, Op: opProfile, Msg: "no embedded clock profile for board: " + board, Err: ErrUnknownBoard}
	}
	return Decode(raw)
}

// Boards lists the embedded profiles, sorted.
func Boards() []string {
	names := make([]string, 0, len(embeddedProfiles))
	for k := range embeddedProfiles {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Merge overlays the fields set in o onto p.
func (p Profile) Merge(o Profile) Profile {
	for _, f := range [...]struct{ dst, src **Freq }{
		{&p.HSE, &o.HSE}, {&p.LSE, &o.LSE}, {&p.Sys, &o.Sys},
		{&p.USB, &o.USB}, {&p.ADC, &o.ADC}, {&p.Hclk, &o.Hclk},
	} {
		if *f.src != nil {
			*f.dst = *f.src
		}
	}
	if o.Ckout != "" {
		p.Ckout = o.Ckout
	}
	return p
}

// Apply folds the profile into cfg.
func (p Profile) Apply(cfg ckcu.Configuration) (ckcu.Configuration, error) {
	if p.HSE != nil {
		cfg = cfg.UseHSE(p.HSE.Hertz())
	}
	if p.LSE != nil {
		cfg = cfg.UseLSE(p.LSE.Hertz())
	}
	if p.Sys != nil {
		cfg = cfg.Sys(p.Sys.Hertz())
	}
	if p.USB != nil {
		cfg = cfg.USB(p.USB.Hertz())
	}
	if p.ADC != nil {
		cfg = cfg.ADC(p.ADC.Hertz())
	}
	if p.Hclk != nil {
		cfg = cfg.Hclk(p.Hclk.Hertz())
	}
	if p.Ckout != "" {
		src, ok := ckcu.ParseCkoutSrc(p.Ckout)
		if !ok {
			return cfg, &errcode.E{C: errcode.InvalidParams, Op: opProfile, Msg: "unknown ckout selector: " + p.Ckout, Err: ErrUnknownCkout}
		}
		cfg = cfg.Ckout(src)
	}
	return cfg, nil
}
