package config

// -----------------------------------------------------------------------------
// Embedded clock profiles
//
// Key: board name (the firmware build selects one, the CLI can list them)
// Val: raw JSON bytes for that board
// -----------------------------------------------------------------------------

// ESK32-30501 starter kit: 8 MHz crystal, full speed with USB on the PLL.
const cfgESK32 = `{
  "hse": "8MHz",
  "sys": "40MHz",
  "usb": "40MHz",
  "hclk": "40MHz",
  "adc": "10MHz",
  "ckout": "ck_sys"
}`

// Low power: no crystal, CK_SYS straight from the HSI.
const cfgHSI = `{
  "sys": "8MHz",
  "adc": "1MHz"
}`

// Battery logger: 32.768 kHz watch crystal drives everything.
const cfgLSE = `{
  "lse": 32768,
  "ckout": "ck_lse"
}`

var embeddedProfiles = map[string][]byte{
	"esk32-30501": []byte(cfgESK32),
	"hsi-8mhz":    []byte(cfgHSI),
	"lse-logger":  []byte(cfgLSE),
}
