package wire

import (
	"math/bits"
	"strings"
)

// Settings is the controller settings bitmask reported by the kernel in
// ReadControllerInfo replies, Set* replies and NewSettings events.
type Settings uint32

// Settings bits.
const (
	SettingPowered          Settings = 1 << 0
	SettingConnectable      Settings = 1 << 1
	SettingFastConnectable  Settings = 1 << 2
	SettingDiscoverable     Settings = 1 << 3
	SettingBondable         Settings = 1 << 4
	SettingLinkSecurity     Settings = 1 << 5
	SettingSSP              Settings = 1 << 6
	SettingBREDR            Settings = 1 << 7
	SettingHighSpeed        Settings = 1 << 8
	SettingLE               Settings = 1 << 9
	SettingAdvertising      Settings = 1 << 10
	SettingSecureConn       Settings = 1 << 11
	SettingDebugKeys        Settings = 1 << 12
	SettingPrivacy          Settings = 1 << 13
	SettingConfiguration    Settings = 1 << 14
	SettingStaticAddress    Settings = 1 << 15
	SettingPhyConfiguration Settings = 1 << 16
	SettingWidebandSpeech   Settings = 1 << 17
)

var settingNames = [...]string{
	"powered",
	"connectable",
	"fast-connectable",
	"discoverable",
	"bondable",
	"link-security",
	"ssp",
	"br/edr",
	"hs",
	"le",
	"advertising",
	"secure-conn",
	"debug-keys",
	"privacy",
	"configuration",
	"static-addr",
	"phy-configuration",
	"wide-band-speech",
}

// Has reports whether every bit in flag is set.
func (s Settings) Has(flag Settings) bool {
	return s&flag == flag
}

// With returns s with flag set.
func (s Settings) With(flag Settings) Settings {
	return s | flag
}

// Without returns s with flag cleared.
func (s Settings) Without(flag Settings) Settings {
	return s &^ flag
}

// Names returns the names of the set bits in ascending bit order.
func (s Settings) Names() []string {
	names := make([]string, 0, bits.OnesCount32(uint32(s)))
	for i := range 32 {
		if s&(1<<i) == 0 {
			continue
		}
		if i < len(settingNames) {
			names = append(names, settingNames[i])
		} else {
			names = append(names, "unknown")
		}
	}
	return names
}

// String returns the set bit names separated by spaces.
func (s Settings) String() string {
	return strings.Join(s.Names(), " ")
}

// ParseSetting looks up a single setting bit by name.
func ParseSetting(name string) (Settings, bool) {
	for i, n := range settingNames {
		if strings.EqualFold(n, name) {
			return 1 << i, true
		}
	}
	return 0, false
}
