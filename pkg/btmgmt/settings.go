package btmgmt

import (
	"context"
	"errors"
	"fmt"

	"github.com/btmgmt/btmgmt-go/pkg/catalog"
	"github.com/btmgmt/btmgmt-go/pkg/wire"
)

// ErrUnsupportedSetting is returned for settings that cannot be switched
// with a plain on/off command.
var ErrUnsupportedSetting = errors.New("setting cannot be toggled")

// SettingCommand returns the command that turns setting on or off.
func SettingCommand(setting wire.Settings, on bool) (catalog.Command, error) {
	var mode uint8
	if on {
		mode = 1
	}
	switch setting {
	case wire.SettingPowered:
		return &catalog.SetPowered{Enable: on}, nil
	case wire.SettingConnectable:
		return &catalog.SetConnectable{Enable: on}, nil
	case wire.SettingFastConnectable:
		return &catalog.SetFastConnectable{Enable: on}, nil
	case wire.SettingDiscoverable:
		dm := catalog.DiscoverableOff
		if on {
			dm = catalog.DiscoverableGeneral
		}
		return &catalog.SetDiscoverable{Mode: dm}, nil
	case wire.SettingBondable:
		return &catalog.SetBondable{Enable: on}, nil
	case wire.SettingLinkSecurity:
		return &catalog.SetLinkSecurity{Enable: on}, nil
	case wire.SettingSSP:
		return &catalog.SetSSP{Enable: on}, nil
	case wire.SettingBREDR:
		return &catalog.SetBREDR{Enable: on}, nil
	case wire.SettingHighSpeed:
		return &catalog.SetHighSpeed{Enable: on}, nil
	case wire.SettingLE:
		return &catalog.SetLE{Enable: on}, nil
	case wire.SettingAdvertising:
		return &catalog.SetAdvertising{Mode: mode}, nil
	case wire.SettingSecureConn:
		return &catalog.SetSecureConnections{Mode: mode}, nil
	case wire.SettingDebugKeys:
		return &catalog.SetDebugKeys{Mode: mode}, nil
	case wire.SettingWidebandSpeech:
		return &catalog.SetWidebandSpeech{Enable: on}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSetting, setting)
	}
}

// SetSetting turns one setting on or off and returns the resulting
// settings. Nothing is sent when the cached state already matches.
func (c *Client) SetSetting(ctx context.Context, index wire.ControllerIndex, setting wire.Settings, on bool) (wire.Settings, error) {
	cmd, err := SettingCommand(setting, on)
	if err != nil {
		return 0, err
	}
	if s, err := c.registry.Snapshot(index); err == nil && s.Has(setting) == on {
		return s.CurrentSettings, nil
	}

	reply, err := c.Exec(ctx, index, cmd)
	if err != nil {
		return 0, err
	}
	if r, ok := reply.(*catalog.SettingsReply); ok {
		return r.Settings, nil
	}
	// No settings in the reply: report what the registry knows.
	s, err := c.registry.Snapshot(index)
	if err != nil {
		return 0, err
	}
	return s.CurrentSettings, nil
}

// ToggleSetting flips one setting based on the cached controller state.
func (c *Client) ToggleSetting(ctx context.Context, index wire.ControllerIndex, setting wire.Settings) (wire.Settings, error) {
	s, err := c.registry.Snapshot(index)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", index, err)
	}
	return c.SetSetting(ctx, index, setting, !s.Has(setting))
}
