package httpout

import (
	"aisfeed/internal/global"
	"aisfeed/internal/output"
	"aisfeed/internal/setting"
	"aisfeed/pkg/ais"
	"fmt"
	"strings"
)

func (mod *OutModule) Set(option string, arg string) (self output.Output, err error) {
	self = mod
	option = strings.ToUpper(option)

	switch option {
	case "URL":
		mod.url = arg
	case "USERPWD":
		mod.userpwd = arg
	case "STATIONID", "ID", "CALLSIGN":
		mod.stationID = arg
	case "TEST":
		mod.test, err = setting.Switch(arg)
	case "INTERVAL":
		mod.interval, err = setting.Integer(arg, global.MinHTTPInterval, global.MaxHTTPInterval)
	case "TIMEOUT":
		mod.timeout, err = setting.Integer(arg, global.MinHTTPTimeout, global.MaxHTTPTimeout)
	case "MODEL":
		mod.model = arg
	case "MODEL_SETTING":
		mod.modelSetting = arg
	case "PRODUCT":
		mod.product = arg
	case "VENDOR":
		mod.vendor = arg
	case "SERIAL":
		mod.serial = arg
	case "DEVICE_SETTING":
		mod.deviceSetting = arg
	case "LAT":
		mod.lat, err = setting.Float(arg, -90, 90)
	case "LON":
		mod.lon, err = setting.Float(arg, -180, 180)
	case "GROUPS_IN":
		mod.groups, err = setting.Mask(arg)
	case "GZIP":
		var on bool
		on, err = setting.Switch(arg)
		if err == nil && on && !mod.zip.Installed() {
			err = fmt.Errorf("%w: HTTP output - gzip requested but compression is not available", setting.ErrConfiguration)
			return
		}
		mod.gzip = on
	case "RESPONSE":
		mod.response, err = setting.Switch(arg)
	case "PROTOCOL":
		err = mod.setProtocol(Protocol(strings.ToUpper(strings.TrimSpace(arg))))
	default:
		var handled bool
		handled, err = mod.filter.SetOption(option, strings.ToUpper(arg))
		if err == nil && !handled {
			err = setting.Unknown(global.NSoHTTP, option)
			return
		}
	}

	if err != nil {
		err = setting.Invalid(global.NSoHTTP, option, err)
	}
	return
}

// Fixes dictionary and envelope together
func (mod *OutModule) setProtocol(protocol Protocol) (err error) {
	switch protocol {
	case ProtocolAISCatcher, ProtocolList:
		mod.builder.SetDictionary(ais.DictFull)
	case ProtocolMinimal:
		mod.builder.SetDictionary(ais.DictMinimal)
	case ProtocolAirframes:
		mod.builder.SetDictionary(ais.DictMinimal)
		mod.gzip = mod.zip.Installed()
		mod.interval = global.AirframesInterval
	case ProtocolAPRS:
		mod.builder.SetDictionary(ais.DictAPRS)
	default:
		err = fmt.Errorf("%w: unknown protocol '%s'", setting.ErrConfiguration, protocol)
		return
	}
	mod.protocol = protocol
	return
}
