package filter

import (
	"aisfeed/internal/setting"
	"aisfeed/pkg/ais"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

const allTypes uint32 = (1<<28 - 1) &^ 1 // types 1..27

func NewBasic() (basic *Basic) {
	basic = &Basic{
		gps:        true,
		allowTypes: allTypes,
	}
	return
}

func (basic *Basic) SetOption(option string, arg string) (handled bool, err error) {
	handled = true
	arg = strings.ToUpper(strings.TrimSpace(arg))

	switch strings.ToUpper(option) {
	case "FILTER":
		basic.on, err = setting.Switch(arg)
	case "GPS":
		basic.gps, err = setting.Switch(arg)
	case "ALLOW_TYPE":
		basic.allowTypes, err = parseTypes(arg)
		basic.on = true
	case "BLOCK_TYPE":
		basic.blockTypes, err = parseTypes(arg)
		basic.on = true
	case "ALLOW_CHANNEL":
		basic.allowChan, err = parseChannels(arg)
		basic.on = true
	case "BLOCK_CHANNEL":
		basic.blockChan, err = parseChannels(arg)
		basic.on = true
	case "ALLOW_MMSI":
		basic.allowMMSI, err = parseMMSIs(arg)
		basic.on = true
	case "BLOCK_MMSI":
		basic.blockMMSI, err = parseMMSIs(arg)
		basic.on = true
	default:
		handled = false
	}
	if err != nil {
		err = fmt.Errorf("filter option %s: %w", option, err)
	}
	return
}

func (basic *Basic) Include(msg *ais.Message) (include bool) {
	if !basic.on {
		include = true
		return
	}

	if msg.Type < 1 || msg.Type > 27 {
		return
	}
	bit := uint32(1) << msg.Type
	if basic.allowTypes&bit == 0 || basic.blockTypes&bit != 0 {
		return
	}

	if basic.allowChan != "" && (msg.Channel == "" || !strings.Contains(basic.allowChan, msg.Channel)) {
		return
	}
	if basic.blockChan != "" && msg.Channel != "" && strings.Contains(basic.blockChan, msg.Channel) {
		return
	}

	if basic.allowMMSI != nil {
		if _, ok := basic.allowMMSI[msg.MMSI]; !ok {
			return
		}
	}
	if _, blocked := basic.blockMMSI[msg.MMSI]; blocked {
		return
	}

	include = true
	return
}

func (basic *Basic) IncludeFix() (include bool) {
	include = basic.gps
	return
}

func (basic *Basic) IsOn() (on bool) {
	on = basic.on
	return
}

// Human readable summary of what passes
func (basic *Basic) Allowed() (description string) {
	var parts []string

	var types []string
	for n := 1; n <= 27; n++ {
		bit := uint32(1) << n
		if basic.allowTypes&bit != 0 && basic.blockTypes&bit == 0 {
			types = append(types, strconv.Itoa(n))
		}
	}
	parts = append(parts, "types: "+strings.Join(types, ","))

	if basic.allowChan != "" {
		parts = append(parts, "channels: "+basic.allowChan)
	}
	if basic.blockChan != "" {
		parts = append(parts, "blocked channels: "+basic.blockChan)
	}
	if basic.allowMMSI != nil {
		parts = append(parts, "mmsi: "+joinMMSIs(basic.allowMMSI))
	}
	if basic.blockMMSI != nil {
		parts = append(parts, "blocked mmsi: "+joinMMSIs(basic.blockMMSI))
	}
	parts = append(parts, "gps: "+strconv.FormatBool(basic.gps))

	description = strings.Join(parts, "; ")
	return
}

func parseTypes(arg string) (mask uint32, err error) {
	for _, item := range strings.Split(arg, ",") {
		var n int
		n, err = setting.Integer(item, 1, 27)
		if err != nil {
			return
		}
		mask |= 1 << n
	}
	return
}

func parseChannels(arg string) (channels string, err error) {
	for _, c := range arg {
		if c == ',' {
			continue
		}
		if c < 'A' || c > 'D' {
			err = fmt.Errorf("%w: invalid channel '%c'", setting.ErrConfiguration, c)
			return
		}
		channels += string(c)
	}
	return
}

func parseMMSIs(arg string) (set map[uint32]struct{}, err error) {
	set = make(map[uint32]struct{})
	for _, item := range strings.Split(arg, ",") {
		var n uint64
		n, err = strconv.ParseUint(strings.TrimSpace(item), 10, 32)
		if err != nil || n > 999999999 {
			err = fmt.Errorf("%w: invalid mmsi '%s'", setting.ErrConfiguration, item)
			return
		}
		set[uint32(n)] = struct{}{}
	}
	return
}

func joinMMSIs(set map[uint32]struct{}) (joined string) {
	ids := make([]uint32, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	items := make([]string, len(ids))
	for i, id := range ids {
		items[i] = strconv.FormatUint(uint64(id), 10)
	}
	joined = strings.Join(items, ",")
	return
}
