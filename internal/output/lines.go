package output

import (
	"aisfeed/internal/filter"
	"aisfeed/internal/global"
	"aisfeed/internal/setting"
	"aisfeed/pkg/ais"
	"fmt"
	"strings"
)

func NewLines() (lines *Lines) {
	lines = &Lines{
		Groups: global.GroupsAll,
		Filter: filter.NewBasic(),
	}
	return
}

// Handles JSON, GROUPS_IN and filter options. handled=false leaves the option to the adapter.
func (lines *Lines) SetOption(option string, arg string) (handled bool, err error) {
	switch option {
	case "JSON":
		handled = true
		lines.JSON, err = setting.Switch(arg)
	case "GROUPS_IN":
		handled = true
		lines.Groups, err = setting.Mask(arg)
	default:
		handled, err = lines.Filter.SetOption(option, strings.ToUpper(arg))
	}
	return
}

// Ungrouped batches pass every mask
func (lines *Lines) Accepts(tag ais.Tag) (accepted bool) {
	accepted = tag.Group == 0 || tag.Group&lines.Groups != 0
	return
}

// Calls emit with each CRLF terminated line for the approved messages.
// NMEA mode emits one line per sentence, JSON mode one line per message.
func (lines *Lines) Messages(msgs []ais.Message, tag ais.Tag, emit func(line string)) (filtered int) {
	if !lines.Accepts(tag) {
		filtered = len(msgs)
		return
	}

	for i := range msgs {
		if !lines.Filter.Include(&msgs[i]) {
			filtered++
			continue
		}
		if lines.JSON {
			emit(msgs[i].NMEAJSON(tag) + global.LineEnd)
			continue
		}
		for _, sentence := range msgs[i].NMEA {
			emit(sentence + global.LineEnd)
		}
	}
	return
}

// Calls emit with each CRLF terminated line for the fixes, if fixes are included at all
func (lines *Lines) Fixes(fixes []ais.Fix, tag ais.Tag, emit func(line string)) (filtered int) {
	if !lines.Accepts(tag) || !lines.Filter.IncludeFix() {
		filtered = len(fixes)
		return
	}

	for _, fix := range fixes {
		if lines.JSON {
			emit(fix.JSON() + global.LineEnd)
		} else {
			emit(fix.NMEA() + global.LineEnd)
		}
	}
	return
}

// Filter and format state for start-up log lines
func (lines *Lines) Describe() (text string) {
	text = DescribeFilter(lines.Filter) + fmt.Sprintf(", JSON: %s", onOff(lines.JSON))
	return
}

func DescribeFilter(flt filter.Filter) (text string) {
	text = "filter: " + onOff(flt.IsOn())
	if flt.IsOn() {
		text += ", allowed: {" + flt.Allowed() + "}"
	}
	return
}

func onOff(on bool) (text string) {
	if on {
		text = "ON"
	} else {
		text = "OFF"
	}
	return
}
