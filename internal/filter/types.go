// Record inclusion decisions shared by all outputs
package filter

import "aisfeed/pkg/ais"

// Capability consumed by outputs
type Filter interface {
	// Applies a filter option. handled=false when the option is not a filter option.
	SetOption(option string, arg string) (handled bool, err error)
	Include(msg *ais.Message) (include bool)
	IncludeFix() (include bool)
	IsOn() (on bool)
	Allowed() (description string)
}

// Type, channel and MMSI allow/block lists plus a GPS switch
type Basic struct {
	on         bool
	gps        bool
	allowTypes uint32 // bit n set = message type n
	blockTypes uint32
	allowChan  string
	blockChan  string
	allowMMSI  map[uint32]struct{}
	blockMMSI  map[uint32]struct{}
}
