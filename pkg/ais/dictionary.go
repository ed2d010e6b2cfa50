package ais

// Maps field keys to their output names. Keys without an entry are dropped
// unless the dictionary passes everything through.
type Dictionary struct {
	Name    string
	names   map[string]string
	passAll bool
}

// Output name for a key, ok=false when the key is not part of this dictionary
func (dict Dictionary) Lookup(key string) (name string, ok bool) {
	name, ok = dict.names[key]
	if !ok && dict.passAll {
		name, ok = key, true
	}
	return
}

var (
	// Every field under its own name
	DictFull = Dictionary{
		Name:    "FULL",
		names:   map[string]string{},
		passAll: true,
	}

	// Position report essentials
	DictMinimal = Dictionary{
		Name: "MINIMAL",
		names: map[string]string{
			"rxtime":      "rxtime",
			"channel":     "channel",
			"mmsi":        "mmsi",
			"type":        "type",
			"lat":         "lat",
			"lon":         "lon",
			"speed":       "speed",
			"course":      "course",
			"heading":     "heading",
			"status":      "status",
			"shipname":    "shipname",
			"callsign":    "callsign",
			"shiptype":    "shiptype",
			"imo":         "imo",
			"draught":     "draught",
			"signalpower": "signalpower",
		},
	}

	// Field naming expected by APRS aggregators
	DictAPRS = Dictionary{
		Name: "APRS",
		names: map[string]string{
			"rxtime":      "rxtime",
			"mmsi":        "mmsi",
			"type":        "msgtype",
			"lat":         "lat",
			"lon":         "lng",
			"speed":       "speed",
			"course":      "course",
			"heading":     "heading",
			"status":      "navstat",
			"shipname":    "name",
			"callsign":    "callsign",
			"shiptype":    "shiptype",
			"imo":         "imo",
			"destination": "destination",
			"draught":     "draught",
		},
	}
)
