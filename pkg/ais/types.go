// Decoded AIS records as handed to the output layer, and their wire renderings
package ais

import "time"

// One decoded field in decoder order
type Field struct {
	Key   string
	Value any
}

// Decoded broadcast message. Read-only for outputs.
type Message struct {
	NMEA    []string  // pre-rendered sentences, without line terminator
	Type    int       // 1..27
	Channel string    // A, B, C, D
	MMSI    uint32    // source identity
	RxTime  time.Time // reception time
	Fields  []Field   // decoded payload
}

// Positional sample from the receiver's own GPS
type Fix struct {
	Lat       float64
	Lon       float64
	Timestamp time.Time
	Sentence  string // pre-rendered NMEA line, without line terminator
}

// Per-batch reception metadata
type Tag struct {
	Mode  int     // decoder mode
	Level float64 // signal level, dB
	PPM   float64 // frequency error estimate
	Group uint64  // source group bit, 0 when ungrouped
}
