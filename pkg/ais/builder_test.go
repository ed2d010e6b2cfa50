package ais

import (
	"strings"
	"testing"
)

func TestBuilderStringify(t *testing.T) {
	msg := Message{
		Type:    1,
		Channel: "B",
		MMSI:    123456789,
		RxTime:  testTime,
		Fields: []Field{
			{Key: "lat", Value: 51.25},
			{Key: "lon", Value: 3.5},
			{Key: "shipname", Value: "NORTH STAR"},
			{Key: "radio", Value: 2249},
		},
	}
	tag := Tag{Mode: 1, Level: -20.5, PPM: 0.5}

	tests := []struct {
		name       string
		dict       Dictionary
		wantPrefix string
		contains   []string
		absent     []string
	}{
		{
			name:       "full keeps everything",
			dict:       DictFull,
			wantPrefix: `{"class":"AIS","device":"AIS-catcher","version":58,"driver":1,"channel":"B"`,
			contains:   []string{`"lat":51.25`, `"shipname":"NORTH STAR"`, `"radio":2249`},
		},
		{
			name:       "minimal drops unknown and receiver fields",
			dict:       DictMinimal,
			wantPrefix: `{"channel":"B","signalpower":-20.5,"rxtime":"20260314150926","mmsi":123456789,"type":1`,
			contains:   []string{`"lat":51.25`, `"lon":3.5`},
			absent:     []string{`"radio"`, `"class"`, `"ppm"`},
		},
		{
			name:       "aprs renames fields",
			dict:       DictAPRS,
			wantPrefix: `{"rxtime":"20260314150926","mmsi":123456789,"msgtype":1`,
			contains:   []string{`"lng":3.5`, `"name":"NORTH STAR"`},
			absent:     []string{`"lon"`, `"shipname"`, `"channel"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewBuilder(tt.dict).Stringify(msg, tag)
			if !strings.HasPrefix(got, tt.wantPrefix) {
				t.Fatalf("\ngot  %s\nwant prefix %s", got, tt.wantPrefix)
			}
			if !strings.HasSuffix(got, "}") {
				t.Fatalf("unterminated object: %s", got)
			}
			for _, c := range tt.contains {
				if !strings.Contains(got, c) {
					t.Errorf("expected %s in %s", c, got)
				}
			}
			for _, a := range tt.absent {
				if strings.Contains(got, a) {
					t.Errorf("did not expect %s in %s", a, got)
				}
			}
		})
	}
}

func TestBuilderString(t *testing.T) {
	builder := NewBuilder(DictFull)

	tests := []struct {
		input string
		want  string
	}{
		{"station", `"station"`},
		{"", `""`},
		{`quote"back\slash`, `"quote\"back\\slash"`},
		{"<tag>&", `"<tag>&"`},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := builder.String(tt.input); got != tt.want {
				t.Errorf("got %s want %s", got, tt.want)
			}
		})
	}
}

func TestBuilderSetDictionary(t *testing.T) {
	builder := NewBuilder(DictFull)
	builder.SetDictionary(DictMinimal)
	if builder.Dictionary().Name != "MINIMAL" {
		t.Fatalf("expected MINIMAL, got %s", builder.Dictionary().Name)
	}
}
