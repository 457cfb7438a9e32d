package webserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		length int64
		want   ByteRange
		ok     bool
	}{
		{"simple", "bytes=100-199", 1000, ByteRange{100, 199}, true},
		{"whole file", "bytes=0-999", 1000, ByteRange{0, 999}, true},
		{"single byte", "bytes=999-999", 1000, ByteRange{999, 999}, true},
		{"start equals end", "bytes=5-5", 10, ByteRange{5, 5}, true},
		{"end at length", "bytes=0-1000", 1000, ByteRange{}, false},
		{"start after end", "bytes=200-100", 1000, ByteRange{}, false},
		{"negative start", "bytes=-5-9", 1000, ByteRange{}, false},
		{"missing prefix", "100-199", 1000, ByteRange{}, false},
		{"open ended", "bytes=100-", 1000, ByteRange{}, false},
		{"suffix form", "bytes=-100", 1000, ByteRange{}, false},
		{"multi range", "bytes=0-5,10-15", 1000, ByteRange{}, false},
		{"garbage", "bytes=abc-def", 1000, ByteRange{}, false},
		{"empty", "", 1000, ByteRange{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseRange(tt.value, tt.length)
			if !tt.ok {
				assert.ErrorIs(t, err, errMalformedRange)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.End-tt.want.Start+1, got.Length())
		})
	}
}
