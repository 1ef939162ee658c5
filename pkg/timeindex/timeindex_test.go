package timeindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocate(t *testing.T) {
	spans := []Span{
		{Start: 0, End: 5},
		{Start: 5, End: 10},
		{Start: 12.5, End: 20},
	}

	tests := []struct {
		name      string
		time      float64
		wantIndex int
		wantFound bool
	}{
		{"start of first span", 0, 0, true},
		{"inside first span", 3.2, 0, true},
		{"touching boundary returns earlier span", 5, 0, true},
		{"inside second span", 7, 1, true},
		{"end of second span is inclusive", 10, 1, true},
		{"gap between spans", 11, 0, false},
		{"inside third span", 15, 2, true},
		{"past the last span", 25, 0, false},
		{"before the first span", -1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, found := Locate(spans, tt.time)
			assert.Equal(t, tt.wantFound, found)
			if tt.wantFound {
				assert.Equal(t, tt.wantIndex, idx)
			}
		})
	}
}

func TestLocateEmpty(t *testing.T) {
	_, found := Locate(nil, 1.0)
	assert.False(t, found)

	_, found = Locate([]Span{}, 0)
	assert.False(t, found)
}

func TestLocateSingleSpan(t *testing.T) {
	spans := []Span{{Start: 2, End: 4}}

	idx, found := Locate(spans, 2)
	assert.True(t, found)
	assert.Equal(t, 0, idx)

	idx, found = Locate(spans, 4)
	assert.True(t, found)
	assert.Equal(t, 0, idx)

	_, found = Locate(spans, 4.001)
	assert.False(t, found)
}
