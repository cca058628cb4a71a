package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClosest(t *testing.T) {
	candidates := []string{"cook", "check", "inspect", "version"}

	tests := []struct {
		word   string
		want   string
		wantOK bool
	}{
		{word: "cok", want: "cook", wantOK: true},
		{word: "chek", want: "check", wantOK: true},
		{word: "INSPECT", want: "inspect", wantOK: true},
		{word: "verison", want: "version", wantOK: true},
		{word: "completely-different", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			got, ok := Closest(tt.word, candidates, DefaultMaxDistance)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestClosest_NoCandidates(t *testing.T) {
	_, ok := Closest("x", nil, DefaultMaxDistance)
	assert.False(t, ok)
}

func TestDidYouMean(t *testing.T) {
	assert.Equal(t, `did you mean "recipe"?`, DidYouMean("recpie", []string{"recipe", "flavour"}))
	assert.Empty(t, DidYouMean("zzzzzzzz", []string{"recipe", "flavour"}))
}
