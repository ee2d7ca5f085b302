package moderation

import (
	"io"
	"log/slog"
	"testing"

	"storefront/config"

	"github.com/stretchr/testify/assert"
)

func TestProfanityFilter(t *testing.T) {
	filter := NewProfanityFilter(nil)

	tests := []struct {
		name    string
		text    string
		profane bool
	}{
		{name: "clean comment", text: "Great jersey, fits well", profane: false},
		{name: "profane comment", text: "this is shit quality", profane: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.profane, filter.IsProfane(tt.text))

			censored := filter.Censor(tt.text)
			if tt.profane {
				assert.NotEqual(t, tt.text, censored)
				assert.NotContains(t, censored, "shit")
			} else {
				assert.Equal(t, tt.text, censored)
			}
		})
	}
}

func TestProfanityFilter_ExtraWords(t *testing.T) {
	filter := NewProfanityFilter([]string{"knockoff"})

	assert.True(t, filter.IsProfane("what a knockoff"))
	assert.False(t, NewProfanityFilter(nil).IsProfane("what a knockoff"))
}

func TestNewContentFilter_Disabled(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	filter := NewContentFilter(Params{Config: &config.Config{}, Logger: logger})

	assert.False(t, filter.IsProfane("this is shit quality"))
	assert.Equal(t, "this is shit quality", filter.Censor("this is shit quality"))
}
