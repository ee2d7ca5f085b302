package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    command
		wantErr bool
	}{
		{name: "up", args: []string{"up"}, want: command{name: "up"}},
		{name: "version", args: []string{"version"}, want: command{name: "version"}},
		{name: "steps back", args: []string{"steps", "-n", "-2"}, want: command{name: "steps", steps: -2}},
		{name: "force", args: []string{"force", "-version", "3"}, want: command{name: "force", version: 3}},
		{name: "force zero", args: []string{"force", "-version", "0"}, want: command{name: "force"}},
		{name: "missing", args: nil, wantErr: true},
		{name: "steps without n", args: []string{"steps"}, wantErr: true},
		{name: "force without version", args: []string{"force"}, wantErr: true},
		{name: "unknown", args: []string{"sideways"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCommand(tt.args)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
