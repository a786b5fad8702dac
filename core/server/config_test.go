package server_test

import (
	"testing"

	"record-compactor/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_IsValidArtifactFormat(t *testing.T) {
	tests := []struct {
		name   string
		format string
		want   bool
	}{
		{"Json", "json", true},
		{"Cbor", "cbor", true},
		{"Invalid", "xml", false},
		{"Upper", "CBOR", true},
		{"Empty Defaults To Json", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{ArtifactFormat: tt.format}
			assert.Equal(t, tt.want, c.IsValidArtifactFormat())
		})
	}
}

func TestConfig_BodyLimit(t *testing.T) {
	assert.Equal(t, 64<<20, server.Config{}.BodyLimit())
	assert.Equal(t, 8<<20, server.Config{BodyLimitMB: 8}.BodyLimit())
}
