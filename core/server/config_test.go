package server_test

import (
	"testing"

	"anime-tracker/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_EffectivePageSize(t *testing.T) {
	tests := []struct {
		name     string
		pageSize int
		want     int
	}{
		{"Configured", 10, 10},
		{"Zero", 0, server.DefaultPageSize},
		{"Negative", -1, server.DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{PageSize: tt.pageSize}
			assert.Equal(t, tt.want, c.EffectivePageSize())
		})
	}
}

func TestConfig_BodyLimit(t *testing.T) {
	assert.Equal(t, 2*1024*1024, server.Config{BodyLimitMB: 2}.BodyLimit())
	assert.Equal(t, 4*1024*1024, server.Config{}.BodyLimit())
}
