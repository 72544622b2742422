package server_test

import (
	"testing"
	"time"

	"leaderboard-payouts/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_ListenAddr(t *testing.T) {
	c := server.Config{Port: "9090"}
	assert.Equal(t, ":9090", c.ListenAddr())
}

func TestConfig_RunTimeout(t *testing.T) {
	tests := []struct {
		name    string
		seconds int
		want    time.Duration
	}{
		{"Configured", 30, 30 * time.Second},
		{"Zero", 0, 5 * time.Minute},
		{"Negative", -1, 5 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{RunTimeoutSeconds: tt.seconds}
			assert.Equal(t, tt.want, c.RunTimeout())
		})
	}
}
