package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnect_Unreachable(t *testing.T) {
	client, err := Connect(Config{Addr: "127.0.0.1:1", TimeoutSeconds: 1})
	assert.Error(t, err)
	assert.Nil(t, client)
}

func TestConfig_Key(t *testing.T) {
	cfg := Config{Prefix: "megasena:"}
	assert.Equal(t, "megasena:draw:2650", cfg.Key("draw", "2650"))
	assert.Equal(t, "megasena:latest", cfg.Key("latest"))
	assert.Equal(t, "draw", Config{}.Key("draw"))
}
