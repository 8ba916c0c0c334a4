package database

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClient_Connects(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient("redis://" + mr.Addr() + "/0")
	require.NoError(t, err)
	defer client.Close()
}

func TestNewRedisClient_BadURL(t *testing.T) {
	_, err := NewRedisClient("not-a-url://")
	assert.Error(t, err)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisClient("redis://" + addr)
	assert.Error(t, err)
}
