package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func TestConnectPingsServer(t *testing.T) {
	server := miniredis.RunT(t)

	client, err := Connect(context.Background(), Options{Addr: server.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	server.CheckGet(t, "k", "v")
}

func TestConnectRejectsEmptyAddress(t *testing.T) {
	_, err := Connect(context.Background(), Options{})
	require.Error(t, err)
}

func TestConnectFailsWhenServerIsDown(t *testing.T) {
	server := miniredis.RunT(t)
	addr := server.Addr()
	server.Close()

	_, err := Connect(context.Background(), Options{Addr: addr})
	require.Error(t, err)
}
