package nats

import (
	"context"
	"testing"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/require"
)

func TestEmbedded_SelectionBucketRoundTrip(t *testing.T) {
	t.Parallel()

	e, err := Start(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	kv, err := e.SelectionBucket(ctx)
	require.NoError(t, err)
	require.Equal(t, SelectionBucketName, kv.Bucket())

	_, err = kv.Get(ctx, "upbSelections")
	require.ErrorIs(t, err, jetstream.ErrKeyNotFound)

	_, err = kv.Put(ctx, "upbSelections", []byte(`{"version":1}`))
	require.NoError(t, err)

	entry, err := kv.Get(ctx, "upbSelections")
	require.NoError(t, err)
	require.Equal(t, `{"version":1}`, string(entry.Value()))

	// Opening the bucket again is idempotent
	_, err = e.SelectionBucket(ctx)
	require.NoError(t, err)
}
