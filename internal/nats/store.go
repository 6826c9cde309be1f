package nats

import (
	"context"

	"github.com/nats-io/nats.go/jetstream"
)

const (
	// SelectionBucketName is the key-value bucket holding selection snapshots.
	SelectionBucketName = "shopcfg_selections"

	// selectionHistory keeps a few prior snapshots for inspection.
	selectionHistory = 5
)

// SetupSelectionBucket creates or updates the selection key-value bucket.
// Values are file-backed so a snapshot survives restarts between the
// selection and review screens.
func SetupSelectionBucket(ctx context.Context, js jetstream.JetStream) (jetstream.KeyValue, error) {
	return js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      SelectionBucketName,
		Description: "Product selection snapshots",
		History:     selectionHistory,
		Storage:     jetstream.FileStorage,
	})
}
