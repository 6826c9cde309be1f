package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mark3labs/shopcfg/internal/config"
	"github.com/mark3labs/shopcfg/internal/surface"
	"github.com/stretchr/testify/require"
)

func TestOverride(t *testing.T) {
	v := "file"
	override(&v, "")
	require.Equal(t, "file", v)
	override(&v, "nats")
	require.Equal(t, "nats", v)
}

func TestOpenStore_Backends(t *testing.T) {
	ctx := context.Background()

	for _, kind := range []string{config.StoreMemory, config.StoreFile, config.StoreNATS} {
		t.Run(kind, func(t *testing.T) {
			cfg := config.Default()
			cfg.Store = kind
			cfg.DataDir = filepath.Join(t.TempDir(), "data")

			st, closeStore, err := openStore(ctx, cfg)
			require.NoError(t, err)
			defer func() { require.NoError(t, closeStore()) }()
			require.Equal(t, "upbSelections", st.Key())

			doc := surface.NewDocument()
			p := surface.NewPanel("panel-farbe")
			p.Options = []*surface.Option{{Name: "panel-farbe", Value: "1", Checked: true}}
			doc.Panels = append(doc.Panels, p)

			_, err = st.Collect(ctx, doc)
			require.NoError(t, err)
			require.Len(t, st.Load(ctx), 1)
		})
	}
}
