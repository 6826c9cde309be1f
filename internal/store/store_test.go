package store

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/shopcfg/internal/surface"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

// selectionDoc builds a document with three panels; the last one has no tab
// so its title falls back to the panel id.
func selectionDoc() *surface.Document {
	doc := surface.NewDocument()
	add := func(id, label string, values ...string) {
		p := surface.NewPanel(id)
		for _, v := range values {
			p.Options = append(p.Options, &surface.Option{Name: id, Value: v, Title: " Option " + v + " ", Image: "images/" + id + "-" + v + ".png"})
		}
		doc.Panels = append(doc.Panels, p)
		if label != "" {
			doc.Tabs = append(doc.Tabs, surface.NewTab("tab-"+id, label, id))
		}
	}
	add("panel-color", "  Farbe ", "1", "2")
	add("panel-size", "Größe", "1", "2", "3")
	add("panel-extras", "", "a", "b")
	return doc
}

func TestCategoryTitle(t *testing.T) {
	t.Parallel()

	doc := selectionDoc()
	require.Equal(t, "Farbe", CategoryTitle(doc, "panel-color"))
	require.Equal(t, "extras", CategoryTitle(doc, "panel-extras"))
	require.Equal(t, "custom", CategoryTitle(doc, "custom"))
}

func TestCollectThenLoad(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	doc := selectionDoc()
	require.NoError(t, doc.Check("panel-color", "2"))
	require.NoError(t, doc.Check("panel-size", "3"))

	s := New(NewMemoryBackend(), "")
	require.Equal(t, DefaultKey, s.Key())

	collected, err := s.Collect(ctx, doc)
	require.NoError(t, err)

	want := []Category{
		{
			Key:   "panel-color",
			Title: "Farbe",
			Options: []Option{
				{Value: "1", Title: "Option 1", Image: "images/panel-color-1.png"},
				{Value: "2", Title: "Option 2", Image: "images/panel-color-2.png"},
			},
			SelectedValue: strPtr("2"),
		},
		{
			Key:   "panel-size",
			Title: "Größe",
			Options: []Option{
				{Value: "1", Title: "Option 1", Image: "images/panel-size-1.png"},
				{Value: "2", Title: "Option 2", Image: "images/panel-size-2.png"},
				{Value: "3", Title: "Option 3", Image: "images/panel-size-3.png"},
			},
			SelectedValue: strPtr("3"),
		},
		{
			Key:   "panel-extras",
			Title: "extras",
			Options: []Option{
				{Value: "a", Title: "Option a", Image: "images/panel-extras-a.png"},
				{Value: "b", Title: "Option b", Image: "images/panel-extras-b.png"},
			},
		},
	}
	require.Equal(t, want, collected)

	// A fresh store on the same backend sees the same sequence
	reloaded := New(s.backend, "").Load(ctx)
	require.Equal(t, want, reloaded)
	require.NotEmpty(t, s.SnapshotID())
}

func TestCollect_OverwritesPriorSnapshot(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	backend := NewMemoryBackend()
	s := New(backend, "")
	doc := selectionDoc()
	require.NoError(t, doc.Check("panel-color", "1"))
	_, err := s.Collect(ctx, doc)
	require.NoError(t, err)
	first := s.SnapshotID()

	require.NoError(t, doc.Check("panel-color", "2"))
	_, err = s.Collect(ctx, doc)
	require.NoError(t, err)
	require.NotEqual(t, first, s.SnapshotID())

	got := New(backend, "").Load(ctx)
	v, ok := got[0].Selected()
	require.True(t, ok)
	require.Equal(t, "2", v)
}

func TestLoad_AbsentOrMalformed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cases := map[string]string{
		"not json":         `{{{`,
		"bare array":       `[{"categoryKey":"panel-a","options":[]}]`,
		"wrong version":    `{"version":2,"categories":[]}`,
		"missing key":      `{"version":1,"categories":[{"categoryTitle":"x"}]}`,
		"duplicate key":    `{"version":1,"categories":[{"categoryKey":"a"},{"categoryKey":"a"}]}`,
		"wrong field type": `{"version":1,"categories":"nope"}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			backend := NewMemoryBackend()
			require.NoError(t, backend.Put(ctx, DefaultKey, []byte(payload)))
			s := New(backend, "")
			got := s.Load(ctx)
			require.NotNil(t, got)
			require.Empty(t, got)
			require.Nil(t, s.Current())
		})
	}

	s := New(NewMemoryBackend(), "")
	require.Empty(t, s.Load(ctx))
}

func TestLoad_EmptyCategoriesIsEmpty(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	backend := NewMemoryBackend()
	require.NoError(t, backend.Put(ctx, DefaultKey, []byte(`{"version":1,"id":"x"}`)))
	got := New(backend, "").Load(ctx)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestUpdate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	backend := NewMemoryBackend()
	s := New(backend, "")
	doc := selectionDoc()
	require.NoError(t, doc.Check("panel-color", "1"))
	before, err := s.Collect(ctx, doc)
	require.NoError(t, err)

	require.NoError(t, s.Update(ctx, "panel-size", "2"))

	after := New(backend, "").Load(ctx)
	v, ok := after[1].Selected()
	require.True(t, ok)
	require.Equal(t, "2", v)
	require.Equal(t, before[0], after[0], "other categories unchanged")
	require.Equal(t, before[2], after[2], "other categories unchanged")
	require.Equal(t, before[1].Options, after[1].Options)
}

func TestUpdate_UnknownKeyLeavesBytesUnchanged(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	backend := NewMemoryBackend()
	s := New(backend, "")
	_, err := s.Collect(ctx, selectionDoc())
	require.NoError(t, err)

	raw, err := backend.Get(ctx, DefaultKey)
	require.NoError(t, err)

	require.NoError(t, s.Update(ctx, "panel-nope", "1"))

	rawAfter, err := backend.Get(ctx, DefaultKey)
	require.NoError(t, err)
	require.Equal(t, raw, rawAfter)
}

func TestUpdate_UnknownValue(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	backend := NewMemoryBackend()
	s := New(backend, "")
	_, err := s.Collect(ctx, selectionDoc())
	require.NoError(t, err)
	raw, _ := backend.Get(ctx, DefaultKey)

	require.ErrorIs(t, s.Update(ctx, "panel-color", "9"), ErrUnknownOption)

	rawAfter, _ := backend.Get(ctx, DefaultKey)
	require.Equal(t, raw, rawAfter)
	_, ok := s.Current()[0].Selected()
	require.False(t, ok)
}

func TestUpdate_LoadsWhenNothingInMemory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	backend := NewMemoryBackend()
	_, err := New(backend, "").Collect(ctx, selectionDoc())
	require.NoError(t, err)

	s := New(backend, "")
	require.NoError(t, s.Update(ctx, "panel-extras", "b"))
	v, _ := New(backend, "").Load(ctx)[2].Selected()
	require.Equal(t, "b", v)

	// No snapshot at all is a logged no-op
	require.NoError(t, New(NewMemoryBackend(), "").Update(ctx, "panel-extras", "b"))
}

type failingPut struct {
	*MemoryBackend
	fail bool
}

func (f *failingPut) Put(ctx context.Context, key string, value []byte) error {
	if f.fail {
		return errors.New("disk full")
	}
	return f.MemoryBackend.Put(ctx, key, value)
}

func TestUpdate_WriteFailureRevertsMemory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	backend := &failingPut{MemoryBackend: NewMemoryBackend()}
	s := New(backend, "")
	_, err := s.Collect(ctx, selectionDoc())
	require.NoError(t, err)

	backend.fail = true
	require.Error(t, s.Update(ctx, "panel-color", "2"))
	_, ok := s.Current()[0].Selected()
	require.False(t, ok)
}

func TestCurrentReturnsCopy(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := New(NewMemoryBackend(), "")
	require.Nil(t, s.Current())
	_, err := s.Collect(ctx, selectionDoc())
	require.NoError(t, err)

	cur := s.Current()
	cur[0].Title = "mutated"
	cur[0].Options[0].Value = "mutated"
	require.Equal(t, "Farbe", s.Current()[0].Title)
	require.Equal(t, "1", s.Current()[0].Options[0].Value)
}

func TestClear(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	backend := NewMemoryBackend()
	s := New(backend, "")
	_, err := s.Collect(ctx, selectionDoc())
	require.NoError(t, err)

	require.NoError(t, s.Clear(ctx))
	require.Nil(t, s.Current())
	require.Empty(t, s.SnapshotID())
	require.Empty(t, New(backend, "").Load(ctx))
	_, err = backend.Get(ctx, DefaultKey)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryResolved(t *testing.T) {
	t.Parallel()

	c := Category{Options: []Option{{Value: "a"}, {Value: "b"}}}
	require.False(t, c.Resolved())
	c.SelectedValue = strPtr("z")
	require.False(t, c.Resolved())
	c.SelectedValue = strPtr("b")
	require.True(t, c.Resolved())
}
