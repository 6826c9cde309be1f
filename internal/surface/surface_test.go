package surface

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func twoPanelDoc() *Document {
	doc := NewDocument()
	color := NewPanel("panel-color")
	color.Options = []*Option{
		{Name: "panel-color", Value: "1", Title: "Red"},
		{Name: "panel-color", Value: "2", Title: "Blue"},
	}
	size := NewPanel("panel-size")
	size.Options = []*Option{
		{Name: "panel-size", Value: "1", Title: "S"},
		{Name: "panel-size", Value: "2", Title: "M"},
	}
	doc.Panels = []*Panel{color, size}
	doc.Tabs = []*Tab{
		NewTab("tab-color", "Color", "panel-color"),
		NewTab("tab-size", "Size", "panel-size"),
	}
	return doc
}

func TestElementAttributes(t *testing.T) {
	t.Parallel()

	e := NewElement("x")
	require.False(t, e.HasAttr(AttrDisabled))

	e.SetBoolAttr(AttrDisabled, true)
	require.True(t, e.HasAttr(AttrDisabled))
	require.True(t, e.BoolAttr(AttrDisabled))
	require.Equal(t, "true", e.Attr(AttrDisabled))

	e.RemoveAttr(AttrDisabled)
	require.False(t, e.HasAttr(AttrDisabled))

	var zero Element
	zero.SetAttr("k", "v")
	require.Equal(t, "v", zero.Attr("k"))
}

func TestDocumentLookups(t *testing.T) {
	t.Parallel()

	doc := twoPanelDoc()
	require.Equal(t, "panel-size", doc.PanelByID("panel-size").ID)
	require.Nil(t, doc.PanelByID("panel-missing"))
	require.Equal(t, "Size", doc.TabFor("panel-size").Label)
	require.Nil(t, doc.TabFor("panel-missing"))
	require.Equal(t, []string{"panel-color", "panel-size"}, doc.RadioGroups())
}

func TestCheckIsExclusiveWithinGroup(t *testing.T) {
	t.Parallel()

	doc := twoPanelDoc()
	require.Nil(t, doc.Checked("panel-color"))

	require.NoError(t, doc.Check("panel-color", "1"))
	require.NoError(t, doc.Check("panel-size", "2"))
	require.NoError(t, doc.Check("panel-color", "2"))

	require.Equal(t, "2", doc.Checked("panel-color").Value)
	require.False(t, doc.Panels[0].Options[0].Checked)
	require.Equal(t, "2", doc.Checked("panel-size").Value)

	require.ErrorIs(t, doc.Check("panel-color", "9"), ErrNoSuchOption)
	require.Equal(t, "2", doc.Checked("panel-color").Value, "failed check leaves state alone")

	doc.Uncheck("panel-color")
	require.Nil(t, doc.Checked("panel-color"))
}

func TestFocus(t *testing.T) {
	t.Parallel()

	doc := NewDocument()
	require.Empty(t, doc.Focused())
	doc.Focus("tab-size")
	require.Equal(t, "tab-size", doc.Focused())
}

func TestReorderOptions(t *testing.T) {
	t.Parallel()

	p := NewPanel("panel-x")
	for _, v := range []string{"a", "b", "c"} {
		p.Options = append(p.Options, &Option{Name: "panel-x", Value: v})
	}

	p.ReorderOptions([]int{2, 0, 1})
	var got []string
	for _, o := range p.Options {
		got = append(got, o.Value)
	}
	require.Equal(t, []string{"c", "a", "b"}, got)

	p.ReorderOptions([]int{0})
	require.Len(t, p.Options, 3, "wrong-length perm is ignored")
}
