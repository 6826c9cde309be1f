package tabs

import (
	"fmt"
	"testing"

	"github.com/mark3labs/shopcfg/internal/shuffle"
	"github.com/mark3labs/shopcfg/internal/surface"
	"github.com/stretchr/testify/require"
)

func newDoc(n int) *surface.Document {
	doc := surface.NewDocument()
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("panel-%d", i)
		doc.Tabs = append(doc.Tabs, surface.NewTab(fmt.Sprintf("tab-%d", i), fmt.Sprintf("Tab %d", i), id))
		doc.Panels = append(doc.Panels, surface.NewPanel(id))
	}
	return doc
}

// requireExactlyOneActive checks the controller state and the mirrored
// attributes agree on a single active pair.
func requireExactlyOneActive(t *testing.T, c *Controller) {
	t.Helper()
	active := 0
	for i, p := range c.Pairs() {
		on := c.StateOf(i) == Active
		if on {
			active++
			require.Equal(t, i, c.ActiveIndex())
		}
		require.Equal(t, on, p.Tab.Selected(), "tab %s aria-selected", p.Tab.ID)
		require.Equal(t, !on, p.Panel.Hidden(), "panel %s aria-hidden", p.Panel.ID)
	}
	require.Equal(t, 1, active)
}

func TestNew_ExactlyOneActive(t *testing.T) {
	t.Parallel()

	for n := 1; n <= 6; n++ {
		c := New(newDoc(n), shuffle.New(int64(n)))
		require.Equal(t, 0, c.ActiveIndex(), "first displayed pair is active")
		requireExactlyOneActive(t, c)
	}
}

func TestNew_Empty(t *testing.T) {
	t.Parallel()

	c := New(newDoc(0), shuffle.New(1))
	require.Equal(t, -1, c.ActiveIndex())
	_, ok := c.Active()
	require.False(t, ok)
	require.False(t, c.Dispatch(Next{}))
	require.True(t, c.Key("right"), "navigation keys are consumed even with no tabs")
}

func TestNew_RewritesDisplayOrderConsistently(t *testing.T) {
	t.Parallel()

	doc := newDoc(5)
	c := New(doc, shuffle.New(7))

	require.Len(t, doc.Tabs, 5)
	for i, p := range c.Pairs() {
		require.Same(t, p.Tab, doc.Tabs[i])
		require.Same(t, p.Panel, doc.Panels[i])
		require.Equal(t, p.Tab.Controls(), p.Panel.ID, "shuffle keeps tab/panel pairing")
	}
}

func TestNew_SkipsTabWithoutPanel(t *testing.T) {
	t.Parallel()

	doc := newDoc(2)
	doc.Tabs = append(doc.Tabs, surface.NewTab("tab-orphan", "Orphan", "panel-missing"))
	c := New(doc, shuffle.New(3))
	require.Equal(t, 2, c.Len())
	require.Len(t, doc.Tabs, 2)
}

func TestNextAndPreviousCycle(t *testing.T) {
	t.Parallel()

	for n := 1; n <= 5; n++ {
		c := New(newDoc(n), shuffle.New(11))

		visited := map[int]bool{}
		for i := 0; i < n; i++ {
			visited[c.ActiveIndex()] = true
			require.True(t, c.Dispatch(Next{}))
			requireExactlyOneActive(t, c)
		}
		require.Len(t, visited, n, "next visits every tab before repeating")
		require.Equal(t, 0, c.ActiveIndex(), "next wraps from last to first")

		c.Dispatch(Previous{})
		require.Equal(t, n-1, c.ActiveIndex(), "previous wraps from first to last")
	}
}

func TestKeyboardContract(t *testing.T) {
	t.Parallel()

	doc := newDoc(4)
	c := New(doc, shuffle.New(5))

	require.True(t, c.Key("end"))
	require.Equal(t, 3, c.ActiveIndex())
	require.Equal(t, c.Pairs()[3].Tab.ID, doc.Focused(), "focus follows activation")

	require.True(t, c.Key("home"))
	require.Equal(t, 0, c.ActiveIndex())

	require.True(t, c.Key("left"))
	require.Equal(t, 3, c.ActiveIndex())

	require.True(t, c.Key("right"))
	require.Equal(t, 0, c.ActiveIndex())

	require.False(t, c.Key("down"), "other keys are not consumed")
	require.Equal(t, 0, c.ActiveIndex())
}

func TestActivateByPanel(t *testing.T) {
	t.Parallel()

	doc := newDoc(3)
	c := New(doc, shuffle.New(9))

	target := c.Pairs()[2]
	require.True(t, c.Dispatch(Activate{PanelID: target.Panel.ID}))
	require.Equal(t, 2, c.ActiveIndex())
	require.Equal(t, "0", target.Tab.Attr(surface.AttrTabIndex))
	require.Equal(t, "-1", c.Pairs()[0].Tab.Attr(surface.AttrTabIndex))
	requireExactlyOneActive(t, c)

	require.False(t, c.Dispatch(Activate{PanelID: "panel-nope"}))
	require.Equal(t, 2, c.ActiveIndex())
}

func TestSingleTabNavigationIsNoOp(t *testing.T) {
	t.Parallel()

	c := New(newDoc(1), shuffle.New(2))
	for _, key := range []string{"right", "left", "home", "end"} {
		require.True(t, c.Key(key))
		require.Equal(t, 0, c.ActiveIndex())
		requireExactlyOneActive(t, c)
	}
}

func TestStateString(t *testing.T) {
	t.Parallel()
	require.Equal(t, "active", Active.String())
	require.Equal(t, "inactive", Inactive.String())
}

func TestNew_ShufflesOptionsWithoutChangingValues(t *testing.T) {
	t.Parallel()

	doc := newDoc(1)
	p := doc.Panels[0]
	for i := 0; i < 6; i++ {
		p.Options = append(p.Options, &surface.Option{Name: p.ID, Value: fmt.Sprint(i)})
	}
	require.NoError(t, doc.Check(p.ID, "3"))

	New(doc, shuffle.New(7))

	values := make(map[string]bool)
	for _, o := range doc.Panels[0].Options {
		values[o.Value] = true
	}
	require.Len(t, values, 6, "no option lost or duplicated")
	require.Equal(t, "3", doc.Checked(p.ID).Value)
}
