package content

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func collectForward(t *testing.T, it *LeafIterator) []NodeID {
	t.Helper()
	var out []NodeID
	for n := it.CurrentNode(); n != 0; {
		out = append(out, n)
		var err error
		n, err = it.NextNode()
		require.NoError(t, err)
	}
	return out
}

func TestLeafIterator_VisitsOnlyLeaves(t *testing.T) {
	d, err := Build(nil, Paragraph("a", "b"), Paragraph(), Paragraph("c"))
	require.NoError(t, err)

	it, err := NewLeafIterator(d, d.Root())
	require.NoError(t, err)

	leaves := collectForward(t, it)
	require.Len(t, leaves, 4)
	for _, l := range leaves {
		require.True(t, d.IsLeaf(l))
	}
	require.Equal(t, "a", d.Text(leaves[0]))
	require.Equal(t, "b", d.Text(leaves[1]))
	require.True(t, d.IsLineBreak(leaves[2]))
	require.Equal(t, "c", d.Text(leaves[3]))
}

func TestLeafIterator_Backward(t *testing.T) {
	d, err := Build(nil, Paragraph("a", "b"), Paragraph("c"))
	require.NoError(t, err)
	it, err := NewLeafIterator(d, d.Root())
	require.NoError(t, err)
	require.NoError(t, it.SetCurrentNode(d.LastLeaf(d.Root())))

	var texts []string
	for n := it.CurrentNode(); n != 0; {
		texts = append(texts, d.Text(n))
		n, err = it.PreviousNode()
		require.NoError(t, err)
	}
	require.Equal(t, []string{"c", "b", "a"}, texts)
	require.Equal(t, "a", d.Text(it.CurrentNode()), "boundary keeps the current node")
}

func TestLeafIterator_ScopedToContainer(t *testing.T) {
	d, err := Build(nil, Paragraph("a", "b"), Paragraph("c"))
	require.NoError(t, err)
	first := d.Paragraphs()[0]

	it, err := NewLeafIterator(d, first)
	require.NoError(t, err)
	require.Len(t, collectForward(t, it), 2)

	err = it.SetCurrentNode(d.LastLeaf(d.Root()))
	require.ErrorIs(t, err, ErrRange)

	err = it.SetCurrentNode(d.Children(first)[0])
	require.ErrorIs(t, err, ErrNotLeaf)
}

func TestLeafIterator_SkipsEmptyContainers(t *testing.T) {
	d, err := Build(nil, Paragraph("a"), Paragraph("b", "c"))
	require.NoError(t, err)
	second := d.Paragraphs()[1]
	// transiently empty span in the middle of a walk
	require.NoError(t, d.Remove(d.Leaf(d.Children(second)[0])))

	it, err := NewLeafIterator(d, d.Root())
	require.NoError(t, err)
	leaves := collectForward(t, it)

	var texts []string
	for _, l := range leaves {
		texts = append(texts, d.Text(l))
	}
	require.Equal(t, []string{"a", "c"}, texts)
}

func TestLeafIterator_GuardTripsOnCorruption(t *testing.T) {
	d, err := Build(nil, Paragraph("a"), Paragraph("b"))
	require.NoError(t, err)
	paragraphs := d.Paragraphs()
	// A span that contains its own paragraph makes descent loop forever.
	span := d.Children(paragraphs[1])[0]
	d.nodes[span].children = []NodeID{paragraphs[1]}

	it, err := NewLeafIterator(d, d.Root(), WithBudget(50*time.Millisecond))
	require.NoError(t, err)
	require.Equal(t, "a", d.Text(it.CurrentNode()))

	_, err = it.NextNode()
	require.ErrorIs(t, err, ErrTraversalTimeout)
}

func TestNewLeafIterator_UnknownContainer(t *testing.T) {
	d := New(nil)
	_, err := NewLeafIterator(d, 12345)
	require.ErrorIs(t, err, ErrNotFound)
}
