package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.seclens.dev/seclens/internal/core/domain"
)

func sampleTree() *domain.Node {
	return &domain.Node{
		Level: 0,
		Label: "project",
		Children: []*domain.Node{
			{
				Level: 1,
				Label: "trace-group",
				Children: []*domain.Node{
					{Level: 2, Label: "sql injection", TraceID: "test123", Status: "Reported"},
					{Level: 2, Label: "xss", TraceID: "abc987", Status: "Reported"},
				},
			},
			{
				Level: 1,
				Label: "unmapped",
				Children: []*domain.Node{
					{
						Level:    2,
						Label:    "lib-group",
						Children: []*domain.Node{
							{Level: 3, Label: "CVE-2021-0001", HashID: "deadbeef", Unmapped: true},
						},
					},
				},
			},
		},
	}
}

func TestApply_UpdatesNestedNode(t *testing.T) {
	tree := sampleTree()

	updated, found := domain.Apply(tree, domain.MatchTraceID("test123"), func(n *domain.Node) {
		n.Status = "test"
		n.SubStatus = "not"
	})

	require.True(t, found)
	require.NotSame(t, tree, updated)

	got := updated.Children[0].Children[0]
	assert.Equal(t, "test", got.Status)
	assert.Equal(t, "not", got.SubStatus)

	// The original tree is untouched.
	assert.Equal(t, "Reported", tree.Children[0].Children[0].Status)
	// Unmatched siblings are shared, not copied.
	assert.Same(t, tree.Children[0].Children[1], updated.Children[0].Children[1])
}

func TestApply_DeepUnmappedNode(t *testing.T) {
	tree := sampleTree()

	updated, found := domain.Apply(tree, domain.MatchHashID("deadbeef", true), func(n *domain.Node) {
		n.Tags = []string{"triaged"}
	})

	require.True(t, found)
	got := updated.Children[1].Children[0].Children[0]
	assert.Equal(t, []string{"triaged"}, got.Tags)
}

func TestApply_NoMatchReturnsInputUnchanged(t *testing.T) {
	tree := sampleTree()

	updated, found := domain.Apply(tree, domain.MatchTraceID("missing"), func(n *domain.Node) {
		n.Status = "never"
	})

	assert.False(t, found)
	// Drift between cache and upstream is a no-op, not an error.
	assert.Same(t, tree, updated)
}

func TestApply_SkipsNilNodes(t *testing.T) {
	tree := &domain.Node{
		Label: "root",
		Children: []*domain.Node{
			nil,
			{TraceID: "t1"},
		},
	}

	updated, found := domain.Apply(tree, domain.MatchTraceID("t1"), func(n *domain.Node) {
		n.Note = "seen"
	})

	require.True(t, found)
	require.Len(t, updated.Children, 1)
	assert.Equal(t, "seen", updated.Children[0].Note)
}

func TestApply_NilRoot(t *testing.T) {
	updated, found := domain.Apply(nil, domain.MatchTraceID("x"), func(*domain.Node) {})
	assert.Nil(t, updated)
	assert.False(t, found)
}

func TestMatchCVE_FallsBackToLabel(t *testing.T) {
	enriched := &domain.Node{Overview: &domain.Overview{CVEID: "CVE-1"}}
	bare := &domain.Node{Label: "CVE-1"}

	assert.True(t, domain.MatchCVE("CVE-1")(enriched))
	assert.True(t, domain.MatchCVE("CVE-1")(bare))
	assert.False(t, domain.MatchCVE("CVE-2")(enriched))
}

func TestCount(t *testing.T) {
	assert.Equal(t, 0, (*domain.Node)(nil).Count())
	assert.Equal(t, 7, sampleTree().Count())
}
