package domain

// Node is one element of a hierarchical result tree: project at the root,
// then files or traces, then individual vulnerabilities. Library results
// may carry one extra nesting level for vulnerabilities not yet associated
// with a primary grouping ("unmapped"); Apply is uniform over depth so
// callers never branch on that.
type Node struct {
	Level       int      `json:"level"`
	Label       string   `json:"label"`
	IssuesCount int      `json:"issuesCount"`
	TraceID     string   `json:"traceId,omitempty"`
	HashID      string   `json:"hash,omitempty"`
	Severity    string   `json:"severity,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Status      string   `json:"status,omitempty"`
	SubStatus   string   `json:"sub_status,omitempty"`
	Note        string   `json:"note,omitempty"`
	Unmapped    bool     `json:"unmapped,omitempty"`

	Overview *Overview `json:"overview,omitempty"`
	Usage    *Usage    `json:"usage,omitempty"`

	Children []*Node `json:"child,omitempty"`
}

// Overview is the CVE enrichment attached to a library vulnerability node.
type Overview struct {
	CVEID       string   `json:"cveId"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Risk        string   `json:"risk,omitempty"`
	Links       []string `json:"links,omitempty"`
}

// Usage carries observed runtime usage details for a library node.
type Usage struct {
	Events   int      `json:"events"`
	LastSeen int64    `json:"lastSeen,omitempty"`
	Requests []string `json:"requests,omitempty"`
}

// Match selects nodes for an update.
type Match func(n *Node) bool

// Patch mutates a freshly copied node. It never sees shared state.
type Patch func(n *Node)

// Apply returns a new tree in which patch has been applied to every node
// matching match, together with a flag reporting whether any node matched.
// The input tree is never mutated; unmatched subtrees are shared with the
// result. Nil nodes are skipped rather than treated as errors, so a tree
// that drifted from upstream state degrades to a no-op instead of a crash.
func Apply(root *Node, match Match, patch Patch) (*Node, bool) {
	if root == nil {
		return nil, false
	}

	found := false
	clone := *root

	if match(root) {
		patch(&clone)
		found = true
	}

	if len(root.Children) > 0 {
		children := make([]*Node, 0, len(root.Children))
		childFound := false
		for _, c := range root.Children {
			if c == nil {
				continue
			}
			next, ok := Apply(c, match, patch)
			if ok {
				childFound = true
			}
			children = append(children, next)
		}
		if childFound {
			clone.Children = children
			found = true
		}
	}

	if !found {
		return root, false
	}
	return &clone, true
}

// MatchTraceID selects the node carrying the given trace id.
func MatchTraceID(traceID string) Match {
	return func(n *Node) bool { return n.TraceID == traceID }
}

// MatchHashID selects the library node carrying the given hash. When
// unmapped is set only nodes under the extra nesting level match.
func MatchHashID(hashID string, unmapped bool) Match {
	return func(n *Node) bool { return n.HashID == hashID && n.Unmapped == unmapped }
}

// MatchCVE selects nodes whose overview references the given CVE, falling
// back to the node label for nodes not yet enriched.
func MatchCVE(cveID string) Match {
	return func(n *Node) bool {
		if n.Overview != nil {
			return n.Overview.CVEID == cveID
		}
		return n.Label == cveID
	}
}

// Count returns the number of nodes in the tree, nil nodes excluded.
func (n *Node) Count() int {
	if n == nil {
		return 0
	}
	total := 1
	for _, c := range n.Children {
		total += c.Count()
	}
	return total
}
