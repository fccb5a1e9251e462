package model

// Node is one entry in the category hierarchy (root, category, or subcategory)
type Node struct {
	Name     string
	Value    int64 // metric value (cached total for branches, direct value for leaves)
	Children []*Node
	Parent   *Node

	// Rank is the node's position in the canonical taxonomy order.
	// Used as the stable tie-break when two siblings have equal values.
	Rank int

	// Change tracking against a previous snapshot
	PrevValue int64 // from snapshot, 0 if new
	IsNew     bool  // didn't exist in previous snapshot
}

// TotalValue returns the cached total value (call ComputeValues first)
func (n *Node) TotalValue() int64 {
	return n.Value
}

// IsLeaf reports whether the node has no children
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// ComputeValues calculates and caches aggregated values for the entire tree.
// Call this once after building the tree. Leaves keep their direct value;
// every branch ends up with exactly the sum of its children.
func (n *Node) ComputeValues() int64 {
	if n.IsLeaf() {
		return n.Value
	}
	var total int64
	for _, child := range n.Children {
		total += child.ComputeValues()
	}
	n.Value = total
	return total
}

// ValueChange returns the difference between current and previous value
func (n *Node) ValueChange() int64 {
	return n.TotalValue() - n.PrevValue
}

// PercentOf returns the node's share of the given total, in percent
func (n *Node) PercentOf(total int64) float64 {
	if total <= 0 {
		return 0
	}
	return float64(n.TotalValue()) / float64(total) * 100
}

// ChildByName returns the direct child with the given name, or nil
func (n *Node) ChildByName(name string) *Node {
	for _, child := range n.Children {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// SnapshotNode is a pointer-free mirror of Node for gob encoding
// (Parent back-references would otherwise make the structure cyclic)
type SnapshotNode struct {
	Name     string
	Value    int64
	Children []SnapshotNode
}

// ToSnapshot converts the subtree to its snapshot form
func (n *Node) ToSnapshot() SnapshotNode {
	s := SnapshotNode{
		Name:  n.Name,
		Value: n.Value,
	}
	if len(n.Children) > 0 {
		s.Children = make([]SnapshotNode, 0, len(n.Children))
		for _, child := range n.Children {
			s.Children = append(s.Children, child.ToSnapshot())
		}
	}
	return s
}

// FromSnapshot rebuilds a Node tree, restoring Parent links
func FromSnapshot(s SnapshotNode) *Node {
	n := &Node{
		Name:  s.Name,
		Value: s.Value,
	}
	if len(s.Children) > 0 {
		n.Children = make([]*Node, 0, len(s.Children))
		for _, c := range s.Children {
			child := FromSnapshot(c)
			child.Parent = n
			n.Children = append(n.Children, child)
		}
	}
	return n
}
