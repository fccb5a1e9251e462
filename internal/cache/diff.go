package cache

import "github.com/lumipallolabs/corpusmap/internal/model"

// ApplyDiff compares the freshly built hierarchy against the previous
// snapshot and fills PrevValue/IsNew on every node. Nodes match by their
// name path (category, then subcategory), since the tree is rebuilt from
// scratch on every load.
func ApplyDiff(current, previous *model.Node) {
	if previous == nil {
		markAllNew(current)
		return
	}

	prevMap := make(map[string]*model.Node)
	buildNameMap(previous, "", prevMap)

	applyDiffRecursive(current, "", prevMap)
}

func buildNameMap(node *model.Node, prefix string, m map[string]*model.Node) {
	key := prefix + "/" + node.Name
	m[key] = node
	for _, child := range node.Children {
		buildNameMap(child, key, m)
	}
}

func applyDiffRecursive(node *model.Node, prefix string, prevMap map[string]*model.Node) {
	key := prefix + "/" + node.Name
	if prev, exists := prevMap[key]; exists {
		node.PrevValue = prev.TotalValue()
		node.IsNew = false
	} else {
		node.PrevValue = 0
		node.IsNew = true
	}

	for _, child := range node.Children {
		applyDiffRecursive(child, key, prevMap)
	}
}

func markAllNew(node *model.Node) {
	node.IsNew = true
	for _, child := range node.Children {
		markAllNew(child)
	}
}
