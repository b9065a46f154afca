package widget

// VisitFunc receives each node together with the section name in force
// at that node. It may read or mutate the node's settings in place; the
// walker makes no assumptions about what the visitor does.
type VisitFunc func(n *Node, sectionName string)

// Walk traverses the tree depth-first in pre-order. When a node is a
// section, the section name is recomputed from its settings before the
// node itself is visited, and the updated name propagates to all of its
// descendants until a nested section overrides it.
//
// Extraction and replacement both rely on this traversal enumerating
// nodes in the identical order with identical derived section names; a
// node's section name depends only on its ancestors, never on siblings.
func (t *Tree) Walk(visit VisitFunc) {
	for _, root := range t.Roots {
		walkNode(root, "", visit)
	}
}

func walkNode(n *Node, section string, visit VisitFunc) {
	if n.IsSection() {
		section = n.SectionLabel()
	}
	visit(n, section)
	for _, child := range n.Children {
		walkNode(child, section, visit)
	}
}
