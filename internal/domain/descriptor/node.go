package descriptor

// Node is one entry of a descriptor tree: a Leaf or a Branch.
type Node interface {
	isNode()
}

// Leaf describes a single field.
type Leaf struct {
	Name   string
	Domain Domain
}

// Branch groups child nodes.
type Branch struct {
	Children []Node
}

func (Leaf) isNode()   {}
func (Branch) isNode() {}

// NewBranch creates a branch for fluent tree construction.
func NewBranch(children ...Node) Branch {
	return Branch{Children: children}
}

// Walk visits every leaf depth-first, in child order.
func Walk(nodes []Node, visit func(Leaf)) {
	for _, n := range nodes {
		switch node := n.(type) {
		case Leaf:
			visit(node)
		case *Leaf:
			if node != nil {
				visit(*node)
			}
		case Branch:
			Walk(node.Children, visit)
		case *Branch:
			if node != nil {
				Walk(node.Children, visit)
			}
		}
	}
}

// Names returns the leaf names in traversal order, duplicates included.
func Names(nodes []Node) []string {
	names := make([]string, 0)
	Walk(nodes, func(l Leaf) {
		names = append(names, l.Name)
	})
	return names
}
