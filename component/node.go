package component

import "stylekit/style"

// Node is a style contributing component. It receives its target builder
// directly and registers the contributor only while mounted.
type Node struct {
	builder     *style.Builder
	contributor style.Contributor
	mounted     bool
}

// NewNode creates unmounted node.
func NewNode(b *style.Builder, c style.Contributor) *Node {
	return &Node{builder: b, contributor: c}
}

// Mount registers contributor with the builder.
func (n *Node) Mount() {
	if n.mounted || n.builder == nil {
		return
	}
	n.builder.Register(n.contributor)
	n.mounted = true
}

// Unmount detaches contributor.
func (n *Node) Unmount() {
	if !n.mounted {
		return
	}
	n.builder.Unregister(n.contributor)
	n.mounted = false
}

// Mounted reports whether contributor is attached.
func (n *Node) Mounted() bool {
	return n.mounted
}
