package hierarchy

import (
	"strings"
	"sync"

	"github.com/Jelloman/cheap-sub008/cheaperr"
	"github.com/Jelloman/cheap-sub008/entity"
)

// treeNode is a tagged sum of leaf and branch, per spec §9: a branch
// has a non-nil children map (possibly empty); a leaf has children ==
// nil. Either kind may optionally carry an entity value.
type treeNode struct {
	segment  string
	value    *entity.Entity
	children map[string]*treeNode // nil => leaf
	order    []string             // child insertion order, branch only
}

func (n *treeNode) isLeaf() bool { return n.children == nil }

// TreeEntry is one node yielded by EntityTree.Iterate.
type TreeEntry struct {
	Path   string
	Entity *entity.Entity // nil if the node carries no value
	IsLeaf bool
}

// EntityTree is a rooted tree of named nodes addressed by "/"-separated
// paths ("/" alone addresses the root), per spec §4.2.4.
type EntityTree struct {
	base
	mu   sync.RWMutex
	root *treeNode
}

// NewEntityTree builds an EntityTree containing only an empty root.
func NewEntityTree(name string) *EntityTree {
	return &EntityTree{
		base: base{name: name, kind: EntityTreeKind},
		root: &treeNode{children: map[string]*treeNode{}},
	}
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func joinPath(segments []string) string {
	if len(segments) == 0 {
		return "/"
	}
	return "/" + strings.Join(segments, "/")
}

// resolve walks segments from t.root, returning the node or nil.
func (t *EntityTree) resolve(segments []string) *treeNode {
	n := t.root
	for _, seg := range segments {
		if n.isLeaf() {
			return nil
		}
		next, ok := n.children[seg]
		if !ok {
			return nil
		}
		n = next
	}
	return n
}

// Len reports the total node count, including the root.
func (t *EntityTree) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return countNodes(t.root)
}

func countNodes(n *treeNode) int {
	if n == nil {
		return 0
	}
	count := 1
	for _, name := range n.order {
		count += countNodes(n.children[name])
	}
	return count
}

// AddChildren adds children under parentPath: each entry in children
// becomes a new child node, a leaf carrying the given entity if
// non-nil, or an empty branch (container) if nil. Fails with NotFound
// if parentPath does not resolve to a branch node, or DuplicateName if
// any child name already exists under the parent (spec §4.2.4).
func (t *EntityTree) AddChildren(parentPath string, children map[string]*entity.Entity) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	parent := t.resolve(splitPath(parentPath))
	if parent == nil || parent.isLeaf() {
		return cheaperr.New(cheaperr.KindNotFound, parentPath, "parent path does not resolve to a branch node")
	}
	for name := range children {
		if _, exists := parent.children[name]; exists {
			return cheaperr.New(cheaperr.KindDuplicateName, parentPath+"/"+name, "child name already exists under parent")
		}
	}
	for name, ent := range children {
		node := &treeNode{segment: name}
		if ent != nil {
			node.value = ent
		} else {
			node.children = map[string]*treeNode{}
		}
		parent.children[name] = node
		parent.order = append(parent.order, name)
	}
	return nil
}

// RemoveSubtree removes the node at path and everything beneath it,
// returning the total count removed (including path itself). Removing a
// non-existent path is a no-op returning 0 (spec §4.2.4).
func (t *EntityTree) RemoveSubtree(path string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	segments := splitPath(path)
	if len(segments) == 0 {
		// Removing the root clears the tree back to an empty root.
		count := countNodes(t.root)
		t.root = &treeNode{children: map[string]*treeNode{}}
		return count
	}

	parentSegs := segments[:len(segments)-1]
	leafName := segments[len(segments)-1]
	parent := t.resolve(parentSegs)
	if parent == nil || parent.isLeaf() {
		return 0
	}
	node, ok := parent.children[leafName]
	if !ok {
		return 0
	}
	count := countNodes(node)
	delete(parent.children, leafName)
	for i, n := range parent.order {
		if n == leafName {
			parent.order = append(parent.order[:i], parent.order[i+1:]...)
			break
		}
	}
	return count
}

// Get returns the entity value carried at path, or (_, false) if the
// path does not resolve or carries no value.
func (t *EntityTree) Get(path string) (*entity.Entity, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n := t.resolve(splitPath(path))
	if n == nil || n.value == nil {
		return nil, false
	}
	return n.value, true
}

func cloneNode(n *treeNode) *treeNode {
	clone := &treeNode{segment: n.segment, value: n.value}
	if !n.isLeaf() {
		clone.children = make(map[string]*treeNode, len(n.children))
		clone.order = append([]string(nil), n.order...)
		for name, child := range n.children {
			clone.children[name] = cloneNode(child)
		}
	}
	return clone
}

// Clone returns an unowned deep copy of the tree's current contents.
func (t *EntityTree) Clone() Hierarchy {
	t.mu.RLock()
	defer t.mu.RUnlock()
	clone := NewEntityTree(t.name)
	clone.root = cloneNode(t.root)
	return clone
}

// Iterate walks the tree in document order (parent before children,
// children in insertion order), including the root.
func (t *EntityTree) Iterate() []TreeEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var out []TreeEntry
	var walk func(n *treeNode, segments []string)
	walk = func(n *treeNode, segments []string) {
		out = append(out, TreeEntry{Path: joinPath(segments), Entity: n.value, IsLeaf: n.isLeaf()})
		for _, name := range n.order {
			walk(n.children[name], append(append([]string(nil), segments...), name))
		}
	}
	walk(t.root, nil)
	return out
}
