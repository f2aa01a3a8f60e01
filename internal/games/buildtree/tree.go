package buildtree

// Side is a branch direction.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

// String returns the side name as shown to the player.
func (s Side) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

// Node is a tree node. A node owns its children.
type Node struct {
	Value int
	Left  *Node
	Right *Node
}

// Child returns the child on the given side, or nil.
func (n *Node) Child(side Side) *Node {
	if side == SideLeft {
		return n.Left
	}
	return n.Right
}

func (n *Node) slot(side Side) **Node {
	if side == SideLeft {
		return &n.Left
	}
	return &n.Right
}

// Tree is an unbalanced binary tree built one leaf at a time.
//
// Ordering is not enforced here: callers check CorrectSide at each step of
// the descent, which is enough to keep the tree a valid search tree.
type Tree struct {
	root *Node
	size int
}

// NewTree creates a tree with a single root node.
func NewTree(rootValue int) *Tree {
	return &Tree{root: &Node{Value: rootValue}, size: 1}
}

// Root returns the root node, or nil for an empty tree.
func (t *Tree) Root() *Node {
	if t == nil {
		return nil
	}
	return t.root
}

// InsertAt attaches a new leaf holding value as the side child of cursor.
// It does nothing and returns false if that slot is already taken.
func (t *Tree) InsertAt(cursor *Node, value int, side Side) (*Node, bool) {
	slot := cursor.slot(side)
	if *slot != nil {
		return nil, false
	}
	n := &Node{Value: value}
	*slot = n
	t.size++
	return n, true
}

// Descend returns the child of cursor on the given side if there is one.
func Descend(cursor *Node, side Side) (*Node, bool) {
	child := cursor.Child(side)
	return child, child != nil
}

// Destroy releases every node in post-order and empties the tree.
// It returns the number of nodes released and is a no-op on an empty tree.
func (t *Tree) Destroy() int {
	if t == nil {
		return 0
	}
	n := release(t.root)
	t.root = nil
	t.size = 0
	return n
}

func release(n *Node) int {
	if n == nil {
		return 0
	}
	count := release(n.Left) + release(n.Right)
	n.Left, n.Right = nil, nil
	return count + 1
}

// Size returns the number of nodes.
func (t *Tree) Size() int {
	if t == nil {
		return 0
	}
	return t.size
}

// Height returns the number of levels; a lone root has height 1.
func (t *Tree) Height() int {
	if t == nil {
		return 0
	}
	return height(t.root)
}

func height(n *Node) int {
	if n == nil {
		return 0
	}
	return 1 + max(height(n.Left), height(n.Right))
}

// InOrder returns the values in in-order traversal.
func (t *Tree) InOrder() []int {
	var out []int
	var walk func(*Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		walk(n.Left)
		out = append(out, n.Value)
		walk(n.Right)
	}
	walk(t.Root())
	return out
}

// IsBST reports whether every node's left descendants are smaller and its
// right descendants larger.
func (t *Tree) IsBST() bool {
	values := t.InOrder()
	for i := 1; i < len(values); i++ {
		if values[i-1] >= values[i] {
			return false
		}
	}
	return true
}

// CorrectSide reports whether value belongs on the given side of a node
// holding cursorValue. Equal values belong on neither side.
func CorrectSide(cursorValue, value int, side Side) bool {
	if side == SideLeft {
		return value < cursorValue
	}
	return value > cursorValue
}

// SideFor returns the side value belongs on relative to cursorValue.
func SideFor(cursorValue, value int) Side {
	if value < cursorValue {
		return SideLeft
	}
	return SideRight
}
