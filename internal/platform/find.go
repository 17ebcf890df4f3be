package platform

// FindWindow searches the tree below root, root included, for the first
// window with the given title in depth-first pre-order. Windows whose
// children cannot be listed are treated as leaves.
func FindWindow(tree WindowTree, root WindowID, title string) (WindowID, bool) {
	stack := []WindowID{root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if tree.HasTitle(id, title) {
			return id, true
		}

		children, err := tree.Children(id)
		if err != nil {
			continue
		}
		// Push in reverse so the first child is visited next.
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return 0, false
}
