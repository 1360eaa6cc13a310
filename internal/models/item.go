package models

// Action is what activating a ListItem does. The set of variants is closed:
// Leaf launches a target, Descend browses into a deeper prefix.
type Action interface {
	isAction()
}

// Leaf launches its target directly
type Leaf struct {
	Target Target
}

// Descend browses into Prefix
type Descend struct {
	Prefix string
}

func (Leaf) isAction()    {}
func (Descend) isAction() {}

// ListItem is one row of a catalog level
type ListItem struct {
	Title  string
	Action Action
}

// IsFolder reports whether the row descends into a sub-folder
func (i ListItem) IsFolder() bool {
	_, ok := i.Action.(Descend)
	return ok
}

// Target returns the leaf target and true, or false for folder rows
func (i ListItem) Target() (Target, bool) {
	leaf, ok := i.Action.(Leaf)
	return leaf.Target, ok
}

// Prefix returns the descend prefix and true, or false for leaf rows
func (i ListItem) Prefix() (string, bool) {
	d, ok := i.Action.(Descend)
	return d.Prefix, ok
}
