package content

import "fmt"

// Validate checks the structural invariants of the attached tree and returns
// the first violation found, wrapped in ErrStructure.
func (d *Document) Validate() error {
	root, err := d.get(d.root)
	if err != nil {
		return err
	}
	if root.kind != KindRoot {
		return fmt.Errorf("%w: root node is %s", ErrStructure, root.kind)
	}
	if len(root.children) == 0 {
		return fmt.Errorf("%w: root has no paragraphs", ErrStructure)
	}
	for _, p := range root.children {
		if err := d.validateParagraph(d.root, p); err != nil {
			return err
		}
	}
	return nil
}

func (d *Document) validateParagraph(parent, id NodeID) error {
	p, err := d.get(id)
	if err != nil {
		return fmt.Errorf("%w: dangling paragraph %d", ErrStructure, id)
	}
	if p.kind != KindParagraph {
		return fmt.Errorf("%w: root child %d is %s", ErrStructure, id, p.kind)
	}
	if p.parent != parent {
		return fmt.Errorf("%w: paragraph %d has parent %d, want %d", ErrStructure, id, p.parent, parent)
	}
	if len(p.children) == 0 {
		return fmt.Errorf("%w: paragraph %d has no spans", ErrStructure, id)
	}
	for _, s := range p.children {
		if err := d.validateSpan(id, s); err != nil {
			return err
		}
	}
	return nil
}

func (d *Document) validateSpan(parent, id NodeID) error {
	s, err := d.get(id)
	if err != nil {
		return fmt.Errorf("%w: dangling span %d", ErrStructure, id)
	}
	if s.kind != KindTextSpan {
		return fmt.Errorf("%w: paragraph child %d is %s", ErrStructure, id, s.kind)
	}
	if s.parent != parent {
		return fmt.Errorf("%w: span %d has parent %d, want %d", ErrStructure, id, s.parent, parent)
	}
	if len(s.children) != 1 {
		return fmt.Errorf("%w: span %d has %d children", ErrStructure, id, len(s.children))
	}
	leaf, err := d.get(s.children[0])
	if err != nil {
		return fmt.Errorf("%w: dangling leaf under span %d", ErrStructure, id)
	}
	if leaf.parent != id {
		return fmt.Errorf("%w: leaf %d has parent %d, want %d", ErrStructure, s.children[0], leaf.parent, id)
	}
	switch leaf.kind {
	case KindLineBreak:
	case KindText:
		if leaf.text == "" {
			return fmt.Errorf("%w: span %d holds empty text", ErrStructure, id)
		}
	default:
		return fmt.Errorf("%w: span %d holds %s", ErrStructure, id, leaf.kind)
	}
	return nil
}
