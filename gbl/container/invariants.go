package container

import (
	"fmt"

	"github.com/KatelynHaworth/gbl-helper/gbl/tags"
)

// slotOp names the index addressed
// operations checked by checkSlot.
type slotOp uint8

const (
	opInsert slotOp = iota
	opRemove
	opReplace
)

func isProtectedKind(kind tags.Kind) bool {
	return kind == tags.KindHeader || kind == tags.KindEnd
}

// checkKind rejects Header and END tags,
// including Opaque tags carrying their IDs,
// and Opaque tags whose ID belongs to any
// other registered kind.
func checkKind(tag tags.Tag) error {
	if isProtectedKind(tag.Kind()) || isProtectedKind(tags.KindOf(tag.ID())) {
		return fmt.Errorf("%s: %w", tag.ID(), ErrProtectedTag)
	}

	if tag.Kind() == tags.KindOpaque {
		if err := tags.CheckOpaqueID(tag.ID()); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidTag, err)
		}
	}

	return nil
}

func (c *TagContainer) ready() error {
	if !c.created {
		return ErrContainerNotCreated
	}

	return nil
}

// checkTag validates a tag about
// to enter the container.
func (c *TagContainer) checkTag(tag tags.Tag) error {
	if err := c.ready(); err != nil {
		return err
	}

	if tag == nil {
		return ErrInvalidTag
	}

	return checkKind(tag)
}

// checkSlot validates an index addressed
// operation. Index 0 belongs to the Header
// tag, the last index to the END tag which
// can only be inserted in front of.
func (c *TagContainer) checkSlot(op slotOp, index int, tag tags.Tag) error {
	if err := c.ready(); err != nil {
		return err
	}

	if op != opRemove && tag == nil {
		return ErrInvalidTag
	}

	if index < 0 || index >= len(c.tags) {
		return fmt.Errorf("%d not in [0, %d): %w", index, len(c.tags), ErrIndexOutOfRange)
	}

	if index == 0 || (op != opInsert && index == len(c.tags)-1) {
		return fmt.Errorf("%s at %d: %w", c.tags[index].Kind(), index, ErrProtectedTag)
	}

	if op != opRemove {
		return checkKind(tag)
	}

	return nil
}

// validate confirms the Header and END
// tags are where they belong.
func (c *TagContainer) validate() error {
	if len(c.tags) < 2 {
		return fmt.Errorf("%d tags: %w", len(c.tags), ErrInternal)
	}

	last := len(c.tags) - 1
	for index, tag := range c.tags {
		switch {
		case index == 0 && tag.Kind() != tags.KindHeader,
			index == last && tag.Kind() != tags.KindEnd,
			index != 0 && index != last && isProtectedKind(tag.Kind()):
			return fmt.Errorf("%s at %d: %w", tag.Kind(), index, ErrInternal)
		}
	}

	return nil
}
