// Package container provides TagContainer, an
// ordered collection of GBL tags that keeps a
// Header tag first and an END tag last while
// it is edited.
package container

import (
	"errors"
	"fmt"

	"github.com/KatelynHaworth/gbl-helper/gbl"
	"github.com/KatelynHaworth/gbl-helper/gbl/tags"
)

var (
	// ErrContainerNotCreated is returned by every
	// operation performed before Create.
	ErrContainerNotCreated = errors.New("container not created")

	// ErrProtectedTag is returned when an operation
	// would add, move, remove or replace the Header
	// or END tag.
	ErrProtectedTag = errors.New("protected tag")

	// ErrIndexOutOfRange is returned when an index
	// falls outside [0, Size()).
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrTagNotFound is returned when no interior
	// tag of the requested kind exists.
	ErrTagNotFound = errors.New("tag not found")

	// ErrInvalidTag is returned for nil tags.
	ErrInvalidTag = errors.New("invalid tag")

	// ErrInternal is returned when the container
	// finds its own invariants broken.
	ErrInternal = errors.New("internal container error")
)

// TagContainer holds the tags of a GBL image
// being assembled. Index 0 is always the Header
// tag and the last index is always the END tag,
// interior tags keep the order they were added in.
//
// A TagContainer is not safe for concurrent use.
type TagContainer struct {
	created bool
	tags    []tags.Tag
}

// New returns an uninitialised TagContainer,
// Create must be called before it is used.
func New() *TagContainer {
	return new(TagContainer)
}

// Create initialises the container with a
// default Header tag and a placeholder END
// tag. Calling it again has no effect.
func (c *TagContainer) Create() error {
	if c.created {
		return nil
	}

	c.tags = []tags.Tag{
		tags.NewHeader(tags.DefaultHeaderVersion, tags.DefaultHeaderImageType),
		tags.NewEnd(0),
	}
	c.created = true
	return nil
}

// IsCreated reports whether Create
// has been called.
func (c *TagContainer) IsCreated() bool {
	return c.created
}

// Load creates the container from a parsed
// image. A leading Header tag replaces the
// default one, every other Header and END tag
// is dropped and the remaining tags are kept
// in order.
func (c *TagContainer) Load(image []tags.Tag) error {
	if err := c.Create(); err != nil {
		return err
	}

	c.tags = c.tags[:0:0]
	if len(image) > 0 && image[0] != nil && image[0].Kind() == tags.KindHeader {
		c.tags = append(c.tags, image[0])
		image = image[1:]
	} else {
		c.tags = append(c.tags, tags.NewHeader(tags.DefaultHeaderVersion, tags.DefaultHeaderImageType))
	}

	for _, tag := range image {
		if tag == nil || isProtectedKind(tag.Kind()) {
			continue
		}

		c.tags = append(c.tags, tag)
	}

	c.tags = append(c.tags, tags.NewEnd(0))
	return nil
}

// Add appends tag after the last interior
// tag, immediately before the END tag.
func (c *TagContainer) Add(tag tags.Tag) error {
	if err := c.checkTag(tag); err != nil {
		return fmt.Errorf("add tag: %w", err)
	}

	end := len(c.tags) - 1
	c.tags = append(c.tags[:end], tag, c.tags[end])
	return nil
}

// InsertAt inserts tag at index, shifting the
// tag currently at index and everything after
// it one place later. Index 0 is reserved for
// the Header tag, inserting at the END tag's
// index places the tag right before it.
func (c *TagContainer) InsertAt(index int, tag tags.Tag) error {
	if err := c.checkSlot(opInsert, index, tag); err != nil {
		return fmt.Errorf("insert tag at %d: %w", index, err)
	}

	c.tags = append(c.tags, nil)
	copy(c.tags[index+1:], c.tags[index:])
	c.tags[index] = tag
	return nil
}

// RemoveAt removes the interior
// tag found at index.
func (c *TagContainer) RemoveAt(index int) error {
	if err := c.checkSlot(opRemove, index, nil); err != nil {
		return fmt.Errorf("remove tag at %d: %w", index, err)
	}

	c.tags = append(c.tags[:index], c.tags[index+1:]...)
	return nil
}

// ReplaceAt replaces the interior
// tag found at index with tag.
func (c *TagContainer) ReplaceAt(index int, tag tags.Tag) error {
	if err := c.checkSlot(opReplace, index, tag); err != nil {
		return fmt.Errorf("replace tag at %d: %w", index, err)
	}

	c.tags[index] = tag
	return nil
}

// Remove removes the first interior tag of
// the supplied kind.
//
// Unlike RemoveAt this addresses tags by kind,
// the Header and END tags can't be matched.
func (c *TagContainer) Remove(kind tags.Kind) error {
	if err := c.ready(); err != nil {
		return fmt.Errorf("remove %s tag: %w", kind, err)
	}

	if isProtectedKind(kind) {
		return fmt.Errorf("remove %s tag: %w", kind, ErrProtectedTag)
	}

	for index := 1; index < len(c.tags)-1; index++ {
		if c.tags[index].Kind() == kind {
			c.tags = append(c.tags[:index], c.tags[index+1:]...)
			return nil
		}
	}

	return fmt.Errorf("remove %s tag: %w", kind, ErrTagNotFound)
}

// Clear removes every interior tag.
func (c *TagContainer) Clear() error {
	if err := c.ready(); err != nil {
		return fmt.Errorf("clear: %w", err)
	}

	c.tags = []tags.Tag{c.tags[0], c.tags[len(c.tags)-1]}
	return nil
}

// HasTag reports whether a tag of
// the supplied kind is present.
func (c *TagContainer) HasTag(kind tags.Kind) (bool, error) {
	if err := c.ready(); err != nil {
		return false, err
	}

	for _, tag := range c.tags {
		if tag.Kind() == kind {
			return true, nil
		}
	}

	return false, nil
}

// GetTag returns the first tag
// of the supplied kind.
func (c *TagContainer) GetTag(kind tags.Kind) (tags.Tag, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}

	for _, tag := range c.tags {
		if tag.Kind() == kind {
			return tag, nil
		}
	}

	return nil, fmt.Errorf("get %s tag: %w", kind, ErrTagNotFound)
}

// GetAllTags returns every tag of the
// supplied kind in container order.
func (c *TagContainer) GetAllTags(kind tags.Kind) ([]tags.Tag, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}

	var matches []tags.Tag
	for _, tag := range c.tags {
		if tag.Kind() == kind {
			matches = append(matches, tag)
		}
	}

	return matches, nil
}

// Size returns the number of tags,
// Header and END included.
func (c *TagContainer) Size() (int, error) {
	if err := c.ready(); err != nil {
		return 0, err
	}

	return len(c.tags), nil
}

// IsEmpty reports whether only the
// Header and END tags are present.
func (c *TagContainer) IsEmpty() (bool, error) {
	if err := c.ready(); err != nil {
		return false, err
	}

	return len(c.tags) == 2, nil
}

// TagKinds returns the kind of
// every tag in container order.
func (c *TagContainer) TagKinds() ([]tags.Kind, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}

	kinds := make([]tags.Kind, len(c.tags))
	for index, tag := range c.tags {
		kinds[index] = tag.Kind()
	}

	return kinds, nil
}

// Build returns a copy of the tags
// in the container, Header first and
// END last.
func (c *TagContainer) Build() ([]tags.Tag, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}

	if err := c.validate(); err != nil {
		return nil, err
	}

	return append([]tags.Tag(nil), c.tags...), nil
}

// BuildToBytes encodes the container into a
// GBL image, replacing the END tag with one
// carrying a freshly computed CRC.
func (c *TagContainer) BuildToBytes() ([]byte, error) {
	image, err := c.Build()
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}

	body := image[:len(image)-1]
	return gbl.Encode(append(body, gbl.BuildEndTag(body))), nil
}
