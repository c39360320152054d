package features

import (
	"sort"
)

// Collection indexes every known configuration item by name.
type Collection struct {
	items map[string]*ConfigurationItem
}

// NewCollection creates a collection holding items.
func NewCollection(items ...*ConfigurationItem) *Collection {
	c := &Collection{items: make(map[string]*ConfigurationItem, len(items))}
	for _, item := range items {
		c.Add(item)
	}
	return c
}

// Add inserts or replaces an item.
func (c *Collection) Add(item *ConfigurationItem) {
	c.items[item.Name] = item
}

// Get returns the item called name.
func (c *Collection) Get(name string) (*ConfigurationItem, bool) {
	item, ok := c.items[name]
	return item, ok
}

// Has reports whether name is known.
func (c *Collection) Has(name string) bool {
	_, ok := c.items[name]
	return ok
}

// Len returns the number of items.
func (c *Collection) Len() int {
	return len(c.items)
}

// Names returns all item names in ascending order.
func (c *Collection) Names() []string {
	names := make([]string, 0, len(c.items))
	for name := range c.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NamesDesc returns all item names in descending order.
func (c *Collection) NamesDesc() []string {
	names := c.Names()
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names
}

// Items returns all items ordered by name.
func (c *Collection) Items() []*ConfigurationItem {
	names := c.Names()
	out := make([]*ConfigurationItem, 0, len(names))
	for _, name := range names {
		out = append(out, c.items[name])
	}
	return out
}

// ByType returns the items of type t ordered by name.
func (c *Collection) ByType(t string) []*ConfigurationItem {
	var out []*ConfigurationItem
	for _, item := range c.Items() {
		if item.Type == t {
			out = append(out, item)
		}
	}
	return out
}

// Unassigned returns the items no package claims, ordered by name.
func (c *Collection) Unassigned() []*ConfigurationItem {
	var out []*ConfigurationItem
	for _, item := range c.Items() {
		if item.Package == "" {
			out = append(out, item)
		}
	}
	return out
}

// Reset clears every item's package assignment in place.
func (c *Collection) Reset() {
	for _, item := range c.items {
		item.Package = ""
	}
}

// Clone deep-copies the collection so a separate session can mutate it.
func (c *Collection) Clone() (*Collection, error) {
	clone := &Collection{items: make(map[string]*ConfigurationItem, len(c.items))}
	for name, item := range c.items {
		copied, err := item.Clone()
		if err != nil {
			return nil, err
		}
		clone.items[name] = copied
	}
	return clone, nil
}
