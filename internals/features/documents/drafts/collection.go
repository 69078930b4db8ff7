package drafts

import (
	"github.com/bytedance/sonic"
	"github.com/google/uuid"
)

// Key gives a list item a stable surrogate id assigned at creation.
type Key struct {
	ID string `json:"id"`
}

func (k Key) ItemID() string { return k.ID }

func (k *Key) assignID(id string) { k.ID = id }

type keyed interface {
	ItemID() string
	assignID(string)
}

type itemPtr[T any] interface {
	*T
	keyed
}

// Collection is an ordered list of items addressed by id, never by index.
type Collection[T any, PT itemPtr[T]] []T

// Add appends item, assigning a fresh id when it has none or when the id is
// already taken. Returns the item's id.
func (c *Collection[T, PT]) Add(item T) string {
	p := PT(&item)
	if p.ItemID() == "" || c.indexOf(p.ItemID()) >= 0 {
		p.assignID(uuid.NewString())
	}
	*c = append(*c, item)
	return p.ItemID()
}

func (c Collection[T, PT]) indexOf(id string) int {
	for i := range c {
		if PT(&c[i]).ItemID() == id {
			return i
		}
	}
	return -1
}

// Get returns a pointer into the collection, or nil.
func (c Collection[T, PT]) Get(id string) *T {
	if i := c.indexOf(id); i >= 0 {
		return &c[i]
	}
	return nil
}

// Update runs fn on the item with id; the id itself cannot be changed.
func (c Collection[T, PT]) Update(id string, fn func(*T)) bool {
	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	fn(&c[i])
	PT(&c[i]).assignID(id)
	return true
}

// Remove deletes the item with id and keeps the others in order.
func (c *Collection[T, PT]) Remove(id string) bool {
	return c.RemoveAt(c.indexOf(id))
}

func (c *Collection[T, PT]) RemoveAt(i int) bool {
	if i < 0 || i >= len(*c) {
		return false
	}
	s := *c
	copy(s[i:], s[i+1:])
	var zero T
	s[len(s)-1] = zero
	*c = s[:len(s)-1]
	return true
}

// EnsureIDs fills missing ids and replaces duplicates; client payloads may
// carry either.
func (c Collection[T, PT]) EnsureIDs() {
	seen := make(map[string]struct{}, len(c))
	for i := range c {
		p := PT(&c[i])
		if _, dup := seen[p.ItemID()]; p.ItemID() == "" || dup {
			p.assignID(uuid.NewString())
		}
		seen[p.ItemID()] = struct{}{}
	}
}

func (c Collection[T, PT]) IDs() []string {
	out := make([]string, len(c))
	for i := range c {
		out[i] = PT(&c[i]).ItemID()
	}
	return out
}

func (c Collection[T, PT]) Len() int { return len(c) }

func (c Collection[T, PT]) Items() []T { return []T(c) }

/* ===== raw (JSON) access used by the reducer ===== */

type listOps interface {
	addRaw(raw []byte) (string, error)
	updateRaw(id string, patch []byte) error
	remove(id string) bool
	removeAt(i int) bool
	ensureIDs()
}

func (c *Collection[T, PT]) addRaw(raw []byte) (string, error) {
	var item T
	if len(raw) > 0 {
		if err := sonic.Unmarshal(raw, &item); err != nil {
			return "", err
		}
	}
	PT(&item).assignID("")
	return c.Add(item), nil
}

func (c *Collection[T, PT]) updateRaw(id string, patch []byte) error {
	i := c.indexOf(id)
	if i < 0 {
		return ErrItemNotFound
	}
	p := PT(&(*c)[i])
	if err := sonic.Unmarshal(patch, p); err != nil {
		return err
	}
	p.assignID(id)
	return nil
}

func (c *Collection[T, PT]) remove(id string) bool { return c.Remove(id) }
func (c *Collection[T, PT]) removeAt(i int) bool   { return c.RemoveAt(i) }
func (c *Collection[T, PT]) ensureIDs()            { c.EnsureIDs() }
