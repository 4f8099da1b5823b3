package tracker

import "github.com/light-bringer/procat-batchedit/internal/app/product/domain"

// bucket is an insertion-ordered set of products keyed by a string.
type bucket struct {
	order []string
	items map[string]*domain.Product
}

func newBucket() *bucket {
	return &bucket{items: make(map[string]*domain.Product)}
}

// upsert adds the product or replaces the entry stored under the same key.
func (b *bucket) upsert(key string, p *domain.Product) {
	if _, ok := b.items[key]; !ok {
		b.order = append(b.order, key)
	}
	b.items[key] = p
}

func (b *bucket) remove(key string) {
	if _, ok := b.items[key]; !ok {
		return
	}
	delete(b.items, key)
	for i, k := range b.order {
		if k == key {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

func (b *bucket) has(key string) bool {
	_, ok := b.items[key]
	return ok
}

func (b *bucket) len() int {
	return len(b.order)
}

// values returns the live products in insertion order.
func (b *bucket) values() []*domain.Product {
	out := make([]*domain.Product, 0, len(b.order))
	for _, k := range b.order {
		out = append(out, b.items[k])
	}
	return out
}

// snapshot returns deep copies in insertion order.
func (b *bucket) snapshot() []*domain.Product {
	out := make([]*domain.Product, 0, len(b.order))
	for _, k := range b.order {
		out = append(out, b.items[k].Clone())
	}
	return out
}

func (b *bucket) clear() {
	b.order = nil
	b.items = make(map[string]*domain.Product)
}
