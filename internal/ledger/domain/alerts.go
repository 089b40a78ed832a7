package domain

import "iter"

// DeriveAlerts yields the products whose stock has fallen below their
// reorder point, preserving input order. The returned sequence is lazy and
// restartable; alerts are a read-time projection and are never persisted.
func DeriveAlerts(products []Product) iter.Seq[Product] {
	return func(yield func(Product) bool) {
		for _, p := range products {
			if p.Stock < p.ReorderPoint {
				if !yield(p) {
					return
				}
			}
		}
	}
}
