// Package cart keeps the session-scoped cart: the ordered list of
// product IDs a client has added. Entries are not deduplicated, a
// repeated ID means a higher quantity. Catalog existence is validated
// at aggregation time, not here.
package cart

import (
	"fmt"
	"strconv"

	"github.com/nikolayk812/checkout-demo/internal/domain"
	"github.com/nikolayk812/checkout-demo/internal/port"
)

const cartKey = "cart"

// Ensure initializes an empty cart for the session, no-op when one exists.
func Ensure(sess port.Session) {
	if !sess.Has(cartKey) {
		sess.Set(cartKey, []int64{})
	}
}

// Add appends the product ID to the cart and returns the new entry
// count. A missing or non-numeric rawID is rejected without mutating
// the cart; an ID absent from the catalog is not.
func Add(sess port.Session, rawID string) (int, error) {
	if rawID == "" {
		return len(Items(sess)), fmt.Errorf("product_id is empty: %w", domain.ErrValidation)
	}

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		return len(Items(sess)), fmt.Errorf("product_id[%s] is not a positive integer: %w", rawID, domain.ErrValidation)
	}

	entries := Items(sess)
	entries = append(entries, id)
	sess.Set(cartKey, entries)

	return len(entries), nil
}

// Items returns a copy of the cart entries in insertion order.
func Items(sess port.Session) []int64 {
	v, ok := sess.Get(cartKey)
	if !ok {
		return nil
	}

	entries, ok := v.([]int64)
	if !ok {
		return nil
	}

	out := make([]int64, len(entries))
	copy(out, entries)
	return out
}

// Clear resets the cart to an empty sequence.
func Clear(sess port.Session) {
	sess.Set(cartKey, []int64{})
}
