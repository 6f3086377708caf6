package app

import (
	"fmt"
	"strconv"
	"strings"

	"tableflip.dev/daybook/pkg/record"
)

// Resolve turns a user reference into a record id. A reference is tried as a
// full id, then as a 1-based position in items, then as a unique id prefix.
// items should be in the order the user was shown.
func Resolve[T record.Keyed](items []T, ref string) (record.ID, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("%w: empty reference", ErrNotFound)
	}
	for _, it := range items {
		if string(it.Key()) == ref {
			return it.Key(), nil
		}
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(items) {
		return items[n-1].Key(), nil
	}

	var match record.ID
	count := 0
	for _, it := range items {
		if strings.HasPrefix(string(it.Key()), ref) {
			match = it.Key()
			count++
		}
	}
	switch count {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrNotFound, ref)
	case 1:
		return match, nil
	default:
		return "", fmt.Errorf("%w: %s matches %d records", ErrAmbiguousID, ref, count)
	}
}
