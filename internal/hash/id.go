// Package hash derives stable identifiers for frame column names.
package hash

import "github.com/cespare/xxhash/v2"

// ColumnID returns the xxHash64 identifier of a column name.
func ColumnID(name string) uint64 {
	return xxhash.Sum64String(name)
}
