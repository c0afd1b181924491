// Package id issues time-sortable identifiers for journal records.
package id

import "github.com/oklog/ulid/v2"

// New returns a ULID string. ULIDs sort by generation time, which keeps
// journal tables and CSV exports naturally ordered.
func New() string {
	return ulid.Make().String()
}
