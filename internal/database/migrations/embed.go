// Package migrations holds the goose SQL migrations for the account store and report feed.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
