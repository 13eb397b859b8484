package store

import (
	_ "embed"
)

// Schema creates the coach collections if they do not exist yet.
//
//go:embed schema.sql
var Schema string
