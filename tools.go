//go:build tools
// +build tools

// Package tools tracks build-time tools so their versions are pinned in go.mod.
package tools

import (
	// swag generates docs/ from handler annotations: swag init -g cmd/api/main.go
	_ "github.com/swaggo/swag/cmd/swag"
)
