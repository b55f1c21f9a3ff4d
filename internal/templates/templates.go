// Package templates embeds the starter template sets shipped with codegen.
package templates

import (
	"embed"
	"io/fs"

	"github.com/example/codegen/internal/models"
)

//go:embed all:starter
var starterTemplates embed.FS

// FS returns the starter sets, one top-level directory per variant.
func FS() fs.FS {
	sub, err := fs.Sub(starterTemplates, "starter")
	if err != nil {
		// The embed pattern guarantees the directory exists.
		panic(err)
	}
	return sub
}

// Root returns the directory in FS holding the starter set for variant.
func Root(variant models.Variant) string {
	if variant == models.VariantCQRS {
		return "cqrs"
	}
	return "classic"
}
