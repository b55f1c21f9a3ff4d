package templates

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/example/codegen/internal/models"
)

func TestStarterSets(t *testing.T) {
	for _, variant := range []models.Variant{models.VariantModel, models.VariantCQRS} {
		t.Run(string(variant), func(t *testing.T) {
			root := Root(variant)

			var files []string
			err := fs.WalkDir(FS(), root, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if !d.IsDir() {
					files = append(files, path)
				}
				return nil
			})
			if err != nil {
				t.Fatalf("WalkDir failed: %v", err)
			}
			if len(files) == 0 {
				t.Fatal("starter set is empty")
			}

			// The extension fallback needs the dot-file templates.
			for _, want := range []string{root + "/.cs.txt", root + "/.cs-interface.txt"} {
				if _, err := fs.Stat(FS(), want); err != nil {
					t.Errorf("missing %s: %v", want, err)
				}
			}

			for _, f := range files {
				if !strings.HasSuffix(f, ".txt") {
					t.Errorf("%s does not carry the template extension", f)
				}
			}
		})
	}
}
