package catalog_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/playperu/flagquiz/internal/catalog"
	"github.com/playperu/flagquiz/internal/flagquiz"
)

const sampleJSON = `{
  "easy": [
    {"country": "France", "description": "Blue, white, and red."},
    {"country": "Japan", "description": "White with red circle."}
  ],
  "medium": [
    {"country": "Brazil", "description": "Green with yellow diamond."}
  ],
  "hard": [
    {"country": "Nepal", "description": "Two stacked triangles."}
  ]
}`

const sampleYAML = `
easy:
  - country: France
    description: Blue, white, and red.
  - country: Japan
    description: White with red circle.
medium:
  - country: Brazil
    description: Green with yellow diamond.
hard:
  - country: Nepal
    description: Two stacked triangles.
`

func wantCatalog() flagquiz.Catalog {
	return flagquiz.Catalog{
		flagquiz.TierEasy: {
			{Country: "France", Description: "Blue, white, and red."},
			{Country: "Japan", Description: "White with red circle."},
		},
		flagquiz.TierMedium: {{Country: "Brazil", Description: "Green with yellow diamond."}},
		flagquiz.TierHard:   {{Country: "Nepal", Description: "Two stacked triangles."}},
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoadDocuments(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"json", "flags.json", sampleJSON},
		{"yaml", "flags.yaml", sampleYAML},
		{"yml", "flags.yml", sampleYAML},
		{"unknown extension is json", "flags.txt", sampleJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)

			got, err := catalog.Load(context.Background(), path)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if !reflect.DeepEqual(got, wantCatalog()) {
				t.Errorf("catalog = %+v, want %+v", got, wantCatalog())
			}
		})
	}
}

func TestLoadEmptyTierIsValid(t *testing.T) {
	path := writeFile(t, "flags.json", `{"easy": [], "medium": [], "hard": []}`)

	got, err := catalog.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Len() != 0 {
		t.Errorf("len = %d, want 0", got.Len())
	}
	if _, err := flagquiz.Select(flagquiz.TierEasy, got, nil); !errors.Is(err, flagquiz.ErrEmptyTier) {
		t.Errorf("select err = %v, want ErrEmptyTier", err)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    error
		kind    catalog.Kind
	}{
		{"bad json", "flags.json", `{"easy": [`, catalog.ErrParse, catalog.KindParse},
		{"bad yaml", "flags.yaml", "easy: [unclosed", catalog.ErrParse, catalog.KindParse},
		{"json array root", "flags.json", `[]`, catalog.ErrValidation, catalog.KindValidation},
		{"json missing hard", "flags.json", `{"easy": [], "medium": []}`, catalog.ErrValidation, catalog.KindValidation},
		{"json tier not a list", "flags.json", `{"easy": {}, "medium": [], "hard": []}`, catalog.ErrValidation, catalog.KindValidation},
		{"json null tier", "flags.json", `{"easy": [], "medium": null, "hard": []}`, catalog.ErrValidation, catalog.KindValidation},
		{"json bad entry", "flags.json", `{"easy": [1], "medium": [], "hard": []}`, catalog.ErrValidation, catalog.KindValidation},
		{"yaml scalar root", "flags.yaml", "just text", catalog.ErrValidation, catalog.KindValidation},
		{"yaml empty", "flags.yaml", "", catalog.ErrValidation, catalog.KindValidation},
		{"yaml missing medium", "flags.yaml", "easy: []\nhard: []\n", catalog.ErrValidation, catalog.KindValidation},
		{"yaml tier not a list", "flags.yaml", "easy: []\nmedium: nope\nhard: []\n", catalog.ErrValidation, catalog.KindValidation},
		{"json empty record", "flags.json", `{"easy": [], "medium": [{}], "hard": []}`, catalog.ErrValidation, catalog.KindValidation},
		{"json missing country", "flags.json", `{"easy": [{"description": "x"}], "medium": [], "hard": []}`, catalog.ErrValidation, catalog.KindValidation},
		{"json blank country", "flags.json", `{"easy": [], "medium": [], "hard": [{"country": "  ", "description": "x"}]}`, catalog.ErrValidation, catalog.KindValidation},
		{"json missing description", "flags.json", `{"easy": [{"country": "France"}], "medium": [], "hard": []}`, catalog.ErrValidation, catalog.KindValidation},
		{"yaml missing country", "flags.yaml", "easy:\n  - description: x\nmedium: []\nhard: []\n", catalog.ErrValidation, catalog.KindValidation},
		{"yaml blank description", "flags.yaml", "easy: []\nmedium:\n  - country: Peru\n    description: \"\"\nhard: []\n", catalog.ErrValidation, catalog.KindValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)

			_, err := catalog.Load(context.Background(), path)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			var cerr *catalog.Error
			if !errors.As(err, &cerr) {
				t.Fatalf("err %T is not *catalog.Error", err)
			}
			if cerr.Kind != tt.kind {
				t.Errorf("kind = %d, want %d", cerr.Kind, tt.kind)
			}
			if !strings.HasPrefix(err.Error(), "could not load catalog: ") {
				t.Errorf("message = %q", err.Error())
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"flags.json", "flags.yaml", "flags.db"} {
		t.Run(name, func(t *testing.T) {
			_, err := catalog.Load(context.Background(), filepath.Join(dir, name))
			if !errors.Is(err, catalog.ErrLoad) {
				t.Fatalf("err = %v, want ErrLoad", err)
			}
			if !errors.Is(err, os.ErrNotExist) {
				t.Errorf("err = %v, want it to wrap os.ErrNotExist", err)
			}
		})
	}

	if _, err := os.Stat(filepath.Join(dir, "flags.db")); !errors.Is(err, os.ErrNotExist) {
		t.Error("loading a missing database must not create it")
	}
}

func TestFormatOf(t *testing.T) {
	tests := map[string]catalog.Format{
		"flags.json":         catalog.FormatJSON,
		"flags":              catalog.FormatJSON,
		"data/FLAGS.YAML":    catalog.FormatYAML,
		"flags.yml":          catalog.FormatYAML,
		"flags.db":           catalog.FormatSQLite,
		"flags.sqlite":       catalog.FormatSQLite,
		"/tmp/flags.sqlite3": catalog.FormatSQLite,
	}
	for path, want := range tests {
		if got := catalog.FormatOf(path); got != want {
			t.Errorf("FormatOf(%q) = %q, want %q", path, got, want)
		}
	}
}
