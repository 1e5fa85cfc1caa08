package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/scanform/scanform/pkg/errors"
	"github.com/scanform/scanform/pkg/layout"
)

func TestLoadGeometryDefaults(t *testing.T) {
	cfg, err := loadGeometry("")
	if err != nil {
		t.Fatalf("loadGeometry error: %v", err)
	}
	if cfg != layout.Default() {
		t.Error("empty path should return the reference geometry")
	}
}

func TestLoadGeometryOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geometry.toml")
	content := "row_spacing = 40.0\nfooter_margin = 30.0\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadGeometry(path)
	if err != nil {
		t.Fatalf("loadGeometry error: %v", err)
	}
	if cfg.RowSpacing != 40 {
		t.Errorf("RowSpacing = %v, want 40", cfg.RowSpacing)
	}
	if cfg.FooterMargin != 30 {
		t.Errorf("FooterMargin = %v, want 30", cfg.FooterMargin)
	}
	// Untouched fields keep their defaults
	if cfg.BubbleRadius != layout.Default().BubbleRadius {
		t.Errorf("BubbleRadius = %v, want default", cfg.BubbleRadius)
	}
}

func TestLoadGeometryRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geometry.toml")
	// Row spacing smaller than the row content height
	if err := os.WriteFile(path, []byte("row_spacing = 5.0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := loadGeometry(path)
	if !errors.Is(err, errors.ErrCodeInvalidSpec) {
		t.Fatalf("error = %v, want INVALID_SPEC", err)
	}
}

func TestLoadGeometryBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geometry.toml")
	if err := os.WriteFile(path, []byte("not = [valid"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := loadGeometry(path)
	if !errors.Is(err, errors.ErrCodeInvalidSpec) {
		t.Fatalf("error = %v, want INVALID_SPEC", err)
	}
}

func TestCacheDirOverride(t *testing.T) {
	t.Setenv("SCANFORM_CACHE_DIR", "/tmp/scanform-test-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir error: %v", err)
	}
	if dir != "/tmp/scanform-test-cache" {
		t.Errorf("dir = %q, want override value", dir)
	}
}
