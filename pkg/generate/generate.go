// Package generate assembles the full document pipeline: sheet validation,
// geometric layout, QR encoding, and PDF rendering, with optional caching of
// finished artifacts.
//
// The pipeline is split into two entry points. Render produces the PDF bytes
// for a sheet; Generate additionally writes them to a file atomically, so a
// failed run never leaves a truncated document behind.
package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/scanform/scanform/pkg/cache"
	"github.com/scanform/scanform/pkg/errors"
	"github.com/scanform/scanform/pkg/form"
	"github.com/scanform/scanform/pkg/layout"
	"github.com/scanform/scanform/pkg/qr"
	"github.com/scanform/scanform/pkg/render"
)

// DefaultCacheTTL is how long rendered documents stay cached. Layout output
// is a pure function of the sheet and geometry, so entries never go stale;
// the TTL only bounds disk usage.
const DefaultCacheTTL = 7 * 24 * time.Hour

// Options configures a render run.
type Options struct {
	Config layout.Config // page geometry; zero value is replaced by layout.Default()
	Cache  cache.Cache   // artifact cache; nil disables caching
	QRSize int           // QR module image size in pixels; zero means qr.DefaultSize
}

// Result reports what a render run produced.
type Result struct {
	Data   []byte // the finished PDF document
	Cached bool   // true when the document came from the artifact cache
	Rows   int    // number of product rows laid out
}

// Render produces the PDF document for a sheet.
//
// The cache key covers the sheet content and the geometry, so any change to
// either produces a fresh render. Cache failures are not fatal: a broken
// cache degrades to a plain render.
func Render(ctx context.Context, sheet *form.Sheet, opts Options) (*Result, error) {
	cfg := opts.Config
	if cfg == (layout.Config{}) {
		cfg = layout.Default()
	}

	key, err := artifactKey(sheet, cfg)
	if err != nil {
		return nil, err
	}

	if opts.Cache != nil {
		if data, hit, cerr := opts.Cache.Get(ctx, key); cerr == nil && hit {
			return &Result{Data: data, Cached: true, Rows: len(sheet.Products)}, nil
		}
	}

	cmds, err := layout.Document(sheet, cfg)
	if err != nil {
		return nil, err
	}

	surface := render.NewPDF(cfg)

	size := opts.QRSize
	if size <= 0 {
		size = qr.DefaultSize
	}
	if err := render.Draw(surface, cmds, qr.New(size)); err != nil {
		return nil, err
	}

	data, err := surface.Bytes()
	if err != nil {
		return nil, err
	}

	if opts.Cache != nil {
		_ = opts.Cache.Set(ctx, key, data, DefaultCacheTTL)
	}

	return &Result{Data: data, Rows: len(sheet.Products)}, nil
}

// Generate renders a sheet and writes the PDF to outPath.
//
// The document is written to a temporary file in the target directory and
// renamed into place, so outPath either holds a complete document or is left
// untouched.
func Generate(ctx context.Context, sheet *form.Sheet, outPath string, opts Options) (*Result, error) {
	if err := errors.ValidateOutputPath(outPath); err != nil {
		return nil, err
	}

	result, err := Render(ctx, sheet, opts)
	if err != nil {
		return nil, err
	}

	if err := writeAtomic(outPath, result.Data); err != nil {
		return nil, err
	}
	return result, nil
}

// artifactKey derives the cache key from the sheet content and geometry.
func artifactKey(sheet *form.Sheet, cfg layout.Config) (string, error) {
	sheetJSON, err := json.Marshal(sheet)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash sheet")
	}
	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash geometry")
	}
	return cache.ArtifactKey(cache.Hash(sheetJSON), cache.Hash(cfgJSON)), nil
}

// writeAtomic writes data to path via a temp file and rename.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create output directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, ".scanform-*.pdf")
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create temporary file in %s", dir)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeIO, err, "move %s into place", path)
	}
	return nil
}

// IsPDF reports whether data starts with the PDF magic header. Used by
// callers that want a sanity check on cached artifacts.
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, []byte("%PDF"))
}
