package cli

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/scanform/scanform/pkg/cache"
	"github.com/scanform/scanform/pkg/form"
	"github.com/scanform/scanform/pkg/generate"
	"github.com/scanform/scanform/pkg/qr"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	output      string // output PDF path; derived from the input name when empty
	configPath  string // TOML geometry overrides
	clientID    string // overrides the client id from the sheet file
	noCache     bool   // skip the artifact cache entirely
	qrSize      int    // pixel size of encoded code images
	interactive bool   // pick products interactively before rendering
}

// newGenerateCmd creates the generate command for rendering audit sheets.
func newGenerateCmd() *cobra.Command {
	opts := generateOpts{
		qrSize: qr.DefaultSize,
	}

	cmd := &cobra.Command{
		Use:   "generate [sheet file]",
		Short: "Render a sheet definition into a printable PDF",
		Long: `Generate reads a sheet definition (JSON or TOML) and renders it into a
single-page A4 PDF with orientation markers, date bubbles, and one row per
product with its code image and quantity bubbles.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with .pdf)")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "TOML file with geometry overrides")
	cmd.Flags().StringVar(&opts.clientID, "client-id", "", "override the client id from the sheet file")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "skip the artifact cache")
	cmd.Flags().IntVar(&opts.qrSize, "qr-size", opts.qrSize, "pixel size of the embedded code images")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "pick products interactively before rendering")

	return cmd
}

// runGenerate loads the sheet, applies flag overrides, and renders the PDF.
func runGenerate(ctx context.Context, input string, opts *generateOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	sheet, err := form.Load(input)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded sheet: client %q, %d products", sheet.Client.Name, len(sheet.Products))

	if opts.clientID != "" {
		sheet.Client.ID = opts.clientID
	}
	if sheet.Client.ID == "" {
		sheet.Client.ID = uuid.NewString()
		printInfo("No client id in sheet, assigned %s", sheet.Client.ID)
	}

	if opts.interactive {
		selected, err := pickProducts(sheet.Products)
		if errors.Is(err, errPickerAborted) {
			printWarning("Selection aborted, nothing generated")
			return nil
		}
		if err != nil {
			return err
		}
		sheet.Products = selected
		logger.Debugf("Selected %d products", len(selected))
	}

	cfg, err := loadGeometry(opts.configPath)
	if err != nil {
		return err
	}

	artifacts, err := openCache(opts.noCache)
	if err != nil {
		logger.Warn("Artifact cache unavailable, rendering without it", "err", err)
	}
	if artifacts != nil {
		defer artifacts.Close()
	}

	out := opts.output
	if out == "" {
		out = strings.TrimSuffix(input, filepath.Ext(input)) + ".pdf"
	}

	spinner := newSpinner(ctx, "Rendering sheet")
	spinner.Start()
	result, err := generate.Generate(ctx, sheet, out, generate.Options{
		Config: cfg,
		Cache:  artifacts,
		QRSize: opts.qrSize,
	})
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return err
	}
	spinner.Stop()

	prog.done("Generated sheet")
	printSuccess("Generated %s", filepath.Base(out))
	printFile(out)
	printStats(result.Rows, len(result.Data), result.Cached)
	printNextStep("Print it", "lp "+out)
	return nil
}

// openCache opens the file-backed artifact cache, or returns nil when
// caching is disabled.
func openCache(disabled bool) (cache.Cache, error) {
	if disabled {
		return nil, nil
	}
	dir, err := cacheDir()
	if err != nil {
		return nil, err
	}
	return cache.NewFileCache(dir)
}
