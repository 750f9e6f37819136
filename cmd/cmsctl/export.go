package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/velumpress/cms/pkg/content"
	"github.com/velumpress/cms/pkg/render"
	"github.com/velumpress/cms/pkg/server/store/file"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export [country...]",
	Short: "Export country content as static HTML",
	Long: `Render the published content of one or more countries to static HTML.

Each country becomes <out-dir>/<lang>/<code>.html. Markdown in paragraphs
and summaries is rendered; pending changes are never included. Without
arguments every country of the language is exported.

Example:
  cmsctl export
  cmsctl export ve co --lang en --out-dir /srv/www/paises`,
	Run: func(cmd *cobra.Command, args []string) {
		outDir, _ := cmd.Flags().GetString("out-dir")
		lang, _ := cmd.Flags().GetString("lang")

		if err := runExport(outDir, lang, args); err != nil {
			fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("out-dir", "o", "export", "Output directory")
	exportCmd.Flags().StringP("lang", "l", "", "Content language (default: configured default_lang)")
}

func runExport(outDir, lang string, codes []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if lang == "" {
		lang = cfg.DefaultLang
	}
	if !cfg.IsLanguage(lang) {
		return fmt.Errorf("unsupported language: %s", lang)
	}

	contentStore := file.NewContentStore(cfg.ContentDir)
	if len(codes) == 0 {
		countries, err := contentStore.ListCountries(lang)
		if err != nil {
			return err
		}
		for _, c := range countries {
			codes = append(codes, c.Code)
		}
	}

	dir := filepath.Join(outDir, lang)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	exporter := render.NewExporter(contentStore)
	for _, code := range codes {
		if !content.ValidID(code) {
			return fmt.Errorf("invalid country code: %s", code)
		}
		path := filepath.Join(dir, code+".html")
		if err := exportCountry(exporter, path, lang, code); err != nil {
			return fmt.Errorf("%s: %w", code, err)
		}
		fmt.Printf("Exported %s\n", path)
	}
	return nil
}

func exportCountry(exporter *render.Exporter, path, lang, code string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return exporter.Country(f, lang, code)
}
