// x12parse parses X12 EDI documents into JSON or XML.
//
// Usage:
//
//	x12parse [options] path
//
// path may be a single file or a directory; for a directory every regular
// file in it is processed. Documents that fail to parse or validate are
// logged and skipped - one malformed file never aborts a batch.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/x12io/x12doc"
	"github.com/x12io/x12doc/internal/config"
	"github.com/x12io/x12doc/internal/export"
)

func main() {
	var (
		configPath string
		exportType string
		outputDir  string
		jobs       int
		debug      bool
	)
	flag.StringVar(&configPath, "config", "", "path to a YAML config file")
	flag.StringVar(&exportType, "e", "", "export format (JSON or XML)")
	flag.StringVar(&outputDir, "o", "", "output directory")
	flag.IntVar(&jobs, "jobs", 0, "number of files to process concurrently")
	flag.BoolVar(&debug, "debug", false, "enable debug logging")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(
			os.Stderr,
			"usage: %s [options] path\n",
			filepath.Base(os.Args[0]),
		)
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	// flags win over file values
	if exportType != "" {
		cfg.ExportFormat = exportType
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if jobs > 0 {
		cfg.Parallelism = jobs
	}
	if debug {
		cfg.Debug = true
	}

	logger, _ := zap.NewProduction()
	if cfg.Debug {
		logger, _ = zap.NewDevelopment()
	}
	zap.ReplaceGlobals(logger)
	defer func() { _ = logger.Sync() }()

	format, err := export.ParseFormat(cfg.ExportFormat)
	if err != nil {
		zap.S().Errorf("%v", err)
		os.Exit(1)
	}

	files, err := collectFiles(flag.Arg(0))
	if err != nil {
		zap.S().Errorf("%v", err)
		os.Exit(1)
	}

	var g errgroup.Group
	g.SetLimit(cfg.Parallelism)
	for _, file := range files {
		file := file
		g.Go(func() error {
			processFile(file, format, cfg.OutputDir)
			return nil
		})
	}
	_ = g.Wait()
}

// collectFiles expands a path into the list of files to process.
func collectFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			files = append(files, filepath.Join(path, entry.Name()))
		}
	}
	return files, nil
}

// processFile parses, validates and exports one document. Per-file
// failures are logged; the batch continues regardless.
func processFile(path string, format export.Format, outputDir string) {
	log := zap.S().With("file", path)
	log.Debugf("parsing, export as %s to %s", format, outputDir)

	doc, err := x12doc.ParseFile(path)
	if err != nil {
		log.Errorf("parse failed: %v", err)
		return
	}

	report := doc.Validate()
	if !report.IsDocumentValid() {
		messages := make([]string, 0, len(report.Errors))
		for _, diagnostic := range report.Errors {
			messages = append(
				messages,
				fmt.Sprintf("[%s] %s", diagnostic.Context, diagnostic.Message),
			)
		}
		log.Errorf("document is invalid: %s", strings.Join(messages, "; "))
		return
	}

	baseName := strings.TrimSuffix(
		filepath.Base(path),
		filepath.Ext(path),
	)
	outPath, err := export.Write(doc, format, outputDir, baseName)
	if err != nil {
		log.Errorf("export failed: %v", err)
		return
	}
	log.Infof("exported to %s", outPath)
}
