package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/internal/config"
	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/collect"
	"github.com/goliatone/go-formbuilder/pkg/fill"
	"github.com/goliatone/go-formbuilder/pkg/form"
	"github.com/goliatone/go-formbuilder/pkg/storage"
	"github.com/goliatone/go-formbuilder/pkg/storage/badgerstore"
	"github.com/goliatone/go-formbuilder/pkg/template"
)

func main() {
	cfgPath := flag.String("config", "", "config file (JSON or YAML)")
	storePath := flag.String("store", "", "database directory (overrides config)")
	inMemory := flag.Bool("memory", false, "keep the store in memory only")
	action := flag.String("action", "list", "list | new | fill | responses | templates | import")
	formID := flag.String("form", "", "form id for fill/responses")
	title := flag.String("title", "", "title for new forms")
	templateTitle := flag.String("template", "", "built-in template title to seed a new form from")
	source := flag.String("source", "", "OpenAPI document path for import")
	operation := flag.String("operation", "", "operation id for import")
	verbose := flag.Bool("verbose", false, "debug logging")
	flag.Parse()

	logger := newLogger(*verbose)
	defer logger.Sync()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			logger.Fatal("load config", zap.Error(err))
		}
		cfg = loaded
	}
	if *storePath != "" {
		cfg.StoragePath = *storePath
	}
	if *inMemory {
		cfg.InMemory = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	store, err := badgerstore.Open(badgerstore.Config{
		Path:       cfg.StoragePath,
		InMemory:   cfg.InMemory,
		SyncWrites: cfg.SyncWrites,
		Logger:     logger,
	})
	if err != nil {
		logger.Fatal("open store", zap.Error(err))
	}
	defer store.Close()

	if err := run(ctx, store, logger, options{
		action:        *action,
		formID:        *formID,
		title:         *title,
		templateTitle: *templateTitle,
		source:        *source,
		operation:     *operation,
	}); err != nil {
		logger.Fatal("command failed", zap.String("action", *action), zap.Error(err))
	}
}

type options struct {
	action        string
	formID        string
	title         string
	templateTitle string
	source        string
	operation     string
}

func run(ctx context.Context, store storage.Store, logger *zap.Logger, opts options) error {
	switch opts.action {
	case "list":
		return listForms(ctx, store)
	case "new":
		return newForm(ctx, store, logger, opts)
	case "fill":
		return fillForm(ctx, store, logger, opts.formID)
	case "responses":
		return listResponses(ctx, store, opts.formID)
	case "templates":
		return listTemplates(ctx, store)
	case "import":
		return importTemplate(ctx, store, logger, opts)
	default:
		return fmt.Errorf("unknown action %q", opts.action)
	}
}

func listForms(ctx context.Context, store storage.Store) error {
	forms, err := store.ListForms(ctx)
	if err != nil {
		return err
	}
	if len(forms) == 0 {
		fmt.Println("no forms yet; create one with -action new")
		return nil
	}
	for _, doc := range forms {
		fmt.Printf("%s  %-30s  steps=%d  updated=%s\n",
			doc.ID, doc.Title, len(doc.Steps),
			time.UnixMilli(doc.UpdatedAt).Format(time.RFC3339))
	}
	return nil
}

func newForm(ctx context.Context, store storage.Store, logger *zap.Logger, opts options) error {
	session := builder.New()
	if opts.templateTitle != "" {
		seed, ok := findBuiltIn(opts.templateTitle)
		if !ok {
			return fmt.Errorf("unknown built-in template %q", opts.templateTitle)
		}
		session.LoadTemplate(seed)
	}
	if opts.title != "" {
		session.UpdateFormMeta(builder.FormPatch{Title: &opts.title})
	}

	doc := session.Form()
	if err := store.SaveForm(ctx, doc); err != nil {
		return err
	}
	if err := store.SaveSession(ctx, doc); err != nil {
		return err
	}
	logger.Info("form created", zap.String("id", doc.ID), zap.String("title", doc.Title))
	fmt.Println(doc.ID)
	return nil
}

func fillForm(ctx context.Context, store storage.Store, logger *zap.Logger, formID string) error {
	if formID == "" {
		return fmt.Errorf("fill requires -form")
	}
	doc, err := store.LoadForm(ctx, formID)
	if err != nil {
		return err
	}

	session := fill.NewSession(collect.New(store))
	response, err := session.Run(ctx, doc)
	if err != nil {
		return err
	}
	logger.Info("response recorded",
		zap.String("form", formID), zap.String("response", response.ID))
	fmt.Println(response.ID)
	return nil
}

func listResponses(ctx context.Context, store storage.Store, formID string) error {
	if formID == "" {
		return fmt.Errorf("responses requires -form")
	}
	responses, err := store.Responses(ctx, formID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(responses)
}

func listTemplates(ctx context.Context, store storage.Store) error {
	stored, err := store.ListTemplates(ctx)
	if err != nil {
		return err
	}
	for _, doc := range template.BuiltIn() {
		fmt.Printf("built-in  %-30s  %s\n", doc.Title, doc.Description)
	}
	for _, doc := range stored {
		fmt.Printf("%s  %-30s  %s\n", doc.ID, doc.Title, doc.Description)
	}
	return nil
}

func importTemplate(ctx context.Context, store storage.Store, logger *zap.Logger, opts options) error {
	if opts.source == "" || opts.operation == "" {
		return fmt.Errorf("import requires -source and -operation")
	}
	raw, err := os.ReadFile(opts.source)
	if err != nil {
		return fmt.Errorf("read %s: %w", opts.source, err)
	}

	doc, err := template.ImportOpenAPI(ctx, raw, opts.operation)
	if err != nil {
		return err
	}
	if opts.title != "" {
		doc.Title = opts.title
	}

	if err := store.SaveTemplate(ctx, doc); err != nil {
		return err
	}
	logger.Info("template imported",
		zap.String("id", doc.ID), zap.String("operation", opts.operation),
		zap.Int("fields", len(doc.Steps[0].Fields)))
	fmt.Println(doc.ID)
	return nil
}

func findBuiltIn(title string) (form.Form, bool) {
	for _, doc := range template.BuiltIn() {
		if doc.Title == title {
			return doc, true
		}
	}
	return form.Form{}, false
}

func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	logger, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}
