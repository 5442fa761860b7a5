package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"aladin/src/internal/aladin"
	"aladin/src/internal/config"
	"aladin/src/internal/logging"
	"aladin/src/internal/plugin"
	"aladin/src/internal/schema"
)

var opts struct {
	configPath string
	variant    string
	logLevel   string
}

// indirections for testability
var (
	loadConfig = config.Load
	newLogger  = logging.New
	newSource  = func(cfg config.Config) plugin.Source { return aladin.New(cfg) }
)

// setup loads the configuration, applies flag overrides and builds the
// source with its logger.
func setup() (plugin.Source, *zap.Logger, error) {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return nil, nil, err
	}
	if v := strings.TrimSpace(opts.variant); v != "" {
		cfg.Variant = strings.ToLower(v)
		if err := cfg.Validate(); err != nil {
			return nil, nil, err
		}
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return newSource(cfg), log, nil
}

// lookupFlags are shared by identify and cover.
type lookupFlags struct {
	title    string
	authors  []string
	isbn     string
	isbn13   string
	aladinID string
}

func (f *lookupFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "book title")
	cmd.Flags().StringArrayVar(&f.authors, "author", nil, "author name (repeatable)")
	cmd.Flags().StringVar(&f.isbn, "isbn", "", "ISBN-10 or ISBN-13")
	cmd.Flags().StringVar(&f.isbn13, "isbn13", "", "ISBN-13")
	cmd.Flags().StringVar(&f.aladinID, "aladin", "", "Aladin item id")
}

func (f *lookupFlags) request() plugin.Request {
	ids := map[string]string{}
	for kind, v := range map[string]string{
		schema.IDISBN:   f.isbn,
		schema.IDISBN13: f.isbn13,
		schema.IDAladin: f.aladinID,
	} {
		if v = strings.TrimSpace(v); v != "" {
			ids[kind] = v
		}
	}
	return plugin.Request{Title: f.title, Authors: f.authors, Identifiers: ids}
}

// abortOnDone returns a flag that is set once ctx is cancelled.
func abortOnDone(ctx context.Context) (*plugin.AbortFlag, func() bool) {
	flag := &plugin.AbortFlag{}
	stop := context.AfterFunc(ctx, flag.Set)
	return flag, stop
}
