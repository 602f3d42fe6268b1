package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/seraphln/pyre-check/internal/config"
	"github.com/seraphln/pyre-check/internal/pipeline"
	"github.com/seraphln/pyre-check/internal/typestore"
	"github.com/seraphln/pyre-check/internal/typesystem"
)

const (
	colorName  = "\033[36m"
	colorReset = "\033[0m"
)

type options struct {
	configPath string
	json       bool
	concise    bool
	hash       bool
	storePath  string
	snapshot   string
	color      bool
}

func main() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)

	opts, annotations, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	opts.color = useColor(os.Stdout)
	if err := run(context.Background(), opts, annotations, os.Stdout); err != nil {
		log.Printf("pyretype: %v", err)
		os.Exit(1)
	}
}

func parseFlags(args []string) (options, []string, error) {
	var opts options
	fs := flag.NewFlagSet("pyretype", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: pyretype [flags] annotation...\n\n")
		fs.PrintDefaults()
	}
	fs.StringVar(&opts.configPath, "config", "", "settings file (default: nearest "+config.SettingsFileName+")")
	fs.BoolVar(&opts.json, "json", false, "print the structured JSON serialization")
	fs.BoolVar(&opts.concise, "concise", false, "print the concise rendering")
	fs.BoolVar(&opts.hash, "hash", false, "append the structural hash")
	fs.StringVar(&opts.storePath, "store", "", "archive types into this SQLite file")
	fs.StringVar(&opts.snapshot, "snapshot", "", "snapshot label used with -store")
	if err := fs.Parse(args); err != nil {
		return opts, nil, err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return opts, nil, flag.ErrHelp
	}
	return opts, fs.Args(), nil
}

func useColor(f *os.File) bool {
	if config.IsTestMode {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func loadSettings(path string) (*config.Settings, error) {
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		if path, err = config.FindSettings(wd); err != nil {
			return nil, err
		}
	}
	if path == "" {
		return config.ParseSettings(nil, config.SettingsFileName)
	}
	return config.LoadSettings(path)
}

func run(ctx context.Context, opts options, annotations []string, out io.Writer) error {
	settings, err := loadSettings(opts.configPath)
	if err != nil {
		return err
	}
	aliases, err := pipeline.Aliases(settings.Aliases)
	if err != nil {
		return err
	}

	cache := typesystem.NewComparisonCache()
	if settings.Cache.Enabled {
		cache.Enable()
	}

	processors := []pipeline.Processor{
		pipeline.ParseProcessor{},
		pipeline.ConstructProcessor{Aliases: typesystem.MapAliases(aliases)},
		pipeline.DequalifyProcessor{Renames: settings.Dequalify},
	}

	storePath, label := settings.Store.Path, settings.Store.Snapshot
	if opts.storePath != "" {
		storePath = opts.storePath
	}
	if opts.snapshot != "" {
		label = opts.snapshot
	}
	if storePath != "" {
		store, err := typestore.Open(ctx, storePath)
		if err != nil {
			return err
		}
		defer store.Close()
		snapshot, err := store.EnsureSnapshot(ctx, label)
		if err != nil {
			return err
		}
		processors = append(processors, pipeline.ArchiveProcessor{Store: store, Snapshot: snapshot})
	}

	p := pipeline.New(processors...)
	failed := 0
	for _, annotation := range annotations {
		pctx := pipeline.NewPipelineContext(annotation, annotation)
		pctx.Context = ctx
		pctx = p.Run(pctx)
		if err := pctx.Err(); err != nil {
			log.Printf("%s: %v", annotation, err)
			failed++
			continue
		}
		line, err := render(opts, cache, pctx.Type)
		if err != nil {
			log.Printf("%s: %v", annotation, err)
			failed++
			continue
		}
		name := annotation
		if opts.color {
			name = colorName + name + colorReset
		}
		fmt.Fprintf(out, "%s: %s\n", name, line)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d annotations failed", failed, len(annotations))
	}
	return nil
}

func render(opts options, cache *typesystem.ComparisonCache, t typesystem.Type) (string, error) {
	var line string
	switch {
	case opts.json:
		data, err := typesystem.MarshalJSON(t)
		if err != nil {
			return "", err
		}
		line = string(data)
	case opts.concise:
		line = typesystem.Concise(t)
	default:
		line = t.String()
	}
	if opts.hash {
		line = fmt.Sprintf("%s #%016x", line, cache.Hash(t))
	}
	return line, nil
}
