// Package render turns YAML style descriptions into scoped CSS and delivers
// it to one of the supported outputs.
package render

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"stylekit/component"
	"stylekit/config"
	"stylekit/inject"
	"stylekit/registry"
	"stylekit/sheet"
	"stylekit/state"
)

// options collected from command line and configuration.
type options struct {
	format config.OutputFormat
	dst    string
	theme  string
	lint   bool
}

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("render")

	if cmd.Args().Len() == 0 {
		return errors.New("no input source has been specified")
	}

	opts := options{
		format: env.Cfg.Output.Format,
		dst:    cmd.String("out"),
		theme:  env.Cfg.Styles.DefaultTheme,
		lint:   env.Cfg.Styles.Lint || cmd.Bool("lint"),
	}
	if to := cmd.String("to"); len(to) > 0 {
		opts.format = config.OutputFormat(to)
	}
	if th := cmd.String("theme"); len(th) > 0 {
		opts.theme = th
	}
	env.Overwrite = cmd.Bool("overwrite")

	switch opts.format {
	case config.OutputFormatDocument, config.OutputFormatCSS:
	case config.OutputFormatSQLite:
		if len(opts.dst) == 0 {
			opts.dst = env.Cfg.Output.Database
		}
		if len(opts.dst) == 0 {
			return errors.New("no database has been specified for sqlite output")
		}
	default:
		log.Warn("Unknown output format requested, switching to document", zap.String("format", string(opts.format)))
		opts.format = config.OutputFormatDocument
	}
	if len(opts.dst) > 0 {
		if opts.dst, err = filepath.Abs(opts.dst); err != nil {
			return err
		}
	}

	log.Info("Processing starting", zap.Strings("sources", cmd.Args().Slice()), zap.String("destination", opts.dst), zap.String("format", string(opts.format)))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, cmd.Args().Slice(), opts, env, log)
}

// process handles rendering independently of CLI framework.
func process(ctx context.Context, sources []string, opts options, env *state.LocalEnv, log *zap.Logger) error {
	docs, err := loadSources(ctx, sources, log)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return errors.New("no style descriptions found")
	}

	if opts.format != config.OutputFormatSQLite && len(opts.dst) > 0 && !env.Overwrite {
		if _, err := os.Stat(opts.dst); err == nil {
			return fmt.Errorf("output file already exists: %s", opts.dst)
		}
	}

	page := inject.NewDocument(env.Cfg.Output.Title)
	if lang := env.Cfg.Output.Language; len(lang) > 0 {
		tag, err := language.Parse(lang)
		if err != nil {
			log.Warn("Unable to parse output language, ignoring", zap.String("language", lang), zap.Error(err))
		} else {
			page.SetLanguage(tag)
			log.Debug("Output language", zap.Stringer("tag", tag), zap.String("name", display.Self.Name(tag)))
		}
	}

	var inj registry.Injector = page
	if opts.format == config.OutputFormatSQLite {
		store, err := inject.OpenStore(opts.dst, log)
		if err != nil {
			return err
		}
		defer store.Close()
		inj = inject.Multi(page, store)
	}

	reg := registry.New(inj,
		registry.WithLogger(log),
		registry.WithPrefix(env.Cfg.Styles.ClassPrefix),
		registry.WithLint(opts.lint))

	for _, d := range docs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := mount(ctx, reg, d, opts.theme, env, log); err != nil {
			return fmt.Errorf("%s: %w", d.source, err)
		}
	}

	switch opts.format {
	case config.OutputFormatDocument:
		return writeOutput(opts.dst, page.WriteTo, log)
	case config.OutputFormatCSS:
		return writeOutput(opts.dst, stylesheet(reg).WriteTo, log)
	default:
		log.Info("Rules stored", zap.String("database", opts.dst), zap.Int("classes", len(reg.Classes())))
		return nil
	}
}

// mount attaches description (and its theme) to a new root and performs the
// first render.
func mount(ctx context.Context, reg *registry.Registry, d *described, defaultTheme string, env *state.LocalEnv, log *zap.Logger) (*component.Root, error) {
	root := component.NewRoot(reg, component.WithClassName(d.Class), component.WithLogger(log))

	name := d.Theme
	if len(name) == 0 {
		name = defaultTheme
	}
	if len(name) > 0 {
		th, ok := env.Themes.Get(name)
		if !ok {
			return nil, fmt.Errorf("unknown theme %q", name)
		}
		root.Attach(th)
	}
	root.Attach(d.Document)

	if len(d.Class) > 0 && reg.RefCount(d.Class) > 0 {
		log.Warn("Class described more than once, last description wins", zap.String("class", d.Class), zap.String("source", d.source))
	}
	if err := root.Mount(ctx); err != nil {
		return nil, err
	}
	log.Debug("Described", zap.String("class", root.ClassName()), zap.String("source", d.source), zap.String("theme", name))
	return root, nil
}

// described is a loaded document together with its origin.
type described struct {
	*sheet.Document
	source string
}
