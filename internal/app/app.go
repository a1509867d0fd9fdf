// Package app implements the application layer for taker: it declares the
// build graph, renders the Makefile, refreshes the section markers and hands
// control to make.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/taker/internal/adapters/config"  //nolint:depguard // Wired in app layer
	"go.trai.ch/taker/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/taker/internal/core/domain"
	"go.trai.ch/taker/internal/core/ports"
	"go.trai.ch/taker/internal/engine/makefile"
	"go.trai.ch/taker/internal/engine/sections"
	"go.trai.ch/taker/internal/engine/sources"
	"go.trai.ch/taker/internal/ui/output"
	"go.trai.ch/taker/internal/ui/style"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// AllRuleName is the phony rule every subsystem's top rules hang off.
const AllRuleName = "all"

// Subsystem contributes rules to the build graph.
type Subsystem interface {
	// Name identifies the subsystem in errors and logs.
	Name() string
	// WatchPaths returns the absolute config files the subsystem reads.
	WatchPaths() []string
	// Declare adds the subsystem's rules and returns those "all" should
	// depend on.
	Declare(ctx context.Context, mf *makefile.Makefile, cache *sections.Cache) ([]*makefile.Rule, error)
}

// SubsystemFactory creates a subsystem for one update pass.
type SubsystemFactory func(repo ports.Repository, parser ports.SectionParser, settings *config.Settings) Subsystem

// Sources is the factory of the source-list subsystem.
func Sources(repo ports.Repository, parser ports.SectionParser, settings *config.Settings) Subsystem {
	return sources.New(repo, parser, settings)
}

// App represents the main application logic.
type App struct {
	repo       ports.Repository
	locator    ports.Locator
	parser     ports.SectionParser
	driver     ports.BuildDriver
	watcher    ports.Watcher
	logger     ports.Logger
	subsystems []SubsystemFactory
	stdout     io.Writer
}

// New creates a new App instance with the source-list subsystem.
func New(
	repo ports.Repository,
	locator ports.Locator,
	parser ports.SectionParser,
	driver ports.BuildDriver,
	w ports.Watcher,
	log ports.Logger,
) *App {
	return &App{
		repo:       repo,
		locator:    locator,
		parser:     parser,
		driver:     driver,
		watcher:    w,
		logger:     log,
		subsystems: []SubsystemFactory{Sources},
		stdout:     os.Stdout,
	}
}

// WithSubsystems replaces the registered subsystems.
func (a *App) WithSubsystems(factories ...SubsystemFactory) *App {
	a.subsystems = factories
	return a
}

// WithOutput redirects the command summaries.
func (a *App) WithOutput(w io.Writer) *App {
	a.stdout = w
	return a
}

// Init creates the metadata directory in the repository root.
func (a *App) Init(_ context.Context) error {
	if err := a.repo.Init(); err != nil {
		return err
	}
	return a.summary(style.Check, style.Green, "Initialized task directory in "+a.repo.Root())
}

// Update regenerates the Makefile and the section markers.
func (a *App) Update(ctx context.Context) error {
	_, err := a.update(ctx)
	return err
}

// update runs one pass and returns the settings it used.
//
//nolint:cyclop // orchestration function
func (a *App) update(ctx context.Context) (*config.Settings, error) {
	if err := a.repo.RequireInitialized(); err != nil {
		return nil, err
	}

	settings, err := config.LoadSettings(a.repo)
	if err != nil {
		return nil, err
	}

	mf, err := makefile.New(a.repo, a.locator)
	if err != nil {
		return nil, err
	}
	cache := sections.New(a.repo, a.parser)

	all, err := mf.AddPhonyRule(AllRuleName, makefile.WithDescription("Builds everything"))
	if err != nil {
		return nil, err
	}
	if err := mf.Default().AddRuleDependency(all); err != nil {
		return nil, err
	}

	for _, factory := range a.subsystems {
		sub := factory(a.repo, a.parser, settings)
		rules, err := sub.Declare(ctx, mf, cache)
		if err != nil {
			return nil, zerr.With(err, "subsystem", sub.Name())
		}
		for _, rule := range rules {
			if err := all.AddRuleDependency(rule); err != nil {
				return nil, err
			}
		}
	}

	// Render first so that an invalid graph leaves the markers alone.
	text, err := mf.Dump()
	if err != nil {
		return nil, err
	}

	res, err := cache.Update(ctx)
	if err != nil {
		return nil, err
	}
	for _, path := range res.Removed {
		a.logger.Info("removed section marker " + path)
	}

	written, err := a.repo.WriteIfChanged(domain.MakefileName, []byte(text))
	if err != nil {
		return nil, err
	}

	if written {
		err = a.summary(style.Check, style.Green, "Makefile updated")
	} else {
		err = a.summary(style.Tilde, style.Slate, "Makefile up to date")
	}
	return settings, err
}

// Build updates the Makefile and runs make for target with jobs parallel
// jobs. Zero jobs selects the configured count, or the number of CPUs.
func (a *App) Build(ctx context.Context, target string, jobs int) error {
	if err := config.ValidateJobs(jobs); err != nil {
		return err
	}

	settings, err := a.update(ctx)
	if err != nil {
		return err
	}

	if jobs == 0 {
		jobs = settings.Make.Jobs
	}
	if jobs == 0 {
		jobs = runtime.NumCPU()
	}

	program, err := a.locator.LookPath(settings.Make.Program)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrExecutableNotFound.Error()), "name", settings.Make.Program)
	}

	err = a.driver.Run(ctx, ports.BuildRequest{
		Program: program,
		Dir:     a.repo.Root(),
		Jobs:    jobs,
		Target:  target,
	})
	if err != nil {
		return errors.Join(domain.ErrBuildFailed, err)
	}
	return a.summary(style.Check, style.Green, "Build finished")
}

// Clean removes the dynamic rule markers and the section markers, so the
// next build runs every dynamic rule again.
func (a *App) Clean(_ context.Context) error {
	if err := a.repo.RequireInitialized(); err != nil {
		return err
	}

	var errs error
	for _, dir := range []string{domain.MakeTargetsPath(), domain.SectionsPath()} {
		if err := a.repo.Remove(dir); err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		a.logger.Info("removed " + dir)
	}
	return errs
}

// Watch updates once and then again whenever the content of a settings
// file or source list changes, until ctx is canceled. Failed updates are
// logged and do not stop watching.
func (a *App) Watch(ctx context.Context) error {
	if err := a.repo.RequireInitialized(); err != nil {
		return err
	}
	if err := a.Update(ctx); err != nil {
		a.logger.Error(err)
	}

	paths := a.watchPaths()
	if err := a.watcher.Start(ctx, paths); err != nil {
		return zerr.Wrap(err, domain.ErrWatchFailed.Error())
	}
	defer func() { _ = a.watcher.Stop() }()
	a.logger.Info(fmt.Sprintf("watching %d files", len(paths)))

	digests := watcher.NewDigestCache()
	digests.Prime(paths)

	trigger := make(chan struct{}, 1)
	debouncer := watcher.NewDebouncer(watcher.DefaultDebounceWindow, func(changed []string) {
		if len(digests.Changed(changed)) == 0 {
			return
		}
		select {
		case trigger <- struct{}{}:
		default:
		}
	})
	defer debouncer.Stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for event := range a.watcher.Events() {
			debouncer.Add(event.Path)
		}
		return nil
	})

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-trigger:
				if err := a.Update(ctx); err != nil {
					a.logger.Error(err)
				}
			}
		}
	})

	return g.Wait()
}

// watchPaths lists the settings file and every subsystem's config files.
// The list is fixed when watching starts.
func (a *App) watchPaths() []string {
	paths := []string{a.repo.AbsPath(domain.SettingsFileName)}
	settings, err := config.LoadSettings(a.repo)
	if err != nil {
		return paths
	}
	for _, factory := range a.subsystems {
		paths = append(paths, factory(a.repo, a.parser, settings).WatchPaths()...)
	}
	return paths
}

func (a *App) summary(icon string, color lipgloss.Color, msg string) error {
	return output.Summary(output.New(a.stdout), icon, style.Term(color), msg)
}
