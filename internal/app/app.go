// Package app wires the window, renderer, asset catalog and scene into the
// interactive city assembler and runs its loop.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/cityblocks/internal/assets"
	"github.com/Faultbox/cityblocks/internal/config"
	"github.com/Faultbox/cityblocks/internal/controls"
	"github.com/Faultbox/cityblocks/internal/engine/camera"
	"github.com/Faultbox/cityblocks/internal/engine/input"
	"github.com/Faultbox/cityblocks/internal/engine/renderer"
	"github.com/Faultbox/cityblocks/internal/engine/ui2d"
	"github.com/Faultbox/cityblocks/internal/engine/window"
	"github.com/Faultbox/cityblocks/internal/logger"
	"github.com/Faultbox/cityblocks/internal/menu"
	"github.com/Faultbox/cityblocks/internal/scene"
	"github.com/Faultbox/cityblocks/pkg/math"
)

// ErrNoAssets is returned when not a single catalog entry could be loaded.
var ErrNoAssets = errors.New("no catalog asset loaded")

// dialogGrace is how long Close waits for open dialogs.
const dialogGrace = 2 * time.Second

// App is the running application.
type App struct {
	cfg      *config.Config
	window   *window.Window
	renderer *renderer.Renderer
	ui       *ui2d.Context
	input    *input.Input
	fetcher  *assets.CachingFetcher
	library  *assets.Library
	session  *session

	sceneCamera camera.Camera
	menuCamera  camera.Camera
	light       math.Vec3

	title string
	log   *zap.Logger
}

// New opens the window and loads the asset catalog. Entries that fail to
// load are logged and left out of the menu.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{
		cfg:   cfg,
		input: input.New(),
		light: math.V3(cfg.Scene.LightDirection).Normalize(),
		log:   logger.Named("app"),
	}

	a.log.Info("initializing",
		zap.String("title", cfg.Window.Title),
		zap.String("assets", cfg.Assets.Root),
		zap.Int("catalog", len(cfg.Assets.Catalog)),
	)

	var err error
	a.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	a.fetcher = assets.NewCachingFetcher(assets.NewFetcher(cfg.Assets.FetchTimeout), assets.NewResourceCache())

	// Renderer AFTER window, since the OpenGL context must exist.
	w, h := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:      w,
		Height:     h,
		ClearColor: cfg.Scene.ClearColor,
	}, a.fetcher)
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	// The UI works in window points, the space mouse events arrive in.
	uiRenderer, err := ui2d.New(a.window.Size())
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create UI renderer: %w", err)
	}
	a.ui = ui2d.NewContext(uiRenderer)

	if err := a.loadCatalog(ctx); err != nil {
		a.Close()
		return nil, err
	}

	registry := scene.NewRegistry(a.library)
	a.session = newSession(
		registry,
		controls.New(cfg.Controls),
		menu.New(cfg.Assets.Catalog),
		nativeDialogs{},
		cfg.Scene.SnapshotPath,
		a.log,
	)

	extent := a.library.MaxExtent()
	a.sceneCamera = camera.Scene(extent, cfg.Scene.CameraFactor)
	a.menuCamera = camera.Menu(extent, cfg.Scene.MenuFactor)
	a.log.Debug("cameras placed",
		zap.Float32("extent", extent),
		zap.Float32("scene_radius", a.sceneCamera.Position.Z),
		zap.Float32("menu_radius", a.menuCamera.Position.Z),
	)

	return a, nil
}

func (a *App) loadCatalog(ctx context.Context) error {
	root := assets.RootLocator(a.cfg.Assets.Root)
	entries := make([]assets.CatalogEntry, len(a.cfg.Assets.Catalog))
	for i, e := range a.cfg.Assets.Catalog {
		entries[i] = assets.CatalogEntry{Name: e.Name, Locator: assets.ResolveLocator(root, e.Mesh)}
	}

	start := time.Now()
	loader := assets.NewLoader(a.fetcher, a.renderer, assets.NewTextureCache(), a.cfg.Assets.Workers)
	lib, err := loader.LoadCatalog(ctx, entries)
	if err != nil {
		// Individual failures are already logged by the loader.
		a.log.Warn("catalog partially loaded", zap.Int("loaded", lib.Len()), zap.Int("entries", len(entries)))
	}
	if lib.Len() == 0 {
		if err == nil {
			return ErrNoAssets
		}
		return fmt.Errorf("%w: %w", ErrNoAssets, err)
	}

	hits, misses := a.fetcher.Cache().Stats()
	a.log.Info("assets ready",
		zap.Int("assets", lib.Len()),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("cache_hits", hits),
		zap.Int("cache_misses", misses),
	)
	a.library = lib
	return nil
}

// Run runs the render loop until the window is closed or ctx is done.
func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting render loop")

	frames := 0
	fpsTimer := time.Now()
	for !a.session.quit {
		if ctx.Err() != nil {
			break
		}

		if a.input.Update() {
			a.session.quit = true
		}
		for _, ev := range a.input.Events() {
			a.ui.Input().Feed(ev)
			switch {
			case ev.Type == input.EventWindowResize:
				a.renderer.Resize(a.window.DrawableSize())
				a.ui.Resize(a.window.Size())
				continue
			case ev.Type == input.EventMouseDown && a.ui.Captures(float32(ev.MouseX), float32(ev.MouseY)):
				// Clicks on the panel are not menu clicks
				continue
			}
			a.session.handle(ev)
		}
		a.session.drain()

		// Lay the panel out before drawing so its edits show this frame
		a.ui.Begin()
		a.session.panelUI(a.ui)
		a.updateTitle()

		a.render()
		a.window.SwapBuffers()

		frames++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frames))
			frames = 0
			fpsTimer = time.Now()
		}
	}

	a.log.Info("render loop stopped")
	return nil
}

func (a *App) updateTitle() {
	title := a.cfg.Window.Title + " | " + a.session.status()
	if title != a.title {
		a.window.SetTitle(title)
		a.title = title
	}
}

// render draws the scene, then the menu thumbnails over a cleared depth
// buffer, then the panel laid out since ui.Begin.
func (a *App) render() {
	w, h := a.renderer.Size()
	a.renderer.Begin()

	a.renderer.SetFrame(a.frame(&a.sceneCamera, w, h))
	for _, in := range a.session.registry.Instances() {
		if !in.Visible || in.Asset == nil {
			continue
		}
		world := in.WorldMatrix()
		for _, part := range in.Asset.Parts {
			a.renderer.DrawPart(part, world)
		}
	}

	a.renderer.ClearDepth()
	a.renderer.SetFrame(a.frame(&a.menuCamera, w, h))
	for _, item := range a.session.menu.Items() {
		asset := a.library.At(item.Index)
		if asset == nil {
			continue
		}
		world := item.WorldMatrix(asset.Offset)
		for _, part := range asset.Parts {
			a.renderer.DrawPart(part, world)
		}
	}

	a.ui.End()
	a.renderer.End()
}

func (a *App) frame(c *camera.Camera, w, h int) renderer.Frame {
	return renderer.Frame{
		View:           c.ViewMatrix(),
		Projection:     c.ProjectionMatrix(w, h),
		CameraPosition: c.Position,
		LightDirection: a.light,
		AmbientLight:   a.cfg.Scene.AmbientLight,
	}
}

// Close waits briefly for open dialogs, then releases the renderer and
// window.
func (a *App) Close() {
	a.log.Info("closing")
	if a.session != nil && !a.session.shutdown(dialogGrace) {
		a.log.Warn("dialogs still open at shutdown")
	}
	if a.ui != nil {
		a.ui.Close()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
