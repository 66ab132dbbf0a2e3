package assets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/cityblocks/internal/logger"
	"github.com/Faultbox/cityblocks/pkg/formats"
)

// CatalogEntry names one asset and the locator of its mesh.
type CatalogEntry struct {
	Name    string
	Locator string
}

// Loader turns catalog entries into assets.
type Loader struct {
	fetcher  Fetcher
	backend  Backend
	textures *TextureCache
	workers  int
	log      *zap.Logger

	white Texture
}

// NewLoader creates a loader. Fetching and parsing of up to workers entries
// run concurrently; the backend is only called from the LoadCatalog caller.
func NewLoader(fetcher Fetcher, backend Backend, textures *TextureCache, workers int) *Loader {
	if workers < 1 {
		workers = 1
	}
	return &Loader{
		fetcher:  fetcher,
		backend:  backend,
		textures: textures,
		workers:  workers,
		log:      logger.Named("loader"),
	}
}

// parsedEntry is the CPU side of one asset, ready for upload.
type parsedEntry struct {
	index    int
	entry    CatalogEntry
	obj      *formats.OBJ
	mtl      *formats.MTL
	textures []textureRef
}

type textureRef struct {
	filename string // as written in the material file
	locator  string // resolved against the mesh
	fetchErr error  // only fatal if no earlier asset cached the filename
}

// LoadCatalog loads every entry. The returned library holds the assets that
// loaded; the error joins the failures of the others. A failed entry never
// leaves a partial asset behind.
func (l *Loader) LoadCatalog(ctx context.Context, entries []CatalogEntry) (*Library, error) {
	parsed := make([]*parsedEntry, len(entries))
	errs := make([]error, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for i, e := range entries {
		g.Go(func() error {
			p, err := l.parseEntry(gctx, i, e)
			if err != nil {
				errs[i] = fmt.Errorf("loading %s: %w", e.Name, err)
				return nil
			}
			parsed[i] = p
			return nil
		})
	}
	_ = g.Wait()

	lib := newLibrary(len(entries))
	for i, p := range parsed {
		if p == nil {
			continue
		}
		asset, err := l.upload(ctx, p)
		if err != nil {
			errs[i] = fmt.Errorf("loading %s: %w", p.entry.Name, err)
			continue
		}
		lib.add(asset)
		l.log.Debug("asset loaded",
			zap.String("name", asset.Name),
			zap.Int("parts", len(asset.Parts)),
			zap.Any("offset", asset.Offset))
	}

	for _, err := range errs {
		if err != nil {
			l.log.Error("asset failed", zap.Error(err))
		}
	}
	l.log.Info("catalog loaded",
		zap.Int("assets", lib.Len()),
		zap.Int("entries", len(entries)),
		zap.Int("textures", l.textures.Len()))

	return lib, errors.Join(errs...)
}

// parseEntry fetches and parses the mesh, its material libraries and its
// textures. It never touches the backend.
func (l *Loader) parseEntry(ctx context.Context, index int, e CatalogEntry) (*parsedEntry, error) {
	text, err := l.fetcher.Fetch(ctx, e.Locator)
	if err != nil {
		return nil, fmt.Errorf("mesh: %w", err)
	}
	obj := formats.ParseOBJ(string(text))
	l.logWarnings(e.Locator, obj.Warnings)

	libs := make([]string, 0, len(obj.MaterialLibs))
	for _, ref := range obj.MaterialLibs {
		loc := ResolveLocator(e.Locator, ref)
		data, err := l.fetcher.Fetch(ctx, loc)
		if err != nil {
			return nil, fmt.Errorf("material library: %w", err)
		}
		libs = append(libs, string(data))
	}
	mtl := formats.ParseMTL(strings.Join(libs, "\n"))
	l.logWarnings(e.Locator, mtl.Warnings)

	p := &parsedEntry{index: index, entry: e, obj: obj, mtl: mtl}

	// Texture bytes are fetched here so the upload phase only hits the cache.
	seen := make(map[string]bool)
	for _, name := range mtl.Order {
		for _, filename := range mtl.Materials[name].TextureRefs() {
			if seen[filename] {
				continue
			}
			seen[filename] = true

			ref := textureRef{filename: filename, locator: ResolveLocator(e.Locator, filename)}
			if _, cached := l.textures.Lookup(filename); !cached {
				if _, err := l.fetcher.Fetch(ctx, ref.locator); err != nil {
					ref.fetchErr = fmt.Errorf("texture: %w", err)
				}
			}
			p.textures = append(p.textures, ref)
		}
	}
	return p, nil
}

// upload creates the textures and drawables of a parsed entry.
func (l *Loader) upload(ctx context.Context, p *parsedEntry) (*Asset, error) {
	white, err := l.whiteTexture(ctx)
	if err != nil {
		return nil, err
	}

	textures := make(map[string]Texture, len(p.textures))
	for _, ref := range p.textures {
		tex, err := l.textures.Get(ctx, ref.filename, func(ctx context.Context) (Texture, error) {
			if ref.fetchErr != nil {
				return nil, ref.fetchErr
			}
			return l.backend.CreateTexture(ctx, TextureDescriptor{Locator: ref.locator, FlipY: true})
		})
		if err != nil {
			return nil, fmt.Errorf("texture %s: %w", ref.filename, err)
		}
		textures[ref.filename] = tex
	}

	base := DefaultMaterial(white)
	asset := &Asset{
		Name:   p.entry.Name,
		Index:  p.index,
		Bounds: EmptyBounds(),
		Parts:  make([]Part, 0, len(p.obj.Geometries)),
	}

	for _, geom := range p.obj.Geometries {
		src, ok := p.mtl.Materials[geom.Material]
		if !ok {
			l.log.Debug("material not found, using default",
				zap.String("locator", p.entry.Locator),
				zap.String("material", geom.Material))
		}

		buffers := AttributeBuffers{
			Position: geom.Data.Position,
			TexCoord: geom.Data.TexCoord,
			Normal:   geom.Data.Normal,
			Color:    NormalizeColor(geom.Data),
		}
		drawable, err := l.backend.CreateDrawable(buffers)
		if err != nil {
			return nil, fmt.Errorf("geometry %s/%s: %w", geom.Object, geom.Material, err)
		}

		asset.Parts = append(asset.Parts, Part{
			Drawable:     drawable,
			Material:     MergeMaterial(base, src, textures),
			MaterialName: geom.Material,
			VertexCount:  buffers.VertexCount(),
		})
		asset.Bounds.Extend(geom.Data.Position)
	}

	asset.Bounds = asset.Bounds.Finite()
	asset.Offset = asset.Bounds.CenteringOffset()
	return asset, nil
}

// whiteTexture returns the 1x1 fallback texture, creating it on first use.
func (l *Loader) whiteTexture(ctx context.Context) (Texture, error) {
	if l.white != nil {
		return l.white, nil
	}
	tex, err := l.backend.CreateTexture(ctx, TextureDescriptor{Pixels: WhitePixel, Width: 1, Height: 1})
	if err != nil {
		return nil, fmt.Errorf("default texture: %w", err)
	}
	l.white = tex
	return tex, nil
}

func (l *Loader) logWarnings(locator string, warnings []string) {
	for _, w := range warnings {
		l.log.Warn(w, zap.String("locator", locator))
	}
}
