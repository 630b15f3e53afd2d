package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/zeusync/gmruntime/internal/core/assets"
	"github.com/zeusync/gmruntime/internal/core/assets/pack"
	"github.com/zeusync/gmruntime/internal/core/audio"
	"github.com/zeusync/gmruntime/internal/core/catalog"
	"github.com/zeusync/gmruntime/internal/core/graphics"
	"github.com/zeusync/gmruntime/internal/core/observability/log"
)

var (
	ErrAlreadyLoaded    = errors.New("loader already used")
	ErrUnresolvedCode   = errors.New("unresolved code reference")
	ErrUnresolvedObject = errors.New("unresolved object reference")
	ErrUnresolvedAsset  = errors.New("unresolved asset reference")
	ErrCountMismatch    = errors.New("count mismatch")
	ErrParentCycle      = errors.New("object parent cycle")
	ErrTextureDecode    = errors.New("texture page decode failed")

	ErrDuplicateKey  = catalog.ErrDuplicateKey
	ErrCorruptPack   = pack.ErrCorruptPack
	ErrUnexpectedEOF = pack.ErrUnexpectedEOF
	ErrDecode        = pack.ErrDecode
	ErrTrailingData  = pack.ErrTrailingData
)

// Loader turns an asset pack into a linked Catalog. A Loader is single use.
type Loader struct {
	logger    log.Log
	images    ImageDecoder
	paths     PathComputer
	sounds    SoundLoader
	overrides OverrideSource
	builtins  BuiltinSet
	dumpPath  string

	used atomic.Bool
}

func New(opts ...Option) *Loader {
	l := &Loader{logger: log.NewNop()}
	for _, opt := range opts {
		opt(l)
	}
	if l.images == nil {
		l.images = graphics.NewTextureDecoder()
	}
	if l.paths == nil {
		l.paths = graphics.NewPathGeometry()
	}
	if l.sounds == nil {
		l.sounds = audio.NewLoader(l.logger)
	}
	return l
}

// session is the state of one Load call.
type session struct {
	*Loader
	ctx      context.Context
	r        *pack.Reader
	cat      *catalog.Catalog
	log      log.Log
	pending  map[string]*assets.Code
	calls    map[string]struct{}
	nextPath int32
}

// Load reads the whole pack from r. Any structural or referential error
// aborts the load and no catalog is returned. ctx is only consulted before
// reading starts and while discovering overrides.
func (l *Loader) Load(ctx context.Context, r io.Reader) (*catalog.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !l.used.CompareAndSwap(false, true) {
		return nil, ErrAlreadyLoaded
	}

	s := &session{
		Loader: l,
		ctx:    ctx,
		r:      pack.NewReader(r),
		cat:    catalog.New(),
		log:    l.logger.With(log.String("load_id", uuid.NewString())),
	}
	if l.dumpPath != "" {
		s.calls = make(map[string]struct{})
	}

	start := time.Now()
	if err := s.run(); err != nil {
		_ = s.cat.Close()
		s.log.Error("load failed", log.Err(err), log.Int64("offset", s.r.Offset()))
		return nil, err
	}

	s.log.Info("load complete",
		log.String("game", s.cat.Header.Name),
		log.Int64("bytes", s.r.Offset()),
		log.Duration("elapsed", time.Since(start)),
	)
	return s.cat, nil
}

type step struct {
	category pack.Category
	fn       func() (int, error)
}

func (s *session) run() error {
	steps := []step{
		{pack.CategoryHeader, s.loadHeader},
		{pack.CategoryAssetIndex, s.loadAssetIndex},
		{pack.CategoryScripts, s.loadScripts},
		{pack.CategoryCode, s.loadCode},
		{pack.CategoryExtensions, s.loadExtensions},
		{pack.CategoryGlobalInit, s.loadGlobalInit},
		{pack.CategoryObjects, s.loadObjects},
		{pack.CategoryBackgrounds, s.loadBackgrounds},
		{pack.CategoryRooms, s.loadRooms},
		{pack.CategorySprites, s.loadSprites},
		{pack.CategoryFonts, s.loadFonts},
		{pack.CategoryTexturePages, s.loadTexturePages},
		{pack.CategoryTextureGroups, s.loadTextureGroups},
		{pack.CategoryTileSets, s.loadTileSets},
		{pack.CategorySounds, s.loadSounds},
		{pack.CategoryPaths, s.loadPaths},
		{pack.CategoryShaders, s.loadShaders},
	}

	for _, st := range steps {
		n, err := st.fn()
		if err != nil {
			return fmt.Errorf("load %s: %w", st.category, err)
		}
		s.log.Debug("category loaded",
			log.String("category", st.category.String()),
			log.Int("count", n),
		)
	}

	if err := s.r.ExpectEOF(); err != nil {
		return err
	}
	if err := s.verify(); err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	if s.calls != nil {
		if err := s.dumpFunctions(); err != nil {
			return fmt.Errorf("dump functions: %w", err)
		}
	}
	return nil
}

func (s *session) code(id int32) (*assets.Code, error) {
	c, ok := s.cat.Code.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: code %d", ErrUnresolvedCode, id)
	}
	return c, nil
}

// optionalCode resolves id unless it is NoID.
func (s *session) optionalCode(id int32) (*assets.Code, error) {
	if id == assets.NoID {
		return nil, nil
	}
	return s.code(id)
}

func (s *session) loadHeader() (int, error) {
	if err := s.r.ReadRecord(&s.cat.Header); err != nil {
		return 0, err
	}
	s.log.Info("pack header",
		log.String("game", s.cat.Header.Name),
		log.Int32("major", s.cat.Header.Major),
		log.Int32("minor", s.cat.Header.Minor),
		log.Int32("build", s.cat.Header.Build),
	)
	return 1, nil
}

func (s *session) loadAssetIndex() (int, error) {
	return pack.ReadCategory(s.r, func(_ int, rec *assets.AssetIndex) error {
		return s.cat.AssetIndex.Add(rec.Name, *rec)
	})
}

func (s *session) loadScripts() (int, error) {
	return pack.ReadCategory(s.r, func(_ int, rec *assets.Script) error {
		return s.cat.AddScript(rec)
	})
}

func (s *session) loadCode() (int, error) {
	if s.overrides != nil {
		found, err := s.overrides.Overrides(s.ctx)
		if err != nil {
			return 0, fmt.Errorf("discover overrides: %w", err)
		}
		s.pending = found
	}
	// The override set only lives for this category.
	defer func() { s.pending = nil }()

	applied := make(map[string]struct{}, len(s.pending))
	n, err := pack.ReadCategory(s.r, func(_ int, rec *assets.Code) error {
		code := rec
		if o, ok := s.pending[rec.Name]; ok {
			code = o.Clone()
			code.Name = rec.Name
			code.AssetID = rec.AssetID
			code.ParentAssetID = rec.ParentAssetID
			applied[rec.Name] = struct{}{}

			s.log.Info("code overridden",
				log.String("name", rec.Name),
				log.Int32("id", rec.AssetID),
				log.String("digest_before", fmt.Sprintf("%016x", rec.Digest())),
				log.String("digest_after", fmt.Sprintf("%016x", code.Digest())),
			)
		}
		if s.calls != nil {
			for _, name := range code.Calls() {
				s.calls[name] = struct{}{}
			}
		}
		return s.cat.Code.Add(code.AssetID, code)
	})
	if err != nil {
		return n, err
	}

	for name := range s.pending {
		if _, ok := applied[name]; !ok {
			s.log.Warn("override matches no code unit", log.String("name", name))
		}
	}
	return n, nil
}

func (s *session) loadExtensions() (int, error) {
	return pack.ReadCategory(s.r, func(_ int, rec *assets.Extension) error {
		s.cat.Extensions = append(s.cat.Extensions, rec)
		return nil
	})
}

func (s *session) loadGlobalInit() (int, error) {
	count, err := s.r.ReadCount()
	if err != nil {
		return 0, err
	}
	for i := 0; i < count; i++ {
		id, err := s.r.ReadInt32()
		if err != nil {
			return i, err
		}
		code, err := s.code(id)
		if err != nil {
			return i, fmt.Errorf("global init %d: %w", i, err)
		}
		s.cat.GlobalInit = append(s.cat.GlobalInit, code)
	}
	return count, nil
}

func (s *session) loadBackgrounds() (int, error) {
	return pack.ReadCategory(s.r, func(_ int, rec *assets.Background) error {
		return s.cat.Backgrounds.Add(rec.AssetIndex, rec)
	})
}

func (s *session) loadSprites() (int, error) {
	return pack.ReadCategory(s.r, func(_ int, rec *assets.Sprite) error {
		return s.cat.Sprites.Add(rec.AssetIndex, rec)
	})
}

func (s *session) loadFonts() (int, error) {
	return pack.ReadCategory(s.r, func(_ int, rec *assets.Font) error {
		s.cat.Fonts = append(s.cat.Fonts, rec)
		return nil
	})
}

func (s *session) loadTexturePages() (int, error) {
	count, err := s.r.ReadCount()
	if err != nil {
		return 0, err
	}
	for i := 0; i < count; i++ {
		name, err := s.r.ReadString()
		if err != nil {
			return i, err
		}
		blob, err := s.r.ReadBlob()
		if err != nil {
			return i, err
		}

		img, err := s.images.Decode(blob)
		if err != nil {
			return i, fmt.Errorf("%w: page %q: %v", ErrTextureDecode, name, err)
		}

		page := &assets.TexturePage{Name: name, Image: img, Binding: assets.Unbound}
		if err = s.cat.TexturePages.Add(name, page); err != nil {
			return i, err
		}
	}
	return count, nil
}

func (s *session) loadTextureGroups() (int, error) {
	return pack.ReadCategory(s.r, func(_ int, rec *assets.TextureGroup) error {
		return s.cat.TextureGroups.Add(rec.GroupName, rec)
	})
}

func (s *session) loadTileSets() (int, error) {
	return pack.ReadCategory(s.r, func(_ int, rec *assets.TileSet) error {
		return s.cat.TileSets.Add(rec.AssetIndex, rec)
	})
}

func (s *session) loadSounds() (int, error) {
	return pack.ReadCategory(s.r, func(_ int, rec *assets.Sound) error {
		if err := s.sounds.Load(rec); err != nil {
			return err
		}
		return s.cat.Sounds.Add(rec.AssetIndex, rec)
	})
}

// loadPaths registers paths under ids assigned in stream order.
func (s *session) loadPaths() (int, error) {
	return pack.ReadCategory(s.r, func(_ int, rec *assets.PathRecord) error {
		p := &assets.Path{
			Name:      rec.Name,
			Closed:    rec.IsClosed,
			Smooth:    rec.IsSmooth,
			Precision: rec.Precision,
			Points:    append([]assets.PathPoint(nil), rec.Points...),
		}
		s.paths.Compute(p)

		id := s.nextPath
		s.nextPath++
		return s.cat.Paths.Add(id, p)
	})
}

func (s *session) loadShaders() (int, error) {
	return pack.ReadCategory(s.r, func(_ int, rec *assets.Shader) error {
		return s.cat.Shaders.Add(rec.AssetIndex, rec)
	})
}
