package loader

import (
	"bufio"
	"context"
	"image"
	"io"
	"strings"

	"github.com/zeusync/gmruntime/internal/core/assets"
	"github.com/zeusync/gmruntime/internal/core/observability/log"
)

// ImageDecoder decodes a texture page blob into pixels.
type ImageDecoder interface {
	Decode(blob []byte) (*image.RGBA, error)
}

// PathComputer derives path geometry once the points are in place.
type PathComputer interface {
	Compute(p *assets.Path)
}

// SoundLoader prepares a sound record for the audio backend.
type SoundLoader interface {
	Load(s *assets.Sound) error
}

// OverrideSource supplies replacement code units keyed by name.
type OverrideSource interface {
	Overrides(ctx context.Context) (map[string]*assets.Code, error)
}

// BuiltinSet reports whether the VM implements a function natively.
type BuiltinSet interface {
	Has(name string) bool
}

// BuiltinNames is a BuiltinSet backed by a set of names.
type BuiltinNames map[string]struct{}

func NewBuiltinNames(names ...string) BuiltinNames {
	set := make(BuiltinNames, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

func (b BuiltinNames) Has(name string) bool {
	_, ok := b[name]
	return ok
}

type Option func(*Loader)

func WithLogger(logger log.Log) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

func WithImageDecoder(d ImageDecoder) Option {
	return func(l *Loader) { l.images = d }
}

func WithPathComputer(p PathComputer) Option {
	return func(l *Loader) { l.paths = p }
}

func WithSoundLoader(s SoundLoader) Option {
	return func(l *Loader) { l.sounds = s }
}

func WithOverrides(src OverrideSource) Option {
	return func(l *Loader) { l.overrides = src }
}

// WithFunctionDump writes the sorted list of non-script functions called by
// the loaded code to path. Names known to builtins are marked implemented.
func WithFunctionDump(path string, builtins BuiltinSet) Option {
	return func(l *Loader) {
		l.dumpPath = path
		l.builtins = builtins
	}
}

// ReadBuiltinNames reads one function name per line. Blank lines and lines
// starting with # are skipped.
func ReadBuiltinNames(r io.Reader) (BuiltinNames, error) {
	set := make(BuiltinNames)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		set[line] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return set, nil
}
