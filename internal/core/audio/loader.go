package audio

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/zeusync/gmruntime/internal/core/assets"
	"github.com/zeusync/gmruntime/internal/core/observability/log"
)

var ErrSoundDecode = errors.New("sound decode failed")

// mp3 output is always 16 bit stereo.
const mp3BytesPerSample = 4

// Loader probes embedded sound data for its container and stream
// parameters. Playback is not its concern.
type Loader struct {
	logger log.Log
}

func NewLoader(logger log.Log) *Loader {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Loader{logger: logger.With(log.String("component", "audio"))}
}

// Load fills the format fields of s. Sounds without embedded data are
// classified by the extension of their external file only.
func (l *Loader) Load(s *assets.Sound) error {
	if len(s.Data) == 0 {
		s.Format = formatFromName(s.File)
		return nil
	}

	s.Format = Sniff(s.Data)
	switch s.Format {
	case assets.SoundWAV:
		if err := l.probeWAV(s); err != nil {
			return fmt.Errorf("%w: sound %q: %v", ErrSoundDecode, s.Name, err)
		}
	case assets.SoundMP3:
		if err := l.probeMP3(s); err != nil {
			return fmt.Errorf("%w: sound %q: %v", ErrSoundDecode, s.Name, err)
		}
	case assets.SoundOGG:
		l.logger.Debug("ogg stream left unprobed", log.String("sound", s.Name))
	default:
		l.logger.Warn("unrecognised embedded sound data",
			log.String("sound", s.Name),
			log.Int("bytes", len(s.Data)),
		)
	}
	return nil
}

// Sniff identifies a sound container by its leading bytes.
func Sniff(data []byte) assets.SoundFormat {
	switch {
	case bytes.HasPrefix(data, []byte("RIFF")) && len(data) >= 12 && string(data[8:12]) == "WAVE":
		return assets.SoundWAV
	case bytes.HasPrefix(data, []byte("OggS")):
		return assets.SoundOGG
	case bytes.HasPrefix(data, []byte("ID3")):
		return assets.SoundMP3
	case len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0:
		return assets.SoundMP3
	default:
		return assets.SoundUnknown
	}
}

func formatFromName(name string) assets.SoundFormat {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".wav":
		return assets.SoundWAV
	case ".mp3":
		return assets.SoundMP3
	case ".ogg":
		return assets.SoundOGG
	default:
		return assets.SoundUnknown
	}
}

func (l *Loader) probeWAV(s *assets.Sound) error {
	dec := wav.NewDecoder(bytes.NewReader(s.Data))
	if !dec.IsValidFile() {
		return errors.New("not a valid wav file")
	}

	if err := dec.FwdToPCM(); err != nil {
		return err
	}
	if dec.PCMChunk == nil || dec.AvgBytesPerSec == 0 {
		return errors.New("missing pcm data")
	}

	s.SampleRate = int(dec.SampleRate)
	s.Channels = int(dec.NumChans)
	s.Duration = time.Duration(dec.PCMSize) * time.Second / time.Duration(dec.AvgBytesPerSec)

	l.logger.Debug("wav probed",
		log.String("sound", s.Name),
		log.Int("sample_rate", s.SampleRate),
		log.Int("channels", s.Channels),
		log.Duration("duration", s.Duration),
	)
	return nil
}

func (l *Loader) probeMP3(s *assets.Sound) error {
	dec, err := mp3.NewDecoder(bytes.NewReader(s.Data))
	if err != nil {
		return err
	}

	s.SampleRate = dec.SampleRate()
	s.Channels = 2
	if n := dec.Length(); n > 0 && s.SampleRate > 0 {
		samples := n / mp3BytesPerSample
		s.Duration = time.Duration(samples) * time.Second / time.Duration(s.SampleRate)
	}

	l.logger.Debug("mp3 probed",
		log.String("sound", s.Name),
		log.Int("sample_rate", s.SampleRate),
		log.Duration("duration", s.Duration),
	)
	return nil
}
