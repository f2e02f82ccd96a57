package framestore

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Manifest describes an animation on disk. Relative frame paths are
// resolved against the manifest's directory.
//
//	loops: 0
//	delay: 10
//	frames:
//	  - path: 000.gif
//	  - path: 001.gif
//	    delay: 50
type Manifest struct {
	Loops  *int            `yaml:"loops"`
	Delay  *uint16         `yaml:"delay"`
	Frames []ManifestFrame `yaml:"frames"`
}

type ManifestFrame struct {
	Path  string  `yaml:"path"`
	Delay *uint16 `yaml:"delay"`
}

func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if len(m.Frames) == 0 {
		return nil, fmt.Errorf("%w: manifest %s lists no frames", ErrNoFrames, path)
	}
	base := filepath.Dir(path)
	for i := range m.Frames {
		p := m.Frames[i].Path
		if p == "" {
			return nil, fmt.Errorf("manifest %s: frame %d has no path", path, i)
		}
		if !filepath.IsAbs(p) {
			m.Frames[i].Path = filepath.Join(base, p)
		}
	}
	return &m, nil
}

// Delays resolves per-frame delays, falling back to the manifest default and
// then to fallback.
func (m *Manifest) Delays(fallback uint16) []uint16 {
	def := fallback
	if m.Delay != nil {
		def = *m.Delay
	}
	out := make([]uint16, len(m.Frames))
	for i, f := range m.Frames {
		out[i] = def
		if f.Delay != nil {
			out[i] = *f.Delay
		}
	}
	return out
}

func (m *Manifest) Paths() []string {
	out := make([]string, len(m.Frames))
	for i, f := range m.Frames {
		out[i] = f.Path
	}
	return out
}
