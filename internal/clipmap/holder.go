package clipmap

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Faultbox/planet-clipmap/internal/logger"
)

// Holder publishes the current geometry to readers on other goroutines.
// A rebuild replaces the whole geometry at once; readers never observe a
// partially built mesh.
type Holder struct {
	current atomic.Pointer[snapshot]
}

type snapshot struct {
	geometry *Geometry
	version  uint64
}

// NewHolder builds the initial geometry from cfg.
func NewHolder(cfg Config) (*Holder, error) {
	g, err := New(cfg)
	if err != nil {
		return nil, err
	}
	h := &Holder{}
	h.current.Store(&snapshot{geometry: g, version: 1})
	return h, nil
}

// Load returns the current geometry and its version.
func (h *Holder) Load() (*Geometry, uint64) {
	s := h.current.Load()
	return s.geometry, s.version
}

// Version increases by one on every successful rebuild.
func (h *Holder) Version() uint64 {
	return h.current.Load().version
}

// Rebuild builds a geometry from cfg and publishes it. The previous geometry
// stays current if the build fails.
func (h *Holder) Rebuild(cfg Config) (*Geometry, error) {
	g, err := New(cfg)
	if err != nil {
		logger.Warn("clipmap rebuild rejected", zap.Error(err))
		return nil, err
	}
	for {
		old := h.current.Load()
		if h.current.CompareAndSwap(old, &snapshot{geometry: g, version: old.version + 1}) {
			break
		}
	}
	logger.Info("clipmap rebuilt",
		zap.Int("resolution", cfg.Resolution),
		zap.Int("levels", cfg.Levels),
		zap.Int("vertices", g.VertexCount()),
	)
	return g, nil
}
