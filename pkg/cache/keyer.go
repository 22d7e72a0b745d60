package cache

import "fmt"

// Keyer generates cache keys.
type Keyer interface {
	// FrameKey identifies a layout pass of a catalog.
	FrameKey(catalogHash string, opts FrameKeyOpts) string
	// ArtifactKey identifies a rendered output of a layout pass.
	ArtifactKey(frameHash string, opts ArtifactKeyOpts) string
}

// FrameKeyOpts holds everything besides the catalog that determines a pass.
type FrameKeyOpts struct {
	ConfigHash     string  `json:"config"`
	Offset         float64 `json:"offset"`
	ViewportWidth  float64 `json:"viewport_width"`
	ViewportHeight float64 `json:"viewport_height"`
}

// ArtifactKeyOpts holds the render settings of an artifact.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Labels     bool    `json:"labels"`
	Scale      float64 `json:"scale"`
	Background string  `json:"background"`
	// Phases holds one letter per card phase; empty when no provider is used.
	Phases string `json:"phases,omitempty"`
}

// DefaultKeyer hashes key inputs with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// FrameKey returns "frame:<hash>".
func (DefaultKeyer) FrameKey(catalogHash string, opts FrameKeyOpts) string {
	return hashKey("frame", catalogHash, opts)
}

// ArtifactKey returns "artifact:<format>:<hash>".
func (DefaultKeyer) ArtifactKey(frameHash string, opts ArtifactKeyOpts) string {
	return hashKey(fmt.Sprintf("artifact:%s", opts.Format), frameHash, opts)
}

var _ Keyer = DefaultKeyer{}
