package manager

import (
	"textgate/internal/common/fsutil"
)

// SanityReport describes startup checks for the runtime and the model asset.
type SanityReport struct {
	RuntimeAvailable bool   `json:"runtime_available"`
	AssetFound       bool   `json:"asset_found"`
	AssetPath        string `json:"asset_path"`
	AssetSizeMB      int    `json:"asset_size_mb,omitempty"`
	Error            string `json:"error,omitempty"`
}

// SanityCheck validates that the runtime is linked and the asset is a readable
// file. It does not mutate state and is safe to call at any time.
func (m *Manager) SanityCheck() SanityReport {
	r := SanityReport{RuntimeAvailable: m.RuntimeAvailable(), AssetPath: m.modelPath}
	if _, err := fsutil.RegularFile(m.modelPath); err != nil {
		r.Error = err.Error()
	} else {
		r.AssetFound = true
		r.AssetSizeMB = fsutil.SizeMB(m.modelPath)
	}
	if !r.RuntimeAvailable && r.Error == "" {
		r.Error = "model runtime not available"
	}
	return r
}
