package document

import (
	"strings"

	"github.com/bnema/formview/internal/infrastructure/config"
)

// Manifest lists the renderer assets a document loads, relative to the
// asset base URI.
type Manifest struct {
	Stylesheets []string
	Scripts     []string
	ContainerID string
}

// DefaultManifest returns the stock Form.io asset set.
func DefaultManifest() Manifest {
	return Manifest{
		Stylesheets: config.DefaultStylesheets(),
		Scripts:     config.DefaultScripts(),
		ContainerID: "formio",
	}
}

// ManifestFromConfig builds a manifest from the assets section.
func ManifestFromConfig(cfg config.AssetsConfig) Manifest {
	m := Manifest{
		Stylesheets: append([]string(nil), cfg.Stylesheets...),
		Scripts:     append([]string(nil), cfg.Scripts...),
		ContainerID: strings.TrimSpace(cfg.ContainerID),
	}
	if m.ContainerID == "" {
		m.ContainerID = DefaultManifest().ContainerID
	}
	return m
}
