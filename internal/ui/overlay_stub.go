//go:build !ebiten

package ui

import "planetgen/internal/core"

// Overlay is a no-op placeholder used when the ebiten build tag is absent.
type Overlay struct{}

// NewOverlay constructs a stub overlay.
func NewOverlay(core.Generator, float64) *Overlay { return &Overlay{} }

// SetScale is a no-op in headless builds.
func (o *Overlay) SetScale(float64) {}

// Update is a no-op in headless builds.
func (o *Overlay) Update() {}

// Draw is a no-op placeholder.
func (o *Overlay) Draw(any) {}
