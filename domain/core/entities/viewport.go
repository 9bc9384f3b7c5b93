package entities

import (
	"math"

	"loom/domain/config"
)

// Viewport is the affine transform between screen space and canvas
// space: a pan position (the canvas point at the screen center) plus a
// uniform zoom, over a fixed screen size in pixels.
//
// Pan and ZoomAt silently ignore non-finite input instead of returning
// an error. These sit on the per-frame input path, where the caller
// cannot usefully react to a failure; the registry operations on Canvas
// are the fail-loud counterpart.
type Viewport struct {
	// X is the canvas-space X coordinate at the screen center
	X float64 `json:"x"`
	// Y is the canvas-space Y coordinate at the screen center
	Y float64 `json:"y"`
	// Zoom is the scale factor (1.0 = 100%)
	Zoom float64 `json:"zoom"`
	// ScreenWidth is the output width in pixels
	ScreenWidth float64 `json:"screen_width"`
	// ScreenHeight is the output height in pixels
	ScreenHeight float64 `json:"screen_height"`
}

// NewViewport creates a viewport centered at the origin with zoom 1.0
func NewViewport(screenWidth, screenHeight float64) *Viewport {
	return &Viewport{
		X:            0,
		Y:            0,
		Zoom:         1.0,
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
	}
}

// DefaultViewport creates a 1920x1080 viewport at the origin
func DefaultViewport() *Viewport {
	return NewViewport(1920.0, 1080.0)
}

// Pan moves the viewport by a screen-pixel delta. The delta is divided
// by the zoom so panning tracks the pointer at any zoom level, and the
// resulting position is clamped per axis to the coordinate bounds.
// Non-finite deltas leave the viewport unchanged.
func (v *Viewport) Pan(dx, dy float64) {
	if !isFinite(dx) || !isFinite(dy) {
		return
	}

	newX := v.X + dx/v.Zoom
	newY := v.Y + dy/v.Zoom

	v.X = clamp(newX, config.MinCoordinate, config.MaxCoordinate)
	v.Y = clamp(newY, config.MinCoordinate, config.MaxCoordinate)
}

// ZoomAt scales the zoom by factor while keeping the canvas point
// (centerX, centerY) fixed on screen. Zoom is clamped to
// [MinZoom, MaxZoom] and the recentered position to the coordinate
// bounds. Non-finite inputs leave the viewport unchanged.
func (v *Viewport) ZoomAt(factor, centerX, centerY float64) {
	if !isFinite(factor) || !isFinite(centerX) || !isFinite(centerY) {
		return
	}

	oldZoom := v.Zoom
	v.Zoom = clamp(oldZoom*factor, config.MinZoom, config.MaxZoom)

	zoomRatio := v.Zoom / oldZoom
	newX := centerX - (centerX-v.X)*zoomRatio
	newY := centerY - (centerY-v.Y)*zoomRatio

	v.X = clamp(newX, config.MinCoordinate, config.MaxCoordinate)
	v.Y = clamp(newY, config.MinCoordinate, config.MaxCoordinate)
}

// Reset returns the viewport to the origin at zoom 1.0
func (v *Viewport) Reset() {
	v.X = 0
	v.Y = 0
	v.Zoom = 1.0
}

// Contains reports whether the canvas point (x, y) lies within the
// visible rectangle
func (v *Viewport) Contains(x, y float64) bool {
	halfWidth := (v.ScreenWidth / 2.0) / v.Zoom
	halfHeight := (v.ScreenHeight / 2.0) / v.Zoom

	return x >= v.X-halfWidth && x <= v.X+halfWidth &&
		y >= v.Y-halfHeight && y <= v.Y+halfHeight
}

// VisibleRect returns the visible canvas-space rectangle as
// (minX, minY, maxX, maxY)
func (v *Viewport) VisibleRect() (float64, float64, float64, float64) {
	halfWidth := (v.ScreenWidth / 2.0) / v.Zoom
	halfHeight := (v.ScreenHeight / 2.0) / v.Zoom

	return v.X - halfWidth, v.Y - halfHeight, v.X + halfWidth, v.Y + halfHeight
}

// IntersectsRect reports whether the given canvas-space rectangle
// overlaps the visible rectangle. Renderers can use this with
// Node.Bounds to cull by full extent rather than anchor point.
func (v *Viewport) IntersectsRect(minX, minY, maxX, maxY float64) bool {
	vMinX, vMinY, vMaxX, vMaxY := v.VisibleRect()
	return minX <= vMaxX && maxX >= vMinX && minY <= vMaxY && maxY >= vMinY
}

// ScreenToCanvas converts screen-pixel coordinates to canvas
// coordinates. Inverse of CanvasToScreen up to floating-point rounding.
func (v *Viewport) ScreenToCanvas(screenX, screenY float64) (float64, float64) {
	canvasX := (screenX-v.ScreenWidth/2.0)/v.Zoom + v.X
	canvasY := (screenY-v.ScreenHeight/2.0)/v.Zoom + v.Y
	return canvasX, canvasY
}

// CanvasToScreen converts canvas coordinates to screen-pixel
// coordinates
func (v *Viewport) CanvasToScreen(canvasX, canvasY float64) (float64, float64) {
	screenX := (canvasX-v.X)*v.Zoom + v.ScreenWidth/2.0
	screenY := (canvasY-v.Y)*v.Zoom + v.ScreenHeight/2.0
	return screenX, screenY
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
