package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/bubblefield/components"
	"github.com/pthm-cable/bubblefield/config"
)

// AppearanceParams holds animation targets and rates.
type AppearanceParams struct {
	Lerp          float64
	HoverScale    float64
	Emissive      float64
	HoverEmissive float64
	Opacity       float64
	BobAmplitude  float64
	BobFrequency  float64
}

// AppearanceParamsFromConfig builds params from the appearance config section.
func AppearanceParamsFromConfig(cfg config.AppearanceConfig) AppearanceParams {
	return AppearanceParams{
		Lerp:          cfg.Lerp,
		HoverScale:    cfg.HoverScale,
		Emissive:      cfg.Emissive,
		HoverEmissive: cfg.HoverEmissive,
		Opacity:       cfg.Opacity,
		BobAmplitude:  cfg.BobAmplitude,
		BobFrequency:  cfg.BobFrequency,
	}
}

// InitialAppearance is the state of a freshly spawned bubble.
func (p AppearanceParams) InitialAppearance() components.Appearance {
	return components.Appearance{Scale: 1, Emissive: p.Emissive, Opacity: p.Opacity}
}

// BobOffset returns the vertical display offset at time t for a bubble of radius r.
// Display only; the layout never sees it.
func (p AppearanceParams) BobOffset(t, radius float64) float64 {
	return math.Sin(t*p.BobFrequency+radius) * p.BobAmplitude
}

// Highlight names the selected and hovered entities for a frame.
type Highlight struct {
	Selected    ecs.Entity
	HasSelected bool
	Hovered     ecs.Entity
	HasHovered  bool
}

// AppearanceSystem eases each bubble toward its hover/selection target.
// When a bubble is selected every other bubble shrinks and fades to nothing.
type AppearanceSystem struct {
	filter *ecs.Filter1[components.Appearance]
	params AppearanceParams
}

// NewAppearanceSystem creates an appearance system.
func NewAppearanceSystem(w *ecs.World, params AppearanceParams) *AppearanceSystem {
	return &AppearanceSystem{
		filter: ecs.NewFilter1[components.Appearance](w),
		params: params,
	}
}

// Params returns the animation parameters.
func (s *AppearanceSystem) Params() AppearanceParams {
	return s.params
}

// Update moves every Appearance one lerp step toward its target.
func (s *AppearanceSystem) Update(h Highlight) {
	query := s.filter.Query()
	for query.Next() {
		app := query.Get()
		e := query.Entity()

		selected := h.HasSelected && h.Selected == e
		hovered := selected || (h.HasHovered && h.Hovered == e)
		visible := !h.HasSelected || selected

		*app = stepAppearance(*app, s.params, visible, hovered)
	}
}

func stepAppearance(a components.Appearance, p AppearanceParams, visible, hovered bool) components.Appearance {
	var scale, emissive, opacity float64
	if visible {
		scale, emissive, opacity = 1, p.Emissive, p.Opacity
		if hovered {
			scale, emissive = p.HoverScale, p.HoverEmissive
		}
	}
	return components.Appearance{
		Scale:    lerp(a.Scale, scale, p.Lerp),
		Emissive: lerp(a.Emissive, emissive, p.Lerp),
		Opacity:  lerp(a.Opacity, opacity, p.Lerp),
	}
}
