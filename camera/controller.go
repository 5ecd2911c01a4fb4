package camera

import "gonum.org/v1/gonum/spatial/r3"

// Focus is the selected bubble the camera should frame.
type Focus struct {
	Position r3.Vec
	Radius   float64
}

// Controller decides when the camera animates toward the selection
// and when it is left to the user.
//
// Locked means the camera follows its computed target. Any user gesture
// unlocks it; any selection change locks it again.
type Controller struct {
	cam    *Camera
	params Params

	interacting bool
	locked      bool
	selected    string
	hasSelected bool
}

// NewController creates a locked controller with no selection.
func NewController(cam *Camera, p Params) *Controller {
	return &Controller{cam: cam, params: p, locked: true}
}

// Camera returns the controlled camera.
func (c *Controller) Camera() *Camera { return c.cam }

// Interacting reports whether a user gesture is in progress.
func (c *Controller) Interacting() bool { return c.interacting }

// Locked reports whether the camera follows its computed target.
func (c *Controller) Locked() bool { return c.locked }

// Selected returns the selected id, if any.
func (c *Controller) Selected() (string, bool) { return c.selected, c.hasSelected }

// BeginInteraction starts a user gesture and unlocks the camera.
func (c *Controller) BeginInteraction() {
	c.interacting = true
	c.locked = false
}

// EndInteraction ends a user gesture. The camera stays unlocked until the next selection event.
func (c *Controller) EndInteraction() {
	c.interacting = false
}

// Select selects id and locks the camera.
func (c *Controller) Select(id string) {
	c.selected = id
	c.hasSelected = true
	c.locked = true
}

// ClearSelection drops the selection and locks the camera.
func (c *Controller) ClearSelection() {
	c.selected = ""
	c.hasSelected = false
	c.locked = true
}

// Update moves the camera one step toward its goal. focus is the selected
// bubble, or nil for the overview. Nothing moves while the user is
// interacting or the camera is unlocked.
func (c *Controller) Update(focus *Focus) {
	if c.interacting || !c.locked {
		return
	}
	pos, target := c.Goal(focus)
	c.cam.Position = lerpVec(c.cam.Position, pos, c.params.FollowLerp)
	c.cam.Target = lerpVec(c.cam.Target, target, c.params.FollowLerp)
}

// Goal returns the position and look-at point the camera eases toward.
func (c *Controller) Goal(focus *Focus) (pos, target r3.Vec) {
	if focus == nil {
		return r3.Vec{Z: c.cam.OverviewDistance()}, r3.Vec{}
	}
	offset := focus.Radius * c.params.FollowFactor
	if offset < c.params.MinFollowDistance {
		offset = c.params.MinFollowDistance
	}
	return r3.Add(focus.Position, r3.Vec{Z: offset}), focus.Position
}

// Orbit applies a drag in pixels as a rotation around the target.
func (c *Controller) Orbit(dx, dy float64) {
	c.cam.Orbit(-dx*c.params.OrbitSpeed, dy*c.params.OrbitSpeed)
}

// Pan applies a drag in pixels as a translation.
func (c *Controller) Pan(dx, dy float64) {
	c.cam.Pan(dx, dy)
}

// Zoom applies wheel notches; positive zooms in.
func (c *Controller) Zoom(notches float64) {
	c.cam.ZoomBy(1 - notches*c.params.ZoomStep)
}

// Resize forwards a viewport change to the camera.
func (c *Controller) Resize(w, h float64) {
	c.cam.Resize(w, h)
}
