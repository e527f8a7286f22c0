// Package ui declares the single callback-style entry point of the surface:
// a generic clickable control surrounding tooling uses to trigger field
// operations. The core never renders it; the host raises Click on its main
// interaction thread.
package ui

// ClickFunc receives the control that was activated.
type ClickFunc func(c *Control)

// Control is a clickable button with a text label.
type Control struct {
	Label   string
	OnClick ClickFunc
}

// NewControl builds a control with a label and click callback.
func NewControl(label string, onClick ClickFunc) *Control {
	return &Control{Label: label, OnClick: onClick}
}

// Click invokes the callback, if any. Called by the host when the user
// activates the control.
func (c *Control) Click() {
	if c.OnClick != nil {
		c.OnClick(c)
	}
}
