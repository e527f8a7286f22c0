// Package scripting exposes the canvas field model to an embedded JavaScript
// engine. The engine never touches authoritative state directly; it works
// through proxy interfaces implemented by the script-handle layer, so every
// mutation goes through the same Save/ReArrange reconciliation a native
// caller would use.
package scripting

import (
	"context"

	"github.com/printlab/fieldkit/field"
	"github.com/printlab/fieldkit/geom"
)

// Engine represents a scripting engine (e.g. JavaScript).
type Engine interface {
	// Execute runs a script in the context of the registered canvas.
	Execute(ctx context.Context, script string) (interface{}, error)

	// RegisterCanvas installs the canvas object model into the engine.
	RegisterCanvas(dom CanvasDOM) error
}

// CanvasDOM is the document surface scripts see.
type CanvasDOM interface {
	// GetField returns a proxy for the first field with the given name
	// (names are not unique; creation order breaks ties).
	GetField(name string) (FieldProxy, error)

	// GetPage returns a page proxy by page number.
	GetPage(page int) (PageProxy, error)

	// Alert surfaces a message from the script to the host.
	Alert(message string)
}

// FieldProxy is a script-held field handle: a detached snapshot whose
// mutations stay local until Save.
type FieldProxy interface {
	ID() string
	Type() string

	Name() string
	SetName(name string)
	Tags() []string
	SetTags(tags []string) error

	Area() field.Area
	SetPosition(x, y float64)
	SetSize(w, h float64)
	SetRotation(deg float64)
	SetHidden(hidden bool)

	BoundingBox() geom.BoundingBox
	ToGlobal(p geom.Point) geom.Point

	Refresh() error
	Save() error
	SaveWithOptions(opts field.SaveOptions) error
	ReArrange(mode string) error
}

// PageProxy represents a page exposed to scripts.
type PageProxy interface {
	PageNumber() int

	// FieldIDs lists the page's fields bottom-most first, left sub-page
	// before right.
	FieldIDs() []string
}
