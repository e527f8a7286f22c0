// Package script implements the detached-snapshot side of the field
// synchronization protocol. A Handle holds a script-owned copy of one field
// plus its id; Refresh pulls authoritative state back in, Save pushes the
// allow-listed mutable subset out. Authoritative truth may change between the
// two, so every operation re-validates against the document at call time.
package script

import (
	"errors"
	"fmt"

	"github.com/printlab/fieldkit/document"
	"github.com/printlab/fieldkit/field"
	"github.com/printlab/fieldkit/geom"
	"github.com/printlab/fieldkit/zorder"
)

// Handle is a script-held, point-in-time copy of a field.
type Handle struct {
	id    field.ID
	doc   document.Service
	local field.Field
}

// Open acquires a handle for id, snapshotting current authoritative state.
func Open(doc document.Service, id field.ID) (*Handle, error) {
	f, err := doc.Field(id)
	if err != nil {
		return nil, err
	}
	return &Handle{id: id, doc: doc, local: f}, nil
}

// ID returns the owning field id.
func (h *Handle) ID() field.ID { return h.id }

// Field exposes the handle's local copy for mutation. Changes stay local
// until Save.
func (h *Handle) Field() field.Field { return h.local }

// Refresh replaces the local snapshot with current authoritative state. A
// deleted field yields field.ErrNotFound; the snapshot is kept unchanged.
func (h *Handle) Refresh() error {
	f, err := h.doc.Field(h.id)
	if err != nil {
		return err
	}
	h.local = f
	return nil
}

// Save pushes the local mutable values with default options (undo checkpoint
// and synchronous text reflow).
func (h *Handle) Save() error {
	return h.SaveWithOptions(field.DefaultSaveOptions())
}

// SaveWithOptions reconciles the local copy into authoritative state. Page,
// subPage and zIndex are never persisted this way: z-order changes go through
// ReArrange and page relocation is unsupported (copy and delete instead). On
// a deleted field it fails with field.ErrStaleHandle. Validation or
// restriction failures abort the whole call with nothing applied.
func (h *Handle) SaveWithOptions(opts field.SaveOptions) error {
	if err := field.Validate(h.local); err != nil {
		return err
	}
	if err := h.doc.ReplaceField(h.id, h.local, opts); err != nil {
		if errors.Is(err, field.ErrNotFound) {
			// The entity vanished since the handle was acquired.
			return fmt.Errorf("save %s: %w", h.id, field.ErrStaleHandle)
		}
		return err
	}
	return h.Refresh()
}

// ReArrange moves the field within its (page, subPage) stack. It fails with
// field.ErrRestrictionViolation when arrangement is disallowed and leaves the
// stack untouched. On success only this handle's zIndex is updated; other
// handles must Refresh themselves.
func (h *Handle) ReArrange(mode zorder.Mode) error {
	cur, err := h.doc.Field(h.id)
	if err != nil {
		return err
	}
	b := cur.Base()
	if !b.Restrictions.AllowArrange {
		return fmt.Errorf("rearrange %s: %w", h.id, field.ErrRestrictionViolation)
	}

	stack := h.doc.ZOrderStack(b.Area.Page, b.Area.SubPage)
	next, changed, err := zorder.Apply(stack, h.id, mode)
	if err != nil {
		return err
	}
	if changed {
		if err := h.doc.SetZOrderStack(b.Area.Page, b.Area.SubPage, next); err != nil {
			return err
		}
	}

	updated, err := h.doc.Field(h.id)
	if err != nil {
		return err
	}
	h.local.Base().Area.ZIndex = updated.Base().Area.ZIndex
	return nil
}

// BoundingBox computes the rotated corner points from the handle's snapshot.
// It reflects authoritative state only as of the last Refresh/Save.
func (h *Handle) BoundingBox() geom.BoundingBox {
	a := h.local.Base().Area
	return geom.BoundingBoxOf(a.X, a.Y, a.W, a.H, a.Rotation)
}

// RelativeToGlobal converts a point in field-local, pre-rotation coordinates
// to canvas-global coordinates, using the snapshot's area.
func (h *Handle) RelativeToGlobal(p geom.Point) geom.Point {
	a := h.local.Base().Area
	return geom.RelativeToGlobal(p, a.X, a.Y, a.Rotation)
}
