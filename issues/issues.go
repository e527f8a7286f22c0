// Package issues evaluates positional issues against the page's addressable
// area and gates mutating operations on a field's restriction flags. Gate
// failures surface field.ErrRestrictionViolation and the caller must leave
// state untouched.
package issues

import (
	"fmt"
	"math"

	"github.com/printlab/fieldkit/field"
	"github.com/printlab/fieldkit/geom"
)

// PositionIssue reports whether any part of the field's rotated bounding box
// falls outside the addressable rect (page trim minus bleed). The box is
// convex, so checking its corners is sufficient.
func PositionIssue(a field.Area, addressable geom.Rect) bool {
	box := geom.BoundingBoxOf(a.X, a.Y, a.W, a.H, a.Rotation)
	for _, c := range box.Corners() {
		if !addressable.Contains(c) {
			return true
		}
	}
	return false
}

// Recompute refreshes the derived HasPositionIssues flag after a geometry
// change. CustomIssues is script-owned and never touched here.
func Recompute(b *field.BaseField, addressable geom.Rect) {
	b.Issues.HasPositionIssues = PositionIssue(b.Area, addressable)
}

// CheckArrange gates z-order changes.
func CheckArrange(r field.Restrictions) error {
	if !r.AllowArrange {
		return fmt.Errorf("z-order arrangement not allowed: %w", field.ErrRestrictionViolation)
	}
	return nil
}

// CheckDelete gates field deletion.
func CheckDelete(r field.Restrictions) error {
	if !r.AllowDeletion {
		return fmt.Errorf("deletion not allowed: %w", field.ErrRestrictionViolation)
	}
	return nil
}

const coordEps = 1e-9

func moved(a, b float64) bool { return math.Abs(a-b) > coordEps }

// CheckAreaChange gates a geometry update from old to next against the
// restriction flags in force: the movement mode constrains translation, and
// the resize/rotation flags gate size and angle changes. Page, subPage and
// zIndex are not compared; they are immutable through this path by contract.
func CheckAreaChange(old, next field.Area, r field.Restrictions) error {
	dx := moved(old.X, next.X)
	dy := moved(old.Y, next.Y)
	switch r.Movement {
	case field.MoveFree:
	case field.MoveFixed:
		if dx || dy {
			return fmt.Errorf("movement is fixed: %w", field.ErrRestrictionViolation)
		}
	case field.MoveHorizontal:
		if dy {
			return fmt.Errorf("movement restricted to horizontal: %w", field.ErrRestrictionViolation)
		}
	case field.MoveVertical:
		if dx {
			return fmt.Errorf("movement restricted to vertical: %w", field.ErrRestrictionViolation)
		}
	}
	if !r.AllowResizing && (moved(old.W, next.W) || moved(old.H, next.H)) {
		return fmt.Errorf("resizing not allowed: %w", field.ErrRestrictionViolation)
	}
	if !r.AllowRotation && moved(geom.NormalizeDegrees(old.Rotation), geom.NormalizeDegrees(next.Rotation)) {
		return fmt.Errorf("rotation not allowed: %w", field.ErrRestrictionViolation)
	}
	return nil
}
