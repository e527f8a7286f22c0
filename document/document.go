// Package document hosts the authoritative field state the synchronization
// protocol reconciles against. Service is the boundary the script-side
// handles call through; Document is the in-memory implementation the editor
// mutates directly.
//
// The model is single-threaded command/response: one script call at a time,
// no locking, but every mutating call re-validates existence and restriction
// flags against current state, never against the state a handle was acquired
// under.
package document

import (
	"fmt"
	"sort"

	"github.com/printlab/fieldkit/field"
	"github.com/printlab/fieldkit/geom"
	"github.com/printlab/fieldkit/issues"
	"github.com/printlab/fieldkit/observability"
	"github.com/printlab/fieldkit/zorder"
)

// Service is the host document boundary consumed by script handles. Returned
// fields are always detached copies.
type Service interface {
	// Field returns a detached copy of the field, or field.ErrNotFound.
	Field(id field.ID) (field.Field, error)

	// ReplaceField reconciles the allow-listed mutable subset of patch into
	// authoritative state. Page, subPage, zIndex, sequence and the derived
	// position-issue flag are never taken from the patch.
	ReplaceField(id field.ID, patch field.Field, opts field.SaveOptions) error

	// ZOrderStack returns the ordered ids for (page, subPage), bottom first.
	ZOrderStack(page, subPage int) []field.ID

	// SetZOrderStack installs a new ordering. The id set must match the
	// current stack exactly; every affected field's zIndex is renumbered.
	SetZOrderStack(page, subPage int, ids []field.ID) error

	// Addressable is the page area fields may occupy without raising a
	// position issue: the trim box, excluding the surrounding bleed.
	Addressable(page, subPage int) geom.Rect

	// AppendUndo records an undo checkpoint with the host.
	AppendUndo(label string)

	// TriggerTextReflow runs downstream text reflow for the field.
	TriggerTextReflow(id field.ID)
}

// PageGeometry describes one page: the trimmed size and the bleed margin
// around it. Canvas coordinates start at the top-left of the bleed box.
type PageGeometry struct {
	TrimW float64
	TrimH float64
	Bleed float64
}

// Addressable returns the trim box in canvas coordinates.
func (g PageGeometry) Addressable() geom.Rect {
	return geom.Rect{X: g.Bleed, Y: g.Bleed, W: g.TrimW, H: g.TrimH}
}

// Document is the in-memory authoritative store.
type Document struct {
	log observability.Logger

	defaultGeom PageGeometry
	pageGeom    map[int]PageGeometry

	fields  map[field.ID]field.Field
	stacks  *zorder.Stacks
	nextSeq int

	undo    []string
	reflows []field.ID
}

// Option configures a Document.
type Option func(*Document)

// WithLogger routes the document's structured logs; default is NopLogger.
func WithLogger(l observability.Logger) Option {
	return func(d *Document) { d.log = l }
}

// WithPageGeometry overrides the geometry of a single page.
func WithPageGeometry(page int, g PageGeometry) Option {
	return func(d *Document) { d.pageGeom[page] = g }
}

// New creates an empty document whose pages default to g.
func New(g PageGeometry, opts ...Option) *Document {
	d := &Document{
		log:         observability.NopLogger{},
		defaultGeom: g,
		pageGeom:    make(map[int]PageGeometry),
		fields:      make(map[field.ID]field.Field),
		stacks:      zorder.NewStacks(),
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// AddField places f on (page, subPage): it receives the next creation
// sequence, the top zIndex of its stack and a fresh position-issue
// evaluation. The document stores its own copy.
func (d *Document) AddField(f field.Field, page, subPage int) error {
	if err := field.Validate(f); err != nil {
		return err
	}
	if _, exists := d.fields[f.FieldID()]; exists {
		return fmt.Errorf("field %s already placed: %w", f.FieldID(), field.ErrInvalidArgument)
	}

	stored := f.Clone()
	b := stored.Base()
	b.Area.Page = page
	b.Area.SubPage = subPage
	b.Area.ZIndex = d.stacks.Push(page, subPage, stored.FieldID())
	b.Info.Sequence = d.nextSeq
	d.nextSeq++
	issues.Recompute(b, d.Addressable(page, subPage))

	d.fields[stored.FieldID()] = stored
	d.log.Info("field added",
		observability.String("id", string(stored.FieldID())),
		observability.String("type", stored.FieldType().String()),
		observability.Int("page", page),
		observability.Int("zIndex", b.Area.ZIndex),
	)
	return nil
}

// DeleteField removes the field, honoring its deletion restriction. The
// remaining stack is renumbered to stay contiguous. Handles that still
// reference the id become stale.
func (d *Document) DeleteField(id field.ID) error {
	f, ok := d.fields[id]
	if !ok {
		return fmt.Errorf("delete %s: %w", id, field.ErrNotFound)
	}
	if err := issues.CheckDelete(f.Base().Restrictions); err != nil {
		return err
	}
	a := f.Base().Area
	d.stacks.Remove(a.Page, a.SubPage, id)
	delete(d.fields, id)
	d.renumber(a.Page, a.SubPage)
	d.log.Info("field deleted", observability.String("id", string(id)))
	return nil
}

// Field implements Service.
func (d *Document) Field(id field.ID) (field.Field, error) {
	f, ok := d.fields[id]
	if !ok {
		return nil, fmt.Errorf("field %s: %w", id, field.ErrNotFound)
	}
	return f.Clone(), nil
}

// FieldByName returns the lowest-sequence field with the given (non-unique)
// name. Used by the scripting surface's getField.
func (d *Document) FieldByName(name string) (field.Field, error) {
	var best field.Field
	for _, f := range d.fields {
		if f.Base().Info.Name != name {
			continue
		}
		if best == nil || f.Base().Info.Sequence < best.Base().Info.Sequence {
			best = f
		}
	}
	if best == nil {
		return nil, fmt.Errorf("field named %q: %w", name, field.ErrNotFound)
	}
	return best.Clone(), nil
}

// Fields returns detached copies of every field, in creation order.
func (d *Document) Fields() []field.Field {
	out := make([]field.Field, 0, len(d.fields))
	for _, f := range d.fields {
		out = append(out, f.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Base().Info.Sequence < out[j].Base().Info.Sequence
	})
	return out
}

// ReplaceField implements Service. Validation failures abort before any
// mutation is committed; there is no partial application.
func (d *Document) ReplaceField(id field.ID, patch field.Field, opts field.SaveOptions) error {
	cur, ok := d.fields[id]
	if !ok {
		return fmt.Errorf("replace %s: %w", id, field.ErrNotFound)
	}
	if patch.FieldType() != cur.FieldType() {
		return fmt.Errorf("variant mismatch %v != %v: %w",
			patch.FieldType(), cur.FieldType(), field.ErrInvalidArgument)
	}
	if err := field.Validate(patch); err != nil {
		return err
	}
	if err := issues.CheckAreaChange(cur.Base().Area, patch.Base().Area, cur.Base().Restrictions); err != nil {
		return err
	}

	next := cur.Clone()
	b := next.Base()
	p := patch.Base()

	geomChanged := b.Area.X != p.Area.X || b.Area.Y != p.Area.Y ||
		b.Area.W != p.Area.W || b.Area.H != p.Area.H ||
		b.Area.Rotation != p.Area.Rotation

	b.Area.X = p.Area.X
	b.Area.Y = p.Area.Y
	b.Area.W = p.Area.W
	b.Area.H = p.Area.H
	b.Area.Rotation = p.Area.Rotation
	b.Area.Hidden = p.Area.Hidden

	seq := b.Info.Sequence
	b.Info = p.Info
	b.Info.Sequence = seq
	b.Info.Tags = append([]string(nil), p.Info.Tags...)

	b.Issues.IgnoreIssues = p.Issues.IgnoreIssues
	b.Issues.CustomIssues = p.Issues.CustomIssues
	b.Restrictions = p.Restrictions
	b.UI = p.UI
	if p.Border != nil {
		border := *p.Border
		b.Border = &border
	}
	if p.Shadow != nil {
		shadow := *p.Shadow
		b.Shadow = &shadow
	}

	if geomChanged {
		issues.Recompute(b, d.Addressable(b.Area.Page, b.Area.SubPage))
	}

	d.fields[id] = next
	if opts.AddUndo {
		d.AppendUndo(fmt.Sprintf("save field %q", b.Info.Name))
	}
	if opts.HandleTextFlow && next.FieldType() == field.TypeText {
		d.TriggerTextReflow(id)
	}
	d.log.Debug("field replaced",
		observability.String("id", string(id)),
		observability.Bool("geometry", geomChanged),
		observability.Bool("undo", opts.AddUndo),
	)
	return nil
}

// ZOrderStack implements Service.
func (d *Document) ZOrderStack(page, subPage int) []field.ID {
	return d.stacks.Get(page, subPage)
}

// SetZOrderStack implements Service.
func (d *Document) SetZOrderStack(page, subPage int, ids []field.ID) error {
	cur := d.stacks.Get(page, subPage)
	if !samePermutation(cur, ids) {
		return fmt.Errorf("stack for page %d/%d must keep its id set: %w",
			page, subPage, field.ErrInvalidArgument)
	}
	d.stacks.Set(page, subPage, ids)
	d.renumber(page, subPage)
	return nil
}

// Addressable implements Service.
func (d *Document) Addressable(page, subPage int) geom.Rect {
	g, ok := d.pageGeom[page]
	if !ok {
		g = d.defaultGeom
	}
	return g.Addressable()
}

// AppendUndo implements Service.
func (d *Document) AppendUndo(label string) {
	d.undo = append(d.undo, label)
}

// TriggerTextReflow implements Service. The real reflow lives in the external
// rich-text subsystem; the document records the request.
func (d *Document) TriggerTextReflow(id field.ID) {
	d.reflows = append(d.reflows, id)
}

// UndoLabels returns the recorded undo checkpoints, oldest first.
func (d *Document) UndoLabels() []string {
	return append([]string(nil), d.undo...)
}

// Reflows returns the text-reflow requests recorded so far.
func (d *Document) Reflows() []field.ID {
	return append([]field.ID(nil), d.reflows...)
}

// renumber re-assigns zIndex = stack position for every field on the stack.
func (d *Document) renumber(page, subPage int) {
	for i, id := range d.stacks.Get(page, subPage) {
		if f, ok := d.fields[id]; ok {
			f.Base().Area.ZIndex = i
		}
	}
}

func samePermutation(a, b []field.ID) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[field.ID]int, len(a))
	for _, id := range a {
		seen[id]++
	}
	for _, id := range b {
		seen[id]--
		if seen[id] < 0 {
			return false
		}
	}
	return true
}
