package script

import (
	"github.com/printlab/fieldkit/document"
	"github.com/printlab/fieldkit/field"
	"github.com/printlab/fieldkit/geom"
	"github.com/printlab/fieldkit/observability"
	"github.com/printlab/fieldkit/scripting"
	"github.com/printlab/fieldkit/zorder"
)

// Adapter exposes a document to the scripting engine. Every GetField call
// opens a fresh handle, so each script-side field object is its own detached
// snapshot.
type Adapter struct {
	doc *document.Document
	log observability.Logger
}

// NewAdapter wraps doc. A nil logger falls back to NopLogger.
func NewAdapter(doc *document.Document, log observability.Logger) *Adapter {
	if log == nil {
		log = observability.NopLogger{}
	}
	return &Adapter{doc: doc, log: log}
}

// GetField implements scripting.CanvasDOM.
func (a *Adapter) GetField(name string) (scripting.FieldProxy, error) {
	f, err := a.doc.FieldByName(name)
	if err != nil {
		return nil, err
	}
	h, err := Open(a.doc, f.FieldID())
	if err != nil {
		return nil, err
	}
	return &fieldProxy{h: h}, nil
}

// GetPage implements scripting.CanvasDOM.
func (a *Adapter) GetPage(page int) (scripting.PageProxy, error) {
	return &pageProxy{doc: a.doc, page: page}, nil
}

// Alert implements scripting.CanvasDOM by logging the message.
func (a *Adapter) Alert(message string) {
	a.log.Info("script alert", observability.String("message", message))
}

type fieldProxy struct {
	h *Handle
}

func (p *fieldProxy) base() *field.BaseField { return p.h.Field().Base() }

func (p *fieldProxy) ID() string   { return string(p.h.ID()) }
func (p *fieldProxy) Type() string { return p.h.Field().FieldType().String() }

func (p *fieldProxy) Name() string        { return p.base().Info.Name }
func (p *fieldProxy) SetName(name string) { p.base().Info.Name = name }

func (p *fieldProxy) Tags() []string {
	return append([]string(nil), p.base().Info.Tags...)
}

// SetTags validates eagerly: a tag containing the delimiter rejects the whole
// call and the local tag list is untouched.
func (p *fieldProxy) SetTags(tags []string) error {
	if err := field.ValidateTags(tags); err != nil {
		return err
	}
	p.base().Info.Tags = append([]string(nil), tags...)
	return nil
}

func (p *fieldProxy) Area() field.Area { return p.base().Area }

func (p *fieldProxy) SetPosition(x, y float64) {
	p.base().Area.X = x
	p.base().Area.Y = y
}

func (p *fieldProxy) SetSize(w, h float64) {
	p.base().Area.W = w
	p.base().Area.H = h
}

func (p *fieldProxy) SetRotation(deg float64) { p.base().Area.Rotation = deg }
func (p *fieldProxy) SetHidden(hidden bool)   { p.base().Area.Hidden = hidden }

func (p *fieldProxy) BoundingBox() geom.BoundingBox     { return p.h.BoundingBox() }
func (p *fieldProxy) ToGlobal(pt geom.Point) geom.Point { return p.h.RelativeToGlobal(pt) }

func (p *fieldProxy) Refresh() error { return p.h.Refresh() }
func (p *fieldProxy) Save() error    { return p.h.Save() }

func (p *fieldProxy) SaveWithOptions(opts field.SaveOptions) error {
	return p.h.SaveWithOptions(opts)
}

func (p *fieldProxy) ReArrange(mode string) error {
	m, err := zorder.ParseMode(mode)
	if err != nil {
		return err
	}
	return p.h.ReArrange(m)
}

type pageProxy struct {
	doc  *document.Document
	page int
}

func (p *pageProxy) PageNumber() int { return p.page }

func (p *pageProxy) FieldIDs() []string {
	var out []string
	for _, sub := range []int{field.SubPageLeft, field.SubPageRight} {
		for _, id := range p.doc.ZOrderStack(p.page, sub) {
			out = append(out, string(id))
		}
	}
	return out
}
