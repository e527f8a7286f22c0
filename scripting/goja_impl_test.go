package scripting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/printlab/fieldkit/field"
	"github.com/printlab/fieldkit/geom"
)

func TestGojaEngine_ContextCancellation(t *testing.T) {
	engine := NewEngine()

	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Millisecond)
	defer cancel()

	if _, err := engine.Execute(ctx, "while (true) {}"); err == nil || !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context deadline error, got %v", err)
	}

	if _, err := engine.Execute(context.Background(), "1 + 1"); err != nil {
		t.Fatalf("engine should recover after cancellation, got %v", err)
	}
}

func TestGojaEngine_ImmediateCancel(t *testing.T) {
	engine := NewEngine()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := engine.Execute(ctx, "42"); err == nil || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled error, got %v", err)
	}
}

// stubProxy is an in-memory FieldProxy for exercising the JS glue without the
// document layer.
type stubProxy struct {
	id        string
	name      string
	tags      []string
	area      field.Area
	saved     int
	lastOpts  field.SaveOptions
	rearrange []string
	failNext  error
}

func (s *stubProxy) ID() string            { return s.id }
func (s *stubProxy) Type() string          { return "image" }
func (s *stubProxy) Name() string          { return s.name }
func (s *stubProxy) SetName(n string)      { s.name = n }
func (s *stubProxy) Tags() []string        { return s.tags }
func (s *stubProxy) Area() field.Area      { return s.area }
func (s *stubProxy) SetHidden(h bool)      { s.area.Hidden = h }
func (s *stubProxy) SetRotation(d float64) { s.area.Rotation = d }

func (s *stubProxy) SetTags(tags []string) error {
	if err := field.ValidateTags(tags); err != nil {
		return err
	}
	s.tags = tags
	return nil
}

func (s *stubProxy) SetPosition(x, y float64) { s.area.X, s.area.Y = x, y }
func (s *stubProxy) SetSize(w, h float64)     { s.area.W, s.area.H = w, h }

func (s *stubProxy) BoundingBox() geom.BoundingBox {
	return geom.BoundingBoxOf(s.area.X, s.area.Y, s.area.W, s.area.H, s.area.Rotation)
}

func (s *stubProxy) ToGlobal(p geom.Point) geom.Point {
	return geom.RelativeToGlobal(p, s.area.X, s.area.Y, s.area.Rotation)
}

func (s *stubProxy) Refresh() error { return s.failNext }

func (s *stubProxy) Save() error {
	return s.SaveWithOptions(field.DefaultSaveOptions())
}

func (s *stubProxy) SaveWithOptions(opts field.SaveOptions) error {
	if s.failNext != nil {
		return s.failNext
	}
	s.saved++
	s.lastOpts = opts
	return nil
}

func (s *stubProxy) ReArrange(mode string) error {
	if s.failNext != nil {
		return s.failNext
	}
	s.rearrange = append(s.rearrange, mode)
	return nil
}

type stubDOM struct {
	fields map[string]*stubProxy
	alerts []string
}

func (d *stubDOM) GetField(name string) (FieldProxy, error) {
	if p, ok := d.fields[name]; ok {
		return p, nil
	}
	return nil, field.ErrNotFound
}

func (d *stubDOM) GetPage(page int) (PageProxy, error) {
	return stubPage(page), nil
}

func (d *stubDOM) Alert(msg string) { d.alerts = append(d.alerts, msg) }

type stubPage int

func (p stubPage) PageNumber() int    { return int(p) }
func (p stubPage) FieldIDs() []string { return []string{"f1", "f2"} }

func register(t *testing.T, dom *stubDOM) *GojaEngine {
	t.Helper()
	e := NewEngine()
	if err := e.RegisterCanvas(dom); err != nil {
		t.Fatal(err)
	}
	return e
}

func TestRegisterCanvasAccessors(t *testing.T) {
	p := &stubProxy{id: "f-1", name: "logo", area: field.Area{X: 10, Y: 20, W: 30, H: 40}}
	dom := &stubDOM{fields: map[string]*stubProxy{"logo": p}}
	e := register(t, dom)

	out, err := e.Execute(context.Background(), `
		var f = getField("logo");
		f.x = 11;
		f.height = 44;
		f.hidden = true;
		f.name = "brand";
		[f.x, f.width, f.id, f.type];
	`)
	if err != nil {
		t.Fatal(err)
	}
	vals := out.([]interface{})
	if vals[0] != float64(11) || vals[1] != float64(30) || vals[2] != "f-1" || vals[3] != "image" {
		t.Fatalf("values: %#v", vals)
	}
	if p.area.X != 11 || p.area.H != 44 || !p.area.Hidden || p.name != "brand" {
		t.Fatalf("proxy not updated: %+v name=%q", p.area, p.name)
	}
}

func TestRegisterCanvasMethods(t *testing.T) {
	p := &stubProxy{id: "f-1", name: "logo"}
	dom := &stubDOM{fields: map[string]*stubProxy{"logo": p}}
	e := register(t, dom)

	_, err := e.Execute(context.Background(), `
		var f = getField("logo");
		f.save();
		f.saveWithOptions({addUndo: false});
		f.reArrange("moveBack");
		app.alert("done");
	`)
	if err != nil {
		t.Fatal(err)
	}
	if p.saved != 2 {
		t.Fatalf("saves: %d", p.saved)
	}
	if p.lastOpts.AddUndo || !p.lastOpts.HandleTextFlow {
		t.Fatalf("options: %+v", p.lastOpts)
	}
	if len(p.rearrange) != 1 || p.rearrange[0] != "moveBack" {
		t.Fatalf("rearrange: %v", p.rearrange)
	}
	if len(dom.alerts) != 1 || dom.alerts[0] != "done" {
		t.Fatalf("alerts: %v", dom.alerts)
	}
}

func TestRegisterCanvasThrowsProxyErrors(t *testing.T) {
	p := &stubProxy{id: "f-1", name: "logo", failNext: field.ErrRestrictionViolation}
	dom := &stubDOM{fields: map[string]*stubProxy{"logo": p}}
	e := register(t, dom)

	if _, err := e.Execute(context.Background(), `getField("logo").save()`); err == nil {
		t.Fatal("expected a thrown exception for proxy failure")
	}

	out, err := e.Execute(context.Background(), `
		var caught = null;
		try { getField("logo").reArrange("moveFront"); } catch (e) { caught = String(e); }
		caught !== null;
	`)
	if err != nil {
		t.Fatal(err)
	}
	if out != true {
		t.Fatal("exception not catchable in JS")
	}
}

func TestRegisterCanvasPage(t *testing.T) {
	e := register(t, &stubDOM{})
	out, err := e.Execute(context.Background(), `
		var p = getPage(3);
		[p.pageNumber, p.fieldIds.length];
	`)
	if err != nil {
		t.Fatal(err)
	}
	vals := out.([]interface{})
	if vals[0] != int64(3) || vals[1] != int64(2) {
		t.Fatalf("page values: %#v", vals)
	}
}
