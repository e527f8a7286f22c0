package scripting

import (
	"context"

	"github.com/dop251/goja"

	"github.com/printlab/fieldkit/field"
	"github.com/printlab/fieldkit/geom"
)

type GojaEngine struct {
	vm *goja.Runtime
}

func NewEngine() *GojaEngine {
	vm := goja.New()
	return &GojaEngine{vm: vm}
}

func (e *GojaEngine) Execute(ctx context.Context, script string) (interface{}, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done := make(chan struct{})
	defer close(done)
	defer e.vm.ClearInterrupt()

	go func() {
		select {
		case <-ctx.Done():
			e.vm.Interrupt(ctx.Err())
		case <-done:
		}
	}()

	val, err := e.vm.RunString(script)
	if err != nil {
		if interruptedErr, ok := err.(*goja.InterruptedError); ok {
			if cause := interruptedErr.Unwrap(); cause != nil {
				return nil, cause
			}
			return nil, context.Canceled
		}
		return nil, err
	}
	return val.Export(), nil
}

// RegisterCanvas installs `app`, `getField` and `getPage` in the global
// scope. Field objects carry accessor properties backed by the proxy's local
// snapshot plus the synchronization methods; proxy errors become JS
// exceptions.
func (e *GojaEngine) RegisterCanvas(dom CanvasDOM) error {
	appObj := e.vm.NewObject()
	err := appObj.Set("alert", func(call goja.FunctionCall) goja.Value {
		msg := ""
		if len(call.Arguments) > 0 {
			msg = call.Arguments[0].String()
		}
		dom.Alert(msg)
		return goja.Undefined()
	})
	if err != nil {
		return err
	}
	if err := e.vm.Set("app", appObj); err != nil {
		return err
	}

	if err := e.vm.Set("getField", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			return goja.Undefined()
		}
		proxy, err := dom.GetField(call.Arguments[0].String())
		if err != nil || proxy == nil {
			return goja.Null()
		}
		return e.fieldObject(proxy)
	}); err != nil {
		return err
	}

	return e.vm.Set("getPage", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			return goja.Undefined()
		}
		page, err := dom.GetPage(int(call.Arguments[0].ToInteger()))
		if err != nil || page == nil {
			return goja.Null()
		}
		obj := e.vm.NewObject()
		_ = obj.Set("pageNumber", page.PageNumber())
		_ = obj.Set("fieldIds", page.FieldIDs())
		return obj
	})
}

func (e *GojaEngine) throw(err error) {
	panic(e.vm.NewGoError(err))
}

// accessor wires one JS property to snapshot-backed get/set funcs.
func (e *GojaEngine) accessor(obj *goja.Object, name string, get func() goja.Value, set func(v goja.Value)) {
	getter := e.vm.ToValue(func(goja.FunctionCall) goja.Value { return get() })
	var setter goja.Value
	if set != nil {
		setter = e.vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) > 0 {
				set(call.Arguments[0])
			}
			return goja.Undefined()
		})
	}
	_ = obj.DefineAccessorProperty(name, getter, setter, goja.FLAG_TRUE, goja.FLAG_TRUE)
}

func (e *GojaEngine) fieldObject(p FieldProxy) *goja.Object {
	obj := e.vm.NewObject()

	e.accessor(obj, "id", func() goja.Value { return e.vm.ToValue(p.ID()) }, nil)
	e.accessor(obj, "type", func() goja.Value { return e.vm.ToValue(p.Type()) }, nil)
	e.accessor(obj, "page", func() goja.Value { return e.vm.ToValue(p.Area().Page) }, nil)
	e.accessor(obj, "subPage", func() goja.Value { return e.vm.ToValue(p.Area().SubPage) }, nil)
	e.accessor(obj, "zIndex", func() goja.Value { return e.vm.ToValue(p.Area().ZIndex) }, nil)

	e.accessor(obj, "name",
		func() goja.Value { return e.vm.ToValue(p.Name()) },
		func(v goja.Value) { p.SetName(v.String()) })
	e.accessor(obj, "tags",
		func() goja.Value { return e.vm.ToValue(p.Tags()) },
		func(v goja.Value) {
			var tags []string
			if err := e.vm.ExportTo(v, &tags); err != nil {
				e.throw(err)
			}
			if err := p.SetTags(tags); err != nil {
				e.throw(err)
			}
		})

	e.accessor(obj, "x",
		func() goja.Value { return e.vm.ToValue(p.Area().X) },
		func(v goja.Value) { p.SetPosition(v.ToFloat(), p.Area().Y) })
	e.accessor(obj, "y",
		func() goja.Value { return e.vm.ToValue(p.Area().Y) },
		func(v goja.Value) { p.SetPosition(p.Area().X, v.ToFloat()) })
	e.accessor(obj, "width",
		func() goja.Value { return e.vm.ToValue(p.Area().W) },
		func(v goja.Value) { p.SetSize(v.ToFloat(), p.Area().H) })
	e.accessor(obj, "height",
		func() goja.Value { return e.vm.ToValue(p.Area().H) },
		func(v goja.Value) { p.SetSize(p.Area().W, v.ToFloat()) })
	e.accessor(obj, "rotation",
		func() goja.Value { return e.vm.ToValue(p.Area().Rotation) },
		func(v goja.Value) { p.SetRotation(v.ToFloat()) })
	e.accessor(obj, "hidden",
		func() goja.Value { return e.vm.ToValue(p.Area().Hidden) },
		func(v goja.Value) { p.SetHidden(v.ToBoolean()) })

	_ = obj.Set("save", func(call goja.FunctionCall) goja.Value {
		if err := p.Save(); err != nil {
			e.throw(err)
		}
		return goja.Undefined()
	})
	_ = obj.Set("saveWithOptions", func(call goja.FunctionCall) goja.Value {
		opts := field.DefaultSaveOptions()
		if len(call.Arguments) > 0 {
			arg := call.Arguments[0].ToObject(e.vm)
			if v := arg.Get("addUndo"); v != nil && !goja.IsUndefined(v) {
				opts.AddUndo = v.ToBoolean()
			}
			if v := arg.Get("handleTextFlow"); v != nil && !goja.IsUndefined(v) {
				opts.HandleTextFlow = v.ToBoolean()
			}
		}
		if err := p.SaveWithOptions(opts); err != nil {
			e.throw(err)
		}
		return goja.Undefined()
	})
	_ = obj.Set("refresh", func(call goja.FunctionCall) goja.Value {
		if err := p.Refresh(); err != nil {
			e.throw(err)
		}
		return goja.Undefined()
	})
	_ = obj.Set("reArrange", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			return goja.Undefined()
		}
		if err := p.ReArrange(call.Arguments[0].String()); err != nil {
			e.throw(err)
		}
		return goja.Undefined()
	})
	_ = obj.Set("getBoundingBox", func(call goja.FunctionCall) goja.Value {
		return e.boxObject(p.BoundingBox())
	})
	_ = obj.Set("convertRelativeFieldPositionToGlobalLocation", func(call goja.FunctionCall) goja.Value {
		var pt geom.Point
		if len(call.Arguments) > 0 {
			arg := call.Arguments[0].ToObject(e.vm)
			if v := arg.Get("x"); v != nil {
				pt.X = v.ToFloat()
			}
			if v := arg.Get("y"); v != nil {
				pt.Y = v.ToFloat()
			}
		}
		return e.pointObject(p.ToGlobal(pt))
	})

	return obj
}

func (e *GojaEngine) pointObject(p geom.Point) *goja.Object {
	obj := e.vm.NewObject()
	_ = obj.Set("x", p.X)
	_ = obj.Set("y", p.Y)
	return obj
}

func (e *GojaEngine) boxObject(b geom.BoundingBox) *goja.Object {
	obj := e.vm.NewObject()
	_ = obj.Set("topLeft", e.pointObject(b.TopLeft))
	_ = obj.Set("topRight", e.pointObject(b.TopRight))
	_ = obj.Set("bottomRight", e.pointObject(b.BottomRight))
	_ = obj.Set("bottomLeft", e.pointObject(b.BottomLeft))
	_ = obj.Set("x", b.X)
	_ = obj.Set("y", b.Y)
	_ = obj.Set("width", b.W)
	_ = obj.Set("height", b.H)
	return obj
}
