// Package field defines the typed field entities placed on a paginated print
// canvas, their shared sub-records and the validation rules that guard
// mutations. A field is one of four closed variants (image, text, path,
// custom) sharing the BaseField record.
package field

import (
	"fmt"

	"github.com/google/uuid"
)

// ID identifies a field for its whole lifetime. It is globally unique and
// never reassigned.
type ID string

// NewID mints a fresh field id.
func NewID() ID { return ID(uuid.NewString()) }

// Type tags the closed set of field variants.
type Type int

const (
	TypeImage Type = iota
	TypeText
	TypePath
	TypeCustom
)

func (t Type) String() string {
	switch t {
	case TypeImage:
		return "image"
	case TypeText:
		return "text"
	case TypePath:
		return "path"
	case TypeCustom:
		return "custom"
	default:
		return fmt.Sprintf("type(%d)", int(t))
	}
}

// Field is the contract shared by all variants. Type-specific payloads live
// on the concrete structs; everything the synchronization protocol touches is
// on the embedded BaseField.
type Field interface {
	FieldType() Type
	FieldID() ID
	Base() *BaseField
	Clone() Field
}

// BaseField carries the state common to every field variant. Border and
// Shadow are non-nil for every variant except path fields.
type BaseField struct {
	ID           ID
	Area         Area
	Info         Info
	Issues       Issues
	Restrictions Restrictions
	UI           UIOptions
	Border       *Border
	Shadow       *Shadow
}

func (b *BaseField) FieldID() ID      { return b.ID }
func (b *BaseField) Base() *BaseField { return b }

// clone deep-copies the base record, including tag slice and style pointers.
func (b *BaseField) clone() BaseField {
	c := *b
	if b.Info.Tags != nil {
		c.Info.Tags = append([]string(nil), b.Info.Tags...)
	}
	if b.Border != nil {
		border := *b.Border
		c.Border = &border
	}
	if b.Shadow != nil {
		shadow := *b.Shadow
		c.Shadow = &shadow
	}
	return c
}

func newBase(styled bool) BaseField {
	b := BaseField{ID: NewID(), Restrictions: DefaultRestrictions()}
	if styled {
		b.Border = &Border{Style: BorderNone, Opacity: 1, BackgroundOpacity: 1}
		b.Shadow = &Shadow{Transparency: 1}
	}
	return b
}

// ImageField places an external image asset. The source reference is opaque
// to the core.
type ImageField struct {
	BaseField
	Source string
}

func NewImageField() *ImageField { return &ImageField{BaseField: newBase(true)} }

func (f *ImageField) FieldType() Type { return TypeImage }

func (f *ImageField) Clone() Field {
	c := *f
	c.BaseField = f.BaseField.clone()
	return &c
}

// TextField holds rich text. Content is an opaque blob owned by the external
// rich-text subsystem; the core only stores and forwards it.
type TextField struct {
	BaseField
	Content string
}

func NewTextField() *TextField { return &TextField{BaseField: newBase(true)} }

func (f *TextField) FieldType() Type { return TypeText }

func (f *TextField) Clone() Field {
	c := *f
	c.BaseField = f.BaseField.clone()
	return &c
}

// PathField is a vector path. Path fields carry no border or shadow records.
type PathField struct {
	BaseField
	Data string
}

func NewPathField() *PathField { return &PathField{BaseField: newBase(false)} }

func (f *PathField) FieldType() Type { return TypePath }

func (f *PathField) Clone() Field {
	c := *f
	c.BaseField = f.BaseField.clone()
	return &c
}

// CustomField is a host-defined element with an opaque payload.
type CustomField struct {
	BaseField
	Payload string
}

func NewCustomField() *CustomField { return &CustomField{BaseField: newBase(true)} }

func (f *CustomField) FieldType() Type { return TypeCustom }

func (f *CustomField) Clone() Field {
	c := *f
	c.BaseField = f.BaseField.clone()
	return &c
}

// Validate runs the eager value checks on a field: tag delimiters and style
// ranges. It reports the first violation wrapped in ErrInvalidArgument and
// never mutates the field.
func Validate(f Field) error {
	b := f.Base()
	if err := ValidateTags(b.Info.Tags); err != nil {
		return err
	}
	if err := b.Border.Validate(); err != nil {
		return err
	}
	if err := b.Shadow.Validate(); err != nil {
		return err
	}
	return nil
}
