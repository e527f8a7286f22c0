package field

import (
	"errors"
	"testing"
)

func TestVariantTypes(t *testing.T) {
	cases := []struct {
		f    Field
		want Type
	}{
		{NewImageField(), TypeImage},
		{NewTextField(), TypeText},
		{NewPathField(), TypePath},
		{NewCustomField(), TypeCustom},
	}
	for _, c := range cases {
		if c.f.FieldType() != c.want {
			t.Fatalf("got %v want %v", c.f.FieldType(), c.want)
		}
		if c.f.FieldID() == "" {
			t.Fatalf("%v: constructor did not mint an id", c.want)
		}
	}
}

func TestStyleRecordsPerVariant(t *testing.T) {
	for _, f := range []Field{NewImageField(), NewTextField(), NewCustomField()} {
		if f.Base().Border == nil || f.Base().Shadow == nil {
			t.Fatalf("%v: border/shadow must be initialized", f.FieldType())
		}
	}
	p := NewPathField()
	if p.Border != nil || p.Shadow != nil {
		t.Fatal("path fields carry no border or shadow")
	}
}

func TestCloneIsDetached(t *testing.T) {
	f := NewTextField()
	f.Info.Name = "headline"
	f.Info.Tags = []string{"front", "cover"}
	f.Border.Color = "#102030"
	f.Content = "hello"

	c := f.Clone().(*TextField)
	c.Info.Tags[0] = "back"
	c.Border.Color = "#ffffff"
	c.Area.X = 99

	if f.Info.Tags[0] != "front" {
		t.Fatal("clone shares tag slice")
	}
	if f.Border.Color != "#102030" {
		t.Fatal("clone shares border record")
	}
	if f.Area.X != 0 {
		t.Fatal("clone shares area")
	}
	if c.Content != "hello" || c.FieldID() != f.FieldID() {
		t.Fatal("clone lost payload or id")
	}
}

func TestValidateTags(t *testing.T) {
	if err := ValidateTags([]string{"a", "b"}); err != nil {
		t.Fatalf("clean tags rejected: %v", err)
	}
	err := ValidateTags([]string{"ok", "bad|tag"})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("want ErrInvalidArgument, got %v", err)
	}
}

func TestValidateRanges(t *testing.T) {
	f := NewImageField()
	f.Border.Opacity = 1.2
	if err := Validate(f); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("opacity 1.2: want ErrInvalidArgument, got %v", err)
	}
	f.Border.Opacity = 1
	f.Border.BackgroundOpacity = -0.1
	if err := Validate(f); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("background opacity -0.1: want ErrInvalidArgument, got %v", err)
	}
	f.Border.BackgroundOpacity = 0
	f.Shadow.Blur = 11
	if err := Validate(f); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("blur 11: want ErrInvalidArgument, got %v", err)
	}
	f.Shadow.Blur = 10
	if err := Validate(f); err != nil {
		t.Fatalf("valid field rejected: %v", err)
	}
}

func TestStaleHandleWrapsNotFound(t *testing.T) {
	if !errors.Is(ErrStaleHandle, ErrNotFound) {
		t.Fatal("ErrStaleHandle must satisfy errors.Is(ErrNotFound)")
	}
}
