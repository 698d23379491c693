package logformat

import (
	"testing"

	"github.com/standardbeagle/logram/internal/types"
)

func TestNewRegistrySeedsBuiltins(t *testing.T) {
	r := NewRegistry()
	for _, name := range []types.LogFormatName{
		types.FormatLinux, types.FormatOpenStack, types.FormatSpark,
		types.FormatHDFS, types.FormatHPC, types.FormatProxifier,
		types.FormatAndroid, types.FormatHealthApp,
	} {
		f, ok := r.Get(name)
		if !ok {
			t.Fatalf("expected builtin format %s to be registered", name)
		}
		if !f.IsBuiltin {
			t.Errorf("expected %s to be marked IsBuiltin", name)
		}
		if f.Template == "" {
			t.Errorf("expected %s to have a non-empty template", name)
		}
	}
}

func TestRegisterRejectsBuiltinNameCollision(t *testing.T) {
	r := NewRegistry()
	err := r.Register(LogFormat{Name: types.FormatLinux, Template: "<Content>"})
	if err == nil {
		t.Fatal("expected collision error registering over a builtin name")
	}
	var collision *BuiltinNameCollisionError
	if !asCollision(err, &collision) {
		t.Errorf("expected *BuiltinNameCollisionError, got %T", err)
	}
}

func TestRegisterCustomFormat(t *testing.T) {
	r := NewRegistry()
	custom := LogFormat{Name: "MyApp", Template: `<Time> <Level> <Content>`}
	if err := r.Register(custom); err != nil {
		t.Fatalf("unexpected error registering custom format: %v", err)
	}
	got, ok := r.Get("MyApp")
	if !ok {
		t.Fatal("expected custom format to be retrievable")
	}
	if got.IsBuiltin {
		t.Error("expected custom format to not be marked IsBuiltin")
	}
}

func asCollision(err error, target **BuiltinNameCollisionError) bool {
	if c, ok := err.(*BuiltinNameCollisionError); ok {
		*target = c
		return true
	}
	return false
}
