package feeders

import "testing"

// TestErrorWrapperFunctions exercises each wrapper function, verifying it
// returns a non-nil error that wraps its declared sentinel.
func TestErrorWrapperFunctions(t *testing.T) {
	if err := wrapTomlMapError("cfg", 7); err == nil {
		t.Fatal("expected toml map error")
	}
	if err := wrapTomlConvertError(7, "string", "cfg.field"); err == nil {
		t.Fatal("expected toml convert error")
	}
	if err := wrapTomlSliceElementError(7, "string", "cfg.items", 1); err == nil {
		t.Fatal("expected toml slice element error")
	}
	if err := wrapTomlArrayError("cfg.items", 9); err == nil {
		t.Fatal("expected toml array error")
	}
	if err := wrapYamlFieldCannotBeSetError(); err == nil {
		t.Fatal("expected yaml field cannot be set error")
	}
	if err := wrapYamlUnsupportedFieldTypeError("complex128"); err == nil {
		t.Fatal("expected yaml unsupported field type error")
	}
	if err := wrapYamlTypeConversionError("int", "string"); err == nil {
		t.Fatal("expected yaml type conversion error")
	}
	if err := wrapYamlBoolConversionError("notabool"); err == nil {
		t.Fatal("expected yaml bool conversion error")
	}
}
