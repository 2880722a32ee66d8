package evaluator

import "testing"

func TestNumberRender(t *testing.T) {
	tests := []struct {
		value int64
		want  string
	}{
		{0, "0"},
		{42, "42"},
		{-7, "-7"},
	}
	for _, tt := range tests {
		if got := (Number{Value: tt.value}).Render(); got != tt.want {
			t.Errorf("Number(%d).Render() = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestFunctionRender(t *testing.T) {
	fn := &Function{Name: "add", Params: []string{"a", "b"}}
	if got := fn.Render(); got != "fn add(a, b)" {
		t.Errorf("Render() = %q, want %q", got, "fn add(a, b)")
	}

	noParams := &Function{Name: "zero"}
	if got := noParams.Render(); got != "fn zero()" {
		t.Errorf("Render() = %q, want %q", got, "fn zero()")
	}
}

func TestTruthiness(t *testing.T) {
	if Truthiness(Number{Value: 0}) {
		t.Error("Number 0 should be false")
	}
	if !Truthiness(Number{Value: 1}) {
		t.Error("Number 1 should be true")
	}
	if !Truthiness(Number{Value: -5}) {
		t.Error("Number -5 should be true")
	}
	if !Truthiness(&Function{Name: "f"}) {
		t.Error("functions should be true")
	}
}
