package cli

import "testing"

func TestBraceDelta(t *testing.T) {
	tests := []struct {
		line string
		want int
	}{
		{`class T {`, 1},
		{`}`, -1},
		{`class T { m() { return 1 } }`, 0},
		{`let s = "{{{"`, 0},
		{`let s = "a\"{"`, 0},
		{`{ // }`, 1},
		{`1 + 2`, 0},
	}
	for _, tt := range tests {
		if got := braceDelta(tt.line); got != tt.want {
			t.Errorf("braceDelta(%q) = %d, want %d", tt.line, got, tt.want)
		}
	}
}

func TestIsSourceFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a.seal", true},
		{"dir/b.funseal", true},
		{"c.go", false},
		{"seal", false},
	}
	for _, tt := range tests {
		if got := isSourceFile(tt.path); got != tt.want {
			t.Errorf("isSourceFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestSessionRunCollectsDiagnostics(t *testing.T) {
	session := NewSession(nil)
	ctx := session.Run(`class T { m() { return this.#missing } }`, "<test>")
	if !ctx.HasErrors() {
		t.Fatalf("unresolved reference produced no diagnostics")
	}
	if ctx.Errors[0].File != "<test>" {
		t.Errorf("diagnostic file = %q, want <test>", ctx.Errors[0].File)
	}
}

func TestSessionStatePersists(t *testing.T) {
	session := NewSession(nil)
	if ctx := session.Run(`class T { private #x = 3  get() { return this.#x } }`, "<test>"); ctx.HasErrors() {
		t.Fatalf("definition failed: %v", ctx.Errors)
	}
	ctx := session.Run(`new T().get()`, "<test>")
	if ctx.HasErrors() {
		t.Fatalf("use failed: %v", ctx.Errors)
	}
}
