package main

import (
	"flag"
	"testing"
)

func TestWantsGUI(t *testing.T) {
	cases := []struct {
		args []string
		want bool
	}{
		{nil, false},
		{[]string{"-tui"}, false},
		{[]string{"-gui"}, true},
		{[]string{"--gui"}, true},
		{[]string{"-provider", "groq", "-gui"}, true},
		{[]string{"-device", "gui"}, false},
	}
	for _, c := range cases {
		if got := wantsGUI(c.args); got != c.want {
			t.Errorf("wantsGUI(%v) = %v, want %v", c.args, got, c.want)
		}
	}
}

// main() consumes -gui before flag.Parse runs, so the flag must still
// be registered or parsing aborts the process.
func TestGUIFlagDeclared(t *testing.T) {
	if flag.Lookup("gui") == nil {
		t.Fatal("gui flag not registered")
	}
}
