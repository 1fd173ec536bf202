package main

import (
	"testing"

	"github.com/vsariola/levelmeter/monitor"
)

func TestParseLevels(t *testing.T) {
	got, err := parseLevels("0, 0.5,1.2,,0")
	if err != nil {
		t.Fatal(err)
	}
	want := []float32{0, 0.5, 1.2, 0}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if _, err := parseLevels("0.5,loud"); err == nil {
		t.Fatal("expected an error for a non-numeric level")
	}
}

func TestPeakSourceLevels(t *testing.T) {
	next, err := peakSource("0.25,1", "", 60)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []float32{0.25, 1} {
		if v, ok := next(); !ok || v != want {
			t.Fatalf("got %v %v, want %v", v, ok, want)
		}
	}
	if _, ok := next(); ok {
		t.Fatal("source should be exhausted")
	}
}

func TestSetAccent(t *testing.T) {
	model := monitor.NewModel(monitor.NewBroker())
	if err := setAccent(model, "#102030"); err != nil {
		t.Fatal(err)
	}
	if a := model.Meter().Accent(); a.R != 0x10 || a.G != 0x20 || a.B != 0x30 {
		t.Errorf("unexpected accent %v", a)
	}
	if err := setAccent(model, "no-such-accent"); err == nil {
		t.Error("expected an error for an unknown preset")
	}
}
