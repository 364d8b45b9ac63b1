package view

import (
	"bytes"
	"lifemap/src/universe"
	"strings"
	"sync"
	"testing"
	"time"
)

type syncBuffer struct {
	b bytes.Buffer
	sync.Mutex
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.Lock()
	defer s.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.Lock()
	defer s.Unlock()
	return s.b.String()
}

func newTestUniverse(o universe.Options) *universe.BaseUniverse {
	g := universe.NewGrid(3, 2, [][]bool{{true, false}, {false, false}, {false, true}})
	return universe.NewBaseUniverse(universe.NewBaseEngine(g), &o, nil)
}

func TestConsoleOutRegister(t *testing.T) {
	u := newTestUniverse(universe.DefaultUniverseOptions)
	defer u.Close()
	var out syncBuffer
	u.RegisterViewer(NewConsoleOutWriter(&out, false, false))

	for _, want := range []string{"Dimension: 3 x 2", "FPS: 30", "Max iterations: unlimited", "engine: base"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output %q doesn't contain %q", out.String(), want)
		}
	}
}

func TestConsoleOutField(t *testing.T) {
	u := newTestUniverse(universe.DefaultUniverseOptions)
	defer u.Close()
	var out syncBuffer
	c := NewConsoleOutWriter(&out, true, false)
	u.RegisterViewer(c)

	c.Refresh()
	want := clearScreen + "█░░\n░░█\n"
	if got := out.String(); !strings.HasSuffix(got, want) {
		t.Fatalf("output %q, expected the field %q", got, want)
	}
}

func TestConsoleOutFinished(t *testing.T) {
	o := universe.DefaultUniverseOptions
	o.FPS = universe.FPSUnlimited
	o.MaxSteps = 2
	u := newTestUniverse(o)
	defer u.Close()
	var out syncBuffer
	c := NewConsoleOutWriter(&out, false, false)
	u.RegisterViewer(c)
	c.Start()

	u.Run()
	deadline := time.Now().Add(5 * time.Second)
	for !strings.Contains(out.String(), "Last iteration: 2") {
		if time.Now().After(deadline) {
			t.Fatalf("no final report in %q", out.String())
		}
		time.Sleep(time.Millisecond)
	}
	if !strings.Contains(out.String(), "Finished:") {
		t.Fatalf("no final report in %q", out.String())
	}
}

func TestDescriptions(t *testing.T) {
	if fpsDescr(0) != "0 (render only)" || fpsDescr(universe.FPSUnlimited) != "unlimited" || fpsDescr(12) != "12" {
		t.Error("unexpected fps description")
	}
	if maxStepsDescr(0) != "unlimited" || maxStepsDescr(7) != "7 steps" {
		t.Error("unexpected max steps description")
	}
}
