package view

import (
	"lifemap/src/universe"
	"strings"
	"testing"
)

func TestKeyHelp(t *testing.T) {
	got := keyHelp([]command{
		{label: "n", action: "next generation"},
		{label: "ctrl+c", action: "quit"},
	})
	want := []string{
		"n       next generation",
		"ctrl+c  quit",
	}
	if len(got) != len(want) {
		t.Fatalf("got %q, expected %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %v: got %q, expected %q", i, got[i], want[i])
		}
	}
}

func TestPanels(t *testing.T) {
	p := panels(100, 40, 8)
	if p == nil {
		t.Fatal("the panels don't fit 100 x 40")
	}
	field := p[fieldPanel]
	if field.x0 != sideWidth || field.x1 != 99 || field.y1 != 39 {
		t.Errorf("unexpected field frame %+v", field)
	}
	//the side panels are stacked without overlapping
	if p[mapPanel].y1 >= p[genPanel].y0 || p[genPanel].y1 >= p[keysPanel].y0 {
		t.Errorf("side panels overlap: %+v", p)
	}
	if p[keysPanel].y1-p[keysPanel].y0-1 < 8 {
		t.Errorf("keys panel %+v can't hold 8 lines", p[keysPanel])
	}

	if panels(sideWidth+minFieldWidth-1, 40, 8) != nil {
		t.Error("expected no layout for a narrow terminal")
	}
	if panels(100, 10, 8) != nil {
		t.Error("expected no layout for a low terminal")
	}
}

func TestShortenLeft(t *testing.T) {
	if got := shortenLeft("map.txt", 10); got != "map.txt" {
		t.Errorf("got %q", got)
	}
	if got := shortenLeft("/home/user/maps/glider.txt", 13); got != "...glider.txt" {
		t.Errorf("got %q", got)
	}
}

func TestFieldText(t *testing.T) {
	ui := ConsoleUI{liveFiller: "#", deadFiller: "."}
	g := universe.NewGrid(3, 2, [][]bool{{true, false}, {false, false}, {false, true}})

	if got := string(ui.fieldText(g, 3, 2)); got != "#..\n..#" {
		t.Errorf("got %q", got)
	}
	got := string(ui.fieldText(g, 2, 2))
	if !strings.HasPrefix(got, "#.\n") || !strings.Contains(got, "only a part of the map fits") {
		t.Errorf("got %q, expected the cropped row and the notice", got)
	}
}
