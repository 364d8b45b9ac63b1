package view

import (
	"bytes"
	"fmt"
	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"
	"lifemap/src/universe"
	"log"
	"strings"
	"time"
)

//gocui view names
const (
	mapPanel   = "map"
	genPanel   = "generation"
	keysPanel  = "keys"
	fieldPanel = "field"
	tooSmall   = "tooSmall"
)

//the left column holds the map, generation and keys panels, the field takes the rest
const (
	sideWidth     = 30
	mapLines      = 5
	genLines      = 4
	minFieldWidth = 10
)

type command struct {
	key     interface{}
	label   string
	action  string
	handler func(v *gocui.View) error
	view    string
}

//rect is a gocui view frame, the borders are included
type rect struct {
	x0, y0, x1, y1 int
}

type ConsoleUI struct {
	u          universe.Universe
	g          *gocui.Gui
	commands   []command
	mapFile    string
	seed       [][]bool //the loaded map, restored by the reload command
	liveFiller string
	deadFiller string
}

var modeDescr = map[universe.RunningState]string{
	universe.RunningStateManual:   aurora.Blue("paused").String(),
	universe.RunningStateStep:     "stepping",
	universe.RunningStateRun:      aurora.Cyan("running").String(),
	universe.RunningStateFinished: aurora.Red("finished").String(),
}

//NewViewTerminal creates the gocui based viewer for the map loaded from mapFile
//seed is restored by the reload key, may be nil
func NewViewTerminal(mapFile string, seed [][]bool) *ConsoleUI {
	t := ConsoleUI{
		mapFile:    mapFile,
		seed:       seed,
		liveFiller: aurora.Green("█").BgBrightGreen().String(),
		deadFiller: "░",
	}

	var err error
	t.g, err = gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		log.Panicln(err)
	}
	t.g.Mouse = true
	t.commands = []command{
		{key: 'n', label: "n", action: "next generation", handler: t.cmdNextRound},
		{key: 'r', label: "r", action: "run", handler: t.cmdRun},
		{key: 's', label: "s", action: "pause", handler: t.cmdStop},
		{key: 'l', label: "l", action: "reload the map", handler: t.cmdReload},
		{key: 'w', label: "w", action: "random population", handler: t.cmdSettleWithRandom},
		{key: 'c', label: "c", action: "kill all cells", handler: t.cmdClear},
		{key: gocui.MouseLeft, label: "click", action: "flip the cell", handler: t.cmdMouseClick, view: fieldPanel},
		{key: gocui.KeyCtrlC, label: "ctrl+c", action: "quit", handler: t.cmdQuit},
	}
	t.g.SetManagerFunc(t.layout)
	for _, c := range t.commands {
		h := c.handler
		if err := t.g.SetKeybinding(c.view, c.key, gocui.ModNone, func(_ *gocui.Gui, v *gocui.View) error { return h(v) }); err != nil {
			log.Panicln(err)
		}
	}
	return &t
}

func (t *ConsoleUI) Register(u universe.Universe) {
	t.u = u
}

func (t *ConsoleUI) Start() {
	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		log.Panicln(err)
	}
	t.g.Close()
}

func (t *ConsoleUI) Refresh() {
	t.g.Update(t.draw)
}

//draw fills every panel that is currently laid out
func (t *ConsoleUI) draw(g *gocui.Gui) error {
	var width, height int
	var field []byte
	t.u.View(func(a universe.GridView) {
		width, height = a.Width(), a.Height()
		if v, err := g.View(fieldPanel); err == nil {
			w, h := v.Size()
			field = t.fieldText(a, w, h)
		}
	})
	o := t.u.Options()
	s := t.u.Status()

	if v, err := g.View(mapPanel); err == nil {
		v.Clear()
		fmt.Fprintln(v, shortenLeft(t.mapFile, sideWidth-2))
		fmt.Fprintln(v, prop("size", "%v x %v", width, height))
		fmt.Fprintln(v, prop("fps", "%v", fpsDescr(o.FPS)))
		fmt.Fprintln(v, prop("limit", "%v", maxStepsDescr(o.MaxSteps)))
		fmt.Fprintln(v, prop("engine", "%v", o.Advanced["engine"]))
	}
	if v, err := g.View(genPanel); err == nil {
		v.Clear()
		fmt.Fprintln(v, prop("generation", "%v", s.IterationNum))
		fmt.Fprintln(v, prop("alive", "%v", s.LiveCells))
		fmt.Fprintln(v, prop("step time", "%v", s.IterationTime.Round(time.Microsecond)))
		fmt.Fprintln(v, prop("state", "%v", modeDescr[s.RunningMode]))
	}
	if v, err := g.View(fieldPanel); err == nil {
		v.Clear()
		_, _ = v.Write(field)
	}
	return nil
}

//fieldText renders the grid rows cut to the w x h view
//the last visible row turns into a notice when the grid doesn't fit
func (t *ConsoleUI) fieldText(a universe.GridView, w int, h int) []byte {
	var b bytes.Buffer
	rows := a.Height()
	cropped := a.Width() > w || a.Height() > h
	if rows > h {
		rows = h
	}
	for y := 0; y < rows; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		if cropped && y == h-1 {
			b.WriteString(aurora.Red("only a part of the map fits").String())
			break
		}
		for x := 0; x < a.Width() && x < w; x++ {
			if c, _ := a.Get(x, y); c.Alive {
				b.WriteString(t.liveFiller)
			} else {
				b.WriteString(t.deadFiller)
			}
		}
	}
	return b.Bytes()
}

func prop(name string, format string, values ...interface{}) string {
	return aurora.Green(name).String() + " " + fmt.Sprintf(format, values...)
}

//keyHelp returns one "label  action" line per command, the labels are aligned
func keyHelp(commands []command) []string {
	width := 0
	for _, c := range commands {
		if len(c.label) > width {
			width = len(c.label)
		}
	}
	lines := make([]string, 0, len(commands))
	for _, c := range commands {
		lines = append(lines, fmt.Sprintf("%-*s  %s", width, c.label, c.action))
	}
	return lines
}

//panels places the views on the maxX x maxY terminal
//nil means the terminal can't hold the field next to the side column
func panels(maxX int, maxY int, keys int) map[string]rect {
	sideHeight := mapLines + 2 + genLines + 2 + keys + 2
	if maxX < sideWidth+minFieldWidth || maxY < sideHeight {
		return nil
	}
	genTop := mapLines + 2
	keysTop := genTop + genLines + 2
	return map[string]rect{
		mapPanel:   {0, 0, sideWidth - 1, genTop - 1},
		genPanel:   {0, genTop, sideWidth - 1, keysTop - 1},
		keysPanel:  {0, keysTop, sideWidth - 1, maxY - 1},
		fieldPanel: {sideWidth, 0, maxX - 1, maxY - 1},
	}
}

//shortenLeft keeps the tail of s, the file name is more useful than the directories
func shortenLeft(s string, max int) string {
	if len(s) <= max || max < 4 {
		return s
	}
	return "..." + s[len(s)-max+3:]
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	p := panels(maxX, maxY, len(t.commands))
	if p == nil {
		for _, name := range []string{mapPanel, genPanel, keysPanel, fieldPanel} {
			_ = g.DeleteView(name)
		}
		v, err := g.SetView(tooSmall, -1, -1, maxX, maxY)
		if err != nil && err != gocui.ErrUnknownView {
			return err
		}
		v.Frame = false
		v.Clear()
		fmt.Fprintf(v, "\n %s\n", aurora.Red("enlarge the terminal to see the map"))
		return nil
	}
	_ = g.DeleteView(tooSmall)

	titles := map[string]string{
		mapPanel:   "Map",
		genPanel:   "Generation",
		keysPanel:  "Keys",
		fieldPanel: "Life",
	}
	created := false
	for _, name := range []string{mapPanel, genPanel, keysPanel, fieldPanel} {
		r := p[name]
		v, err := g.SetView(name, r.x0, r.y0, r.x1, r.y1)
		if err == nil {
			continue
		}
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = titles[name]
		if name == keysPanel {
			fmt.Fprint(v, strings.Join(keyHelp(t.commands), "\n"))
		}
		created = true
	}
	if created && t.u != nil {
		return t.draw(g)
	}
	return nil
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdNextRound(_ *gocui.View) error {
	t.u.Step()
	return nil
}

func (t *ConsoleUI) cmdRun(_ *gocui.View) error {
	t.u.Run()
	return nil
}

func (t *ConsoleUI) cmdStop(_ *gocui.View) error {
	t.u.Stop()
	return nil
}

func (t *ConsoleUI) cmdClear(_ *gocui.View) error {
	t.u.Clear()
	return nil
}

func (t *ConsoleUI) cmdSettleWithRandom(_ *gocui.View) error {
	t.u.SettleWithRandomData()
	return nil
}

func (t *ConsoleUI) cmdReload(_ *gocui.View) error {
	if t.seed != nil {
		t.u.Reseed(t.seed)
	}
	return nil
}

func (t *ConsoleUI) cmdMouseClick(v *gocui.View) error {
	cx, cy := v.Cursor()
	t.u.InverseCell(cx, cy)
	return nil
}
