package view

import (
	"bytes"
	"fmt"
	"github.com/logrusorgru/aurora"
	"io"
	"lifemap/src/universe"
	"os"
	"sort"
	"time"
)

//clearScreen moves the cursor home and clears the terminal
const clearScreen = "\033[H\033[2J"

type ConsoleOut struct {
	u          universe.Universe
	w          io.Writer
	startTime  time.Time
	showField  bool
	liveFiller string
	deadFiller string
}

//NewConsoleOut creates the viewer printing the progress to stdout
//with showField the whole field is redrawn on every refresh
func NewConsoleOut(showField bool) *ConsoleOut {
	return NewConsoleOutWriter(os.Stdout, showField, true)
}

//NewConsoleOutWriter creates the viewer printing to w
func NewConsoleOutWriter(w io.Writer, showField bool, colors bool) *ConsoleOut {
	au := aurora.NewAurora(colors)
	return &ConsoleOut{
		w:          w,
		showField:  showField,
		liveFiller: au.Green("█").String(),
		deadFiller: "░",
	}
}

func (c *ConsoleOut) Refresh() {
	if c.showField {
		c.renderField()
	}
	st := c.u.Status()
	if st.RunningMode == universe.RunningStateFinished {
		totalTime := time.Since(c.startTime).Round(time.Millisecond)
		resultData := map[string]interface{}{
			"Last iteration": st.IterationNum,
			"Total time":     totalTime,
			"Live cells":     st.LiveCells,
		}
		fmt.Fprintln(c.w, "\nFinished:")
		c.printHashData(resultData)
	} else if st.RunningMode == universe.RunningStateRun {
		if st.IterationNum%10 == 0 {
			fmt.Fprintf(c.w, "  Iterations done: %v\n", st.IterationNum)
		}
	}
}

func (c *ConsoleOut) Register(u universe.Universe) {
	c.u = u
	o := c.u.Options()
	var width, height int
	u.View(func(g universe.GridView) {
		width, height = g.Width(), g.Height()
	})
	fmt.Fprintln(c.w, "Running configuration:")
	fmt.Fprintf(c.w, "  Dimension: %v x %v\n", width, height)
	fmt.Fprintf(c.w, "  FPS: %v\n", fpsDescr(o.FPS))
	fmt.Fprintf(c.w, "  Max iterations: %v\n", maxStepsDescr(o.MaxSteps))
	c.printHashData(o.Advanced)
}

func (c *ConsoleOut) Start() {
	c.startTime = time.Now()
	fmt.Fprintln(c.w, "\nSimulation started...")
}

//renderField draws one char per cell, the rows of the output are the grid rows
func (c *ConsoleOut) renderField() {
	var b bytes.Buffer
	b.WriteString(clearScreen)
	c.u.View(func(g universe.GridView) {
		for y := 0; y < g.Height(); y++ {
			for x := 0; x < g.Width(); x++ {
				if cell, _ := g.Get(x, y); cell.Alive {
					b.WriteString(c.liveFiller)
				} else {
					b.WriteString(c.deadFiller)
				}
			}
			b.WriteByte('\n')
		}
	})
	_, _ = c.w.Write(b.Bytes())
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		fmt.Fprintf(c.w, "  %s: %v\n", propName, d[propName])
	}
}

func fpsDescr(fps int) string {
	switch {
	case fps == 0:
		return "0 (render only)"
	case fps < 0:
		return "unlimited"
	}
	return fmt.Sprint(fps)
}

func maxStepsDescr(maxSteps int) string {
	if maxSteps == 0 {
		return "unlimited"
	}
	return fmt.Sprintf("%v steps", maxSteps)
}
