package universe

import (
	"golang.org/x/sync/errgroup"
)

/*
	Engine implementation with multithreaded computation algorithm
	the field is splitted into the row bands each of which is processed by individual goroutine
	both passes of the step run in parallel, the compute pass starts only when every band is committed
*/

const (
	DefWorkers          = 10 //default workers
	DefMinRowsPerWorker = 3  //minimum rows for one worker
)

type MultithreadedEngine struct {
	grid        *Grid
	workAreas   []workArea
	rowsPerArea int
}

//workArea describes the rows range processed by one worker
type workArea struct {
	y1 int
	y2 int
}

//NewMultithreadedEngine creates the engine splitting the grid between workers
//workers <= 0 means DefWorkers
func NewMultithreadedEngine(g *Grid, workers int) *MultithreadedEngine {
	if workers <= 0 {
		workers = DefWorkers
	}
	me := MultithreadedEngine{grid: g}
	linesPerWorker := g.Height() / workers
	if linesPerWorker < DefMinRowsPerWorker {
		linesPerWorker = DefMinRowsPerWorker
	} else if linesPerWorker*workers < g.Height() {
		linesPerWorker++
	}
	me.workAreas = make([]workArea, 0, workers)
	for y1 := 0; y1 < g.Height(); y1 += linesPerWorker {
		y2 := y1 + linesPerWorker - 1
		if y2 > g.Height()-1 {
			y2 = g.Height() - 1
		}
		me.workAreas = append(me.workAreas, workArea{y1, y2})
	}
	me.rowsPerArea = linesPerWorker
	return &me
}

//Grid returns the grid the engine works on
func (me *MultithreadedEngine) Grid() *Grid {
	return me.grid
}

//Name returns the engine identifier
func (me *MultithreadedEngine) Name() string {
	return "multithreaded"
}

//Workers returns the count of the work areas (goroutines per pass)
func (me *MultithreadedEngine) Workers() int {
	return len(me.workAreas)
}

//RowsPerWorker returns the height of the work area
func (me *MultithreadedEngine) RowsPerWorker() int {
	return me.rowsPerArea
}

//Step does one generation advance
func (me *MultithreadedEngine) Step() {
	me.pass(commitCell)
	me.pass(me.computeCell)
}

//pass runs cb over every work area in parallel and waits for all of them
func (me *MultithreadedEngine) pass(cb func(x int, y int, c *Cell)) {
	var eg errgroup.Group
	for i := range me.workAreas {
		wa := me.workAreas[i]
		eg.Go(func() error {
			me.grid.walkRows(wa.y1, wa.y2, cb)
			return nil
		})
	}
	//workers never fail
	_ = eg.Wait()
}

//computeCell stages the next state for the cell
func (me *MultithreadedEngine) computeCell(x int, y int, c *Cell) {
	c.AliveNext = NextState(c.Alive, me.grid.CountLivingNeighbours(x, y))
}
