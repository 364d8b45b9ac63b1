package universe

import (
	"math/rand"
	"sync"
	"time"
)

//BaseUniverse is the universe's driver
//implements Universe interface
//all grid mutations are executed by the main loop goroutine one by one
type BaseUniverse struct {
	options Options
	state   struct {
		Status
		runID int //changes on every Run, the older run loops exit
		sync.Mutex
	}
	area struct {
		engine Engine
		sync.Mutex
	}
	stateCh   chan Status
	views     []Viewer
	controlCh chan func()
	closeCh   chan bool
	closed    chan struct{}
}

//NewBaseUniverse creates the BaseUniverse instance driving the engine
//stateCh may be nil, the status updates are not sent in this case
func NewBaseUniverse(e Engine, o *Options, stateCh chan Status) *BaseUniverse {
	if o == nil {
		o = &DefaultUniverseOptions
	}
	u := BaseUniverse{
		options:   *o,
		controlCh: make(chan func(), 1),
		closeCh:   make(chan bool, 1),
		closed:    make(chan struct{}),
		stateCh:   stateCh,
	}
	u.options.Advanced = make(map[string]interface{})
	for k, v := range o.Advanced {
		u.options.Advanced[k] = v
	}
	u.options.Advanced["engine"] = e.Name()
	if me, ok := e.(*MultithreadedEngine); ok {
		u.options.Advanced["Workers"] = me.Workers()
		u.options.Advanced["Rows per worker"] = me.RowsPerWorker()
	}
	u.area.engine = e
	u.state.LiveCells = e.Grid().LiveCells()
	go u.mainLoop()
	return &u
}

//View calls fn with the grid, no step is running while fn is executed
func (u *BaseUniverse) View(fn func(g GridView)) {
	u.area.Lock()
	defer u.area.Unlock()
	fn(u.area.engine.Grid())
}

//Reseed replaces the grid content with the seed matrix, returns immediately
func (u *BaseUniverse) Reseed(seed [][]bool) {
	u.exec(func() {
		u.area.Lock()
		u.area.engine.Grid().Reseed(seed)
		u.area.Unlock()
		u.resetCounters()
		u.refreshView()
	})
}

//SettleWithRandomData populates the universe with random data, returns immediately
func (u *BaseUniverse) SettleWithRandomData() {
	u.exec(func() {
		if u.runningMode() != RunningStateManual && u.runningMode() != RunningStateFinished {
			return
		}
		u.area.Lock()
		g := u.area.engine.Grid()
		seed := EmptySeed(g.Width(), g.Height())
		for i := 0; i < g.Width()*g.Height(); i++ {
			seed[rand.Intn(g.Width())][rand.Intn(g.Height())] = true
		}
		g.Reseed(seed)
		u.area.Unlock()
		u.resetCounters()
		u.refreshView()
	})
}

//InverseCell inverses the cell state at point x, y, returns immediately
func (u *BaseUniverse) InverseCell(x int, y int) {
	u.exec(func() {
		u.area.Lock()
		c := u.area.engine.Grid().GetMut(x, y)
		if c == nil {
			u.area.Unlock()
			return
		}
		c.Alive = !c.Alive
		c.AliveNext = c.Alive
		u.area.Unlock()
		u.updateLiveCells()
		u.refreshView()
	})
}

//RegisterViewer registers the viewer - the universe will call the viewer when the state is changed
func (u *BaseUniverse) RegisterViewer(v Viewer) {
	u.views = append(u.views, v)
	v.Register(u)
}

//StateCh returns the channel with the universe's status updates
func (u *BaseUniverse) StateCh() chan Status {
	return u.stateCh
}

//Status returns current universe status represented by Status struct
func (u *BaseUniverse) Status() Status {
	u.state.Lock()
	defer u.state.Unlock()
	return u.state.Status
}

//Options returns current universe configuration represented by Options struct
func (u *BaseUniverse) Options() Options {
	return u.options
}

//Run starts the universe simulation, returns immediately
func (u *BaseUniverse) Run() {
	u.exec(u.run)
}

//Stop stops the universe simulation, returns immediately
//the Status struct will be written the stateCh on finish
func (u *BaseUniverse) Stop() {
	u.exec(u.stop)
}

//Step do one simulation step, returns immediately
//the Status struct will be written to the stateCh on start and on finish
func (u *BaseUniverse) Step() {
	u.exec(u.step)
}

//Clear clears the universe (kill all cells and reset all counters), returns immediately
//the Status struct will be written to the stateCh on finish
func (u *BaseUniverse) Clear() {
	u.exec(u.clear)
}

//Close stops the simulation and the main loop, returns immediately
func (u *BaseUniverse) Close() {
	u.exec(u.stop)
	select {
	case u.closeCh <- true:
	default:
	}
}

//exec sends the command to the main loop
//the command is dropped when the main loop is closed
func (u *BaseUniverse) exec(cmd func()) bool {
	select {
	case <-u.closed:
		return false
	default:
	}
	select {
	case u.controlCh <- cmd:
		return true
	case <-u.closed:
		return false
	}
}

//mainLoop - the main cycle, should start as a goroutine
//waits for command and executes
func (u *BaseUniverse) mainLoop() {
	var c = false
	for !c {
		select {
		case cmd := <-u.controlCh:
			cmd()
		case c = <-u.closeCh:

		}
	}
	close(u.closed)
}

func (u *BaseUniverse) runningMode() RunningState {
	u.state.Lock()
	defer u.state.Unlock()
	return u.state.RunningMode
}

//isRunning reports whether the run with runID is still the active one
func (u *BaseUniverse) isRunning(runID int) bool {
	u.state.Lock()
	defer u.state.Unlock()
	return u.state.RunningMode == RunningStateRun && u.state.runID == runID
}

//switchRunningState switch the state of the universe to RunningState
//also writes the new state to the stateCh to signal upper control software
func (u *BaseUniverse) switchRunningState(to RunningState) {
	u.state.Lock()
	u.state.RunningMode = to
	st := u.state.Status
	u.state.Unlock()
	if u.stateCh != nil {
		u.stateCh <- st
	}
}

//run starts the universe simulation
//simulation will stop on Stop() calling or when MaxSteps is reached
//every step is followed by the sleep for the rest of the tick interval
func (u *BaseUniverse) run() {
	//a finished universe runs again only after Clear or Reseed
	if rm := u.runningMode(); rm == RunningStateRun || rm == RunningStateFinished {
		return
	}
	//nothing advances without fps, the views are just redrawn
	if u.options.FPS == 0 {
		u.refreshView()
		return
	}
	u.state.Lock()
	u.state.runID++
	runID := u.state.runID
	u.state.Unlock()
	u.switchRunningState(RunningStateRun)
	go func() {
		done := make(chan bool, 1)
		interval := u.options.Interval()
		for {
			if !u.isRunning(runID) {
				break
			}
			start := time.Now()
			ok := u.exec(func() {
				//Stop could arrive between the check and this command
				if u.isRunning(runID) {
					u.step()
				}
				done <- true
			})
			if !ok {
				break
			}
			select {
			case <-done:
			case <-u.closed:
				return
			}
			if elapsed := time.Since(start); interval > elapsed {
				time.Sleep(interval - elapsed)
			}
		}
	}()
}

//stop stops the universe running cycle
func (u *BaseUniverse) stop() {
	if u.runningMode() == RunningStateRun {
		u.switchRunningState(RunningStateManual)
	}
}

//step does the new one generation calculation for entire universe
func (u *BaseUniverse) step() {
	rm := u.runningMode()
	if rm == RunningStateFinished {
		return
	}
	u.switchRunningState(RunningStateStep)

	u.area.Lock()
	start := time.Now()
	g := u.area.engine.Grid()
	u.area.engine.Step()
	elapsed := time.Since(start)
	liveCells := g.LiveCells()
	stable := g.Stable()
	u.area.Unlock()

	u.state.Lock()
	u.state.IterationNum++
	u.state.LiveCells = liveCells
	u.state.IterationTime = elapsed
	iter := u.state.IterationNum
	u.state.Unlock()

	maxIter := u.options.MaxSteps
	if (maxIter != 0 && iter >= maxIter) || (u.options.StopWhenStable && stable) {
		u.switchRunningState(RunningStateFinished)
	} else {
		u.switchRunningState(rm)
	}
	u.refreshView()
}

//clear clears the universe data, reset all counters
func (u *BaseUniverse) clear() {
	u.area.Lock()
	u.area.engine.Grid().Clear()
	u.area.Unlock()
	u.resetCounters()
	u.refreshView()
}

//resetCounters resets the status and switches the universe to the manual mode
func (u *BaseUniverse) resetCounters() {
	u.state.Lock()
	u.state.IterationNum = 0
	u.state.IterationTime = 0
	u.state.Unlock()
	u.updateLiveCells()
	u.switchRunningState(RunningStateManual)
}

func (u *BaseUniverse) updateLiveCells() {
	u.area.Lock()
	liveCells := u.area.engine.Grid().LiveCells()
	u.area.Unlock()
	u.state.Lock()
	u.state.LiveCells = liveCells
	u.state.Unlock()
}

//refreshView calls Refresh event for all registered views
func (u *BaseUniverse) refreshView() {
	for _, v := range u.views {
		v.Refresh()
	}
}
