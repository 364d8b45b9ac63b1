package universe

import "time"

//Universe is the driver around an Engine: it paces the steps, reports the status and feeds the viewers
type Universe interface {
	Status() Status
	Options() Options
	View(fn func(g GridView))
	StateCh() chan Status
	SettleWithRandomData()
	Reseed(seed [][]bool)
	InverseCell(x int, y int)
	RegisterViewer(v Viewer)
	Run()
	Stop()
	Step()
	Clear()
	Close()
}

//Options represents the Universe's configurable options
type Options struct {
	FPS            int //steps per second, 0 renders without stepping, FPSUnlimited doesn't sleep
	MaxSteps       int //0 runs until stopped
	StopWhenStable bool
	Advanced       map[string]interface{} //advanced options (engine specific)
}

//Status represents the status of the Universe at concrete moment
type Status struct {
	IterationNum  int
	RunningMode   RunningState
	LiveCells     int
	IterationTime time.Duration
}

//Viewer is the interface to any Viewer - the object who can display simulation data or control the engine
type Viewer interface {
	Refresh()
	Register(u Universe)
	Start()
}

//The universe running status at the concrete moment
type RunningState int

//default options
const (
	DefFPS       = 30
	DefMaxSteps  = 0
	FPSUnlimited = -1
)

const (
	RunningStateManual   = 0x0
	RunningStateStep     = 0x1
	RunningStateRun      = 0x2
	RunningStateFinished = 0x3
)

var DefaultUniverseOptions = Options{
	FPS:      DefFPS,
	MaxSteps: DefMaxSteps,
}

//Interval returns the target tick duration, 0 when the steps are not paced
func (o Options) Interval() time.Duration {
	if o.FPS <= 0 {
		return 0
	}
	return time.Second / time.Duration(o.FPS)
}
