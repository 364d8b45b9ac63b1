package universe

//Engine advances the grid by one generation per Step call
type Engine interface {
	Step()
	Grid() *Grid
	Name() string
}

//BaseEngine is the sequential engine
//Step runs two passes over the whole grid: the commit pass promotes the staged state,
//then the compute pass stages the next one from the fully committed generation
type BaseEngine struct {
	grid *Grid
}

//NewBaseEngine creates the BaseEngine instance over the grid
func NewBaseEngine(g *Grid) *BaseEngine {
	return &BaseEngine{grid: g}
}

//Grid returns the grid the engine works on
func (e *BaseEngine) Grid() *Grid {
	return e.grid
}

//Name returns the engine identifier
func (e *BaseEngine) Name() string {
	return "base"
}

//Step does one generation advance
func (e *BaseEngine) Step() {
	e.grid.walk(commitCell)
	e.grid.walk(e.computeCell)
}

//computeCell stages the next state for the cell
func (e *BaseEngine) computeCell(x int, y int, c *Cell) {
	c.AliveNext = NextState(c.Alive, e.grid.CountLivingNeighbours(x, y))
}

//commitCell promotes the staged state to the current one
func commitCell(_ int, _ int, c *Cell) {
	c.Alive = c.AliveNext
}
