package universe

import "fmt"

//Cell holds the state of one grid position
//Alive is the current generation, AliveNext is the staged one
type Cell struct {
	Alive     bool
	AliveNext bool
}

//NextState is the transition rule: a live cell survives with 2 or 3 live neighbours,
//a dead cell is born with exactly 3
func NextState(alive bool, liveNeighbours int) bool {
	if alive {
		return liveNeighbours == 2 || liveNeighbours == 3
	}
	return liveNeighbours == 3
}

//GridView is the read-only access given to renderers
type GridView interface {
	Width() int
	Height() int
	Get(x int, y int) (Cell, bool)
}

//Grid is the toroidal field of cells
//cells are stored in one buffer, row by row
type Grid struct {
	width  int
	height int
	cells  []Cell
}

//NewGrid creates the grid from the seed matrix indexed as seed[x][y]
//panics if the seed shape doesn't match width x height
func NewGrid(width int, height int, seed [][]bool) *Grid {
	if width < 1 || height < 1 {
		panic(fmt.Sprintf("universe: invalid grid size %vx%v", width, height))
	}
	g := &Grid{width: width, height: height, cells: make([]Cell, width*height)}
	g.Reseed(seed)
	return g
}

//NewEmptyGrid creates the grid with all cells dead
func NewEmptyGrid(width int, height int) *Grid {
	return NewGrid(width, height, EmptySeed(width, height))
}

//EmptySeed allocates the all-dead seed matrix
func EmptySeed(width int, height int) [][]bool {
	seed := make([][]bool, width)
	b := make([]bool, width*height)
	for x := range seed {
		start := height * x
		seed[x] = b[start : start+height : start+height]
	}
	return seed
}

//Width returns the grid width
func (g *Grid) Width() int {
	return g.width
}

//Height returns the grid height
func (g *Grid) Height() int {
	return g.height
}

//Get returns a copy of the cell at x, y
//ok is false when the coordinates are outside the grid
func (g *Grid) Get(x int, y int) (c Cell, ok bool) {
	if !g.inBounds(x, y) {
		return
	}
	return g.cells[y*g.width+x], true
}

//GetMut returns the pointer to the cell at x, y or nil when the coordinates are outside the grid
func (g *Grid) GetMut(x int, y int) *Cell {
	if !g.inBounds(x, y) {
		return nil
	}
	return &g.cells[y*g.width+x]
}

//Reseed overwrites both the current and the staged state with the seed matrix
func (g *Grid) Reseed(seed [][]bool) {
	if len(seed) != g.width {
		panic(fmt.Sprintf("universe: seed width %v doesn't match grid width %v", len(seed), g.width))
	}
	for x := range seed {
		if len(seed[x]) != g.height {
			panic(fmt.Sprintf("universe: seed column %v has height %v, expected %v", x, len(seed[x]), g.height))
		}
	}
	g.walk(func(x int, y int, c *Cell) {
		c.Alive = seed[x][y]
		c.AliveNext = seed[x][y]
	})
}

//Clear kills all cells
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = Cell{}
	}
}

//CountLivingNeighbours counts the alive cells around x, y
//the edges are wrapped, so every cell has exactly 8 neighbours
func (g *Grid) CountLivingNeighbours(x int, y int) int {
	liveNeighbours := 0
	for i := -1; i < 2; i++ {
		nx := wrap(x+i, g.width)
		for j := -1; j < 2; j++ {
			//skip my position
			if i == 0 && j == 0 {
				continue
			}
			ny := wrap(y+j, g.height)
			if g.alive(nx, ny) {
				liveNeighbours++
			}
		}
	}
	return liveNeighbours
}

//LiveCells calculates the count of live cells in the current generation
func (g *Grid) LiveCells() int {
	liveCells := 0
	for _, c := range g.cells {
		if c.Alive {
			liveCells++
		}
	}
	return liveCells
}

//Stable reports whether the staged generation equals the current one
func (g *Grid) Stable() bool {
	for _, c := range g.cells {
		if c.Alive != c.AliveNext {
			return false
		}
	}
	return true
}

//alive reads only the current state, the compute pass of the other workers writes AliveNext
//x, y must be inside the grid
func (g *Grid) alive(x int, y int) bool {
	return g.cells[y*g.width+x].Alive
}

func (g *Grid) inBounds(x int, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

//walkRows walks the rows from y1 to y2 inclusive and calls the cb function for each cell
func (g *Grid) walkRows(y1 int, y2 int, cb func(x int, y int, c *Cell)) {
	for y := y1; y <= y2; y++ {
		row := g.cells[y*g.width : (y+1)*g.width]
		for x := range row {
			cb(x, y, &row[x])
		}
	}
}

//walk walks the entire grid and calls the cb function for each cell
func (g *Grid) walk(cb func(x int, y int, c *Cell)) {
	g.walkRows(0, g.height-1, cb)
}

//wrap moves the coordinate that is one step outside [0, dim) to the opposite edge
func wrap(c int, dim int) int {
	if c < 0 {
		return c + dim
	}
	if c >= dim {
		return c - dim
	}
	return c
}
