package main

import (
	"fmt"
	"github.com/integrii/flaggy"
	"lifemap/src/loader"
	"lifemap/src/universe"
	"lifemap/src/view"
	"log"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
)

var (
	engines = map[string]func(g *universe.Grid, eo *EnvOptions) universe.Engine{
		"base": func(g *universe.Grid, _ *EnvOptions) universe.Engine {
			return universe.NewBaseEngine(g)
		},
		"multithreaded": func(g *universe.Grid, eo *EnvOptions) universe.Engine {
			return universe.NewMultithreadedEngine(g, eo.workers)
		},
	}
)

type EnvOptions struct {
	mapFile     string
	defaultMap  string
	fps         string
	interactive bool
	showField   bool
	engine      string
	workers     int
}

func main() {
	eo, uo := initOptions()

	fmt.Printf("filename: %v fps limit: %v\n", eo.mapFile, uo.FPS)

	d, err := loader.New(eo.defaultMap).Load(eo.mapFile)
	if err != nil {
		log.Fatalf("Could not read map file! %v", err)
	}
	fmt.Printf("width: %v, height: %v\n", d.Width, d.Height)

	var stateCh chan universe.Status

	if !eo.interactive {
		stateCh = make(chan universe.Status, 10) //the buffered channel to getting the universe status
	}

	e := engines[eo.engine](universe.NewGrid(d.Width, d.Height, d.Seed), eo)
	u := universe.NewBaseUniverse(e, uo, stateCh)

	if eo.interactive {
		v := view.NewViewTerminal(eo.mapFile, d.Seed)
		u.RegisterViewer(v)
		v.Start()
		u.Close()
		return
	}

	v := view.NewConsoleOut(eo.showField)
	u.RegisterViewer(v)
	v.Start()
	u.Run()
	if uo.FPS == 0 {
		//render only, nothing will ever finish
		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt)
		<-interrupt
		u.Close()
		return
	}
	for {
		st := <-stateCh
		if st.RunningMode == universe.RunningStateFinished {
			break
		}
	}
	u.Close()
}

func initOptions() (eo *EnvOptions, uo *universe.Options) {

	o := universe.DefaultUniverseOptions
	uo = &o
	engineNames := make([]string, 0, len(engines))
	for k := range engines {
		engineNames = append(engineNames, k)
	}
	sort.Strings(engineNames)
	eo = &EnvOptions{
		mapFile:    loader.DefaultPath,
		defaultMap: loader.DefaultPath,
		engine:     "base",
		workers:    universe.DefWorkers,
	}
	flaggy.SetName("lifemap")
	flaggy.SetDescription("Conway's Game of Life on a wrap-around field loaded from a text map")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.AddPositionalValue(&eo.mapFile, "map", 1, false, "Map file, "+loader.DefaultPath+" is loaded when it can't be found")
	flaggy.AddPositionalValue(&eo.fps, "fps", 2, false, "Steps per second, 0 renders without stepping, -1 doesn't limit the speed")
	flaggy.String(&eo.defaultMap, "d", "defaultMap", "Map file to load when the requested one can't be found")
	flaggy.Int(&uo.MaxSteps, "s", "maxSteps", "Limit the simulation to maxSteps, 0 runs until stopped")
	flaggy.Bool(&uo.StopWhenStable, "t", "stopStable", "Finish the simulation when the field stops changing")
	flaggy.Bool(&eo.interactive, "n", "interactive", "Start interactive mode")
	flaggy.Bool(&eo.showField, "f", "field", "Draw the field on every step in non-interactive mode")
	flaggy.String(&eo.engine, "e", "engine", "Engine to use ["+strings.Join(engineNames, "|")+"]")
	flaggy.Int(&eo.workers, "w", "workers", "Goroutines of the multithreaded engine")

	flaggy.Parse()

	_, ok := engines[eo.engine]
	if !ok {
		flaggy.ShowHelpAndExit("unknown engine")
	}

	uo.FPS = parseFPS(eo.fps)

	return
}

//parseFPS returns the default fps when the argument is missing or isn't a number
func parseFPS(s string) int {
	if s == "" {
		return universe.DefFPS
	}
	fps, err := strconv.Atoi(s)
	if err != nil || fps < universe.FPSUnlimited {
		return universe.DefFPS
	}
	return fps
}
