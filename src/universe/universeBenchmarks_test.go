package universe

import (
	"sort"
	"testing"
)

var (
	testSample = [][]int{{1, 1}, {1, 2}, {2, 1}, {2, 2}, {3, 3}, {4, 2}, {4, 3}, {5, 3}}

	engines = map[string]func(g *Grid) Engine{
		"base": func(g *Grid) Engine {
			return NewBaseEngine(g)
		},
		"multithreaded": func(g *Grid) Engine {
			return NewMultithreadedEngine(g, DefWorkers)
		},
	}
)

const (
	width  = 200
	height = 200
)

func universeStep(u Universe, b *testing.B) {
	stateCh := u.StateCh()
	seed := seedFromCoords(width, height, testSample)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		u.Reseed(seed)
		<-stateCh //wait for finish
		b.StartTimer()
		u.Step()
		waitFor(stateCh, RunningStateManual)
	}
	u.Close()
}

func universeRun(u Universe, b *testing.B) {
	stateCh := u.StateCh()
	seed := seedFromCoords(width, height, testSample)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		u.Reseed(seed)
		<-stateCh //wait for finish
		b.StartTimer()
		u.Run()
		waitFor(stateCh, RunningStateFinished)
	}
	u.Close()
}

func waitFor(stateCh chan Status, mode RunningState) Status {
	for {
		st := <-stateCh
		if st.RunningMode == mode {
			return st
		}
	}
}

func seedFromCoords(w int, h int, vc [][]int) [][]bool {
	seed := EmptySeed(w, h)
	for _, v := range vc {
		seed[v[0]][v[1]] = true
	}
	return seed
}

func newStateCh() chan Status {
	return make(chan Status, 10)
}

func newUniverseOptions() *Options {
	o := DefaultUniverseOptions
	o.FPS = FPSUnlimited
	o.MaxSteps = 100
	return &o
}

func engineNames() (engineNames []string) {
	engineNames = make([]string, 0, len(engines))
	for k := range engines {
		engineNames = append(engineNames, k)
	}
	sort.Strings(engineNames)
	return
}

func Benchmark_Step(b *testing.B) {
	for _, e := range engineNames() {
		b.Run(e, func(b *testing.B) {
			eng := engines[e](NewEmptyGrid(width, height))
			universeStep(NewBaseUniverse(eng, newUniverseOptions(), newStateCh()), b)
		})
	}
}

func Benchmark_Universe(b *testing.B) {
	for _, e := range engineNames() {
		b.Run(e, func(b *testing.B) {
			eng := engines[e](NewEmptyGrid(width, height))
			universeRun(NewBaseUniverse(eng, newUniverseOptions(), newStateCh()), b)
		})
	}
}

func Benchmark_EngineStep(b *testing.B) {
	for _, e := range engineNames() {
		b.Run(e, func(b *testing.B) {
			eng := engines[e](NewGrid(width, height, seedFromCoords(width, height, testSample)))
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				eng.Step()
			}
		})
	}
}
