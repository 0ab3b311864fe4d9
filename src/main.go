package main

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/integrii/flaggy"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gameoflife/src/simulation"
	"gameoflife/src/timing"
	"gameoflife/src/universe"
	"gameoflife/src/view"
)

//patternDefault keeps the seed pattern of universe.New
const patternDefault = "default"

type EnvOptions struct {
	interactive bool
	randomData  bool
	pattern     string
	metricsAddr string
	dump        bool
	traceTicks  bool
}

func main() {
	eo, uo := initOptions()

	u, err := newUniverse(uo, eo.pattern)
	if err != nil {
		log.Fatal(err)
	}

	sinks := timing.MultiSink{}
	if eo.traceTicks {
		sinks = append(sinks, timing.LogSink{})
	}
	if eo.metricsAddr != "" {
		ps, err := timing.NewPrometheusSink(prometheus.DefaultRegisterer)
		if err != nil {
			log.Fatal(err)
		}
		sinks = append(sinks, ps)
		go serveMetrics(eo.metricsAddr)
	}
	u.SetTimingSink(sinks)

	var stateCh chan simulation.Status
	if !eo.interactive {
		stateCh = make(chan simulation.Status, 10) //the buffered channel to getting the simulation status
	}

	r := simulation.New(u, uo, stateCh)
	defer r.Close()
	for _, tmpl := range universe.Builtins() {
		r.AddTemplate(tmpl)
	}

	if eo.randomData {
		r.SettleWithRandomData()
	}

	if eo.interactive {
		v := view.NewViewTerminal()
		r.RegisterViewer(v)
		v.Start()
		return
	}

	v := view.NewConsoleOut()
	r.RegisterViewer(v)
	v.Start()
	r.Run()
	for st := range stateCh {
		if st.RunningMode == simulation.RunningStateFinished {
			break
		}
	}
	r.Wait()
	if eo.dump {
		fmt.Print(r.Render(universe.AliveGlyph, universe.DeadGlyph))
	}
}

//newUniverse creates the universe of the configured size seeded with the pattern
func newUniverse(o *simulation.Options, pattern string) (*universe.Universe, error) {
	if pattern == patternDefault && o.Width == universe.DefWidth && o.Height == universe.DefHeight {
		return universe.New(), nil
	}
	u, err := universe.NewSized(o.Width, o.Height)
	if err != nil {
		return nil, err
	}
	if pattern == patternDefault {
		u.Fill(universe.DefaultSeed)
		return u, nil
	}
	tmpl, ok := universe.Builtin(pattern)
	if !ok {
		return nil, fmt.Errorf("unknown pattern %q", pattern)
	}
	rows, columns := tmpl.Bounds()
	if rows > u.Height() || columns > u.Width() {
		return nil, fmt.Errorf("pattern %q needs at least %vx%v cells", pattern, columns, rows)
	}
	//center the template
	u.SettleTemplate(tmpl.Offset((u.Height()-rows)/2, (u.Width()-columns)/2))
	return u, nil
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	log.Printf("metrics endpoint listening on %s/metrics", addr)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	if err := srv.ListenAndServe(); err != nil {
		log.Printf("metrics HTTP server failed: %v", err)
	}
}

func patternNames() []string {
	names := []string{patternDefault}
	for _, t := range universe.Builtins() {
		names = append(names, t.Name)
	}
	return names
}

func initOptions() (eo *EnvOptions, uo *simulation.Options) {
	o := simulation.DefaultOptions
	uo = &o
	eo = &EnvOptions{pattern: patternDefault}

	flaggy.SetName("gameoflife")
	flaggy.SetDescription("Conway's Game of Life on a toroidal grid")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.Int(&uo.Width, "x", "width", "Width of a simulation field")
	flaggy.Int(&uo.Height, "y", "height", "Height of a simulation field")
	flaggy.Duration(&uo.Interval, "i", "interval", "Simulation speed (interval between the steps) in format the number with 'ms' suffix, for example 150ms")
	flaggy.Int(&uo.MaxSteps, "s", "maxSteps", "Limit the simulation to maxSteps, 0 runs until the universe settles")
	flaggy.Int64(&uo.Seed, "", "seed", "Seed for the random data, 0 uses the clock")
	flaggy.Bool(&eo.interactive, "n", "interactive", "Start interactive mode")
	flaggy.Bool(&eo.randomData, "r", "random", "Settle with random data")
	flaggy.String(&eo.pattern, "p", "pattern", "Initial pattern ["+strings.Join(patternNames(), "|")+"]")
	flaggy.String(&eo.metricsAddr, "m", "metrics", "Serve prometheus metrics on this address, for example :2112")
	flaggy.Bool(&eo.dump, "d", "dump", "Print the universe when the simulation finishes")
	flaggy.Bool(&eo.traceTicks, "t", "trace", "Log the duration of every tick")

	flaggy.Parse()

	if uo.Width < 1 || uo.Height < 1 {
		flaggy.ShowHelpAndExit("width and height must be positive")
	}
	if eo.pattern != patternDefault {
		if _, ok := universe.Builtin(eo.pattern); !ok {
			flaggy.ShowHelpAndExit("unknown pattern")
		}
	}
	return
}
