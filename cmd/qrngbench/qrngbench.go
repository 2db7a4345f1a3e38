// qrngbench runs the photonic QRNG scenario for each entry in the cartesian
// product of a collection of circuit parameters, e.g. mode count and loss
// rate, and outputs a CSV of randomness statistics for each combination.
package main

import (
	"math"
	"math/rand"
	"os"
	"strings"
	"text/template"

	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"

	"photonic/randomness"
	"photonic/sim"
)

var (
	modes     = flag.IntSlice("modes", []int{2}, "The number of optical modes in the circuit.")
	photons   = flag.IntSlice("photons", []int{3}, "The per-mode photon-number truncation.")
	bits      = flag.IntSlice("bits", []int{1000}, "The number of random bits to extract per experiment.")
	loss      = flag.Float64Slice("loss", []float64{sim.DefaultLossRate}, "The per-operation loss trigger probability.")
	dephasing = flag.Float64Slice("dephasing", []float64{sim.DefaultDephasingRate}, "The per-operation dephasing trigger probability.")
	shift     = flag.Float64Slice("shift", []float64{math.Pi / 4}, "The phase applied to mode 0 before extraction.")
	seed      = flag.IntSlice("seed", []int{42}, "The seed for the circuit's random source.")
	rawOut    = flag.String("rawOut", "", "If non-empty, append each experiment's packed bit stream to this file.")
)

var (
	inputs  = []string{"modes", "photons", "bits", "loss", "dephasing", "shift", "seed"}
	columns = []string{"Modes", "Photons", "Bits", "Loss", "Dephasing", "Shift", "Seed",
		"Bias", "Ones", "FrequencyPValue", "RunsCount", "SerialCorrelation", "Purity"}
)

// An Experiment packages together the result of benchmarking a single
// parameterization for easy formatting.
type Experiment struct {
	// Fields corresponding to experiment parameters
	Modes     int
	Photons   int
	Bits      int
	Loss      float64
	Dephasing float64
	Shift     float64
	Seed      int

	// Fields corresponding to experiment results
	Bias              float64
	Ones              int
	FrequencyPValue   float64
	RunsCount         int
	SerialCorrelation float64
	Purity            float64
}

func main() {
	flag.Parse()
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	var raw *os.File
	if *rawOut != "" {
		var err error
		raw, err = os.OpenFile(*rawOut, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			log.Fatal().Err(err).Str("path", *rawOut).Msg("could not open raw output file")
		}
		defer raw.Close()
	}

	os.Stdout.WriteString(header() + "\n")
	tmpl := template.Must(template.New("line").Parse(lineTmpl()))
	var args [][]interface{}
	for _, inp := range inputs {
		args = append(args, lookupInput(inp, log))
	}
	applyCartesian(func(args []interface{}) {
		exp := &Experiment{
			Modes:     args[inpIndex("modes")].(int),
			Photons:   args[inpIndex("photons")].(int),
			Bits:      args[inpIndex("bits")].(int),
			Loss:      args[inpIndex("loss")].(float64),
			Dephasing: args[inpIndex("dephasing")].(float64),
			Shift:     args[inpIndex("shift")].(float64),
			Seed:      args[inpIndex("seed")].(int),
		}
		stream, err := bench(exp)
		if err != nil {
			log.Error().Err(err).Interface("experiment", exp).Msg("benching failed")
			return
		}
		if raw != nil {
			if _, err := raw.Write(stream.Data()); err != nil {
				log.Fatal().Err(err).Msg("could not write raw bit stream")
			}
		}
		if err := tmpl.Execute(os.Stdout, exp); err != nil {
			log.Fatal().Err(err).Msg("BUG: could not fill in line template")
		}
	}, args)
}

func inpIndex(v string) int {
	for i, inp := range inputs {
		if inp == v {
			return i
		}
	}
	return -1
}

func bench(exp *Experiment) (randomness.BitStream, error) {
	circuit, err := sim.NewCircuit(sim.CircuitOpts{
		NumModes:   exp.Modes,
		MaxPhotons: exp.Photons,
		Rand:       rand.New(rand.NewSource(int64(exp.Seed))),
		Noise: &sim.NoiseOpts{
			LossRate:      exp.Loss,
			DephasingRate: exp.Dephasing,
		},
	})
	if err != nil {
		return randomness.BitStream{}, err
	}
	if err := circuit.AddPhaseShifter(0, exp.Shift); err != nil {
		return randomness.BitStream{}, err
	}
	stream, err := circuit.GenerateRandomBits(exp.Bits)
	if err != nil {
		return randomness.BitStream{}, err
	}
	results := randomness.RunTests(stream)
	analysis := circuit.Analyze()

	exp.Bias = stream.Bias()
	exp.Ones = stream.Ones()
	exp.FrequencyPValue = results.FrequencyPValue
	exp.RunsCount = results.RunsCount
	exp.SerialCorrelation = results.SerialCorrelation
	exp.Purity = analysis.Purity
	return stream, nil
}

func header() string {
	return strings.Join(columns, ", ")
}

func lineTmpl() string {
	var els []string
	for _, c := range columns {
		els = append(els, "{{."+c+"}}")
	}
	return strings.Join(els, ", ") + "\n"
}

func lookupInput(name string, log zerolog.Logger) []interface{} {
	var r []interface{}
	if v, err := flag.CommandLine.GetIntSlice(name); err == nil {
		for _, val := range v {
			r = append(r, val)
		}
	} else if v, err := flag.CommandLine.GetFloat64Slice(name); err == nil {
		for _, val := range v {
			r = append(r, val)
		}
	} else {
		log.Fatal().Str("input", name).Msg("unknown input type")
	}
	return r
}

func applyCartesian(f func([]interface{}), args [][]interface{}) {
	for i := range args {
		if len(args[i]) == 1 {
			continue
		}
		l := make([][]interface{}, len(args))
		r := make([][]interface{}, len(args))
		copy(l, args)
		copy(r, args)
		l[i] = args[i][:1]
		r[i] = args[i][1:]
		applyCartesian(f, l)
		applyCartesian(f, r)
		return
	}
	x := make([]interface{}, 0, len(args))
	for _, a := range args {
		x = append(x, a[0])
	}
	f(x)
}
