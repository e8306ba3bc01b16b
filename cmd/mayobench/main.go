// Command mayobench sweeps keygen/sign/verify timings across all four
// MAYO parameter sets and renders the results as an interactive HTML
// chart.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/tuneinsight/lattigo/v4/utils"

	"github.com/mayo-pq/mayo"
)

type sweepRow struct {
	variant  string
	keygenUS int64
	signUS   int64
	verifyUS int64
	sigBytes int
	cpkBytes int
}

// opTiming is a single labeled duration measurement, collected across a
// sweep and optionally dumped with -v for per-trial inspection.
type opTiming struct {
	label string
	dur   time.Duration
}

func track(start time.Time, label string, into *[]opTiming) {
	*into = append(*into, opTiming{label: label, dur: time.Since(start)})
}

// benchMessage deterministically derives a benchmark input message from a
// fixed seed, using lattigo's keyed PRNG, so repeated runs of mayobench
// exercise identical message content.
func benchMessage(seed []byte, n int) ([]byte, error) {
	prng, err := utils.NewKeyedPRNG(seed)
	if err != nil {
		return nil, fmt.Errorf("mayobench: seeding PRNG: %w", err)
	}
	msg := make([]byte, n)
	if _, err := prng.Read(msg); err != nil {
		return nil, fmt.Errorf("mayobench: reading PRNG: %w", err)
	}
	return msg, nil
}

func runSweep(trials int, verbose bool) ([]sweepRow, []opTiming, error) {
	rows := make([]sweepRow, 0, len(mayo.Variants))
	var timings []opTiming

	for _, p := range mayo.Variants {
		msg, err := benchMessage([]byte("mayobench:"+p.Name), 256)
		if err != nil {
			return nil, nil, err
		}

		row := sweepRow{variant: p.Name}
		var sk *mayo.PrivateKey
		var pk *mayo.PublicKey

		start := time.Now()
		for i := 0; i < trials; i++ {
			trialStart := time.Now()
			sk, pk, err = mayo.GenerateKey(p, nil)
			if err != nil {
				return nil, nil, fmt.Errorf("mayobench: %s keygen: %w", p.Name, err)
			}
			if verbose {
				track(trialStart, p.Name+":keygen", &timings)
			}
		}
		row.keygenUS = time.Since(start).Microseconds() / int64(trials)

		var sig *mayo.Signature
		start = time.Now()
		for i := 0; i < trials; i++ {
			trialStart := time.Now()
			sig, err = sk.Sign(nil, msg)
			if err != nil {
				return nil, nil, fmt.Errorf("mayobench: %s sign: %w", p.Name, err)
			}
			if verbose {
				track(trialStart, p.Name+":sign", &timings)
			}
		}
		row.signUS = time.Since(start).Microseconds() / int64(trials)
		row.sigBytes = len(sig.Bytes())
		row.cpkBytes = len(pk.Bytes())

		start = time.Now()
		for i := 0; i < trials; i++ {
			trialStart := time.Now()
			if err := pk.Verify(msg, sig); err != nil {
				return nil, nil, fmt.Errorf("mayobench: %s verify: %w", p.Name, err)
			}
			if verbose {
				track(trialStart, p.Name+":verify", &timings)
			}
		}
		row.verifyUS = time.Since(start).Microseconds() / int64(trials)

		rows = append(rows, row)
	}

	return rows, timings, nil
}

func renderChart(rows []sweepRow, outPath string) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "MAYO timing sweep",
			Subtitle: "average microseconds per operation, by parameter set",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "parameter set"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "microseconds"}),
	)

	variants := make([]string, len(rows))
	keygen := make([]opts.BarData, len(rows))
	sign := make([]opts.BarData, len(rows))
	verify := make([]opts.BarData, len(rows))
	for i, r := range rows {
		variants[i] = r.variant
		keygen[i] = opts.BarData{Value: r.keygenUS}
		sign[i] = opts.BarData{Value: r.signUS}
		verify[i] = opts.BarData{Value: r.verifyUS}
	}

	bar.SetXAxis(variants).
		AddSeries("keygen", keygen).
		AddSeries("sign", sign).
		AddSeries("verify", verify)

	page := components.NewPage().SetPageTitle("MAYO bench sweep")
	page.AddCharts(bar)

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return page.Render(f)
}

func main() {
	trials := flag.Int("trials", 5, "number of trials to average per parameter set")
	out := flag.String("out", "mayobench_sweep.html", "output HTML chart path")
	verbose := flag.Bool("v", false, "print every trial's timing, not just the per-variant average")
	flag.Parse()

	rows, timings, err := runSweep(*trials, *verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, "mayobench:", err)
		os.Exit(1)
	}

	if *verbose {
		for _, t := range timings {
			fmt.Printf("%-20s %v\n", t.label, t.dur)
		}
	}

	for _, r := range rows {
		fmt.Printf("%-8s keygen=%6dus sign=%6dus verify=%6dus sig=%dB cpk=%dB\n",
			r.variant, r.keygenUS, r.signUS, r.verifyUS, r.sigBytes, r.cpkBytes)
	}

	if err := renderChart(rows, *out); err != nil {
		fmt.Fprintln(os.Stderr, "mayobench: rendering chart:", err)
		os.Exit(1)
	}
	fmt.Println("wrote", *out)
}
