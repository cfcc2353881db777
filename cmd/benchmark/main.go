package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"strconv"
	"time"

	"github.com/delaneyj/fiberparty/fiber"
	"github.com/delaneyj/fiberparty/memhost"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
)

func main() {
	profile := flag.String("profile", "default.pgo", "write a cpu profile to this file, empty to disable")
	flag.Parse()

	if *profile != "" {
		f, err := os.Create(*profile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	log.Printf("warming up")
	benchmarkPasses(false)
	benchmarkPasses(true)
}

var (
	sizes = []int{10, 100, 1_000}
	iters = 100
)

type app struct {
	r    *fiber.Reconciler
	host *memhost.Host
	root *fiber.RootController
}

func newApp() *app {
	host := memhost.New()
	r := fiber.CreateReconciler(host, fiber.WithOnError(func(err error) {
		log.Panic(err)
	}))
	return &app{
		r:    r,
		host: host,
		root: r.CreateRootController(memhost.NewContainer()),
	}
}

func (a *app) render(element any) {
	if err := a.r.RenderIntoController(element, a.root); err != nil {
		log.Panic(err)
	}
	a.host.Drain()
}

func keyedList(keys []string) *fiber.Element {
	items := make([]any, len(keys))
	for i, k := range keys {
		items[i] = fiber.CreateKeyedElement(fiber.HostType("li"), k, nil, k)
	}
	return fiber.H("ul", nil, items)
}

func keys(size, offset int) []string {
	out := make([]string, size)
	for i := range out {
		out[i] = strconv.Itoa(i + offset)
	}
	return out
}

func reversed(in []string) []string {
	out := make([]string, len(in))
	for i, k := range in {
		out[len(in)-1-i] = k
	}
	return out
}

type scenario struct {
	name string
	run  func(size int, tach *tachymeter.Tachymeter)
}

var scenarios = []scenario{
	{
		name: "mount",
		run: func(size int, tach *tachymeter.Tachymeter) {
			ks := keys(size, 0)
			for i := 0; i < iters; i++ {
				a := newApp()
				start := time.Now()
				a.render(keyedList(ks))
				tach.AddTime(time.Since(start))
			}
		},
	},
	{
		name: "identical",
		run: func(size int, tach *tachymeter.Tachymeter) {
			a := newApp()
			ks := keys(size, 0)
			a.render(keyedList(ks))
			for i := 0; i < iters; i++ {
				start := time.Now()
				a.render(keyedList(ks))
				tach.AddTime(time.Since(start))
			}
		},
	},
	{
		name: "reverse",
		run: func(size int, tach *tachymeter.Tachymeter) {
			a := newApp()
			forward := keys(size, 0)
			backward := reversed(forward)
			a.render(keyedList(forward))
			for i := 0; i < iters; i++ {
				next := backward
				if i%2 == 1 {
					next = forward
				}
				start := time.Now()
				a.render(keyedList(next))
				tach.AddTime(time.Since(start))
			}
		},
	},
	{
		name: "replace all",
		run: func(size int, tach *tachymeter.Tachymeter) {
			a := newApp()
			a.render(keyedList(keys(size, 0)))
			for i := 0; i < iters; i++ {
				next := keyedList(keys(size, (i+1)*size))
				start := time.Now()
				a.render(next)
				tach.AddTime(time.Since(start))
			}
		},
	},
	{
		name: "set state",
		run: func(size int, tach *tachymeter.Tachymeter) {
			setters := make([]*fiber.Setter[int], size)
			row := fiber.Component("Row", func(h *fiber.Hooks, props fiber.Props) (any, error) {
				i, _ := props["index"].(int)
				count, set := fiber.UseState(h, 0)
				setters[i] = set
				return fiber.H("li", nil, count), nil
			})
			rows := make([]any, size)
			for i := range rows {
				rows[i] = fiber.CreateKeyedElement(row, strconv.Itoa(i), fiber.Props{"index": i})
			}

			a := newApp()
			a.render(fiber.H("ul", nil, rows))
			for i := 0; i < iters; i++ {
				start := time.Now()
				if err := setters[i%size].Update(func(v int) int { return v + 1 }); err != nil {
					log.Panic(err)
				}
				a.host.Drain()
				tach.AddTime(time.Since(start))
			}
		},
	},
}

func benchmarkPasses(shouldRender bool) {
	tbl := table.NewWriter()
	tbl.SetTitle("Render passes")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	for _, s := range scenarios {
		for _, size := range sizes {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})
			s.run(size, tach)

			calc := tach.Calc()
			tbl.AppendRows([]table.Row{
				{
					fmt.Sprintf("%s: %d", s.name, size),
					calc.Time.Avg,
					calc.Time.Min,
					calc.Time.P75,
					calc.Time.P99,
					calc.Time.Max,
				},
			})
		}
	}

	if shouldRender {
		tbl.Render()
	}
}
