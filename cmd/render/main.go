package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/delaneyj/fiberparty/fiber"
	"github.com/delaneyj/fiberparty/memhost"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

const (
	clicksKey  = "clicks"
	itemsKey   = "items"
	verboseKey = "verbose"
	opsKey     = "ops"
)

func main() {
	cmd := &cli.Command{
		Name:  "render",
		Usage: "Mount a small counter app on the in-memory host and print every commit",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  clicksKey,
				Usage: "Number of simulated clicks, one commit each",
				Value: 3,
			},
			&cli.UintFlag{
				Name:  itemsKey,
				Usage: "Number of keyed list items",
				Value: 5,
			},
			&cli.BoolFlag{
				Name:  verboseKey,
				Usage: "Log reconciler diagnostics",
			},
			&cli.BoolFlag{
				Name:  opsKey,
				Usage: "Print the host operations of each commit",
				Value: true,
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	logger := zap.NewNop()
	if cmd.Bool(verboseKey) {
		dev, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		logger = dev
	}
	defer logger.Sync()

	host := memhost.New()
	var flushErr error
	r := fiber.CreateReconciler(host,
		fiber.WithLogger(logger),
		fiber.WithOnError(func(err error) {
			flushErr = err
		}),
	)
	container := memhost.NewContainer()
	root := r.CreateRootController(container)

	var click *fiber.Setter[int]
	items := int(cmd.Uint(itemsKey))
	counterApp := fiber.Component("CounterApp", func(h *fiber.Hooks, props fiber.Props) (any, error) {
		count, set := fiber.UseState(h, 0)
		click = set

		// rotate the list by one on every click
		rows := make([]any, items)
		for i := range rows {
			id := strconv.Itoa((i + count) % items)
			rows[i] = fiber.CreateKeyedElement(fiber.HostType("li"), id, fiber.Props{"id": "item-" + id}, "item ", id)
		}
		return fiber.H("main", nil,
			fiber.H("h1", fiber.Props{"data-count": count}, "clicked ", count, " times"),
			fiber.H("ul", nil, rows),
		), nil
	})

	report := func(label string) error {
		if flushErr != nil {
			return flushErr
		}
		fmt.Printf("== %s (commit %d)\n%s\n", label, root.Commits(), memhost.InnerMarkup(container))
		if cmd.Bool(opsKey) {
			for _, op := range host.Ops {
				fmt.Printf("   %s\n", op)
			}
		}
		host.Reset()
		return nil
	}

	if err := r.RenderIntoController(fiber.CreateElement(counterApp, nil), root); err != nil {
		return err
	}
	host.Drain()
	if err := report("mount"); err != nil {
		return err
	}

	clicks := int(cmd.Uint(clicksKey))
	for i := 0; i < clicks; i++ {
		if err := click.Update(func(v int) int { return v + 1 }); err != nil {
			return err
		}
		host.Drain()
		if err := report(fmt.Sprintf("click %d", i+1)); err != nil {
			return err
		}
	}
	return nil
}
