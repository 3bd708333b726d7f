package main

import (
	"fmt"
	"time"

	"github.com/codahale/bhash"
)

type calibrateCmd struct {
	Target time.Duration `default:"250ms" env:"BHASH_TARGET" help:"The longest acceptable hashing time."`
	Max    int           `default:"16" help:"The largest cost factor to try."`
}

func (cmd *calibrateCmd) Run(con *console) error {
	if cmd.Max < bhash.MinCost || cmd.Max > bhash.MaxCost {
		return bhash.InvalidCostError(cmd.Max)
	}

	password := []byte("calibration password")
	best, took := bhash.MinCost, time.Duration(0)

	// Each step doubles the work, so stop at the first cost over the target.
	for cost := bhash.MinCost; cost <= cmd.Max; cost++ {
		start := time.Now()

		if _, err := bhash.GenerateFromPassword(password, cost); err != nil {
			return err
		}

		elapsed := time.Since(start)
		if elapsed > cmd.Target && cost > bhash.MinCost {
			break
		}

		best, took = cost, elapsed
	}

	_, err := fmt.Fprintf(con.stdout, "cost %d (%v per hash)\n", best, took.Round(time.Millisecond))

	return err
}
