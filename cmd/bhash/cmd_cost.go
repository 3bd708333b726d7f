package main

import (
	"fmt"

	"github.com/codahale/bhash"
)

type costCmd struct {
	Hash string `arg:"" help:"The hash to inspect."`
}

func (cmd *costCmd) Run(con *console) error {
	cost, err := bhash.Cost(cmd.Hash)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(con.stdout, cost)

	return err
}
