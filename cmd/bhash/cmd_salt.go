package main

import (
	"fmt"

	"github.com/codahale/bhash"
)

type saltCmd struct {
	Cost int `default:"10" env:"BHASH_COST" help:"The cost factor, between 4 and 31."`
}

func (cmd *saltCmd) Run(con *console) error {
	// Generate a new random salt.
	salt, err := bhash.GenerateSalt(cmd.Cost)
	if err != nil {
		return err
	}

	// Write out its textual form.
	_, err = fmt.Fprintln(con.stdout, salt)

	return err
}
