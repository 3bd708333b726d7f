package main

import (
	"fmt"

	"github.com/codahale/bhash"
)

type verifyCmd struct {
	Hash string `arg:"" help:"The hash to verify the password against."`
}

func (cmd *verifyCmd) Run(con *console) error {
	// Prompt for the password.
	password, err := askPassword(con, "Enter password: ")
	if err != nil {
		return err
	}

	// Verify it.
	ok, err := bhash.Verify(password, cmd.Hash)
	if err != nil {
		return err
	}

	if !ok {
		return errMismatch
	}

	_, err = fmt.Fprintln(con.stdout, "match")

	return err
}
