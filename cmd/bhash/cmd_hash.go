package main

import (
	"bytes"
	"fmt"

	"github.com/codahale/bhash"
)

type hashCmd struct {
	Cost int    `default:"10" env:"BHASH_COST" help:"The cost factor, between 4 and 31."`
	Salt string `help:"Use this salt instead of generating one. Overrides --cost."`
}

func (cmd *hashCmd) Run(con *console) error {
	// Parse the salt, if one was given, or generate a new one.
	salt, err := cmd.salt()
	if err != nil {
		return err
	}

	// Prompt for the password, and confirm it if it was typed.
	password, err := askPassword(con, "Enter password: ")
	if err != nil {
		return err
	}

	if _, ok := con.terminal(); ok {
		confirmed, err := askPassword(con, "Confirm password: ")
		if err != nil {
			return err
		}

		if !bytes.Equal(password, confirmed) {
			return errPasswordMismatch
		}
	}

	// Hash the password.
	hashed, err := bhash.Hash(password, salt)
	if err != nil {
		return err
	}

	// Write out the hash.
	_, err = fmt.Fprintln(con.stdout, hashed)

	return err
}

func (cmd *hashCmd) salt() (bhash.Salt, error) {
	if cmd.Salt != "" {
		return bhash.ParseSalt(cmd.Salt)
	}

	return bhash.GenerateSalt(cmd.Cost)
}
