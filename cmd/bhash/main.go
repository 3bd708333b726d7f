package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"golang.org/x/term"
)

type cli struct {
	Salt      saltCmd      `cmd:"" help:"Generate a new salt."`
	Hash      hashCmd      `cmd:"" help:"Hash a password."`
	Verify    verifyCmd    `cmd:"" help:"Verify a password against a hash."`
	Cost      costCmd      `cmd:"" help:"Print the cost factor of a hash."`
	Calibrate calibrateCmd `cmd:"" help:"Find the largest cost factor which hashes within a time budget."`
}

// console holds the standard streams a command reads passwords from and writes results to.
type console struct {
	stdin          io.Reader
	stdout, stderr io.Writer
}

func main() {
	con := &console{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}

	var cli cli

	parser := newParser(&cli, con)

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	err = ctx.Run(con)
	ctx.FatalIfErrorf(err)
}

func newParser(cli *cli, con *console, options ...kong.Option) *kong.Kong {
	return kong.Must(cli, append([]kong.Option{
		kong.Name("bhash"),
		kong.Description("Generate and verify bcrypt password hashes."),
		kong.Writers(con.stdout, con.stderr),
	}, options...)...)
}

// askPassword reads a password from the terminal without echoing it, or, if stdin is not a
// terminal, reads the first line of stdin.
func askPassword(con *console, prompt string) ([]byte, error) {
	if f, ok := con.terminal(); ok {
		defer func() { _, _ = fmt.Fprintln(con.stderr) }()

		_, _ = fmt.Fprint(con.stderr, prompt)

		return term.ReadPassword(int(f.Fd()))
	}

	line, err := bufio.NewReader(con.stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	return []byte(strings.TrimRight(line, "\r\n")), nil
}

// terminal returns stdin as a file if it is an interactive terminal.
func (con *console) terminal() (*os.File, bool) {
	f, ok := con.stdin.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return nil, false
	}

	return f, true
}

var (
	errPasswordMismatch = errors.New("passwords do not match")
	errMismatch         = errors.New("password does not match hash")
)
