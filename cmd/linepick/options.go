package main

import (
	"fmt"
	"os"

	flags "github.com/jessevdk/go-flags"
)

// options holds the command-line flags parsed by go-flags, per spec.md
// §6's CLI surface.
//
// Grounded on the dead root-level options.go's CLIOptions (struct-tag-
// driven flags.NewParser usage), trimmed to this core's actual surface;
// the teacher's many peco-specific flags (--rcfile, --layout, --exec,
// ...) have no analog here since configuration persistence and output
// post-processing are explicit Non-goals.
type options struct {
	Query string `short:"q" long:"query" description:"initial value for query"`
	CJK   bool   `long:"cjk" description:"use CJK-width tables for column computation"`

	Args struct {
		Input string `positional-arg-name:"INPUT"`
	} `positional-args:"yes"`
}

// parseOptions parses argv (excluding the program name) into an
// options value.
func parseOptions(argv []string) (*options, error) {
	var opts options
	p := flags.NewParser(&opts, flags.PrintErrors)
	if _, err := p.ParseArgs(argv); err != nil {
		return nil, fmt.Errorf("invalid command line options: %w", err)
	}
	return &opts, nil
}

func (o *options) hasInputFile() bool {
	return o.Args.Input != ""
}

func (o *options) openInput() (*os.File, error) {
	return os.Open(o.Args.Input)
}
