package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/lestrrat-go/xot"
	"github.com/lestrrat-go/xot/internal/cliutil"
)

const version = "0.1.0"

type cmdopts struct {
	Format   bool `long:"format"`
	HTML     bool `long:"html"`
	NoBlanks bool `long:"noblanks"`
	Version  bool `long:"version"`
}

func main() {
	os.Exit(_main())
}

func showVersion() {
	fmt.Printf("xot-lint: using xot version %s\n", version)
}

func showUsage() {
	fmt.Printf(`Usage : xot-lint [options] XMLfiles ...
	Parse the XML files and output the result of the parsing
	--format : reformat and reindent the output
	--html : output in HTML5 mode
	--noblanks : drop insignificant whitespace
	--version : display the version of the XML library used
`)
}

func _main() int {
	opts := cmdopts{}
	args, err := flags.ParseArgs(&opts, os.Args[1:])
	if err != nil {
		showUsage()
		return 1
	}

	if opts.Version {
		showVersion()
		return 0
	}

	inputCh := make(chan io.Reader)
	errCh := make(chan error)
	switch {
	case len(args) > 0: // filename present
		go func() {
			defer close(inputCh)
			for _, f := range args {
				fh, err := os.Open(f)
				if err != nil {
					errCh <- err
					return
				}
				inputCh <- fh
			}
		}()
	case !cliutil.IsTty(os.Stdin.Fd()):
		go func() {
			defer close(inputCh)
			inputCh <- os.Stdin
		}()
	default:
		showUsage()
		return 1
	}

	for in := range inputCh {
		arena := xot.New()
		doc, err := arena.ParseReader(in)
		if c, ok := in.(io.Closer); ok && c != os.Stdin {
			c.Close()
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			return 1
		}

		if opts.NoBlanks {
			arena.RemoveInsignificantWhitespace(doc)
		}
		if err := arena.CreateMissingPrefixes(doc); err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			return 1
		}

		options := []xot.SerializeOption{
			xot.WithPretty(opts.Format),
		}
		if opts.HTML {
			options = append(options,
				xot.WithHTML5(true),
				xot.WithDoctype(xot.Doctype{HTML5: true}),
			)
		}
		if err := arena.Serialize(os.Stdout, doc, options...); err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			return 1
		}
		fmt.Println()
	}

	select {
	case err := <-errCh:
		fmt.Fprintf(os.Stderr, "%s", err)
		return 1
	default:
	}

	return 0
}
