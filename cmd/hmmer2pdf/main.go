// Command hmmer2pdf draws a HMMER3 profile HMM as a PDF (via TikZ and
// a LaTeX compiler) or as plain TikZ source.
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path"

	"golang.org/x/term"

	"github.com/lkuchenb/hmmer2pdf/hmm"
	"github.com/lkuchenb/hmmer2pdf/latex"
	"github.com/lkuchenb/hmmer2pdf/tikz"
)

var (
	flagPDFLaTeX = false
	flagTexOnly  = false
	flagStyle    = ""
)

func init() {
	flag.BoolVar(&flagPDFLaTeX, "pdflatex", flagPDFLaTeX,
		"Use 'pdflatex' instead of 'lualatex'. WARNING - 'pdflatex' will "+
			"fail on larger HMMs due to memory limits.")
	flag.BoolVar(&flagTexOnly, "tex-only", flagTexOnly,
		"Write the TikZ source instead of compiling a PDF.")
	flag.StringVar(&flagStyle, "style", flagStyle,
		"A YAML style file overriding the default colors and spacing.")
	flag.Usage = usage

	log.SetFlags(0)
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [flags] [infile [outfile]]\n",
		path.Base(os.Args[0]))
	fmt.Fprintln(os.Stderr,
		"Reads from stdin and writes to stdout when the file arguments are omitted.")
	flag.PrintDefaults()
}

func main() {
	flag.Parse()
	if flag.NArg() > 2 {
		usage()
		os.Exit(2)
	}

	in := os.Stdin
	if flag.NArg() > 0 {
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			log.Fatalf("ERROR - %s", err)
		}
		defer f.Close()
		in = f
	}

	var out io.Writer = os.Stdout
	outIsTerm := term.IsTerminal(int(os.Stdout.Fd()))
	if flag.NArg() > 1 {
		f, err := os.Create(flag.Arg(1))
		if err != nil {
			log.Fatalf("ERROR - %s", err)
		}
		defer f.Close()
		out = f
		outIsTerm = false
	}
	if outIsTerm && !flagTexOnly {
		log.Fatal("ERROR - Refusing to write PDF bytes to a terminal. " +
			"Redirect the output or name an output file.")
	}

	style := tikz.DefaultStyle()
	if len(flagStyle) > 0 {
		var err error
		if style, err = tikz.ReadStyle(flagStyle); err != nil {
			log.Fatalf("ERROR - %s", err)
		}
	}

	compiler := latex.LuaLaTeX
	if flagPDFLaTeX {
		compiler = latex.PDFLaTeX
		fmt.Fprintln(os.Stderr, "WARNING - pdflatex will only work on small HMMs.")
	}
	if !flagTexOnly {
		if err := latex.Check(compiler); err != nil {
			if errors.Is(err, latex.ErrNoCompiler) {
				log.Fatalf("ERROR - Could not execute '%s' - Do you have a "+
					"LaTeX suite installed?", compiler)
			}
			log.Fatalf("ERROR - %s", err)
		}
	}

	fmt.Fprint(os.Stderr, "Reading HMM file...")
	model, err := hmm.Read(in)
	if err != nil {
		log.Fatalf("\nERROR - Failed to parse hmm file format: %s", err)
	}

	fmt.Fprint(os.Stderr, " Done.\nLaTeX Conversion...")
	doc := new(bytes.Buffer)
	if err := tikz.Write(doc, model, style); err != nil {
		log.Fatalf("\nERROR - %s", err)
	}

	if flagTexOnly {
		if _, err := out.Write(doc.Bytes()); err != nil {
			log.Fatalf("\nERROR - %s", err)
		}
		fmt.Fprintln(os.Stderr, " Done.")
		return
	}

	ws, err := latex.NewWorkspace("hmm")
	if err != nil {
		log.Fatalf("\nERROR - %s", err)
	}
	if err := ws.WriteDocument(doc.Bytes()); err != nil {
		log.Fatalf("\nERROR - %s", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Fprint(os.Stderr, " Done.\nCompiling...")
	if err := ws.Compile(ctx, compiler); err != nil {
		if ctx.Err() != nil {
			fmt.Fprintln(os.Stderr, "\nUser interrupted. Cleaning up temporary data.")
			ws.Remove()
			os.Exit(1)
		}
		log.Fatalf("\nERROR - LaTeX compiler failed. You may want to inspect "+
			"the .log and .tex files in\n%s", ws.Dir())
	}

	if err := ws.CopyPDF(out); err != nil {
		log.Fatalf("\nERROR - %s", err)
	}

	fmt.Fprintln(os.Stderr, " Done.\nCleaning up temporary data.")
	if err := ws.Remove(); err != nil {
		log.Fatalf("ERROR - %s", err)
	}
}
