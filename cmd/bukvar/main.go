// Command bukvar is a thin, single-file demonstration CLI: it parses one
// input file and writes its textual or binary DAST encoding to stdout. The
// full driver described in spec.md §6 (directory discovery, parallel
// workers, a mirrored output tree) is an external collaborator and out of
// scope here; this binary takes the §6 flags against a single path instead
// of fanning out across a directory. It does not offer -e/--extensions or a
// -v version flag, and -f json writes the textual tree encoding, not JSON.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/glagolica/bukvar"
	"github.com/glagolica/bukvar/ast"
	"github.com/glagolica/bukvar/bkerr"
	"github.com/glagolica/bukvar/docext"
	"github.com/glagolica/bukvar/encode"
	"github.com/glagolica/bukvar/internal/bkutil"
	"github.com/glagolica/bukvar/span"
	"github.com/glagolica/bukvar/streamdriver"
	"github.com/glagolica/bukvar/validate"
)

type config struct {
	format    string
	pretty    bool
	validate  bool
	sourcemap bool
	streaming bool
	verbose   bool
}

func main() {
	var cfg config

	root := &cobra.Command{
		Use:           "bukvar [flags] <file>",
		Short:         "Parse a Markdown or doc-comment source file into DAST",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, args []string) error {
			return run(&cfg, args[0])
		},
	}

	flags := root.Flags()
	flags.StringVarP(&cfg.format, "format", "f", "dast", "output format: dast (binary) or json|text (textual tree)")
	flags.BoolVar(&cfg.pretty, "pretty", false, "indent textual output")
	flags.BoolVar(&cfg.validate, "validate", false, "run the Validator and include diagnostics")
	flags.BoolVar(&cfg.sourcemap, "sourcemap", false, "include span info in output")
	flags.BoolVar(&cfg.streaming, "streaming", false, "read the input through a chunked reader")
	flags.BoolVar(&cfg.verbose, "verbose", false, "per-file progress to stderr")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}

func run(cfg *config, path string) error {
	var logOut = bkutil.PrefixWriter(filepath.Base(path)+": ", os.Stderr)
	if cfg.verbose {
		log.SetOutput(logOut)
		log.SetFlags(0)
		defer logOut.Close()
		log.Printf("parsing %s", path)
	}

	src, err := readInput(cfg, path)
	if err != nil {
		return err
	}

	doc, err := parseByExtension(path, src)
	if err != nil {
		return err
	}

	var diags []ast.Diagnostic
	if cfg.validate {
		diags = validate.Check(doc)
		for _, d := range diags {
			log.Printf("%v: %s", d.Severity, d.Message)
		}
	}

	flags := uint16(0)
	if cfg.sourcemap {
		flags |= encode.FlagHasSourceMap
	}

	switch cfg.format {
	case "dast":
		data := encode.EncodeBinary(doc, flags)
		os.Stdout.Write(data)
	case "json", "text":
		var out string
		if cfg.pretty {
			out = encode.EncodePretty(doc)
		} else {
			out = encode.EncodeCompact(doc)
		}
		fmt.Fprint(os.Stdout, out)
	default:
		return fmt.Errorf("unknown format %q", cfg.format)
	}

	if len(diags) > 0 {
		return fmt.Errorf("%d validation diagnostic(s)", len(diags))
	}
	return nil
}

func readInput(cfg *config, path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if cfg.streaming {
		return streamdriver.ReadAll(f, 64*1024)
	}
	return os.ReadFile(path)
}

// parseByExtension chooses the GFM or doc-comment pipeline per spec §6's
// recognized-extensions table, bundling every doc-comment fragment under a
// single synthetic Document for a uniform single-file output.
func parseByExtension(path string, src []byte) (*ast.Node, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".md", ".markdown":
		return bukvar.Parse(src), nil
	case ".js":
		return parseDocFragments(docext.JavaScript, src)
	case ".ts", ".tsx":
		return parseDocFragments(docext.TypeScript, src)
	case ".java":
		return parseDocFragments(docext.Java, src)
	case ".py", ".pyi":
		return parseDocFragments(docext.Python, src)
	default:
		return nil, fmt.Errorf("unrecognized extension %q", ext)
	}
}

func parseDocFragments(lang docext.Language, src []byte) (*ast.Node, error) {
	frags, err := bukvar.ParseDocComment(lang, src)
	if err != nil {
		return nil, err
	}
	root := ast.NewNode(ast.Document, span.Span{})
	for _, f := range frags {
		root.AppendChild(f)
	}
	return root, nil
}

func exitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	if strings.Contains(err.Error(), "validation diagnostic") {
		return 1
	}
	var extractErr *docext.ExtractError
	if errors.As(err, &extractErr) {
		return 1
	}
	var pathErr *fs.PathError
	if errors.Is(err, bkerr.ErrIO) || errors.As(err, &pathErr) {
		return 3
	}
	return 2
}
