package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dhamidi/jsfront/js/diagnostics"
	"github.com/dhamidi/jsfront/js/parser"
	"github.com/dhamidi/jsfront/js/tree"
)

// input is one file read from disk or stdin.
type input struct {
	name       string
	source     string
	sourceType parser.SourceType
}

// readInput reads path, or stdin when path is "-". The source type comes
// from typeName when set and from the file extension otherwise.
func readInput(path, typeName string) (*input, error) {
	var data []byte
	var err error
	name := path
	if path == "-" {
		name = "<stdin>"
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	var st parser.SourceType
	switch {
	case typeName != "":
		st, err = parser.ParseSourceTypeName(typeName)
	case path == "-":
		st = parser.JavaScriptModule()
	default:
		st, err = parser.SourceTypeFromPath(path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w (use --source-type)", err)
	}
	return &input{name: name, source: string(data), sourceType: st}, nil
}

func (in *input) parse() (*tree.Tree, error) {
	t, err := tree.Parse(in.source, parser.WithSourceType(in.sourceType))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", in.name, err)
	}
	return t, nil
}

func printDiagnostics(w io.Writer, name, source string, diags []diagnostics.Diagnostic) error {
	return diagnostics.NewPrinter(name, source).PrintAll(w, diags)
}
