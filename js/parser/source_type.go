package parser

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnknownSourceType is returned when a file name or source type name does
// not map to a known dialect.
var ErrUnknownSourceType = errors.New("unknown source type")

type Language uint8

const (
	JavaScript Language = iota
	TypeScript
)

type Variant uint8

const (
	Standard Variant = iota
	Jsx
)

type ModuleKind uint8

const (
	Script ModuleKind = iota
	Module
)

// SourceType selects the dialect a file is parsed as. The zero value is a
// plain JavaScript script.
type SourceType struct {
	Language Language
	Variant  Variant
	Module   ModuleKind
	// Definition marks a TypeScript declaration file (.d.ts); the whole file
	// is an ambient context.
	Definition bool
}

func JavaScriptScript() SourceType {
	return SourceType{}
}

func JavaScriptModule() SourceType {
	return SourceType{Module: Module}
}

func JsxModule() SourceType {
	return SourceType{Variant: Jsx, Module: Module}
}

func TypeScriptModule() SourceType {
	return SourceType{Language: TypeScript, Module: Module}
}

func TsxModule() SourceType {
	return SourceType{Language: TypeScript, Variant: Jsx, Module: Module}
}

func TypeScriptDefinition() SourceType {
	return SourceType{Language: TypeScript, Module: Module, Definition: true}
}

func (s SourceType) IsTypeScript() bool {
	return s.Language == TypeScript
}

func (s SourceType) IsJsx() bool {
	return s.Variant == Jsx
}

func (s SourceType) IsModule() bool {
	return s.Module == Module
}

func (s SourceType) String() string {
	var b strings.Builder
	switch {
	case s.Definition:
		b.WriteString("d.ts")
	case s.IsTypeScript() && s.IsJsx():
		b.WriteString("tsx")
	case s.IsTypeScript():
		b.WriteString("ts")
	case s.IsJsx():
		b.WriteString("jsx")
	default:
		b.WriteString("js")
	}
	if !s.IsModule() {
		b.WriteString(" script")
	}
	return b.String()
}

// SourceTypeFromPath picks the source type from a file name's extension.
// .cjs files are scripts; every other extension is parsed as a module.
func SourceTypeFromPath(path string) (SourceType, error) {
	base := strings.ToLower(filepath.Base(path))
	for _, suffix := range []string{".d.ts", ".d.mts", ".d.cts"} {
		if strings.HasSuffix(base, suffix) {
			return TypeScriptDefinition(), nil
		}
	}
	switch filepath.Ext(base) {
	case ".js", ".mjs":
		return JavaScriptModule(), nil
	case ".cjs":
		return JavaScriptScript(), nil
	case ".jsx":
		return JsxModule(), nil
	case ".ts", ".mts", ".cts":
		return TypeScriptModule(), nil
	case ".tsx":
		return TsxModule(), nil
	}
	return SourceType{}, fmt.Errorf("%w: %q", ErrUnknownSourceType, path)
}

// ParseSourceTypeName maps the names used on the command line (js, script,
// jsx, ts, tsx, d.ts) to source types.
func ParseSourceTypeName(name string) (SourceType, error) {
	switch strings.ToLower(name) {
	case "js", "module", "mjs":
		return JavaScriptModule(), nil
	case "script", "cjs":
		return JavaScriptScript(), nil
	case "jsx":
		return JsxModule(), nil
	case "ts", "typescript":
		return TypeScriptModule(), nil
	case "tsx":
		return TsxModule(), nil
	case "d.ts", "dts":
		return TypeScriptDefinition(), nil
	}
	return SourceType{}, fmt.Errorf("%w: %q", ErrUnknownSourceType, name)
}
