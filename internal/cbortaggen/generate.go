// Package cbortaggen implements the cbortaggen code generator: it loads a
// package with golang.org/x/tools/go/packages, finds struct types with
// `cbor:"..."` field tags, and emits MarshalCBOR/UnmarshalCBOR methods that
// call this module's EncodeArray/DecodeArray schema helpers in declared
// field order (spec.md §4.C/§4.F's schema hook, generated instead of
// reflected). Grounded on synadia-labs-cbor-go/cborgen/core/run.go, which
// does the equivalent for a neighboring wire format.
package cbortaggen

import (
	"bytes"
	"fmt"
	"go/format"
	"go/types"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"text/template"

	"golang.org/x/tools/go/packages"
)

// Options configures a generation run.
type Options struct {
	Verbose bool
	// Structs, if non-empty, restricts generation to these exact type
	// names (no package qualification).
	Structs []string
}

type fieldSpec struct {
	GoName   string
	CBORName string
}

type structSpec struct {
	Name   string
	Fields []fieldSpec
}

// Run loads the package in directory pkgPath, finds eligible struct
// types, and writes one "<package-dir>/cbortaggen_generated.go" companion
// file containing their MarshalCBOR/UnmarshalCBOR methods.
func Run(pkgPath string, opts Options) error {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedTypes | packages.NeedSyntax | packages.NeedTypesInfo,
		Dir:  pkgPath,
	}
	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return fmt.Errorf("cbortaggen: load %q: %w", pkgPath, err)
	}
	if packages.PrintErrors(pkgs) > 0 {
		return fmt.Errorf("cbortaggen: errors loading %q", pkgPath)
	}
	if len(pkgs) == 0 {
		return fmt.Errorf("cbortaggen: no package found at %q", pkgPath)
	}
	pkg := pkgs[0]

	var allowed map[string]struct{}
	if len(opts.Structs) > 0 {
		allowed = make(map[string]struct{}, len(opts.Structs))
		for _, name := range opts.Structs {
			allowed[strings.TrimSpace(name)] = struct{}{}
		}
	}

	structs := collectStructs(pkg.Types.Scope(), allowed)
	if len(structs) == 0 {
		if opts.Verbose {
			fmt.Fprintf(os.Stderr, "cbortaggen: no cbor-tagged structs found in %s\n", pkg.PkgPath)
		}
		return nil
	}

	src, err := render(pkg.Name, structs)
	if err != nil {
		return err
	}

	outPath := filepath.Join(pkgPath, "cbortaggen_generated.go")
	if opts.Verbose {
		fmt.Fprintf(os.Stderr, "cbortaggen: writing %s (%d types)\n", outPath, len(structs))
	}
	return os.WriteFile(outPath, src, 0o644)
}

// collectStructs walks the package scope for struct types whose fields
// carry a `cbor:"..."` tag, in field declaration order.
func collectStructs(scope *types.Scope, allowed map[string]struct{}) []structSpec {
	var out []structSpec
	for _, name := range scope.Names() {
		obj, ok := scope.Lookup(name).(*types.TypeName)
		if !ok {
			continue
		}
		if allowed != nil {
			if _, ok := allowed[name]; !ok {
				continue
			}
		}
		st, ok := obj.Type().Underlying().(*types.Struct)
		if !ok {
			continue
		}

		spec := structSpec{Name: name}
		hasTag := false
		for i := 0; i < st.NumFields(); i++ {
			f := st.Field(i)
			if !f.Exported() {
				continue
			}
			tag := reflect.StructTag(st.Tag(i)).Get("cbor")
			if tag == "-" {
				continue
			}
			if tag == "" {
				tag = f.Name()
			} else {
				hasTag = true
			}
			spec.Fields = append(spec.Fields, fieldSpec{GoName: f.Name(), CBORName: tag})
		}
		if hasTag && len(spec.Fields) > 0 {
			out = append(out, spec)
		}
	}
	return out
}

var genTemplate = template.Must(template.New("cbortaggen").Parse(`// Code generated by cbortaggen. DO NOT EDIT.

package {{.Package}}

import cbor "github.com/gocbor/tagcodec"

{{range .Structs}}
// MarshalCBOR implements cbor.Marshaler for {{.Name}}.
func (v *{{.Name}}) MarshalCBOR(enc *cbor.Encoder) error {
	return cbor.EncodeArray(enc,
{{- range .Fields}}
		v.{{.GoName}},
{{- end}}
	)
}

// UnmarshalCBOR implements cbor.Unmarshaler for {{.Name}}.
func (v *{{.Name}}) UnmarshalCBOR(dec *cbor.Decoder) error {
	return cbor.DecodeArray(dec,
{{- range .Fields}}
		&v.{{.GoName}},
{{- end}}
	)
}
{{end}}
`))

type templateData struct {
	Package string
	Structs []structSpec
}

func render(pkgName string, structs []structSpec) ([]byte, error) {
	var buf bytes.Buffer
	if err := genTemplate.Execute(&buf, templateData{Package: pkgName, Structs: structs}); err != nil {
		return nil, fmt.Errorf("cbortaggen: render template: %w", err)
	}
	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("cbortaggen: gofmt generated source: %w", err)
	}
	return formatted, nil
}
