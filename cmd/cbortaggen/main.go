// Command cbortaggen generates MarshalCBOR/UnmarshalCBOR schema methods for
// struct-tagged types, the ahead-of-time counterpart to this module's
// reflection-free type dispatch (component C/F). It is grounded on
// synadia-labs-cbor-go/cborgen, which takes the same struct-tag-driven,
// kong-CLI approach for a neighboring wire format.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/gocbor/tagcodec/internal/cbortaggen"
)

// CLI is the cbortaggen command line: a package directory in, one
// "cbortaggen_generated.go" companion file out in that directory, holding
// the methods for every struct in the package that has a
// `cbor:"..."`-tagged field.
type CLI struct {
	Package string   `arg:"" help:"Directory of the package to scan" default:"."`
	Structs []string `short:"s" help:"Only generate for these struct types (may be repeated)"`
	Verbose bool     `short:"v" help:"Enable verbose diagnostics"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("cbortaggen"),
		kong.Description("Generate MarshalCBOR/UnmarshalCBOR methods for cbor-tagged structs."),
	)

	if err := cbortaggen.Run(cli.Package, cbortaggen.Options{
		Verbose: cli.Verbose,
		Structs: cli.Structs,
	}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		ctx.Exit(1)
	}
}
