// Command btmgmt-gen generates the opcode and event code tables of package
// wire from a YAML definition.
//
// Usage:
//
//	btmgmt-gen -in opcodes.yaml -out opcodes_gen.go [-package wire]
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/tools/imports"
)

func main() {
	in := flag.String("in", "", "Path to the opcode table YAML")
	out := flag.String("out", "", "Output path for the generated Go file")
	pkg := flag.String("package", "wire", "Package name of the generated file")
	flag.Parse()

	if *in == "" || *out == "" {
		fmt.Fprintln(os.Stderr, "Usage: btmgmt-gen -in <opcodes.yaml> -out <file.go> [-package <name>]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(*in, *out, *pkg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(in, out, pkg string) error {
	table, err := LoadTable(in)
	if err != nil {
		return fmt.Errorf("loading %s: %w", in, err)
	}
	if err := table.Validate(); err != nil {
		return fmt.Errorf("validating %s: %w", in, err)
	}

	code, err := Generate(table, pkg, filepath.Base(in))
	if err != nil {
		return fmt.Errorf("generating: %w", err)
	}
	if err := writeFormatted(out, code); err != nil {
		return err
	}
	fmt.Printf("  generated %s\n", out)
	return nil
}

// writeFormatted formats Go source code with goimports and writes it to a file.
func writeFormatted(path string, code string) error {
	formatted, err := imports.Process(path, []byte(code), nil)
	if err != nil {
		// Write unformatted so you can debug the generator output
		_ = os.WriteFile(path+".broken", []byte(code), 0o644)
		return fmt.Errorf("goimports %s: %w", filepath.Base(path), err)
	}
	return os.WriteFile(path, formatted, 0o644)
}
