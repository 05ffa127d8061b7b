package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/etnz/rpm-pack-builder/internal/diag"
	"github.com/etnz/rpm-pack-builder/rpm"
	"github.com/etnz/rpm-pack-builder/spec"
)

// main is the entry point for the rpmpack CLI tool, a lower-level counterpart to
// rpmbuild grounded on the teacher's flag.FlagSet-per-subcommand style.
func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "binary":
		runBinary(os.Args[2:])
	case "source":
		runSource(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: rpmpack <command> [flags]")
	fmt.Println("\nCommands:")
	fmt.Println("  binary   Build binary sub-packages from a spec file")
	fmt.Println("  source   Build the source package from a spec file")
}

func runBinary(args []string) {
	fs := flag.NewFlagSet("binary", flag.ExitOnError)
	specPath := fs.String("spec", "", "path to the YAML spec file")
	outputDir := fs.String("output", ".", "directory packages are written into")
	rootDir := fs.String("root", "", "root-prefix override for resolving on-disk paths")
	verbose := fs.Bool("verbose", false, "enable verbose archiver output")
	fs.Parse(args)

	s, ctx := loadOrExit(*specPath, *rootDir, *outputDir, *verbose)
	if err := rpm.BuildBinaryPackages(ctx, s); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runSource(args []string) {
	fs := flag.NewFlagSet("source", flag.ExitOnError)
	specPath := fs.String("spec", "", "path to the YAML spec file")
	outputDir := fs.String("output", ".", "directory packages are written into")
	rootDir := fs.String("root", "", "root-prefix override for resolving on-disk paths")
	verbose := fs.Bool("verbose", false, "enable verbose archiver output")
	fs.Parse(args)

	s, ctx := loadOrExit(*specPath, *rootDir, *outputDir, *verbose)
	if err := rpm.BuildSourcePackage(ctx, s); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadOrExit(specPath, rootDir, outputDir string, verbose bool) (*spec.Spec, *rpm.BuildContext) {
	if specPath == "" {
		fmt.Fprintln(os.Stderr, "-spec is required")
		os.Exit(1)
	}
	s, err := spec.Load(specPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	sink := diag.New(verbose)
	ctx := rpm.NewBuildContext(rootDir, outputDir)
	ctx.Verbose = verbose
	ctx.Listener = func(e rpm.Event) { sink.Infof("%s", e.String()) }

	lock, err := ctx.Lock()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	_ = lock // held for the process lifetime; released on exit

	return s, ctx
}
