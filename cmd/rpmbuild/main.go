// Command rpmbuild is the cobra-based primary CLI: it loads a YAML spec and runs
// the binary and/or source package drivers over it (SPEC_FULL.md §6, §10).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/etnz/rpm-pack-builder/internal/diag"
	"github.com/etnz/rpm-pack-builder/rpm"
	"github.com/etnz/rpm-pack-builder/spec"
)

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		outputDir string
		rootDir   string
		verbose   bool
		fixOSTag  bool
		buildSrc  bool
		buildBin  bool
	)

	cmd := &cobra.Command{
		Use:   "rpmbuild <spec-file>",
		Short: "Assemble binary and source packages from a spec file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sink := diag.New(verbose)

			s, err := spec.Load(args[0])
			if err != nil {
				sink.Errorf("bad-spec", "%v", err)
				return err
			}

			ctx := rpm.NewBuildContext(rootDir, outputDir)
			ctx.Verbose = verbose
			ctx.WriteOSTagFromArch = !fixOSTag
			ctx.Listener = func(e rpm.Event) { sink.Infof("%s", e.String()) }

			lock, err := ctx.Lock()
			if err != nil {
				sink.Errorf("locked", "%v", err)
				return err
			}
			defer lock.Unlock()

			if buildBin {
				if err := rpm.BuildBinaryPackages(ctx, s); err != nil {
					sink.Errorf("build", "%v", err)
					return err
				}
			}
			if buildSrc {
				if err := rpm.BuildSourcePackage(ctx, s); err != nil {
					sink.Errorf("build", "%v", err)
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote packages to %s\n", outputDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", ".", "directory packages are written into")
	cmd.Flags().StringVar(&rootDir, "root", "", "root-prefix override for resolving on-disk paths")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose archiver output and progress logging")
	cmd.Flags().BoolVar(&fixOSTag, "fix-os-tag", false, "write the corrected OS tag instead of preserving the historical arch/OS tag swap")
	cmd.Flags().BoolVar(&buildBin, "binary", true, "build binary sub-packages")
	cmd.Flags().BoolVar(&buildSrc, "source", false, "build the source package")

	return cmd
}
