package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/bf-lang/brainfuck/compiler"
)

var checkCmd = &cobra.Command{
	Use:   "check <files...>",
	Short: "Validate Brainfuck programs without executing them",
	Args:  cobra.MinimumNArgs(1),
	RunE:  checkHandler,
}

// checkFiles validates each file and returns the aggregated failures.
func checkFiles(paths []string) error {
	var result *multierror.Error
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("failed to read %s: %w", path, err))
			continue
		}
		if _, err := compiler.Compile(string(data), compiler.WithFilename(path)); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

func checkHandler(cmd *cobra.Command, args []string) error {
	f := formatter()
	var result *multierror.Error
	for _, path := range args {
		err := checkFiles([]string{path})
		if err != nil {
			result = multierror.Append(result, err)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", color.RedString("FAIL"), path)
			if merr, ok := err.(*multierror.Error); ok {
				for _, e := range merr.Errors {
					fmt.Fprint(cmd.ErrOrStderr(), f.Format(e))
				}
			}
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", color.GreenString("ok"), path)
	}
	if err := result.ErrorOrNil(); err != nil {
		return fmt.Errorf("%d of %d files failed validation", len(result.Errors), len(args))
	}
	return nil
}
