package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bf-lang/brainfuck/compiler"
	"github.com/bf-lang/brainfuck/vm"
)

// getCode resolves the program source from the -c flag, --stdin, or a
// file argument, in that order of precedence. The second return value
// is the filename used for error messages.
func getCode(cmd *cobra.Command, args []string) (string, string, error) {
	if code, _ := cmd.Flags().GetString("code"); code != "" {
		return code, "", nil
	}
	if useStdin, _ := cmd.Flags().GetBool("stdin"); useStdin {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), "", nil
	}
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		return string(data), args[0], nil
	}
	return "", "", fmt.Errorf("no code provided: pass a file, -c, or --stdin")
}

func vmOptions() []vm.Option {
	var opts []vm.Option
	if size := viper.GetInt("tape-size"); size > 0 {
		opts = append(opts, vm.WithTapeSize(size))
	}
	if steps := viper.GetInt("max-steps"); steps > 0 {
		opts = append(opts, vm.WithMaxSteps(steps))
	}
	return opts
}

func runHandler(cmd *cobra.Command, args []string) error {
	source, filename, err := getCode(cmd, args)
	if err != nil {
		return err
	}

	code, err := compiler.Compile(source, compiler.WithFilename(filename))
	if err != nil {
		return err
	}
	logger.Debug().
		Str("filename", filename).
		Int("instructions", code.InstructionCount()).
		Msg("compiled")

	machine := vm.New(code, vmOptions()...)
	start := time.Now()
	if err := machine.Run(cmd.Context()); err != nil {
		return err
	}
	elapsed := time.Since(start)
	logger.Debug().
		Int("steps", machine.Steps()).
		Dur("elapsed", elapsed).
		Msg("run complete")

	fmt.Fprint(cmd.OutOrStdout(), machine.Output())
	if timing, _ := cmd.Flags().GetBool("timing"); timing {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d steps in %v\n", machine.Steps(), elapsed)
	}
	return nil
}
