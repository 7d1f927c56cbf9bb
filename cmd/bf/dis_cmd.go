package main

import (
	"github.com/spf13/cobra"

	"github.com/bf-lang/brainfuck/compiler"
	"github.com/bf-lang/brainfuck/dis"
)

var disCmd = &cobra.Command{
	Use:   "dis [file]",
	Short: "Disassemble a compiled Brainfuck program",
	Args:  cobra.MaximumNArgs(1),
	RunE:  disHandler,
}

func disHandler(cmd *cobra.Command, args []string) error {
	source, filename, err := getCode(cmd, args)
	if err != nil {
		return err
	}
	code, err := compiler.Compile(source, compiler.WithFilename(filename))
	if err != nil {
		return err
	}
	dis.Print(dis.Disassemble(code), cmd.OutOrStdout())
	return nil
}
