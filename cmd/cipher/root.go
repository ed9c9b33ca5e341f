package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/classic-cipher-go/internal/cipher"
	"github.com/classic-cipher-go/internal/config"
	"github.com/classic-cipher-go/internal/pipeline"
	"github.com/classic-cipher-go/internal/textutil"
)

type cliOptions struct {
	inputFile  string
	outputFile string
	cipherKind string
	key        string
	workers    int
	raw        bool
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:           "cipher",
		Short:         "Encrypt and decrypt text with classical ciphers",
		Long:          "Applies a classical cipher (Caesar, Playfair or Vigenere) to text read from a file or stdin.",
		Version:       config.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.inputFile, "input", "i", "", "input file (default stdin)")
	pf.StringVarP(&opts.outputFile, "output", "o", "", "output file (default stdout)")
	pf.StringVarP(&opts.cipherKind, "cipher", "c", "caesar", "cipher kind (caesar, playfair, vigenere)")
	pf.StringVarP(&opts.key, "key", "k", "", "cipher key")
	pf.IntVarP(&opts.workers, "workers", "w", pipeline.DefaultWorkers, "number of worker goroutines")
	pf.BoolVar(&opts.raw, "raw", false, "skip input normalization (uppercase, digits spelled out)")

	root.AddCommand(newTransformCmd("encrypt", cipher.ModeEncrypt, opts))
	root.AddCommand(newTransformCmd("decrypt", cipher.ModeDecrypt, opts))
	root.AddCommand(newListCmd())

	return root
}

func newTransformCmd(name string, mode cipher.Mode, opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   name + " [text]",
		Short: name + " text with the chosen cipher",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var arg string
			if len(args) == 1 {
				arg = args[0]
			}
			return runTransform(mode, opts, arg)
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available cipher kinds",
		Run: func(cmd *cobra.Command, args []string) {
			for _, kind := range cipher.List() {
				fmt.Fprintln(cmd.OutOrStdout(), kind)
			}
		},
	}
}

func runTransform(mode cipher.Mode, opts *cliOptions, arg string) error {
	ciph, err := cipher.New(cipher.Kind(opts.cipherKind), opts.key)
	if err != nil {
		return err
	}

	p, err := pipeline.New(opts.workers)
	if err != nil {
		return err
	}

	text, err := readInput(opts, arg)
	if err != nil {
		return err
	}
	if !opts.raw {
		text = textutil.Normalize(text)
	}

	return writeOutput(opts, p.Transform(ciph, mode, text))
}

// readInput prefers a positional argument, then the input file, then stdin.
func readInput(opts *cliOptions, arg string) (string, error) {
	if arg != "" {
		return arg, nil
	}
	if opts.inputFile != "" {
		data, err := os.ReadFile(opts.inputFile)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

func writeOutput(opts *cliOptions, text string) error {
	if opts.outputFile != "" {
		if err := os.WriteFile(opts.outputFile, []byte(text+"\n"), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		return nil
	}
	fmt.Println(text)
	return nil
}
