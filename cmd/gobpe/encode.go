package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newEncodeCmd() *cobra.Command {
	var allowSpecial []string

	cmd := &cobra.Command{
		Use:   "encode [text]",
		Short: "Encode text to token IDs using the saved model",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			text, err := readEncodeText(args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			tok, err := loadTokenizer(cfg)
			if err != nil {
				return err
			}

			ids, err := tok.Encode(text, allowSpecial)
			if err != nil {
				return err
			}

			out := make([]string, len(ids))
			for i, id := range ids {
				out[i] = fmt.Sprint(id)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(out, " "))

			return err
		},
	}

	cmd.Flags().StringSliceVar(&allowSpecial, "allow-special", nil, "Special tokens allowed as literals in the input")

	return cmd
}

// readEncodeText returns the positional argument, or stdin when absent.
func readEncodeText(args []string, stdin io.Reader) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("no input text (pass an argument or pipe to stdin)")
	}

	return string(data), nil
}
