package main

import (
	"fmt"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	var longest int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the saved model's vocabulary and merge table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			tok, err := loadTokenizer(cfg)
			if err != nil {
				return err
			}

			mode := "id-pair"
			if len(tok.Ranked()) > 0 {
				mode = "rank"
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Metric", "Value"})
			table.Append([]string{"Format", cfg.Paths.Format})
			table.Append([]string{"Merge mode", mode})
			table.Append([]string{"Vocabulary size", fmt.Sprint(tok.Vocab().Len())})
			table.Append([]string{"Merge rules", fmt.Sprint(tok.MergeCount())})
			table.Render()

			tokens := longestTokens(tok.Vocab().Snapshot(), longest)
			if len(tokens) > 0 {
				list := tablewriter.NewWriter(cmd.OutOrStdout())
				list.SetHeader([]string{"Longest tokens", "Length"})
				for _, t := range tokens {
					list.Append([]string{fmt.Sprintf("%q", t), fmt.Sprint(len([]rune(t)))})
				}
				list.Render()
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&longest, "longest", 5, "How many of the longest tokens to list")

	return cmd
}

// longestTokens returns up to n tokens ordered by descending rune length,
// ties broken lexicographically.
func longestTokens(entries map[int]string, n int) []string {
	tokens := make([]string, 0, len(entries))
	for _, t := range entries {
		tokens = append(tokens, t)
	}

	sort.Slice(tokens, func(i, j int) bool {
		li, lj := len([]rune(tokens[i])), len([]rune(tokens[j]))
		if li != lj {
			return li > lj
		}

		return tokens[i] < tokens[j]
	})

	if n > 0 && len(tokens) > n {
		tokens = tokens[:n]
	}

	return tokens
}
