package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "Mine the learned pattern set",
		Long: "Recompute patterns from the full chat history. Each pattern carries its\n" +
			"keyword signature, response template, frequency, and last-used time.",
		Run: runPatterns,
	}

	cmd.Flags().Bool("decayed", false, "Apply time decay to frequencies (view only, nothing is persisted)")

	RootCmd.AddCommand(cmd)
}

func runPatterns(cmd *cobra.Command, args []string) {
	decayed, _ := cmd.Flags().GetBool("decayed")

	s, cfg, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	l := newLearner(s, cfg)
	patterns := l.LearnFromMemory(cmd.Context())
	if decayed {
		patterns = l.DecayNow(patterns)
	}

	if len(patterns) == 0 {
		fmt.Println("[]")
		return
	}
	b, _ := json.MarshalIndent(patterns, "", "  ")
	fmt.Println(string(b))
}
