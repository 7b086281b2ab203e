package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/chat-memory/internal/embedding"
	"github.com/rcliao/chat-memory/internal/learner"
	"github.com/rcliao/chat-memory/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "suggest [prompt]",
		Short: "Show patterns similar to a prompt",
		Long: "Rank learned patterns against a prompt. The default ranking is lexical\n" +
			"(Jaccard token overlap); --semantic switches to embedding cosine similarity\n" +
			"and requires CHAT_MEMORY_EMBED_PROVIDER to be configured.",
		Args: cobra.MinimumNArgs(1),
		Run:  runSuggest,
	}

	cmd.Flags().IntP("limit", "l", 5, "Max results")
	cmd.Flags().Bool("semantic", false, "Rank by embedding similarity instead of token overlap")

	RootCmd.AddCommand(cmd)
}

func runSuggest(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")
	semantic, _ := cmd.Flags().GetBool("semantic")
	prompt := strings.Join(args, " ")

	s, cfg, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	l := newLearner(s, cfg)

	var patterns []model.Pattern
	if semantic {
		e := embedding.NewFromEnv()
		if e == nil {
			exitErr("suggest", fmt.Errorf("no embedding provider configured (set CHAT_MEMORY_EMBED_PROVIDER)"))
		}
		patterns, err = learner.SemanticSuggestions(cmd.Context(), e, prompt, l.LearnFromMemory(cmd.Context()), limit)
		if err != nil {
			exitErr("suggest", err)
		}
	} else {
		patterns = l.Suggestions(cmd.Context(), prompt, limit)
	}

	if len(patterns) == 0 {
		fmt.Println("[]")
		return
	}
	b, _ := json.MarshalIndent(patterns, "", "  ")
	fmt.Println(string(b))
}
