package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/chat-memory/internal/model"
	"github.com/rcliao/chat-memory/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show learning and database statistics",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

type statsOutput struct {
	Learning model.LearningStats `json:"learning"`
	Store    *store.Stats        `json:"store,omitempty"`
}

func runStats(cmd *cobra.Command, args []string) {
	s, cfg, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	out := statsOutput{Learning: newLearner(s, cfg).Stats(cmd.Context())}
	if st, err := s.Stats(cmd.Context(), cfg.DBPath); err == nil {
		out.Store = st
	}

	b, _ := json.MarshalIndent(out, "", "  ")
	fmt.Println(string(b))
}
