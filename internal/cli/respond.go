package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "respond [prompt]",
		Short: "Answer a prompt from learned patterns",
		Long: "Print the learned response template for a prompt, or null when no pattern\n" +
			"is similar enough. The output is a template: placeholders like {number} are\n" +
			"left for the caller to fill.",
		Args: cobra.MinimumNArgs(1),
		Run:  runRespond,
	}

	RootCmd.AddCommand(cmd)
}

func runRespond(cmd *cobra.Command, args []string) {
	prompt := strings.Join(args, " ")

	s, cfg, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	resp, ok := newLearner(s, cfg).LearnedResponse(cmd.Context(), prompt)
	if !ok {
		fmt.Println("null")
		return
	}
	b, _ := json.Marshal(resp)
	fmt.Println(string(b))
}
