package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/chat-memory/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "save [prompt]",
		Short: "Log a chat turn",
		Long:  "Log one completed prompt/response pair. Prompt can be a positional arg or piped via stdin.",
		Run:   runSave,
	}

	cmd.Flags().StringP("session", "s", "", "Session id (required)")
	cmd.Flags().StringP("response", "r", "", "Assistant response (required)")
	cmd.Flags().StringP("tags", "t", "chat", "Comma-separated tags")

	cmd.MarkFlagRequired("session")
	cmd.MarkFlagRequired("response")

	RootCmd.AddCommand(cmd)
}

func runSave(cmd *cobra.Command, args []string) {
	session, _ := cmd.Flags().GetString("session")
	response, _ := cmd.Flags().GetString("response")
	tagsStr, _ := cmd.Flags().GetString("tags")

	var prompt string
	if len(args) > 0 {
		prompt = strings.Join(args, " ")
	} else {
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) == 0 {
			b, err := io.ReadAll(os.Stdin)
			if err != nil {
				exitErr("read stdin", err)
			}
			prompt = strings.TrimSpace(string(b))
		}
	}

	s, _, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	saved, err := s.Save(cmd.Context(), store.SaveParams{
		SessionID: session,
		Prompt:    prompt,
		Response:  response,
		Tags:      splitTags(tagsStr),
	})
	if err != nil {
		exitErr("save", err)
	}

	b, _ := json.Marshal(saved)
	fmt.Println(string(b))
}

func splitTags(raw string) []string {
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
