package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/chat-memory/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List logged interactions",
		Run:   runList,
	}

	cmd.Flags().StringP("session", "s", "", "Filter by session id (exact match)")
	cmd.Flags().StringP("tags", "t", "", "Filter by tags (comma-separated, OR semantics)")

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	session, _ := cmd.Flags().GetString("session")
	tagsStr, _ := cmd.Flags().GetString("tags")

	s, _, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	var interactions []model.Interaction
	switch {
	case session != "":
		interactions, err = s.BySession(cmd.Context(), session)
	case tagsStr != "":
		interactions, err = s.ByTags(cmd.Context(), splitTags(tagsStr))
	default:
		interactions, err = s.All(cmd.Context())
	}
	if err != nil {
		exitErr("list", err)
	}

	if len(interactions) == 0 {
		fmt.Println("[]")
		return
	}
	b, _ := json.MarshalIndent(interactions, "", "  ")
	fmt.Println(string(b))
}
