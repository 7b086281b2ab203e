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
	docCmd := &cobra.Command{
		Use:   "doc",
		Short: "Manage document contexts",
		Long:  "Document contexts are stored summaries of uploaded documents, kept separate from chat memory.",
	}

	addCmd := &cobra.Command{
		Use:   "add [content]",
		Short: "Store a document context",
		Long:  "Store a document context. Content can be a positional arg or piped via stdin.",
		Run:   runDocAdd,
	}
	addCmd.Flags().StringP("file-name", "n", "", "Original file name (required)")
	addCmd.Flags().StringP("summary", "s", "", "Document summary")
	addCmd.Flags().StringP("key-points", "k", "", "Comma-separated key points")
	addCmd.MarkFlagRequired("file-name")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List document contexts",
		Run:   runDocList,
	}

	rmCmd := &cobra.Command{
		Use:   "rm [id]",
		Short: "Delete one document context",
		Args:  cobra.ExactArgs(1),
		Run:   runDocRm,
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all document contexts",
		Run:   runDocClear,
	}
	clearCmd.Flags().Bool("yes", false, "Skip confirmation")

	docCmd.AddCommand(addCmd, listCmd, rmCmd, clearCmd)
	RootCmd.AddCommand(docCmd)
}

func runDocAdd(cmd *cobra.Command, args []string) {
	fileName, _ := cmd.Flags().GetString("file-name")
	summary, _ := cmd.Flags().GetString("summary")
	keyPointsStr, _ := cmd.Flags().GetString("key-points")

	var content string
	if len(args) > 0 {
		content = strings.Join(args, " ")
	} else {
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) == 0 {
			b, err := io.ReadAll(os.Stdin)
			if err != nil {
				exitErr("read stdin", err)
			}
			content = string(b)
		}
	}

	s, _, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	doc, err := s.SaveDocument(cmd.Context(), store.SaveDocumentParams{
		FileName:  fileName,
		Summary:   summary,
		KeyPoints: splitTags(keyPointsStr),
		Content:   content,
	})
	if err != nil {
		exitErr("doc add", err)
	}

	b, _ := json.Marshal(doc)
	fmt.Println(string(b))
}

func runDocList(cmd *cobra.Command, args []string) {
	s, _, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	docs, err := s.Documents(cmd.Context())
	if err != nil {
		exitErr("doc list", err)
	}

	if len(docs) == 0 {
		fmt.Println("[]")
		return
	}
	b, _ := json.MarshalIndent(docs, "", "  ")
	fmt.Println(string(b))
}

func runDocRm(cmd *cobra.Command, args []string) {
	s, _, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := s.RemoveDocument(cmd.Context(), args[0]); err != nil {
		exitErr("doc rm", err)
	}

	fmt.Printf(`{"ok":true,"id":%q}`+"\n", args[0])
}

func runDocClear(cmd *cobra.Command, args []string) {
	yes, _ := cmd.Flags().GetBool("yes")
	if !yes {
		exitErr("doc clear", fmt.Errorf("this deletes all document contexts; re-run with --yes to confirm"))
	}

	s, _, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := s.ClearDocuments(cmd.Context()); err != nil {
		exitErr("doc clear", err)
	}

	fmt.Println(`{"ok":true}`)
}
