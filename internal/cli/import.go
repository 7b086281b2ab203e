package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/chat-memory/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import interactions from a JSON export",
		Long:  "Read a JSON array of interactions from a file or stdin. Existing ids are skipped.",
		Run:   runImport,
	}

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	var data []byte
	var err error
	if len(args) > 0 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		exitErr("read input", err)
	}

	var interactions []model.Interaction
	if err := json.Unmarshal(data, &interactions); err != nil {
		exitErr("parse input", err)
	}

	s, _, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	n, err := s.Import(cmd.Context(), interactions)
	if err != nil {
		exitErr("import", err)
	}

	fmt.Printf(`{"imported":%d,"skipped":%d}`+"\n", n, len(interactions)-n)
}
