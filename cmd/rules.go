package cmd

import (
	"fmt"

	"github.com/NotDannyCrawford/aws-deploy-skill/internal/analyze"
	"github.com/NotDannyCrawford/aws-deploy-skill/internal/ui"
	"github.com/spf13/cobra"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the registered consistency rules",
	RunE:  runRules,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}

func runRules(cmd *cobra.Command, args []string) error {
	for _, r := range analyze.All() {
		meta := r.Metadata()
		fmt.Printf("%s %s\n", ui.Bold(meta.Name), ui.Dim("("+string(meta.Category)+")"))
		fmt.Printf("  %s\n", meta.Description)
	}
	return nil
}
