package cmd

import (
	"fmt"
	"os"

	"github.com/NotDannyCrawford/aws-deploy-skill/internal/analyze"
	"github.com/NotDannyCrawford/aws-deploy-skill/internal/config"
	"github.com/NotDannyCrawford/aws-deploy-skill/internal/model"
	"github.com/NotDannyCrawford/aws-deploy-skill/internal/report"
	"github.com/NotDannyCrawford/aws-deploy-skill/internal/ui"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var (
	rootDir      string
	composeFile  string
	proxyFile    string
	envExample   string
	sourceDirs   []string
	reportFormat string
	reportOutput string
	buildAfter   bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run the deployment readiness checks",
	Long: `Parse the project's deployment artifacts, evaluate every consistency
rule, and print a severity-grouped report.

The exit status is non-zero only when a critical finding makes the
overall status "fail".`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&rootDir, "root", "", "project root to check (default: current directory)")
	checkCmd.Flags().StringVar(&composeFile, "compose", "", "path to the composition file (default: auto-detect)")
	checkCmd.Flags().StringVar(&proxyFile, "proxy", "", "path to the reverse-proxy config (default: auto-detect)")
	checkCmd.Flags().StringVar(&envExample, "env-example", "", "path to the documented env file (default: .env.example)")
	checkCmd.Flags().StringSliceVar(&sourceDirs, "source-dir", nil, "directories to scan for env references (default: project root)")
	checkCmd.Flags().StringVar(&reportFormat, "format", "", "report format: text, json")
	checkCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "write the report to a file instead of stdout")
	checkCmd.Flags().BoolVar(&buildAfter, "build", false, "offer to run 'docker compose build' after the checks")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Failed to load config", err.Error(), "run 'deploycheck init' to create a config file"))
		return err
	}

	applyCheckOverrides(cfg)

	fmt.Println(ui.Bold("Parsing deployment artifacts..."))

	bundle, results := analyze.Load(cfg)
	for _, r := range results {
		if r.Skipped {
			ui.ArtifactSkipped(r.Name)
		} else if r.Err != nil {
			ui.ArtifactFailed(r.Name, r.Err.Error())
		} else {
			ui.ArtifactDone(r.Name, r.Detail)
		}
	}
	fmt.Println()

	rep := report.Build(analyze.Evaluate(bundle))

	renderer, err := report.NewRenderer(cfg.Report.Format)
	if err != nil {
		return err
	}
	out, err := renderer.Render(rep)
	if err != nil {
		return err
	}

	if cfg.Report.Output != "" {
		if err := os.WriteFile(cfg.Report.Output, []byte(out), 0644); err != nil {
			fmt.Fprint(os.Stderr, ui.FormatError("Failed to write report", err.Error(), ""))
			return err
		}
		ui.Success(fmt.Sprintf("Wrote report to %s", cfg.Report.Output))
	} else {
		fmt.Print(out)
	}

	if buildAfter && !rep.Failed() {
		if err := offerBuild(cfg.Root); err != nil {
			fmt.Fprint(os.Stderr, ui.FormatError("Build failed", err.Error(), ""))
			return err
		}
	}

	if rep.Failed() {
		return fmt.Errorf("%d critical findings", rep.Counts[model.SeverityCritical])
	}
	return nil
}

func applyCheckOverrides(cfg *config.Config) {
	if rootDir != "" {
		cfg.Root = rootDir
	}
	if composeFile != "" {
		cfg.Compose = composeFile
	}
	if proxyFile != "" {
		cfg.Proxy = proxyFile
	}
	if envExample != "" {
		cfg.EnvExample = envExample
	}
	if len(sourceDirs) > 0 {
		cfg.Source.Dirs = sourceDirs
	}
	if reportFormat != "" {
		cfg.Report.Format = reportFormat
	}
	if reportOutput != "" {
		cfg.Report.Output = reportOutput
	}
}

// offerBuild asks for explicit confirmation and then runs the compose
// build as a plain external process. No timeout is imposed; interrupt
// it like any other process.
func offerBuild(root string) error {
	confirmed := false
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Run 'docker compose build' now?").
			Description("This invokes Docker and may take a while.").
			Value(&confirmed),
	))
	if err := form.Run(); err != nil {
		return err
	}
	if !confirmed {
		fmt.Println(ui.Hint("Skipped build."))
		return nil
	}

	dockerPath, err := findExecutable("docker")
	if err != nil {
		return fmt.Errorf("docker not found in PATH")
	}

	c := execCommand(dockerPath, "compose", "build")
	c.Dir = root
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("docker compose build: %w", err)
	}

	ui.Success("Build completed")
	return nil
}
