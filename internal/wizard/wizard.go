package wizard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// Answers holds the user's responses from the interactive setup.
type Answers struct {
	Root       string
	Compose    string
	Proxy      string
	EnvExample string
	SourceDirs []string
	Format     string
}

// Run executes the interactive wizard, pre-filling paths from the
// detection result.
func Run(detection DetectionResult) (*Answers, error) {
	answers := &Answers{
		Root:       ".",
		Compose:    detection.ComposeFile,
		Proxy:      detection.ProxyFile,
		EnvExample: detection.EnvExample,
		Format:     "text",
	}

	var hints []string
	if detection.ComposeFile != "" {
		hints = append(hints, "compose file found: "+detection.ComposeFile)
	}
	if detection.ProxyFile != "" {
		hints = append(hints, "proxy config found: "+detection.ProxyFile)
	}
	if detection.EnvExample != "" {
		hints = append(hints, "env example found: "+detection.EnvExample)
	}
	if len(detection.Dockerfiles) > 0 {
		hints = append(hints, fmt.Sprintf("Dockerfiles found: %s", strings.Join(detection.Dockerfiles, ", ")))
	}

	desc := "Paths are relative to the project root."
	if len(hints) > 0 {
		desc += "\n\nAuto-detected:\n  " + strings.Join(hints, "\n  ")
	}

	var sourceDirs string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Composition file path").
				Description(desc).
				Value(&answers.Compose),
			huh.NewInput().
				Title("Reverse-proxy config path (optional)").
				Value(&answers.Proxy),
			huh.NewInput().
				Title("Documented env example file (optional)").
				Placeholder(".env.example").
				Value(&answers.EnvExample),
			huh.NewInput().
				Title("Source directories to scan (comma-separated, optional)").
				Description("Where to look for environment-variable references").
				Value(&sourceDirs),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Report format").
				Options(
					huh.NewOption("Text: styled, human-readable", "text"),
					huh.NewOption("JSON: structured, for automation", "json"),
				).
				Value(&answers.Format),
		),
	)

	if err := form.Run(); err != nil {
		return nil, err
	}

	for _, d := range strings.Split(sourceDirs, ",") {
		d = strings.TrimSpace(d)
		if d != "" {
			answers.SourceDirs = append(answers.SourceDirs, d)
		}
	}

	return answers, nil
}
