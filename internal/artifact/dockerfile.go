package artifact

import (
	"bufio"
	"encoding/json"
	"os"
	"strings"

	"github.com/NotDannyCrawford/aws-deploy-skill/internal/model"
)

var knownInstructions = map[model.InstructionKind]bool{
	model.KindFrom:        true,
	model.KindRun:         true,
	model.KindCopy:        true,
	model.KindAdd:         true,
	model.KindExpose:      true,
	model.KindEnv:         true,
	model.KindArg:         true,
	model.KindWorkdir:     true,
	model.KindCmd:         true,
	model.KindEntrypoint:  true,
	model.KindUser:        true,
	model.KindVolume:      true,
	model.KindLabel:       true,
	model.KindHealthcheck: true,
	model.KindShell:       true,
	model.KindStopsignal:  true,
	model.KindOnbuild:     true,
}

// ParseRecipe parses a Dockerfile into a BuildRecipe. It handles line
// continuations, comments, multi-stage FROM ... AS names, leading
// --flag options, and JSON-array argument form. An unknown keyword or
// an instruction before the first FROM is a ParseError.
func ParseRecipe(path string) (*model.BuildRecipe, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer f.Close()

	recipe := &model.BuildRecipe{Path: path}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		lineNo    int
		startLine int
		pending   strings.Builder
	)

	flush := func() error {
		raw := strings.TrimSpace(pending.String())
		pending.Reset()
		if raw == "" {
			return nil
		}
		return appendInstruction(recipe, raw, startLine)
	}

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		if pending.Len() == 0 {
			if trimmed == "" || strings.HasPrefix(trimmed, "#") {
				continue
			}
			startLine = lineNo
		} else if strings.HasPrefix(trimmed, "#") {
			// comment inside a continuation
			continue
		}

		if strings.HasSuffix(trimmed, "\\") {
			pending.WriteString(strings.TrimSuffix(trimmed, "\\"))
			pending.WriteString(" ")
			continue
		}

		pending.WriteString(trimmed)
		if err := flush(); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if err := flush(); err != nil {
		return nil, err
	}

	if len(recipe.Stages) == 0 {
		return nil, parseErrorf(path, 1, "no FROM instruction")
	}
	return recipe, nil
}

func appendInstruction(recipe *model.BuildRecipe, raw string, line int) error {
	fields := strings.Fields(raw)
	kind := model.InstructionKind(strings.ToUpper(fields[0]))
	if !knownInstructions[kind] {
		return parseErrorf(recipe.Path, line, "unknown instruction %q", fields[0])
	}

	args := fields[1:]
	var flags []string
	for len(args) > 0 && strings.HasPrefix(args[0], "--") {
		flags = append(flags, args[0])
		args = args[1:]
	}

	// JSON-array form: CMD ["node", "server.js"]
	rest := strings.TrimSpace(strings.TrimPrefix(raw, fields[0]))
	for _, fl := range flags {
		rest = strings.TrimSpace(strings.TrimPrefix(rest, fl))
	}
	if strings.HasPrefix(rest, "[") {
		var jsonArgs []string
		if err := json.Unmarshal([]byte(rest), &jsonArgs); err == nil {
			args = jsonArgs
		}
	}

	if kind == model.KindFrom {
		if len(args) == 0 {
			return parseErrorf(recipe.Path, line, "FROM requires a base image")
		}
		stage := model.BuildStage{
			Index:     len(recipe.Stages),
			BaseImage: args[0],
			Line:      line,
		}
		if len(args) >= 3 && strings.EqualFold(args[1], "AS") {
			stage.Name = args[2]
		}
		recipe.Stages = append(recipe.Stages, stage)
	} else if len(recipe.Stages) == 0 && kind != model.KindArg {
		// ARG is the only instruction allowed before the first FROM
		return parseErrorf(recipe.Path, line, "%s before first FROM", kind)
	}

	stageIdx := len(recipe.Stages) - 1
	if stageIdx < 0 {
		stageIdx = 0
	}
	recipe.Instructions = append(recipe.Instructions, model.BuildInstruction{
		Kind:  kind,
		Flags: flags,
		Args:  args,
		Raw:   raw,
		Stage: stageIdx,
		Line:  line,
	})
	return nil
}
