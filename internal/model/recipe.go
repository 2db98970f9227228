package model

import (
	"strconv"
	"strings"
)

// InstructionKind is the keyword of a Dockerfile instruction.
type InstructionKind string

const (
	KindFrom        InstructionKind = "FROM"
	KindRun         InstructionKind = "RUN"
	KindCopy        InstructionKind = "COPY"
	KindAdd         InstructionKind = "ADD"
	KindExpose      InstructionKind = "EXPOSE"
	KindEnv         InstructionKind = "ENV"
	KindArg         InstructionKind = "ARG"
	KindWorkdir     InstructionKind = "WORKDIR"
	KindCmd         InstructionKind = "CMD"
	KindEntrypoint  InstructionKind = "ENTRYPOINT"
	KindUser        InstructionKind = "USER"
	KindVolume      InstructionKind = "VOLUME"
	KindLabel       InstructionKind = "LABEL"
	KindHealthcheck InstructionKind = "HEALTHCHECK"
	KindShell       InstructionKind = "SHELL"
	KindStopsignal  InstructionKind = "STOPSIGNAL"
	KindOnbuild     InstructionKind = "ONBUILD"
)

// BuildInstruction is one step in a build recipe.
type BuildInstruction struct {
	Kind  InstructionKind
	Flags []string // leading --flag=value options, e.g. --from=build
	Args  []string
	Raw   string
	Stage int // index into BuildRecipe.Stages
	Line  int
}

// Flag returns the value of a --name=value flag, if present.
func (i BuildInstruction) Flag(name string) (string, bool) {
	prefix := "--" + name + "="
	for _, f := range i.Flags {
		if strings.HasPrefix(f, prefix) {
			return f[len(prefix):], true
		}
	}
	return "", false
}

// BuildStage is one FROM section of a multi-stage recipe.
type BuildStage struct {
	Index     int
	Name      string // AS name, empty if unnamed
	BaseImage string
	Line      int
}

// BuildRecipe is a parsed container build definition. Immutable after
// parse; instructions keep their file order.
type BuildRecipe struct {
	Path         string
	Stages       []BuildStage
	Instructions []BuildInstruction
}

// StageInstructions returns the instructions belonging to one stage,
// in file order.
func (r *BuildRecipe) StageInstructions(stage int) []BuildInstruction {
	var out []BuildInstruction
	for _, ins := range r.Instructions {
		if ins.Stage == stage {
			out = append(out, ins)
		}
	}
	return out
}

// StageIndex resolves a stage reference (AS name or numeric position)
// as used by COPY --from. Returns -1 for external images.
func (r *BuildRecipe) StageIndex(ref string) int {
	for _, s := range r.Stages {
		if s.Name != "" && strings.EqualFold(s.Name, ref) {
			return s.Index
		}
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 0 && n < len(r.Stages) {
		return n
	}
	return -1
}
