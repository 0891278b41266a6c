package renderer

import (
	"fmt"
	"strings"

	"github.com/spaghettifunk/anima-ssao/engine/resources"
)

type RenderCommandType int

const (
	CMD_NONE RenderCommandType = iota
	CMD_CLEAR
	CMD_SCENEPASS
	CMD_QUAD
	CMD_FORWARDLIGHTS
	CMD_LIGHTVOLUMES
	CMD_RENDERUI
)

var commandTypeNames = map[string]RenderCommandType{
	"clear":         CMD_CLEAR,
	"scenepass":     CMD_SCENEPASS,
	"quad":          CMD_QUAD,
	"forwardlights": CMD_FORWARDLIGHTS,
	"lightvolumes":  CMD_LIGHTVOLUMES,
	"renderui":      CMD_RENDERUI,
}

func ParseRenderCommandType(s string) (RenderCommandType, error) {
	if t, ok := commandTypeNames[strings.ToLower(s)]; ok {
		return t, nil
	}
	return CMD_NONE, fmt.Errorf("unknown render command type '%s'", s)
}

func (t RenderCommandType) String() string {
	for name, v := range commandTypeNames {
		if v == t {
			return name
		}
	}
	return "none"
}

/**
 * @brief An offscreen render target declared by a render path.
 */
type RenderTargetInfo struct {
	Name    string
	Tag     string
	Format  string
	Size    [2]int
	Divisor [2]int
	Filter  bool
	Enabled bool
}

/**
 * @brief One step of a render path.
 */
type RenderPathCommand struct {
	Tag          string
	Type         RenderCommandType
	Pass         string
	Enabled      bool
	Sort         string
	Metadata     string
	VertexLights bool
	ClearColor   string
	ClearDepth   float32
	ClearStencil int
	VS           string
	PS           string
	VSDefines    string
	PSDefines    string
	Output       string
	Textures     map[string]string
	Parameters   map[string][]float32
}

func (cmd *RenderPathCommand) clone() RenderPathCommand {
	out := *cmd
	out.Textures = make(map[string]string, len(cmd.Textures))
	for k, v := range cmd.Textures {
		out.Textures[k] = v
	}
	out.Parameters = make(map[string][]float32, len(cmd.Parameters))
	for k, v := range cmd.Parameters {
		out.Parameters[k] = append([]float32(nil), v...)
	}
	return out
}

// HasParameter reports whether the command declares the named shader parameter.
func (cmd *RenderPathCommand) HasParameter(name string) bool {
	_, ok := cmd.Parameters[name]
	return ok
}

/**
 * @brief An ordered list of render targets and commands describing how a
 * viewport is drawn, plus shader parameters shared by its commands.
 */
type RenderPath struct {
	Name          string
	RenderTargets []RenderTargetInfo
	Commands      []RenderPathCommand

	// parameters set on the path that no command declares
	parameters map[string][]float32
}

func NewRenderPath() *RenderPath {
	return &RenderPath{
		parameters: make(map[string][]float32),
	}
}

// NewRenderPathFromDefinition builds a render path from its on-disk form.
func NewRenderPathFromDefinition(def *resources.RenderPathDefinition) (*RenderPath, error) {
	rp := NewRenderPath()
	rp.Name = def.Name
	if err := rp.Append(def); err != nil {
		return nil, err
	}
	return rp, nil
}

// Clone returns a deep copy; changes to the copy never affect rp.
func (rp *RenderPath) Clone() *RenderPath {
	out := NewRenderPath()
	out.Name = rp.Name
	out.RenderTargets = append([]RenderTargetInfo(nil), rp.RenderTargets...)
	out.Commands = make([]RenderPathCommand, len(rp.Commands))
	for i := range rp.Commands {
		out.Commands[i] = rp.Commands[i].clone()
	}
	for k, v := range rp.parameters {
		out.parameters[k] = append([]float32(nil), v...)
	}
	return out
}

/**
 * @brief Appends the render targets and commands of a definition, typically
 * a post-process effect, to the end of the path. Nothing is appended if any
 * command of the definition is invalid.
 */
func (rp *RenderPath) Append(def *resources.RenderPathDefinition) error {
	if def == nil {
		return fmt.Errorf("append render path: nil definition")
	}
	commands := make([]RenderPathCommand, 0, len(def.Commands))
	for i, cd := range def.Commands {
		cmdType, err := ParseRenderCommandType(cd.Type)
		if err != nil {
			return fmt.Errorf("render path '%s' command %d: %w", def.Name, i, err)
		}
		cmd := RenderPathCommand{
			Tag:          cd.Tag,
			Type:         cmdType,
			Pass:         cd.Pass,
			Enabled:      cd.Enabled == nil || *cd.Enabled,
			Sort:         cd.Sort,
			Metadata:     cd.Metadata,
			VertexLights: cd.VertexLights,
			ClearColor:   cd.ClearColor,
			ClearDepth:   1.0,
			VS:           cd.VS,
			PS:           cd.PS,
			VSDefines:    cd.VSDefines,
			PSDefines:    cd.PSDefines,
			Output:       cd.Output,
			Textures:     make(map[string]string, len(cd.Textures)),
			Parameters:   make(map[string][]float32, len(cd.Parameters)),
		}
		if cmd.Output == "" {
			cmd.Output = "viewport"
		}
		if cd.ClearDepth != nil {
			cmd.ClearDepth = *cd.ClearDepth
		}
		if cd.ClearStencil != nil {
			cmd.ClearStencil = *cd.ClearStencil
		}
		for k, v := range cd.Textures {
			cmd.Textures[k] = v
		}
		for k, v := range cd.Parameters {
			cmd.Parameters[k] = append([]float32(nil), v...)
		}
		commands = append(commands, cmd)
	}

	for _, td := range def.Targets {
		rp.RenderTargets = append(rp.RenderTargets, RenderTargetInfo{
			Name:    td.Name,
			Tag:     td.Tag,
			Format:  td.Format,
			Size:    td.Size,
			Divisor: td.Divisor,
			Filter:  td.Filter,
			Enabled: td.Enabled == nil || *td.Enabled,
		})
	}
	rp.Commands = append(rp.Commands, commands...)
	return nil
}

// SetEnabled enables or disables every render target and command with the tag.
func (rp *RenderPath) SetEnabled(tag string, enabled bool) {
	for i := range rp.RenderTargets {
		if strings.EqualFold(rp.RenderTargets[i].Tag, tag) {
			rp.RenderTargets[i].Enabled = enabled
		}
	}
	for i := range rp.Commands {
		if strings.EqualFold(rp.Commands[i].Tag, tag) {
			rp.Commands[i].Enabled = enabled
		}
	}
}

// IsEnabled reports whether any command with the tag is enabled.
func (rp *RenderPath) IsEnabled(tag string) bool {
	for i := range rp.Commands {
		if strings.EqualFold(rp.Commands[i].Tag, tag) && rp.Commands[i].Enabled {
			return true
		}
	}
	return false
}

// IsAdded reports whether any render target or command carries the tag.
func (rp *RenderPath) IsAdded(tag string) bool {
	for i := range rp.RenderTargets {
		if strings.EqualFold(rp.RenderTargets[i].Tag, tag) {
			return true
		}
	}
	for i := range rp.Commands {
		if strings.EqualFold(rp.Commands[i].Tag, tag) {
			return true
		}
	}
	return false
}

// ToggleEnabled flips the enabled state of every render target and command with the tag.
func (rp *RenderPath) ToggleEnabled(tag string) {
	for i := range rp.RenderTargets {
		if strings.EqualFold(rp.RenderTargets[i].Tag, tag) {
			rp.RenderTargets[i].Enabled = !rp.RenderTargets[i].Enabled
		}
	}
	for i := range rp.Commands {
		if strings.EqualFold(rp.Commands[i].Tag, tag) {
			rp.Commands[i].Enabled = !rp.Commands[i].Enabled
		}
	}
}

func (rp *RenderPath) RemoveRenderTargets(tag string) {
	kept := rp.RenderTargets[:0]
	for _, rt := range rp.RenderTargets {
		if !strings.EqualFold(rt.Tag, tag) {
			kept = append(kept, rt)
		}
	}
	rp.RenderTargets = kept
}

// RemoveCommands drops every command with the tag.
func (rp *RenderPath) RemoveCommands(tag string) {
	kept := rp.Commands[:0]
	for _, cmd := range rp.Commands {
		if !strings.EqualFold(cmd.Tag, tag) {
			kept = append(kept, cmd)
		}
	}
	rp.Commands = kept
}

/**
 * @brief Sets a shader parameter on every command that declares it. A name
 * no command declares is stored on the path itself.
 */
func (rp *RenderPath) SetShaderParameter(name string, value ...float32) {
	found := false
	for i := range rp.Commands {
		if rp.Commands[i].HasParameter(name) {
			rp.Commands[i].Parameters[name] = append([]float32(nil), value...)
			found = true
		}
	}
	if !found {
		rp.parameters[name] = append([]float32(nil), value...)
	}
}

// GetShaderParameter returns the value of the first command declaring name,
// falling back to the path-level table.
func (rp *RenderPath) GetShaderParameter(name string) ([]float32, bool) {
	for i := range rp.Commands {
		if v, ok := rp.Commands[i].Parameters[name]; ok {
			return v, true
		}
	}
	v, ok := rp.parameters[name]
	return v, ok
}

// EnabledCommands returns the commands that will execute, in order.
func (rp *RenderPath) EnabledCommands() []RenderPathCommand {
	out := make([]RenderPathCommand, 0, len(rp.Commands))
	for i := range rp.Commands {
		if rp.Commands[i].Enabled {
			out = append(out, rp.Commands[i])
		}
	}
	return out
}
