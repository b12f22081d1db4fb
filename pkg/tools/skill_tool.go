package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/skillet-ai/skillet/pkg/logger"
	"github.com/skillet-ai/skillet/pkg/skills"
	tooltypes "github.com/skillet-ai/skillet/pkg/types/tools"
)

// SkillToolName is the reserved activation tool name. It must not collide
// with any registry tool name.
const SkillToolName = "use_skill"

// SkillTool lets the model activate a skill: the catalog loads and caches
// the full instructions, the activation set records the skill so the next
// system prompt carries its body. The tool result itself is only an
// acknowledgement.
type SkillTool struct {
	catalog *skills.Catalog
	active  *skills.ActivationSet
}

// SkillInput is the parameter contract for use_skill.
type SkillInput struct {
	SkillName string `json:"skill_name" jsonschema:"description=The name of the skill to activate"`
	Reason    string `json:"reason" jsonschema:"description=Brief explanation of why you need this skill"`
}

// NewSkillTool wires the activation tool to a catalog and a session's
// activation set.
func NewSkillTool(catalog *skills.Catalog, active *skills.ActivationSet) *SkillTool {
	return &SkillTool{catalog: catalog, active: active}
}

func (t *SkillTool) Name() string {
	return SkillToolName
}

func (t *SkillTool) Description() string {
	return "Activate a skill to access its full capabilities. Call this when you need to use a specific skill to complete the user's request."
}

func (t *SkillTool) GenerateSchema() *jsonschema.Schema {
	return GenerateSchema[SkillInput]()
}

func (t *SkillTool) ValidateInput(_ tooltypes.State, parameters string) error {
	var input SkillInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return errors.Wrap(err, "invalid input")
	}
	if input.SkillName == "" {
		return errors.New("skill_name is required")
	}
	return nil
}

func (t *SkillTool) TracingKVs(parameters string) ([]attribute.KeyValue, error) {
	var input SkillInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return nil, err
	}
	return []attribute.KeyValue{
		attribute.String("skill_name", input.SkillName),
		attribute.String("reason", input.Reason),
	}, nil
}

func (t *SkillTool) Execute(ctx context.Context, _ tooltypes.State, parameters string) tooltypes.ToolResult {
	var input SkillInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return tooltypes.ToolResult{Error: fmt.Sprintf("Error executing %s: %v", t.Name(), err)}
	}

	log := logger.G(ctx).WithFields(map[string]interface{}{
		"skill":  input.SkillName,
		"reason": input.Reason,
	})

	if t.active.IsActive(input.SkillName) {
		log.Debug("Skill already activated")
		return tooltypes.ToolResult{Result: activationSuccess(input.SkillName)}
	}

	if _, ok := t.catalog.Get(input.SkillName); !ok {
		log.Warn("Skill activation requested for unknown skill")
		return tooltypes.ToolResult{Error: activationFailure(input.SkillName)}
	}

	if _, err := t.catalog.Body(ctx, input.SkillName); err != nil {
		log.WithError(err).Warn("Skill activation failed")
		return tooltypes.ToolResult{Error: activationFailure(input.SkillName)}
	}

	t.active.Add(input.SkillName)
	log.Info("Skill activated")
	return tooltypes.ToolResult{Result: activationSuccess(input.SkillName)}
}

func activationSuccess(name string) string {
	return fmt.Sprintf("Skill '%s' activated successfully. You now have access to its full instructions and capabilities.", name)
}

func activationFailure(name string) string {
	return fmt.Sprintf("Failed to activate skill '%s'. Please check if the skill exists.", name)
}
