package logs

import (
	"encoding/json"
	"fmt"
)

// taskToolName is the tool invocation that spawns a subagent.
const taskToolName = "Task"

// SubagentLabels scans a parent log's records once and maps each
// spawned subagent id to a display label. The label comes from the
// Task invocation's input.description; the invocation is joined to the
// spawning record through the tool_result block that answers it.
//
// A single forward pass suffices because a Task's description is always
// recorded before its result arrives; out-of-order logs would need a
// second pass.
func SubagentLabels(records []Record) map[string]string {
	labels := make(map[string]string)
	descriptions := make(map[string]string)

	for _, rec := range records {
		for _, block := range rec.Blocks {
			if block.Type == BlockToolUse && block.ToolName == taskToolName && block.ToolID != "" {
				if desc := taskDescription(block.ToolInput); desc != "" {
					descriptions[block.ToolID] = desc
				}
			}
		}

		if rec.SubagentID == "" {
			continue
		}
		label := fmt.Sprintf("Agent %s", rec.SubagentID)
		for _, block := range rec.Blocks {
			if block.Type != BlockToolResult || block.ToolID == "" {
				continue
			}
			if desc, ok := descriptions[block.ToolID]; ok {
				label = desc
				break
			}
		}
		labels[rec.SubagentID] = label
	}
	return labels
}

func taskDescription(input json.RawMessage) string {
	if len(input) == 0 {
		return ""
	}
	var payload struct {
		Description string `json:"description"`
	}
	if err := json.Unmarshal(input, &payload); err != nil {
		return ""
	}
	return payload.Description
}
