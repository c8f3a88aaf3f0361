package logs

import "testing"

func TestSubagentLabelsFromTaskDescription(t *testing.T) {
	records := decodeAll(t,
		`{"type":"assistant","message":{"role":"assistant","content":[`+
			`{"type":"tool_use","name":"Task","id":"abc","input":{"description":"Research","prompt":"go find things"}}]}}`,
		`{"type":"user","toolUseResult":{"agentId":"agent-1"},"message":{"role":"user","content":[`+
			`{"type":"tool_result","tool_use_id":"abc","content":"finished"}]}}`,
	)

	labels := SubagentLabels(records)
	if labels["agent-1"] != "Research" {
		t.Errorf(`labels["agent-1"] = %q, want "Research"`, labels["agent-1"])
	}
}

func TestSubagentLabelsGenericFallback(t *testing.T) {
	// A spawn result whose invocation was never seen (or carried no
	// description) still gets a label.
	records := decodeAll(t,
		`{"type":"user","toolUseResult":{"agentId":"agent-2"},"message":{"role":"user","content":[`+
			`{"type":"tool_result","tool_use_id":"missing","content":"finished"}]}}`,
	)

	labels := SubagentLabels(records)
	if labels["agent-2"] != "Agent agent-2" {
		t.Errorf(`labels["agent-2"] = %q, want "Agent agent-2"`, labels["agent-2"])
	}
}

func TestSubagentLabelsIgnoresOtherTools(t *testing.T) {
	records := decodeAll(t,
		`{"type":"assistant","message":{"role":"assistant","content":[`+
			`{"type":"tool_use","name":"Bash","id":"b1","input":{"description":"not a task"}}]}}`,
		`{"type":"user","toolUseResult":{"agentId":"agent-3"},"message":{"role":"user","content":[`+
			`{"type":"tool_result","tool_use_id":"b1","content":"out"}]}}`,
	)

	labels := SubagentLabels(records)
	if labels["agent-3"] != "Agent agent-3" {
		t.Errorf(`labels["agent-3"] = %q, want generic fallback`, labels["agent-3"])
	}
}

func TestSubagentLabelsMultipleTasks(t *testing.T) {
	records := decodeAll(t,
		`{"type":"assistant","message":{"role":"assistant","content":[`+
			`{"type":"tool_use","name":"Task","id":"t1","input":{"description":"First"}},`+
			`{"type":"tool_use","name":"Task","id":"t2","input":{"description":"Second"}}]}}`,
		`{"type":"user","toolUseResult":{"agentId":"a1"},"message":{"role":"user","content":[`+
			`{"type":"tool_result","tool_use_id":"t1","content":"done"}]}}`,
		`{"type":"user","toolUseResult":{"agentId":"a2"},"message":{"role":"user","content":[`+
			`{"type":"tool_result","tool_use_id":"t2","content":"done"}]}}`,
	)

	labels := SubagentLabels(records)
	if labels["a1"] != "First" || labels["a2"] != "Second" {
		t.Errorf("labels = %v", labels)
	}
}
