package layout

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// debugDump 是调试 JSON 的顶层结构：布局结果加上每个节点的种类，便于对照查看。
type debugDump struct {
	Kinds  map[NodeID]string `json:"kinds"`
	Result *Result           `json:"result"`
}

// WriteDebugJSON 将布局结果输出为 JSON，便于调试或可视化。
func WriteDebugJSON(t *Tree, res *Result, path string) error {
	if res == nil {
		return nil
	}
	dump := debugDump{Kinds: map[NodeID]string{}, Result: res}
	for _, id := range res.Order {
		if n := t.Node(id); n != nil {
			dump.Kinds[id] = n.Kind.String()
		}
	}
	data, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
