// Package memory provides in-memory repository implementations backing
// unit tests and local development. Each repository serializes
// operations on its entities with a mutex, mirroring the per-document
// atomic read-modify-write contract of the durable store: concurrent
// mutations of the same record run one at a time and each sees the
// previous writer's result.
package memory

import "encoding/json"

// clone returns a deep copy so callers never alias stored state.
func clone[T any](v *T) *T {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		panic("memory: clone marshal: " + err.Error())
	}
	out := new(T)
	if err := json.Unmarshal(data, out); err != nil {
		panic("memory: clone unmarshal: " + err.Error())
	}
	return out
}
