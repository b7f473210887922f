package services

import (
	"encoding/json"
	"fmt"

	"github.com/localnerve/bakery-api/data"
)

// seedFrom returns a loader for an embedded default collection.
// The seed files ship inside the binary, so a malformed one is a build defect.
func seedFrom[T any](name string) func() []T {
	return func() []T {
		raw, err := data.Seed.ReadFile("seed/" + name + ".json")
		if err != nil {
			panic(fmt.Sprintf("missing seed %s: %v", name, err))
		}
		var items []T
		if err := json.Unmarshal(raw, &items); err != nil {
			panic(fmt.Sprintf("malformed seed %s: %v", name, err))
		}
		return items
	}
}
