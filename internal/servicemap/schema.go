// Where: internal/servicemap/schema.go
// What: Output-contract schema gate.
// Why: The deploy tool requires map(object) services with non-empty tags.
package servicemap

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed services.schema.json
var contractSchema string

var (
	schemaOnce     sync.Once
	schemaErr      error
	compiledSchema *jsonschema.Schema
)

func loadContractSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(
			"services.schema.json", strings.NewReader(contractSchema),
		); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile("services.schema.json")
	})
	return compiledSchema, schemaErr
}

// ValidateContract checks a serialized services document against the
// output contract. This is the last gate before anything reaches disk;
// the in-memory validator runs earlier and names offenders.
func ValidateContract(payload []byte) error {
	sch, err := loadContractSchema()
	if err != nil {
		return err
	}
	var document any
	if err := json.Unmarshal(payload, &document); err != nil {
		return fmt.Errorf("decode output document: %w", err)
	}
	if err := sch.Validate(document); err != nil {
		return fmt.Errorf("output contract violation: %w", err)
	}
	return nil
}
