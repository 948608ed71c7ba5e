package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// SchemaError reports mandatory canonical fields that no input column could
// be mapped to. Ingestion aborts before producing a partial table.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema: no input column resolves mandatory field(s): %s", strings.Join(e.Missing, ", "))
}

// ErrEmptyDataset marks an upload that produced zero usable rows after
// coercion. Downstream an empty table is fine; an empty load is flagged
// because it points at a data problem in the upload itself.
var ErrEmptyDataset = errors.New("dataset: no usable rows after coercion")
