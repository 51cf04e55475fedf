package gcs

import "encoding/json"

// RawDocument is an opaque collaborator payload forwarded without schema.
type RawDocument = json.RawMessage
