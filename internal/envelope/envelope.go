// Package envelope defines the JSON request and response envelopes exchanged
// over stdin and stdout, with schema validation on the way in.
package envelope

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/job-aggregator/internal/types"
)

// ActionSearch is the only action the agent currently understands.
const ActionSearch = "search"

// Request is the inbound envelope. ResumeData and Filters are optional; a
// missing action is a validation error.
type Request struct {
	Action     string                 `json:"action"`
	ResumeData types.CandidateProfile `json:"resumeData"`
	Filters    types.SearchCriteria   `json:"filters"`
}

// requestSchema constrains the envelope shape before unmarshalling into
// concrete types. Field-level constraints live on the types themselves.
const requestSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["action"],
  "properties": {
    "action": {"type": "string", "minLength": 1},
    "resumeData": {
      "type": "object",
      "properties": {
        "text": {"type": "string"},
        "skills": {"type": "array", "items": {"type": "string"}},
        "keywords": {"type": "array", "items": {"type": "string"}},
        "location": {"type": "string"},
        "yearsExperience": {"type": "number", "minimum": 0}
      }
    },
    "filters": {
      "type": "object",
      "properties": {
        "keywords": {"type": "array", "items": {"type": "string"}},
        "location": {"type": "string"},
        "remoteOnly": {"type": "boolean"},
        "postedWithinDays": {"type": "integer"},
        "maxResults": {"type": "integer"},
        "scrapingLevel": {"type": "string"},
        "minimumMatchScore": {"type": "number"},
        "techStack": {"type": "array", "items": {"type": "string"}},
        "visaSponsorship": {"type": "boolean"},
        "companyTypes": {"type": "array", "items": {"type": "string"}}
      }
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(requestSchema)

// ValidationError reports schema violations in the inbound envelope.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid request: " + strings.Join(e.Problems, "; ")
}

// Decode reads one request envelope, validates it against the request
// schema, and unmarshals it.
func Decode(r io.Reader) (*Request, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read request: %w", err)
	}

	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("malformed request: %w", err)
	}
	if !result.Valid() {
		verr := &ValidationError{}
		for _, desc := range result.Errors() {
			verr.Problems = append(verr.Problems, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
		}
		return nil, verr
	}

	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, fmt.Errorf("decode request: %w", err)
	}
	return &req, nil
}

// Write serializes a search result envelope. Jobs and errors are always
// present as arrays, never null.
func Write(w io.Writer, result *types.SearchResult) error {
	if result.Jobs == nil {
		result.Jobs = []types.Posting{}
	}
	if result.Errors == nil {
		result.Errors = []string{}
	}

	enc := json.NewEncoder(w)
	return enc.Encode(result)
}

// WriteError emits a response envelope carrying a single request-level
// error and no jobs.
func WriteError(w io.Writer, err error) error {
	return Write(w, &types.SearchResult{
		Jobs:   []types.Posting{},
		Errors: []string{err.Error()},
	})
}
