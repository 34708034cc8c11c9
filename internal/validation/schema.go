package validation

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrSchemaInvalid     = errors.New("project schema invalid")
	ErrProjectValidation = errors.New("project config validation failed")
	ErrProjectParse      = errors.New("project config parse failed")
)

//go:embed project_schema.json
var projectSchemaJSON []byte

// ValidationIssue captures a single validation failure.
type ValidationIssue struct {
	Location string
	Message  string
}

// ProjectValidationError surfaces project config issues with their document locations.
type ProjectValidationError struct {
	Issues []ValidationIssue
	Cause  error
}

func (e *ProjectValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrProjectValidation.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *ProjectValidationError) Unwrap() error {
	return ErrProjectValidation
}

// Issues extracts validation issues from an error.
func Issues(err error) []ValidationIssue {
	if err == nil {
		return nil
	}
	var projectErr *ProjectValidationError
	if errors.As(err, &projectErr) && projectErr != nil {
		return projectErr.Issues
	}
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return collectValidationIssues(validationErr)
	}
	return []ValidationIssue{{Message: err.Error()}}
}

// ValidateProject validates a decoded confluence.json document against the
// embedded project schema. The schema checks key names and value shapes;
// completeness of the merged runtime configuration is checked separately
// after environment overrides apply.
func ValidateProject(document map[string]any) error {
	compiled, err := projectSchema()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	if document == nil {
		document = map[string]any{}
	}
	if err := compiled.Validate(document); err != nil {
		return &ProjectValidationError{
			Issues: Issues(err),
			Cause:  err,
		}
	}
	return nil
}

// ValidateProjectBytes decodes raw confluence.json content and validates it,
// returning the decoded document for further mapping.
func ValidateProjectBytes(data []byte) (map[string]any, error) {
	document := map[string]any{}
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProjectParse, err)
	}
	if err := ValidateProject(document); err != nil {
		return nil, err
	}
	return document, nil
}

var (
	projectSchemaOnce sync.Once
	projectCompiled   *jsonschema.Schema
	projectCompileErr error
)

func projectSchema() (*jsonschema.Schema, error) {
	projectSchemaOnce.Do(func() {
		projectCompiled, projectCompileErr = compileSchema(projectSchemaJSON)
	})
	return projectCompiled, projectCompileErr
}

func compileSchema(raw []byte) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("project.json", bytes.NewReader(raw)); err != nil {
		return nil, err
	}
	return compiler.Compile("project.json")
}

func collectValidationIssues(err *jsonschema.ValidationError) []ValidationIssue {
	if err == nil {
		return nil
	}
	issues := []ValidationIssue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, ValidationIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
