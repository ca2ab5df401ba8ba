package resume

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/qri-io/jsonschema"

	"github.com/artem13815/resumic/pkg/jsonrepair"
)

// ValidationError is one schema violation, attributed to a field path.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors accumulates every violation found in a draft instead of
// stopping at the first.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// arrayFields are the draft fields that default to an empty list when the
// model omitted them or returned null. Absence is not an error; only the
// required scalars are fatal.
var arrayFields = []string{"experience", "education", "certifications", "achievements", "projects", "skills"}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
var yearRe = regexp.MustCompile(`^[0-9]{4}$`)

// draftSchema covers structure and formats. Cross-field rules (startYear vs
// graduationYear) and whitespace-only strings are checked in Go afterwards.
const draftSchema = `{
  "type": "object",
  "required": ["name", "email"],
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "email": {"type": "string", "minLength": 3},
    "phone": {"type": ["string", "null"]},
    "location": {"type": ["string", "null"]},
    "summary": {"type": ["string", "null"]},
    "experience": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["company", "position", "duration"],
        "properties": {
          "company": {"type": "string", "minLength": 1},
          "position": {"type": "string", "minLength": 1},
          "duration": {"type": "string", "minLength": 1},
          "description": {"type": ["string", "null"]}
        }
      }
    },
    "education": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["institution", "degree", "field", "graduationYear"],
        "properties": {
          "institution": {"type": "string", "minLength": 1},
          "degree": {"type": "string", "minLength": 1},
          "field": {"type": "string", "minLength": 1},
          "graduationYear": {"type": "string", "pattern": "^[0-9]{4}$"},
          "startYear": {"type": ["string", "null"]}
        }
      }
    },
    "certifications": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "issuer", "date"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "issuer": {"type": "string", "minLength": 1},
          "date": {"type": "string", "minLength": 1},
          "url": {"type": ["string", "null"]}
        }
      }
    },
    "achievements": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["title", "type", "date", "description"],
        "properties": {
          "title": {"type": "string", "minLength": 1},
          "type": {"enum": ["achievement", "competition", "hackathon"]},
          "date": {"type": "string", "minLength": 1},
          "description": {"type": "string", "minLength": 1},
          "position": {"type": ["string", "null"]},
          "organization": {"type": ["string", "null"]},
          "url": {"type": ["string", "null"]}
        }
      }
    },
    "projects": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "description", "technologies"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "description": {"type": "string"},
          "technologies": {"type": "array", "items": {"type": "string", "minLength": 1}},
          "duration": {"type": ["string", "null"]},
          "url": {"type": ["string", "null"]}
        }
      }
    },
    "skills": {"type": "array", "items": {"type": "string", "minLength": 1}}
  }
}`

// repoAnalysisSchema validates a per-repository model assessment.
const repoAnalysisSchema = `{
  "type": "object",
  "required": ["complexity", "impact", "skills", "atsPoints", "analysis"],
  "properties": {
    "complexity": {"type": "number", "minimum": 1, "maximum": 10},
    "impact": {"type": "number", "minimum": 1, "maximum": 10},
    "skills": {"type": "array", "items": {"type": "string", "minLength": 1}},
    "atsPoints": {"type": "array", "items": {"type": "string", "minLength": 1}},
    "analysis": {"type": "string", "minLength": 1}
  }
}`

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	repoSchema *jsonschema.Schema
	schemaErr  error
)

func compileSchemas() error {
	schemaOnce.Do(func() {
		rs := &jsonschema.Schema{}
		if err := json.Unmarshal([]byte(draftSchema), rs); err != nil {
			schemaErr = fmt.Errorf("compile draft schema: %w", err)
			return
		}
		schema = rs
		ps := &jsonschema.Schema{}
		if err := json.Unmarshal([]byte(repoAnalysisSchema), ps); err != nil {
			schemaErr = fmt.Errorf("compile repo analysis schema: %w", err)
			return
		}
		repoSchema = ps
	})
	return schemaErr
}

func compiledSchema() (*jsonschema.Schema, error) {
	if err := compileSchemas(); err != nil {
		return nil, err
	}
	return schema, nil
}

// Validate checks a repaired JSON value against the resume draft schema and
// returns a Draft on success or the accumulated ValidationErrors.
//
// Missing name or email rejects the extraction wholesale; absent array
// fields are defaulted to empty lists first, so their absence alone never
// fails a draft. The asymmetry is deliberate: blank lists are safe to hand
// to the user for correction, a draft without its required scalars is not
// displayable at all.
func Validate(ctx context.Context, value any) (Draft, error) {
	obj, ok := value.(map[string]any)
	if !ok {
		return Draft{}, ValidationErrors{{Field: "/", Message: "extracted value is not a JSON object"}}
	}
	jsonrepair.EnsureArrays(obj, arrayFields...)

	data, err := json.Marshal(obj)
	if err != nil {
		return Draft{}, fmt.Errorf("encode draft: %w", err)
	}

	rs, err := compiledSchema()
	if err != nil {
		return Draft{}, err
	}
	keyErrs, err := rs.ValidateBytes(ctx, data)
	if err != nil {
		return Draft{}, fmt.Errorf("schema validate: %w", err)
	}

	var errs ValidationErrors
	for _, ke := range keyErrs {
		errs = append(errs, ValidationError{Field: ke.PropertyPath, Message: ke.Message})
	}
	if len(errs) > 0 {
		return Draft{}, errs
	}

	var d Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return Draft{}, fmt.Errorf("decode draft: %w", err)
	}
	errs = append(errs, semanticErrors(d)...)
	if len(errs) > 0 {
		return Draft{}, errs
	}

	normalizeDraft(&d)
	return d, nil
}

// ValidateRepoAnalysis checks a repaired JSON value against the repository
// assessment schema and returns the accumulated ValidationErrors on
// failure, so a malformed assessment is retried like any other extraction.
func ValidateRepoAnalysis(ctx context.Context, value any) (RepoAnalysis, error) {
	obj, ok := value.(map[string]any)
	if !ok {
		return RepoAnalysis{}, ValidationErrors{{Field: "/", Message: "extracted value is not a JSON object"}}
	}
	jsonrepair.EnsureArrays(obj, "skills", "atsPoints")

	data, err := json.Marshal(obj)
	if err != nil {
		return RepoAnalysis{}, fmt.Errorf("encode repo analysis: %w", err)
	}
	if err := compileSchemas(); err != nil {
		return RepoAnalysis{}, err
	}
	keyErrs, err := repoSchema.ValidateBytes(ctx, data)
	if err != nil {
		return RepoAnalysis{}, fmt.Errorf("schema validate: %w", err)
	}

	var errs ValidationErrors
	for _, ke := range keyErrs {
		errs = append(errs, ValidationError{Field: ke.PropertyPath, Message: ke.Message})
	}
	if len(errs) > 0 {
		return RepoAnalysis{}, errs
	}

	var a RepoAnalysis
	if err := json.Unmarshal(data, &a); err != nil {
		return RepoAnalysis{}, fmt.Errorf("decode repo analysis: %w", err)
	}
	if strings.TrimSpace(a.Analysis) == "" {
		return RepoAnalysis{}, ValidationErrors{{Field: "/analysis", Message: "analysis must not be blank"}}
	}
	return a, nil
}

// semanticErrors covers rules the schema cannot express.
func semanticErrors(d Draft) ValidationErrors {
	var errs ValidationErrors
	if strings.TrimSpace(d.Name) == "" {
		errs = append(errs, ValidationError{Field: "/name", Message: "name must not be blank"})
	}
	if strings.TrimSpace(d.Email) == "" {
		errs = append(errs, ValidationError{Field: "/email", Message: "email must not be blank"})
	} else if !emailRe.MatchString(d.Email) {
		errs = append(errs, ValidationError{Field: "/email", Message: "email is not a valid address"})
	}
	for i, edu := range d.Education {
		if edu.StartYear != "" {
			if !yearRe.MatchString(edu.StartYear) {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("/education/%d/startYear", i),
					Message: "startYear must be a 4-digit year",
				})
			} else if edu.StartYear > edu.GraduationYear {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("/education/%d/startYear", i),
					Message: "startYear must not be after graduationYear",
				})
			}
		}
	}
	for i, s := range d.Skills {
		if strings.TrimSpace(s) == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("/skills/%d", i),
				Message: "skill must be a non-empty string",
			})
		}
	}
	for i, p := range d.Projects {
		for j, tech := range p.Technologies {
			if strings.TrimSpace(tech) == "" {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("/projects/%d/technologies/%d", i, j),
					Message: "technology must be a non-empty string",
				})
			}
		}
	}
	return errs
}

func normalizeDraft(d *Draft) {
	if d.Experience == nil {
		d.Experience = []ExperienceItem{}
	}
	if d.Education == nil {
		d.Education = []EducationItem{}
	}
	if d.Certifications == nil {
		d.Certifications = []Certification{}
	}
	if d.Achievements == nil {
		d.Achievements = []Achievement{}
	}
	if d.Projects == nil {
		d.Projects = []Project{}
	}
	if d.Skills == nil {
		d.Skills = []string{}
	}
}
