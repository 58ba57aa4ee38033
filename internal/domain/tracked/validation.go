package tracked

import (
	"fmt"
	"strings"
)

// ValidateCreateInput checks required fields and fills the default classification.
func ValidateCreateInput(req *CreateRequest) error {
	req.SourceURL = strings.TrimSpace(req.SourceURL)
	req.CategoryName = strings.TrimSpace(req.CategoryName)

	if req.SourceURL == "" {
		return &ValidationError{Field: "github_url", Message: "github_url and category_name are required"}
	}
	if req.CategoryName == "" {
		return &ValidationError{Field: "category_name", Message: "github_url and category_name are required"}
	}
	if req.Classification == "" {
		req.Classification = ClassBug
	}
	if !req.Classification.Valid() {
		return &ValidationError{
			Field:   "type",
			Message: fmt.Sprintf("type must be %q or %q", ClassFeature, ClassBug),
		}
	}
	return nil
}
