package questionbank

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var structValidator = validator.New(validator.WithRequiredStructEnabled())

// validateQuestions performs all structural checks on the given questions.
// Returns a combined error describing all problems found, or nil if valid.
func validateQuestions(questions []Question) error {
	var errs []string

	idSet := make(map[string]bool, len(questions))
	for i, q := range questions {
		prefix := fmt.Sprintf("question %d (id %q)", i, q.ID)

		if err := structValidator.Struct(q); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				for _, fe := range verrs {
					errs = append(errs, fmt.Sprintf("%s: field %s failed %q", prefix, fe.Namespace(), fe.Tag()))
				}
			} else {
				errs = append(errs, fmt.Sprintf("%s: %v", prefix, err))
			}
		}

		if q.ID != "" && idSet[q.ID] {
			errs = append(errs, fmt.Sprintf("duplicate question ID: %q", q.ID))
		}
		idSet[q.ID] = true

		if q.Answer < 0 || q.Answer >= len(q.Options) {
			errs = append(errs, fmt.Sprintf("%s: answer index %d out of range for %d options", prefix, q.Answer, len(q.Options)))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("question bank validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
