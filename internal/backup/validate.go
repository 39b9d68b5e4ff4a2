package backup

import (
	"encoding/json"
	"fmt"

	"typelearn/internal/domain"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// requiredArrays are the record arrays every snapshot document must carry,
// even when empty.
var requiredArrays = []string{
	"users", "sessions", "progress", "achievements", "word_mastery",
	"mistake_patterns", "custom_words", "typing_attempts", "user_settings",
}

// ValidationResult reports per-record validation without throwing: a record
// either passes or carries a list of field-level messages.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

// ValidateRecord checks one record's struct tags and collects field-level
// messages instead of returning on the first failure.
func ValidateRecord(record interface{}) ValidationResult {
	err := validate.Struct(record)
	if err == nil {
		return ValidationResult{Valid: true}
	}

	var messages []string
	if fieldErrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range fieldErrs {
			messages = append(messages, fmt.Sprintf("%s: failed %q", fe.Field(), fe.Tag()))
		}
	} else {
		messages = append(messages, err.Error())
	}

	return ValidationResult{Valid: false, Errors: messages}
}

// ParseSnapshot decodes a snapshot document, failing fast with a
// FormatError on unparseable input and a ValidationError on a wrong version
// or missing required arrays. Import is all-or-nothing at this level.
func ParseSnapshot(data []byte) (*domain.Snapshot, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, &domain.FormatError{Reason: err.Error()}
	}

	var missing []string
	for _, name := range requiredArrays {
		if _, ok := keys[name]; !ok {
			missing = append(missing, fmt.Sprintf("missing required array %q", name))
		}
	}
	if len(missing) > 0 {
		return nil, &domain.ValidationError{Errors: missing}
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, &domain.FormatError{Reason: err.Error()}
	}

	if err := ValidateSnapshot(&snap); err != nil {
		return nil, err
	}

	return &snap, nil
}

// ValidateSnapshot checks snapshot-level invariants: the version must be
// supported and the export timestamp present.
func ValidateSnapshot(snap *domain.Snapshot) error {
	var errs []string
	if snap.Version != domain.SnapshotVersion {
		errs = append(errs, fmt.Sprintf("unsupported version %q, want %q", snap.Version, domain.SnapshotVersion))
	}
	if snap.ExportedAt.IsZero() {
		errs = append(errs, "exported_at is missing")
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
