package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Records ───────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrStorage  ErrCode = "STORAGE_ERROR"

	// ─── Export ────────────────────────────────────────────────────────
	ErrExportFailed ErrCode = "EXPORT_FAILED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable (Greek) message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Λανθασμένος χρήστης ή κωδικός."
	case ErrTokenRequired:
		return "Απαιτείται διακριτικό σύνδεσης."
	case ErrTokenInvalid:
		return "Μη έγκυρο διακριτικό σύνδεσης."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Παρακαλώ συμπληρώστε όλα τα απαραίτητα πεδία."
	case ErrInvalidPayload:
		return "Μη έγκυρο αίτημα."

	// ─── Records ───────────────────────────────────────────────────────
	case ErrNotFound:
		return "Η εγγραφή δεν βρέθηκε."
	case ErrStorage:
		return "Η αποθήκευση απέτυχε. Τα δεδομένα σας δεν άλλαξαν, προσπαθήστε ξανά."

	// ─── Export ────────────────────────────────────────────────────────
	case ErrExportFailed:
		return "Η εξαγωγή σε Excel απέτυχε."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Παρουσιάστηκε εσωτερικό σφάλμα."
	default:
		return "Παρουσιάστηκε απρόσμενο σφάλμα."
	}
}
