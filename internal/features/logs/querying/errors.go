package logs_querying

const (
	ErrorInvalidLimit      = "INVALID_LIMIT"
	ErrorInvalidOffset     = "INVALID_OFFSET"
	ErrorInvalidParameters = "INVALID_PARAMETERS"
	ErrorFilterTooLong     = "FILTER_TOO_LONG"
)

type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}
