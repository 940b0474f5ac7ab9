package apperr

// ValidationError reports malformed input: stratum specs, run specs,
// submission filenames or request parameters.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

// ConfigError reports an incompatible combination of options. It is raised
// before any evaluation runs.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return "The provided arguments are not valid. " + e.Message
}

func NewConfig(msg string) *ConfigError {
	return &ConfigError{Message: msg}
}
