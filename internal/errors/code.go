package errors

// Code is a unique error identifier, grouped into ranges so call sites can
// reason about a failure's origin without string matching.
type Code int

// Error code ranges:
// 10000-10999: System & common errors
// 13000-13999: Submission & judge errors
const (
	Success Code = 10000

	InternalServerError Code = 10001
	InvalidParams       Code = 10002
	NotFound            Code = 10003
	Timeout             Code = 10008
	ServiceUnavailable  Code = 10007

	ValidationFailed Code = 10300

	LanguageNotSupported Code = 13003

	JudgeSystemError    Code = 13101
	CompilationError    Code = 13102
	RuntimeErrorCode    Code = 13103
	TimeLimitExceeded   Code = 13104
	MemoryLimitExceeded Code = 13105
)

var codeMessages = map[Code]string{
	InternalServerError:  "internal server error",
	InvalidParams:        "invalid parameters",
	NotFound:             "resource not found",
	Timeout:              "operation timed out",
	ServiceUnavailable:   "service temporarily unavailable",
	ValidationFailed:     "validation failed",
	LanguageNotSupported: "language not supported",
	JudgeSystemError:     "judge system error",
	CompilationError:     "compilation error",
	RuntimeErrorCode:     "runtime error",
	TimeLimitExceeded:    "time limit exceeded",
	MemoryLimitExceeded:  "memory limit exceeded",
}

// Message returns the default English message for the code.
func (c Code) Message() string {
	if msg, ok := codeMessages[c]; ok {
		return msg
	}
	return "unknown error"
}
