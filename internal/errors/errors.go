package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a deploy failure class.
type ErrorCode string

const (
	ErrNotARepository     ErrorCode = "NOT_A_REPOSITORY"
	ErrNoRemoteConfigured ErrorCode = "NO_REMOTE"
	ErrStageFailure       ErrorCode = "STAGE_FAILED"
	ErrCommitFailure      ErrorCode = "COMMIT_FAILED"
	ErrPushFailure        ErrorCode = "PUSH_FAILED"
)

// DeployError is a terminal failure of the publish sequence. Hint tells the
// operator how to fix it.
type DeployError struct {
	Code    ErrorCode
	Message string
	Hint    string
	Err     error
}

// Error implements the error interface.
func (e *DeployError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *DeployError) Unwrap() error {
	return e.Err
}

// NewNotARepository is returned when the target is not a Git working tree.
func NewNotARepository(path string) *DeployError {
	return &DeployError{
		Code:    ErrNotARepository,
		Message: fmt.Sprintf("este diretório não é um repositório Git: %s", path),
		Hint:    "Execute primeiro: git init && git remote add origin <url>",
	}
}

// NewNoRemoteConfigured is returned when the remote used for publishing is missing.
func NewNoRemoteConfigured(remote string) *DeployError {
	return &DeployError{
		Code:    ErrNoRemoteConfigured,
		Message: fmt.Sprintf("nenhum repositório remoto configurado (%s)", remote),
		Hint:    fmt.Sprintf("Execute: git remote add %s https://github.com/usuario/repo.git", remote),
	}
}

// NewStageFailure wraps a failed `git add`.
func NewStageFailure(err error) *DeployError {
	return &DeployError{
		Code:    ErrStageFailure,
		Message: "falha no git add",
		Hint:    "Verifique permissões dos arquivos e o .gitignore",
		Err:     err,
	}
}

// NewCommitFailure wraps a failed `git commit`.
func NewCommitFailure(err error) *DeployError {
	return &DeployError{
		Code:    ErrCommitFailure,
		Message: "falha no git commit",
		Hint:    "Confira user.name/user.email e os hooks de pre-commit",
		Err:     err,
	}
}

// NewPushFailure wraps a push that also failed after setting the upstream.
func NewPushFailure(err error) *DeployError {
	return &DeployError{
		Code:    ErrPushFailure,
		Message: "falha no push",
		Hint:    "Verifique sua conexão e autenticação no GitHub",
		Err:     err,
	}
}

// CodeOf returns the code of the first DeployError in err's chain.
func CodeOf(err error) (ErrorCode, bool) {
	var de *DeployError
	if stderrors.As(err, &de) {
		return de.Code, true
	}
	return "", false
}

// HintOf returns the remediation hint carried by err, if any.
func HintOf(err error) string {
	var de *DeployError
	if stderrors.As(err, &de) {
		return de.Hint
	}
	return ""
}

// Is reports whether err carries code.
func Is(err error, code ErrorCode) bool {
	c, ok := CodeOf(err)
	return ok && c == code
}
