package domain

import "errors"

// ErrorKind は生成失敗の分類です。
type ErrorKind string

const (
	KindConfiguration ErrorKind = "ConfigurationError"
	KindService       ErrorKind = "ServiceError"
	KindNoImageData   ErrorKind = "NoImageDataError"
)

// GenerationError は分類済みの生成エラーです。
// Message はそのまま画面に表示できる文言です。
type GenerationError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *GenerationError) Error() string { return e.Message }

func (e *GenerationError) Unwrap() error { return e.Err }

// KindOf は err が GenerationError であればその分類を返します。
func KindOf(err error) (ErrorKind, bool) {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr.Kind, true
	}
	return "", false
}

func NewConfigurationError(msg string) *GenerationError {
	return &GenerationError{Kind: KindConfiguration, Message: msg}
}

func NewServiceError(msg string, cause error) *GenerationError {
	return &GenerationError{Kind: KindService, Message: msg, Err: cause}
}

func NewNoImageDataError(msg string) *GenerationError {
	return &GenerationError{Kind: KindNoImageData, Message: msg}
}
