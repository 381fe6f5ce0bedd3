package domain

import "errors"

// ErrDuplicateKey 由持久化适配器在唯一索引拒绝写入时返回
var ErrDuplicateKey = errors.New("duplicate key")

type Kind int

const (
	KindUnexpected Kind = iota
	KindValidation
	KindNotFound
	KindDuplicate
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindDuplicate:
		return "duplicate"
	default:
		return "unexpected"
	}
}

// Error 是 service 层返回的唯一错误形态，HTTP 层按 Kind 映射状态码
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

func Invalid(msg string) error   { return &Error{Kind: KindValidation, Msg: msg} }
func NotFound(msg string) error  { return &Error{Kind: KindNotFound, Msg: msg} }
func Duplicate(msg string) error { return &Error{Kind: KindDuplicate, Msg: msg, Err: ErrDuplicateKey} }
func Internal(msg string, err error) error {
	return &Error{Kind: KindUnexpected, Msg: msg, Err: err}
}

// KindOf 非 *Error 一律视为 KindUnexpected
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnexpected
}
