package service

import (
	"errors"
	"fmt"
)

// ErrorKind: 화면에 표시되는 오류 종류. 모두 감지 지점에서 끝나며 자동 재시도는 없습니다.
type ErrorKind int

const (
	AuthError ErrorKind = iota + 1
	LoadError
	ValidationError
	SubmissionError
)

func (k ErrorKind) String() string {
	switch k {
	case AuthError:
		return "auth"
	case LoadError:
		return "load"
	case ValidationError:
		return "validation"
	case SubmissionError:
		return "submission"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error는 종류와 실패한 작업을 함께 담습니다.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s error", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf: err 체인에서 *Error를 찾아 종류를 돌려줍니다.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// Message: 사용자에게 보여 줄 문구
func Message(err error) string {
	if err == nil {
		return ""
	}
	kind, _ := KindOf(err)
	switch kind {
	case AuthError:
		return "Error de autenticación."
	case LoadError:
		return "Error al cargar los datos de los restaurantes."
	case ValidationError:
		return "Todos los campos son obligatorios."
	case SubmissionError:
		return "Error al procesar la reserva. Intenta de nuevo."
	default:
		return "Ocurrió un error inesperado."
	}
}
