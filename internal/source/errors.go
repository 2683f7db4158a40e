package source

import (
	"errors"
	"fmt"
)

// Kind distingue fuentes inaccesibles de fuentes sin datos.
type Kind int

const (
	KindInvalid Kind = iota + 1
	KindEmpty
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalida"
	case KindEmpty:
		return "vacia"
	}
	return "desconocida"
}

var (
	ErrInvalidSource = errors.New("fuente inválida o inaccesible")
	ErrEmptySource   = errors.New("fuente sin datos")
)

// FetchError es el único error que devuelve la carga de una tabla.
// errors.Is reconoce ErrInvalidSource o ErrEmptySource según Kind.
type FetchError struct {
	Source string
	Kind   Kind
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%v (%s): %v", e.sentinel(), e.Source, e.Err)
}

func (e *FetchError) Unwrap() []error {
	return []error{e.sentinel(), e.Err}
}

func (e *FetchError) sentinel() error {
	if e.Kind == KindEmpty {
		return ErrEmptySource
	}
	return ErrInvalidSource
}

func invalid(src string, err error) *FetchError {
	return &FetchError{Source: src, Kind: KindInvalid, Err: err}
}

func empty(src string, err error) *FetchError {
	return &FetchError{Source: src, Kind: KindEmpty, Err: err}
}
