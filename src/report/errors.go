package report

import (
	"errors"
	"fmt"

	"github.com/tweets-stream/reporter/src/utils/model"
)

type Kind string

const (
	KindConfiguration Kind = "configuration"
	KindConnectivity  Kind = "connectivity"
	KindQuery         Kind = "query"
	KindIO            Kind = "io"
)

var ErrUnknownSource = errors.New("unknown source")

// Classified failure of a run
type Error struct {
	Kind   Kind
	Source model.Source
	Err    error
}

func NewError(kind Kind, source model.Source, err error) *Error {
	return &Error{Kind: kind, Source: source, Err: err}
}

func (self *Error) Error() string {
	if self.Source != "" {
		return fmt.Sprintf("%s error (%s): %v", self.Kind, self.Source, self.Err)
	}
	return fmt.Sprintf("%s error: %v", self.Kind, self.Err)
}

func (self *Error) Unwrap() error {
	return self.Err
}

// KindOf returns the kind of the first classified error in the chain, empty if there's none
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
