package request

import (
	"fmt"

	"ineed/internal/pkg/errs"
)

// Type distinguishes what kind of need a request expresses.
type Type int

const (
	// TypeUnknown represents an invalid or undefined type.
	TypeUnknown Type = iota

	// TypeService is a request for work to be performed.
	TypeService

	// TypeProduct is a request for a physical good to be sourced.
	TypeProduct
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		TypeUnknown: "unknown",
		TypeService: "service",
		TypeProduct: "product",
	}
}

// ParseType converts the wire representation ("service"/"product") to a Type.
func ParseType(s string) (Type, error) {
	switch s {
	case "service":
		return TypeService, nil
	case "product":
		return TypeProduct, nil
	default:
		return TypeUnknown, errs.NewValueIsInvalidErrorWithCause("type",
			fmt.Errorf("%q is not a valid request type", s))
	}
}

// Validate checks the Type is service or product.
func (t Type) Validate() error {
	if t != TypeService && t != TypeProduct {
		return errs.NewValueIsInvalidErrorWithCause("type",
			fmt.Errorf("%d is not a valid request type", t))
	}
	return nil
}

// String returns the wire representation. Implements fmt.Stringer.
func (t Type) String() string {
	if s, ok := getTypeStrings()[t]; ok {
		return s
	}
	return "unknown"
}
