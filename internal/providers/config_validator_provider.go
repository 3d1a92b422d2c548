package providers

import (
	"fmt"

	"github.com/gookit/validate"

	"brickdeals/internal/structures"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return fmt.Errorf("invalid configuration: %s", v.Errors.One())
	}
	if cv.conf.Deals.HotThreshold < cv.conf.Deals.MinDiscount {
		return fmt.Errorf("invalid configuration: hotThreshold must be >= minDiscount")
	}
	return nil
}
