package server

import (
	"errors"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/abhisek/laban/internal/assessment"
)

var (
	validatorOnce sync.Once
	validatorErr  error
)

// registerValidators adds the `instrument` tag to gin's validator. It
// accepts any name or alias assessment.Lookup knows.
func registerValidators() error {
	validatorOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			validatorErr = errors.New("server: gin validator is not go-playground/validator")
			return
		}
		validatorErr = v.RegisterValidation("instrument", validInstrument)
	})
	return validatorErr
}

func validInstrument(fl validator.FieldLevel) bool {
	_, err := assessment.Lookup(fl.Field().String())
	return err == nil
}
