package models

import (
	"math"
	"sync"

	"github.com/go-playground/validator/v10"
)

// допустимые значения вероятности угрозы: Very Low … Very High
var Likelihoods = []float64{0.1, 0.3, 0.5, 0.7, 0.9}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("likelihood", func(fl validator.FieldLevel) bool {
			return IsLikelihood(fl.Field().Float())
		})
	})
	return validate
}

func IsLikelihood(v float64) bool {
	for _, l := range Likelihoods {
		if math.Abs(v-l) < 1e-9 {
			return true
		}
	}
	return false
}

// Validate проверяет запись формы (зона, сценарий, согласование и т.п.)
func Validate(v interface{}) error {
	return validatorInstance().Struct(v)
}
