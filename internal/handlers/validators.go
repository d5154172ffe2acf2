package handlers

import (
	"log/slog"
	"sync"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerValidatorsOnce sync.Once

// registerValidators adds the domain enum validators to gin's validator engine.
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			slog.Error("gin validator engine is not go-playground/validator")
			return
		}
		_ = v.RegisterValidation("account_type", func(fl validator.FieldLevel) bool {
			return domain.AccountType(fl.Field().String()).IsValid()
		})
		_ = v.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
			return domain.Role(fl.Field().String()).IsValid()
		})
		_ = v.RegisterValidation("credit_kind", func(fl validator.FieldLevel) bool {
			return domain.CreditKind(fl.Field().String()).IsValid()
		})
	})
}
