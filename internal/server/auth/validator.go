package auth

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/meetingd/internal/common"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// RegisterRequest is the registration input checked before anything is stored.
type RegisterRequest struct {
	UserName    string `validate:"required,max=64"`
	Password    string `validate:"required,max=128"`
	Email       string `validate:"required,email,max=254"`
	DisplayName string `validate:"max=128"`
}

// ValidateRegister checks req and returns an error wrapping
// common.ErrorInvalidArgument that names the first offending field.
func ValidateRegister(req RegisterRequest, minPasswordLength int) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %s", common.ErrorInvalidArgument, describe(err))
	}
	if strings.TrimSpace(req.UserName) == "" {
		return fmt.Errorf("%w: username is blank", common.ErrorInvalidArgument)
	}
	if err := validate.Var(req.Password, fmt.Sprintf("min=%d", minPasswordLength)); err != nil {
		return fmt.Errorf("%w: password must be at least %d characters", common.ErrorInvalidArgument, minPasswordLength)
	}
	return nil
}

func describe(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	return fmt.Sprintf("%s failed %q check", strings.ToLower(fe.Field()), fe.Tag())
}
