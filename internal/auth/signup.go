package auth

import (
	"context"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"storefront/internal/models"
	"storefront/internal/repository"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

var validate = func() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("loose_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})
	return v
}()

// SignupInput es el cuerpo de /api/auth/signup. No admite rol: las cuentas
// de administración solo se crean por configuración o por la CLI.
type SignupInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,loose_email"`
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// InputError es un error de datos de entrada con un mensaje para el cliente
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

func signupError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			return &InputError{Message: "Please provide all required fields: name, email, phone, password"}
		}
	}
	switch fieldErrs[0].Tag() {
	case "loose_email":
		return &InputError{Message: "Please provide a valid email address"}
	case "min":
		return &InputError{Message: "Password must be at least 6 characters long"}
	}
	return &InputError{Message: fieldErrs[0].Error()}
}

// Signup registra una cuenta con rol "user"
func (s *Service) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	if err := validate.Struct(in); err != nil {
		return nil, signupError(err)
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &models.User{Name: in.Name, Email: in.Email, Phone: in.Phone, Role: models.RoleUser, Password: hash}
	if err := s.users.Insert(ctx, u); err != nil {
		if repository.IsDuplicate(err, "email") {
			return nil, ErrEmailTaken
		}
		return nil, errors.Wrap(err, "create user")
	}
	u.Password = ""
	return u, nil
}
