// Package adduser implements the operator command that creates an account
// without going through the HTTP API.
package adduser

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"

	"github.com/huseyinozgul/docvault/internal/common"
	"github.com/huseyinozgul/docvault/internal/server/models"
)

// Registrar creates accounts; services.UserService satisfies it.
type Registrar interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
}

var validate = validator.New()

// Run prompts for a password and registers email.
func Run(ctx context.Context, r Registrar, email string, w io.Writer) error {
	if err := validate.Var(email, "required,email"); err != nil {
		return fmt.Errorf("invalid email %q", email)
	}

	password, err := ReadNewPassword(w)
	if err != nil {
		return err
	}

	u, err := r.Register(ctx, email, password)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return fmt.Errorf("email %s is already registered", email)
		}
		return err
	}

	_, err = fmt.Fprintf(w, "created user id=%d email=%s\n", u.ID, u.Email)
	return err
}
