package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethan-wit/moving-items/internal/auth"
	"github.com/ethan-wit/moving-items/internal/service"
)

const (
	tokenSignup = "signup"
	tokenLogin  = "login"
	tokenYes    = "yes"
	tokenNo     = "no"

	passwordRules = "It must be 8-10 characters, include one upper-case letter, one lower-case letter, one number, and one special character (e.g. %*$): "
)

// Greeter runs the signup/login conversation that opens a session.
type Greeter struct {
	auth   *service.AuthService
	prompt *Prompter
	out    *Output
}

// NewGreeter creates a Greeter.
func NewGreeter(authSvc *service.AuthService, prompt *Prompter, out *Output) *Greeter {
	return &Greeter{auth: authSvc, prompt: prompt, out: out}
}

// Greet asks whether to sign up or log in and runs that flow.
// It returns a nil session and nil error when the operator signs up and then
// chooses not to log in. Authentication failures are returned as errors and
// end the program.
func (g *Greeter) Greet(ctx context.Context) (*auth.Session, error) {
	choice, err := g.prompt.AskToken(`Would you like to "signup" or "login": `)
	if err != nil {
		return nil, err
	}
	for choice != tokenSignup && choice != tokenLogin {
		choice, err = g.prompt.AskToken(`You did not input "signup" or "login". Please input one of these options: `)
		if err != nil {
			return nil, err
		}
	}

	if choice == tokenLogin {
		return g.login(ctx, nil)
	}

	creds, err := g.signup(ctx)
	if err != nil {
		return nil, err
	}

	answer, err := g.prompt.AskToken(`Would you now like to log in? Please respond either "yes" or "no": `)
	if err != nil {
		return nil, err
	}
	switch answer {
	case tokenYes:
		return g.login(ctx, creds)
	case tokenNo:
		g.out.Info("Thank you. The program will now end.")
	default:
		g.out.Warning("Invalid response. The program will now end.")
	}
	return nil, nil
}

// signup asks for a password until it meets the policy, then creates the account.
func (g *Greeter) signup(ctx context.Context) (*auth.Credentials, error) {
	password, err := g.prompt.AskSecret("Please input your new password. " + passwordRules)
	if err != nil {
		return nil, err
	}
	for g.auth.ValidatePassword(password) != nil {
		password, err = g.prompt.AskSecret("Password did not meet criteria. Please input your new password. " + passwordRules)
		if err != nil {
			return nil, err
		}
	}

	creds, err := g.auth.Signup(ctx, password)
	if err != nil {
		return nil, fmt.Errorf("signup failed: %w", err)
	}

	g.out.Success("Thank you. Your password meets the criteria. You have been assigned the username: %s. "+
		"Please remember your username and password, as they will be required to log in.", creds.UsernameString())
	return creds, nil
}

// login verifies creds, asking for them first when signup did not just provide them.
func (g *Greeter) login(ctx context.Context, creds *auth.Credentials) (*auth.Session, error) {
	var username, password string
	if creds != nil {
		username, password = creds.UsernameString(), creds.Password
	} else {
		var err error
		if username, err = g.prompt.AskToken("Please input your user ID: "); err != nil {
			return nil, err
		}
		if password, err = g.prompt.AskSecret("Please input your password: "); err != nil {
			return nil, err
		}
	}

	session, err := g.auth.Login(ctx, username, password)
	switch {
	case err == nil:
		g.out.Muted("User found.")
		g.out.Success("Password accepted. User logged in.")
		return session, nil
	case errors.Is(err, auth.ErrUserNotFound):
		g.out.Error("Matching username not found. Program will end, but please feel free to try again.")
	case errors.Is(err, auth.ErrPasswordMismatch):
		g.out.Muted("User found.")
		g.out.Error("Matching password not found. This program will end, but please feel free to try again.")
	default:
		g.out.Error("Login could not be completed. Program will end.")
	}
	return nil, fmt.Errorf("login failed: %w", err)
}
