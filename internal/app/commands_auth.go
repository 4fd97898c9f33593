package app

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/MasCreaThor/plataforma/internal/auth"
)

func (a *App) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" {
		v, err := prompt("email: ")
		if err != nil {
			return err
		}
		*email = v
	}
	if *password == "" {
		v, err := prompt("password: ")
		if err != nil {
			return err
		}
		*password = v
	}

	user, err := a.auth.Login(ctx, *email, *password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	fmt.Printf("signed in as %s\n", user.DisplayName())
	return nil
}

func (a *App) cmdRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	firstName := fs.String("first-name", "", "first name")
	lastName := fs.String("last-name", "", "last name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	input := auth.RegisterInput{
		FirstName: *firstName,
		LastName:  *lastName,
		Email:     *email,
		Password:  *password,
	}
	if input.Email == "" {
		v, err := prompt("email: ")
		if err != nil {
			return err
		}
		input.Email = v
	}
	if input.Password == "" {
		v, err := prompt("password: ")
		if err != nil {
			return err
		}
		confirm, err := prompt("confirm password: ")
		if err != nil {
			return err
		}
		input.Password = v
		input.ConfirmPassword = confirm
	}

	user, err := a.auth.Register(ctx, input)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}
	fmt.Printf("account created, signed in as %s\n", user.DisplayName())
	return nil
}

func (a *App) cmdLogout() error {
	if err := a.auth.Logout(); err != nil {
		return err
	}
	fmt.Println("signed out")
	return nil
}

func (a *App) cmdWhoami(ctx context.Context) error {
	if err := a.requireAuth(ctx); err != nil {
		return err
	}
	user := a.auth.CurrentUser()
	fmt.Printf("%s <%s>\n", user.DisplayName(), user.Email)
	return nil
}

func prompt(label string) (string, error) {
	fmt.Fprint(os.Stderr, label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
