package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/etimsclient/internal/client/models"
	"github.com/dmitrijs2005/etimsclient/internal/client/services"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) promptCredentials() (string, []byte, error) {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return "", nil, err
	}
	if email == "" {
		return "", nil, errors.New("email is required")
	}
	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return email, password, nil
}

// Login prompts for credentials and starts a session.
func (a *App) Login(ctx context.Context, _ []string) error {
	return a.login(ctx, a.auth.Login)
}

// AdminLogin is Login for staff accounts.
func (a *App) AdminLogin(ctx context.Context, _ []string) error {
	return a.login(ctx, a.auth.AdminLogin)
}

func (a *App) login(ctx context.Context, fn func(ctx context.Context, email, password string) (*models.User, error)) error {
	email, password, err := a.promptCredentials()
	if err != nil {
		return err
	}
	defer wipe(password)

	user, err := fn(ctx, email, string(password))
	if err != nil {
		a.logger.Info(ctx, "login unsuccessful", "email", email, "error", err)
		return err
	}

	a.setMode(ctx, ModeOnline)
	fmt.Fprintf(a.out, "Logged in as %s\n", displayName(user))
	return nil
}

func displayName(u *models.User) string {
	name := u.Email
	if u.FirstName != "" || u.LastName != "" {
		name = fmt.Sprintf("%s %s <%s>", u.FirstName, u.LastName, u.Email)
	}
	if u.IsStaff {
		name += " [staff]"
	}
	return name
}

// Register prompts for the account details and creates an account. When the
// server issues tokens the user is logged in right away.
func (a *App) Register(ctx context.Context, _ []string) error {
	email, password, err := a.promptCredentials()
	if err != nil {
		return err
	}
	defer wipe(password)

	reg := models.Registration{Email: email, Password: string(password)}
	for _, f := range []struct {
		prompt string
		dst    *string
	}{
		{"First name", &reg.FirstName},
		{"Last name", &reg.LastName},
		{"Phone number", &reg.PhoneNumber},
		{"Company name", &reg.CompanyName},
		{"KRA PIN", &reg.KRAPin},
	} {
		if *f.dst, err = getSimpleText(a.reader, f.prompt, a.out); err != nil {
			return err
		}
	}

	user, err := a.auth.Register(ctx, reg)
	switch {
	case errors.Is(err, services.ErrNoSession):
		fmt.Fprintln(a.out, "Account created, please login")
		return nil
	case err != nil:
		return err
	}
	fmt.Fprintf(a.out, "Account created, logged in as %s\n", displayName(user))
	return nil
}

func (a *App) Logout(ctx context.Context, _ []string) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// Status prints the local session and connectivity state.
func (a *App) Status(ctx context.Context, _ []string) error {
	st := a.auth.Status(ctx)

	fmt.Fprintf(a.out, "Server:    %s (%s)\n", st.BaseURL, orDash(string(a.CurrentMode())))
	fmt.Fprintf(a.out, "Logged in: %s\n", yesNo(st.Authenticated))
	if st.HasExpiry {
		state := "valid"
		if st.Expired(time.Now()) {
			state = "expired"
		}
		fmt.Fprintf(a.out, "Token:     %s until %s\n", state, st.ExpiresAt.Local().Format(time.DateTime))
	}

	last, found, err := a.syncs.LastSync(ctx)
	if err != nil {
		return err
	}
	if found {
		fmt.Fprintf(a.out, "Last sync: %s\n", last.Local().Format(time.DateTime))
	} else {
		fmt.Fprintln(a.out, "Last sync: never")
	}
	return nil
}

// Discover probes the configured candidate URLs, or the ones given as
// arguments, and switches to the first reachable server.
func (a *App) Discover(ctx context.Context, args []string) error {
	candidates := a.config.CandidateURLs
	if len(args) > 0 {
		candidates = args
	}

	url, err := a.conn.FindWorkingURL(ctx, candidates)
	if err != nil {
		a.setMode(ctx, ModeOffline)
		return err
	}
	a.setMode(ctx, ModeOnline)
	fmt.Fprintf(a.out, "Using %s\n", url)
	return nil
}
