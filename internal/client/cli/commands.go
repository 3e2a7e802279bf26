package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/licensekeeper/internal/client/client"
	"github.com/dmitrijs2005/licensekeeper/internal/client/services"
	"github.com/dmitrijs2005/licensekeeper/internal/common"
)

var errUsage = errors.New("usage")

func (a *App) credentials() (string, string, error) {
	userName, err := GetSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return "", "", err
	}
	pw, err := GetPassword(a.out)
	if err != nil {
		return "", "", err
	}
	defer common.WipeByteArray(pw)
	return userName, string(pw), nil
}

func (a *App) Signup(ctx context.Context) error {
	userName, password, err := a.credentials()
	if err != nil {
		return a.fail(err)
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	st, err := a.licenses.Signup(ctx, userName, password)
	if err != nil {
		return a.fail(err)
	}
	a.userName = userName
	a.setState(st)
	printlnFn("Account created. Use generate [days] to get a license.")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	userName, password, err := a.credentials()
	if err != nil {
		return a.fail(err)
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	st, err := a.licenses.Login(ctx, userName, password)
	a.setState(st)
	if err != nil {
		return a.fail(err)
	}
	a.userName = userName

	if st == services.StateLicensed {
		printlnFn("Logged in. License is valid.")
	} else {
		printlnFn("Logged in. Use generate [days] to get a license.")
	}
	return nil
}

func (a *App) Generate(ctx context.Context, args []string) error {
	days := a.config.DefaultExpiryDays
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			printlnFn("Usage: generate [days]")
			return errUsage
		}
		days = n
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	lic, err := a.licenses.Generate(ctx, days)
	if err != nil {
		return a.fail(err)
	}
	a.setState(services.StateLicensed)
	printlnFn("License key:", lic.Token)
	printlnFn("Expires:", lic.ExpiryDate)
	return nil
}

func (a *App) Verify(ctx context.Context, args []string) error {
	token := ""
	if len(args) > 0 {
		token = args[0]
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	lic, err := a.licenses.Verify(ctx, token)
	if err != nil {
		if !errors.Is(err, client.ErrUnavailable) && a.current == services.StateLicensed {
			a.setState(services.StateNeedsKey)
		}
		return a.fail(err)
	}
	a.setState(services.StateLicensed)

	msg := fmt.Sprintf("License is valid until %s.", lic.ExpiryDate)
	if lic.Throttled {
		msg += " (checked recently)"
	}
	printlnFn(msg)
	return nil
}

func (a *App) Inspect(ctx context.Context, args []string) error {
	token := ""
	if len(args) > 0 {
		token = args[0]
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	expiry, err := a.licenses.Inspect(ctx, token)
	if err != nil {
		return a.fail(err)
	}
	printlnFn("Key expires:", expiry)
	return nil
}

func (a *App) Status(ctx context.Context) error {
	rec, err := a.licenses.Status(ctx)
	if err != nil {
		return a.fail(err)
	}

	printlnFn("Account:", rec.AccountID)
	if rec.LicenseToken == "" {
		printlnFn("License: none")
	} else {
		printlnFn("License:", rec.LicenseToken)
	}
	if rec.LastChecked != nil {
		printlnFn("Last checked:", rec.LastChecked.Format("2006-01-02 15:04:05 MST"))
	}
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.licenses.Logout(ctx); err != nil {
		return a.fail(err)
	}
	a.userName = ""
	a.setState(services.StateLogin)
	printlnFn("Logged out.")
	return nil
}

func (a *App) fail(err error) error {
	printlnFn("Error:", describe(err))
	return err
}

func describe(err error) string {
	switch {
	case errors.Is(err, common.ErrDuplicateUsername):
		return "username already taken"
	case errors.Is(err, common.ErrInvalidCredentials):
		return "invalid username or password"
	case errors.Is(err, common.ErrLicenseAlreadyExists):
		return "a license already exists for this account"
	case errors.Is(err, common.ErrNoLicense):
		return "no license for this account"
	case errors.Is(err, common.ErrInvalidToken):
		return "license key does not match"
	case errors.Is(err, common.ErrLicenseExpired):
		return "license has expired"
	case errors.Is(err, common.ErrInvalidExpiryDays):
		return fmt.Sprintf("expiry days must be between 1 and %d", common.MaxExpiryDays)
	case errors.Is(err, common.ErrDecode):
		return "not a license key"
	case errors.Is(err, client.ErrUnavailable):
		return "server unavailable"
	}
	return err.Error()
}
