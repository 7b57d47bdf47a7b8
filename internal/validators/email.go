package validators

import (
	"context"
	"net"
	"regexp"
	"strings"
	"time"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

func IsEmailValid(email string) bool {
	return emailPattern.MatchString(email)
}

const domainLookupTimeout = 3 * time.Second

// Resolver is the subset of *net.Resolver used for the domain check.
type Resolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// HasMailDomain reports whether the part after the last "@" resolves to an
// MX record or, failing that, to any address.
func HasMailDomain(ctx context.Context, r Resolver, email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]

	ctx, cancel := context.WithTimeout(ctx, domainLookupTimeout)
	defer cancel()

	if mx, err := r.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}
	addrs, err := r.LookupHost(ctx, domain)
	return err == nil && len(addrs) > 0
}

func IsEmailDomainValid(ctx context.Context, email string) bool {
	return HasMailDomain(ctx, net.DefaultResolver, email)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
