// authenticationhandler/validation.go

package authenticationhandler

import (
	"strings"
)

// IsComplete reports whether every value needed for the password grant is present.
func (c ClientCredentials) IsComplete() bool {
	return len(c.MissingFields()) == 0
}

// IsEmpty reports whether no password grant value was supplied at all.
func (c ClientCredentials) IsEmpty() bool {
	return len(c.MissingFields()) == 4
}

// MissingFields lists the password grant values that are blank, in a stable order.
func (c ClientCredentials) MissingFields() []string {
	var missing []string
	for _, field := range []struct {
		name  string
		value string
	}{
		{"client_id", c.ClientID},
		{"client_secret", c.ClientSecret},
		{"username", c.Username},
		{"password", c.Password},
	} {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	return missing
}

// DetermineAuthMethod picks the handler mode for the supplied values. A non-blank API token
// wins; otherwise a complete set of password grant credentials is required.
// Returns false when neither is usable.
func DetermineAuthMethod(apiToken string, credentials ClientCredentials) (AuthMethod, bool) {
	if strings.TrimSpace(apiToken) != "" {
		return AuthMethodStaticToken, true
	}
	if credentials.IsComplete() {
		return AuthMethodPasswordGrant, true
	}
	return "", false
}
