package domain

import "strings"

// Environment selects which commerce account a call is made against.
type Environment string

const (
	EnvSandbox    Environment = "sandbox"
	EnvProduction Environment = "production"
)

// ParseEnvironment accepts only the two known tags. Surrounding whitespace
// and case are ignored; an empty value is an error, never a default.
func ParseEnvironment(value string) (Environment, error) {
	switch Environment(strings.ToLower(strings.TrimSpace(value))) {
	case EnvSandbox:
		return EnvSandbox, nil
	case EnvProduction:
		return EnvProduction, nil
	}
	return "", NewInvalidEnvironmentError(value)
}

func (e Environment) String() string {
	return string(e)
}

// Credentials is the full set of values needed to talk to one commerce
// environment. Every field comes from the same environment bundle.
type Credentials struct {
	Environment   Environment
	BaseURL       string
	AccessToken   string
	ApplicationID string
	LocationID    string
}
