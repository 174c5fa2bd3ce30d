package ocf

import (
	"os"
	"strings"
)

// The cluster manager passes resource parameters as OCF_RESKEY_<name>
// environment variables.
const reskeyPrefix = "OCF_RESKEY_"

// Param returns the trimmed value of the named resource parameter, or
// the empty string when unset.
func Param(name string) string {
	return strings.TrimSpace(os.Getenv(reskeyPrefix + name))
}

// ParamOr returns the named parameter, falling back when it is unset
// or blank.
func ParamOr(name, fallback string) string {
	if v := Param(name); v != "" {
		return v
	}
	return fallback
}
