package config

import (
	"fmt"
	"net/url"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus everything the UI
// should show before letting the user save.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	out.Backend.BaseURL = strings.TrimRight(strings.TrimSpace(out.Backend.BaseURL), "/")
	out.Backend.KeyAccount = strings.TrimSpace(out.Backend.KeyAccount)

	if out.Backend.BaseURL == "" {
		res.addErr("backend.base_url is required")
	} else if u, err := url.Parse(out.Backend.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		res.addErr("backend.base_url must be an absolute http(s) URL: %q", out.Backend.BaseURL)
	}

	if out.Backend.KeyAccount == "" {
		res.addWarn("backend.key_account is empty; the engine will fall back to the HIREWATCH_API_KEY env var.")
	}

	if out.Backend.TimeoutSeconds <= 0 {
		out.Backend.TimeoutSeconds = 30
	} else if out.Backend.TimeoutSeconds > 120 {
		res.addWarn("backend.timeout_seconds is very high (%d); slow endpoints will stall refresh cycles.", out.Backend.TimeoutSeconds)
	}

	if out.Backend.RequestsPerSec <= 0 {
		out.Backend.RequestsPerSec = 5
	}

	if out.Polling.RefreshSeconds <= 0 {
		res.addErr("polling.refresh_seconds must be > 0")
	} else if out.Polling.RefreshSeconds < 5 {
		res.addWarn("polling.refresh_seconds is very low (%d) and may hammer the backend.", out.Polling.RefreshSeconds)
	}

	return out, res
}
