package vault

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/vaultboot/internal/apperr"
	"github.com/starford/vaultboot/internal/catalog"
)

// CreateRequest asks for a fresh vault built from a template.
type CreateRequest struct {
	Template string `json:"template"`
	Name     string `json:"name"`
	Path     string `json:"path,omitempty"`
}

// Validate checks the request shape. Template existence is checked separately.
func (r *CreateRequest) Validate() error {
	return invalid(validation.ValidateStruct(r,
		validation.Field(&r.Template, validation.Required),
		validation.Field(&r.Name, validation.Required, validation.By(singleSegment)),
	))
}

// AdoptRequest asks for a vault whose configuration is adopted from a
// source repository and merged over a base template.
type AdoptRequest struct {
	URL          string `json:"url"`
	Name         string `json:"name"`
	Path         string `json:"path,omitempty"`
	BaseTemplate string `json:"baseTemplate,omitempty"`
}

// Validate checks the request shape and fills the default base template.
func (r *AdoptRequest) Validate() error {
	if r.BaseTemplate == "" {
		r.BaseTemplate = catalog.DefaultTemplate
	}
	return invalid(validation.ValidateStruct(r,
		validation.Field(&r.URL, validation.Required, validation.By(sourceURL)),
		validation.Field(&r.Name, validation.Required, validation.By(singleSegment)),
	))
}

func invalid(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", apperr.ErrInvalidInput, err)
}

func singleSegment(v any) error {
	name, _ := v.(string)
	switch {
	case strings.TrimSpace(name) == "":
		return errors.New("must not be blank")
	case name == "." || name == "..":
		return errors.New("must not be a relative directory reference")
	case strings.ContainsAny(name, `/\`+"\x00"):
		return errors.New("must be a single path segment")
	}
	return nil
}

func sourceURL(v any) error {
	url, _ := v.(string)
	url = strings.TrimSpace(url)
	if url == "" {
		return errors.New("must not be blank")
	}
	if strings.HasPrefix(url, "-") {
		return errors.New("must not start with '-'")
	}
	if scheme, _, ok := strings.Cut(url, "://"); ok {
		switch strings.ToLower(scheme) {
		case "https", "http", "ssh", "git":
			return nil
		}
		return fmt.Errorf("unsupported scheme %q", scheme)
	}
	if scpLike.MatchString(url) {
		return nil
	}
	return errors.New("must be a remote repository url")
}

// scpLike matches git's user@host:path shorthand.
var scpLike = regexp.MustCompile(`^[A-Za-z0-9._-]+@[A-Za-z0-9.-]+:.+`)
