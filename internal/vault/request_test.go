package vault

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/starford/vaultboot/internal/apperr"
)

func TestSourceURL(t *testing.T) {
	tests := []struct {
		url string
		ok  bool
	}{
		{"https://github.com/user/vault.git", true},
		{"http://git.example.com/vault", true},
		{"ssh://git@github.com/user/vault.git", true},
		{"git://example.com/vault.git", true},
		{"git@github.com:user/vault.git", true},
		{"HTTPS://github.com/user/vault", true},
		{"", false},
		{"-oProxyCommand=x", false},
		{"file:///etc", false},
		{"ext::sh -c touch% /tmp/x", false},
		{"/home/user/private-repo", false},
		{"./repo", false},
		{"../repo", false},
		{"repo", false},
		{`C:\repos\vault`, false},
		{"git@host:/abs/path", true},
		{"git@host:", false},
	}
	for _, tt := range tests {
		err := sourceURL(tt.url)
		if tt.ok {
			assert.NoError(t, err, tt.url)
		} else {
			assert.Error(t, err, tt.url)
		}
	}
}

func TestAnalyze_RejectsLocalSources(t *testing.T) {
	e := newEnv(t)
	for _, url := range []string{"file:///srv/secrets", "/srv/secrets/.git"} {
		_, err := e.svc.Analyze(context.Background(), url)
		assert.True(t, errors.Is(err, apperr.ErrInvalidInput), url)
	}
	assert.Empty(t, e.fetcher.Fetched())
}
