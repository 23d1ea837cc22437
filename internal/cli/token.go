package cli

import (
	"net/url"

	"github.com/charmbracelet/log"
	"github.com/cli/go-gh/v2/pkg/auth"

	"github.com/ursisterbtw/gh-analyzer/internal/config"
)

// resolveToken fills cfg.Token from the GitHub CLI's stored credentials when
// no token was configured. An unauthenticated run stays possible when gh is
// not logged in.
func resolveToken(cfg *config.Config, logger *log.Logger) {
	if cfg.Token != "" {
		return
	}
	host := apiHost(cfg.APIURL)
	if host == "" {
		return
	}
	if token, source := auth.TokenForHost(host); token != "" {
		cfg.Token = token
		logger.Debug("using gh credentials", "host", host, "source", source)
	}
}

// apiHost maps an API base URL to the host gh stores credentials under.
func apiHost(apiURL string) string {
	if apiURL == "" || apiURL == config.DefaultAPIURL {
		return "github.com"
	}
	u, err := url.Parse(apiURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
