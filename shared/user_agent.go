package shared

import (
	"fmt"
	"net/http"
	"strings"
)

const userAgentTemplate = "rss2bsky-bot/%s (+https://github.com/jcrbcn/rss2bsky)"

// Version is set at build time via -ldflags
var Version = "dev"

type IUserAgent interface {
	AddUserAgent(req *http.Request)
}

type userAgent struct {
	userAgentValue string
}

func NewUserAgent() IUserAgent {
	return &userAgent{
		userAgentValue: buildUserAgentString(),
	}
}

func buildUserAgentString() string {
	versionStr := strings.TrimPrefix(Version, "v")
	return fmt.Sprintf(userAgentTemplate, versionStr)
}

func (ua *userAgent) AddUserAgent(req *http.Request) {
	req.Header.Add("User-Agent", ua.userAgentValue)
}
