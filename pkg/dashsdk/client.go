package dashsdk

import (
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// SDKClient talks to one dashboard deployment. It is safe for concurrent use
// but all calls share one cookie jar, so one client is one browser.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient returns a client with its own cookie jar.
func NewSDKClient(baseURL string) *SDKClient {
	// cookiejar.New only fails on a bad PublicSuffixList and nil has none.
	jar, _ := cookiejar.New(nil)

	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
		},
	}
}
