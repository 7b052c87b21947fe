package hosting

import (
	"net/http"
)

const (
	authorizationHeaderNameConstant     = "Authorization"
	authorizationHeaderTemplateConstant = "token "
)

// TokenTransport adds an "Authorization: token <token>" header to every request.
type TokenTransport struct {
	Token string
	Base  http.RoundTripper
}

// RoundTrip sets the authorization header on a clone of the request.
func (transport TokenTransport) RoundTrip(request *http.Request) (*http.Response, error) {
	authorizedRequest := request.Clone(request.Context())
	authorizedRequest.Header.Set(authorizationHeaderNameConstant, authorizationHeaderTemplateConstant+transport.Token)
	baseTransport := transport.Base
	if baseTransport == nil {
		baseTransport = http.DefaultTransport
	}
	return baseTransport.RoundTrip(authorizedRequest)
}

// AuthorizedHTTPClient returns a copy of the configured client whose transport carries the token header.
func (settings Settings) AuthorizedHTTPClient() *http.Client {
	baseClient := settings.ResolveHTTPClient()
	authorizedClient := *baseClient
	authorizedClient.Transport = TokenTransport{Token: settings.Token, Base: baseClient.Transport}
	return &authorizedClient
}
