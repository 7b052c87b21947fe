package hosting

import (
	"errors"
	"fmt"
	"strings"
)

const (
	apiErrorTemplateConstant             = "%s %s failed with status %d"
	apiErrorBodyTemplateConstant         = "%s: %s"
	unknownProviderErrorTemplateConstant = "unknown provider %q"
	requestErrorTemplateConstant         = "%s %s request failed: %s"
	tokenRequiredMessageConstant         = "provider token must be provided"
)

// ErrTokenRequired indicates a provider was requested without a token.
var ErrTokenRequired = errors.New(tokenRequiredMessageConstant)

// Operation names used in ApiError.
const (
	OperationListRepositories = "list repositories"
	OperationCurrentUser      = "get current user"
	OperationCreateRepository = "create repository"
	OperationUpdateVisibility = "update repository visibility"
	OperationDeleteRepository = "delete repository"
)

// ApiError reports a hosting API response with an unexpected status code.
type ApiError struct {
	Provider   ProviderName
	Operation  string
	StatusCode int
	Body       string
}

// Error includes the response body text when present.
func (apiError ApiError) Error() string {
	message := fmt.Sprintf(apiErrorTemplateConstant, apiError.Provider, apiError.Operation, apiError.StatusCode)
	trimmedBody := strings.TrimSpace(apiError.Body)
	if len(trimmedBody) == 0 {
		return message
	}
	return fmt.Sprintf(apiErrorBodyTemplateConstant, message, trimmedBody)
}

// UnknownProviderError indicates the registry has no factory for the requested name.
type UnknownProviderError struct {
	Name ProviderName
}

// Error names the missing provider.
func (unknownError UnknownProviderError) Error() string {
	return fmt.Sprintf(unknownProviderErrorTemplateConstant, string(unknownError.Name))
}

// RequestError reports a request that produced no HTTP response, such as a transport failure or cancellation.
type RequestError struct {
	Provider  ProviderName
	Operation string
	Cause     error
}

// Error describes the failed request.
func (requestError RequestError) Error() string {
	return fmt.Sprintf(requestErrorTemplateConstant, requestError.Provider, requestError.Operation, requestError.Cause)
}

// Unwrap exposes the underlying failure.
func (requestError RequestError) Unwrap() error {
	return requestError.Cause
}

// UnexpectedStatus builds an ApiError when statusCode differs from expectedStatus and returns nil otherwise.
func UnexpectedStatus(provider ProviderName, operation string, statusCode int, expectedStatus int, body string) error {
	if statusCode == expectedStatus {
		return nil
	}
	return ApiError{Provider: provider, Operation: operation, StatusCode: statusCode, Body: body}
}
