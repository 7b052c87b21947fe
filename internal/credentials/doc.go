// Package credentials loads provider tokens from the JSON credentials file and
// resolves the token used for each hosting provider.
package credentials
