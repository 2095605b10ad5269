// Package provider holds what the vendor clients share.
package provider

import (
	"errors"
	"strings"

	// Packages
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	"github.com/tidwall/gjson"
)

// APIError rewrites a non-2xx error from go-client so that it carries the
// vendor's error.message instead of the raw JSON body. The status code is
// kept, so errors.As still finds the httpresponse.Err. Any other error is
// returned unchanged.
func APIError(err error) error {
	var code httpresponse.Err
	if err == nil || !errors.As(err, &code) {
		return err
	}

	msg := err.Error()
	i := strings.IndexByte(msg, '{')
	if i < 0 || !gjson.Valid(msg[i:]) {
		return err
	}
	if message := gjson.Get(msg[i:], "error.message").String(); message != "" {
		return code.With(message)
	}
	return err
}
