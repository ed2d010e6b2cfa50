// Option value parsing shared by every output and the error kinds they return
package setting

import "errors"

var (
	// Unknown option, invalid value or missing capability. Returned by Set.
	ErrConfiguration = errors.New("configuration error")

	// Address resolution, socket creation or connect failure. Returned by Start.
	ErrStartup = errors.New("startup error")
)
