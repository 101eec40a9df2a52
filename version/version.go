package version

import (
	"fmt"
)

const (
	Version = "0.1.0"
)

// VersionString is reported by the CLI's "version" subcommand.
var VersionString = fmt.Sprintf("cqpolyfill %s", Version)
