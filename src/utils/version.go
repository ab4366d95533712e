package utils

// DATAVEIL_VERSION is the release version string, overridable at build time
// via -ldflags "-X github.com/dataveil/dataveil/src/utils.DATAVEIL_VERSION=...".
var DATAVEIL_VERSION = "1.0.0"
