package types

// AppVersion is set via -ldflags at build time
var AppVersion = "unknown"
