package version

// Version is the build version, overridden at link time.
var Version = "0.1.0-dev"
