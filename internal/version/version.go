package version

// Version is overridden at build time with -ldflags "-X fquack/internal/version.Version=...".
var Version = "dev"
