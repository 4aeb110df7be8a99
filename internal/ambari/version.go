package ambari

// Version is the client version advertised in the User-Agent header.
// Overridden via ldflags at release build time.
var Version = "dev"
