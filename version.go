package tasklist

// Version is the release of the tasklist module and CLI.
const Version = "0.4.0"
