package version

import "fmt"

const (
	Version = "v0.1.0"

	colorReset    = "\033[0m"
	colorCyanBold = "\033[36;1m"
)

// banner returns the colored ASCII art of sqliteshim.
func banner() string {
	art := `
          _ _ _                 _     _
 ___  __ _| (_) |_ ___  ___| |__ (_)_ __ ___
/ __|/ _' | | | __/ _ \/ __| '_ \| | '_ ' _ \
\__ \ (_| | | | ||  __/\__ \ | | | | | | | | |
|___/\__, |_|_|\__\___||___/_| |_|_|_| |_| |_|
        |_|  %s ` + Version

	art = art[1:] // drop the leading newline
	return colorCyanBold + art + colorReset
}

// CLIVersion returns the version banner of the sqliteshim CLI.
func CLIVersion() string {
	return fmt.Sprintf(banner(), "CLI")
}

// BenchVersion returns the version banner of the sqliteshim benchmark.
func BenchVersion() string {
	return fmt.Sprintf(banner(), "Bench")
}
