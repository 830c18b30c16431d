// Generated: 2026-10-17T09:12:44Z
//
//go:generate go run ./script/buildinfo-extractor.go .
package buildinfo

var VERSION_INFO = "dev"

func BuildInfo() string {
	return VERSION_INFO
}
