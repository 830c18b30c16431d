//go:build ignore

package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// //////////////////////////////////////////////////////////////////////////////
//
// _ __  __ _(_)_ _
// | '  \/ _` | | ' \
// |_|_|_\__,_|_|_||_|
//
// //////////////////////////////////////////////////////////////////////////////
func main() {
	nowTime := time.Now().UTC().Format(time.RFC3339)
	if len(os.Args) < 2 {
		log.Fatalf("Provide output directory as only command line argument")
	}
	outputDir := os.Args[1]
	absOutputPath, absOutputPathErr := filepath.Abs(outputDir)
	if absOutputPathErr != nil {
		log.Fatalf("Failed to get absolute output path. Error: %s", absOutputPathErr)
	}
	log.Printf("Output directory for buildinfo.go: %s", absOutputPath)
	// Builds outside of a git checkout are stamped as development builds.
	versionInfo := "dev"
	cmd := exec.Command("git", "describe", "--tags", "--always", "--dirty")
	out, err := cmd.CombinedOutput()
	if err != nil {
		log.Printf("git describe failed, using %q. Error: %s", versionInfo, err)
	} else {
		versionInfo = strings.TrimSpace(string(out))
	}

	outputFile := filepath.Join(outputDir, "buildinfo.go")
	outFile, outFileErr := os.Create(outputFile)
	if outFileErr != nil {
		log.Fatalf("Failed to create output file: %s. Error: %s", outputFile, outFileErr)
	}
	outFileContents := fmt.Sprintf(`// Generated: %s
//
//go:generate go run ./script/buildinfo-extractor.go .
package buildinfo

var VERSION_INFO = "%s"

func BuildInfo() string {
	return VERSION_INFO
}
`,
		nowTime,
		versionInfo)

	_, writeErr := outFile.Write([]byte(outFileContents))
	closeErr := outFile.Close()
	if writeErr != nil || closeErr != nil {
		log.Fatalf("Failed to write output file: %s. Error: %v", outputFile, errors.Join(writeErr, closeErr))
	}
	log.Printf("Created output file: %s", outputFile)
}
