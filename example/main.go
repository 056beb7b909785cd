// Command example stamps the current checkout with the gitstamp library and
// writes a YAML version-info file next to the system temp directory.
//
//	go run ./example/
//
// Set GITHUB_TOKEN to also stamp the repository through the GitHub API.
package main

import (
	"context"
	"fmt"
	"log"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/MyCarrier-DevOps/go-gitstamp/pkg/gitstamp"
)

func main() {
	formatter := "YAML"
	local, err := gitstamp.Calculate(gitstamp.LocalOptions{
		Path:      ".",
		Overrides: gitstamp.Overrides{Formatter: &formatter},
	})
	if err != nil {
		log.Fatalf("stamping local checkout: %v", err)
	}
	report("local", local)

	file, err := gitstamp.WriteVersionInfo(local, filepath.Join(os.TempDir(), "gitstamp-example"))
	if err != nil {
		log.Fatalf("writing version info: %v", err)
	}
	fmt.Println("version info:", file)

	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		return
	}
	remote, err := gitstamp.CalculateRemote(context.Background(), gitstamp.RemoteOptions{
		Owner: "MyCarrier-DevOps",
		Repo:  "go-gitstamp",
		Token: token,
	})
	if err != nil {
		log.Fatalf("stamping remote repository: %v", err)
	}
	report("remote", remote)
}

func report(label string, result *gitstamp.Result) {
	info := result.Info()
	fmt.Printf("[%s] %s (strict SemVer: %t)\n", label, result.Version, result.Strict)
	if branch, ok := info.Branch().Get(); ok {
		fmt.Printf("  branch: %s\n", branch)
	}
	for _, name := range slices.Sorted(maps.Keys(result.Variables)) {
		fmt.Printf("  %-16s %s\n", name, result.Variables[name])
	}
}
