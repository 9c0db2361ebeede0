package version

import (
	"fmt"
	"runtime"

	"github.com/teranos/dimensio/catalog"
	"github.com/teranos/dimensio/expr"
)

// Build information, set with ldflags:
//
//	go build -ldflags "-X github.com/teranos/dimensio/version.Version=v1.2.0 \
//	  -X github.com/teranos/dimensio/version.CommitHash=$(git rev-parse HEAD) \
//	  -X github.com/teranos/dimensio/version.BuildTime=$(date -u +%FT%TZ)" ./cmd/dimensio
var (
	CommitHash = "dev"
	BuildTime  = "unknown"
	// Version is the release tag, "dev" for untagged builds
	Version = "dev"
)

// Info describes the binary and the formats it understands.
type Info struct {
	Version       string `json:"version"`
	CommitHash    string `json:"commit_hash"`
	BuildTime     string `json:"build_time"`
	CatalogFormat string `json:"catalog_format"`
	ParseBudget   int    `json:"parse_budget"`
	GoVersion     string `json:"go_version"`
	Platform      string `json:"platform"`
}

// Get returns the build information of the running binary.
func Get() Info {
	return Info{
		Version:       Version,
		CommitHash:    CommitHash,
		BuildTime:     BuildTime,
		CatalogFormat: catalog.FormatVersion,
		ParseBudget:   expr.DefaultBudget,
		GoVersion:     runtime.Version(),
		Platform:      fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// Release reports whether the binary was built from a tag.
func (i Info) Release() bool {
	return i.Version != "" && i.Version != "dev"
}

func (i Info) String() string {
	v := "dev"
	if i.Release() {
		v = i.Version
	}
	return fmt.Sprintf("dimensio %s (commit %s, built %s)", v, i.CommitHash, i.BuildTime)
}

// Short returns the abbreviated commit hash.
func (i Info) Short() string {
	if len(i.CommitHash) >= 7 {
		return i.CommitHash[:7]
	}
	return i.CommitHash
}
