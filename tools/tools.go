//go:build tools

// Package tools lists the development tools used on the portal.
// They are installed with `go install` and are not tracked in go.mod.
package tools

// Air reloads cmd/portal on template and source changes. Pair it with
// DEV=true so templates are read from web/templates on every request.
//
//	go install github.com/air-verse/air@v1.63.0
//	air --build.cmd "go build -o ./tmp/portal ./cmd/portal" --build.bin ./tmp/portal \
//	    --build.include_ext "go,html,css"
//
// mockgen regenerates internal/mocks (see internal/mocks/generate.go).
//
//	go install go.uber.org/mock/mockgen@v0.6.0
