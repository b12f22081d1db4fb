package acceptance

import (
	"fmt"
	"os"
	"testing"
)

const binaryPath = "../../bin/skillet"

// TestMain gates the suite on a built binary so `go test ./...` stays
// green without a build step.
func TestMain(m *testing.M) {
	if _, err := os.Stat(binaryPath); err != nil {
		fmt.Println("skipping acceptance tests: build the binary first with `go build -o bin/skillet ./cmd/skillet`")
		os.Exit(0)
	}
	os.Exit(m.Run())
}
