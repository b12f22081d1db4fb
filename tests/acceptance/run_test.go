package acceptance

import (
	"os/exec"
	"strings"
	"testing"
)

func TestRunWithoutQueryFails(t *testing.T) {
	cmd := exec.Command(binaryPath, "run")
	output, err := cmd.CombinedOutput()
	if err == nil {
		t.Fatalf("run without a query should exit nonzero, got success:\n%s", output)
	}
	if !strings.Contains(string(output), "no query provided") {
		t.Errorf("Expected a no-query error. Got: %s", output)
	}
}

func TestRootHelpListsCommands(t *testing.T) {
	cmd := exec.Command(binaryPath, "--help")
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Failed to execute --help: %v\n%s", err, output)
	}

	outputStr := string(output)
	for _, subcommand := range []string{"chat", "run", "skills", "version"} {
		if !strings.Contains(outputStr, subcommand) {
			t.Errorf("Help should list the %s command. Got: %s", subcommand, outputStr)
		}
	}
}
