package acceptance

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// env returns the process environment with the skills directory pointed at
// dir, the way a user would configure it via SKILLET_SKILLS_DIRECTORY.
func env(dir string) []string {
	return append(os.Environ(), "SKILLET_SKILLS_DIRECTORY="+dir)
}

func TestSkillScaffoldListShow(t *testing.T) {
	skillsDir := t.TempDir()

	// Scaffold a new skill.
	cmd := exec.Command(binaryPath, "skills", "new", "pdf-processing",
		"-d", "Extract text and tables from PDF files",
		"--dir", skillsDir)
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("skills new failed: %v\n%s", err, output)
	}
	if !strings.Contains(string(output), "Created skill 'pdf-processing'") {
		t.Errorf("Expected creation confirmation. Got: %s", output)
	}

	marker := filepath.Join(skillsDir, "pdf-processing", "SKILL.md")
	content, err := os.ReadFile(marker)
	if err != nil {
		t.Fatalf("SKILL.md was not created: %v", err)
	}
	if !strings.Contains(string(content), "name: pdf-processing") {
		t.Errorf("SKILL.md front matter should carry the name. Got: %s", content)
	}
	if !strings.Contains(string(content), "Extract text and tables from PDF files") {
		t.Errorf("SKILL.md front matter should carry the description. Got: %s", content)
	}

	// The scaffolded skill shows up in the listing.
	cmd = exec.Command(binaryPath, "skills", "list")
	cmd.Env = env(skillsDir)
	output, err = cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("skills list failed: %v\n%s", err, output)
	}
	if !strings.Contains(string(output), "pdf-processing") {
		t.Errorf("Listing should include the scaffolded skill. Got: %s", output)
	}

	// Its full instructions print through show.
	cmd = exec.Command(binaryPath, "skills", "show", "pdf-processing")
	cmd.Env = env(skillsDir)
	output, err = cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("skills show failed: %v\n%s", err, output)
	}
	if !strings.Contains(string(output), "## Instructions") {
		t.Errorf("Show should print the skill body. Got: %s", output)
	}
}

func TestSkillNewRefusesOverwrite(t *testing.T) {
	skillsDir := t.TempDir()

	cmd := exec.Command(binaryPath, "skills", "new", "dup", "--dir", skillsDir)
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("first skills new failed: %v\n%s", err, output)
	}

	cmd = exec.Command(binaryPath, "skills", "new", "dup", "--dir", skillsDir)
	output, err := cmd.CombinedOutput()
	if err == nil {
		t.Fatalf("second skills new should fail, got success:\n%s", output)
	}
	if !strings.Contains(string(output), "already exists") {
		t.Errorf("Expected an already-exists error. Got: %s", output)
	}
}

func TestSkillShowUnknownFails(t *testing.T) {
	skillsDir := t.TempDir()

	cmd := exec.Command(binaryPath, "skills", "show", "nope")
	cmd.Env = env(skillsDir)
	output, err := cmd.CombinedOutput()
	if err == nil {
		t.Fatalf("show of an unknown skill should fail, got success:\n%s", output)
	}
	if !strings.Contains(string(output), "not found") {
		t.Errorf("Expected a not-found error. Got: %s", output)
	}
}
