package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/skillet-ai/skillet/pkg/skills"
	"github.com/skillet-ai/skillet/pkg/sysprompt"
)

// Library demo: discover skill bundles, activate the first one, and print
// the system prompt before and after so the progressive disclosure is
// visible. The real CLI lives in cmd/skillet.
func main() {
	ctx := context.Background()

	root := skills.DefaultSkillsDir
	if len(os.Args) > 1 {
		root = os.Args[1]
	}

	discovery, err := skills.NewDiscovery(skills.WithRoot(root))
	if err != nil {
		logrus.WithError(err).Fatal("failed to configure skill discovery")
	}
	discovered, err := discovery.DiscoverSkills(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("failed to discover skills")
	}

	catalog := skills.NewCatalog(discovered)
	active := skills.NewActivationSet()

	fmt.Println("=== Level 1: metadata only ===")
	fmt.Println(sysprompt.SystemPrompt(ctx, "", catalog, active))

	names := catalog.ListNames()
	if len(names) == 0 {
		return
	}
	active.Add(names[0])

	fmt.Printf("=== Level 2: after activating %q ===\n", names[0])
	fmt.Println(sysprompt.SystemPrompt(ctx, "", catalog, active))
}
