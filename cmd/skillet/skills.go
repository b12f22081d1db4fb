package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/skillet-ai/skillet/pkg/llm"
	"github.com/skillet-ai/skillet/pkg/presenter"
	"github.com/skillet-ai/skillet/pkg/skills"
)

type SkillNewConfig struct {
	Description string
	Dir         string
}

func NewSkillNewConfig() *SkillNewConfig {
	return &SkillNewConfig{
		Description: "",
		Dir:         "",
	}
}

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Inspect and scaffold skills",
	Long:  `List discovered skills, show their full instructions, and scaffold new skill bundles.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

var skillsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all discovered skills",
	Long:  `List all discovered skills with their names, descriptions, and directory paths.`,
	Run: func(cmd *cobra.Command, _ []string) {
		listSkills(cmd)
	},
}

var skillsShowCmd = &cobra.Command{
	Use:   "show <skill-name>",
	Short: "Print the full instructions of a skill",
	Long: `Print the full SKILL.md instructions of a skill, the content the model
receives once the skill is activated.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		showSkill(cmd, args[0])
	},
}

var skillsNewCmd = &cobra.Command{
	Use:   "new <skill-name>",
	Short: "Scaffold a new skill bundle",
	Long: `Scaffold a new skill bundle: a directory containing a SKILL.md with
front matter and a starter body.

Examples:
  skillet skills new pdf-processing
  skillet skills new pdf-processing -d "Extract text and tables from PDF files"
  skillet skills new pdf-processing --dir ./my-skills`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config := getSkillNewConfigFromFlags(cmd)
		newSkill(args[0], config)
	},
}

func init() {
	newDefaults := NewSkillNewConfig()
	skillsNewCmd.Flags().StringP("description", "d", newDefaults.Description, "One-line description shown to the model before activation")
	skillsNewCmd.Flags().String("dir", newDefaults.Dir, "Directory to create the skill in (defaults to the configured skills directory)")

	skillsCmd.AddCommand(skillsListCmd)
	skillsCmd.AddCommand(skillsShowCmd)
	skillsCmd.AddCommand(skillsNewCmd)
	rootCmd.AddCommand(skillsCmd)
}

func getSkillNewConfigFromFlags(cmd *cobra.Command) *SkillNewConfig {
	config := NewSkillNewConfig()
	if description, err := cmd.Flags().GetString("description"); err == nil {
		config.Description = description
	}
	if dir, err := cmd.Flags().GetString("dir"); err == nil {
		config.Dir = dir
	}
	return config
}

// discoverForInspection scans the configured skills directory regardless of
// whether skills are enabled for the agent.
func discoverForInspection(cmd *cobra.Command) (map[string]*skills.Skill, error) {
	config, err := llm.GetConfigFromViper()
	if err != nil {
		return nil, err
	}

	discovery, err := skills.NewDiscovery(skills.OptionsFromConfig(config)...)
	if err != nil {
		return nil, err
	}

	return discovery.DiscoverSkills(cmd.Context())
}

func listSkills(cmd *cobra.Command) {
	allSkills, err := discoverForInspection(cmd)
	if err != nil {
		presenter.Error(err, "Failed to discover skills")
		os.Exit(1)
	}

	if len(allSkills) == 0 {
		presenter.Info("No skills found")
		return
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tDIRECTORY\tDESCRIPTION")
	fmt.Fprintln(tw, "----\t---------\t-----------")

	for _, name := range skills.SortedNames(allSkills) {
		skill := allSkills[name]
		description := skill.Description
		if len(description) > 60 {
			description = description[:57] + "..."
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", skill.Name, skill.Directory, description)
	}
	tw.Flush()
}

func showSkill(cmd *cobra.Command, name string) {
	allSkills, err := discoverForInspection(cmd)
	if err != nil {
		presenter.Error(err, "Failed to discover skills")
		os.Exit(1)
	}

	catalog := skills.NewCatalog(allSkills)
	skill, ok := catalog.Get(name)
	if !ok {
		presenter.Error(errors.Errorf("skill '%s' not found", name), "Skill not found")
		os.Exit(1)
	}

	body, err := catalog.Body(cmd.Context(), name)
	if err != nil {
		presenter.Error(err, "Failed to load skill instructions")
		os.Exit(1)
	}

	presenter.Section(fmt.Sprintf("Skill: %s", name))
	presenter.Info(fmt.Sprintf("Directory: %s", skill.Directory))
	presenter.Separator()
	fmt.Println(body)
}

func newSkill(name string, config *SkillNewConfig) {
	root := config.Dir
	if root == "" {
		root = configuredSkillsRoot()
	}

	markerPath, err := skills.Scaffold(root, name, config.Description)
	if err != nil {
		presenter.Error(err, "Failed to scaffold skill")
		os.Exit(1)
	}

	presenter.Success(fmt.Sprintf("Created skill '%s' at %s", name, markerPath))
	presenter.Info("Edit the SKILL.md body to explain when and how the skill should be used")
}

func configuredSkillsRoot() string {
	config, err := llm.GetConfigFromViper()
	if err == nil && config.Skills != nil && config.Skills.Directory != "" {
		return config.Skills.Directory
	}
	return skills.DefaultSkillsDir
}
