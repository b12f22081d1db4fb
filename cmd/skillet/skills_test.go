package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillet-ai/skillet/pkg/skills"
)

func TestSkillNewConfigFromFlags(t *testing.T) {
	tests := []struct {
		name           string
		args           []string
		expectedConfig *SkillNewConfig
	}{
		{
			name:           "no flags",
			args:           []string{},
			expectedConfig: &SkillNewConfig{Description: "", Dir: ""},
		},
		{
			name:           "description short form",
			args:           []string{"-d", "Create PDF files"},
			expectedConfig: &SkillNewConfig{Description: "Create PDF files", Dir: ""},
		},
		{
			name:           "description and dir",
			args:           []string{"--description", "Query databases", "--dir", "./my-skills"},
			expectedConfig: &SkillNewConfig{Description: "Query databases", Dir: "./my-skills"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{
				Use: "test",
				Run: func(_ *cobra.Command, _ []string) {},
			}

			defaults := NewSkillNewConfig()
			cmd.Flags().StringP("description", "d", defaults.Description, "One-line description shown to the model before activation")
			cmd.Flags().String("dir", defaults.Dir, "Directory to create the skill in")

			require.NoError(t, cmd.ParseFlags(tt.args))

			config := getSkillNewConfigFromFlags(cmd)
			assert.Equal(t, tt.expectedConfig, config)
		})
	}
}

func TestNewSkillNewConfig(t *testing.T) {
	config := NewSkillNewConfig()

	assert.Equal(t, "", config.Description)
	assert.Equal(t, "", config.Dir)
}

func TestConfiguredSkillsRoot(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	assert.Equal(t, skills.DefaultSkillsDir, configuredSkillsRoot())

	viper.Set("skills.directory", "/opt/skills")
	assert.Equal(t, "/opt/skills", configuredSkillsRoot())
}
