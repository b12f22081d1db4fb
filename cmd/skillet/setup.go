package main

import (
	"context"

	"github.com/skillet-ai/skillet/pkg/agent"
	"github.com/skillet-ai/skillet/pkg/llm"
	"github.com/skillet-ai/skillet/pkg/skills"
	"github.com/skillet-ai/skillet/pkg/tools"
	llmtypes "github.com/skillet-ai/skillet/pkg/types/llm"
)

// session bundles the wired-up agent with the pieces commands report on.
type session struct {
	agent   *agent.Agent
	catalog *skills.Catalog
	config  llmtypes.Config
	model   string
}

// newSession builds an agent from viper configuration: the gateway client,
// the discovered skill catalog (nil when skills are disabled), and the
// environment tool registry.
func newSession(ctx context.Context) (*session, error) {
	config, err := llm.GetConfigFromViper()
	if err != nil {
		return nil, err
	}

	client, err := llm.NewClient(config)
	if err != nil {
		return nil, err
	}

	catalog, err := skills.Initialize(ctx, config)
	if err != nil {
		return nil, err
	}

	opts := []agent.Option{
		agent.WithRegistry(tools.NewRegistry(tools.WithCommandTimeout(config.CommandTimeout))),
	}
	if catalog != nil {
		opts = append(opts, agent.WithCatalog(catalog))
	}
	if config.BasePrompt != "" {
		opts = append(opts, agent.WithBasePrompt(config.BasePrompt))
	}
	if config.MaxRounds > 0 {
		opts = append(opts, agent.WithMaxRounds(config.MaxRounds))
	}

	return &session{
		agent:   agent.New(client, opts...),
		catalog: catalog,
		config:  config,
		model:   client.Model(),
	}, nil
}
