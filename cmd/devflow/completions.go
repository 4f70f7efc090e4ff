package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/devflow/internal/config"
	"github.com/raphi011/devflow/internal/history"
)

// completeProjects provides project name completion for -p.
func completeProjects(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if cfg == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return filterPrefix(cfg.ProjectNames(), toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeCustomCommands completes the selected project's custom commands,
// including those from its local config file.
func completeCustomCommands(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	resolved, ok := completionProject()
	if !ok {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return filterPrefix(commandNames(resolved.Project), toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeChangesets provides changeset and remote branch completion
// from local refs only.
func completeChangesets(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	resolved, ok := completionProject()
	if !ok {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	ctx := context.Background()
	svc := newServices(cfg)
	cs := svc.git.ResolveChangesets(ctx, resolved.Project.WorkingDirectory, false)

	var names []string
	for _, c := range cs.Local {
		names = append(names, c.Branch)
	}
	for _, rb := range cs.Unsynced {
		names = append(names, rb.Branch)
	}
	return filterPrefix(names, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completionProject resolves the project without recording history.
func completionProject() (*config.Resolved, bool) {
	c, err := requireConfig()
	if err != nil {
		return nil, false
	}
	hist, err := history.Load(osFs, c.HistoryPath)
	if err != nil {
		hist = &history.History{}
	}
	name, err := selectProject(c, projectName, hist, workDir)
	if err != nil {
		return nil, false
	}
	resolved, err := config.NewResolver(osFs, c).Resolve(name)
	if err != nil {
		return nil, false
	}
	return resolved, true
}

func filterPrefix(values []string, prefix string) []string {
	var matches []string
	for _, v := range values {
		if strings.HasPrefix(v, prefix) {
			matches = append(matches, v)
		}
	}
	return matches
}
