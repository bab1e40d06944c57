package cmd

import (
	"context"
	"fmt"
	"strings"

	"tempo/internal/domain"
)

// ActivitiesListCmd lists the activity tree
type ActivitiesListCmd struct{}

// Run executes the list command
func (a *ActivitiesListCmd) Run(cli *CLI) error {
	tree, err := cli.Container.ActivityService.Hierarchy(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load activities: %w", err)
	}

	if len(tree) == 0 {
		fmt.Println("No activities yet. Add one with: tempo activities add <name>")
		return nil
	}

	for _, root := range tree {
		printActivityNode(root, 0)
	}
	return nil
}

func printActivityNode(node *domain.ActivityNode, depth int) {
	marker := ""
	if node.Habit != nil {
		marker = " [habit]"
	}
	fmt.Printf("%s%s (#%d)%s\n", strings.Repeat("  ", depth), node.Name, node.ID, marker)
	for _, child := range node.Children {
		printActivityNode(child, depth+1)
	}
}
