package cli

// This file implements the "catalog" command listing the failure conditions.

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"failmsg/pkg/catalog"
)

// NewCatalogCmd builds the catalog subcommand.
func NewCatalogCmd(logger *zap.Logger) *cobra.Command {
	return NewCatalogCmdWithManager(DefaultMessageManager(logger))
}

// NewCatalogCmdWithManager returns the catalog subcommand using the provided manager.
func NewCatalogCmdWithManager(mgr *MessageManager) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List failure conditions",
		Long:  "List the failure conditions known to failmsg with their arity and template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr.ListConditions(filter)
			return nil
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "Only list conditions whose name contains this text")

	return cmd
}

// ListConditions prints the conditions whose name contains filter.
func (m *MessageManager) ListConditions(filter string) {
	rows := catalogRows(m.catalog.Conditions(), filter)
	if len(rows) == 1 {
		Warn("No conditions match " + strconv.Quote(filter))
		return
	}
	m.printer.Table(rows)
}

func catalogRows(conditions []catalog.Condition, filter string) [][]string {
	rows := [][]string{{"Name", "Arity", "Template"}}
	for _, c := range conditions {
		if filter != "" && !strings.Contains(c.Name, filter) {
			continue
		}
		rows = append(rows, []string{c.Name, strconv.Itoa(c.Arity), strconv.Quote(string(c.Template))})
	}
	return rows
}
