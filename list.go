package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/ByLCY/codeshot/config"
	"github.com/ByLCY/codeshot/highlight"
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	styleDim     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleDefault = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
)

func newThemesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "列出可用的配色主题",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printList(cmd.OutOrStdout(), "Themes", highlight.ThemeNames(), config.BuiltinDefaults().Theme)
			return nil
		},
	}
}

func newLanguagesCmd() *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "languages",
		Short: "列出支持高亮的语言",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := highlight.LanguageNames()
			if filter != "" {
				kept := names[:0]
				for _, n := range names {
					if strings.Contains(strings.ToLower(n), strings.ToLower(filter)) {
						kept = append(kept, n)
					}
				}
				names = kept
			}
			printList(cmd.OutOrStdout(), "Languages", names, "")
			return nil
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "", "只显示名称包含该字符串的语言")
	return cmd
}

// printList 打印带标题的名称列表，def 标注为默认值。
func printList(w io.Writer, title string, names []string, def string) {
	fmt.Fprintln(w, styleTitle.Render(title)+" "+styleDim.Render(fmt.Sprintf("(%d)", len(names))))
	for _, n := range names {
		line := "  " + n
		if n == def {
			line += " " + styleDefault.Render("(default)")
		}
		fmt.Fprintln(w, line)
	}
}
