package commands

import (
	"Quill/internal/api/dto"
	"Quill/internal/view"

	"github.com/spf13/cobra"
)

func newCategoriesCmd(a *app) *cobra.Command {
	categoriesCmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category", "cat"},
		Short:   "Read and manage categories",
	}
	categoriesCmd.AddCommand(
		newCategoriesListCmd(a),
		newCategoriesCreateCmd(a),
		newCategoriesRenameCmd(a),
		newCategoriesDeleteCmd(a),
	)
	return categoriesCmd
}

func newCategoriesListCmd(a *app) *cobra.Command {
	var (
		query string
		page  int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			v := view.NewCategoryListView(a.client, a.notices)
			if err := stateErr(v.Load(cmd.Context())); err != nil {
				return err
			}
			v.SetQuery(query)
			v.SetPage(page)

			result := v.Visible()
			if result.Total == 0 {
				a.printf("没有符合条件的分类\n")
				return nil
			}
			for _, c := range result.Items {
				a.printf("%s  %s\n", c.ID, c.Name)
			}
			a.printf("-- 第 %d/%d 页，共 %d 个 --\n", result.Number, result.PageCount, result.Total)
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "Case-insensitive name filter")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page number")
	return cmd
}

func newCategoriesCreateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form := view.NewCategoryForm(a.client, a.notices)
			form.Name = args[0]
			category, err := form.Submit(cmd.Context())
			if err != nil {
				return a.formErr(err, form.FieldErrors())
			}
			a.printf("%s\n", category.ID)
			return nil
		},
	}
}

func newCategoriesRenameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			form := view.NewCategoryForm(a.client, a.notices)
			if err := stateErr(form.Load(cmd.Context(), args[0])); err != nil {
				return err
			}
			form.Name = args[1]
			if _, err := form.Submit(cmd.Context()); err != nil {
				return a.formErr(err, form.FieldErrors())
			}
			return nil
		},
	}
}

func newCategoriesDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category after confirmation; posts are kept",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := view.NewCategoryListView(a.client, a.notices)
			if err := stateErr(v.Load(cmd.Context())); err != nil {
				return err
			}
			categories, _ := v.State().Data()

			target := dto.CategoryDTO{ID: args[0], Name: args[0]}
			for _, c := range categories {
				if c.ID == args[0] {
					target = c
					break
				}
			}

			deleted, err := v.Delete(cmd.Context(), target, a)
			if err != nil {
				return userErr(err)
			}
			if !deleted {
				a.printf("已取消\n")
			}
			return nil
		},
	}
}
