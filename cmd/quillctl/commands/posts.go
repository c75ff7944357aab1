package commands

import (
	"Quill/internal/api/dto"
	"Quill/internal/client"
	"Quill/internal/pkg/util"
	"Quill/internal/view"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

const excerptLen = 60

func newPostsCmd(a *app) *cobra.Command {
	postsCmd := &cobra.Command{
		Use:     "posts",
		Aliases: []string{"post"},
		Short:   "Read and manage posts",
	}
	postsCmd.AddCommand(
		newPostsListCmd(a),
		newPostsSearchCmd(a),
		newPostsShowCmd(a),
		newPostsCreateCmd(a),
		newPostsEditCmd(a),
		newPostsDeleteCmd(a),
	)
	return postsCmd
}

func newPostsListCmd(a *app) *cobra.Command {
	var (
		query    string
		category string
		page     int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List posts, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			v := view.NewPostListView(a.client, a.notices)
			if err := stateErr(v.Load(cmd.Context())); err != nil {
				return err
			}
			v.SetQuery(query)
			v.SetCategory(category)
			v.SetPage(page)

			result := v.Visible()
			if result.Total == 0 {
				a.printf("没有符合条件的帖子\n")
				return nil
			}
			for _, p := range result.Items {
				a.printPostLine(p)
			}
			a.printf("-- 第 %d/%d 页，共 %d 篇 --\n", result.Number, result.PageCount, result.Total)
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "Case-insensitive title filter")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category id filter")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page number")
	return cmd
}

func newPostsSearchCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Full-text search on the server",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			posts, err := a.client.SearchPosts(cmd.Context(), strings.Join(args, " "), limit)
			if err != nil {
				return userErr(err)
			}
			for _, p := range posts {
				a.printPostLine(p)
			}
			a.printf("-- %d 条结果 --\n", len(posts))
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of results")
	return cmd
}

func newPostsShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := view.NewPostDetailView(a.client)
			state := v.Load(cmd.Context(), args[0])
			if client.IsNotFound(state.Err()) {
				return fmt.Errorf("帖子 %s 不存在或已被删除", args[0])
			}
			if err := stateErr(state); err != nil {
				return err
			}
			post, _ := state.Data()

			names := make([]string, 0, len(post.Categories))
			for _, c := range v.Categories() {
				names = append(names, c.Name)
			}
			a.printf("%s\n", post.Title)
			a.printf("id: %s  发布于 %s\n", post.ID, post.CreatedAt.Local().Format("2006-01-02 15:04"))
			if len(names) > 0 {
				a.printf("分类: %s\n", strings.Join(names, ", "))
			}
			if post.CoverImageURL != "" {
				a.printf("封面: %s\n", post.CoverImageURL)
			}
			a.printf("\n%s\n", util.HTMLToText(v.HTML()))
			return nil
		},
	}
}

func newPostsCreateCmd(a *app) *cobra.Command {
	var categories []string
	var cover string
	cmd := &cobra.Command{
		Use:   "create <title> <content>",
		Short: "Create a post",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			form := view.NewPostCreateForm(a.client, a.notices)
			form.Title, form.Content, form.CoverImageURL = args[0], args[1], cover
			for _, id := range categories {
				form.ToggleCategory(id)
			}

			post, err := form.Submit(cmd.Context())
			if err != nil {
				return a.formErr(err, form.FieldErrors())
			}
			a.printf("%s\n", post.ID)
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&categories, "category", "c", nil, "Category id (repeatable)")
	cmd.Flags().StringVar(&cover, "cover", "", "Cover image URL")
	return cmd
}

func newPostsEditCmd(a *app) *cobra.Command {
	var (
		title, content, cover string
		categories            []string
		clearCategories       bool
	)
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a post; unspecified fields keep their values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form := view.NewPostEditForm(a.client, a.notices)
			if err := stateErr(form.Load(cmd.Context(), args[0])); err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("title") {
				form.Title = title
			}
			if flags.Changed("content") {
				form.Content = content
			}
			if flags.Changed("cover") {
				form.CoverImageURL = cover
			}
			if clearCategories {
				form.CategoryIDs = []string{}
			}
			if flags.Changed("category") {
				form.CategoryIDs = categories
			}

			if _, err := form.Submit(cmd.Context()); err != nil {
				return a.formErr(err, form.FieldErrors())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&content, "content", "", "New content")
	cmd.Flags().StringVar(&cover, "cover", "", "New cover image URL")
	cmd.Flags().StringSliceVarP(&categories, "category", "c", nil, "Replace categories (repeatable)")
	cmd.Flags().BoolVar(&clearCategories, "clear-categories", false, "Remove all categories")
	return cmd
}

func newPostsDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a post after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := view.NewPostListView(a.client, a.notices)
			if err := stateErr(v.Load(cmd.Context())); err != nil {
				return err
			}
			posts, _ := v.State().Data()

			target := dto.PostDTO{ID: args[0], Title: args[0]}
			for _, p := range posts {
				if p.ID == args[0] {
					target = p
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

func (a *app) printPostLine(p dto.PostDTO) {
	a.printf("%s  %s  %s\n", p.ID, p.CreatedAt.Local().Format("2006-01-02"), p.Title)
	if excerpt := util.Excerpt(p.Content, excerptLen); excerpt != "" {
		a.printf("    %s\n", excerpt)
	}
}

// formErr 校验失败时逐字段输出
func (a *app) formErr(err error, fields map[string]string) error {
	if len(fields) == 0 {
		if errors.Is(err, view.ErrInvalidForm) {
			return err
		}
		return userErr(err)
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		a.printf("  %s: %s\n", k, fields[k])
	}
	return view.ErrInvalidForm
}
