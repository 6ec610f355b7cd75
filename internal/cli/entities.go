package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mickamy/pressroom/model"
	"github.com/mickamy/pressroom/orm"
	"github.com/mickamy/pressroom/repo"
)

func (a *app) authorCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "author",
		Short: "Add or show authors",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Add an author",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			author, err := model.NewAuthor(0, args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			return a.withStore(ctx, func(db *orm.DB) error {
				if err := repo.NewAuthorRepository(db).Create(ctx, author); err != nil {
					return err
				}
				log.Debug().Int64("id", author.ID).Str("name", author.Name()).Msg("Author created")
				fmt.Fprintf(cmd.OutOrStdout(), "author %d created\n", author.ID)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Describe an author with their magazines and articles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("author", args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			return a.withStore(ctx, func(db *orm.DB) error {
				authors := repo.NewAuthorRepository(db)
				author, err := authors.FindByID(ctx, id)
				if err != nil {
					return err
				}
				if author == nil {
					return fmt.Errorf("author %d not found", id)
				}
				desc, err := authors.Describe(ctx, *author)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), desc)
				return nil
			})
		},
	})

	return cmd
}

func (a *app) magazineCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "magazine",
		Short: "Add or show magazines",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name> <category>",
		Short: "Add a magazine",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			magazine, err := model.NewMagazine(0, args[0], args[1])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			return a.withStore(ctx, func(db *orm.DB) error {
				if err := repo.NewMagazineRepository(db).Create(ctx, magazine); err != nil {
					return err
				}
				log.Debug().Int64("id", magazine.ID).Str("name", magazine.Name()).Msg("Magazine created")
				fmt.Fprintf(cmd.OutOrStdout(), "magazine %d created\n", magazine.ID)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Describe a magazine with its articles and contributors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("magazine", args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			return a.withStore(ctx, func(db *orm.DB) error {
				magazines := repo.NewMagazineRepository(db)
				magazine, err := magazines.FindByID(ctx, id)
				if err != nil {
					return err
				}
				if magazine == nil {
					return fmt.Errorf("magazine %d not found", id)
				}
				desc, err := magazines.Describe(ctx, *magazine)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), desc)
				return nil
			})
		},
	})

	return cmd
}

func (a *app) articleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "article",
		Short: "Add or show articles",
	}

	var (
		authorID   int64
		magazineID int64
		title      string
		content    string
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Publish an article by an author in a magazine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return a.withStore(ctx, func(db *orm.DB) error {
				article, err := repo.NewArticleRepository(db).Publish(ctx, title, content, authorID, magazineID)
				if err != nil {
					return err
				}
				log.Debug().
					Int64("id", article.ID).
					Int64("author_id", authorID).
					Int64("magazine_id", magazineID).
					Msg("Article published")
				fmt.Fprintf(cmd.OutOrStdout(), "article %d created\n", article.ID)
				return nil
			})
		},
	}
	add.Flags().Int64Var(&authorID, "author", 0, "Author id")
	add.Flags().Int64Var(&magazineID, "magazine", 0, "Magazine id")
	add.Flags().StringVar(&title, "title", "", "Title, 5 to 50 characters")
	add.Flags().StringVar(&content, "content", "", "Article body")
	for _, name := range []string{"author", "magazine", "title"} {
		_ = add.MarkFlagRequired(name)
	}
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Describe an article with its author and magazine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("article", args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			return a.withStore(ctx, func(db *orm.DB) error {
				articles := repo.NewArticleRepository(db)
				article, err := articles.FindByID(ctx, id)
				if err != nil {
					return err
				}
				if article == nil {
					return fmt.Errorf("article %d not found", id)
				}
				desc, err := articles.Describe(ctx, *article)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), desc)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("article", args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			return a.withStore(ctx, func(db *orm.DB) error {
				deleted, err := repo.NewArticleRepository(db).Delete(ctx, id)
				if err != nil {
					return err
				}
				if !deleted {
					return fmt.Errorf("article %d not found", id)
				}
				log.Debug().Int64("id", id).Msg("Article deleted")
				fmt.Fprintf(cmd.OutOrStdout(), "article %d deleted\n", id)
				return nil
			})
		},
	})

	return cmd
}
