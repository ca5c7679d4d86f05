package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"lessonbox/internal/cache"
	"lessonbox/internal/catalog"
	"lessonbox/internal/config"
	"lessonbox/internal/logger"
	"lessonbox/internal/provider"
	"lessonbox/internal/search"
)

// Version is set at build time
var Version = "dev"

var (
	flagConfig string
	flagDB     string
	flagMode   string
	flagQuery  string
)

type app struct {
	cfg     *config.Config
	log     *zap.Logger
	store   *cache.Store
	client  *provider.Client
	service *catalog.Service
}

func newApp() (*app, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if flagDB != "" {
		cfg.Cache.Path = flagDB
	}
	if flagMode != "" {
		cfg.Cache.Mode = flagMode
	}

	log := logger.New(cfg.Logging)

	store, err := cache.NewStore(cfg.Cache.Path)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}

	client := provider.NewClient(cfg.Provider)
	service := catalog.NewService(store, client, cfg, log)

	return &app{cfg: cfg, log: log, store: store, client: client, service: service}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn("closing cache", zap.Error(err))
	}
	_ = a.log.Sync()
}

func printLesson(lesson catalog.Lesson) {
	marker := " "
	if lesson.IsPrimaryCategory {
		marker = "*"
	}
	fmt.Printf("%s [%s] %s", marker, lesson.CategoryTitle, lesson.Title)
	if url := lesson.URL(); url != "" {
		fmt.Printf("  %s", url)
	}
	fmt.Println()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lessonbox",
		Short:         "Cached catalog client for the lesson library",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", "", "path to configuration file")
	root.PersistentFlags().StringVar(&flagDB, "db", "", "path to cache database (overrides config)")
	root.PersistentFlags().StringVar(&flagMode, "mode", "", "cache mode: on/cache or off/network")

	categoriesCmd := &cobra.Command{
		Use:   "categories",
		Short: "List the category menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			for _, category := range search.FilterCategories(a.service.Categories(), flagQuery) {
				fmt.Printf("%s  (%s)\n", category.Title, category.IconKey)
			}
			return nil
		},
	}
	categoriesCmd.Flags().StringVar(&flagQuery, "query", "", "filter categories by title")

	lessonsCmd := &cobra.Command{
		Use:   "lessons [category]",
		Short: "List lessons, optionally for one category",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			var lessons []catalog.Lesson
			if len(args) == 1 {
				lessons, err = a.service.LessonsByCategory(cmd.Context(), args[0])
			} else {
				lessons, err = a.service.AllLessons(cmd.Context())
			}
			if err != nil {
				return err
			}

			for _, lesson := range search.Filter(lessons, flagQuery) {
				printLesson(lesson)
			}
			return nil
		},
	}
	lessonsCmd.Flags().StringVar(&flagQuery, "query", "", "filter lessons by title or tag")

	searchCmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search all lessons by title and tags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			lessons, err := a.service.AllLessons(cmd.Context())
			if err != nil {
				return err
			}

			for _, lesson := range search.Filter(lessons, args[0]) {
				printLesson(lesson)
			}
			return nil
		},
	}

	cardsRun := func(kind string) func(cmd *cobra.Command, args []string) error {
		return func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			var cards []provider.Card
			if kind == "faq" {
				cards, err = a.client.FetchFAQCards(cmd.Context())
			} else {
				cards, err = a.client.FetchIntroCards(cmd.Context())
			}
			if err != nil {
				return err
			}

			for _, card := range cards {
				title, _ := card["title"].(string)
				fmt.Println(title)
			}
			return nil
		}
	}

	faqCmd := &cobra.Command{
		Use:   "faq",
		Short: "List FAQ cards",
		RunE:  cardsRun("faq"),
	}
	introCmd := &cobra.Command{
		Use:   "intro",
		Short: "List club-intro cards",
		RunE:  cardsRun("intro"),
	}

	root.AddCommand(categoriesCmd, lessonsCmd, searchCmd, faqCmd, introCmd)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
