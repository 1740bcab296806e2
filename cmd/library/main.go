package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"libraryapi/internal/catalog"
	"libraryapi/internal/config"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "library",
		Usage: "Manage a personal book catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "data-file",
				Aliases: []string{"f"},
				Usage:   "Path to the catalog JSON file (overrides LIBRARY_DATA_FILE)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Register a new book",
				ArgsUsage: "<isbn> <title> <author>",
				Action:    addCommand,
			},
			{
				Name:  "list",
				Usage: "List books in the catalog",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "available",
						Usage: "Only show available books",
					},
				},
				Action: listCommand,
			},
			{
				Name:      "borrow",
				Usage:     "Borrow a book",
				ArgsUsage: "<isbn> <borrower>",
				Action:    borrowCommand,
			},
			{
				Name:      "return",
				Usage:     "Return a borrowed book",
				ArgsUsage: "<isbn>",
				Action:    returnCommand,
			},
			{
				Name:      "search",
				Usage:     "Search for books by title",
				ArgsUsage: "<fragment>",
				Action:    searchCommand,
			},
			{
				Name:      "author",
				Usage:     "Find books by author",
				ArgsUsage: "<name>",
				Action:    authorCommand,
			},
			{
				Name:   "summary",
				Usage:  "Show book counts grouped by author",
				Action: summaryCommand,
			},
			{
				Name:      "remove",
				Usage:     "Delete a book from the catalog",
				ArgsUsage: "<isbn>",
				Action:    removeCommand,
			},
			{
				Name:      "import",
				Usage:     "Replace the catalog with books from a JSON file",
				ArgsUsage: "<file>",
				Action:    importCommand,
			},
			{
				Name:      "export",
				Usage:     "Write the catalog snapshot as JSON to a file or stdout",
				ArgsUsage: "[file]",
				Action:    exportCommand,
			},
			{
				Name:   "reset",
				Usage:  "Clear the catalog",
				Action: resetCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newService(c *cli.Context) (*catalog.Service, error) {
	config.LoadEnvFiles()
	cfg := config.Load()
	if path := c.String("data-file"); path != "" {
		cfg.DataFile = path
	}

	store, err := catalog.NewFileStore(cfg.DataFile)
	if err != nil {
		return nil, cli.Exit(err.Error(), 1)
	}
	repo, err := catalog.NewRepository(store, cfg.Autosave)
	if err != nil {
		return nil, cli.Exit(err.Error(), 1)
	}
	return catalog.NewService(repo), nil
}

// exitForError maps domain errors to stable exit codes so scripts can
// distinguish failure kinds.
func exitForError(err error) error {
	switch {
	case errors.Is(err, catalog.ErrDuplicateISBN):
		return cli.Exit(err.Error(), 2)
	case errors.Is(err, catalog.ErrAlreadyBorrowed), errors.Is(err, catalog.ErrNotBorrowed):
		return cli.Exit(err.Error(), 3)
	case errors.Is(err, catalog.ErrNotFound):
		return cli.Exit(err.Error(), 4)
	default:
		return cli.Exit(err.Error(), 1)
	}
}

func addCommand(c *cli.Context) error {
	if c.NArg() != 3 {
		return cli.Exit("usage: library add <isbn> <title> <author>", 1)
	}
	svc, err := newService(c)
	if err != nil {
		return err
	}

	book, err := svc.Register(context.Background(), c.Args().Get(0), c.Args().Get(1), c.Args().Get(2))
	if err != nil {
		return exitForError(err)
	}
	fmt.Printf("Added %s (%s) by %s\n", book.Title, book.ISBN, book.Author)
	return nil
}

func listCommand(c *cli.Context) error {
	svc, err := newService(c)
	if err != nil {
		return err
	}

	books, err := svc.ListBooks(context.Background(), c.Bool("available"))
	if err != nil {
		return exitForError(err)
	}
	printTable(books)
	return nil
}

func borrowCommand(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.Exit("usage: library borrow <isbn> <borrower>", 1)
	}
	svc, err := newService(c)
	if err != nil {
		return err
	}

	book, err := svc.Borrow(context.Background(), c.Args().Get(0), c.Args().Get(1))
	if err != nil {
		return exitForError(err)
	}
	fmt.Printf("%s borrowed by %s\n", book.Title, book.Borrower)
	return nil
}

func returnCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: library return <isbn>", 1)
	}
	svc, err := newService(c)
	if err != nil {
		return err
	}

	book, err := svc.Return(context.Background(), c.Args().Get(0))
	if err != nil {
		return exitForError(err)
	}
	fmt.Printf("%s returned\n", book.Title)
	return nil
}

func searchCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: library search <fragment>", 1)
	}
	svc, err := newService(c)
	if err != nil {
		return err
	}

	books, err := svc.SearchBooks(context.Background(), c.Args().Get(0), "title")
	if err != nil {
		return exitForError(err)
	}
	if len(books) == 0 {
		fmt.Println("No matches found.")
		return nil
	}
	printTable(books)
	return nil
}

func authorCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: library author <name>", 1)
	}
	svc, err := newService(c)
	if err != nil {
		return err
	}

	books, err := svc.SearchBooks(context.Background(), c.Args().Get(0), "author")
	if err != nil {
		return exitForError(err)
	}
	if len(books) == 0 {
		fmt.Println("No matches found.")
		return nil
	}
	printTable(books)
	return nil
}

func summaryCommand(c *cli.Context) error {
	svc, err := newService(c)
	if err != nil {
		return err
	}

	for _, item := range svc.Summary(context.Background()) {
		fmt.Printf("%s: %d book(s)\n", item.Author, item.Count)
	}
	return nil
}

func removeCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: library remove <isbn>", 1)
	}
	svc, err := newService(c)
	if err != nil {
		return err
	}

	isbn := c.Args().Get(0)
	if err := svc.Remove(context.Background(), isbn); err != nil {
		return exitForError(err)
	}
	fmt.Printf("Removed %s\n", isbn)
	return nil
}

func importCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: library import <file>", 1)
	}
	svc, err := newService(c)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(c.Args().Get(0))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	var entries []catalog.BookInput
	if err := json.Unmarshal(data, &entries); err != nil {
		return cli.Exit(fmt.Sprintf("invalid import file: %v", err), 1)
	}

	books, err := svc.Import(context.Background(), entries)
	if err != nil {
		return exitForError(err)
	}
	fmt.Printf("Imported %d books.\n", len(books))
	return nil
}

func exportCommand(c *cli.Context) error {
	svc, err := newService(c)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(svc.Snapshot(context.Background()), "", "  ")
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if c.NArg() == 0 {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(c.Args().Get(0), data, 0o644); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	fmt.Printf("Exported catalog to %s\n", c.Args().Get(0))
	return nil
}

func resetCommand(c *cli.Context) error {
	svc, err := newService(c)
	if err != nil {
		return err
	}

	if err := svc.Reset(context.Background()); err != nil {
		return exitForError(err)
	}
	fmt.Println("Catalog cleared.")
	return nil
}

func printTable(books []catalog.Book) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ISBN\tTitle\tAuthor\tAvailable")
	for _, b := range books {
		availability := "yes"
		if !b.Available {
			availability = fmt.Sprintf("no (%s)", b.Borrower)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", b.ISBN, b.Title, b.Author, availability)
	}
	w.Flush()
}
