// Command boardctl drives the postcard board against a running API: it
// renders the board for a viewport, likes and posts postcards and searches friends.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"studyglobe/internal/board"
	"studyglobe/internal/config"
	"studyglobe/internal/gateway"
	"studyglobe/internal/layout"
	"studyglobe/internal/middleware"
	"studyglobe/internal/toast"

	"github.com/goccy/go-json"
	"github.com/joho/godotenv"
)

const usage = `usage: boardctl <command> [flags]

commands:
  view    render the board for a viewport
  like    like a postcard
  post    create a postcard
  search  search friends`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	client, err := gateway.New(gateway.Config{BaseURL: cfg.APIBaseURL, Timeout: cfg.GatewayTimeout()})
	if err != nil {
		log.Fatalf("Failed to create API client: %v", err)
	}

	ctx := context.Background()
	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "view":
		err = runView(ctx, client, args)
	case "like":
		err = runLike(ctx, client, args)
	case "post":
		err = runPost(ctx, client, args)
	case "search":
		err = runSearch(ctx, client, args)
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("%s: %v", cmd, err)
	}
}

func newBoard(client *gateway.Client, width, height int, seed int64) *board.Board {
	opts := []board.Option{
		board.WithURLResolver(client.ResolveURL),
		board.WithNotifier(toast.LogNotifier{Logger: middleware.Logger}),
	}
	if seed != 0 {
		opts = append(opts, board.WithJitter(func() layout.Jitter { return layout.NewSeededJitter(seed) }))
	}
	return board.New(client, board.NewViewport(layout.Viewport{Width: width, Height: height}), opts...)
}

func runView(ctx context.Context, client *gateway.Client, args []string) error {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	width := fs.Int("width", 1280, "viewport width in px")
	height := fs.Int("height", 800, "viewport height in px")
	seed := fs.Int64("seed", 0, "jitter seed (0 scatters randomly)")
	asJSON := fs.Bool("json", false, "print the view as JSON")
	_ = fs.Parse(args)

	b := newBoard(client, *width, *height, *seed)
	defer b.Unmount()
	if err := b.Mount(ctx); err != nil {
		middleware.Logger.Warn("board load failed", "error", err)
	}
	return printView(b.View(), *asJSON)
}

func printView(v board.View, asJSON bool) error {
	if asJSON {
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("%s board %dx%d, canvas height %dpx, status %s\n",
		v.Breakpoint, v.Viewport.Width, v.Viewport.Height, v.CanvasHeight, v.Status)
	if v.Message != "" {
		fmt.Println(v.Message)
		if v.CanRetry {
			fmt.Println("Run the command again to retry.")
		}
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tROW\tCOL\tLEFT\tTOP\tROT\tSTAMP\tPOSTMARK\tLIKES\tCAPTION")
	for _, c := range v.Cards {
		fmt.Fprintf(w, "%d\t%d\t%d\t%s\t%s\t%.2f\t%s %s\t%s\t%d\t%s\n",
			c.Postcard.ID, c.Slot.Row, c.Slot.Col, c.Left, c.Top, c.Slot.Rotation,
			c.Stamp.Pattern, c.Stamp.Country, c.Postmark, c.State.Likes, c.Postcard.Caption)
	}
	return w.Flush()
}

func runLike(ctx context.Context, client *gateway.Client, args []string) error {
	fs := flag.NewFlagSet("like", flag.ExitOnError)
	id := fs.Uint("id", 0, "postcard id")
	_ = fs.Parse(args)
	if *id == 0 {
		return fmt.Errorf("-id is required")
	}

	b := newBoard(client, 1280, 800, 1)
	defer b.Unmount()
	if err := b.Mount(ctx); err != nil {
		return err
	}
	if err := b.Like(ctx, *id); err != nil {
		return err
	}
	for _, p := range b.Postcards() {
		if p.ID == *id {
			fmt.Printf("postcard %d now has %d likes\n", p.ID, p.Likes)
		}
	}
	return nil
}

func readFile(path string) (*gateway.File, error) {
	if path == "" {
		return nil, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &gateway.File{Name: filepath.Base(path), Content: content}, nil
}

func runPost(ctx context.Context, client *gateway.Client, args []string) error {
	fs := flag.NewFlagSet("post", flag.ExitOnError)
	form := gateway.PostcardForm{}
	fs.StringVar(&form.UserName, "user", "", "author name")
	fs.StringVar(&form.Location, "location", "", "location")
	fs.StringVar(&form.Country, "country", "", "country")
	fs.StringVar(&form.Caption, "caption", "", "caption")
	fs.StringVar(&form.PersonalMessage, "message", "", "message on the back")
	fs.StringVar(&form.DateStamp, "date", "", "date stamp, defaults to today")
	fs.Float64Var(&form.Lat, "lat", 0, "latitude")
	fs.Float64Var(&form.Lng, "lng", 0, "longitude")
	image := fs.String("image", "", "path to the photo")
	avatar := fs.String("avatar", "", "path to an avatar")
	_ = fs.Parse(args)

	var err error
	if form.Image, err = readFile(*image); err != nil {
		return err
	}
	if form.Avatar, err = readFile(*avatar); err != nil {
		return err
	}

	p, err := client.CreatePostcard(ctx, form)
	if err != nil {
		return err
	}
	fmt.Printf("created postcard %d (%s, %s)\n", p.ID, p.Location, strings.ToUpper(p.Country))
	return nil
}

func runSearch(ctx context.Context, client *gateway.Client, args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	q := fs.String("q", "", "search text")
	_ = fs.Parse(args)

	friends, err := client.SearchFriends(ctx, *q)
	if err != nil {
		return err
	}
	for _, f := range friends {
		fmt.Printf("%d\t%s\t%s, %s\n", f.ID, f.Name, f.City, f.Country)
	}
	return nil
}
