package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/disiqueira/gotree/v3"

	"github.com/nikbrunner/vt/internal/checker"
	"github.com/nikbrunner/vt/internal/exporter"
	"github.com/nikbrunner/vt/internal/importer"
	"github.com/nikbrunner/vt/internal/model"
	"github.com/nikbrunner/vt/internal/picker"
	"github.com/nikbrunner/vt/internal/search"
	"github.com/nikbrunner/vt/internal/storage"
	"github.com/nikbrunner/vt/internal/tui"
	"github.com/nikbrunner/vt/internal/youtube"
)

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "help", "--help", "-h":
			printHelp()
			return
		case "add":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: vt add <youtube-url>\n")
				os.Exit(1)
			}
			runAdd(os.Args[2])
			return
		case "import":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: vt import <file.json>\n")
				os.Exit(1)
			}
			runImport(os.Args[2])
			return
		case "import-html":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: vt import-html <file.html>\n")
				os.Exit(1)
			}
			runImportHTML(os.Args[2])
			return
		case "export":
			var outputPath string
			if len(os.Args) >= 3 {
				outputPath = os.Args[2]
			}
			runExport(outputPath)
			return
		case "tree":
			runTree()
			return
		case "check":
			runCheck()
			return
		default:
			// Treat as search query (join all remaining args)
			query := strings.Join(os.Args[1:], " ")
			runQuickSearch(query)
			return
		}
	}

	// No args - run full TUI
	runTUI()
}

func printHelp() {
	help := `vt - vim-style YouTube video organizer

Usage:
  vt                      Open interactive TUI
  vt <query>              Quick search → select → open
  vt add <url>            Add a video at the root level
  vt import <file>        Replace everything with a JSON snapshot
  vt import-html <file>   Import YouTube links from browser bookmarks
  vt export [path]        Export a JSON snapshot
  vt tree                 Print the group tree
  vt check                Probe for removed or private videos
  vt help                 Show this help

TUI Keybindings:
  Navigation:
    j/k         Move down/up
    h/l         Collapse/expand group
    gg/G        Jump to top/bottom

  Actions:
    enter       Select video / toggle group
    a/A         Add video/group
    e           Rename
    d           Delete (cascades to contents)
    x/p         Cut, then paste onto an item
    s           Cycle watch status
    o           Open in browser
    Y           Copy URL to clipboard
    /           Fuzzy filter

  Other:
    ?           Show help overlay
    q           Quit

Data Storage:
  ~/.config/vt/videos.json
`
	fmt.Print(help)
}

// loadItems opens the configured backend and reads all items.
func loadItems() (storage.Storage, []model.Item) {
	backend, err := storage.OpenStorage()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening storage: %v\n", err)
		os.Exit(1)
	}
	items, err := backend.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading videos: %v\n", err)
		os.Exit(1)
	}
	return backend, items
}

// runTUI runs the full interactive TUI.
func runTUI() {
	backend, items := loadItems()

	configPath, err := storage.DefaultConfigFilePath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting config path: %v\n", err)
		os.Exit(1)
	}
	config, err := storage.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store := model.NewStoreFromItems(items)
	saver := storage.NewAutosaver(backend)

	app := tui.NewApp(tui.AppParams{Store: store, Config: config, Saver: saver})
	p := tea.NewProgram(app, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		saver.Close()
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}

	// Flush pending writes, then save once more so nothing is lost even
	// if the last async write failed.
	saver.Close()
	finalApp := finalModel.(tui.App)
	if err := backend.Save(finalApp.Store().Snapshot()); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving videos: %v\n", err)
		os.Exit(1)
	}
}

// runAdd adds a single video at the root level.
func runAdd(rawURL string) {
	externalID, ok := youtube.ExtractID(rawURL)
	if !ok {
		fmt.Fprintf(os.Stderr, "Not a YouTube URL: %s\n", rawURL)
		os.Exit(1)
	}

	backend, items := loadItems()
	store := model.NewStoreFromItems(items)

	title := rawURL
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if fetched, err := youtube.FetchTitle(ctx, rawURL); err == nil {
		title = fetched
	}

	item, err := store.AddVideo(model.AddVideoParams{
		Title:      title,
		SourceURL:  rawURL,
		ExternalID: externalID,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding video: %v\n", err)
		os.Exit(1)
	}

	if err := backend.Save(store.Snapshot()); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving videos: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Added: %s\n", item.Title)
}

// runQuickSearch performs a fuzzy search and opens the selected video.
func runQuickSearch(query string) {
	backend, items := loadItems()
	store := model.NewStoreFromItems(items)

	results := search.FuzzySearchVideos(store, query)

	if len(results) == 0 {
		fmt.Printf("No videos found for '%s'\n", query)
		os.Exit(0)
	}

	var selected *model.Item

	if len(results) == 1 {
		selected = results[0].Item
		fmt.Printf("Opening: %s\n", selected.Title)
	} else {
		p := picker.New(results, query)
		program := tea.NewProgram(p)
		finalModel, err := program.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running picker: %v\n", err)
			os.Exit(1)
		}

		finalPicker := finalModel.(picker.Picker)
		if finalPicker.Cancelled() {
			os.Exit(0)
		}
		selected = finalPicker.SelectedVideo()
	}

	if selected == nil {
		os.Exit(0)
	}

	status := model.StatusInProgress
	if err := store.Update(selected.ID, model.ItemUpdate{Status: &status}); err == nil {
		if err := backend.Save(store.Snapshot()); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving videos: %v\n", err)
		}
	}

	openURL(selected.SourceURL)
}

// openURL opens a URL in the default browser.
func openURL(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	}
	if cmd != nil {
		_ = cmd.Start()
	}
}

// runImport replaces everything with a validated JSON snapshot.
func runImport(filePath string) {
	// Size limit is enforced on the file before reading it into memory.
	info, err := os.Stat(filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}
	if info.Size() > importer.MaxBytes {
		fmt.Fprintf(os.Stderr, "File too large (max %d MiB)\n", importer.MaxBytes/(1024*1024))
		os.Exit(1)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	items, err := importer.Validate(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Import rejected: %v\n", err)
		os.Exit(1)
	}

	backend, _ := loadItems()
	store := model.NewStore()
	store.Replace(items)

	if err := backend.Save(store.Snapshot()); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving videos: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Imported %d items\n", len(items))
}

// runImportHTML merges YouTube links from browser bookmark HTML.
func runImportHTML(filePath string) {
	file, err := os.Open(filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	imported, skipped, err := importer.ParseHTMLBookmarks(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing HTML: %v\n", err)
		os.Exit(1)
	}

	backend, items := loadItems()
	store := model.NewStoreFromItems(append(items, imported...))

	if err := backend.Save(store.Snapshot()); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving videos: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Imported %d items", len(imported))
	if skipped > 0 {
		fmt.Printf(" (%d non-YouTube links skipped)", skipped)
	}
	fmt.Println()
}

// runExport writes a pretty-printed snapshot.
func runExport(outputPath string) {
	if outputPath == "" {
		var err error
		outputPath, err = exporter.DefaultExportPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting default export path: %v\n", err)
			os.Exit(1)
		}
	}

	_, items := loadItems()

	data, err := exporter.MarshalIndent(items)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error serializing: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Exported %d items to %s\n", len(items), outputPath)
}

// runCheck probes every video and reports the ones no longer available.
func runCheck() {
	_, items := loadItems()
	store := model.NewStoreFromItems(items)

	var videos []*model.Item
	for _, item := range store.Items() {
		if item.IsVideo() {
			videos = append(videos, item)
		}
	}
	if len(videos) == 0 {
		fmt.Println("No videos to check")
		return
	}

	fmt.Printf("Checking %d videos...\n", len(videos))
	results := checker.CheckVideos(videos, 8, 10*time.Second, func(completed, total int) {
		fmt.Printf("\r%d/%d", completed, total)
	})
	fmt.Println()

	var gone, unreachable int
	for _, result := range results {
		switch result.Status {
		case checker.Gone:
			gone++
			fmt.Printf("  GONE  %s\n        %s\n", result.Video.Title, result.Video.SourceURL)
		case checker.Unreachable:
			unreachable++
		}
	}

	if gone == 0 {
		fmt.Println("All videos still available")
	} else {
		fmt.Printf("%d videos removed or private\n", gone)
	}
	if unreachable > 0 {
		fmt.Printf("%d could not be checked\n", unreachable)
	}
}

// runTree prints the forest to stdout.
func runTree() {
	_, items := loadItems()
	store := model.NewStoreFromItems(items)

	root := gotree.New("vt")
	var addChildren func(node gotree.Tree, parentID *string)
	addChildren = func(node gotree.Tree, parentID *string) {
		for _, child := range store.Children(parentID) {
			if child.IsGroup() {
				addChildren(node.Add(child.Name+"/"), &child.ID)
			} else {
				label := child.Title
				if child.Status != model.StatusNone {
					label += " [" + string(child.Status) + "]"
				}
				node.Add(label)
			}
		}
	}
	addChildren(root, nil)

	fmt.Print(root.Print())
}
