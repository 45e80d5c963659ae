package importer

import (
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/nikbrunner/vt/internal/model"
	"github.com/nikbrunner/vt/internal/youtube"
)

// ParseHTMLBookmarks parses Netscape bookmark HTML into items. Browser
// folders become groups; anchors whose href resolves to a YouTube video id
// become videos. Anchors pointing anywhere else are counted as skipped.
func ParseHTMLBookmarks(r io.Reader) (items []model.Item, skipped int, err error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, 0, err
	}

	// Track current group stack for hierarchy
	var groupStack []*string      // stack of group IDs, nil = root
	var pendingGroup *model.Item  // group waiting to be pushed on next DL
	nextOrder := map[string]int{} // per-parent sibling order counter

	takeOrder := func(parentID *string) int {
		key := ""
		if parentID != nil {
			key = *parentID
		}
		order := nextOrder[key]
		nextOrder[key] = order + 1
		return order
	}

	currentParent := func() *string {
		if len(groupStack) > 0 {
			return groupStack[len(groupStack)-1]
		}
		return nil
	}

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				// Folder definition - becomes a group
				name := getTextContent(n)
				if name != "" {
					group := model.Item{
						ID:         model.GenerateUUID(),
						Kind:       model.KindGroup,
						ParentID:   currentParent(),
						Order:      takeOrder(currentParent()),
						CreatedAt:  time.Now().UnixMilli(),
						Name:       name,
						IsExpanded: false,
					}
					items = append(items, group)

					// Mark this group as pending - pushed when we see the next DL
					pendingGroup = &items[len(items)-1]
				}
				return // Don't recurse into H3

			case "a":
				href := getAttr(n, "href")
				if href == "" {
					return
				}

				externalID, ok := youtube.ExtractID(href)
				if !ok {
					// Not a video link; this importer only carries YouTube
					skipped++
					return
				}

				title := getTextContent(n)
				if title == "" {
					title = href // fallback to URL as title
				}

				// Parse ADD_DATE timestamp (seconds since epoch)
				createdAt := time.Now().UnixMilli()
				if addDate := getAttr(n, "add_date"); addDate != "" {
					if ts, err := strconv.ParseInt(addDate, 10, 64); err == nil {
						createdAt = ts * 1000
					}
				}

				video := model.Item{
					ID:         model.GenerateUUID(),
					Kind:       model.KindVideo,
					ParentID:   currentParent(),
					Order:      takeOrder(currentParent()),
					CreatedAt:  createdAt,
					Title:      title,
					SourceURL:  href,
					ExternalID: externalID,
					Status:     model.StatusNone,
				}
				items = append(items, video)
				return // Don't recurse into A

			case "dl":
				// Definition list - marks folder contents
				pushedGroup := false
				if pendingGroup != nil {
					id := pendingGroup.ID
					groupStack = append(groupStack, &id)
					pendingGroup = nil
					pushedGroup = true
				}

				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}

				if pushedGroup && len(groupStack) > 0 {
					groupStack = groupStack[:len(groupStack)-1]
				}
				return // Children handled above
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return items, skipped, nil
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
